package cleaner

import (
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
)

// newMarkdownConverter creates a reusable, goroutine-safe Converter for
// previewing restructured documents:
//
//   - base plugin: drops head, style, script and comments.
//   - commonmark plugin: headings, lists, links, emphasis.
//   - table plugin: keeps synthesized header rows as Markdown table headers.
//
// Accordion markup has no Markdown equivalent; cards flatten to their
// header text followed by the panel content.
func newMarkdownConverter() *converter.Converter {
	return converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(
				table.WithCellPaddingBehavior(table.CellPaddingBehaviorMinimal),
			),
		),
	)
}

// ToMarkdown converts rendered HTML to Markdown using html-to-markdown v2.
func ToMarkdown(conv *converter.Converter, htmlContent string) (string, error) {
	return conv.ConvertString(htmlContent)
}
