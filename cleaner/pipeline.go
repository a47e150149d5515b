package cleaner

import (
	"bytes"
	"io"
	"log/slog"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/PuerkitoBio/goquery"
	"go.uber.org/multierr"
	"golang.org/x/net/html"

	"github.com/use-agent/gdocpress/assemble"
	"github.com/use-agent/gdocpress/dom"
	"github.com/use-agent/gdocpress/models"
	"github.com/use-agent/gdocpress/segment"
)

// Options parameterizes one document variant.
type Options struct {
	Scheme   models.Scheme
	Mode     models.OutputMode
	PanelIDs models.PanelIDs
	Format   models.Format

	// CommentClass is the class of comment containers. Empty means
	// discover it from the document.
	CommentClass string

	// Exclude lists CSS selectors of body elements dropped before
	// segmentation.
	Exclude []string

	// Passthrough lists href prefixes kept as-is in addition to
	// DefaultPassthrough.
	Passthrough []string

	DropLeadingImage    bool
	ContentsTitle       string
	SimilarityThreshold int

	// KeepGoing emits sections whose lists could not be reconciled instead
	// of failing the conversion.
	KeepGoing bool
}

// Result is the outcome of one conversion.
type Result struct {
	Content string

	Sections       int
	Reused         int
	Translated     int
	Excluded       int
	ResolvedLinks  int
	MalformedLinks int

	// Warnings holds recoverable problems (malformed links, sections
	// emitted despite errors with KeepGoing).
	Warnings []string
}

// Converter orchestrates the restructuring pipeline:
//
//	strip artifacts → translate styles → locate segments → build sections
//	→ assemble output → resolve links → render
//
// The Markdown converter is created once and reused; every Convert call
// allocates its own document state, so a Converter can be used for any
// number of documents.
type Converter struct {
	opts        Options
	mdConverter *converter.Converter

	// reconcile replaces segment.Reconcile when set.
	reconcile func(body *html.Node) error
}

// NewConverter initialises a Converter for one document variant.
func NewConverter(opts Options) *Converter {
	return &Converter{
		opts:        opts,
		mdConverter: newMarkdownConverter(),
	}
}

// Convert reads an exported document from r and returns it restructured.
func (c *Converter) Convert(r io.Reader) (*Result, error) {
	exclusions, err := CompileExclusions(c.opts.Exclude)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, models.NewConvertError(models.ErrCodeParse, "cannot parse input document", err)
	}
	bodySel := doc.Find("body")
	if bodySel.Length() == 0 {
		return nil, models.NewConvertError(models.ErrCodeParse, "input document has no body", nil)
	}
	body := bodySel.Nodes[0]
	res := &Result{}

	// ── 1. Artifacts ────────────────────────────────────────────────
	marker := c.opts.CommentClass
	if marker == "" {
		marker = FindCommentClass(doc)
		slog.Debug("comment marker discovered", "class", marker)
	}
	StripArtifacts(doc, marker, StripOptions{DropLeadingImage: c.opts.DropLeadingImage})
	res.Excluded = ExcludeElements(doc, exclusions)

	// ── 2. Styles ───────────────────────────────────────────────────
	// The stylesheet is only an input: the output carries no <head>.
	head := doc.Find("head")
	table := BuildTranslationTable(head.Find("style").Text(), DefaultPropertyMap(), DefaultClassPrefix)
	head.Remove()
	res.Translated = ApplyTranslation(doc, table)
	slog.Debug("styles translated", "classes", table.Len(), "spans", res.Translated)

	// ── 3. Segments ─────────────────────────────────────────────────
	children := dom.ElementChildren(body)
	var outline models.Outline
	switch c.opts.Scheme {
	case models.SchemeFAQ:
		outline = segment.LocateQuestions(children)
	default:
		outline = segment.LocateHeadings(children)
	}

	built, err := segment.NewBuilder(segment.Options{
		StripAnswerMarkers:  c.opts.Scheme == models.SchemeFAQ,
		SimilarityThreshold: c.opts.SimilarityThreshold,
		Reconciler:          c.reconcile,
	}).Build(children, outline)
	if err != nil {
		if !c.opts.KeepGoing {
			return nil, err
		}
		for _, e := range multierr.Errors(err) {
			res.Warnings = append(res.Warnings, e.Error())
		}
	}
	for _, sec := range built.Sections() {
		res.Sections++
		if sec.Reused {
			res.Reused++
		}
	}

	// ── 4. Output ───────────────────────────────────────────────────
	out := assemble.Assemble(built, assemble.Options{
		Mode:          c.opts.Mode,
		PanelIDs:      c.opts.PanelIDs,
		ContentsTitle: c.opts.ContentsTitle,
	})

	resolved, linkErr := ResolveLinks(out, c.opts.Passthrough)
	res.ResolvedLinks = resolved
	for _, e := range multierr.Errors(linkErr) {
		slog.Warn("link left unchanged", "error", e)
		res.Warnings = append(res.Warnings, e.Error())
		res.MalformedLinks++
	}

	// Content outside every section is dropped with the old body.
	dom.Clear(body)
	dom.RemoveAttr(body, "class")
	for n := out.FirstChild; n != nil; n = out.FirstChild {
		dom.Move(body, n)
	}

	// ── 5. Render ───────────────────────────────────────────────────
	var buf bytes.Buffer
	if err := html.Render(&buf, doc.Nodes[0]); err != nil {
		return nil, models.NewConvertError(models.ErrCodeRender, "cannot render output document", err)
	}
	switch c.opts.Format {
	case models.FormatMarkdown:
		md, err := ToMarkdown(c.mdConverter, buf.String())
		if err != nil {
			return nil, models.NewConvertError(models.ErrCodeRender, "markdown conversion failed", err)
		}
		res.Content = md
	default:
		res.Content = buf.String()
	}

	slog.Info("document converted",
		"scheme", c.opts.Scheme.String(),
		"mode", c.opts.Mode.String(),
		"sections", res.Sections,
		"reused", res.Reused,
		"links", res.ResolvedLinks,
		"warnings", len(res.Warnings),
	)
	return res, nil
}
