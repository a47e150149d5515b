// Package assemble lays built sections out as publishable HTML: either
// anchor-linked headings under a table of contents, or collapsible
// accordion panels.
package assemble

import (
	"fmt"
	"log/slog"

	"golang.org/x/net/html"

	"github.com/use-agent/gdocpress/dom"
	"github.com/use-agent/gdocpress/models"
)

// DefaultContentsTitle heads the table of contents in anchor mode.
const DefaultContentsTitle = "Contents:"

// Options configures the assembler.
type Options struct {
	Mode          models.OutputMode
	PanelIDs      models.PanelIDs
	ContentsTitle string
}

// Assemble returns a parentless <body> holding doc laid out according to
// opts.Mode. Section bodies are moved, not copied, into the output.
func Assemble(doc *models.Document, opts Options) *html.Node {
	body := dom.NewElement("body")
	switch opts.Mode {
	case models.ModeAccordionFlat, models.ModeAccordionNested:
		Accordion(body, doc, opts)
	default:
		Anchor(body, doc, opts)
	}
	slog.Debug("document assembled", "mode", opts.Mode.String(), "sections", len(doc.Sections()))
	return body
}

// idSet hands out document-unique element ids.
type idSet struct {
	seen map[string]int
}

func newIDSet() *idSet {
	return &idSet{seen: make(map[string]int)}
}

// unique returns id if unused, otherwise id with the first free -N suffix.
func (s *idSet) unique(id string) string {
	if s.seen[id] == 0 {
		s.seen[id] = 1
		return id
	}
	for n := s.seen[id] + 1; ; n++ {
		cand := fmt.Sprintf("%s-%d", id, n)
		if s.seen[cand] == 0 {
			s.seen[id] = n
			s.seen[cand] = 1
			return cand
		}
	}
}

// textElement creates <tag attrs...>text</tag>.
func textElement(tag, text string, attrs ...string) *html.Node {
	n := dom.NewElement(tag, attrs...)
	dom.Append(n, dom.NewText(text))
	return n
}

// moveChildren relocates every child of from to the end of to.
func moveChildren(to, from *html.Node) {
	for c := from.FirstChild; c != nil; c = from.FirstChild {
		dom.Move(to, c)
	}
}
