package assemble

import (
	"fmt"

	"golang.org/x/net/html"

	"github.com/use-agent/gdocpress/dom"
	"github.com/use-agent/gdocpress/models"
)

const buttonClass = "btn btn-lg btn-light btn-block collapsed"

// accordion carries the id state of one Accordion call.
type accordion struct {
	opts   Options
	ids    *idSet
	seq    int
	panels map[*models.Section]string
}

// Accordion appends doc to body as Bootstrap accordion cards.
//
// In flat mode every part is an <h1> followed by its own accordion of
// section cards. In nested mode a single outer accordion holds one card per
// part whose body is the accordion of that part's sections. A part without
// a heading in the document places its accordion directly.
//
// A reused section gets a header only; its button opens the panel of the
// section it was copied from.
func Accordion(body *html.Node, doc *models.Document, opts Options) {
	a := &accordion{
		opts:   opts,
		ids:    newIDSet(),
		panels: make(map[*models.Section]string),
	}

	if opts.Mode != models.ModeAccordionNested {
		for _, part := range doc.Parts {
			if !part.Virtual() {
				dom.Append(body, textElement("h1", part.Title))
			}
			dom.Append(body, a.sections(part, "h2"))
		}
		return
	}

	outerID := a.ids.unique("acc_document")
	outer := dom.NewElement("div", "id", outerID, "class", "accordion")
	dom.Append(body, outer)
	for _, part := range doc.Parts {
		if part.Virtual() {
			dom.Append(body, a.sections(part, "h2"))
			continue
		}
		inner := a.sections(part, "h3")
		content := dom.NewElement("div", "class", "card-body")
		dom.Append(content, inner)
		panel := a.panelID(part.Boundary)
		dom.Append(outer, a.card(part.Title, panel, outerID, "h2", content))
	}
	if outer.FirstChild == nil {
		dom.Remove(outer)
	}
}

// sections builds the accordion of one part's sections.
func (a *accordion) sections(part *models.Part, headTag string) *html.Node {
	accID := a.ids.unique("acc_" + fallbackID(part.ID, "document"))
	acc := dom.NewElement("div", "id", accID, "class", "accordion")

	for _, sec := range part.Sections {
		if target, ok := a.panels[sec.Origin]; ok && sec.Reused {
			dom.Append(acc, a.card(sec.Title, target, accID, headTag, nil))
			continue
		}
		panel := a.panelID(sec.Boundary)
		a.panels[sec] = panel
		content := dom.NewElement("div", "class", "card-body")
		moveChildren(content, sec.Body)
		dom.Append(acc, a.card(sec.Title, panel, accID, headTag, content))
	}
	return acc
}

// panelID returns the collapsible container id for b.
func (a *accordion) panelID(b models.Boundary) string {
	seq := fmt.Sprintf("panel-%02d", a.seq)
	a.seq++
	if a.opts.PanelIDs == models.PanelDerived && b.ID != "" {
		return a.ids.unique(b.ID)
	}
	return a.ids.unique(seq)
}

// card builds one accordion card. A nil content yields a header-only card
// whose button opens the existing container panel.
func (a *accordion) card(title, panel, accID, headTag string, content *html.Node) *html.Node {
	headingID := a.ids.unique("heading-" + panel)

	span := textElement("span", title, "class", "pull-left")
	button := dom.NewElement("button",
		"class", buttonClass,
		"type", "button",
		"data-toggle", "collapse",
		"data-target", "#"+panel,
		"aria-expanded", "false",
		"aria-controls", panel,
	)
	dom.Append(button, span)
	h := dom.NewElement(headTag, "class", "mb-0")
	dom.Append(h, button)
	head := dom.NewElement("div", "id", headingID, "class", "card-header")
	dom.Append(head, h)

	card := dom.NewElement("div", "class", "card")
	dom.Append(card, head)
	if content == nil {
		return card
	}

	coll := dom.NewElement("div",
		"id", panel,
		"class", "collapse",
		"aria-labelledby", headingID,
		"data-parent", "#"+accID,
	)
	dom.Append(coll, content)
	dom.Append(card, coll)
	return card
}
