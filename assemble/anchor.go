package assemble

import (
	"golang.org/x/net/html"

	"github.com/use-agent/gdocpress/dom"
	"github.com/use-agent/gdocpress/models"
)

// Anchor appends doc to body as linkable sections. Every section becomes
//
//	<div class="heading-wrapper">
//	  <h2 id="ID">Title</h2>
//	  <a class="anchor-link" href="#ID"><span class="anchor-icon" aria-hidden="true">#</span><span class="hidden">Title</span></a>
//	</div>
//
// followed by its body content. A table of contents with one entry per
// section is emitted first. Parts with a heading get an <h1> and group
// their sections in the contents.
func Anchor(body *html.Node, doc *models.Document, opts Options) {
	title := opts.ContentsTitle
	if title == "" {
		title = DefaultContentsTitle
	}
	dom.Append(body, textElement("h2", title))
	toc := dom.NewElement("ul")
	dom.Append(body, toc)

	ids := newIDSet()
	for _, part := range doc.Parts {
		entries := toc
		if !part.Virtual() {
			id := ids.unique(fallbackID(part.ID, "part"))
			dom.Append(body, textElement("h1", part.Title, "id", id))

			li := dom.NewElement("li")
			dom.Append(li, textElement("a", part.Title, "href", "#"+id))
			entries = dom.NewElement("ul")
			dom.Append(li, entries)
			dom.Append(toc, li)
		}

		for _, sec := range part.Sections {
			id := ids.unique(fallbackID(sec.ID, "section"))
			dom.Append(body, anchorHeading(id, sec.Title))
			moveChildren(body, sec.Body)

			li := dom.NewElement("li")
			dom.Append(li, textElement("a", sec.Title, "href", "#"+id))
			dom.Append(entries, li)
		}
	}
}

func anchorHeading(id, title string) *html.Node {
	link := dom.NewElement("a", "href", "#"+id, "class", "anchor-link")
	dom.Append(link, textElement("span", "#", "aria-hidden", "true", "class", "anchor-icon"))
	dom.Append(link, textElement("span", title, "class", "hidden"))

	wrapper := dom.NewElement("div", "class", "heading-wrapper")
	dom.Append(wrapper, textElement("h2", title, "id", id))
	dom.Append(wrapper, link)
	return wrapper
}

func fallbackID(id, kind string) string {
	if id == "" {
		return kind
	}
	return id
}
