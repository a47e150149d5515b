package models

import "golang.org/x/net/html"

// Boundary marks a heading in the flat top-level child sequence of <body>.
type Boundary struct {
	// Index is the position in the top-level child sequence. A virtual
	// boundary (flat FAQ documents have no heading-1) uses -1.
	Index int

	// ID is the normalized identifier derived from the heading text.
	ID string

	// Title is the display text of the heading.
	Title string
}

// Virtual reports whether b stands for a heading that is not in the document.
func (b Boundary) Virtual() bool { return b.Index < 0 }

// Outline is the result of segment location. Parts always ends with one
// sentinel boundary whose Index is len(children)+1; it must never be
// dereferenced as a real element.
type Outline struct {
	Parts    []Boundary
	Sections []Boundary
}

// Sentinel returns the end-of-document fencepost.
func (o Outline) Sentinel() Boundary {
	if len(o.Parts) == 0 {
		return Boundary{}
	}
	return o.Parts[len(o.Parts)-1]
}

// Section is one heading-2 (or FAQ question) with its built body.
type Section struct {
	Boundary

	// Heading is the originating top-level node.
	Heading *html.Node

	// Body is a detached container holding the section content.
	Body *html.Node

	// Reused is set when Body is a structural copy of an earlier section
	// with the same ID. Origin then points at that section.
	Reused bool
	Origin *Section

	// Err records a section-local failure (e.g. unreconcilable lists).
	Err error
}

// Part is one heading-1 range.
type Part struct {
	Boundary

	Heading  *html.Node
	Sections []*Section
}

// Document is the re-segmented document handed to the output assembler.
type Document struct {
	Parts []*Part
}

// Sections returns every section in output order.
func (d *Document) Sections() []*Section {
	var out []*Section
	for _, p := range d.Parts {
		out = append(out, p.Sections...)
	}
	return out
}
