package cleaner

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/use-agent/gdocpress/dom"
)

// commentAnchorRe matches the ids the editor puts on comment bodies (cmnt3)
// and on the in-text references pointing at them (cmnt_ref3).
var commentAnchorRe = regexp.MustCompile(`^cmnt(?:_ref)?\d+$`)

// commentAnchorSel narrows the candidates before the exact id check.
var commentAnchorSel = cascadia.MustCompile(`[id^="cmnt"]`)

// StripOptions controls the optional parts of artifact stripping.
type StripOptions struct {
	// DropLeadingImage removes the first <img> in the body (the document
	// logo the editor exports above the title).
	DropLeadingImage bool
}

// StripReport counts what StripArtifacts removed.
type StripReport struct {
	CommentBlocks  int
	CommentAnchors int
	Headings6      int
	LeadingImage   bool
	EmptyBlocks    int
	EmptyLinks     int
	EmptySups      int
}

// commentAnchors returns every descendant of n whose id is a comment anchor.
func commentAnchors(n *html.Node) []*html.Node {
	var out []*html.Node
	for _, m := range cascadia.QueryAll(n, commentAnchorSel) {
		if id, _ := dom.Attr(m, "id"); commentAnchorRe.MatchString(id) {
			out = append(out, m)
		}
	}
	return out
}

// FindCommentClass returns the class attribute of the first container that
// holds a comment anchor. All comment containers in an export share the
// same class. Returns "" when the document has no comments.
func FindCommentClass(doc *goquery.Document) string {
	var class string
	doc.Find("div").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if len(commentAnchors(s.Nodes[0])) == 0 {
			return true
		}
		class, _ = s.Attr("class")
		return false
	})
	return class
}

// StripArtifacts removes editor-only nodes from doc in place:
//
//  1. comment containers carrying markerClass (skipped when it is empty)
//  2. comment anchors and comment references
//  3. <h6> wrappers left by outline numbering (unwrapped, content kept)
//  4. the leading logo image, if requested
//  5. top-level blocks, links and superscripts without any text
func StripArtifacts(doc *goquery.Document, markerClass string, opts StripOptions) StripReport {
	var rpt StripReport

	if classes := strings.Fields(markerClass); len(classes) > 0 {
		doc.Find("div").Each(func(_ int, s *goquery.Selection) {
			n := s.Nodes[0]
			if n.Parent != nil && dom.HasClasses(n, classes) {
				dom.Remove(n)
				rpt.CommentBlocks++
			}
		})
	} else {
		slog.Debug("no comment marker class, skipping comment containers")
	}

	for _, n := range doc.Nodes {
		for _, a := range commentAnchors(n) {
			if a.Parent != nil {
				dom.Remove(a)
				rpt.CommentAnchors++
			}
		}
	}

	doc.Find("h6").Each(func(_ int, s *goquery.Selection) {
		dom.Unwrap(s.Nodes[0])
		rpt.Headings6++
	})

	if opts.DropLeadingImage {
		if img := doc.Find("body img").First(); img.Length() > 0 {
			img.Remove()
			rpt.LeadingImage = true
		}
	}

	doc.Find("body").Children().Each(func(_ int, s *goquery.Selection) {
		if s.Text() == "" {
			s.Remove()
			rpt.EmptyBlocks++
		}
	})

	rpt.EmptyLinks = removeEmpty(doc, "a")
	rpt.EmptySups = removeEmpty(doc, "sup")

	slog.Debug("artifacts stripped",
		"commentBlocks", rpt.CommentBlocks,
		"commentAnchors", rpt.CommentAnchors,
		"h6", rpt.Headings6,
		"emptyBlocks", rpt.EmptyBlocks,
		"emptyLinks", rpt.EmptyLinks,
		"emptySups", rpt.EmptySups,
	)
	return rpt
}

// removeEmpty drops every element matching selector that has no text.
func removeEmpty(doc *goquery.Document, selector string) int {
	removed := 0
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		if s.Nodes[0].Parent != nil && s.Text() == "" {
			s.Remove()
			removed++
		}
	})
	return removed
}
