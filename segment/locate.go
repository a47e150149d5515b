package segment

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/use-agent/gdocpress/dom"
	"github.com/use-agent/gdocpress/models"
)

// LocateHeadings records the position of every child that is or contains a
// heading-1 (a part) or a heading-2 (a section). A child holding both counts
// as heading-1. Parts end with the len(children)+1 sentinel.
func LocateHeadings(children []*html.Node) models.Outline {
	var o models.Outline
	for i, c := range children {
		switch {
		case dom.Contains(c, atom.H1):
			o.Parts = append(o.Parts, headingBoundary(i, c))
		case dom.Contains(c, atom.H2):
			o.Sections = append(o.Sections, headingBoundary(i, c))
		}
	}
	o.Parts = append(o.Parts, models.Boundary{Index: len(children) + 1})
	return o
}

func headingBoundary(i int, n *html.Node) models.Boundary {
	title := strings.TrimSpace(dom.Text(n))
	return models.Boundary{Index: i, ID: Normalize(title), Title: title}
}

var (
	questionRe = regexp.MustCompile(`^Q(?:[.:)\s]|$)`)
	answerRe   = regexp.MustCompile(`^A(?:[.:)\s]|$)`)
	// questionPrefixRe covers "Q." / "Q:" / "Q)" plus following blanks.
	questionPrefixRe = regexp.MustCompile(`^Q[.:)]?\s*`)
)

// firstStrong returns the first bold run of n (n included).
func firstStrong(n *html.Node) *html.Node {
	if dom.IsElement(n, atom.Strong) {
		return n
	}
	return dom.Find(n, atom.Strong)
}

func markerText(n *html.Node) string {
	s := firstStrong(n)
	if s == nil {
		return ""
	}
	return strings.TrimSpace(dom.Text(s))
}

// LocateQuestions segments a flat question/answer document. A child whose
// first bold run starts with a "Q" marker opens a section. The single part
// is virtual: it has no heading in the document and is never emitted.
func LocateQuestions(children []*html.Node) models.Outline {
	o := models.Outline{Parts: []models.Boundary{{Index: -1}}}
	for i, c := range children {
		if !questionRe.MatchString(markerText(c)) {
			continue
		}
		title := questionPrefixRe.ReplaceAllString(strings.TrimSpace(dom.Text(c)), "")
		o.Sections = append(o.Sections, models.Boundary{
			Index: i,
			ID:    Normalize(strings.TrimRight(title, "? ")),
			Title: title,
		})
	}
	o.Parts = append(o.Parts, models.Boundary{Index: len(children) + 1})
	return o
}

// stripAnswerMarker removes the bold "A." run that opens an answer.
func stripAnswerMarker(n *html.Node) bool {
	s := firstStrong(n)
	if s == nil || s == n || !answerRe.MatchString(strings.TrimSpace(dom.Text(s))) {
		return false
	}
	dom.Remove(s)
	return true
}
