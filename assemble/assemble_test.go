package assemble

import (
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/use-agent/gdocpress/dom"
	"github.com/use-agent/gdocpress/models"
)

func newSection(id, title, text string) *models.Section {
	body := dom.NewElement("div")
	dom.Append(body, textElement("p", text))
	return &models.Section{
		Boundary: models.Boundary{Index: 1, ID: id, Title: title},
		Body:     body,
	}
}

func reuse(origin *models.Section, title string) *models.Section {
	return &models.Section{
		Boundary: models.Boundary{Index: 9, ID: origin.ID, Title: title},
		Body:     dom.Clone(origin.Body),
		Reused:   true,
		Origin:   origin,
	}
}

func part(id, title string, secs ...*models.Section) *models.Part {
	return &models.Part{Boundary: models.Boundary{Index: 0, ID: id, Title: title}, Sections: secs}
}

func virtualPart(secs ...*models.Section) *models.Part {
	return &models.Part{Boundary: models.Boundary{Index: -1}, Sections: secs}
}

func query(t *testing.T, body *html.Node) *goquery.Selection {
	t.Helper()
	require.Equal(t, "body", body.Data)
	return goquery.NewDocumentFromNode(body).Selection
}

func TestIDSet(t *testing.T) {
	ids := newIDSet()
	assert.Equal(t, "a", ids.unique("a"))
	assert.Equal(t, "a-2", ids.unique("a"))
	assert.Equal(t, "a-3", ids.unique("a"))
	assert.Equal(t, "b", ids.unique("b"))
	assert.Equal(t, "c-2", ids.unique("c-2"))
	assert.Equal(t, "c", ids.unique("c"))
	assert.Equal(t, "c-3", ids.unique("c"), "skips an id already handed out")
}

func TestAnchor_Questions(t *testing.T) {
	first := newSection("is-it-free", "Is it free?", "Yes.")
	doc := &models.Document{Parts: []*models.Part{
		virtualPart(first, newSection("who-decides", "Who decides?", "Editors."), reuse(first, "Is it free??")),
	}}

	q := query(t, Assemble(doc, Options{Mode: models.ModeAnchor}))

	assert.Equal(t, 0, q.Find("h1").Length())
	assert.Equal(t, "Contents:", q.Children().First().Text())

	toc := q.Children().Eq(1)
	require.Equal(t, "ul", goquery.NodeName(toc))
	links := toc.Find("li > a")
	require.Equal(t, 3, links.Length())
	assert.Equal(t, "#is-it-free", links.Eq(0).AttrOr("href", ""))
	assert.Equal(t, "Who decides?", links.Eq(1).Text())
	assert.Equal(t, "#is-it-free-2", links.Eq(2).AttrOr("href", ""))

	wrappers := q.Find("div.heading-wrapper")
	require.Equal(t, 3, wrappers.Length())
	w := wrappers.First()
	assert.Equal(t, "is-it-free", w.Find("h2").AttrOr("id", ""))
	assert.Equal(t, "#is-it-free", w.Find("a.anchor-link").AttrOr("href", ""))
	assert.Equal(t, "#", w.Find("span.anchor-icon").Text())
	assert.Equal(t, "true", w.Find("span.anchor-icon").AttrOr("aria-hidden", ""))
	assert.Equal(t, "Is it free?", w.Find("span.hidden").Text())

	assert.Equal(t, "Yes.", w.Next().Text(), "body follows its heading")
	assert.Equal(t, 2, q.Find("p:contains('Yes.')").Length())
}

func TestAnchor_Parts(t *testing.T) {
	doc := &models.Document{Parts: []*models.Part{
		part("authors", "Authors", newSection("submission", "Submission", "a")),
		part("reviewers", "Reviewers", newSection("reports", "Reports", "b"), newSection("", "", "c")),
	}}

	q := query(t, Assemble(doc, Options{Mode: models.ModeAnchor, ContentsTitle: "On this page"}))

	assert.Equal(t, "On this page", q.Find("h2").First().Text())
	h1s := q.Find("h1")
	require.Equal(t, 2, h1s.Length())
	assert.Equal(t, "authors", h1s.Eq(0).AttrOr("id", ""))

	top := q.Children().Eq(1).Children()
	require.Equal(t, 2, top.Length())
	assert.Equal(t, "#reviewers", top.Eq(1).Children().First().AttrOr("href", ""))
	assert.Equal(t, 2, top.Eq(1).Find("ul > li").Length())
	assert.Equal(t, 1, q.Find("h2#section").Length(), "empty ids fall back")
}

func TestAccordion_FlatSequential(t *testing.T) {
	sub := newSection("submission", "Submission", "how to submit")
	doc := &models.Document{Parts: []*models.Part{
		part("authors", "Authors", sub, newSection("fees", "Fees", "none")),
		part("reviewers", "Reviewers", reuse(sub, "Submission")),
	}}

	q := query(t, Assemble(doc, Options{Mode: models.ModeAccordionFlat}))

	assert.Equal(t, 2, q.Find("h1").Length())
	accs := q.Find("div.accordion")
	require.Equal(t, 2, accs.Length())
	assert.Equal(t, "acc_authors", accs.Eq(0).AttrOr("id", ""))
	assert.Equal(t, "acc_reviewers", accs.Eq(1).AttrOr("id", ""))
	assert.Equal(t, "h1", goquery.NodeName(accs.Eq(0).Prev()))

	panel := q.Find("#panel-00")
	require.Equal(t, 1, panel.Length())
	assert.True(t, panel.HasClass("collapse"))
	assert.Equal(t, "#acc_authors", panel.AttrOr("data-parent", ""))
	assert.Equal(t, "heading-panel-00", panel.AttrOr("aria-labelledby", ""))
	assert.Equal(t, "how to submit", panel.Find("div.card-body").Text())
	assert.Equal(t, 1, q.Find("#panel-01").Length())

	btn := accs.Eq(0).Find("div.card-header h2.mb-0 button").First()
	assert.Equal(t, buttonClass, btn.AttrOr("class", ""))
	assert.Equal(t, "#panel-00", btn.AttrOr("data-target", ""))
	assert.Equal(t, "panel-00", btn.AttrOr("aria-controls", ""))
	assert.Equal(t, "false", btn.AttrOr("aria-expanded", ""))
	assert.Equal(t, "Submission", btn.Find("span.pull-left").Text())

	reused := accs.Eq(1).Find("div.card")
	require.Equal(t, 1, reused.Length())
	assert.Equal(t, 0, reused.Find("div.collapse").Length(), "no duplicate body")
	assert.Equal(t, "#panel-00", reused.Find("button").AttrOr("data-target", ""))
	assert.Equal(t, 2, q.Find("div.collapse").Length())
}

func TestAccordion_DerivedIDs(t *testing.T) {
	doc := &models.Document{Parts: []*models.Part{
		virtualPart(
			newSection("data-policy", "Data policy", "x"),
			newSection("", "", "y"),
			newSection("data-policy", "Data Policy", "z"),
		),
	}}

	q := query(t, Assemble(doc, Options{Mode: models.ModeAccordionFlat, PanelIDs: models.PanelDerived}))

	assert.Equal(t, 0, q.Find("h1").Length())
	ids := q.Find("div.collapse").Map(func(_ int, s *goquery.Selection) string {
		return s.AttrOr("id", "")
	})
	assert.Equal(t, []string{"data-policy", "panel-01", "data-policy-2"}, ids)
}

func TestAccordion_Nested(t *testing.T) {
	doc := &models.Document{Parts: []*models.Part{
		part("authors", "Authors", newSection("submission", "Submission", "a")),
		part("editors", "Editors", newSection("duties", "Duties", "b"), newSection("conflicts", "Conflicts", "c")),
	}}

	q := query(t, Assemble(doc, Options{Mode: models.ModeAccordionNested}))

	outer := q.Children()
	require.Equal(t, 1, outer.Length())
	assert.Equal(t, "acc_document", outer.AttrOr("id", ""))
	assert.Equal(t, 0, q.Find("h1").Length())

	partCards := outer.ChildrenFiltered("div.card")
	require.Equal(t, 2, partCards.Length())
	assert.Equal(t, "Editors", partCards.Eq(1).Find("h2 span.pull-left").Text())

	inner := partCards.Eq(1).Find("div.card-body > div.accordion")
	require.Equal(t, 1, inner.Length())
	assert.Equal(t, "acc_editors", inner.AttrOr("id", ""))
	assert.Equal(t, 2, inner.Find("h3.mb-0").Length())
	assert.Equal(t, "#acc_editors", inner.Find("div.collapse").First().AttrOr("data-parent", ""))
	assert.Equal(t, "#acc_document", partCards.Eq(0).ChildrenFiltered("div.collapse").AttrOr("data-parent", ""))
}

func TestAccordion_NestedVirtualPart(t *testing.T) {
	doc := &models.Document{Parts: []*models.Part{virtualPart(newSection("q", "Q", "a"))}}

	q := query(t, Assemble(doc, Options{Mode: models.ModeAccordionNested}))

	accs := q.Children()
	require.Equal(t, 1, accs.Length(), "empty outer accordion removed")
	assert.Equal(t, "acc_document-2", accs.AttrOr("id", ""))
	assert.Equal(t, 1, accs.Find("h2.mb-0").Length())
}
