package segment

import (
	"fmt"
	"log/slog"
	"strings"

	"go.uber.org/multierr"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/use-agent/gdocpress/cache"
	"github.com/use-agent/gdocpress/dom"
	"github.com/use-agent/gdocpress/models"
	"github.com/use-agent/gdocpress/simhash"
)

// minDiagnosticWords is the smallest body checked for near-duplicates.
// Very short bodies collide too easily to be worth a warning.
const minDiagnosticWords = 20

// Options configures a Builder.
type Options struct {
	// StripAnswerMarkers removes the bold "A." run opening FAQ answers.
	StripAnswerMarkers bool

	// SimilarityThreshold is the SimHash distance at or below which two
	// differently titled bodies are reported as near-duplicates. Negative
	// disables the check.
	SimilarityThreshold int

	// Reconciler repairs the numbered lists of one section body. Nil uses
	// Reconcile.
	Reconciler func(body *html.Node) error
}

// Builder partitions top-level children into section bodies.
type Builder struct {
	opts Options
}

// NewBuilder creates a Builder.
func NewBuilder(opts Options) *Builder {
	if opts.Reconciler == nil {
		opts.Reconciler = Reconcile
	}
	return &Builder{opts: opts}
}

// buildRun holds the state of one Build call.
type buildRun struct {
	opts     Options
	children []*html.Node
	memo     *cache.Memo[*models.Section]
	prints   []fingerprint
}

type fingerprint struct {
	id string
	fp uint64
}

// Build moves the children between the outline's boundaries into section
// bodies. Sections whose identifier was already built get a structural
// copy of the first body instead of being rebuilt; their own content in the
// source is dropped. Section failures are recorded on the section and
// combined into the returned error; building always continues.
func (b *Builder) Build(children []*html.Node, outline models.Outline) (*models.Document, error) {
	run := &buildRun{
		opts:     b.opts,
		children: children,
		memo:     cache.NewMemo[*models.Section](),
	}

	doc := &models.Document{}
	var errs error
	parts := outline.Parts
	if len(parts) > 0 {
		parts = parts[:len(parts)-1]
	}
	for i, top := range parts {
		next := outline.Sentinel()
		if i+1 < len(parts) {
			next = parts[i+1]
		}
		part := &models.Part{Boundary: top}
		if !top.Virtual() {
			part.Heading = children[top.Index]
		}

		subs := sectionsBetween(outline.Sections, top.Index, next.Index)
		if len(subs) > 0 && subs[0].Index > top.Index+1 {
			slog.Debug("content before first section dropped",
				"part", top.Title, "nodes", subs[0].Index-top.Index-1)
		}
		subs = append(subs, models.Boundary{Index: next.Index})

		for j := 0; j+1 < len(subs); j++ {
			sec := run.section(subs[j], subs[j+1])
			errs = multierr.Append(errs, sec.Err)
			part.Sections = append(part.Sections, sec)
		}
		doc.Parts = append(doc.Parts, part)
	}

	var reused []string
	for _, id := range run.memo.Keys() {
		if hits := run.memo.Hits(id); hits > 0 {
			reused = append(reused, fmt.Sprintf("%s:%d", id, hits))
		}
	}
	slog.Debug("sections built",
		"parts", len(doc.Parts),
		"sections", len(doc.Sections()),
		"unique", run.memo.Len(),
		"reused", reused,
	)
	return doc, errs
}

// sectionsBetween returns the boundaries strictly between lo and hi.
func sectionsBetween(all []models.Boundary, lo, hi int) []models.Boundary {
	var out []models.Boundary
	for _, s := range all {
		if s.Index > lo && s.Index < hi {
			out = append(out, s)
		}
	}
	return out
}

func (r *buildRun) section(cur, next models.Boundary) *models.Section {
	sec := &models.Section{Boundary: cur, Heading: r.children[cur.Index]}

	if origin, ok := r.memo.Get(cur.ID); ok {
		sec.Reused = true
		sec.Origin = origin
		sec.Body = dom.Clone(origin.Body)
		slog.Debug("section body reused", "section", cur.Title, "id", cur.ID)
		return sec
	}

	body := dom.NewElement("div")
	for k := cur.Index + 1; k < next.Index; k++ {
		if k >= len(r.children) {
			slog.Debug("section range ends past the document", "section", cur.Title, "index", k)
			break
		}
		r.place(body, k)
	}

	if normalizeFirstStart(body) {
		slog.Debug("first numbered list restarted at 1", "section", cur.Title)
	}
	if err := r.opts.Reconciler(body); err != nil {
		sec.Err = models.NewConvertError(models.ErrCodeUnreconcilable,
			fmt.Sprintf("section %q (%s)", cur.Title, cur.ID), err)
		slog.Warn("numbered lists could not be reconciled", "section", cur.Title, "error", err)
	}

	sec.Body = body
	r.checkNearDuplicate(cur, body)
	r.memo.Set(cur.ID, sec)
	return sec
}

// place moves child k into body, applying the element specific rules.
func (r *buildRun) place(body *html.Node, k int) {
	c := r.children[k]
	switch {
	case dom.IsElement(c, atom.Table):
		synthesizeHeader(c)
		dom.Move(body, c)

	case dom.IsElement(c, atom.Ul) && k > 0 && dom.IsElement(r.children[k-1], atom.Ol):
		// the editor flattens bullets nested under a numbered item
		if ols := dom.FindAll(body, atom.Ol); len(ols) > 0 {
			dom.Move(ols[len(ols)-1], c)
		} else {
			dom.Move(body, c)
		}

	default:
		if r.opts.StripAnswerMarkers {
			stripAnswerMarker(c)
		}
		dom.Move(body, c)
	}
}

// synthesizeHeader marks t as a styled table and, when it has no <thead>,
// promotes its first row to a header row of <th> cells.
func synthesizeHeader(t *html.Node) {
	if !dom.HasClass(t, "table") {
		dom.SetAttr(t, "class", strings.Join(append(dom.Classes(t), "table"), " "))
	}
	if len(dom.ChildrenOf(t, atom.Thead)) > 0 {
		return
	}
	row := firstRow(t)
	if row == nil {
		return
	}
	thead := dom.NewElement("thead")
	dom.Move(thead, row)
	dom.InsertFirst(t, thead)
	for _, td := range dom.ChildrenOf(row, atom.Td) {
		dom.Rename(td, "th")
	}
}

// firstRow returns the first row of t itself, looking through <tbody> but
// not into nested tables.
func firstRow(t *html.Node) *html.Node {
	for c := t.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case dom.IsElement(c, atom.Tr):
			return c
		case dom.IsElement(c, atom.Tbody):
			if rows := dom.ChildrenOf(c, atom.Tr); len(rows) > 0 {
				return rows[0]
			}
		}
	}
	return nil
}

func (r *buildRun) checkNearDuplicate(cur models.Boundary, body *html.Node) {
	if r.opts.SimilarityThreshold < 0 || simhash.WordCount(body) < minDiagnosticWords {
		return
	}
	fp := simhash.FingerprintNode(body)
	for _, prev := range r.prints {
		if prev.id != cur.ID && simhash.Similar(prev.fp, fp, r.opts.SimilarityThreshold) {
			slog.Warn("section body nearly identical to an earlier section",
				"section", cur.ID, "similarTo", prev.id,
				"distance", simhash.Distance(prev.fp, fp))
			break
		}
	}
	r.prints = append(r.prints, fingerprint{id: cur.ID, fp: fp})
}
