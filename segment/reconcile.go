package segment

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/use-agent/gdocpress/dom"
	"github.com/use-agent/gdocpress/models"
)

// Fragments returns the top-level numbered lists of body in order. Lists
// already nested inside other elements are not fragments.
func Fragments(body *html.Node) []*html.Node {
	return dom.ChildrenOf(body, atom.Ol)
}

// Start returns the declared start number of ol (1 when absent or invalid).
func Start(ol *html.Node) int {
	v, ok := dom.Attr(ol, "start")
	if !ok {
		return 1
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 1
	}
	return n
}

// ItemCount returns the number of items ol contributes to the running
// numbering: its immediate <li> children plus the items of continuation
// fragments absorbed into it. An absorbed list declaring start 1 (or
// less) is a restarted sub-list and does not continue the numbering.
// Lists nested inside items never count.
func ItemCount(ol *html.Node) int {
	n := 0
	for c := ol.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case dom.IsElement(c, atom.Li):
			n++
		case dom.IsElement(c, atom.Ol) && Start(c) > 1:
			n += ItemCount(c)
		}
	}
	return n
}

// firstBreak returns k for the first adjacent pair (k, k+1) whose numbering
// does not continue, or -1 when every pair is consistent.
func firstBreak(frags []*html.Node) int {
	total := 0
	for k := 0; k+1 < len(frags); k++ {
		total += ItemCount(frags[k])
		if Start(frags[k+1]) != total+1 {
			return k
		}
	}
	return -1
}

// Consistent reports whether start(k+1) == 1 + count(0..k) for every
// adjacent fragment pair.
func Consistent(frags []*html.Node) bool {
	return firstBreak(frags) < 0
}

// Reconcile re-nests numbered lists that the editor split apart. While
// some fragment pair is inconsistent, the earlier fragment absorbs its
// following siblings up to and including the next numbered list. Once all
// pairs are consistent, content sitting between two fragments is absorbed
// into the earlier one together with the later fragment.
//
// Every absorption removes one fragment, so the loop is bounded by the
// initial fragment count; exceeding it is reported as unreconcilable.
func Reconcile(body *html.Node) error {
	frags := Fragments(body)
	if len(frags) < 2 {
		return nil
	}

	for budget := len(frags); ; budget-- {
		k := firstBreak(frags)
		if k < 0 {
			break
		}
		if budget == 0 {
			return models.NewConvertError(models.ErrCodeUnreconcilable,
				fmt.Sprintf("numbering still broken after %d merges", len(frags)), nil)
		}
		if err := absorbThrough(frags[k]); err != nil {
			return err
		}
		frags = Fragments(body)
	}

	return absorbGaps(body)
}

// absorbThrough moves the siblings following into inside it, stopping after
// the first numbered list moved.
func absorbThrough(into *html.Node) error {
	for {
		next := into.NextSibling
		if next == nil {
			return models.NewConvertError(models.ErrCodeUnreconcilable,
				fmt.Sprintf("numbered list starting at %d has no following list to merge", Start(into)), nil)
		}
		dom.Move(into, next)
		if dom.IsElement(next, atom.Ol) {
			return nil
		}
	}
}

// hasGap reports whether anything other than blank text lies between
// siblings a and b.
func hasGap(a, b *html.Node) bool {
	for s := a.NextSibling; s != nil && s != b; s = s.NextSibling {
		if s.Type != html.TextNode || strings.TrimSpace(s.Data) != "" {
			return true
		}
	}
	return false
}

func absorbGaps(body *html.Node) error {
	for {
		frags := Fragments(body)
		merged := false
		for k := 0; k+1 < len(frags); k++ {
			if hasGap(frags[k], frags[k+1]) {
				if err := absorbThrough(frags[k]); err != nil {
					return err
				}
				merged = true
				break
			}
		}
		if !merged {
			return nil
		}
	}
}

// normalizeFirstStart resets the declared start of the first fragment to 1.
func normalizeFirstStart(body *html.Node) bool {
	frags := Fragments(body)
	if len(frags) == 0 {
		return false
	}
	if v, ok := dom.Attr(frags[0], "start"); ok && strings.TrimSpace(v) != "1" {
		dom.SetAttr(frags[0], "start", "1")
		return true
	}
	return false
}
