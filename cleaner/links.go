package cleaner

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/andybalholm/cascadia"
	"go.uber.org/multierr"
	"golang.org/x/net/html"

	"github.com/use-agent/gdocpress/dom"
	"github.com/use-agent/gdocpress/models"
)

// redirectMarker precedes the real target in the editor's redirect links:
// https://www.google.com/url?q=<target>&sa=D&...
const redirectMarker = "?q="

// DefaultPassthrough lists href prefixes that are never redirect wrappers.
var DefaultPassthrough = []string{"#", "mailto"}

var hrefSel = cascadia.MustCompile("[href]")

// ResolveHref returns the real destination of a redirect-wrapped href.
// Hrefs starting with any passthrough prefix are returned unchanged.
func ResolveHref(href string, passthrough []string) (string, error) {
	for _, p := range passthrough {
		if strings.HasPrefix(href, p) {
			return href, nil
		}
	}

	_, rest, ok := strings.Cut(href, redirectMarker)
	if !ok {
		return href, models.NewConvertError(models.ErrCodeMalformedLink,
			fmt.Sprintf("no %q marker in %q", redirectMarker, href), nil)
	}
	target, _, _ := strings.Cut(rest, "&")
	decoded, err := url.PathUnescape(target)
	if err != nil {
		return href, models.NewConvertError(models.ErrCodeMalformedLink,
			fmt.Sprintf("cannot decode target of %q", href), err)
	}
	return decoded, nil
}

// ResolveLinks rewrites the href of every node under root. DefaultPassthrough
// is always honoured in addition to extra. Malformed links keep their
// original href; their errors are combined into the returned error, which
// callers treat as warnings.
func ResolveLinks(root *html.Node, extra []string) (int, error) {
	passthrough := append(append([]string(nil), DefaultPassthrough...), extra...)

	var (
		resolved int
		errs     error
	)
	for _, n := range cascadia.QueryAll(root, hrefSel) {
		href, _ := dom.Attr(n, "href")
		target, err := ResolveHref(href, passthrough)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if target != href {
			dom.SetAttr(n, "href", target)
			resolved++
		}
	}

	slog.Debug("links resolved", "resolved", resolved, "malformed", len(multierr.Errors(errs)))
	return resolved, errs
}
