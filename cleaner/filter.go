package cleaner

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	"github.com/use-agent/gdocpress/models"
)

// CompileExclusions parses the CSS selectors of elements to drop before
// segmentation.
func CompileExclusions(selectors []string) ([]goquery.Matcher, error) {
	sels := make([]goquery.Matcher, 0, len(selectors))
	for _, s := range selectors {
		sel, err := cascadia.Compile(s)
		if err != nil {
			return nil, models.NewConvertError(models.ErrCodeInvalidConfig,
				fmt.Sprintf("invalid exclude selector %q", s), err)
		}
		sels = append(sels, sel)
	}
	return sels, nil
}

// ExcludeElements removes every body element matching one of sels and
// returns how many were removed.
func ExcludeElements(doc *goquery.Document, sels []goquery.Matcher) int {
	removed := 0
	body := doc.Find("body")
	for _, sel := range sels {
		matches := body.FindMatcher(sel)
		removed += matches.Length()
		matches.Remove()
	}
	return removed
}
