package cleaner

import (
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"

	"github.com/use-agent/gdocpress/dom"
)

// DefaultClassPrefix is the selector prefix of the editor's generated
// classes (.c0, .c1, ...).
const DefaultClassPrefix = ".c"

// PropertyRule maps the values of one CSS property to a semantic tag.
type PropertyRule struct {
	Property string
	Values   map[string]string
}

// PropertyMap is an ordered list of property rules. Order decides wrapping
// order when one class matches several properties.
type PropertyMap []PropertyRule

// DefaultPropertyMap returns the built-in style-to-tag table.
func DefaultPropertyMap() PropertyMap {
	return PropertyMap{
		{Property: "font-weight", Values: map[string]string{"700": "strong", "bold": "strong"}},
		{Property: "font-style", Values: map[string]string{"italic": "em"}},
		{Property: "text-decoration", Values: map[string]string{"underline": "u"}},
		{Property: "background-color", Values: map[string]string{"#ff0": "mark", "#ffff00": "mark", "yellow": "mark"}},
	}
}

// TranslationTable maps a bare class name to the tags its spans are
// wrapped in. Keys keep the order in which the stylesheet declared them.
type TranslationTable struct {
	keys []string
	tags map[string][]string
}

// Tags returns the wrap tags recorded for class.
func (t TranslationTable) Tags(class string) []string {
	return t.tags[class]
}

// Keys returns the translated class names in stylesheet order.
func (t TranslationTable) Keys() []string {
	return t.keys
}

// Len returns the number of translated classes.
func (t TranslationTable) Len() int {
	return len(t.keys)
}

func (t *TranslationTable) set(class string, tags []string) {
	if t.tags == nil {
		t.tags = make(map[string][]string)
	}
	if _, ok := t.tags[class]; !ok {
		t.keys = append(t.keys, class)
	}
	t.tags[class] = tags
}

// ruleKind classifies a stylesheet rule before it is inspected.
type ruleKind int

const (
	ruleNoSelector ruleKind = iota
	ruleOtherSelector
	ruleMatched
)

func classifySelector(selector, prefix string) ruleKind {
	switch {
	case selector == "":
		return ruleNoSelector
	case strings.HasPrefix(selector, prefix):
		return ruleMatched
	default:
		return ruleOtherSelector
	}
}

// BuildTranslationTable scans stylesheet for rules whose selector starts
// with prefix and records which semantic tags their declarations map to.
// The key is the bare class name (everything after the last '.').
// Unparseable rules are skipped.
func BuildTranslationTable(stylesheet string, props PropertyMap, prefix string) TranslationTable {
	var table TranslationTable
	p := css.NewParser(parse.NewInputString(stylesheet), false)

	var selectors []string
	lastErr := -1
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			err := p.Err()
			if err == nil || errors.Is(err, io.EOF) || p.Offset() == lastErr {
				return table
			}
			lastErr = p.Offset()
			slog.Debug("stylesheet rule skipped", "error", err)
			selectors = selectors[:0]

		case css.QualifiedRuleGrammar:
			selectors = append(selectors, splitSelectors(tokenText(data, p.Values()))...)

		case css.BeginRulesetGrammar:
			selectors = append(selectors, splitSelectors(tokenText(data, p.Values()))...)
			decls := declarations(p)
			for _, sel := range selectors {
				if classifySelector(sel, prefix) != ruleMatched {
					continue
				}
				if tags := matchProperties(decls, props); len(tags) > 0 {
					table.set(sel[strings.LastIndex(sel, ".")+1:], tags)
				}
			}
			selectors = selectors[:0]
		}
	}
}

// splitSelectors splits a selector group ("a, b") into its selectors.
func splitSelectors(group string) []string {
	var out []string
	for _, s := range strings.Split(group, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// declarations consumes a ruleset body and returns its property values,
// lower-cased with whitespace collapsed.
func declarations(p *css.Parser) map[string]string {
	decls := make(map[string]string)
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.EndRulesetGrammar:
			return decls
		case css.ErrorGrammar:
			if err := p.Err(); err == nil || errors.Is(err, io.EOF) {
				return decls
			}
		case css.DeclarationGrammar:
			var parts []string
			for _, v := range p.Values() {
				if v.TokenType != css.WhitespaceToken {
					parts = append(parts, string(v.Data))
				}
			}
			decls[strings.ToLower(string(data))] = strings.ToLower(strings.Join(parts, " "))
		}
	}
}

func matchProperties(decls map[string]string, props PropertyMap) []string {
	var tags []string
	for _, rule := range props {
		v, ok := decls[rule.Property]
		if !ok {
			continue
		}
		if tag, ok := rule.Values[v]; ok {
			tags = append(tags, tag)
		}
	}
	return tags
}

func tokenText(data []byte, values []css.Token) string {
	var sb strings.Builder
	sb.Write(data)
	for _, v := range values {
		sb.Write(v.Data)
	}
	return strings.TrimSpace(sb.String())
}

// ApplyTranslation rewrites every <span> in doc: a span carrying a
// translated class is wrapped in that class's tags, and then every span is
// unwrapped so only the semantic tags remain. Returns the number of spans
// that received at least one tag.
//
// Tags nest in table order with the first tag innermost: a class mapped to
// strong then em yields <em><strong>text</strong></em>, never the reverse.
// Both nestings render alike; the fixed order keeps output stable.
func ApplyTranslation(doc *goquery.Document, table TranslationTable) int {
	translated := 0
	doc.Find("span").Each(func(_ int, s *goquery.Selection) {
		n := s.Nodes[0]
		target := n
		for _, class := range table.keys {
			if !dom.HasClass(n, class) {
				continue
			}
			for _, tag := range table.tags[class] {
				w := dom.NewElement(tag)
				dom.Wrap(target, w)
				target = w
			}
		}
		if target != n {
			translated++
		}
		dom.Unwrap(n)
	})
	return translated
}
