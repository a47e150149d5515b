package simhash

import (
	"strings"

	"golang.org/x/net/html"
)

// FingerprintNode fingerprints the subtree under n. Element names and the
// words of text nodes are read in document order and hashed as 3-token
// shingles, so both structure and wording contribute.
func FingerprintNode(n *html.Node) uint64 {
	tokens := nodeTokens(n)
	if shingles := makeShingles(tokens, 3); len(shingles) > 0 {
		return FingerprintTokens(shingles)
	}
	return FingerprintTokens(tokens)
}

// WordCount returns the number of words in the text under n.
func WordCount(n *html.Node) int {
	count := 0
	walk(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			count += len(strings.Fields(c.Data))
		}
	})
	return count
}

func nodeTokens(n *html.Node) []string {
	var tokens []string
	walk(n, func(c *html.Node) {
		switch c.Type {
		case html.ElementNode:
			tokens = append(tokens, "<"+c.Data+">")
		case html.TextNode:
			for _, w := range strings.Fields(c.Data) {
				tokens = append(tokens, strings.ToLower(w))
			}
		}
	})
	return tokens
}

func walk(n *html.Node, fn func(*html.Node)) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		fn(c)
		walk(c, fn)
	}
}

// makeShingles joins every run of n consecutive tokens.
func makeShingles(tokens []string, n int) []string {
	if len(tokens) < n {
		return nil
	}

	shingles := make([]string, 0, len(tokens)-n+1)
	for i := 0; i <= len(tokens)-n; i++ {
		shingles = append(shingles, strings.Join(tokens[i:i+n], "_"))
	}
	return shingles
}
