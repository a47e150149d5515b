package cleaner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/use-agent/gdocpress/models"
)

func TestResolveHref(t *testing.T) {
	tests := []struct {
		name string
		href string
		want string
	}{
		{"redirect", "https://redirect.example/url?q=https%3A%2F%2Ftarget.example%2Fpage&sa=D", "https://target.example/page"},
		{"redirect without tail", "https://www.google.com/url?q=https://seismica.library.mcgill.ca", "https://seismica.library.mcgill.ca"},
		{"plus kept", "https://www.google.com/url?q=https://x.example/a+b&sa=D&ust=1", "https://x.example/a+b"},
		{"same page anchor", "#section-3", "#section-3"},
		{"footnote anchor", "#ftnt1", "#ftnt1"},
		{"mail link", "mailto:a@b.com", "mailto:a@b.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveHref(tt.href, DefaultPassthrough)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveHref_Malformed(t *testing.T) {
	for _, href := range []string{"https://plain.example/page", "https://www.google.com/url?q=%zz&sa=D"} {
		got, err := ResolveHref(href, DefaultPassthrough)
		require.Error(t, err, href)
		assert.True(t, models.HasCode(err, models.ErrCodeMalformedLink))
		assert.Equal(t, href, got, "original href kept")
	}
}

func TestResolveLinks(t *testing.T) {
	doc := newDoc(t, `<p>`+
		`<a href="https://www.google.com/url?q=https://a.example&sa=D">a</a>`+
		`<a href="#ftnt2">[2]</a>`+
		`<a href="https://b.example/raw">b</a>`+
		`<a href="https://c.example/nope">c</a>`+
		`</p>`)

	resolved, err := ResolveLinks(doc.Nodes[0], []string{"https://b.example"})

	assert.Equal(t, 1, resolved)
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 1)

	assert.Equal(t, "https://a.example", doc.Find("a").Eq(0).AttrOr("href", ""))
	assert.Equal(t, "#ftnt2", doc.Find("a").Eq(1).AttrOr("href", ""))
	assert.Equal(t, "https://b.example/raw", doc.Find("a").Eq(2).AttrOr("href", ""))
	assert.Equal(t, "https://c.example/nope", doc.Find("a").Eq(3).AttrOr("href", ""))
}
