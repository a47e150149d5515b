package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompter_Ask(t *testing.T) {
	var out bytes.Buffer
	p := newPrompter(strings.NewReader("\n  custom.html \n"), &out, true)

	got, err := p.ask("Enter path to input file", "combined_doc.html")
	require.NoError(t, err)
	assert.Equal(t, "combined_doc.html", got)

	got, err = p.ask("Enter path to input file", "combined_doc.html")
	require.NoError(t, err)
	assert.Equal(t, "custom.html", got)

	got, err = p.ask("Enter path to input file", "combined_doc.html")
	require.NoError(t, err)
	assert.Equal(t, "combined_doc.html", got, "end of input takes the default")

	assert.Contains(t, out.String(), "Enter path to input file [combined_doc.html]: ")
}

func TestPrompter_NotInteractive(t *testing.T) {
	var out bytes.Buffer
	p := newPrompter(strings.NewReader("ignored\n"), &out, false)

	got, err := p.ask("q", "def")
	require.NoError(t, err)
	assert.Equal(t, "def", got)

	yes, err := p.confirm("q", true)
	require.NoError(t, err)
	assert.True(t, yes)
	assert.Zero(t, out.Len())
}

func TestPrompter_Confirm(t *testing.T) {
	var out bytes.Buffer
	p := newPrompter(strings.NewReader("maybe\nY\n\nno\n"), &out, true)

	yes, err := p.confirm("Guidelines?", false)
	require.NoError(t, err)
	assert.True(t, yes)
	assert.Contains(t, out.String(), "please answer y or n")

	yes, err = p.confirm("Guidelines?", false)
	require.NoError(t, err)
	assert.False(t, yes)

	yes, err = p.confirm("Guidelines?", true)
	require.NoError(t, err)
	assert.False(t, yes)
}
