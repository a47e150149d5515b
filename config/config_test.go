package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/use-agent/gdocpress/models"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, "single", cfg.Preset)
	assert.Nil(t, cfg.Guidelines)
	assert.False(t, cfg.IsGuidelines())
	assert.Equal(t, "sequential", cfg.Convert.PanelIDs)
	assert.Equal(t, "html", cfg.Convert.Format)
	assert.Equal(t, 3, cfg.Convert.SimilarityThreshold)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("GDOCPRESS_PRESET", "faq")
	t.Setenv("GDOCPRESS_GUIDELINES", "true")
	t.Setenv("GDOCPRESS_PASSTHROUGH", " https://journal.example , ,#top")
	t.Setenv("GDOCPRESS_SIMILARITY_THRESHOLD", "not-a-number")
	t.Setenv("GDOCPRESS_LOG_LEVEL", "debug")

	cfg := Load()
	assert.Equal(t, "faq", cfg.Preset)
	require.NotNil(t, cfg.Guidelines)
	assert.True(t, cfg.IsGuidelines())
	assert.Equal(t, []string{"https://journal.example", "#top"}, cfg.Convert.Passthrough)
	assert.Equal(t, 3, cfg.Convert.SimilarityThreshold, "invalid values fall back")
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gdocpress.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
preset: combined
output: site/all.html
convert:
  mode: accordion-nested
  keep_going: true
log:
  level: warn
`), 0o644))

	cfg := Load()
	require.NoError(t, LoadFile(path, cfg))

	assert.Equal(t, "combined", cfg.Preset)
	assert.Equal(t, "site/all.html", cfg.Output)
	assert.Equal(t, "accordion-nested", cfg.Convert.Mode)
	assert.True(t, cfg.Convert.KeepGoing)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format, "keys absent from the file keep their value")
}

func TestLoadFile_Guidelines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gdocpress.yaml")
	require.NoError(t, os.WriteFile(path, []byte("guidelines: false\n"), 0o644))

	cfg := Load()
	require.NoError(t, LoadFile(path, cfg))
	require.NotNil(t, cfg.Guidelines, "an explicit false is recorded")
	assert.False(t, cfg.IsGuidelines())
}

func TestLoadFile_Errors(t *testing.T) {
	err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), Load())
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("presets: faq\n"), 0o644))
	err = LoadFile(path, Load())
	require.Error(t, err)
	assert.True(t, models.HasCode(err, models.ErrCodeInvalidConfig))
}

func TestDump(t *testing.T) {
	data, err := Dump(Load())
	require.NoError(t, err)
	assert.Contains(t, string(data), "preset: single")
	assert.Contains(t, string(data), "similarity_threshold: 3")
	assert.NotContains(t, string(data), "guidelines:")

	g := true
	cfg := Load()
	cfg.Guidelines = &g
	data, err = Dump(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "guidelines: true")
}

func TestLookupPreset(t *testing.T) {
	tests := []struct {
		name       string
		guidelines bool
		scheme     models.Scheme
		mode       models.OutputMode
		input      string
		output     string
	}{
		{"faq", false, models.SchemeFAQ, models.ModeAnchor, "Seismica_FAQ.html", "out_faq.html"},
		{"faq-accordion", false, models.SchemeFAQ, models.ModeAccordionFlat, "Seismica_FAQ.html", "out_faq_accordion.html"},
		{"combined", false, models.SchemeHeadings, models.ModeAccordionFlat, "combined_doc.html", "out_allthings.html"},
		{"single", true, models.SchemeHeadings, models.ModeAccordionNested, "guidelines.html", "out_guidelines.html"},
		{"Single", false, models.SchemeHeadings, models.ModeAccordionNested, "editorial_policies.html", "out_edpol.html"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := LookupPreset(tt.name, tt.guidelines)
			require.NoError(t, err)
			assert.Equal(t, tt.scheme, p.Scheme)
			assert.Equal(t, tt.mode, p.Mode)
			assert.Equal(t, tt.input, p.Input)
			assert.Equal(t, tt.output, p.Output)
			assert.True(t, p.DropLeadingImage)
		})
	}

	p, err := LookupPreset("single", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"#ftnt"}, p.Passthrough)

	_, err = LookupPreset("blog", false)
	require.Error(t, err)
	assert.True(t, models.HasCode(err, models.ErrCodeInvalidConfig))
	assert.Contains(t, err.Error(), "combined, faq, faq-accordion, single")
}

func TestConfig_Options(t *testing.T) {
	p, err := LookupPreset("single", false)
	require.NoError(t, err)

	cfg := Load()
	cfg.Convert.Passthrough = []string{"https://journal.example"}
	opts, err := cfg.Options(p)
	require.NoError(t, err)
	assert.Equal(t, models.ModeAccordionNested, opts.Mode)
	assert.Equal(t, models.PanelSequential, opts.PanelIDs)
	assert.Equal(t, models.FormatHTML, opts.Format)
	assert.Equal(t, []string{"#ftnt", "https://journal.example"}, opts.Passthrough)
	assert.Equal(t, []string{"#ftnt"}, p.Passthrough, "preset not modified")

	cfg.Convert.Mode = "anchor"
	cfg.Convert.PanelIDs = "derived"
	cfg.Convert.Format = "markdown"
	opts, err = cfg.Options(p)
	require.NoError(t, err)
	assert.Equal(t, models.ModeAnchor, opts.Mode)
	assert.Equal(t, models.PanelDerived, opts.PanelIDs)
	assert.Equal(t, models.FormatMarkdown, opts.Format)

	cfg.Convert.Mode = "carousel"
	_, err = cfg.Options(p)
	assert.True(t, models.HasCode(err, models.ErrCodeInvalidConfig))
}

func TestConfig_Paths(t *testing.T) {
	p, _ := LookupPreset("faq", false)
	cfg := &Config{}
	assert.Equal(t, "Seismica_FAQ.html", cfg.InputPath(p))
	assert.Equal(t, "out_faq.html", cfg.OutputPath(p))

	cfg.Input, cfg.Output = "in.html", "-"
	assert.Equal(t, "in.html", cfg.InputPath(p))
	assert.Equal(t, "-", cfg.OutputPath(p))
}
