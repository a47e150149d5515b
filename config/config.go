package config

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	yaml "gopkg.in/yaml.v3"

	"github.com/use-agent/gdocpress/cleaner"
	"github.com/use-agent/gdocpress/models"
)

// Config holds all application configuration.
type Config struct {
	// Preset selects the document variant (see Presets).
	Preset string `yaml:"preset"` // default: "single"

	// Guidelines picks the guidelines flavour of the "single" preset
	// instead of the editorial policies flavour. Nil means not configured.
	Guidelines *bool `yaml:"guidelines,omitempty"`

	// Input and Output override the preset's default file names.
	Input  string `yaml:"input"`
	Output string `yaml:"output"`

	Convert ConvertConfig `yaml:"convert"`
	Log     LogConfig     `yaml:"log"`
}

// ConvertConfig overrides the preset's pipeline settings. Empty values
// keep the preset's choice.
type ConvertConfig struct {
	Mode     string `yaml:"mode"`      // "anchor", "accordion-flat", "accordion-nested"
	PanelIDs string `yaml:"panel_ids"` // "sequential" or "derived"; default: "sequential"
	Format   string `yaml:"format"`    // "html" or "markdown"; default: "html"

	// CommentClass skips comment class discovery.
	CommentClass string `yaml:"comment_class"`

	// Exclude lists CSS selectors of elements dropped before segmentation.
	Exclude []string `yaml:"exclude"`

	// Passthrough adds href prefixes that are never redirect wrappers.
	Passthrough []string `yaml:"passthrough"`

	ContentsTitle string `yaml:"contents_title"` // default: "Contents:"

	// SimilarityThreshold is the SimHash distance for near-duplicate
	// section warnings. Negative disables them.
	SimilarityThreshold int `yaml:"similarity_threshold"` // default: 3

	// KeepGoing emits sections with unreconcilable lists instead of failing.
	KeepGoing bool `yaml:"keep_going"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // default: "info"
	Format string `yaml:"format"` // "json" or "text"; default: "text"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Preset:     envOr("GDOCPRESS_PRESET", "single"),
		Guidelines: envBoolPtr("GDOCPRESS_GUIDELINES"),
		Input:      os.Getenv("GDOCPRESS_INPUT"),
		Output:     os.Getenv("GDOCPRESS_OUTPUT"),
		Convert: ConvertConfig{
			Mode:                os.Getenv("GDOCPRESS_MODE"),
			PanelIDs:            envOr("GDOCPRESS_PANEL_IDS", "sequential"),
			Format:              envOr("GDOCPRESS_FORMAT", "html"),
			CommentClass:        os.Getenv("GDOCPRESS_COMMENT_CLASS"),
			Exclude:             envSliceOr("GDOCPRESS_EXCLUDE", nil),
			Passthrough:         envSliceOr("GDOCPRESS_PASSTHROUGH", nil),
			ContentsTitle:       envOr("GDOCPRESS_CONTENTS_TITLE", "Contents:"),
			SimilarityThreshold: envIntOr("GDOCPRESS_SIMILARITY_THRESHOLD", 3),
			KeepGoing:           envBoolOr("GDOCPRESS_KEEP_GOING", false),
		},
		Log: LogConfig{
			Level:  envOr("GDOCPRESS_LOG_LEVEL", "info"),
			Format: envOr("GDOCPRESS_LOG_FORMAT", "text"),
		},
	}
}

// LoadFile superimposes the YAML file at path on cfg. Unknown keys are
// rejected.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return models.NewConvertError(models.ErrCodeInvalidConfig,
			fmt.Sprintf("failed to decode configuration file %s", path), err)
	}
	return nil
}

// Dump renders cfg as YAML.
func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}

// IsGuidelines reports whether the guidelines flavour is selected.
func (c *Config) IsGuidelines() bool {
	return c.Guidelines != nil && *c.Guidelines
}

// InputPath returns the configured input or the preset default.
func (c *Config) InputPath(p Preset) string {
	if c.Input != "" {
		return c.Input
	}
	return p.Input
}

// OutputPath returns the configured output or the preset default.
func (c *Config) OutputPath(p Preset) string {
	if c.Output != "" {
		return c.Output
	}
	return p.Output
}

// Options resolves the pipeline options for preset p with the overrides
// in c.Convert applied.
func (c *Config) Options(p Preset) (cleaner.Options, error) {
	opts := cleaner.Options{
		Scheme:              p.Scheme,
		Mode:                p.Mode,
		CommentClass:        c.Convert.CommentClass,
		Exclude:             c.Convert.Exclude,
		Passthrough:         append(append([]string(nil), p.Passthrough...), c.Convert.Passthrough...),
		DropLeadingImage:    p.DropLeadingImage,
		ContentsTitle:       c.Convert.ContentsTitle,
		SimilarityThreshold: c.Convert.SimilarityThreshold,
		KeepGoing:           c.Convert.KeepGoing,
	}

	var err error
	if c.Convert.Mode != "" {
		if opts.Mode, err = models.ParseOutputMode(c.Convert.Mode); err != nil {
			return opts, err
		}
	}
	if c.Convert.PanelIDs != "" {
		if opts.PanelIDs, err = models.ParsePanelIDs(c.Convert.PanelIDs); err != nil {
			return opts, err
		}
	}
	if c.Convert.Format != "" {
		if opts.Format, err = models.ParseFormat(c.Convert.Format); err != nil {
			return opts, err
		}
	}
	return opts, nil
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envBoolPtr(key string) *bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return &b
		}
	}
	return nil
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
