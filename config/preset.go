package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/use-agent/gdocpress/models"
)

// Preset binds one document variant to its segmentation scheme, output
// shape and default file names.
type Preset struct {
	Name   string
	Scheme models.Scheme
	Mode   models.OutputMode

	// Input is the file name offered when none is given.
	Input  string
	Output string

	// Passthrough adds href prefixes to the always-kept "#" and "mailto".
	Passthrough []string

	// DropLeadingImage removes the logo the editor exports at the top.
	DropLeadingImage bool
}

var presets = map[string]Preset{
	"faq": {
		Scheme: models.SchemeFAQ, Mode: models.ModeAnchor,
		Input: "Seismica_FAQ.html", Output: "out_faq.html",
		DropLeadingImage: true,
	},
	"faq-accordion": {
		Scheme: models.SchemeFAQ, Mode: models.ModeAccordionFlat,
		Input: "Seismica_FAQ.html", Output: "out_faq_accordion.html",
		DropLeadingImage: true,
	},
	"combined": {
		Scheme: models.SchemeHeadings, Mode: models.ModeAccordionFlat,
		Input: "combined_doc.html", Output: "out_allthings.html",
		DropLeadingImage: true,
	},
}

// LookupPreset returns the named preset. For "single", guidelines picks
// the guidelines document over the editorial policies document.
func LookupPreset(name string, guidelines bool) (Preset, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "single" {
		p := Preset{
			Name:             name,
			Scheme:           models.SchemeHeadings,
			Mode:             models.ModeAccordionNested,
			Input:            "editorial_policies.html",
			Output:           "out_edpol.html",
			Passthrough:      []string{"#ftnt"},
			DropLeadingImage: true,
		}
		if guidelines {
			p.Input, p.Output = "guidelines.html", "out_guidelines.html"
		}
		return p, nil
	}

	p, ok := presets[name]
	if !ok {
		return Preset{}, models.NewConvertError(models.ErrCodeInvalidConfig,
			fmt.Sprintf("unknown preset %q (supported: %s)", name, strings.Join(PresetNames(), ", ")), nil)
	}
	p.Name = name
	return p, nil
}

// PresetNames lists the known presets in sorted order.
func PresetNames() []string {
	names := []string{"single"}
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
