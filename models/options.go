package models

import (
	"fmt"
	"strings"
)

// OutputMode selects the shape produced by the output assembler.
type OutputMode int

const (
	ModeAnchor OutputMode = iota
	ModeAccordionFlat
	ModeAccordionNested
)

var outputModeNames = []string{"anchor", "accordion-flat", "accordion-nested"}

func (m OutputMode) String() string {
	if int(m) < len(outputModeNames) && m >= 0 {
		return outputModeNames[m]
	}
	return fmt.Sprintf("OutputMode(%d)", int(m))
}

// ParseOutputMode converts a name into an OutputMode.
func ParseOutputMode(name string) (OutputMode, error) {
	for i, n := range outputModeNames {
		if strings.EqualFold(n, name) {
			return OutputMode(i), nil
		}
	}
	return 0, NewConvertError(ErrCodeInvalidConfig, fmt.Sprintf("unknown output mode %q (supported: %s)", name, strings.Join(outputModeNames, ", ")), nil)
}

// Scheme selects how the segment locator finds section boundaries.
type Scheme int

const (
	// SchemeHeadings uses heading-1 / heading-2 markers.
	SchemeHeadings Scheme = iota
	// SchemeFAQ uses bold "Q" / "A" paragraph markers in a single level.
	SchemeFAQ
)

var schemeNames = []string{"headings", "faq"}

func (s Scheme) String() string {
	if int(s) < len(schemeNames) && s >= 0 {
		return schemeNames[s]
	}
	return fmt.Sprintf("Scheme(%d)", int(s))
}

// ParseScheme converts a name into a Scheme.
func ParseScheme(name string) (Scheme, error) {
	for i, n := range schemeNames {
		if strings.EqualFold(n, name) {
			return Scheme(i), nil
		}
	}
	return 0, NewConvertError(ErrCodeInvalidConfig, fmt.Sprintf("unknown segmentation scheme %q (supported: %s)", name, strings.Join(schemeNames, ", ")), nil)
}

// PanelIDs selects how accordion container identifiers are generated.
type PanelIDs int

const (
	// PanelSequential numbers containers panel-00, panel-01, ...
	PanelSequential PanelIDs = iota
	// PanelDerived uses the normalized heading identifier.
	PanelDerived
)

var panelIDNames = []string{"sequential", "derived"}

func (p PanelIDs) String() string {
	if int(p) < len(panelIDNames) && p >= 0 {
		return panelIDNames[p]
	}
	return fmt.Sprintf("PanelIDs(%d)", int(p))
}

// ParsePanelIDs converts a name into a PanelIDs value.
func ParsePanelIDs(name string) (PanelIDs, error) {
	for i, n := range panelIDNames {
		if strings.EqualFold(n, name) {
			return PanelIDs(i), nil
		}
	}
	return 0, NewConvertError(ErrCodeInvalidConfig, fmt.Sprintf("unknown panel id style %q (supported: %s)", name, strings.Join(panelIDNames, ", ")), nil)
}

// Format selects the rendered output format.
type Format int

const (
	FormatHTML Format = iota
	FormatMarkdown
)

var formatNames = []string{"html", "markdown"}

func (f Format) String() string {
	if int(f) < len(formatNames) && f >= 0 {
		return formatNames[f]
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat converts a name into a Format.
func ParseFormat(name string) (Format, error) {
	for i, n := range formatNames {
		if strings.EqualFold(n, name) {
			return Format(i), nil
		}
	}
	return 0, NewConvertError(ErrCodeInvalidConfig, fmt.Sprintf("unknown output format %q (supported: %s)", name, strings.Join(formatNames, ", ")), nil)
}
