package mztab

import (
	"fmt"
	"strings"
	"unicode"
)

// nullSentinel is the literal some producers emit in place of an absent
// value. jmztab-m writes it for unset optional columns.
const nullSentinel = "null"

// ScrubNullStrings walks a decoded JSON tree and replaces every scalar
// string equal to the null sentinel with nil, so model construction
// does not misread it as a present value. The input is mutated in place
// where possible; the (possibly replaced) value is returned. The pass
// is total and idempotent.
func ScrubNullStrings(v any) any {
	switch t := v.(type) {
	case string:
		if t == nullSentinel {
			return nil
		}
		return t
	case map[string]any:
		for k, val := range t {
			t[k] = ScrubNullStrings(val)
		}
		return t
	case []any:
		for i, val := range t {
			t[i] = ScrubNullStrings(val)
		}
		return t
	default:
		return v
	}
}

// NormalizationError reports a known field shape that could not be
// corrected. It aborts the run before any mapper executes.
type NormalizationError struct {
	Fix    string // name of the fixup that failed
	Field  string // JSON path of the offending field
	Reason string
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("normalization: fix %q on %s: %s", e.Fix, e.Field, e.Reason)
}

// modelFix is one targeted correction for a known producer quirk. Each
// fix is keyed to a specific field; applies reports whether the quirk
// is present, fix rewrites the field. Fixes must be idempotent: once
// applied, applies reports false.
type modelFix struct {
	name    string
	field   string
	applies func(*MzTab) bool
	fix     func(*MzTab) error
}

// modelFixes is the table of shipped corrections, applied in order.
// New quirks are added here, not as inline conditionals.
var modelFixes = []modelFix{
	{
		// jmztab-m occasionally flattens the per-step parameter lists
		// of sample_processing into a single one-step list even though
		// the source declared multiple steps. Re-nest one parameter
		// per step.
		name:    "sample-processing-flat-steps",
		field:   "metadata.sample_processing",
		applies: sampleProcessingFlattened,
		fix:     renestSampleProcessing,
	},
	{
		// A publication emitted with a single bare accession string in
		// place of typed items gets its item type inferred from the
		// accession shape.
		name:    "publication-item-string",
		field:   "metadata.publication",
		applies: publicationItemsUntyped,
		fix:     typePublicationItems,
	},
}

// ApplyModelFixes runs the quirk-correction table against a constructed
// model. It returns a *NormalizationError if a recognized quirk cannot
// be corrected.
func ApplyModelFixes(m *MzTab) error {
	for _, f := range modelFixes {
		if !f.applies(m) {
			continue
		}
		if err := f.fix(m); err != nil {
			return &NormalizationError{Fix: f.name, Field: f.field, Reason: err.Error()}
		}
	}
	return nil
}

func sampleProcessingFlattened(m *MzTab) bool {
	for _, sp := range m.Metadata.SampleProcessing {
		if len(sp.Steps) == 1 && len(sp.Steps[0]) > 1 {
			return true
		}
	}
	return false
}

func renestSampleProcessing(m *MzTab) error {
	for i, sp := range m.Metadata.SampleProcessing {
		if len(sp.Steps) != 1 || len(sp.Steps[0]) <= 1 {
			continue
		}
		steps := make([][]Parameter, 0, len(sp.Steps[0]))
		for _, p := range sp.Steps[0] {
			steps = append(steps, []Parameter{p})
		}
		m.Metadata.SampleProcessing[i].Steps = steps
	}
	return nil
}

func publicationItemsUntyped(m *MzTab) bool {
	for _, pub := range m.Metadata.Publications {
		for _, item := range pub.Items {
			if item.Type == "" && item.Accession != "" {
				return true
			}
		}
	}
	return false
}

func typePublicationItems(m *MzTab) error {
	for i, pub := range m.Metadata.Publications {
		for j, item := range pub.Items {
			if item.Type != "" || item.Accession == "" {
				continue
			}
			t, err := inferPublicationItemType(item.Accession)
			if err != nil {
				return fmt.Errorf("publication %d: %w", pub.ID, err)
			}
			m.Metadata.Publications[i].Items[j].Type = t
		}
	}
	return nil
}

// inferPublicationItemType classifies a bare accession as doi, pubmed
// or uri. Accessions that fit none of the shapes are unrecoverable.
func inferPublicationItemType(accession string) (string, error) {
	acc := strings.TrimSpace(accession)
	switch {
	case strings.HasPrefix(acc, "10."), strings.HasPrefix(strings.ToLower(acc), "doi:"):
		return "doi", nil
	case isDigits(acc):
		return "pubmed", nil
	case strings.Contains(acc, "://"):
		return "uri", nil
	default:
		return "", fmt.Errorf("cannot infer identifier type of %q", accession)
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
