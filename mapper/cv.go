package mapper

import (
	"sort"

	"github.com/EBI-Metabolights/mztab2mtbls/isatab"
	"github.com/EBI-Metabolights/mztab2mtbls/mztab"
)

// CVMapper registers one ontology source reference per distinct CV
// namespace found anywhere in the source document: the declared cv
// list first, then every namespace label carried by a parameter in the
// metadata or summary sections. Deduplicated by label.
type CVMapper struct{}

// Name implements Mapper.
func (m *CVMapper) Name() string { return "cv" }

// Update implements Mapper.
func (m *CVMapper) Update(src *mztab.MzTab, dst *isatab.StudyModel) error {
	declared := make(map[string]bool)
	for _, cv := range src.Metadata.CVs {
		if cv.Label == "" {
			continue
		}
		declared[cv.Label] = true
		dst.AddOntologySource(isatab.OntologySourceReference{
			SourceName:        cv.Label,
			SourceFile:        cv.URI,
			SourceVersion:     cv.Version,
			SourceDescription: cv.FullName,
		})
	}

	// Namespaces referenced by parameters but never declared still get
	// a (bare) source reference, sorted for deterministic output.
	seen := make(map[string]bool)
	for _, p := range collectParameters(src) {
		if p.CVLabel != "" && !declared[p.CVLabel] {
			seen[p.CVLabel] = true
		}
	}
	labels := make([]string, 0, len(seen))
	for label := range seen {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		dst.AddOntologySource(isatab.OntologySourceReference{SourceName: label})
	}
	return nil
}

// collectParameters gathers every CV parameter reachable from the
// metadata header and the small molecule summary rows.
func collectParameters(src *mztab.MzTab) []mztab.Parameter {
	var params []mztab.Parameter
	meta := src.Metadata

	for _, s := range meta.Samples {
		params = append(params, s.Species...)
		params = append(params, s.Tissue...)
		params = append(params, s.CellType...)
		params = append(params, s.Disease...)
		params = append(params, s.Custom...)
	}
	for _, sp := range meta.SampleProcessing {
		for _, step := range sp.Steps {
			params = append(params, step...)
		}
	}
	for _, sw := range meta.Software {
		params = append(params, sw.Parameter)
	}
	for _, db := range meta.Databases {
		params = append(params, db.Param)
	}
	for _, in := range meta.Instruments {
		if in.Name != nil {
			params = append(params, *in.Name)
		}
		if in.Source != nil {
			params = append(params, *in.Source)
		}
		params = append(params, in.Analyzer...)
		if in.Detector != nil {
			params = append(params, *in.Detector)
		}
	}
	for _, run := range meta.MsRuns {
		if run.Format != nil {
			params = append(params, *run.Format)
		}
		if run.IDFormat != nil {
			params = append(params, *run.IDFormat)
		}
		params = append(params, run.ScanPolarity...)
	}
	for _, a := range meta.Assays {
		params = append(params, a.Custom...)
	}
	if meta.QuantMethod != nil {
		params = append(params, *meta.QuantMethod)
	}
	for _, row := range src.SmallMoleculeSummary {
		if row.BestIDConfidenceMeasure != nil {
			params = append(params, *row.BestIDConfidenceMeasure)
		}
	}
	return params
}
