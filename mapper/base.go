package mapper

import (
	"github.com/EBI-Metabolights/mztab2mtbls/isatab"
	"github.com/EBI-Metabolights/mztab2mtbls/mztab"
	"github.com/EBI-Metabolights/mztab2mtbls/vocabulary/mtbls"
)

// BaseMapper copies the document-level fields (title, description,
// mzTab id/version) onto the study and seeds the default ontology
// source references. It runs first.
type BaseMapper struct{}

// Name implements Mapper.
func (m *BaseMapper) Name() string { return "base" }

// Update implements Mapper.
func (m *BaseMapper) Update(src *mztab.MzTab, dst *isatab.StudyModel) error {
	meta := src.Metadata

	dst.Investigation.Title = meta.Title
	dst.Investigation.Description = meta.Description

	study := dst.Study()
	study.Title = meta.Title
	study.Description = meta.Description

	if meta.MzTabID != "" {
		dst.Comments["mzTab-ID"] = meta.MzTabID
	}
	if meta.Version != "" {
		dst.Comments["mzTab-version"] = meta.Version
	}

	for _, s := range mtbls.DefaultSources {
		dst.AddOntologySource(isatab.OntologySourceReference{
			SourceName:        s.Name,
			SourceFile:        s.URI,
			SourceVersion:     s.Version,
			SourceDescription: s.Description,
		})
	}
	return nil
}
