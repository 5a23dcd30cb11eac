package mapper

import (
	"strings"

	"github.com/EBI-Metabolights/mztab2mtbls/isatab"
	"github.com/EBI-Metabolights/mztab2mtbls/mztab"
)

// PublicationMapper appends one study publication per source
// publication. Missing optional identifiers stay empty; nothing is
// fabricated.
type PublicationMapper struct{}

// Name implements Mapper.
func (m *PublicationMapper) Name() string { return "publication" }

// Update implements Mapper.
func (m *PublicationMapper) Update(src *mztab.MzTab, dst *isatab.StudyModel) error {
	study := dst.Study()
	for _, p := range src.Metadata.Publications {
		var pub isatab.Publication
		for _, item := range p.Items {
			switch strings.ToLower(item.Type) {
			case "doi":
				pub.DOI = strings.TrimPrefix(strings.TrimPrefix(item.Accession, "doi:"), "DOI:")
			case "pubmed":
				pub.PubMedID = item.Accession
			}
			// "uri" items have no ISA-Tab publication field; omitted.
		}
		study.Publications = append(study.Publications, pub)
	}
	return nil
}
