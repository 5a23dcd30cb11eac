package mapper

import (
	"strings"

	"github.com/EBI-Metabolights/mztab2mtbls/isatab"
	"github.com/EBI-Metabolights/mztab2mtbls/mztab"
	"github.com/EBI-Metabolights/mztab2mtbls/vocabulary/mtbls"
)

// ContactMapper appends one study contact per source contact, mapping
// role strings through the fixed role vocabulary.
type ContactMapper struct{}

// Name implements Mapper.
func (m *ContactMapper) Name() string { return "contact" }

// Update implements Mapper.
func (m *ContactMapper) Update(src *mztab.MzTab, dst *isatab.StudyModel) error {
	study := dst.Study()
	for _, c := range src.Metadata.Contacts {
		first, last := splitName(c.Name)
		person := isatab.Person{
			FirstName:   first,
			LastName:    last,
			Email:       c.Email,
			Affiliation: c.Affiliation,
		}
		if c.Role != "" {
			t := mtbls.ContactRole(c.Role)
			person.Roles = append(person.Roles, isatab.OntologyAnnotation{
				Term:          t.Name,
				TermSourceRef: t.Source,
				TermAccession: t.Accession,
			})
		}
		study.Contacts = append(study.Contacts, person)
	}
	return nil
}

// splitName splits a free-text contact name into first and last parts.
// The last whitespace-separated token is the last name; everything
// before it is the first name. Single-token names map to last name only.
func splitName(name string) (first, last string) {
	fields := strings.Fields(name)
	switch len(fields) {
	case 0:
		return "", ""
	case 1:
		return "", fields[0]
	default:
		return strings.Join(fields[:len(fields)-1], " "), fields[len(fields)-1]
	}
}
