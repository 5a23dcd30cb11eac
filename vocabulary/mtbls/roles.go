package mtbls

import "strings"

// ContactRoles maps mzTab-M contact role strings (lower-cased) to their
// NCI Thesaurus annotations. Roles outside this table pass through as
// literals under the fallback source.
var ContactRoles = map[string]Term{
	"principal investigator": {Source: "NCIT", Accession: "NCIT:C19924", Name: "Principal Investigator"},
	"co-investigator":        {Source: "NCIT", Accession: "NCIT:C51812", Name: "Co-Investigator"},
	"investigator":           {Source: "NCIT", Accession: "NCIT:C25936", Name: "Investigator"},
	"author":                 {Source: "NCIT", Accession: "NCIT:C42781", Name: "Author"},
	"first author":           {Source: "NCIT", Accession: "NCIT:C42781", Name: "Author"},
	"curator":                {Source: "NCIT", Accession: "NCIT:C69141", Name: "Curator"},
	"submitter":              {Source: "NCIT", Accession: "NCIT:C70744", Name: "Submitter"},
}

// ContactRole resolves a source role string to a Term. Unrecognized
// roles are passed through verbatim under the fallback source so the
// original wording is never lost.
func ContactRole(role string) Term {
	if t, ok := ContactRoles[strings.ToLower(strings.TrimSpace(role))]; ok {
		return t
	}
	return Term{Source: FallbackSource, Name: role}
}
