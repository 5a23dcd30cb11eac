package mapper

import (
	"strings"

	"github.com/EBI-Metabolights/mztab2mtbls/isatab"
	"github.com/EBI-Metabolights/mztab2mtbls/mztab"
)

// noDatabasePrefix marks summary identifiers without a namespace, e.g.
// mzTab-M's "no database" placeholder entries.
const noDatabasePrefix = "null"

// DatabaseMapper registers one destination database reference per
// distinct source database name and verifies that every database
// prefix referenced from the summary rows has a header entry.
type DatabaseMapper struct{}

// Name implements Mapper.
func (m *DatabaseMapper) Name() string { return "database" }

// Update implements Mapper.
func (m *DatabaseMapper) Update(src *mztab.MzTab, dst *isatab.StudyModel) error {
	study := dst.Study()

	for _, db := range src.Metadata.Databases {
		name := db.Param.Name
		if name == "" {
			name = db.Prefix
		}
		if name == "" || hasDatabase(study, name) {
			continue
		}
		study.Databases = append(study.Databases, isatab.DatabaseReference{
			Name:    name,
			Prefix:  strings.ToLower(db.Prefix),
			Version: db.Version,
			URI:     db.URI,
		})
	}

	// Every identifier prefix used by the summary table must resolve
	// against the header database list; a dangling prefix aborts the
	// run before any assignment rows are built.
	for _, row := range src.SmallMoleculeSummary {
		for _, id := range row.DatabaseIdentifiers {
			prefix := identifierPrefix(id)
			if prefix == "" || prefix == noDatabasePrefix {
				continue
			}
			if study.DatabaseByPrefix(prefix) == nil {
				return &IntegrityError{Kind: "database", Ref: id}
			}
		}
	}
	return nil
}

func hasDatabase(study *isatab.Study, name string) bool {
	for _, db := range study.Databases {
		if db.Name == name {
			return true
		}
	}
	return false
}

// identifierPrefix returns the lower-cased namespace of a prefixed
// database identifier ("hmdb" for "hmdb:HMDB0000122"), or "" when the
// identifier carries no namespace.
func identifierPrefix(id string) string {
	if i := strings.IndexByte(id, ':'); i > 0 {
		return strings.ToLower(id[:i])
	}
	return ""
}
