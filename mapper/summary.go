package mapper

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/EBI-Metabolights/mztab2mtbls/isatab"
	"github.com/EBI-Metabolights/mztab2mtbls/mztab"
)

// assignmentNamespace seeds the deterministic assignment row
// identifiers. Fixed so re-running the conversion on unchanged input
// yields byte-identical identifiers.
var assignmentNamespace = uuid.NewSHA1(
	uuid.NameSpaceURL,
	[]byte("https://www.ebi.ac.uk/metabolights/mztab2mtbls/assignment"),
)

// SummaryMapper fans the small molecule summary table out into the
// long-format assignment table: one row per (identification, assay
// reporting abundance) pair. Numeric values are copied verbatim from
// the source text; identifications are resolved against the databases
// registered by the database mapper.
type SummaryMapper struct {
	// Logger reports rows skipped for having no identification. Nil
	// falls back to slog.Default.
	Logger *slog.Logger
}

// Name implements Mapper.
func (m *SummaryMapper) Name() string { return "small-molecule-summary" }

// Update implements Mapper.
func (m *SummaryMapper) Update(src *mztab.MzTab, dst *isatab.StudyModel) error {
	logger := m.Logger
	if logger == nil {
		logger = slog.Default()
	}
	study := dst.Study()
	table := study.AssignmentTable
	assays := src.Metadata.Assays

	for _, row := range src.SmallMoleculeSummary {
		if len(row.DatabaseIdentifiers) == 0 {
			logger.Debug("summary row has no identification, skipped",
				slog.Int("sml_id", row.SMLID))
			continue
		}
		for idIdx, dbID := range row.DatabaseIdentifiers {
			db, err := resolveDatabase(study, dbID)
			if err != nil {
				return err
			}
			for assayIdx, abundance := range row.AbundanceAssay {
				if abundance == nil {
					continue
				}
				if assayIdx >= len(assays) {
					return &IntegrityError{
						Kind: "assay",
						Ref:  fmt.Sprintf("abundance_assay[%d]", assayIdx+1),
					}
				}
				assayName := assays[assayIdx].Name
				table.AppendRow(map[string]string{
					isatab.ColAssignmentID:       assignmentID(row.SMLID, dbID, assayName),
					isatab.ColDatabaseIdentifier: dbID,
					isatab.ColMetaboliteName:     elementAt(row.ChemicalName, idIdx),
					isatab.ColChemicalFormula:    elementAt(row.ChemicalFormula, idIdx),
					isatab.ColSMILES:             elementAt(row.SMILES, idIdx),
					isatab.ColInChI:              elementAt(row.InChI, idIdx),
					isatab.ColNeutralMass:        numberAt(row.TheoreticalNeutralMass, idIdx),
					isatab.ColAdductIon:          elementAt(row.AdductIons, idIdx),
					isatab.ColReliability:        row.Reliability,
					isatab.ColRetentionTime:      row.RetentionTime.String(),
					isatab.ColDatabase:           databaseName(db),
					isatab.ColDatabaseVersion:    databaseVersion(db),
					isatab.ColAssayRef:           assayName,
					isatab.ColAbundance:          abundance.String(),
				})
			}
		}
	}
	return nil
}

// resolveDatabase looks the identifier's prefix up in the registered
// databases. Identifiers without a namespace resolve to no database;
// a namespaced identifier with no registered database is an integrity
// error.
func resolveDatabase(study *isatab.Study, id string) (*isatab.DatabaseReference, error) {
	prefix := identifierPrefix(id)
	if prefix == "" || prefix == noDatabasePrefix {
		return nil, nil
	}
	db := study.DatabaseByPrefix(prefix)
	if db == nil {
		return nil, &IntegrityError{Kind: "database", Ref: id}
	}
	return db, nil
}

// assignmentID derives the stable row identifier from the analyte
// identity plus the assay reference.
func assignmentID(smlID int, dbID, assayName string) string {
	key := fmt.Sprintf("%d|%s|%s", smlID, dbID, assayName)
	return uuid.NewSHA1(assignmentNamespace, []byte(key)).String()
}

func elementAt(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	// Single-valued columns apply to every identification of the row.
	if len(values) == 1 {
		return values[0]
	}
	return ""
}

func numberAt(values []json.Number, i int) string {
	if i < len(values) {
		return values[i].String()
	}
	if len(values) == 1 {
		return values[0].String()
	}
	return ""
}

func databaseName(db *isatab.DatabaseReference) string {
	if db == nil {
		return ""
	}
	return db.Name
}

func databaseVersion(db *isatab.DatabaseReference) string {
	if db == nil {
		return ""
	}
	return db.Version
}
