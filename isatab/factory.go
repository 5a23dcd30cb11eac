package isatab

import "fmt"

// Standard column names shared by the factory and the mappers.
const (
	ColSourceName         = "Source Name"
	ColSampleName         = "Sample Name"
	ColProtocolRef        = "Protocol REF"
	ColAssayName          = "MS Assay Name"
	ColRawDataFile        = "Raw Spectral Data File"
	ColAssignmentID       = "assignment_id"
	ColDatabaseIdentifier = "database_identifier"
	ColChemicalFormula    = "chemical_formula"
	ColSMILES             = "smiles"
	ColInChI              = "inchi"
	ColMetaboliteName     = "metabolite_identification"
	ColNeutralMass        = "theoretical_neutral_mass"
	ColAdductIon          = "adduct_ion"
	ColReliability        = "reliability"
	ColRetentionTime      = "retention_time"
	ColAssayRef           = "assay_ref"
	ColAbundance          = "abundance"
	ColDatabase           = "database"
	ColDatabaseVersion    = "database_version"
)

// NewStudyModel returns the empty destination skeleton for one study
// accession: investigation and study containers, standard file names
// and pre-initialized tables. Mappers never create containers.
func NewStudyModel(accession string) *StudyModel {
	study := &Study{
		Identifier: accession,
		FileName:   fmt.Sprintf("s_%s.txt", accession),
		SamplesTable: NewTable(
			ColSourceName,
			ColSampleName,
		),
		AssayTable: NewTable(
			ColSampleName,
			ColAssayName,
			ColRawDataFile,
		),
		AssignmentTable: NewTable(
			ColAssignmentID,
			ColDatabaseIdentifier,
			ColMetaboliteName,
			ColChemicalFormula,
			ColSMILES,
			ColInChI,
			ColNeutralMass,
			ColAdductIon,
			ColReliability,
			ColRetentionTime,
			ColDatabase,
			ColDatabaseVersion,
			ColAssayRef,
			ColAbundance,
		),
	}
	return &StudyModel{
		Accession: accession,
		Investigation: &Investigation{
			Identifier: accession,
			Study:      study,
		},
		Comments: make(map[string]string),
	}
}

// AssayFileName returns the standard assay table file name for the
// accession.
func AssayFileName(accession string) string {
	return fmt.Sprintf("a_%s_metabolite_profiling_mass_spectrometry.txt", accession)
}

// AssignmentFileName returns the standard metabolite assignment file
// name for the accession.
func AssignmentFileName(accession string) string {
	return fmt.Sprintf("m_%s_v2_maf.tsv", accession)
}
