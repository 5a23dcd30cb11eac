// Package mztab provides the in-memory model of an mzTab-M document in
// its JSON shape (as emitted by the jmztab-m converter), together with
// the normalization passes applied before and after model construction.
package mztab

import (
	"encoding/json"
	"strings"
)

// Parameter is a controlled-vocabulary parameter: a CV namespace label,
// an accession within it, the term name and an optional value.
type Parameter struct {
	ID          int    `json:"id,omitempty"`
	CVLabel     string `json:"cv_label,omitempty"`
	CVAccession string `json:"cv_accession,omitempty"`
	Name        string `json:"name,omitempty"`
	Value       string `json:"value,omitempty"`
}

// Contact is one entry of the metadata contact list.
type Contact struct {
	ID          int    `json:"id,omitempty"`
	Name        string `json:"name,omitempty"`
	Affiliation string `json:"affiliation,omitempty"`
	Email       string `json:"email,omitempty"`
	Role        string `json:"role,omitempty"`
}

// PublicationItem is one identifier of a publication. Type is one of
// "doi", "pubmed" or "uri".
type PublicationItem struct {
	Type      string `json:"type,omitempty"`
	Accession string `json:"accession,omitempty"`
}

// Publication is one entry of the metadata publication list.
type Publication struct {
	ID    int               `json:"id,omitempty"`
	Items []PublicationItem `json:"publicationItems,omitempty"`
}

// CV declares a controlled vocabulary used by the document.
type CV struct {
	ID       int    `json:"id,omitempty"`
	Label    string `json:"label,omitempty"`
	FullName string `json:"full_name,omitempty"`
	Version  string `json:"version,omitempty"`
	URI      string `json:"uri,omitempty"`
}

// Sample is one entry of the metadata sample list.
type Sample struct {
	ID          int         `json:"id,omitempty"`
	Name        string      `json:"name,omitempty"`
	Species     []Parameter `json:"species,omitempty"`
	Tissue      []Parameter `json:"tissue,omitempty"`
	CellType    []Parameter `json:"cell_type,omitempty"`
	Disease     []Parameter `json:"disease,omitempty"`
	Description string      `json:"description,omitempty"`
	Custom      []Parameter `json:"custom,omitempty"`
}

// SampleProcessing is one ordered sample-processing entry; each inner
// slice is the parameter list of one processing step.
type SampleProcessing struct {
	ID    int           `json:"id,omitempty"`
	Steps [][]Parameter `json:"sampleProcessing,omitempty"`
}

// Software is one entry of the metadata software list.
type Software struct {
	ID        int       `json:"id,omitempty"`
	Parameter Parameter `json:"parameter,omitempty"`
	Settings  []string  `json:"setting,omitempty"`
}

// Database is one entry of the metadata database list. Prefix is the
// namespace used by summary-row database identifiers (for example
// "hmdb" in "hmdb:HMDB0000122").
type Database struct {
	ID      int       `json:"id,omitempty"`
	Param   Parameter `json:"param,omitempty"`
	Prefix  string    `json:"prefix,omitempty"`
	Version string    `json:"version,omitempty"`
	URI     string    `json:"uri,omitempty"`
}

// Instrument is one entry of the metadata instrument list.
type Instrument struct {
	ID       int         `json:"id,omitempty"`
	Name     *Parameter  `json:"name,omitempty"`
	Source   *Parameter  `json:"source,omitempty"`
	Analyzer []Parameter `json:"analyzer,omitempty"`
	Detector *Parameter  `json:"detector,omitempty"`
}

// MsRun is one entry of the metadata ms_run list.
type MsRun struct {
	ID           int         `json:"id,omitempty"`
	Name         string      `json:"name,omitempty"`
	Location     string      `json:"location,omitempty"`
	Format       *Parameter  `json:"format,omitempty"`
	IDFormat     *Parameter  `json:"id_format,omitempty"`
	ScanPolarity []Parameter `json:"scan_polarity,omitempty"`
}

// Assay is one entry of the metadata assay list. SampleRef and
// MsRunRefs reference entries of the sample and ms_run lists by id.
type Assay struct {
	ID          int         `json:"id,omitempty"`
	Name        string      `json:"name,omitempty"`
	Custom      []Parameter `json:"custom,omitempty"`
	ExternalURI string      `json:"external_uri,omitempty"`
	SampleRef   int         `json:"sample_ref,omitempty"`
	MsRunRefs   []int       `json:"ms_run_ref,omitempty"`
}

// StudyVariable is one entry of the metadata study_variable list.
type StudyVariable struct {
	ID          int    `json:"id,omitempty"`
	Name        string `json:"name,omitempty"`
	AssayRefs   []int  `json:"assay_refs,omitempty"`
	Description string `json:"description,omitempty"`
}

// Metadata is the mzTab-M metadata section.
type Metadata struct {
	Version          string             `json:"mzTab-version,omitempty"`
	MzTabID          string             `json:"mzTab-ID,omitempty"`
	Title            string             `json:"title,omitempty"`
	Description      string             `json:"description,omitempty"`
	Contacts         []Contact          `json:"contact,omitempty"`
	Publications     []Publication      `json:"publication,omitempty"`
	CVs              []CV               `json:"cv,omitempty"`
	Samples          []Sample           `json:"sample,omitempty"`
	SampleProcessing []SampleProcessing `json:"sample_processing,omitempty"`
	Software         []Software         `json:"software,omitempty"`
	Databases        []Database         `json:"database,omitempty"`
	Instruments      []Instrument       `json:"instrument,omitempty"`
	MsRuns           []MsRun            `json:"ms_run,omitempty"`
	Assays           []Assay            `json:"assay,omitempty"`
	StudyVariables   []StudyVariable    `json:"study_variable,omitempty"`
	QuantMethod      *Parameter         `json:"quantification_method,omitempty"`
}

// SmallMoleculeSummaryRow is one feature-level record of the small
// molecule summary table. AbundanceAssay is positional: index i aligns
// with Metadata.Assays[i]; a nil entry means the assay did not report
// an abundance for this row. Numeric fields stay json.Number so the
// source text is carried verbatim.
type SmallMoleculeSummaryRow struct {
	SMLID                   int            `json:"sml_id,omitempty"`
	SMFIDRefs               []int          `json:"smf_id_refs,omitempty"`
	DatabaseIdentifiers     []string       `json:"database_identifier,omitempty"`
	ChemicalFormula         []string       `json:"chemical_formula,omitempty"`
	SMILES                  []string       `json:"smiles,omitempty"`
	InChI                   []string       `json:"inchi,omitempty"`
	ChemicalName            []string       `json:"chemical_name,omitempty"`
	URI                     []string       `json:"uri,omitempty"`
	TheoreticalNeutralMass  []json.Number  `json:"theoretical_neutral_mass,omitempty"`
	AdductIons              []string       `json:"adduct_ions,omitempty"`
	Reliability             string         `json:"reliability,omitempty"`
	BestIDConfidenceMeasure *Parameter     `json:"best_id_confidence_measure,omitempty"`
	BestIDConfidenceValue   json.Number    `json:"best_id_confidence_value,omitempty"`
	AbundanceAssay          []*json.Number `json:"abundance_assay,omitempty"`
	AbundanceStudyVariable  []*json.Number `json:"abundance_study_variable,omitempty"`
	RetentionTime           json.Number    `json:"retention_time_in_seconds,omitempty"`
}

// MzTab is the root of a parsed mzTab-M document. Only the metadata
// section and the small molecule summary table are modeled; the
// feature and evidence tables are outside the converter's scope.
type MzTab struct {
	Metadata             Metadata                  `json:"metadata"`
	SmallMoleculeSummary []SmallMoleculeSummaryRow `json:"smallMoleculeSummary,omitempty"`
}

// SampleByID returns the sample with the given id, or nil.
func (m *MzTab) SampleByID(id int) *Sample {
	for i := range m.Metadata.Samples {
		if m.Metadata.Samples[i].ID == id {
			return &m.Metadata.Samples[i]
		}
	}
	return nil
}

// MsRunByID returns the ms_run with the given id, or nil.
func (m *MzTab) MsRunByID(id int) *MsRun {
	for i := range m.Metadata.MsRuns {
		if m.Metadata.MsRuns[i].ID == id {
			return &m.Metadata.MsRuns[i]
		}
	}
	return nil
}

// DatabaseByPrefix returns the database whose prefix matches, or nil.
// Matching is case-insensitive because producers disagree on casing.
func (m *MzTab) DatabaseByPrefix(prefix string) *Database {
	for i := range m.Metadata.Databases {
		if strings.EqualFold(m.Metadata.Databases[i].Prefix, prefix) {
			return &m.Metadata.Databases[i]
		}
	}
	return nil
}
