package mtbls

// Term is an ontology term reference: a source namespace label, an
// accession within that source and the human-readable term name.
type Term struct {
	Source    string
	Accession string
	Name      string
}

// Source describes an ontology source reference as it appears in the
// ONTOLOGY SOURCE REFERENCE section of an investigation file.
type Source struct {
	Name        string
	URI         string
	Version     string
	Description string
}

// FallbackSource is the term source used when a source value has no
// entry in a mapping table and is passed through as a literal.
const FallbackSource = "MTBLS"

// MeasurementType is the measurement type recorded for every mapped assay.
var MeasurementType = Term{Source: "OBI", Accession: "OBI:0000366", Name: "metabolite profiling"}

// TechnologyType is the technology type recorded for every mapped assay.
var TechnologyType = Term{Source: "OBI", Accession: "OBI:0000470", Name: "mass spectrometry"}

// TechnologyPlatform is the free-text platform recorded for mapped assays.
const TechnologyPlatform = "mass spectrometry"

// Standard MetaboLights protocol names, in the order they appear in a
// study protocols section.
const (
	ProtocolSampleCollection    = "Sample collection"
	ProtocolExtraction          = "Extraction"
	ProtocolChromatography      = "Chromatography"
	ProtocolMassSpectrometry    = "Mass spectrometry"
	ProtocolDataTransformation  = "Data transformation"
	ProtocolMetaboliteIdentific = "Metabolite identification"
)

// SampleProcessingType is the fixed protocol-type annotation attached
// to protocols derived from mzTab-M sample_processing entries.
var SampleProcessingType = Term{Source: FallbackSource, Name: "sample processing"}

// ProtocolTypes maps each standard protocol name to its type annotation.
var ProtocolTypes = map[string]Term{
	ProtocolSampleCollection:    {Source: FallbackSource, Name: "sample collection"},
	ProtocolExtraction:          {Source: FallbackSource, Name: "extraction"},
	ProtocolChromatography:      {Source: FallbackSource, Name: "chromatography"},
	ProtocolMassSpectrometry:    {Source: FallbackSource, Name: "mass spectrometry"},
	ProtocolDataTransformation:  {Source: FallbackSource, Name: "data transformation"},
	ProtocolMetaboliteIdentific: {Source: FallbackSource, Name: "metabolite identification"},
}

// DefaultSources are the ontology source references seeded into every
// converted study regardless of the CVs declared by the source document.
var DefaultSources = []Source{
	{
		Name:        "NCIT",
		URI:         "http://purl.obolibrary.org/obo/ncit.owl",
		Description: "NCI Thesaurus OBO Edition",
	},
	{
		Name:        "OBI",
		URI:         "http://purl.obolibrary.org/obo/obi.owl",
		Description: "Ontology for Biomedical Investigations",
	},
	{
		Name:        "EFO",
		URI:         "http://www.ebi.ac.uk/efo/efo.owl",
		Description: "Experimental Factor Ontology",
	},
	{
		Name:        FallbackSource,
		URI:         "https://www.ebi.ac.uk/metabolights/",
		Description: "MetaboLights Ontology",
	},
}
