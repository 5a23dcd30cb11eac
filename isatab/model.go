// Package isatab provides the in-memory ISA-Tab study model targeted by
// the mapping pipeline, the factory that builds an empty skeleton for a
// study accession, and the serializer that writes the on-disk file set.
package isatab

// OntologyAnnotation is a term with its source namespace and accession.
// A bare Term with empty source/accession is a literal annotation.
type OntologyAnnotation struct {
	Term          string
	TermSourceRef string
	TermAccession string
}

// OntologySourceReference is one entry of the investigation's ONTOLOGY
// SOURCE REFERENCE section.
type OntologySourceReference struct {
	SourceName        string
	SourceFile        string
	SourceVersion     string
	SourceDescription string
}

// Person is a study or investigation contact.
type Person struct {
	LastName    string
	FirstName   string
	MidInitials string
	Email       string
	Phone       string
	Affiliation string
	Address     string
	Roles       []OntologyAnnotation
}

// Publication is a study or investigation publication.
type Publication struct {
	PubMedID   string
	DOI        string
	AuthorList string
	Title      string
	Status     OntologyAnnotation
}

// Protocol is one entry of the study protocols section.
type Protocol struct {
	Name         string
	ProtocolType OntologyAnnotation
	Description  string
	URI          string
	Version      string
	Parameters   []OntologyAnnotation
}

// Factor is one entry of the study factors section.
type Factor struct {
	Name string
	Type OntologyAnnotation
}

// Assay is one assay entity of the investigation's STUDY ASSAYS section.
type Assay struct {
	FileName           string
	MeasurementType    OntologyAnnotation
	TechnologyType     OntologyAnnotation
	TechnologyPlatform string
}

// DatabaseReference is a registered identification database, shared
// between the database mapper (which registers entries) and the
// summary mapper (which resolves identifier prefixes against them).
type DatabaseReference struct {
	Name    string
	Prefix  string
	Version string
	URI     string
}

// SoftwareRecord is a distinct (name, version) software entry recorded
// on the study.
type SoftwareRecord struct {
	Name    string
	Version string
}

// Study is the single study of a converted investigation.
type Study struct {
	Identifier        string
	Title             string
	Description       string
	SubmissionDate    string
	PublicReleaseDate string
	FileName          string

	Factors      []Factor
	Protocols    []Protocol
	Contacts     []Person
	Publications []Publication
	Assays       []Assay

	Databases []DatabaseReference
	Software  []SoftwareRecord

	SamplesTable    *Table
	AssayTable      *Table
	AssignmentTable *Table
}

// Investigation is the top-level container of the destination model.
type Investigation struct {
	Identifier      string
	Title           string
	Description     string
	OntologySources []OntologySourceReference
	Publications    []Publication
	Contacts        []Person
	Study           *Study
}

// StudyModel is the destination model for one conversion run. It is
// created empty by NewStudyModel, mutated by the mapping pipeline and
// handed to WriteStudyModel; it is never reused across runs.
type StudyModel struct {
	Accession     string
	Investigation *Investigation

	// Comments carried into the investigation file header.
	Comments map[string]string
}

// Study returns the model's single study.
func (m *StudyModel) Study() *Study {
	return m.Investigation.Study
}

// AddOntologySource appends an ontology source reference unless one
// with the same name is already registered.
func (m *StudyModel) AddOntologySource(ref OntologySourceReference) bool {
	for _, existing := range m.Investigation.OntologySources {
		if existing.SourceName == ref.SourceName {
			return false
		}
	}
	m.Investigation.OntologySources = append(m.Investigation.OntologySources, ref)
	return true
}

// DatabaseByPrefix returns the registered database whose prefix matches,
// or nil.
func (s *Study) DatabaseByPrefix(prefix string) *DatabaseReference {
	for i := range s.Databases {
		if s.Databases[i].Prefix == prefix {
			return &s.Databases[i]
		}
	}
	return nil
}

// FactorByName returns the study factor with the given name, or nil.
func (s *Study) FactorByName(name string) *Factor {
	for i := range s.Factors {
		if s.Factors[i].Name == name {
			return &s.Factors[i]
		}
	}
	return nil
}

// ProtocolByName returns the study protocol with the given name, or nil.
func (s *Study) ProtocolByName(name string) *Protocol {
	for i := range s.Protocols {
		if s.Protocols[i].Name == name {
			return &s.Protocols[i]
		}
	}
	return nil
}
