package mapper

import (
	"strings"

	"github.com/EBI-Metabolights/mztab2mtbls/isatab"
	"github.com/EBI-Metabolights/mztab2mtbls/mztab"
	"github.com/EBI-Metabolights/mztab2mtbls/vocabulary/mtbls"
)

// SoftwareMapper records one software entry per distinct (name,
// version) pair and attaches each as a parameter of the Data
// transformation protocol.
type SoftwareMapper struct{}

// Name implements Mapper.
func (m *SoftwareMapper) Name() string { return "software" }

// Update implements Mapper.
func (m *SoftwareMapper) Update(src *mztab.MzTab, dst *isatab.StudyModel) error {
	study := dst.Study()
	for _, sw := range src.Metadata.Software {
		name := sw.Parameter.Name
		version := sw.Parameter.Value
		if name == "" {
			continue
		}
		if hasSoftware(study, name, version) {
			continue
		}
		study.Software = append(study.Software, isatab.SoftwareRecord{
			Name:    name,
			Version: version,
		})
		attachSoftwareParameter(study, name, version)
	}
	return nil
}

func hasSoftware(study *isatab.Study, name, version string) bool {
	for _, s := range study.Software {
		if s.Name == name && s.Version == version {
			return true
		}
	}
	return false
}

// attachSoftwareParameter registers the software on the Data
// transformation protocol, creating the protocol on first use.
func attachSoftwareParameter(study *isatab.Study, name, version string) {
	proto := study.ProtocolByName(mtbls.ProtocolDataTransformation)
	if proto == nil {
		t := mtbls.ProtocolTypes[mtbls.ProtocolDataTransformation]
		study.Protocols = append(study.Protocols, isatab.Protocol{
			Name: mtbls.ProtocolDataTransformation,
			ProtocolType: isatab.OntologyAnnotation{
				Term:          t.Name,
				TermSourceRef: t.Source,
				TermAccession: t.Accession,
			},
		})
		proto = study.ProtocolByName(mtbls.ProtocolDataTransformation)
	}

	term := strings.TrimSpace(name + " " + version)
	for _, p := range proto.Parameters {
		if p.Term == term {
			return
		}
	}
	proto.Parameters = append(proto.Parameters, isatab.OntologyAnnotation{
		Term:          term,
		TermSourceRef: mtbls.FallbackSource,
	})
}
