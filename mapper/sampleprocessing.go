package mapper

import (
	"fmt"
	"strings"

	"github.com/EBI-Metabolights/mztab2mtbls/isatab"
	"github.com/EBI-Metabolights/mztab2mtbls/mztab"
	"github.com/EBI-Metabolights/mztab2mtbls/vocabulary/mtbls"
)

// SampleProcessingMapper turns each sample-processing step into a study
// protocol with the fixed sample-processing type annotation, keeping
// the declared step order.
type SampleProcessingMapper struct{}

// Name implements Mapper.
func (m *SampleProcessingMapper) Name() string { return "sample-processing" }

// Update implements Mapper.
func (m *SampleProcessingMapper) Update(src *mztab.MzTab, dst *isatab.StudyModel) error {
	study := dst.Study()
	step := 0
	for _, sp := range src.Metadata.SampleProcessing {
		for _, params := range sp.Steps {
			step++
			name := stepName(params, step)
			if study.ProtocolByName(name) != nil {
				continue
			}
			study.Protocols = append(study.Protocols, isatab.Protocol{
				Name: name,
				ProtocolType: isatab.OntologyAnnotation{
					Term:          mtbls.SampleProcessingType.Name,
					TermSourceRef: mtbls.SampleProcessingType.Source,
					TermAccession: mtbls.SampleProcessingType.Accession,
				},
				Description: stepDescription(params),
			})
		}
	}
	return nil
}

// stepName uses the step's first parameter name, falling back to a
// positional name so every step yields a protocol.
func stepName(params []mztab.Parameter, position int) string {
	for _, p := range params {
		if p.Name != "" {
			return p.Name
		}
	}
	return fmt.Sprintf("Sample processing step %d", position)
}

// stepDescription joins the step's parameters into one readable line.
func stepDescription(params []mztab.Parameter) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		switch {
		case p.Name != "" && p.Value != "":
			parts = append(parts, p.Name+": "+p.Value)
		case p.Name != "":
			parts = append(parts, p.Name)
		case p.Value != "":
			parts = append(parts, p.Value)
		}
	}
	return strings.Join(parts, "; ")
}
