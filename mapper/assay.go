package mapper

import (
	"strconv"

	"github.com/EBI-Metabolights/mztab2mtbls/isatab"
	"github.com/EBI-Metabolights/mztab2mtbls/mztab"
	"github.com/EBI-Metabolights/mztab2mtbls/vocabulary/mtbls"
)

const colInstrument = "Parameter Value[Instrument]"

// AssayMapper appends one destination assay entity per source assay and
// one assay-table row linking it to its sample row. Unresolvable sample
// or ms_run references are integrity errors.
type AssayMapper struct{}

// Name implements Mapper.
func (m *AssayMapper) Name() string { return "assay" }

// Update implements Mapper.
func (m *AssayMapper) Update(src *mztab.MzTab, dst *isatab.StudyModel) error {
	study := dst.Study()
	table := study.AssayTable
	table.EnsureColumn(colInstrument)

	for i, a := range src.Metadata.Assays {
		sample := src.SampleByID(a.SampleRef)
		if sample == nil {
			return &IntegrityError{Kind: "sample", Ref: strconv.Itoa(a.SampleRef)}
		}
		if study.SamplesTable.FindRow(isatab.ColSampleName, sample.Name) < 0 {
			return &IntegrityError{Kind: "sample", Ref: sample.Name}
		}

		var rawFile string
		if len(a.MsRunRefs) > 0 {
			run := src.MsRunByID(a.MsRunRefs[0])
			if run == nil {
				return &IntegrityError{Kind: "ms_run", Ref: strconv.Itoa(a.MsRunRefs[0])}
			}
			rawFile = run.Location
		}

		study.Assays = append(study.Assays, isatab.Assay{
			FileName: isatab.AssayFileName(dst.Accession),
			MeasurementType: isatab.OntologyAnnotation{
				Term:          mtbls.MeasurementType.Name,
				TermSourceRef: mtbls.MeasurementType.Source,
				TermAccession: mtbls.MeasurementType.Accession,
			},
			TechnologyType: isatab.OntologyAnnotation{
				Term:          mtbls.TechnologyType.Name,
				TermSourceRef: mtbls.TechnologyType.Source,
				TermAccession: mtbls.TechnologyType.Accession,
			},
			TechnologyPlatform: mtbls.TechnologyPlatform,
		})

		table.AppendRow(map[string]string{
			isatab.ColSampleName:  sample.Name,
			isatab.ColAssayName:   a.Name,
			isatab.ColRawDataFile: rawFile,
			colInstrument:         instrumentName(src, i),
		})
	}
	return nil
}

// instrumentName pairs assays and instruments positionally, falling
// back to the first declared instrument. mzTab-M carries no explicit
// assay→instrument reference.
func instrumentName(src *mztab.MzTab, assayIndex int) string {
	instruments := src.Metadata.Instruments
	if len(instruments) == 0 {
		return ""
	}
	in := instruments[0]
	if assayIndex < len(instruments) {
		in = instruments[assayIndex]
	}
	if in.Name == nil {
		return ""
	}
	return in.Name.Name
}
