package mapper

import (
	"fmt"

	"github.com/EBI-Metabolights/mztab2mtbls/isatab"
	"github.com/EBI-Metabolights/mztab2mtbls/mztab"
	"github.com/EBI-Metabolights/mztab2mtbls/vocabulary/mtbls"
)

// Characteristic column names used by the sample mapper. Each value
// column is flanked by its term source and accession columns.
const (
	colOrganism     = "Characteristics[Organism]"
	colOrganismPart = "Characteristics[Organism part]"
	colCellType     = "Characteristics[Cell type]"
	colDisease      = "Characteristics[Disease]"
)

// SampleMapper appends one samples-table row per source sample and
// registers study variables and custom factor fields as study factors
// (deduplicated by name).
type SampleMapper struct{}

// Name implements Mapper.
func (m *SampleMapper) Name() string { return "sample" }

// Update implements Mapper.
func (m *SampleMapper) Update(src *mztab.MzTab, dst *isatab.StudyModel) error {
	study := dst.Study()
	table := study.SamplesTable

	for _, s := range src.Metadata.Samples {
		row := map[string]string{
			isatab.ColSourceName: s.Name,
			isatab.ColSampleName: s.Name,
		}
		setCharacteristic(table, row, colOrganism, firstParam(s.Species))
		setCharacteristic(table, row, colOrganismPart, firstParam(s.Tissue))
		setCharacteristic(table, row, colCellType, firstParam(s.CellType))
		setCharacteristic(table, row, colDisease, firstParam(s.Disease))
		if s.Description != "" {
			table.EnsureColumn("Comment[sample description]")
			row["Comment[sample description]"] = s.Description
		}

		// Custom factor-type parameters become study factors plus a
		// Factor Value column on this sample's row.
		for _, p := range s.Custom {
			if p.Name == "" {
				continue
			}
			registerFactor(study, p.Name)
			col := fmt.Sprintf("Factor Value[%s]", p.Name)
			table.EnsureColumn(col)
			row[col] = p.Value
		}
		table.AppendRow(row)
	}

	// Study variables are study factors as well; member samples get the
	// variable name as their factor value.
	for _, v := range src.Metadata.StudyVariables {
		if v.Name == "" {
			continue
		}
		registerFactor(study, v.Name)
		col := fmt.Sprintf("Factor Value[%s]", v.Name)
		table.EnsureColumn(col)
		for _, assayRef := range v.AssayRefs {
			for _, a := range src.Metadata.Assays {
				if a.ID != assayRef {
					continue
				}
				if s := src.SampleByID(a.SampleRef); s != nil {
					if i := table.FindRow(isatab.ColSampleName, s.Name); i >= 0 {
						if err := table.Set(col, i, v.Name); err != nil {
							return err
						}
					}
				}
			}
		}
	}
	return nil
}

// setCharacteristic fills a characteristic value column plus its term
// source and accession companions, creating the columns on first use.
func setCharacteristic(table *isatab.Table, row map[string]string, col string, p *mztab.Parameter) {
	if p == nil {
		return
	}
	table.EnsureColumn(col)
	table.EnsureColumn(col + " Term Source REF")
	table.EnsureColumn(col + " Term Accession Number")
	row[col] = p.Name
	row[col+" Term Source REF"] = p.CVLabel
	row[col+" Term Accession Number"] = p.CVAccession
}

func firstParam(params []mztab.Parameter) *mztab.Parameter {
	if len(params) == 0 {
		return nil
	}
	return &params[0]
}

// registerFactor adds a study factor unless one with the same name
// already exists.
func registerFactor(study *isatab.Study, name string) {
	if study.FactorByName(name) != nil {
		return
	}
	study.Factors = append(study.Factors, isatab.Factor{
		Name: name,
		Type: isatab.OntologyAnnotation{Term: name, TermSourceRef: mtbls.FallbackSource},
	})
}
