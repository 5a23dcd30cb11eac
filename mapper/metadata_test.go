package mapper_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EBI-Metabolights/mztab2mtbls/isatab"
	"github.com/EBI-Metabolights/mztab2mtbls/mapper"
	"github.com/EBI-Metabolights/mztab2mtbls/mztab"
	"github.com/EBI-Metabolights/mztab2mtbls/vocabulary/mtbls"
)

func TestBaseMapper(t *testing.T) {
	src := scenarioSource()
	dst := isatab.NewStudyModel("MTBLS1")
	require.NoError(t, (&mapper.BaseMapper{}).Update(src, dst))

	assert.Equal(t, "Singaporean plasma site 1", dst.Study().Title)
	assert.Equal(t, "Lipidomics of plasma samples", dst.Study().Description)
	assert.Equal(t, "ID-1", dst.Comments["mzTab-ID"])
	assert.Equal(t, "2.0.0-M", dst.Comments["mzTab-version"])
	assert.NotEmpty(t, dst.Investigation.OntologySources, "default sources seeded")
}

func TestContactMapper(t *testing.T) {
	t.Run("maps names, fields and known roles", func(t *testing.T) {
		src := scenarioSource()
		dst := isatab.NewStudyModel("MTBLS1")
		require.NoError(t, (&mapper.ContactMapper{}).Update(src, dst))

		require.Len(t, dst.Study().Contacts, 1)
		c := dst.Study().Contacts[0]
		assert.Equal(t, "Ada", c.FirstName)
		assert.Equal(t, "Lovelace", c.LastName)
		assert.Equal(t, "ada@example.org", c.Email)
		assert.Equal(t, "EMBL-EBI", c.Affiliation)
		require.Len(t, c.Roles, 1)
		assert.Equal(t, "Principal Investigator", c.Roles[0].Term)
		assert.Equal(t, "NCIT", c.Roles[0].TermSourceRef)
	})

	t.Run("unknown role passes through as literal", func(t *testing.T) {
		src := scenarioSource()
		src.Metadata.Contacts[0].Role = "chief sample wrangler"
		dst := isatab.NewStudyModel("MTBLS1")
		require.NoError(t, (&mapper.ContactMapper{}).Update(src, dst))

		role := dst.Study().Contacts[0].Roles[0]
		assert.Equal(t, "chief sample wrangler", role.Term)
		assert.Equal(t, mtbls.FallbackSource, role.TermSourceRef)
		assert.Empty(t, role.TermAccession)
	})

	t.Run("single-token name maps to last name", func(t *testing.T) {
		src := scenarioSource()
		src.Metadata.Contacts[0].Name = "Cher"
		dst := isatab.NewStudyModel("MTBLS1")
		require.NoError(t, (&mapper.ContactMapper{}).Update(src, dst))

		assert.Empty(t, dst.Study().Contacts[0].FirstName)
		assert.Equal(t, "Cher", dst.Study().Contacts[0].LastName)
	})
}

func TestPublicationMapper(t *testing.T) {
	t.Run("doi and pubmed items fill their fields", func(t *testing.T) {
		src := scenarioSource()
		dst := isatab.NewStudyModel("MTBLS1")
		require.NoError(t, (&mapper.PublicationMapper{}).Update(src, dst))

		require.Len(t, dst.Study().Publications, 1)
		p := dst.Study().Publications[0]
		assert.Equal(t, "10.1234/plasma.1", p.DOI)
		assert.Equal(t, "31919466", p.PubMedID)
	})

	t.Run("missing optionals stay empty", func(t *testing.T) {
		src := scenarioSource()
		src.Metadata.Publications = []mztab.Publication{
			{ID: 1, Items: []mztab.PublicationItem{{Type: "pubmed", Accession: "99"}}},
		}
		dst := isatab.NewStudyModel("MTBLS1")
		require.NoError(t, (&mapper.PublicationMapper{}).Update(src, dst))

		p := dst.Study().Publications[0]
		assert.Empty(t, p.DOI, "absent DOI is not fabricated")
		assert.Equal(t, "99", p.PubMedID)
	})

	t.Run("doi scheme prefix stripped", func(t *testing.T) {
		src := scenarioSource()
		src.Metadata.Publications[0].Items = []mztab.PublicationItem{
			{Type: "doi", Accession: "doi:10.5/xyz"},
		}
		dst := isatab.NewStudyModel("MTBLS1")
		require.NoError(t, (&mapper.PublicationMapper{}).Update(src, dst))
		assert.Equal(t, "10.5/xyz", dst.Study().Publications[0].DOI)
	})
}

func TestSampleMapper(t *testing.T) {
	src := scenarioSource()
	src.Metadata.Samples[0].Custom = []mztab.Parameter{{Name: "diet", Value: "fasted"}}
	dst := isatab.NewStudyModel("MTBLS1")
	require.NoError(t, (&mapper.SampleMapper{}).Update(src, dst))
	study := dst.Study()

	t.Run("one row per sample with characteristics", func(t *testing.T) {
		table := study.SamplesTable
		require.Equal(t, 2, table.RowCount())
		assert.Equal(t, "plasma-1", table.Value(isatab.ColSampleName, 0))
		assert.Equal(t, "Homo sapiens", table.Value("Characteristics[Organism]", 0))
		assert.Equal(t, "NCBITaxon", table.Value("Characteristics[Organism] Term Source REF", 0))
		assert.Equal(t, "NCBITaxon:9606", table.Value("Characteristics[Organism] Term Accession Number", 0))
	})

	t.Run("study variables and custom fields become factors", func(t *testing.T) {
		assert.NotNil(t, study.FactorByName("site 1"))
		assert.NotNil(t, study.FactorByName("diet"))
		assert.Equal(t, "fasted", study.SamplesTable.Value("Factor Value[diet]", 0))
		assert.Equal(t, "site 1", study.SamplesTable.Value("Factor Value[site 1]", 0))
		assert.Equal(t, "", study.SamplesTable.Value("Factor Value[site 1]", 1),
			"samples outside the variable keep an empty factor value")
	})

	t.Run("factors deduplicated by name", func(t *testing.T) {
		src2 := scenarioSource()
		src2.Metadata.StudyVariables = append(src2.Metadata.StudyVariables, mztab.StudyVariable{ID: 2, Name: "site 1"})
		dst2 := isatab.NewStudyModel("MTBLS2")
		require.NoError(t, (&mapper.SampleMapper{}).Update(src2, dst2))
		count := 0
		for _, f := range dst2.Study().Factors {
			if f.Name == "site 1" {
				count++
			}
		}
		assert.Equal(t, 1, count)
	})
}

func TestSampleProcessingMapper(t *testing.T) {
	src := scenarioSource()
	dst := isatab.NewStudyModel("MTBLS1")
	require.NoError(t, (&mapper.SampleProcessingMapper{}).Update(src, dst))
	protocols := dst.Study().Protocols

	require.Len(t, protocols, 2)
	// Declared step order preserved.
	assert.Equal(t, "protein precipitation", protocols[0].Name)
	assert.Equal(t, "centrifugation", protocols[1].Name)
	assert.Equal(t, "protein precipitation: isopropanol", protocols[0].Description)
	for _, p := range protocols {
		assert.Equal(t, "sample processing", p.ProtocolType.Term)
	}
}

func TestSoftwareMapper(t *testing.T) {
	t.Run("deduplicates by name and version", func(t *testing.T) {
		src := scenarioSource()
		src.Metadata.Software = append(src.Metadata.Software,
			mztab.Software{ID: 2, Parameter: mztab.Parameter{Name: "Skyline", Value: "20.1"}},
			mztab.Software{ID: 3, Parameter: mztab.Parameter{Name: "Skyline", Value: "21.0"}},
		)
		dst := isatab.NewStudyModel("MTBLS1")
		require.NoError(t, (&mapper.SoftwareMapper{}).Update(src, dst))

		require.Len(t, dst.Study().Software, 2)
		assert.Equal(t, "20.1", dst.Study().Software[0].Version)
		assert.Equal(t, "21.0", dst.Study().Software[1].Version)
	})

	t.Run("records land on the data transformation protocol", func(t *testing.T) {
		dst := isatab.NewStudyModel("MTBLS1")
		require.NoError(t, (&mapper.SoftwareMapper{}).Update(scenarioSource(), dst))

		proto := dst.Study().ProtocolByName(mtbls.ProtocolDataTransformation)
		require.NotNil(t, proto)
		require.Len(t, proto.Parameters, 1)
		assert.Equal(t, "Skyline 20.1", proto.Parameters[0].Term)
	})
}

func TestDatabaseMapper(t *testing.T) {
	t.Run("deduplicates by name", func(t *testing.T) {
		src := scenarioSource()
		src.Metadata.Databases = append(src.Metadata.Databases,
			mztab.Database{ID: 2, Prefix: "hmdb", Param: mztab.Parameter{Name: "HMDB"}})
		dst := isatab.NewStudyModel("MTBLS1")
		require.NoError(t, (&mapper.DatabaseMapper{}).Update(src, dst))
		assert.Len(t, dst.Study().Databases, 1)
	})

	t.Run("registers prefix, version and uri", func(t *testing.T) {
		dst := isatab.NewStudyModel("MTBLS1")
		require.NoError(t, (&mapper.DatabaseMapper{}).Update(scenarioSource(), dst))
		db := dst.Study().DatabaseByPrefix("hmdb")
		require.NotNil(t, db)
		assert.Equal(t, "HMDB", db.Name)
		assert.Equal(t, "4.0", db.Version)
		assert.Equal(t, "https://hmdb.ca", db.URI)
	})
}

func TestAssayMapper(t *testing.T) {
	prepared := func(src *mztab.MzTab) *isatab.StudyModel {
		dst := isatab.NewStudyModel("MTBLS1")
		require.NoError(t, (&mapper.SampleMapper{}).Update(src, dst))
		return dst
	}

	t.Run("assay entity and table row", func(t *testing.T) {
		src := scenarioSource()
		dst := prepared(src)
		require.NoError(t, (&mapper.AssayMapper{}).Update(src, dst))

		require.Len(t, dst.Study().Assays, 1)
		a := dst.Study().Assays[0]
		assert.Equal(t, "metabolite profiling", a.MeasurementType.Term)
		assert.Equal(t, "mass spectrometry", a.TechnologyType.Term)

		table := dst.Study().AssayTable
		require.Equal(t, 1, table.RowCount())
		assert.Equal(t, "plasma-1", table.Value(isatab.ColSampleName, 0))
		assert.Equal(t, "assay-1", table.Value(isatab.ColAssayName, 0))
		assert.Equal(t, "file://run1.mzML", table.Value(isatab.ColRawDataFile, 0))
	})

	t.Run("dangling ms_run reference is an integrity error", func(t *testing.T) {
		src := scenarioSource()
		src.Metadata.Assays[0].MsRunRefs = []int{77}
		err := (&mapper.AssayMapper{}).Update(src, prepared(src))
		var ierr *mapper.IntegrityError
		require.ErrorAs(t, err, &ierr)
		assert.Equal(t, "ms_run", ierr.Kind)
	})

	t.Run("sample missing from samples table is an integrity error", func(t *testing.T) {
		src := scenarioSource()
		dst := isatab.NewStudyModel("MTBLS1") // sample mapper never ran
		err := (&mapper.AssayMapper{}).Update(src, dst)
		var ierr *mapper.IntegrityError
		require.ErrorAs(t, err, &ierr)
		assert.Equal(t, "sample", ierr.Kind)
	})
}
