package mztab

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDocument = `{
  "metadata": {
    "mzTab-version": "2.0.0-M",
    "mzTab-ID": "ID-1",
    "title": "Plasma lipid profiling",
    "description": "null",
    "contact": [
      {"id": 1, "name": "Ada Lovelace", "email": "ada@example.org", "affiliation": "null"}
    ],
    "sample": [
      {"id": 1, "name": "plasma-1", "species": [{"cv_label": "NCBITaxon", "cv_accession": "NCBITaxon:9606", "name": "Homo sapiens"}]}
    ],
    "assay": [
      {"id": 1, "name": "assay-1", "sample_ref": 1, "ms_run_ref": [1]}
    ],
    "ms_run": [
      {"id": 1, "name": "run-1", "location": "file://run1.mzML"}
    ],
    "database": [
      {"id": 1, "prefix": "hmdb", "version": "4.0", "param": {"name": "HMDB"}}
    ]
  },
  "smallMoleculeSummary": [
    {
      "sml_id": 1,
      "database_identifier": ["hmdb:HMDB0000122"],
      "chemical_name": ["Glucose"],
      "theoretical_neutral_mass": [180.06338810],
      "abundance_assay": [10213.4400, null]
    }
  ]
}`

func TestParse(t *testing.T) {
	m, err := Parse([]byte(sampleDocument))
	require.NoError(t, err)

	t.Run("header fields", func(t *testing.T) {
		assert.Equal(t, "2.0.0-M", m.Metadata.Version)
		assert.Equal(t, "Plasma lipid profiling", m.Metadata.Title)
		require.Len(t, m.Metadata.Contacts, 1)
		assert.Equal(t, "Ada Lovelace", m.Metadata.Contacts[0].Name)
	})

	t.Run("null sentinels eliminated", func(t *testing.T) {
		assert.Empty(t, m.Metadata.Description)
		assert.Empty(t, m.Metadata.Contacts[0].Affiliation)
	})

	t.Run("numeric text preserved verbatim", func(t *testing.T) {
		row := m.SmallMoleculeSummary[0]
		require.Len(t, row.TheoreticalNeutralMass, 1)
		assert.Equal(t, "180.06338810", row.TheoreticalNeutralMass[0].String())
		require.Len(t, row.AbundanceAssay, 2)
		require.NotNil(t, row.AbundanceAssay[0])
		assert.Equal(t, "10213.4400", row.AbundanceAssay[0].String())
		assert.Nil(t, row.AbundanceAssay[1])
	})

	t.Run("references resolvable", func(t *testing.T) {
		require.NotNil(t, m.SampleByID(1))
		assert.Nil(t, m.SampleByID(2))
		require.NotNil(t, m.MsRunByID(1))
		require.NotNil(t, m.DatabaseByPrefix("hmdb"))
		assert.NotNil(t, m.DatabaseByPrefix("HMDB"), "prefix match is case-insensitive")
		assert.Nil(t, m.DatabaseByPrefix("chebi"))
	})
}

func TestParseRejectsBadJSON(t *testing.T) {
	_, err := Parse([]byte("{not json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode mzTab-M json")
}

func TestRead(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "study.mzTab.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleDocument), 0644))

	m, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "ID-1", m.Metadata.MzTabID)

	_, err = Read(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
}

func TestIsJSON(t *testing.T) {
	assert.True(t, IsJSON("a/b/file.json"))
	assert.True(t, IsJSON("file.JSON"))
	assert.False(t, IsJSON("file.mzTab"))
	assert.False(t, IsJSON("file.txt"))
}

func TestParseScrubbedDocumentStable(t *testing.T) {
	// Parsing the same bytes twice yields identical models.
	a, err := Parse([]byte(sampleDocument))
	require.NoError(t, err)
	b, err := Parse([]byte(sampleDocument))
	require.NoError(t, err)
	assert.Equal(t, a, b)

	// No surviving sentinel anywhere in the parsed strings.
	assert.NotEqual(t, "null", strings.TrimSpace(a.Metadata.Description))
}
