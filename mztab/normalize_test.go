package mztab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScrubNullStrings(t *testing.T) {
	t.Run("replaces sentinel strings at any depth", func(t *testing.T) {
		tree := map[string]any{
			"title": "null",
			"metadata": map[string]any{
				"description": "null",
				"contact":     []any{map[string]any{"name": "null", "email": "a@b.c"}},
			},
			"values": []any{"null", "keep", float64(2)},
		}

		out := ScrubNullStrings(tree).(map[string]any)

		assert.Nil(t, out["title"])
		meta := out["metadata"].(map[string]any)
		assert.Nil(t, meta["description"])
		contact := meta["contact"].([]any)[0].(map[string]any)
		assert.Nil(t, contact["name"])
		assert.Equal(t, "a@b.c", contact["email"])
		values := out["values"].([]any)
		assert.Nil(t, values[0])
		assert.Equal(t, "keep", values[1])
		assert.Equal(t, float64(2), values[2])
	})

	t.Run("leaves non-sentinel scalars alone", func(t *testing.T) {
		assert.Equal(t, "nullable", ScrubNullStrings("nullable"))
		assert.Equal(t, float64(1.5), ScrubNullStrings(float64(1.5)))
		assert.Nil(t, ScrubNullStrings(nil))
	})

	t.Run("idempotent", func(t *testing.T) {
		tree := map[string]any{"a": "null", "b": []any{"null"}}
		once := ScrubNullStrings(tree)
		twice := ScrubNullStrings(once)
		assert.Equal(t, once, twice)
	})
}

func TestApplyModelFixes_SampleProcessing(t *testing.T) {
	t.Run("renests flattened steps", func(t *testing.T) {
		m := &MzTab{}
		m.Metadata.SampleProcessing = []SampleProcessing{
			{ID: 1, Steps: [][]Parameter{{
				{Name: "extraction"},
				{Name: "centrifugation"},
			}}},
		}

		require.NoError(t, ApplyModelFixes(m))

		steps := m.Metadata.SampleProcessing[0].Steps
		require.Len(t, steps, 2)
		assert.Equal(t, "extraction", steps[0][0].Name)
		assert.Equal(t, "centrifugation", steps[1][0].Name)
	})

	t.Run("already nested steps untouched", func(t *testing.T) {
		m := &MzTab{}
		m.Metadata.SampleProcessing = []SampleProcessing{
			{ID: 1, Steps: [][]Parameter{
				{{Name: "extraction"}},
				{{Name: "centrifugation"}},
			}},
		}

		require.NoError(t, ApplyModelFixes(m))
		assert.Len(t, m.Metadata.SampleProcessing[0].Steps, 2)
	})

	t.Run("idempotent", func(t *testing.T) {
		m := &MzTab{}
		m.Metadata.SampleProcessing = []SampleProcessing{
			{ID: 1, Steps: [][]Parameter{{
				{Name: "a"}, {Name: "b"},
			}}},
		}
		require.NoError(t, ApplyModelFixes(m))
		first := m.Metadata.SampleProcessing[0].Steps
		require.NoError(t, ApplyModelFixes(m))
		assert.Equal(t, first, m.Metadata.SampleProcessing[0].Steps)
	})
}

func TestApplyModelFixes_PublicationItems(t *testing.T) {
	tests := []struct {
		name      string
		accession string
		wantType  string
	}{
		{"doi prefix", "10.1234/metabolomics.5678", "doi"},
		{"doi scheme", "doi:10.1234/x", "doi"},
		{"pubmed digits", "31919466", "pubmed"},
		{"uri", "https://example.org/paper", "uri"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &MzTab{}
			m.Metadata.Publications = []Publication{
				{ID: 1, Items: []PublicationItem{{Accession: tt.accession}}},
			}

			require.NoError(t, ApplyModelFixes(m))
			assert.Equal(t, tt.wantType, m.Metadata.Publications[0].Items[0].Type)
		})
	}

	t.Run("unrecognizable accession fails normalization", func(t *testing.T) {
		m := &MzTab{}
		m.Metadata.Publications = []Publication{
			{ID: 1, Items: []PublicationItem{{Accession: "???"}}},
		}

		err := ApplyModelFixes(m)
		require.Error(t, err)
		var nerr *NormalizationError
		require.ErrorAs(t, err, &nerr)
		assert.Equal(t, "publication-item-string", nerr.Fix)
	})

	t.Run("typed items untouched", func(t *testing.T) {
		m := &MzTab{}
		m.Metadata.Publications = []Publication{
			{ID: 1, Items: []PublicationItem{{Type: "pubmed", Accession: "123"}}},
		}
		require.NoError(t, ApplyModelFixes(m))
		assert.Equal(t, "pubmed", m.Metadata.Publications[0].Items[0].Type)
	})
}
