package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"
)

func TestRecordID(t *testing.T) {
	tests := []struct {
		name   string
		doi    *string
		wantID string
		wantOK bool
	}{
		{"present", Str("10.1000/xyz"), "10.1000/xyz", true},
		{"empty", Str(""), "", false},
		{"absent", nil, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := Record{DOI: tt.doi}.ID()
			assert.Equal(t, tt.wantID, id)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestDOILink(t *testing.T) {
	assert.Equal(t, "https://doi.org/10.1000/xyz", Record{DOI: Str("10.1000/xyz")}.DOILink())
	assert.Empty(t, Record{}.DOILink())
}

func TestRecordDecodingKeepsAbsentFields(t *testing.T) {
	const doc = `{"title": "A", "journal": null, "year_published": 2020, "citations": 0, "extra": true}`

	var r Record
	require.NoError(t, json.Unmarshal([]byte(doc), &r))
	assert.Equal(t, "A", StrOr(r.Title))
	assert.Nil(t, r.Journal)
	assert.Nil(t, r.DOI)
	require.NotNil(t, r.Citations)
	assert.Equal(t, 0, *r.Citations)

	var y Record
	require.NoError(t, yaml.Unmarshal([]byte("title: A\nyear_published: 2020\n"), &y))
	assert.Equal(t, 2020, IntOr(y.YearPublished))
	assert.Nil(t, y.Score)
}

func TestPointerHelpers(t *testing.T) {
	assert.Equal(t, "", StrOr(nil))
	assert.Equal(t, 0, IntOr(nil))

	s, ok := IntText(Int(42))
	assert.True(t, ok)
	assert.Equal(t, "42", s)

	_, ok = IntText(nil)
	assert.False(t, ok)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, []int{10, 50, 100, 500}, cfg.View.PageSizes)
	assert.Contains(t, cfg.View.PageSizes, cfg.View.PageSize)
	assert.Equal(t, AbsentShow, cfg.View.AbsentFields)
	assert.Equal(t, "BibliZap", cfg.Export.Product)
}
