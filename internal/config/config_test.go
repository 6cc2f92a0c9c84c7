package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRulesAreValid(t *testing.T) {
	r := Default()
	require.NoError(t, Validate(r))

	assert.Contains(t, r.Titles.Places, "Morobe")
	assert.Contains(t, r.Titles.Acronyms, "M&E")
	assert.Equal(t, "Employer on WantokJobs", r.Companies.Placeholder)
	assert.Equal(t, "Air Niugini", r.Companies.Sources["airniugini"])
	name, ok := r.Companies.Sources["pngjobseek"]
	assert.True(t, ok)
	assert.Empty(t, name)
	assert.Equal(t, 100, r.Stubs.MaxLength)
	assert.Equal(t, 20, r.Scoring.Weights.Company)
	require.Len(t, r.Titles.Overrides, 1)
	assert.Equal(t, "Complete Auto Services", r.Titles.Overrides[0].NewCompany)
}

func TestLoadOverlaysUserFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yml")
	doc := `
titles:
  places: [Lae]
companies:
  sources:
    santos: Santos Limited
scoring:
  weights:
    contact: 5
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	r, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Lae"}, r.Titles.Places)
	assert.Equal(t, "Santos Limited", r.Companies.Sources["santos"])
	assert.Equal(t, "Air Niugini", r.Companies.Sources["airniugini"], "map entries merge")
	assert.Equal(t, 5, r.Scoring.Weights.Contact)
	assert.Equal(t, 20, r.Scoring.Weights.Company, "absent keys keep defaults")
	assert.NotEmpty(t, r.Titles.Acronyms)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
}

func TestValidateRejectsBrokenRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Rules)
	}{
		{"empty placeholder", func(r *Rules) { r.Companies.Placeholder = "" }},
		{"no legal suffixes", func(r *Rules) { r.Companies.LegalSuffixes = nil }},
		{"zero stub length", func(r *Rules) { r.Stubs.MaxLength = 0 }},
		{"blank place", func(r *Rules) { r.Titles.Places = append(r.Titles.Places, "") }},
		{"override without match", func(r *Rules) {
			r.Titles.Overrides = append(r.Titles.Overrides, Override{NewTitle: "Driver"})
		}},
		{"override without title", func(r *Rules) {
			r.Titles.Overrides = append(r.Titles.Overrides, Override{Contains: "X"})
		}},
		{"medium above long", func(r *Rules) { r.Scoring.MediumDescription = 900 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := Default()
			tc.mutate(&r)
			err := Validate(r)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidRules)
		})
	}
}
