package facets

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersonasExcludesPlaceholders(t *testing.T) {
	got := Personas([]LabelCount{
		{Label: "CTO", Count: 3},
		{Label: "N/A", Count: 7},
		{Label: "null", Count: 1},
		{Label: "  ", Count: 2},
		{Label: "CFO", Count: 5},
	})
	assert.Equal(t, []PersonaCount{{Persona: "CFO", Count: 5}, {Persona: "CTO", Count: 3}}, got)
}

func TestStagesCanonicalFirst(t *testing.T) {
	got := Stages([]LabelCount{
		{Label: "Retention", Count: 1},
		{Label: "Decision", Count: 2},
		{Label: "Awareness", Count: 3},
		{Label: "Advocacy", Count: 4},
	})
	assert.Equal(t, []StageCount{
		{Stage: "Awareness", Count: 3},
		{Stage: "Decision", Count: 2},
		{Stage: "Advocacy", Count: 4},
		{Stage: "Retention", Count: 1},
	}, got)
}

func TestValuesAndLanguages(t *testing.T) {
	assert.Equal(t, []string{"Blog", "Guide"}, Values([]string{"Guide", "N/A", "Blog", "", "Guide"}))
	assert.Equal(t, []string{"de", "en"}, Languages([]string{"en", "cn", "de"}, []string{"en", "de"}))
}

func TestEmptyOptionsEncodeAsArrays(t *testing.T) {
	o := Options{
		Personas:             Personas(nil),
		Stages:               Stages(nil),
		ContentTypes:         Values(nil),
		Languages:            Languages(nil, nil),
		PDGStages:            Values(nil),
		ContentMixCategories: Values(nil),
	}
	b, err := json.Marshal(o)
	require.NoError(t, err)
	assert.JSONEq(t, `{"personas":[],"stages":[],"contentTypes":[],"languages":[],"pdgStages":[],"contentMixCategories":[]}`, string(b))
}
