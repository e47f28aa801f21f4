package facets

import (
	"sort"
	"strings"

	"github.com/yungbote/content-intel-backend/internal/modules/coverage"
)

type PersonaCount struct {
	Persona string `json:"persona"`
	Count   int64  `json:"count"`
}

type StageCount struct {
	Stage string `json:"stage"`
	Count int64  `json:"count"`
}

// Options is the payload behind every filter dropdown. Slices are never nil.
type Options struct {
	Personas             []PersonaCount `json:"personas"`
	Stages               []StageCount   `json:"stages"`
	ContentTypes         []string       `json:"contentTypes"`
	Languages            []string       `json:"languages"`
	PDGStages            []string       `json:"pdgStages"`
	ContentMixCategories []string       `json:"contentMixCategories"`
}

// LabelCount is a grouped label count read from the store.
type LabelCount struct {
	Label string
	Count int64
}

func Personas(rows []LabelCount) []PersonaCount {
	merged := merge(rows)
	out := make([]PersonaCount, 0, len(merged))
	for _, label := range sortedKeys(merged) {
		out = append(out, PersonaCount{Persona: label, Count: merged[label]})
	}
	return out
}

// Stages orders canonical stages first, then the rest alphabetically.
func Stages(rows []LabelCount) []StageCount {
	merged := merge(rows)
	out := make([]StageCount, 0, len(merged))
	for _, label := range coverage.SortStages(sortedKeys(merged)) {
		out = append(out, StageCount{Stage: label, Count: merged[label]})
	}
	return out
}

// Values cleans and sorts a distinct value list.
func Values(in []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(in))
	for _, v := range in {
		if !coverage.ValidLabel(v) || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Languages keeps enabled codes only, sorted.
func Languages(in []string, enabled []string) []string {
	allow := map[string]bool{}
	for _, code := range enabled {
		allow[strings.ToLower(code)] = true
	}
	kept := make([]string, 0, len(in))
	for _, v := range in {
		if allow[strings.ToLower(v)] {
			kept = append(kept, v)
		}
	}
	return Values(kept)
}

func merge(rows []LabelCount) map[string]int64 {
	out := map[string]int64{}
	for _, r := range rows {
		if !coverage.ValidLabel(r.Label) {
			continue
		}
		out[r.Label] += r.Count
	}
	return out
}

func sortedKeys(m map[string]int64) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
