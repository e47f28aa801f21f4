package coverage

import (
	"sort"
	"strings"
)

// CanonicalStages is the primary buying-stage order.
var CanonicalStages = []string{"Awareness", "Explore", "Evaluate", "Decision"}

type Cell struct {
	Persona string `json:"persona"`
	Stage   string `json:"stage"`
	Count   int64  `json:"count"`
}

type Matrix struct {
	Personas []string `json:"personas"`
	Stages   []string `json:"stages"`
	Data     []Cell   `json:"data"`
}

// PairCount is a distinct-item count for one persona/stage pair as read
// from the store.
type PairCount struct {
	Persona string
	Stage   string
	Count   int64
}

// ValidLabel rejects NULL placeholders and blank labels.
func ValidLabel(s string) bool {
	t := strings.TrimSpace(s)
	return t != "" && t != "N/A" && t != "null"
}

// SortStages puts canonical stages first in canonical order, then the rest
// alphabetically. The input is not modified.
func SortStages(stages []string) []string {
	out := make([]string, len(stages))
	copy(out, stages)
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := stageRank(out[i]), stageRank(out[j])
		if ri != rj {
			return ri < rj
		}
		return out[i] < out[j]
	})
	return out
}

func stageRank(s string) int {
	for i, c := range CanonicalStages {
		if s == c {
			return i
		}
	}
	return len(CanonicalStages)
}

func IsCanonicalStage(s string) bool {
	return stageRank(s) < len(CanonicalStages)
}

// Build assembles the full persona x stage grid. axis supplies the pairs
// that define the rows and columns; counts supplies the filtered cell
// values. A pair only contributes to the axes when both labels are valid,
// and counts outside the axes are dropped.
func Build(axis []PairCount, counts []PairCount) Matrix {
	personaSet := map[string]bool{}
	stageSet := map[string]bool{}
	for _, p := range axis {
		if !ValidLabel(p.Persona) || !ValidLabel(p.Stage) {
			continue
		}
		personaSet[p.Persona] = true
		stageSet[p.Stage] = true
	}
	personas := keys(personaSet)
	sort.Strings(personas)
	return assemble(personas, SortStages(keys(stageSet)), counts)
}

// BuildFixedStages is Build with the stage axis pinned to CanonicalStages.
// Pairs with any other stage are ignored entirely.
func BuildFixedStages(axis []PairCount, counts []PairCount) Matrix {
	personaSet := map[string]bool{}
	for _, p := range axis {
		if !ValidLabel(p.Persona) || !IsCanonicalStage(p.Stage) {
			continue
		}
		personaSet[p.Persona] = true
	}
	personas := keys(personaSet)
	sort.Strings(personas)
	return assemble(personas, append([]string(nil), CanonicalStages...), counts)
}

func assemble(personas, stages []string, counts []PairCount) Matrix {
	byPair := make(map[[2]string]int64, len(counts))
	for _, c := range counts {
		byPair[[2]string{c.Persona, c.Stage}] += c.Count
	}
	data := make([]Cell, 0, len(personas)*len(stages))
	for _, p := range personas {
		for _, s := range stages {
			data = append(data, Cell{Persona: p, Stage: s, Count: byPair[[2]string{p, s}]})
		}
	}
	return Matrix{Personas: personas, Stages: stages, Data: data}
}

// Total sums every cell.
func (m Matrix) Total() int64 {
	var n int64
	for _, c := range m.Data {
		n += c.Count
	}
	return n
}

func keys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
