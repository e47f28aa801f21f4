package languages

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

type Language struct {
	Code         string `yaml:"code" json:"code"`
	Label        string `yaml:"label" json:"label"`
	Enabled      bool   `yaml:"enabled" json:"enabled"`
	DisplayOrder int    `yaml:"display_order" json:"displayOrder"`
}

type Catalog struct {
	Languages []Language `yaml:"languages"`
}

// Default is the built-in catalog used when no file is configured.
func Default() Catalog {
	return Catalog{Languages: []Language{
		{Code: "en", Label: "English", Enabled: true, DisplayOrder: 1},
		{Code: "de", Label: "German", Enabled: true, DisplayOrder: 2},
		{Code: "fr", Label: "French", Enabled: true, DisplayOrder: 3},
		{Code: "es", Label: "Spanish", Enabled: true, DisplayOrder: 4},
		{Code: "pt", Label: "Portuguese", Enabled: true, DisplayOrder: 5},
		{Code: "ja", Label: "Japanese", Enabled: true, DisplayOrder: 6},
		{Code: "cn", Label: "Chinese", Enabled: false, DisplayOrder: 7},
	}}
}

// LoadFile reads a YAML catalog:
//
//	languages:
//	  - code: en
//	    label: English
//	    enabled: true
//	    display_order: 1
func LoadFile(path string) (Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read language catalog: %w", err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return Catalog{}, fmt.Errorf("parse language catalog: %w", err)
	}
	seen := map[string]bool{}
	for i := range c.Languages {
		code := strings.ToLower(strings.TrimSpace(c.Languages[i].Code))
		if code == "" {
			return Catalog{}, fmt.Errorf("language catalog entry %d has no code", i)
		}
		if seen[code] {
			return Catalog{}, fmt.Errorf("language catalog has duplicate code %q", code)
		}
		seen[code] = true
		c.Languages[i].Code = code
	}
	return c, nil
}

// Restrict keeps only the listed codes enabled. An empty list leaves the
// catalog as is.
func (c Catalog) Restrict(codes []string) Catalog {
	if len(codes) == 0 {
		return c
	}
	allow := map[string]bool{}
	for _, code := range codes {
		allow[strings.ToLower(strings.TrimSpace(code))] = true
	}
	out := Catalog{Languages: make([]Language, 0, len(c.Languages))}
	for _, l := range c.Languages {
		l.Enabled = l.Enabled && allow[l.Code]
		out.Languages = append(out.Languages, l)
	}
	return out
}

// EnabledCodes returns enabled codes in display order.
func (c Catalog) EnabledCodes() []string {
	langs := make([]Language, 0, len(c.Languages))
	for _, l := range c.Languages {
		if l.Enabled {
			langs = append(langs, l)
		}
	}
	sort.SliceStable(langs, func(i, j int) bool { return langs[i].DisplayOrder < langs[j].DisplayOrder })
	out := make([]string, 0, len(langs))
	for _, l := range langs {
		out = append(out, l.Code)
	}
	return out
}

func (c Catalog) IsEnabled(code string) bool {
	code = strings.ToLower(strings.TrimSpace(code))
	for _, l := range c.Languages {
		if l.Code == code {
			return l.Enabled
		}
	}
	return false
}

func (c Catalog) Label(code string) string {
	for _, l := range c.Languages {
		if l.Code == strings.ToLower(code) {
			return l.Label
		}
	}
	return strings.ToUpper(code)
}
