package config

import (
	"embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed listings.yaml
var listingsYAML embed.FS

// Listings holds the search tuning of every entity kind.
type Listings struct {
	Kinds map[string]KindSettings `yaml:"kinds"`
}

// KindSettings tunes the fuzzy search of one entity kind.
type KindSettings struct {
	Threshold float64     `yaml:"threshold"`
	Keys      []SearchKey `yaml:"keys"`
}

// SearchKey names a record field and its relative weight.
type SearchKey struct {
	Field  string  `yaml:"field"`
	Weight float64 `yaml:"weight"`
}

// LoadListings reads the listing tuning. An empty path uses the embedded
// listings.yaml; otherwise the file at path replaces it.
func LoadListings(path string) (*Listings, error) {
	var (
		data []byte
		err  error
	)
	if path != "" {
		data, err = os.ReadFile(path)
	} else {
		data, err = listingsYAML.ReadFile("listings.yaml")
	}
	if err != nil {
		return nil, fmt.Errorf("read listings config: %w", err)
	}

	// Expand environment variables within the YAML content (e.g. ${SEARCH_THRESHOLD})
	expanded := os.ExpandEnv(string(data))

	var l Listings
	if err := yaml.Unmarshal([]byte(expanded), &l); err != nil {
		return nil, fmt.Errorf("parse listings config: %w", err)
	}
	if err := l.validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

func (l *Listings) validate() error {
	for kind, s := range l.Kinds {
		if s.Threshold < 0 || s.Threshold > 1 {
			return fmt.Errorf("listings config: %s threshold %v outside [0,1]", kind, s.Threshold)
		}
		for _, k := range s.Keys {
			if k.Field == "" {
				return fmt.Errorf("listings config: %s has a key without field", kind)
			}
			if k.Weight <= 0 {
				return fmt.Errorf("listings config: %s key %s needs a positive weight", kind, k.Field)
			}
		}
	}
	return nil
}

// Kind returns the settings for kind and whether any were configured.
func (l *Listings) Kind(kind string) (KindSettings, bool) {
	if l == nil {
		return KindSettings{}, false
	}
	s, ok := l.Kinds[kind]
	return s, ok
}
