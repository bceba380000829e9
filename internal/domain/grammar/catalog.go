package grammar

import (
	_ "embed"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed patterns.yaml
var patternsYAML []byte

var ErrCatalogTooSmall = errors.New("grammar catalog has fewer patterns than requested")
var ErrEmptyCatalog = errors.New("grammar catalog is empty")

// Catalog is the immutable set of grammar patterns plus the pre-written
// sentences served when generation fails.
type Catalog struct {
	patterns  []Pattern
	fallbacks []string
}

type catalogFile struct {
	Patterns  []Pattern `yaml:"patterns"`
	Fallbacks []string  `yaml:"fallbacks"`
}

// LoadDefault parses the catalog embedded in the binary.
func LoadDefault() (*Catalog, error) {
	return Parse(patternsYAML)
}

// Parse builds a Catalog from YAML. Both the pattern list and the fallback
// list must be non-empty.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse grammar catalog: %w", err)
	}
	if len(f.Patterns) == 0 {
		return nil, ErrEmptyCatalog
	}
	for i, p := range f.Patterns {
		if strings.TrimSpace(p.Label) == "" {
			return nil, fmt.Errorf("grammar pattern #%d has an empty label", i)
		}
	}
	if len(f.Fallbacks) == 0 {
		return nil, errors.New("grammar catalog has no fallback sentences")
	}
	return &Catalog{patterns: f.Patterns, fallbacks: f.Fallbacks}, nil
}

// Len returns the number of patterns in the catalog.
func (c *Catalog) Len() int { return len(c.patterns) }

func (c *Catalog) Patterns() []Pattern {
	out := make([]Pattern, len(c.patterns))
	copy(out, c.patterns)
	return out
}

func (c *Catalog) Fallbacks() []string {
	out := make([]string, len(c.fallbacks))
	copy(out, c.fallbacks)
	return out
}

// Sample draws n distinct patterns uniformly at random without replacement.
func (c *Catalog) Sample(n int) ([]Pattern, error) {
	if n < 0 || n > len(c.patterns) {
		return nil, fmt.Errorf("%w: requested %d, have %d", ErrCatalogTooSmall, n, len(c.patterns))
	}
	perm := rand.Perm(len(c.patterns))
	out := make([]Pattern, n)
	for i := 0; i < n; i++ {
		out[i] = c.patterns[perm[i]]
	}
	return out, nil
}
