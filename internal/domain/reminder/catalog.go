package reminder

import (
	_ "embed"
	"errors"
	"fmt"
	"math/rand/v2"

	"gopkg.in/yaml.v3"
)

//go:embed reminders.yaml
var remindersYAML []byte

var ErrEmptyCatalog = errors.New("reminder catalog is empty")

type Catalog struct {
	entries []Entry
}

// LoadDefault parses the reminders embedded in the binary.
func LoadDefault() (*Catalog, error) {
	return Parse(remindersYAML)
}

func Parse(data []byte) (*Catalog, error) {
	var f struct {
		Reminders []Entry `yaml:"reminders"`
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse reminder catalog: %w", err)
	}
	if len(f.Reminders) == 0 {
		return nil, ErrEmptyCatalog
	}
	for i, e := range f.Reminders {
		if e.Prompt == "" || e.Translation == "" || e.Transliteration == "" {
			return nil, fmt.Errorf("reminder #%d is incomplete", i)
		}
	}
	return &Catalog{entries: f.Reminders}, nil
}

func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Pick returns one entry chosen uniformly at random.
func (c *Catalog) Pick() Entry {
	return c.entries[rand.IntN(len(c.entries))]
}
