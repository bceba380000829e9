package grammar

// Pattern is a single grammar construct from the practice catalog.
type Pattern struct {
	Level   string `yaml:"level"`
	Label   string `yaml:"label"`
	Example string `yaml:"example"`
}

// Description renders the pattern as "<label>: <example>", the form the generator prompt expects.
func (p Pattern) Description() string {
	return p.Label + ": " + p.Example
}
