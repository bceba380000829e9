package reminder

import "fmt"

// Entry is a canned reminder: the English prompt, its translation and a
// Latin-script transliteration of the translation.
type Entry struct {
	Prompt          string `yaml:"prompt"`
	Translation     string `yaml:"translation"`
	Transliteration string `yaml:"transliteration"`
}

// Markdown renders the entry as three lines with the translation in bold and
// the transliteration in italics (Telegram legacy Markdown).
func (e Entry) Markdown() string {
	return fmt.Sprintf("%s\n*%s*\n_%s_", e.Prompt, e.Translation, e.Transliteration)
}
