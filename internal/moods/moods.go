// Package moods holds the static mood catalog offered when writing an entry.
package moods

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// DefaultPrompt is shown above the editor until a mood is chosen.
const DefaultPrompt = "Write your thoughts..."

// Mood is one catalog entry. Catalog entries are never created or changed at runtime.
type Mood struct {
	ID         string `yaml:"id" json:"id"`
	Label      string `yaml:"label" json:"label"`
	Emoji      string `yaml:"emoji" json:"emoji"`
	Score      int    `yaml:"score" json:"score"`
	ImageQuery string `yaml:"image_query" json:"image_query"`
	Prompt     string `yaml:"prompt" json:"prompt"`
}

//go:embed moods.yaml
var catalogYAML []byte

var (
	catalog []Mood
	byID    map[string]Mood
)

func init() {
	moods, err := Parse(catalogYAML)
	if err != nil {
		panic(fmt.Sprintf("moods: invalid embedded catalog: %v", err))
	}
	catalog = moods
	byID = make(map[string]Mood, len(moods))
	for _, m := range moods {
		byID[m.ID] = m
	}
}

// Parse decodes a YAML catalog and checks that every mood has an id, a label
// and a score in 1..10, and that ids are unique.
func Parse(data []byte) ([]Mood, error) {
	var moods []Mood
	if err := yaml.Unmarshal(data, &moods); err != nil {
		return nil, fmt.Errorf("failed to parse mood catalog: %w", err)
	}
	seen := make(map[string]bool, len(moods))
	for i, m := range moods {
		if m.ID == "" || m.Label == "" {
			return nil, fmt.Errorf("mood %d: id and label are required", i)
		}
		if m.Score < 1 || m.Score > 10 {
			return nil, fmt.Errorf("mood %q: score %d out of range 1..10", m.ID, m.Score)
		}
		if seen[m.ID] {
			return nil, fmt.Errorf("mood %q: duplicate id", m.ID)
		}
		seen[m.ID] = true
	}
	return moods, nil
}

// All returns the catalog in selector order.
func All() []Mood {
	out := make([]Mood, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the mood with the given id.
func Lookup(id string) (Mood, bool) {
	m, ok := byID[id]
	return m, ok
}

// Valid reports whether id is a catalog key.
func Valid(id string) bool {
	_, ok := byID[id]
	return ok
}

// PromptFor returns the writing prompt for a mood, or DefaultPrompt.
func PromptFor(id string) string {
	if m, ok := byID[id]; ok && m.Prompt != "" {
		return m.Prompt
	}
	return DefaultPrompt
}

// MustLookup is Lookup for ids that are known to be valid.
func MustLookup(id string) Mood {
	m, ok := byID[id]
	if !ok {
		panic(fmt.Sprintf("moods: unknown mood %q", id))
	}
	return m
}
