// Package preset provides the catalog of mood presets shown in the sidebar.
// A preset is only a shortcut: selecting it submits its fixed prompt.
package preset

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Preset is a labeled shortcut for a descriptive mood sentence.
type Preset struct {
	Label  string `yaml:"label" json:"label"`
	Icon   string `yaml:"icon,omitempty" json:"icon,omitempty"`
	Prompt string `yaml:"prompt" json:"prompt"`
}

// Catalog is an ordered list of presets.
type Catalog struct {
	Presets []Preset `yaml:"presets" json:"presets"`
}

// Validation errors.
var (
	ErrEmptyCatalog   = errors.New("catalog has no presets")
	ErrEmptyLabel     = errors.New("preset label cannot be empty")
	ErrEmptyPrompt    = errors.New("preset prompt cannot be empty")
	ErrDuplicateLabel = errors.New("duplicate preset label")
)

// defaultPresets mirrors the sidebar of the web companion.
var defaultPresets = []Preset{
	{Label: "Energized", Icon: "ϟ", Prompt: "I'm feeling super energized and ready to take on the day!"},
	{Label: "Stressed", Icon: "≋", Prompt: "I've had a really stressful day at work and need to unwind."},
	{Label: "Tired", Icon: "▁", Prompt: "My energy levels are low, I feel quite exhausted."},
	{Label: "Calm", Icon: "☾", Prompt: "I'm feeling very peaceful and mindful right now."},
	{Label: "Productive", Icon: "✓", Prompt: "I've been very productive today and feel proud."},
	{Label: "Anxious", Icon: "✦", Prompt: "I'm feeling a bit anxious about upcoming events."},
	{Label: "Happy", Icon: "☺", Prompt: "Everything is going great, I'm in a wonderful mood!"},
	{Label: "Low", Icon: "♡", Prompt: "I'm feeling a bit down and could use some encouragement."},
	{Label: "Focused", Icon: "☼", Prompt: "I'm in deep focus mode and want to maintain this state."},
	{Label: "Social", Icon: "✉", Prompt: "I'm feeling very social and chatty today."},
}

// Default returns the built-in catalog.
func Default() Catalog {
	presets := make([]Preset, len(defaultPresets))
	copy(presets, defaultPresets)
	return Catalog{Presets: presets}
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("parse presets: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

// LoadFile reads a YAML catalog from path.
func LoadFile(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read presets: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return Catalog{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Load returns the catalog at path, or the built-in catalog if path is empty.
func Load(path string) (Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// Validate checks that every preset has a label and prompt and that labels
// are unique (case-insensitive).
func (c Catalog) Validate() error {
	if len(c.Presets) == 0 {
		return ErrEmptyCatalog
	}
	seen := make(map[string]bool, len(c.Presets))
	for i, p := range c.Presets {
		label := strings.TrimSpace(p.Label)
		if label == "" {
			return fmt.Errorf("presets[%d]: %w", i, ErrEmptyLabel)
		}
		if strings.TrimSpace(p.Prompt) == "" {
			return fmt.Errorf("presets[%d] (%s): %w", i, label, ErrEmptyPrompt)
		}
		key := strings.ToLower(label)
		if seen[key] {
			return fmt.Errorf("presets[%d]: %w: %q", i, ErrDuplicateLabel, label)
		}
		seen[key] = true
	}
	return nil
}

// Find looks up a preset by label, ignoring case.
func (c Catalog) Find(label string) (Preset, bool) {
	label = strings.TrimSpace(label)
	for _, p := range c.Presets {
		if strings.EqualFold(p.Label, label) {
			return p, true
		}
	}
	return Preset{}, false
}

// Labels returns the preset labels in order.
func (c Catalog) Labels() []string {
	labels := make([]string, len(c.Presets))
	for i, p := range c.Presets {
		labels[i] = p.Label
	}
	return labels
}

// Len returns the number of presets.
func (c Catalog) Len() int {
	return len(c.Presets)
}

// Encode encodes the catalog in the same format LoadFile reads.
func (c Catalog) Encode() ([]byte, error) {
	return yaml.Marshal(c)
}
