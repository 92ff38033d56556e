// Package precon ships preconstructed deck templates that users can import
// into their account as a starting point. Templates are embedded in the
// binary so imports work without any external data source.
package precon

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

//go:embed data/*.json
var templateFS embed.FS

// TemplateCard is a single entry in a precon list.
type TemplateCard struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Template is a preconstructed deck definition.
type Template struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Format      string         `json:"format"`
	Commander   string         `json:"commander,omitempty"`
	Description string         `json:"description"`
	Colors      []string       `json:"colors"`
	Cards       []TemplateCard `json:"cards"`
}

// CardCount returns the total number of cards in the list.
func (t Template) CardCount() int {
	total := 0
	for _, c := range t.Cards {
		total += c.Quantity
	}
	return total
}

// Catalog holds the loaded templates, keyed by ID.
type Catalog struct {
	templates map[string]Template
}

// Load parses every embedded template. Called once at startup; a malformed
// template is a build defect, not a runtime condition.
func Load() (*Catalog, error) {
	entries, err := templateFS.ReadDir("data")
	if err != nil {
		return nil, fmt.Errorf("failed to read precon templates: %w", err)
	}

	catalog := &Catalog{templates: make(map[string]Template, len(entries))}
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		raw, err := templateFS.ReadFile("data/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read precon %s: %w", entry.Name(), err)
		}

		var tpl Template
		if err := json.Unmarshal(raw, &tpl); err != nil {
			return nil, fmt.Errorf("failed to parse precon %s: %w", entry.Name(), err)
		}
		if tpl.ID == "" || tpl.Name == "" || len(tpl.Cards) == 0 {
			return nil, fmt.Errorf("precon %s is missing id, name or cards", entry.Name())
		}
		if _, exists := catalog.templates[tpl.ID]; exists {
			return nil, fmt.Errorf("duplicate precon id %q", tpl.ID)
		}
		catalog.templates[tpl.ID] = tpl
	}
	return catalog, nil
}

// List returns all templates sorted by name.
func (c *Catalog) List() []Template {
	out := make([]Template, 0, len(c.templates))
	for _, t := range c.templates {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Get returns the template with the given ID, or false if it does not exist.
func (c *Catalog) Get(id string) (Template, bool) {
	t, ok := c.templates[id]
	return t, ok
}
