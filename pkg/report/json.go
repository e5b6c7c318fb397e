// Package report renders a finished selection for human and machine
// consumption: JSON export, an SVG kingdom sheet, and the plain-text
// "--why" trace dump.
package report

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/dshills/kingdomgen/pkg/selection"
)

// PileSummary is the JSON-serialisable view of one chosen pile.
type PileSummary struct {
	Name    string   `json:"name"`
	Group   string   `json:"group"`
	Supply  bool     `json:"supply"`
	Kingdom bool     `json:"kingdom"`
	Costs   []string `json:"costs"`
	Tags    []string `json:"tags,omitempty"`
}

// Kingdom is the JSON-serialisable view of a finished selection.
type Kingdom struct {
	Piles         []PileSummary `json:"piles"`
	Notes         []string      `json:"notes,omitempty"`
	Items         []string      `json:"items,omitempty"`
	RequiredCards int           `json:"requiredCards"`
}

// BuildKingdom flattens sel into the JSON-serialisable view, sorting notes
// and items for deterministic output (pile order follows the selection's
// own insertion order, which is already deterministic given a seed).
func BuildKingdom(sel *selection.Selection) Kingdom {
	k := Kingdom{RequiredCards: sel.RequiredCards()}
	for _, p := range sel.Piles() {
		costs := make([]string, 0, p.Costs.Len())
		for _, c := range p.Costs.Items() {
			costs = append(costs, c.String())
		}
		k.Piles = append(k.Piles, PileSummary{
			Name:    p.Name,
			Group:   p.Group,
			Supply:  p.Supply,
			Kingdom: p.Kingdom,
			Costs:   costs,
			Tags:    sel.Tags(p.Name),
		})
	}
	k.Notes = sel.Notes()
	sort.Strings(k.Notes)
	k.Items = sel.Items()
	sort.Strings(k.Items)
	return k
}

// ExportJSON serialises sel to indented JSON.
func ExportJSON(sel *selection.Selection) ([]byte, error) {
	return json.MarshalIndent(BuildKingdom(sel), "", "  ")
}

// SaveJSONToFile exports sel to an indented JSON file.
func SaveJSONToFile(sel *selection.Selection, filePath string) error {
	data, err := ExportJSON(sel)
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, data, 0644)
}
