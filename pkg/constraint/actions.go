package constraint

import (
	"fmt"
	"strings"

	"github.com/dshills/kingdomgen/pkg/catalog"
	"github.com/dshills/kingdomgen/pkg/cost"
	"github.com/dshills/kingdomgen/pkg/property"
	"github.com/dshills/kingdomgen/pkg/selection"
)

// FindBane iterates the pre-computed pile range of Action cards costing 2
// or 3. For the first one not yet present it clones, raises the market
// cap by one, adds the pile, tags it "Bane", notes "hasBane", and
// recurses; it returns the first successful recursion.
type FindBane struct {
	Catalog *catalog.Catalog
}

func (a FindBane) Apply(label string, start *selection.Selection, build BuildFunc) (bool, *selection.Selection, string) {
	candidates, _ := a.Catalog.GetPiles(property.NewCostAndTypeSetProperty("Action", cost.NewSet(cost.New(2), cost.New(3))))
	for _, p := range candidates {
		if start.HasPile(p.Name) {
			continue
		}
		clone := start.Clone()
		clone.IncreaseRequiredPiles()
		if !clone.AddPile(p) {
			continue
		}
		clone.TagPile(p.Name, "Bane")
		clone.AddNote("hasBane")
		if ok, result, msg := build(clone); ok {
			return true, result, msg
		}
	}
	return false, nil, fmt.Sprintf("%s: no bane pile available", label)
}

// FindPile searches Match for the first not-yet-present pile, adds it, and
// recurses. Unlike FindBane it never touches the market cap.
type FindPile struct {
	Catalog *catalog.Catalog
	Match   property.Property
	Tag     string // optional; empty means no tag
}

func (a FindPile) Apply(label string, start *selection.Selection, build BuildFunc) (bool, *selection.Selection, string) {
	candidates, _ := a.Catalog.GetPiles(a.Match)
	for _, p := range candidates {
		if start.HasPile(p.Name) {
			continue
		}
		clone := start.Clone()
		if !clone.AddPile(p) {
			continue
		}
		if a.Tag != "" {
			clone.TagPile(p.Name, a.Tag)
		}
		if ok, result, msg := build(clone); ok {
			return true, result, msg
		}
	}
	return false, nil, fmt.Sprintf("%s: no matching pile available", label)
}

// AddGroup adds every addable pile from Group in one clone, notes
// "added«Group»", and recurses once.
type AddGroup struct {
	Catalog *catalog.Catalog
	Group   string
}

func (a AddGroup) Apply(label string, start *selection.Selection, build BuildFunc) (bool, *selection.Selection, string) {
	piles, _ := a.Catalog.GetPiles(property.CardGroupProperty{Group: a.Group})
	clone := start.Clone()
	added := 0
	for _, p := range piles {
		if clone.AddPile(p) {
			added++
		}
	}
	if added == 0 {
		return false, nil, fmt.Sprintf("%s: group %s had nothing left to add", label, a.Group)
	}
	clone.AddNote("added" + a.Group)
	return build(clone)
}

// AddMissingDependency scans chosen piles for card(X) tokens, finds the
// pile containing card X, adds it, and recurses once. Further missing
// dependencies are caught in later frames.
type AddMissingDependency struct {
	Catalog *catalog.Catalog
}

func (a AddMissingDependency) Apply(label string, start *selection.Selection, build BuildFunc) (bool, *selection.Selection, string) {
	have := map[string]bool{}
	for _, c := range start.Cards() {
		have[c.Name] = true
	}
	for _, p := range start.Piles() {
		for _, tok := range p.OtherTokensWithPrefix("card(") {
			name := strings.TrimSuffix(strings.TrimPrefix(tok, "card("), ")")
			if have[name] {
				continue
			}
			dep, ok := a.Catalog.PileForCard(name)
			if !ok || start.HasPile(dep.Name) {
				continue
			}
			clone := start.Clone()
			if !clone.AddPile(dep) {
				continue
			}
			return build(clone)
		}
	}
	return false, nil, fmt.Sprintf("%s: no missing dependency found", label)
}

// AddMissingDependencyGroup scans for group(X) tokens; for each missing
// "addedX" note it adds all piles from group X onto a single combined
// clone, then recurses once.
type AddMissingDependencyGroup struct {
	Catalog *catalog.Catalog
}

func (a AddMissingDependencyGroup) Apply(label string, start *selection.Selection, build BuildFunc) (bool, *selection.Selection, string) {
	clone := start.Clone()
	added := 0
	seen := map[string]bool{}
	for _, p := range start.Piles() {
		for _, tok := range p.OtherTokensWithPrefix("group(") {
			name := strings.TrimSuffix(strings.TrimPrefix(tok, "group("), ")")
			if seen[name] || start.HasNote("added"+name) {
				continue
			}
			seen[name] = true
			groupPiles, _ := a.Catalog.GetPiles(property.CardGroupProperty{Group: name})
			for _, gp := range groupPiles {
				if clone.AddPile(gp) {
					added++
				}
			}
			clone.AddNote("added" + name)
		}
	}
	if added == 0 {
		return false, nil, fmt.Sprintf("%s: no missing dependency group found", label)
	}
	return build(clone)
}

// AddProsperity adds the Platinum and Colony piles and recurses.
type AddProsperity struct {
	Catalog *catalog.Catalog
}

func (a AddProsperity) Apply(label string, start *selection.Selection, build BuildFunc) (bool, *selection.Selection, string) {
	clone := start.Clone()
	added := 0
	for _, name := range []string{"Platinum", "Colony"} {
		if p, ok := a.Catalog.PileByName(name); ok && clone.AddPile(p) {
			added++
		}
	}
	if added == 0 {
		return false, nil, fmt.Sprintf("%s: Platinum/Colony unavailable", label)
	}
	return build(clone)
}
