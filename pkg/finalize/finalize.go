// Package finalize implements the post-build pass (C9) that runs once a
// selection has successfully built: the DarkAges-base replacement roll,
// required-token/mat scanning, and Heirloom tagging.
package finalize

import (
	"github.com/dshills/kingdomgen/pkg/catalog"
	"github.com/dshills/kingdomgen/pkg/property"
	"github.com/dshills/kingdomgen/pkg/rngsrc"
	"github.com/dshills/kingdomgen/pkg/selection"
)

// Finalize mutates sel in place: it may add DarkAges-base piles, and it
// records required items and presentation tags.
func Finalize(sel *selection.Selection, cat *catalog.Catalog, rng rngsrc.Source) {
	rollDarkAges(sel, cat, rng)
	scanItemsAndTags(sel)
}

// rollDarkAges counts kingdom+supply piles and those from group "DarkAges",
// then draws a die against the kingdom+supply count: when the draw lands
// inside the DarkAges share, every DarkAges-base pile is added to replace
// the Estate in the starting deck.
func rollDarkAges(sel *selection.Selection, cat *catalog.Catalog, rng rngsrc.Source) {
	ksCount, daCount := 0, 0
	for _, p := range sel.Piles() {
		if p.Kingdom && p.Supply {
			ksCount++
			if p.Group == "DarkAges" {
				daCount++
			}
		}
	}
	if ksCount == 0 || rng.Intn(ksCount) >= daCount {
		return
	}
	baseDarkAges, _ := cat.GetPiles(property.CardGroupProperty{Group: "DarkAges-base"})
	for _, p := range baseDarkAges {
		if sel.AddPile(p) {
			sel.TagPile(p.Name, "Replaces Estate in starting deck")
		}
	}
	sel.AddNote("addedDarkAges-base")
}

// scanItemsAndTags declares the external tokens/mats a kingdom needs and
// tags Heirloom piles.
func scanItemsAndTags(sel *selection.Selection) {
	for _, p := range sel.Piles() {
		if p.HasKeyword("+point") {
			sel.AddItem("shield-points tokens")
		}
		for _, c := range p.Costs.Items() {
			if c.HasDebt() {
				sel.AddItem("debt tokens")
				break
			}
		}
		if p.HasKeyword("+coffers") || p.HasKeyword("+villagers") {
			sel.AddItem("coin tokens")
		}
		if p.HasKeyword("+coffers") {
			sel.AddItem("coffers mat")
		}
		if p.HasKeyword("+villagers") {
			sel.AddItem("villagers mat")
		}
		if p.HasType("Heirloom") {
			sel.TagPile(p.Name, "Replaces one Copper in starting deck")
		}
	}
}
