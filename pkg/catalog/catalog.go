// Package catalog owns the full set of piles available to a generation
// run: a sorted pile vector, the legal cost universe, and a memoised index
// from property to matching piles (C3).
package catalog

import (
	"sort"

	"github.com/dshills/kingdomgen/pkg/card"
	"github.com/dshills/kingdomgen/pkg/cost"
	"github.com/dshills/kingdomgen/pkg/property"
	"github.com/dshills/kingdomgen/pkg/rngsrc"
)

// Catalog is constructed once from a parsed pile set and owned read-only
// for the remainder of a generation run. Its pile order is deterministically
// randomised once, at construction, by a three-pass Fisher-Yates shuffle
// driven by the injected RNG — this is the only place catalog construction
// consults randomness; the engine draws from the resulting fixed order.
type Catalog struct {
	sorted     []*card.Pile // pile vector sorted by (group, name)
	shuffled   []*card.Pile // catalog.shuffle() applied once at construction
	legalCosts *cost.Set
	byName     map[string]*card.Pile
	byCardName map[string]*card.Pile
	index      map[string][]*card.Pile
}

// New builds a Catalog from piles, sorting a stable copy by (group, name),
// computing the legal cost universe, and shuffling a second copy for the
// build engine's general-pile stream.
func New(piles []*card.Pile, rng rngsrc.Source) *Catalog {
	c := &Catalog{
		legalCosts: cost.NewSet(),
		byName:     map[string]*card.Pile{},
		byCardName: map[string]*card.Pile{},
		index:      map[string][]*card.Pile{},
	}
	c.sorted = append(c.sorted, piles...)
	sort.Slice(c.sorted, func(i, j int) bool {
		a, b := c.sorted[i], c.sorted[j]
		if a.Group != b.Group {
			return a.Group < b.Group
		}
		return a.Name < b.Name
	})
	for _, p := range c.sorted {
		c.byName[p.Name] = p
		for _, card := range p.Cards {
			c.byCardName[card.Name] = p
		}
		for _, cst := range p.Costs.Items() {
			c.legalCosts.Insert(cst)
		}
	}
	c.shuffled = append([]*card.Pile(nil), c.sorted...)
	threePassShuffle(c.shuffled, rng)
	return c
}

// threePassShuffle performs three independent passes of Fisher-Yates over
// piles, using rng for every swap decision. A single Fisher-Yates pass is
// already a uniform shuffle; three passes are specified explicitly here
// (REDESIGN FLAGS: the originating collaborator's inner loop reused the
// outer loop's index variable, leaving its intended three-pass shuffle
// unclear — this implementation runs three independent, correctly-scoped
// passes rather than reproducing that ambiguity).
func threePassShuffle(piles []*card.Pile, rng rngsrc.Source) {
	for pass := 0; pass < 3; pass++ {
		for i := len(piles) - 1; i > 0; i-- {
			j := rng.Intn(i + 1)
			piles[i], piles[j] = piles[j], piles[i]
		}
	}
}

// Piles returns the full pile vector, sorted by (group, name).
func (c *Catalog) Piles() []*card.Pile { return c.sorted }

// ShuffledPiles returns the one-shot-shuffled pile vector the build engine
// draws its general-pile stream from.
func (c *Catalog) ShuffledPiles() []*card.Pile { return c.shuffled }

// LegalCosts returns the union of costs appearing anywhere in the catalog.
func (c *Catalog) LegalCosts() *cost.Set { return c.legalCosts }

// PileByName looks up a pile by its exact name.
func (c *Catalog) PileByName(name string) (*card.Pile, bool) {
	p, ok := c.byName[name]
	return p, ok
}

// PileForCard returns the pile containing the named card, if any.
func (c *Catalog) PileForCard(name string) (*card.Pile, bool) {
	p, ok := c.byCardName[name]
	return p, ok
}

// GetPiles looks up a pile-scoped property in the memoisation map; on miss
// it evaluates the property against every pile, caches, and returns the
// (possibly empty) result. Selection-scoped properties are rejected and
// produce (nil, false), matching the contract that only pile-scoped
// properties can be indexed this way. The returned slice is the same
// backing array across repeated calls with an equal property, since the
// cache is keyed by the property's CacheKey (and equal properties are
// required to produce an equal key).
func (c *Catalog) GetPiles(p property.Property) ([]*card.Pile, bool) {
	if p.IsSelectionProperty() {
		return nil, false
	}
	key := p.CacheKey()
	if cached, ok := c.index[key]; ok {
		return cached, true
	}
	var matches []*card.Pile
	for _, pile := range c.sorted {
		if p.MeetsPile(pile) {
			matches = append(matches, pile)
		}
	}
	c.index[key] = matches
	return matches, true
}

// BasePiles returns every pile whose Group is exactly "base", the seed
// group every selection starts from.
func (c *Catalog) BasePiles() []*card.Pile {
	var out []*card.Pile
	for _, p := range c.sorted {
		if p.Group == "base" {
			out = append(out, p)
		}
	}
	return out
}
