// Package card holds the immutable catalog types: Card and the Piles they
// are grouped into.
package card

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dshills/kingdomgen/pkg/cost"
)

// Card is an immutable catalog entry. PileName is empty when the card is
// the sole member of its own pile ("own pile").
type Card struct {
	Name        string
	PileName    string
	Group       string // expansion/subgroup label, e.g. "DarkAges-base"
	Supply      bool
	Kingdom     bool
	Types       map[string]bool
	Cost        cost.Cost
	Keywords    map[string]bool
	Interacts   map[string]bool // keywords a companion card must provide
	OtherTokens []string        // free-form tokens, e.g. card(X), group(X), react(X), cost...
	Targets     []CostTarget    // parsed from cost... tokens, see costvote.Target
}

// CostTarget is the minimal shape card.Card needs to reference a parsed
// cost-target without importing package costvote (which itself imports
// card for pile aggregation); the concrete type lives in costvote and
// satisfies this interface.
type CostTarget interface {
	Equal(other CostTarget) bool
}

// PileNameOrOwn returns PileName, defaulting to the card's own Name.
func (c Card) PileNameOrOwn() string {
	if c.PileName == "" {
		return c.Name
	}
	return c.PileName
}

// HasType reports whether the card declares the given type.
func (c Card) HasType(t string) bool { return c.Types[t] }

// HasKeyword reports whether the card declares the given keyword.
func (c Card) HasKeyword(k string) bool { return c.Keywords[k] }

// InteractsWith reports whether the card requires a companion providing kw.
func (c Card) InteractsWith(kw string) bool { return c.Interacts[kw] }

// HasOtherInteraction reports whether token is present verbatim.
func (c Card) HasOtherInteraction(token string) bool {
	for _, t := range c.OtherTokens {
		if t == token {
			return true
		}
	}
	return false
}

// Pile is a named collection of one or more cards sharing a pile name.
// Aggregate attributes are unioned across member cards (OR for the two
// booleans, set-union for the rest); card-group is inherited from the
// members, which are homogeneous in practice.
type Pile struct {
	Name        string
	Group       string
	Cards       []Card
	Supply      bool
	Kingdom     bool
	Types       map[string]bool
	Costs       *cost.Set
	Keywords    map[string]bool
	Interacts   map[string]bool
	OtherTokens map[string]bool
	Targets     []CostTarget
}

// NewPile aggregates cards (which must share a pile name) into a Pile.
func NewPile(name string, cards []Card) *Pile {
	p := &Pile{
		Name:        name,
		Types:       map[string]bool{},
		Costs:       cost.NewSet(),
		Keywords:    map[string]bool{},
		Interacts:   map[string]bool{},
		OtherTokens: map[string]bool{},
	}
	for i, c := range cards {
		if i == 0 {
			p.Group = c.Group
		}
		p.Cards = append(p.Cards, c)
		p.Supply = p.Supply || c.Supply
		p.Kingdom = p.Kingdom || c.Kingdom
		for t := range c.Types {
			p.Types[t] = true
		}
		if c.Cost.Valid() {
			p.Costs.Insert(c.Cost)
		}
		for k := range c.Keywords {
			p.Keywords[k] = true
		}
		for k := range c.Interacts {
			p.Interacts[k] = true
		}
		for _, tok := range c.OtherTokens {
			p.OtherTokens[tok] = true
		}
		for _, target := range c.Targets {
			if !containsTarget(p.Targets, target) {
				p.Targets = append(p.Targets, target)
			}
		}
	}
	return p
}

func containsTarget(list []CostTarget, t CostTarget) bool {
	for _, existing := range list {
		if existing.Equal(t) {
			return true
		}
	}
	return false
}

// HasType reports whether any member card declares type t.
func (p *Pile) HasType(t string) bool { return p.Types[t] }

// HasKeyword reports whether any member card declares keyword k.
func (p *Pile) HasKeyword(k string) bool { return p.Keywords[k] }

// HasInteraction reports whether any member card interacts with keyword k.
func (p *Pile) HasInteraction(k string) bool { return p.Interacts[k] }

// HasOtherToken reports whether token is present verbatim on any member.
func (p *Pile) HasOtherToken(token string) bool { return p.OtherTokens[token] }

// OtherTokensWithPrefix returns every other-interaction token starting with
// prefix, whole (prefix included) and sorted.
func (p *Pile) OtherTokensWithPrefix(prefix string) []string {
	var out []string
	for tok := range p.OtherTokens {
		if strings.HasPrefix(tok, prefix) {
			out = append(out, tok)
		}
	}
	sort.Strings(out)
	return out
}

// String renders a short human-readable summary.
func (p *Pile) String() string {
	return fmt.Sprintf("Pile[%s group=%s supply=%v kingdom=%v cards=%d]",
		p.Name, p.Group, p.Supply, p.Kingdom, len(p.Cards))
}

// Cards returns the union of cards across a set of piles, in pile order.
func Cards(piles []*Pile) []Card {
	var out []Card
	for _, p := range piles {
		out = append(out, p.Cards...)
	}
	return out
}
