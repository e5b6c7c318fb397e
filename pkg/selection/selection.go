// Package selection implements the partial kingdom being assembled by the
// build engine (C6): a set of chosen piles plus the bookkeeping the engine
// and constraint library need to decide what to add next.
//
// Selection deliberately does not reference package constraint: the build
// engine's recursion threads the active constraint list through closures
// instead of storing it on Selection, so this package stays a leaf with no
// dependency on the engine or constraint layers above it.
package selection

import (
	"github.com/dshills/kingdomgen/pkg/card"
	"github.com/dshills/kingdomgen/pkg/cost"
)

// Selection is a partial (or complete) kingdom under construction. It owns
// no cards or piles; it only references them.
type Selection struct {
	piles   []*card.Pile
	pileSet map[string]bool
	cards   []card.Card

	keywordCounts     map[string]int
	interactionCounts map[string]int

	targets     []card.CostTarget
	targetBlame string

	costsInSupply *cost.Set

	notes map[string]bool
	items map[string]bool
	tags  map[string][]string

	currentNormalPileCount int
	requiredCards          int

	generalPiles  []*card.Pile
	generalCursor int

	targetCheckRequired bool
}

// New builds an empty Selection drawing its general-pile stream from
// generalPiles (the catalog's one-shot shuffle). requiredCards is the
// initial market cap (10 in the standard rules).
func New(generalPiles []*card.Pile, requiredCards int) *Selection {
	return &Selection{
		pileSet:           map[string]bool{},
		keywordCounts:     map[string]int{},
		interactionCounts: map[string]int{},
		costsInSupply:     cost.NewSet(),
		notes:             map[string]bool{},
		items:             map[string]bool{},
		tags:              map[string][]string{},
		requiredCards:     requiredCards,
		generalPiles:      generalPiles,
	}
}

// Piles returns the chosen piles, in the order they were added.
func (s *Selection) Piles() []*card.Pile { return s.piles }

// Cards returns the union of cards across chosen piles.
func (s *Selection) Cards() []card.Card { return s.cards }

// CostsInSupply returns the set of costs present among supply cards in the
// selection.
func (s *Selection) CostsInSupply() *cost.Set { return s.costsInSupply }

// Targets returns the deduplicated cost-targets introduced by chosen piles.
func (s *Selection) Targets() []card.CostTarget { return s.targets }

// TargetBlame names the piles that introduced the currently unmet
// cost-target set, most recent last.
func (s *Selection) TargetBlame() string { return s.targetBlame }

// TargetCheckRequired reports whether at least one pile whose cost-targets
// were added remains unsatisfied.
func (s *Selection) TargetCheckRequired() bool { return s.targetCheckRequired }

// ClearTargetCheck marks the cost-target set as having nothing left to try
// this frame onward.
func (s *Selection) ClearTargetCheck() { s.targetCheckRequired = false }

// CurrentNormalPileCount returns the number of kingdom-and-supply piles
// chosen so far.
func (s *Selection) CurrentNormalPileCount() int { return s.currentNormalPileCount }

// RequiredCards returns the current market cap.
func (s *Selection) RequiredCards() int { return s.requiredCards }

// HasPile reports whether a pile of the given name is already chosen.
func (s *Selection) HasPile(name string) bool { return s.pileSet[name] }

// HasNote reports whether note has been recorded (property.Selectable).
func (s *Selection) HasNote(note string) bool { return s.notes[note] }

// HasItem reports whether item has been recorded as required.
func (s *Selection) HasItem(item string) bool { return s.items[item] }

// Notes returns every recorded note.
func (s *Selection) Notes() []string {
	out := make([]string, 0, len(s.notes))
	for n := range s.notes {
		out = append(out, n)
	}
	return out
}

// Items returns every recorded required item.
func (s *Selection) Items() []string {
	out := make([]string, 0, len(s.items))
	for i := range s.items {
		out = append(out, i)
	}
	return out
}

// Tags returns the tags recorded against the named pile, in insertion
// order.
func (s *Selection) Tags(pileName string) []string { return s.tags[pileName] }

// KeywordCount returns how many chosen piles declare keyword k.
func (s *Selection) KeywordCount(k string) int { return s.keywordCounts[k] }

// InteractionCount returns how many chosen piles interact with keyword k.
func (s *Selection) InteractionCount(k string) int { return s.interactionCounts[k] }

// AddPile adds p if it is not already present and the market cap allows
// it. A kingdom-and-supply pile is rejected without mutation once
// currentNormalPileCount has reached requiredCards; landscape and non-supply
// piles never count against the cap.
func (s *Selection) AddPile(p *card.Pile) bool {
	if s.pileSet[p.Name] {
		return false
	}
	if p.Supply && p.Kingdom && s.currentNormalPileCount == s.requiredCards {
		return false
	}

	s.pileSet[p.Name] = true
	s.piles = append(s.piles, p)
	s.cards = append(s.cards, p.Cards...)

	if p.Supply && p.Kingdom {
		s.currentNormalPileCount++
	}
	for _, c := range p.Cards {
		if c.Supply && c.Cost.Valid() {
			s.costsInSupply.Insert(c.Cost)
		}
	}
	for k := range p.Keywords {
		s.keywordCounts[k]++
	}
	for k := range p.Interacts {
		s.interactionCounts[k]++
	}
	if len(p.Targets) > 0 {
		for _, t := range p.Targets {
			if !containsTarget(s.targets, t) {
				s.targets = append(s.targets, t)
			}
		}
		s.targetCheckRequired = true
		if s.targetBlame != "" {
			s.targetBlame += ", "
		}
		s.targetBlame += p.Name
	}
	return true
}

func containsTarget(list []card.CostTarget, t card.CostTarget) bool {
	for _, existing := range list {
		if existing.Equal(t) {
			return true
		}
	}
	return false
}

// IncreaseRequiredPiles raises the market cap by one. Used only by the bane
// action, which must make room for the bane pile it is about to add.
func (s *Selection) IncreaseRequiredPiles() { s.requiredCards++ }

// TagPile records tag against pileName. Tags are purely annotative and are
// permitted against piles not yet added.
func (s *Selection) TagPile(pileName, tag string) {
	s.tags[pileName] = append(s.tags[pileName], tag)
}

// AddNote records a free-form note (e.g. "addedProsperity-base", "hasBane").
func (s *Selection) AddNote(note string) { s.notes[note] = true }

// AddItem records a required external item (token, mat).
func (s *Selection) AddItem(item string) { s.items[item] = true }

// GetGeneralPile advances the general-pile cursor and returns the next
// pile from the catalog's one-shot shuffle. It returns (nil, false) once
// the stream is exhausted. Cursor state lives on the Selection value, so
// each clone owns an independent position in the shared shuffle.
func (s *Selection) GetGeneralPile() (*card.Pile, bool) {
	if s.generalCursor >= len(s.generalPiles) {
		return nil, false
	}
	p := s.generalPiles[s.generalCursor]
	s.generalCursor++
	return p, true
}

// Clone makes a shallow copy: every collection is duplicated so mutating
// the clone never affects the original, except the general-pile vector
// itself (the shared, immutable shuffle order from catalog construction)
// and the cursor, which is a plain int field copied by value like any
// other scalar.
func (s *Selection) Clone() *Selection {
	clone := *s

	clone.piles = append([]*card.Pile(nil), s.piles...)
	clone.pileSet = copyBoolMap(s.pileSet)
	clone.cards = append([]card.Card(nil), s.cards...)
	clone.keywordCounts = copyIntMap(s.keywordCounts)
	clone.interactionCounts = copyIntMap(s.interactionCounts)
	clone.targets = append([]card.CostTarget(nil), s.targets...)
	clone.costsInSupply = cost.NewSet(s.costsInSupply.Items()...)
	clone.notes = copyBoolMap(s.notes)
	clone.items = copyBoolMap(s.items)
	clone.tags = copyTagMap(s.tags)

	return &clone
}

func copyBoolMap(m map[string]bool) map[string]bool {
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyIntMap(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyTagMap(m map[string][]string) map[string][]string {
	out := make(map[string][]string, len(m))
	for k, v := range m {
		out[k] = append([]string(nil), v...)
	}
	return out
}
