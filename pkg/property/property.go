// Package property implements the closed, small algebra of predicates (C4)
// that the build engine and constraint library evaluate against either a
// single pile or a whole selection.
//
// Every concrete property is a value type (the REDESIGN FLAGS in the
// originating specification call for tagged variants instead of the
// inheritance + dynamic_cast the predicates were originally modelled with).
// Equal compares structural configuration; CacheKey is a deterministic
// string derived from that same configuration so the catalog index (C3)
// can memoise on properties directly as a map key, and so equal properties
// are guaranteed to produce an equal cache key.
package property

import (
	"fmt"
	"strings"

	"github.com/dshills/kingdomgen/pkg/card"
	"github.com/dshills/kingdomgen/pkg/cost"
)

// Selectable is the narrow view of a partial selection that selection-scoped
// properties need. It keeps this package independent of the selection
// package: *selection.Selection satisfies it, as do test fakes.
type Selectable interface {
	Piles() []*card.Pile
	Cards() []card.Card
	HasNote(note string) bool
}

// Property is the uniform capability every predicate variant implements.
// A property must implement exactly one of MeetsPile/MeetsSelection
// correctly according to IsSelectionProperty; the other always returns
// false.
type Property interface {
	MeetsPile(p *card.Pile) bool
	MeetsSelection(s Selectable) bool
	IsSelectionProperty() bool
	Equal(other Property) bool
	CacheKey() string
}

// ---- TypeProperty ----

// TypeProperty matches piles declaring the named type, optionally
// restricted to kingdom-and-supply piles.
type TypeProperty struct {
	Type                       string
	RestrictToKingdomAndSupply bool
}

func (p TypeProperty) MeetsPile(pile *card.Pile) bool {
	if !pile.HasType(p.Type) {
		return false
	}
	if p.RestrictToKingdomAndSupply {
		return pile.Supply && pile.Kingdom
	}
	return true
}
func (p TypeProperty) MeetsSelection(Selectable) bool  { return false }
func (p TypeProperty) IsSelectionProperty() bool        { return false }
func (p TypeProperty) Equal(other Property) bool {
	o, ok := other.(TypeProperty)
	return ok && o.Type == p.Type && o.RestrictToKingdomAndSupply == p.RestrictToKingdomAndSupply
}
func (p TypeProperty) CacheKey() string {
	return fmt.Sprintf("Type(%s,%v)", p.Type, p.RestrictToKingdomAndSupply)
}

// ---- KeywordProperty ----

// KeywordProperty matches piles declaring the named keyword, optionally
// restricted to kingdom-and-supply piles.
type KeywordProperty struct {
	Keyword          string
	KingdomAndSupply bool
}

func (p KeywordProperty) MeetsPile(pile *card.Pile) bool {
	if !pile.HasKeyword(p.Keyword) {
		return false
	}
	if p.KingdomAndSupply {
		return pile.Supply && pile.Kingdom
	}
	return true
}
func (p KeywordProperty) MeetsSelection(Selectable) bool { return false }
func (p KeywordProperty) IsSelectionProperty() bool       { return false }
func (p KeywordProperty) Equal(other Property) bool {
	o, ok := other.(KeywordProperty)
	return ok && o.Keyword == p.Keyword && o.KingdomAndSupply == p.KingdomAndSupply
}
func (p KeywordProperty) CacheKey() string {
	return fmt.Sprintf("Keyword(%s,%v)", p.Keyword, p.KingdomAndSupply)
}

// ---- KeywordInteractionProperty ----

// KeywordInteractionProperty matches piles declaring an interaction with
// the given keyword (a companion-card requirement).
type KeywordInteractionProperty struct {
	Keyword string
}

func (p KeywordInteractionProperty) MeetsPile(pile *card.Pile) bool {
	return pile.HasInteraction(p.Keyword)
}
func (p KeywordInteractionProperty) MeetsSelection(Selectable) bool { return false }
func (p KeywordInteractionProperty) IsSelectionProperty() bool       { return false }
func (p KeywordInteractionProperty) Equal(other Property) bool {
	o, ok := other.(KeywordInteractionProperty)
	return ok && o.Keyword == p.Keyword
}
func (p KeywordInteractionProperty) CacheKey() string {
	return fmt.Sprintf("KeywordInteraction(%s)", p.Keyword)
}

// ---- CostProperty ----

// CostProperty matches piles whose costs intersect the given cost set.
// It restricts on supply only, never kingdom, so default treasures remain
// considered for cost-relationship purposes.
type CostProperty struct {
	Costs      *cost.Set
	SupplyOnly bool
}

// NewCostProperty builds a CostProperty from a single cost.
func NewCostProperty(c cost.Cost, supplyOnly bool) CostProperty {
	return CostProperty{Costs: cost.NewSet(c), SupplyOnly: supplyOnly}
}

func (p CostProperty) MeetsPile(pile *card.Pile) bool {
	if p.SupplyOnly && !pile.Supply {
		return false
	}
	return cost.Intersects(pile.Costs, p.Costs)
}
func (p CostProperty) MeetsSelection(Selectable) bool { return false }
func (p CostProperty) IsSelectionProperty() bool       { return false }
func (p CostProperty) Equal(other Property) bool {
	o, ok := other.(CostProperty)
	if !ok || o.SupplyOnly != p.SupplyOnly || o.Costs.Len() != p.Costs.Len() {
		return false
	}
	for _, c := range p.Costs.Items() {
		if !o.Costs.Contains(c) {
			return false
		}
	}
	return true
}
func (p CostProperty) CacheKey() string {
	var sb strings.Builder
	sb.WriteString("Cost(")
	for _, c := range p.Costs.Items() {
		sb.WriteString(c.String())
	}
	fmt.Fprintf(&sb, ",%v)", p.SupplyOnly)
	return sb.String()
}

// ---- CostAndTypeProperty ----

// CostAndTypeProperty is the conjunction of TypeProperty and CostProperty.
type CostAndTypeProperty struct {
	Type string
	Cost CostProperty
}

// NewCostAndTypeProperty builds a CostAndTypeProperty from a type and a
// single cost (supply-only, matching CostProperty's default).
func NewCostAndTypeProperty(t string, c cost.Cost) CostAndTypeProperty {
	return CostAndTypeProperty{Type: t, Cost: NewCostProperty(c, true)}
}

// NewCostAndTypeSetProperty builds a CostAndTypeProperty from a type and a
// cost set.
func NewCostAndTypeSetProperty(t string, costs *cost.Set) CostAndTypeProperty {
	return CostAndTypeProperty{Type: t, Cost: CostProperty{Costs: costs, SupplyOnly: true}}
}

func (p CostAndTypeProperty) MeetsPile(pile *card.Pile) bool {
	return pile.HasType(p.Type) && p.Cost.MeetsPile(pile)
}
func (p CostAndTypeProperty) MeetsSelection(Selectable) bool { return false }
func (p CostAndTypeProperty) IsSelectionProperty() bool       { return false }
func (p CostAndTypeProperty) Equal(other Property) bool {
	o, ok := other.(CostAndTypeProperty)
	return ok && o.Type == p.Type && o.Cost.Equal(p.Cost)
}
func (p CostAndTypeProperty) CacheKey() string {
	return fmt.Sprintf("CostAndType(%s,%s)", p.Type, p.Cost.CacheKey())
}

// ---- KingdomAndSupplyProperty ----

// KingdomAndSupplyProperty matches piles that are both kingdom and supply.
type KingdomAndSupplyProperty struct{}

func (KingdomAndSupplyProperty) MeetsPile(pile *card.Pile) bool     { return pile.Supply && pile.Kingdom }
func (KingdomAndSupplyProperty) MeetsSelection(Selectable) bool      { return false }
func (KingdomAndSupplyProperty) IsSelectionProperty() bool            { return false }
func (KingdomAndSupplyProperty) Equal(other Property) bool {
	_, ok := other.(KingdomAndSupplyProperty)
	return ok
}
func (KingdomAndSupplyProperty) CacheKey() string { return "KingdomAndSupply" }

// ---- OptionalExtraProperty ----

var optionalExtraTypes = map[string]bool{"Event": true, "Project": true, "Landmark": true, "Way": true}

// OptionalExtraProperty matches piles that are not kingdom, not supply, and
// whose types include at least one of {Event, Project, Landmark, Way}.
//
// The original collaborator's equality check was structured so equal
// instances reported unequal; this is one of the REDESIGN FLAGS, fixed
// here to the obviously intended type-identity comparison.
type OptionalExtraProperty struct{}

func (OptionalExtraProperty) MeetsPile(pile *card.Pile) bool {
	if pile.Kingdom || pile.Supply {
		return false
	}
	for t := range pile.Types {
		if optionalExtraTypes[t] {
			return true
		}
	}
	return false
}
func (OptionalExtraProperty) MeetsSelection(Selectable) bool { return false }
func (OptionalExtraProperty) IsSelectionProperty() bool       { return false }
func (OptionalExtraProperty) Equal(other Property) bool {
	_, ok := other.(OptionalExtraProperty)
	return ok
}
func (OptionalExtraProperty) CacheKey() string { return "OptionalExtra" }

// ---- CardGroupProperty ----

// CardGroupProperty matches piles whose card-group equals Group.
type CardGroupProperty struct {
	Group string
}

func (p CardGroupProperty) MeetsPile(pile *card.Pile) bool      { return pile.Group == p.Group }
func (p CardGroupProperty) MeetsSelection(Selectable) bool        { return false }
func (p CardGroupProperty) IsSelectionProperty() bool              { return false }
func (p CardGroupProperty) Equal(other Property) bool {
	o, ok := other.(CardGroupProperty)
	return ok && o.Group == p.Group
}
func (p CardGroupProperty) CacheKey() string { return fmt.Sprintf("CardGroup(%s)", p.Group) }

// ---- NameProperty ----

// NameProperty matches the pile whose name equals Name.
type NameProperty struct {
	Name string
}

func (p NameProperty) MeetsPile(pile *card.Pile) bool { return pile.Name == p.Name }
func (p NameProperty) MeetsSelection(Selectable) bool  { return false }
func (p NameProperty) IsSelectionProperty() bool        { return false }
func (p NameProperty) Equal(other Property) bool {
	o, ok := other.(NameProperty)
	return ok && o.Name == p.Name
}
func (p NameProperty) CacheKey() string { return fmt.Sprintf("Name(%s)", p.Name) }

// ---- OtherInteractionProperty ----

// OtherInteractionProperty matches piles whose other-interactions contain
// the exact token, optionally restricted to kingdom-and-supply piles.
type OtherInteractionProperty struct {
	Token            string
	KingdomAndSupply bool
}

func (p OtherInteractionProperty) MeetsPile(pile *card.Pile) bool {
	if !pile.HasOtherToken(p.Token) {
		return false
	}
	if p.KingdomAndSupply {
		return pile.Supply && pile.Kingdom
	}
	return true
}
func (p OtherInteractionProperty) MeetsSelection(Selectable) bool { return false }
func (p OtherInteractionProperty) IsSelectionProperty() bool       { return false }
func (p OtherInteractionProperty) Equal(other Property) bool {
	o, ok := other.(OtherInteractionProperty)
	return ok && o.Token == p.Token && o.KingdomAndSupply == p.KingdomAndSupply
}
func (p OtherInteractionProperty) CacheKey() string {
	return fmt.Sprintf("OtherInteraction(%s,%v)", p.Token, p.KingdomAndSupply)
}

// ---- NoteProperty ----

// NoteProperty is selection-scoped: true when the selection carries note.
type NoteProperty struct {
	Note string
}

func (p NoteProperty) MeetsPile(*card.Pile) bool           { return false }
func (p NoteProperty) MeetsSelection(s Selectable) bool      { return s.HasNote(p.Note) }
func (p NoteProperty) IsSelectionProperty() bool              { return true }
func (p NoteProperty) Equal(other Property) bool {
	o, ok := other.(NoteProperty)
	return ok && o.Note == p.Note
}
func (p NoteProperty) CacheKey() string { return fmt.Sprintf("Note(%s)", p.Note) }

// ---- MissingPotionProperty ----

// MissingPotionProperty is selection-scoped: true when some chosen card has
// a potion-bearing cost but no pile named "Potion" is present.
type MissingPotionProperty struct{}

func (MissingPotionProperty) MeetsPile(*card.Pile) bool { return false }
func (MissingPotionProperty) MeetsSelection(s Selectable) bool {
	hasPotionCost := false
	hasPotionPile := false
	for _, c := range s.Cards() {
		if c.Cost.HasPotion() {
			hasPotionCost = true
		}
	}
	for _, p := range s.Piles() {
		if p.Name == "Potion" {
			hasPotionPile = true
		}
	}
	return hasPotionCost && !hasPotionPile
}
func (MissingPotionProperty) IsSelectionProperty() bool { return true }
func (MissingPotionProperty) Equal(other Property) bool {
	_, ok := other.(MissingPotionProperty)
	return ok
}
func (MissingPotionProperty) CacheKey() string { return "MissingPotion" }

// ---- MissingInteractingCardProperty ----

// MissingInteractingCardProperty is selection-scoped: true when some
// chosen pile lists card(X) in its other-interactions but no card named X
// is in the chosen card set.
//
// This variant is deliberately treated as distinct from MissingPotionProperty
// for Equal purposes, even though the originating implementation's equality
// operator for this variant mistakenly delegated to MissingPotionProperty's.
type MissingInteractingCardProperty struct{}

func (MissingInteractingCardProperty) MeetsPile(*card.Pile) bool { return false }
func (MissingInteractingCardProperty) MeetsSelection(s Selectable) bool {
	haveCard := map[string]bool{}
	for _, c := range s.Cards() {
		haveCard[c.Name] = true
	}
	for _, p := range s.Piles() {
		for _, tok := range p.OtherTokensWithPrefix("card(") {
			name := strings.TrimSuffix(strings.TrimPrefix(tok, "card("), ")")
			if !haveCard[name] {
				return true
			}
		}
	}
	return false
}
func (MissingInteractingCardProperty) IsSelectionProperty() bool { return true }
func (MissingInteractingCardProperty) Equal(other Property) bool {
	_, ok := other.(MissingInteractingCardProperty)
	return ok
}
func (MissingInteractingCardProperty) CacheKey() string { return "MissingInteractingCard" }

// ---- MissingInteractingCardGroupProperty ----

// MissingInteractingCardGroupProperty is selection-scoped: true when some
// pile lists group(X) but the selection lacks the note "addedX".
type MissingInteractingCardGroupProperty struct{}

func (MissingInteractingCardGroupProperty) MeetsPile(*card.Pile) bool { return false }
func (MissingInteractingCardGroupProperty) MeetsSelection(s Selectable) bool {
	for _, p := range s.Piles() {
		for _, tok := range p.OtherTokensWithPrefix("group(") {
			name := strings.TrimSuffix(strings.TrimPrefix(tok, "group("), ")")
			if !s.HasNote("added" + name) {
				return true
			}
		}
	}
	return false
}
func (MissingInteractingCardGroupProperty) IsSelectionProperty() bool { return true }
func (MissingInteractingCardGroupProperty) Equal(other Property) bool {
	_, ok := other.(MissingInteractingCardGroupProperty)
	return ok
}
func (MissingInteractingCardGroupProperty) CacheKey() string { return "MissingInteractingCardGroup" }

// ---- MissingGroupForKeywordProperty ----

// MissingGroupForKeywordProperty is selection-scoped: true when some pile
// has a type starting with Type (prefix match) but the note "addedGroup"
// is absent.
type MissingGroupForKeywordProperty struct {
	Type  string
	Group string
}

func (p MissingGroupForKeywordProperty) MeetsPile(*card.Pile) bool { return false }
func (p MissingGroupForKeywordProperty) MeetsSelection(s Selectable) bool {
	if s.HasNote("added" + p.Group) {
		return false
	}
	for _, pile := range s.Piles() {
		for t := range pile.Types {
			if strings.HasPrefix(t, p.Type) {
				return true
			}
		}
	}
	return false
}
func (p MissingGroupForKeywordProperty) IsSelectionProperty() bool { return true }
func (p MissingGroupForKeywordProperty) Equal(other Property) bool {
	o, ok := other.(MissingGroupForKeywordProperty)
	return ok && o.Type == p.Type && o.Group == p.Group
}
func (p MissingGroupForKeywordProperty) CacheKey() string {
	return fmt.Sprintf("MissingGroupForKeyword(%s,%s)", p.Type, p.Group)
}

// ---- RepeatedCostProperty ----

// RepeatedCostProperty is selection-scoped: for every cost present in any
// chosen pile, count piles containing that cost; fails when any count
// exceeds Max.
type RepeatedCostProperty struct {
	Max int
}

func (p RepeatedCostProperty) MeetsPile(*card.Pile) bool { return false }
func (p RepeatedCostProperty) MeetsSelection(s Selectable) bool {
	counts := map[cost.Cost]int{}
	for _, pile := range s.Piles() {
		seen := map[cost.Cost]bool{}
		for _, c := range pile.Costs.Items() {
			if !seen[c] {
				counts[c]++
				seen[c] = true
			}
		}
	}
	for _, n := range counts {
		if n > p.Max {
			return true
		}
	}
	return false
}
func (p RepeatedCostProperty) IsSelectionProperty() bool { return true }
func (p RepeatedCostProperty) Equal(other Property) bool {
	o, ok := other.(RepeatedCostProperty)
	return ok && o.Max == p.Max
}
func (p RepeatedCostProperty) CacheKey() string { return fmt.Sprintf("RepeatedCost(%d)", p.Max) }

// ---- HangingInteractsWith ----

// HangingInteractsWith is selection-scoped: true when some pile interacts
// with InteractsWith, yet neither Keyword nor AltKeyword appears as a
// keyword on any chosen pile.
type HangingInteractsWith struct {
	InteractsWith string
	Keyword       string
	AltKeyword    string // empty when there is no alternative
}

func (p HangingInteractsWith) MeetsPile(*card.Pile) bool { return false }
func (p HangingInteractsWith) MeetsSelection(s Selectable) bool {
	hasInteraction := false
	hasKeyword := false
	for _, pile := range s.Piles() {
		if pile.HasInteraction(p.InteractsWith) {
			hasInteraction = true
		}
		if pile.HasKeyword(p.Keyword) || (p.AltKeyword != "" && pile.HasKeyword(p.AltKeyword)) {
			hasKeyword = true
		}
	}
	return hasInteraction && !hasKeyword
}
func (p HangingInteractsWith) IsSelectionProperty() bool { return true }
func (p HangingInteractsWith) Equal(other Property) bool {
	o, ok := other.(HangingInteractsWith)
	return ok && o.InteractsWith == p.InteractsWith && o.Keyword == p.Keyword && o.AltKeyword == p.AltKeyword
}
func (p HangingInteractsWith) CacheKey() string {
	return fmt.Sprintf("HangingInteractsWith(%s,%s,%s)", p.InteractsWith, p.Keyword, p.AltKeyword)
}

// ---- EitherProperty ----

// EitherProperty is the logical OR of two same-scope properties. When the
// arguments are not the same scope, the composite is permanently false and
// owns no children.
type EitherProperty struct {
	A, B Property
}

// NewEither builds an EitherProperty, collapsing to a scope-mismatched,
// permanently-false composite when A and B are not the same scope.
func NewEither(a, b Property) EitherProperty {
	if a.IsSelectionProperty() != b.IsSelectionProperty() {
		return EitherProperty{}
	}
	return EitherProperty{A: a, B: b}
}

func (p EitherProperty) MeetsPile(pile *card.Pile) bool {
	if p.A == nil || p.B == nil {
		return false
	}
	return p.A.MeetsPile(pile) || p.B.MeetsPile(pile)
}
func (p EitherProperty) MeetsSelection(s Selectable) bool {
	if p.A == nil || p.B == nil {
		return false
	}
	return p.A.MeetsSelection(s) || p.B.MeetsSelection(s)
}
func (p EitherProperty) IsSelectionProperty() bool {
	if p.A == nil {
		return false
	}
	return p.A.IsSelectionProperty()
}
func (p EitherProperty) Equal(other Property) bool {
	o, ok := other.(EitherProperty)
	if !ok {
		return false
	}
	if p.A == nil || p.B == nil || o.A == nil || o.B == nil {
		return p.A == nil && p.B == nil && o.A == nil && o.B == nil
	}
	return p.A.Equal(o.A) && p.B.Equal(o.B)
}
func (p EitherProperty) CacheKey() string {
	if p.A == nil || p.B == nil {
		return "Either(<invalid>)"
	}
	return fmt.Sprintf("Either(%s,%s)", p.A.CacheKey(), p.B.CacheKey())
}

// ---- FailProperty ----

// FailProperty is always false at both scopes. It is used to force a
// constraint's main property to force its action every time the
// precondition holds.
type FailProperty struct{}

func (FailProperty) MeetsPile(*card.Pile) bool      { return false }
func (FailProperty) MeetsSelection(Selectable) bool   { return false }
func (FailProperty) IsSelectionProperty() bool         { return true }
func (FailProperty) Equal(other Property) bool {
	_, ok := other.(FailProperty)
	return ok
}
func (FailProperty) CacheKey() string { return "Fail" }

// ---- NeedProsperity ----

// NeedProsperity is selection-scoped: true when exactly one of
// Colony/Platinum is present, or when at least Threshold piles whose group
// begins with "Prosperity" are present and neither Colony nor Platinum is.
type NeedProsperity struct {
	Threshold int
}

func (p NeedProsperity) MeetsPile(*card.Pile) bool { return false }
func (p NeedProsperity) MeetsSelection(s Selectable) bool {
	hasColony, hasPlatinum := false, false
	prosperityPiles := 0
	for _, pile := range s.Piles() {
		if pile.Name == "Colony" {
			hasColony = true
		}
		if pile.Name == "Platinum" {
			hasPlatinum = true
		}
		if strings.HasPrefix(pile.Group, "Prosperity") {
			prosperityPiles++
		}
	}
	if hasColony != hasPlatinum {
		return true
	}
	return !hasColony && !hasPlatinum && prosperityPiles >= p.Threshold
}
func (p NeedProsperity) IsSelectionProperty() bool { return true }
func (p NeedProsperity) Equal(other Property) bool {
	o, ok := other.(NeedProsperity)
	return ok && o.Threshold == p.Threshold
}
func (p NeedProsperity) CacheKey() string { return fmt.Sprintf("NeedProsperity(%d)", p.Threshold) }
