// Package stdconstraints assembles the default constraint library (C10)
// from spec §4.10's table: the fixed rules every generation run attaches,
// plus the user-tunable repeated-cost cap and per-type min/max counts.
package stdconstraints

import (
	"fmt"

	"github.com/dshills/kingdomgen/pkg/catalog"
	"github.com/dshills/kingdomgen/pkg/constraint"
	"github.com/dshills/kingdomgen/pkg/property"
	"github.com/dshills/kingdomgen/pkg/rngsrc"
)

// many stands in for the table's "MANY": a threshold no real kingdom could
// ever reach, used where the spec leaves the upper bound effectively
// unbounded.
const many = 1 << 30

// Options carries the CLI-tunable knobs from spec §6 that shape which
// optional constraints are attached and with what parameters.
type Options struct {
	NoAttackReact bool
	NoAntiCursor  bool
	MaxCostRepeat int            // 0 disables the repeated-cost cap
	MinType       map[string]int // type -> minimum count
	MaxType       map[string]int // type -> maximum count
}

// Default assembles the standard constraint list against cat, sampling
// NeedProsperity's random threshold once at construction time per the RNG
// discipline note in spec §9 (the engine's recursion never touches rng
// again after this).
func Default(cat *catalog.Catalog, rng rngsrc.Source, opts Options) []constraint.Constraint {
	var out []constraint.Constraint

	out = append(out,
		constraint.Constraint{
			Label:        "bane",
			Precondition: property.NameProperty{Name: "Young Witch"},
			Main:         property.NoteProperty{Note: "hasBane"},
			Remediation:  constraint.FindBane{Catalog: cat},
			X:            1, A: 1, B: 1, C: many,
		},
		constraint.Constraint{
			Label:        "prosperityBase",
			Precondition: property.CardGroupProperty{Group: "Prosperity"},
			Main:         property.NoteProperty{Note: "addedProsperity-base"},
			Remediation:  constraint.AddGroup{Catalog: cat, Group: "Prosperity-base"},
			X:            5, A: 1, B: 1, C: many,
		},
		constraint.Constraint{
			Label:        "potion",
			Precondition: property.MissingPotionProperty{},
			Main:         property.FailProperty{},
			Remediation:  constraint.AddGroup{Catalog: cat, Group: "Alchemy-base"},
			X:            1, A: many, B: many, C: many,
		},
		constraint.Constraint{
			Label:        "prosperity-rand",
			Precondition: property.NeedProsperity{Threshold: rng.Intn(10)},
			Main:         property.FailProperty{},
			Remediation:  constraint.AddProsperity{Catalog: cat},
			X:            1, A: many, B: many, C: many,
		},
		constraint.Constraint{
			Label:        "dep-group",
			Precondition: property.MissingInteractingCardGroupProperty{},
			Main:         property.FailProperty{},
			Remediation:  constraint.AddMissingDependencyGroup{Catalog: cat},
			X:            1, A: many, B: many, C: many,
		},
		constraint.Constraint{
			Label:        "dep-card",
			Precondition: property.MissingInteractingCardProperty{},
			Main:         property.FailProperty{},
			Remediation:  constraint.AddMissingDependency{Catalog: cat},
			X:            1, A: many, B: many, C: many,
		},
		constraint.Constraint{
			Label:        "hex",
			Precondition: property.MissingGroupForKeywordProperty{Type: "Doom", Group: "Nocturne-Hexes"},
			Main:         property.FailProperty{},
			Remediation:  constraint.AddGroup{Catalog: cat, Group: "Nocturne-Hexes"},
			X:            1, A: many, B: many, C: many,
		},
		constraint.Constraint{
			Label:        "boon",
			Precondition: property.MissingGroupForKeywordProperty{Type: "Fate", Group: "Nocturne-Boons"},
			Main:         property.FailProperty{},
			Remediation:  constraint.AddGroup{Catalog: cat, Group: "Nocturne-Boons"},
			X:            1, A: many, B: many, C: many,
		},
	)

	if !opts.NoAntiCursor {
		main := property.KeywordProperty{Keyword: "trash_any", KingdomAndSupply: true}
		out = append(out, constraint.Constraint{
			Label:        "counterCurser",
			Precondition: property.KeywordProperty{Keyword: "curser", KingdomAndSupply: false},
			Main:         main,
			Remediation:  constraint.FindPile{Catalog: cat, Match: main},
			X:            1, A: 1, B: 1, C: many,
		})
	}

	if !opts.NoAttackReact {
		main := property.OtherInteractionProperty{Token: "react(Attack)", KingdomAndSupply: true}
		out = append(out, constraint.Constraint{
			Label:        "counterAttack",
			Precondition: property.TypeProperty{Type: "Attack", RestrictToKingdomAndSupply: false},
			Main:         main,
			Remediation:  constraint.FindPile{Catalog: cat, Match: main},
			X:            2, A: 1, B: 1, C: many,
		})
	}

	if opts.MaxCostRepeat > 0 {
		out = append(out, constraint.MinMax("repeatedCosts", property.RepeatedCostProperty{Max: opts.MaxCostRepeat}, 0, 0))
	}

	for t, n := range opts.MinType {
		main := property.TypeProperty{Type: t, RestrictToKingdomAndSupply: false}
		out = append(out, constraint.Constraint{
			Label:       fmt.Sprintf("minType(%s,%d)", t, n),
			Main:        main,
			Remediation: constraint.FindPile{Catalog: cat, Match: property.TypeProperty{Type: t, RestrictToKingdomAndSupply: true}},
			X:           0, A: n, B: n, C: many,
		})
	}
	for t, n := range opts.MaxType {
		main := property.TypeProperty{Type: t, RestrictToKingdomAndSupply: false}
		out = append(out, constraint.MinMax(fmt.Sprintf("maxType(%s,%d)", t, n), main, 0, n-1))
	}

	out = append(out, hangingInteractsConstraints(cat)...)

	return out
}

// hangingInteractsConstraints derives one HangingInteractsWith constraint
// per distinct interaction-keyword declared anywhere in the catalog,
// pairing the two conventional alternates the spec calls out explicitly
// ("gain"/"trash" companion keywords each accept a "_any" alternate, the
// same vocabulary counterCurser's "trash_any" main property already
// uses) and otherwise requiring the exact keyword back.
func hangingInteractsConstraints(cat *catalog.Catalog) []constraint.Constraint {
	seen := map[string]bool{}
	var out []constraint.Constraint
	for _, p := range cat.Piles() {
		for k := range p.Interacts {
			if seen[k] {
				continue
			}
			seen[k] = true
			alt := ""
			switch k {
			case "gain":
				alt = "gain_any"
			case "trash":
				alt = "trash_any"
			}
			main := property.HangingInteractsWith{InteractsWith: k, Keyword: k, AltKeyword: alt}
			match := property.KeywordProperty{Keyword: k, KingdomAndSupply: true}
			if alt != "" {
				match = property.KeywordProperty{Keyword: alt, KingdomAndSupply: true}
			}
			out = append(out, constraint.Constraint{
				Label:       fmt.Sprintf("hanging-interacts(%s)", k),
				Main:        main,
				Remediation: constraint.FindPile{Catalog: cat, Match: match},
				X:           1, A: many, B: many, C: many,
			})
		}
	}
	return out
}
