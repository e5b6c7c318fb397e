package engine

import (
	"testing"

	"github.com/dshills/kingdomgen/pkg/card"
	"github.com/dshills/kingdomgen/pkg/catalog"
	"github.com/dshills/kingdomgen/pkg/constraint"
	"github.com/dshills/kingdomgen/pkg/cost"
	"github.com/dshills/kingdomgen/pkg/property"
	"github.com/dshills/kingdomgen/pkg/rngsrc"
)

func actionPiles(n int) []*card.Pile {
	var out []*card.Pile
	names := []string{"Village", "Smithy", "Moat", "Witch", "Militia", "Bureaucrat", "Chancellor", "Woodcutter"}
	for i := 0; i < n; i++ {
		out = append(out, card.NewPile(names[i], []card.Card{{
			Name: names[i], PileName: names[i], Group: "dominion", Supply: true, Kingdom: true,
			Types: map[string]bool{"Action": true}, Cost: cost.New(3 + i%3),
		}}))
	}
	return out
}

func needActionConstraint(cat *catalog.Catalog) constraint.Constraint {
	k := constraint.MinMax("need-action", property.TypeProperty{Type: "Action", RestrictToKingdomAndSupply: true}, 1, 99)
	k.Remediation = constraint.FindPile{
		Catalog: cat,
		Match:   property.TypeProperty{Type: "Action", RestrictToKingdomAndSupply: true},
		Tag:     "needed",
	}
	return k
}

func TestGenerateFillsMarketCapViaActionAndGeneralExpansion(t *testing.T) {
	cat := catalog.New(actionPiles(5), rngsrc.New(7))
	k := needActionConstraint(cat)

	ok, result, msg := Generate(cat, 3, 0, nil, []constraint.Constraint{k}, rngsrc.New(7))
	if !ok {
		t.Fatalf("expected a successful build, got failure: %s", msg)
	}
	if result.CurrentNormalPileCount() != 3 {
		t.Fatalf("expected exactly 3 kingdom+supply piles, got %d", result.CurrentNormalPileCount())
	}
}

func TestGenerateFailsWhenCapUnreachable(t *testing.T) {
	cat := catalog.New(actionPiles(2), rngsrc.New(7))
	k := needActionConstraint(cat)

	ok, _, msg := Generate(cat, 5, 0, nil, []constraint.Constraint{k}, rngsrc.New(7))
	if ok {
		t.Fatal("expected failure when fewer piles exist than the market cap requires")
	}
	if msg == "" {
		t.Fatal("expected a diagnostic message on failure")
	}
}

func TestGenerateHonoursUserIncludes(t *testing.T) {
	cat := catalog.New(actionPiles(5), rngsrc.New(3))
	k := needActionConstraint(cat)

	ok, result, _ := Generate(cat, 3, 0, []string{"Witch"}, []constraint.Constraint{k}, rngsrc.New(3))
	if !ok {
		t.Fatal("expected a successful build")
	}
	if !result.HasPile("Witch") {
		t.Fatal("expected the explicitly included pile to be present")
	}
}
