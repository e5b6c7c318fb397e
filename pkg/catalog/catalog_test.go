package catalog

import (
	"testing"

	"github.com/dshills/kingdomgen/pkg/card"
	"github.com/dshills/kingdomgen/pkg/cost"
	"github.com/dshills/kingdomgen/pkg/property"
	"github.com/dshills/kingdomgen/pkg/rngsrc"
)

func samplePiles() []*card.Pile {
	return []*card.Pile{
		card.NewPile("Village", []card.Card{{Name: "Village", PileName: "Village", Group: "base", Supply: true, Kingdom: true, Types: map[string]bool{"Action": true}, Cost: cost.New(3)}}),
		card.NewPile("Smithy", []card.Card{{Name: "Smithy", PileName: "Smithy", Group: "base", Supply: true, Kingdom: true, Types: map[string]bool{"Action": true}, Cost: cost.New(4)}}),
		card.NewPile("Moat", []card.Card{{Name: "Moat", PileName: "Moat", Group: "base", Supply: true, Kingdom: true, Types: map[string]bool{"Action": true, "Reaction": true}, Cost: cost.New(2)}}),
	}
}

func TestPilesSortedByGroupThenName(t *testing.T) {
	c := New(samplePiles(), rngsrc.New(1))
	sorted := c.Piles()
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Name > sorted[i].Name {
			t.Fatalf("expected alphabetical order within group, got %v", names(sorted))
		}
	}
}

func names(piles []*card.Pile) []string {
	var out []string
	for _, p := range piles {
		out = append(out, p.Name)
	}
	return out
}

func TestLegalCostsUnion(t *testing.T) {
	c := New(samplePiles(), rngsrc.New(1))
	for _, want := range []int{2, 3, 4} {
		if !c.LegalCosts().Contains(cost.New(want)) {
			t.Fatalf("expected legal cost %d present", want)
		}
	}
}

func TestGetPilesMemoisesAndReturnsStableSlice(t *testing.T) {
	c := New(samplePiles(), rngsrc.New(1))
	prop := property.TypeProperty{Type: "Action", RestrictToKingdomAndSupply: true}
	first, ok := c.GetPiles(prop)
	if !ok || len(first) != 3 {
		t.Fatalf("expected 3 action piles, got %d (ok=%v)", len(first), ok)
	}
	second, _ := c.GetPiles(property.TypeProperty{Type: "Action", RestrictToKingdomAndSupply: true})
	if len(first) != len(second) {
		t.Fatal("expected memoised result to be returned across calls")
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatal("expected identical pile pointers across memoised calls")
		}
	}
}

func TestGetPilesRejectsSelectionScopedProperty(t *testing.T) {
	c := New(samplePiles(), rngsrc.New(1))
	_, ok := c.GetPiles(property.NoteProperty{Note: "hasBane"})
	if ok {
		t.Fatal("expected selection-scoped property to be rejected")
	}
}

func TestPileForCard(t *testing.T) {
	c := New(samplePiles(), rngsrc.New(1))
	p, ok := c.PileForCard("Smithy")
	if !ok || p.Name != "Smithy" {
		t.Fatal("expected to find pile containing card Smithy")
	}
}

func TestShuffleIsDeterministicGivenSeed(t *testing.T) {
	a := New(samplePiles(), rngsrc.New(99))
	b := New(samplePiles(), rngsrc.New(99))
	an, bn := names(a.ShuffledPiles()), names(b.ShuffledPiles())
	for i := range an {
		if an[i] != bn[i] {
			t.Fatalf("same seed should produce same shuffle order: %v vs %v", an, bn)
		}
	}
}
