package card

import (
	"testing"

	"github.com/dshills/kingdomgen/pkg/cost"
)

type fakeTarget struct{ id string }

func (f fakeTarget) Equal(other CostTarget) bool {
	o, ok := other.(fakeTarget)
	return ok && o.id == f.id
}

func TestPileAggregatesUnion(t *testing.T) {
	cards := []Card{
		{
			Name: "Castle", PileName: "Castles", Group: "Empires",
			Supply: true, Kingdom: false,
			Types:    map[string]bool{"Victory": true},
			Cost:     cost.New(3),
			Keywords: map[string]bool{"gainer": true},
			Targets:  []CostTarget{fakeTarget{"a"}},
		},
		{
			Name: "Opulent Castle", PileName: "Castles", Group: "Empires",
			Supply: true, Kingdom: true,
			Types:    map[string]bool{"Action": true},
			Cost:     cost.New(7),
			Keywords: map[string]bool{"+coffers": true},
			Targets:  []CostTarget{fakeTarget{"a"}, fakeTarget{"b"}},
		},
	}
	p := NewPile("Castles", cards)

	if !p.Supply || !p.Kingdom {
		t.Fatal("expected OR aggregation to set both supply and kingdom")
	}
	if !p.HasType("Victory") || !p.HasType("Action") {
		t.Fatal("expected union of types")
	}
	if !p.Costs.Contains(cost.New(3)) || !p.Costs.Contains(cost.New(7)) {
		t.Fatal("expected union of costs")
	}
	if len(p.Targets) != 2 {
		t.Fatalf("expected deduplicated target union of 2, got %d", len(p.Targets))
	}
	if p.Group != "Empires" {
		t.Fatalf("expected inherited group, got %q", p.Group)
	}
}

func TestPileOtherTokensWithPrefix(t *testing.T) {
	cards := []Card{
		{Name: "Tournament", PileName: "Tournament", OtherTokens: []string{"group(Cornucopia-prizes)"}},
	}
	p := NewPile("Tournament", cards)
	got := p.OtherTokensWithPrefix("group(")
	if len(got) != 1 || got[0] != "group(Cornucopia-prizes)" {
		t.Fatalf("unexpected tokens: %v", got)
	}
}
