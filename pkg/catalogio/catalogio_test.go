package catalogio

import (
	"strings"
	"testing"

	"github.com/dshills/kingdomgen/pkg/cost"
)

const sampleHeader = "name,pile,group,supply,kingdom,types,coin,spend,debt,potion,points,keywords,interacts,other\n"

func TestLoadCardsParsesBasicRow(t *testing.T) {
	csv := sampleHeader + "Village,,base,Y,Y,Action,3,,,,,,,\n"
	cards, err := LoadCards(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cards) != 1 {
		t.Fatalf("expected 1 card, got %d", len(cards))
	}
	c := cards[0]
	if c.Name != "Village" || !c.Supply || !c.Kingdom || !c.HasType("Action") {
		t.Fatalf("unexpected card: %+v", c)
	}
	if !c.Cost.HasCoin() || c.Cost.Coin() != 3 || c.Cost.HasPotion() || c.Cost.HasDebt() {
		t.Fatalf("unexpected cost: %v", c.Cost)
	}
}

func TestLoadCardsSkipsEmptyAndCommaLeadingLines(t *testing.T) {
	csv := sampleHeader + "\n,ignored,base,Y,Y,,,,,,,,,\nSmithy,,base,Y,Y,Action,4,,,,,,,\n"
	cards, err := LoadCards(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cards) != 1 || cards[0].Name != "Smithy" {
		t.Fatalf("expected only Smithy to survive, got %+v", cards)
	}
}

func TestLoadCardsFullCostComponents(t *testing.T) {
	csv := sampleHeader + "Marchland,,empires,Y,Y,Victory,2,,3,,,,,\n"
	cards, err := LoadCards(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := cards[0].Cost
	if !c.HasCoin() || c.Coin() != 2 || !c.HasDebt() || c.Debt() != 3 || c.HasPotion() {
		t.Fatalf("unexpected cost: %v", c)
	}
}

func TestLoadCardsParsesOtherInteractionTokens(t *testing.T) {
	csv := sampleHeader + "Young Witch,,cornucopia,Y,Y,Action;Attack,4,,,,,,,card(Bane);group(Cornucopia-prizes)\n"
	cards, err := LoadCards(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := cards[0]
	if !c.HasOtherInteraction("card(Bane)") || !c.HasOtherInteraction("group(Cornucopia-prizes)") {
		t.Fatalf("expected both other-interaction tokens, got %v", c.OtherTokens)
	}
}

func TestLoadCardsRejectsUnbalancedParens(t *testing.T) {
	csv := sampleHeader + "Broken,,base,Y,Y,,3,,,,,,,card(Oops\n"
	if _, err := LoadCards(strings.NewReader(csv)); err == nil {
		t.Fatal("expected an error for an unbalanced paren token")
	}
}

func TestLoadCardsRejectsParensNotAtEnd(t *testing.T) {
	csv := sampleHeader + "Broken,,base,Y,Y,,3,,,,,,,card(Oops)trailing\n"
	if _, err := LoadCards(strings.NewReader(csv)); err == nil {
		t.Fatal("expected an error when parens do not close on the last character")
	}
}

func TestCostTargetGrammarCostUpto(t *testing.T) {
	csv := sampleHeader + "Chapel,,base,Y,Y,Action,2,,,,,,,cost<=4\n"
	cards, err := LoadCards(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cards[0].Targets) != 1 {
		t.Fatalf("expected one parsed cost-target, got %d", len(cards[0].Targets))
	}
}

func TestCostTargetGrammarCostRelativeNonStrict(t *testing.T) {
	csv := sampleHeader + "Upgrade,,base,Y,Y,Action,5,,,,,,,cost<=+1\n"
	cards, err := LoadCards(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cards[0].Targets) != 1 {
		t.Fatalf("expected one parsed cost-target, got %d", len(cards[0].Targets))
	}
}

func TestCostTargetGrammarCostRelativeStrict(t *testing.T) {
	csv := sampleHeader + "Remake,,base,Y,Y,Action,4,,,,,,,cost=-1\n"
	cards, err := LoadCards(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cards[0].Targets) != 1 {
		t.Fatalf("expected one parsed cost-target, got %d", len(cards[0].Targets))
	}
}

func TestCostTargetGrammarCostInRange(t *testing.T) {
	csv := sampleHeader + "Bishop,,base,Y,Y,Action,4,,,,,,,cost_in(3.6)\n"
	cards, err := LoadCards(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cards[0].Targets) != 1 {
		t.Fatalf("expected one parsed cost-target, got %d", len(cards[0].Targets))
	}
}

func TestCostTargetGrammarCostAtLeast(t *testing.T) {
	csv := sampleHeader + "Bridge,,base,Y,Y,Action,4,,,,,,,cost>=6\n"
	cards, err := LoadCards(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cards[0].Targets) != 1 {
		t.Fatalf("expected one parsed cost-target, got %d", len(cards[0].Targets))
	}
	_ = cost.MaxCoin
}

func TestCostTargetGrammarRejectsGarbage(t *testing.T) {
	csv := sampleHeader + "Broken,,base,Y,Y,Action,4,,,,,,,costNonsense\n"
	if _, err := LoadCards(strings.NewReader(csv)); err == nil {
		t.Fatal("expected an error for an unrecognised cost-target token")
	}
}

func TestBuildPilesAggregatesByPileName(t *testing.T) {
	csv := sampleHeader +
		"Knights,Knights,dark-ages,Y,Y,Action;Attack,5,,,,,,,\n" +
		"Dame Anna,Knights,dark-ages,Y,Y,Action;Attack,5,,,,,,,\n"
	cards, err := LoadCards(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	piles := BuildPiles(cards)
	if len(piles) != 1 {
		t.Fatalf("expected the two cards to aggregate into 1 pile, got %d", len(piles))
	}
	if piles[0].Name != "Knights" || len(piles[0].Cards) != 2 {
		t.Fatalf("unexpected pile: %+v", piles[0])
	}
}

func TestLoadBoxesParsesGroupsAndSkipsComments(t *testing.T) {
	data := "# box file\nbase=base\n\nprosperity=Prosperity;Prosperity-base\n"
	boxes, err := LoadBoxes(strings.NewReader(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(boxes) != 2 {
		t.Fatalf("expected 2 boxes, got %d", len(boxes))
	}
	if boxes[1].Name != "prosperity" || len(boxes[1].Groups) != 2 {
		t.Fatalf("unexpected box: %+v", boxes[1])
	}
}

func TestLoadBoxesRejectsMissingEquals(t *testing.T) {
	if _, err := LoadBoxes(strings.NewReader("notanassignment\n")); err == nil {
		t.Fatal("expected an error for a line with no '='")
	}
}

func TestWarningsFlagsDanglingCardAndGroupReferences(t *testing.T) {
	csv := sampleHeader + "Young Witch,,cornucopia,Y,Y,Action,4,,,,,,,card(Ghost);group(Nowhere)\n"
	cards, err := LoadCards(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	piles := BuildPiles(cards)
	warnings := Warnings(piles)
	if len(warnings) != 2 {
		t.Fatalf("expected 2 dangling-reference warnings, got %d: %v", len(warnings), warnings)
	}
}

func TestLoadBoxesYAMLParsesGroupsList(t *testing.T) {
	data := "- name: base\n  groups: [base]\n- name: prosperity\n  groups: [Prosperity, Prosperity-base]\n"
	boxes, err := LoadBoxesYAML(strings.NewReader(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(boxes) != 2 {
		t.Fatalf("expected 2 boxes, got %d", len(boxes))
	}
	if boxes[1].Name != "prosperity" || len(boxes[1].Groups) != 2 || boxes[1].Groups[1] != "Prosperity-base" {
		t.Fatalf("unexpected box: %+v", boxes[1])
	}
}

func TestLoadBoxesYAMLRejectsMalformedDocument(t *testing.T) {
	if _, err := LoadBoxesYAML(strings.NewReader("not: [valid, ,")); err == nil {
		t.Fatal("expected an error for malformed YAML")
	}
}

func TestLoadRulesParsesThresholdOverrides(t *testing.T) {
	data := "maxCostRepeat: 3\nminType:\n  Action: 2\nmaxType:\n  Attack: 1\n"
	rules, err := LoadRules(strings.NewReader(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rules.MaxCostRepeat != 3 || rules.MinType["Action"] != 2 || rules.MaxType["Attack"] != 1 {
		t.Fatalf("unexpected rules: %+v", rules)
	}
}
