// Package catalogio loads the card catalog CSV and box-to-group mapping
// files (spec §6) into the card/cost types the core engine consumes. It is
// a pure data-format adapter: nothing here feeds back into catalog
// construction's randomness or the build engine's recursion.
package catalogio

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dshills/kingdomgen/pkg/card"
	"github.com/dshills/kingdomgen/pkg/cost"
	"github.com/dshills/kingdomgen/pkg/costvote"
)

const csvColumns = 14

// LoadCards parses a card catalog CSV from r: one header line skipped,
// comma-delimited, lines that are empty or begin with ',' skipped.
func LoadCards(r io.Reader) ([]card.Card, error) {
	scanner := bufio.NewScanner(r)
	var cards []card.Card
	lineNum := 0
	headerSkipped := false
	for scanner.Scan() {
		lineNum++
		raw := scanner.Text()
		if !headerSkipped {
			headerSkipped = true
			continue
		}
		if raw == "" || strings.HasPrefix(raw, ",") {
			continue
		}
		fields, err := csv.NewReader(strings.NewReader(raw)).Read()
		if err != nil {
			return nil, fmt.Errorf("catalog line %d: %w", lineNum, err)
		}
		c, err := parseCardRow(fields)
		if err != nil {
			return nil, fmt.Errorf("catalog line %d: %w", lineNum, err)
		}
		cards = append(cards, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return cards, nil
}

func parseCardRow(f []string) (card.Card, error) {
	if len(f) < csvColumns {
		return card.Card{}, fmt.Errorf("expected %d columns, got %d", csvColumns, len(f))
	}

	coin, hasCoin, err := parseOptionalInt(f[6])
	if err != nil {
		return card.Card{}, fmt.Errorf("coin cost: %w", err)
	}
	debt, hasDebt, err := parseOptionalInt(f[8])
	if err != nil {
		return card.Card{}, fmt.Errorf("debt cost: %w", err)
	}
	potion, hasPotion, err := parseOptionalInt(f[9])
	if err != nil {
		return card.Card{}, fmt.Errorf("potion cost: %w", err)
	}

	c := cost.NewFull(coin, hasCoin, potion, hasPotion, debt, hasDebt)

	otherRaw := splitList(f[13])
	otherTokens := make([]string, 0, len(otherRaw))
	var targets []card.CostTarget
	for _, tok := range otherRaw {
		if err := validateParens(tok); err != nil {
			return card.Card{}, fmt.Errorf("other-interaction %q: %w", tok, err)
		}
		otherTokens = append(otherTokens, tok)
		if strings.HasPrefix(tok, "cost") {
			target, err := parseCostTarget(tok)
			if err != nil {
				return card.Card{}, fmt.Errorf("cost-target %q: %w", tok, err)
			}
			targets = append(targets, target)
		}
	}

	return card.Card{
		Name:        f[0],
		PileName:    f[1],
		Group:       f[2],
		Supply:      isTrue(f[3]),
		Kingdom:     isTrue(f[4]),
		Types:       toBoolSet(splitList(f[5])),
		Cost:        c,
		Keywords:    toBoolSet(splitList(f[11])),
		Interacts:   toBoolSet(splitList(f[12])),
		OtherTokens: otherTokens,
		Targets:     targets,
	}, nil
}

// validateParens rejects a token whose parens do not close on its last
// character, per spec §6.
func validateParens(tok string) error {
	open := strings.Count(tok, "(")
	closes := strings.Count(tok, ")")
	if open != closes {
		return fmt.Errorf("unbalanced parens")
	}
	if open > 0 && !strings.HasSuffix(tok, ")") {
		return fmt.Errorf("parens must close on the last character")
	}
	return nil
}

// parseCostTarget implements the cost-target grammar from spec §6.
func parseCostTarget(tok string) (card.CostTarget, error) {
	switch {
	case strings.HasPrefix(tok, "cost<="):
		rest := tok[len("cost<="):]
		n, err := strconv.Atoi(rest)
		if err != nil {
			return nil, fmt.Errorf("cost<=: %w", err)
		}
		if strings.HasPrefix(rest, "+") || strings.HasPrefix(rest, "-") {
			return costvote.NewCostRelative(n, false), nil
		}
		return costvote.NewCostUpto(n), nil

	case strings.HasPrefix(tok, "cost>="):
		rest := tok[len("cost>="):]
		n, err := strconv.Atoi(rest)
		if err != nil {
			return nil, fmt.Errorf("cost>=: %w", err)
		}
		set := cost.NewSet()
		for i := n; i <= cost.MaxCoin; i++ {
			set.Insert(cost.New(i))
		}
		return costvote.NewCostInSet(set), nil

	case strings.HasPrefix(tok, "cost_in(") && strings.HasSuffix(tok, ")"):
		inner := strings.TrimSuffix(strings.TrimPrefix(tok, "cost_in("), ")")
		parts := strings.SplitN(inner, ".", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("cost_in: malformed range %q", inner)
		}
		lo, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, fmt.Errorf("cost_in lower bound: %w", err)
		}
		hi, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("cost_in upper bound: %w", err)
		}
		set := cost.NewSet()
		for i := lo; i <= hi; i++ {
			set.Insert(cost.New(i))
		}
		return costvote.NewCostInSet(set), nil

	case strings.HasPrefix(tok, "cost="):
		rest := tok[len("cost="):]
		n, err := strconv.Atoi(rest)
		if err != nil {
			return nil, fmt.Errorf("cost=: %w", err)
		}
		return costvote.NewCostRelative(n, true), nil

	default:
		return nil, fmt.Errorf("unrecognised cost-target grammar")
	}
}

// BuildPiles groups cards by pile name (PileNameOrOwn), preserving
// first-seen order, and aggregates each group into a Pile.
func BuildPiles(cards []card.Card) []*card.Pile {
	var order []string
	grouped := map[string][]card.Card{}
	for _, c := range cards {
		name := c.PileNameOrOwn()
		if _, seen := grouped[name]; !seen {
			order = append(order, name)
		}
		grouped[name] = append(grouped[name], c)
	}
	piles := make([]*card.Pile, 0, len(order))
	for _, name := range order {
		piles = append(piles, card.NewPile(name, grouped[name]))
	}
	return piles
}

// Box is one box-file entry: a named set of card-groups it contributes.
type Box struct {
	Name   string
	Groups []string
}

// LoadBoxes parses a box file: lines "boxName=group1;group2;…", '#' starts
// a comment, blank lines ignored.
func LoadBoxes(r io.Reader) ([]Box, error) {
	scanner := bufio.NewScanner(r)
	var boxes []Box
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		idx := strings.Index(line, "=")
		if idx < 0 {
			return nil, fmt.Errorf("box file line %d: missing '='", lineNum)
		}
		boxes = append(boxes, Box{
			Name:   strings.TrimSpace(line[:idx]),
			Groups: splitList(line[idx+1:]),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading box file: %w", err)
	}
	return boxes, nil
}

// yamlBox mirrors Box for the structured box-file form: a mapping of box
// name to its contributed groups.
type yamlBox struct {
	Name   string   `yaml:"name"`
	Groups []string `yaml:"groups"`
}

// LoadBoxesYAML parses the structured box-file form: a YAML document
// holding a list of {name, groups} entries, used whenever the box-file
// path ends in .yml or .yaml instead of the flat name=group1;group2 form.
func LoadBoxesYAML(r io.Reader) ([]Box, error) {
	var entries []yamlBox
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&entries); err != nil {
		return nil, fmt.Errorf("reading YAML box file: %w", err)
	}
	boxes := make([]Box, 0, len(entries))
	for _, e := range entries {
		boxes = append(boxes, Box{Name: e.Name, Groups: e.Groups})
	}
	return boxes, nil
}

// Rules is the optional --rules=FILE document: overrides for the
// standard-constraint thresholds that would otherwise come from repeated
// CLI flags, so a scripted batch of generations can share one file.
type Rules struct {
	MaxCostRepeat int            `yaml:"maxCostRepeat"`
	MinType       map[string]int `yaml:"minType"`
	MaxType       map[string]int `yaml:"maxType"`
}

// LoadRules parses a --rules=FILE YAML document.
func LoadRules(r io.Reader) (Rules, error) {
	var rules Rules
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&rules); err != nil {
		return Rules{}, fmt.Errorf("reading rules file: %w", err)
	}
	return rules, nil
}

// Warnings enumerates dangling card(X)/group(X) references: other-interaction
// tokens naming a card or card-group absent from the assembled piles.
func Warnings(piles []*card.Pile) []string {
	names := map[string]bool{}
	groups := map[string]bool{}
	for _, p := range piles {
		for _, c := range p.Cards {
			names[c.Name] = true
		}
		groups[p.Group] = true
	}
	var out []string
	for _, p := range piles {
		for _, tok := range p.OtherTokensWithPrefix("card(") {
			name := strings.TrimSuffix(strings.TrimPrefix(tok, "card("), ")")
			if !names[name] {
				out = append(out, fmt.Sprintf("pile %s references missing card %s", p.Name, name))
			}
		}
		for _, tok := range p.OtherTokensWithPrefix("group(") {
			name := strings.TrimSuffix(strings.TrimPrefix(tok, "group("), ")")
			if !groups[name] {
				out = append(out, fmt.Sprintf("pile %s references missing group %s", p.Name, name))
			}
		}
	}
	return out
}

func isTrue(s string) bool { return s == "Y" || s == "y" }

func parseOptionalInt(s string) (int, bool, error) {
	if s == "" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func toBoolSet(items []string) map[string]bool {
	out := map[string]bool{}
	for _, it := range items {
		out[it] = true
	}
	return out
}
