// Package engine implements the recursive build/backtrack algorithm (C8):
// generateSelection seeds a partial selection, then buildSelection
// repeatedly evaluates the constraint list, fires remediation actions,
// chases cost-target votes, and finally expands from the general pile
// stream until every constraint is satisfied or the search dead-ends.
package engine

import (
	"fmt"

	"github.com/dshills/kingdomgen/pkg/catalog"
	"github.com/dshills/kingdomgen/pkg/constraint"
	"github.com/dshills/kingdomgen/pkg/costvote"
	"github.com/dshills/kingdomgen/pkg/finalize"
	"github.com/dshills/kingdomgen/pkg/property"
	"github.com/dshills/kingdomgen/pkg/rngsrc"
	"github.com/dshills/kingdomgen/pkg/selection"
)

const (
	costVoteThreshold = 0.5
	costVoteTolerance = 0.21
	haveCostPenalty   = -3.0
)

// Generate runs the full entry sequence from spec §4.6: seed a starting
// selection from the base piles and up to landscapes optional-extras,
// attach constraints and user includes, build, and finalise.
func Generate(cat *catalog.Catalog, marketCap, landscapes int, includes []string, constraints []constraint.Constraint, rng rngsrc.Source) (bool, *selection.Selection, string) {
	start := startSelection(cat, marketCap, landscapes)
	for _, name := range includes {
		if p, ok := cat.PileByName(name); ok {
			start.AddPile(p)
		}
	}

	ok, result, msg := buildSelection(constraints, cat, start)
	if !ok {
		return false, nil, msg
	}
	finalize.Finalize(result, cat, rng)
	return true, result, "ok"
}

// startSelection seeds every "base" pile plus up to landscapes piles drawn
// from the catalog's one-shot shuffle restricted to OptionalExtraProperty.
func startSelection(cat *catalog.Catalog, marketCap, landscapes int) *selection.Selection {
	sel := selection.New(cat.ShuffledPiles(), marketCap)
	for _, p := range cat.BasePiles() {
		sel.AddPile(p)
	}
	var extra property.OptionalExtraProperty
	added := 0
	for _, p := range cat.ShuffledPiles() {
		if added >= landscapes {
			break
		}
		if extra.MeetsPile(p) && sel.AddPile(p) {
			added++
		}
	}
	return sel
}

// buildSelection is the recursive search described in spec §4.6 steps 1-8.
func buildSelection(k []constraint.Constraint, cat *catalog.Catalog, start *selection.Selection) (bool, *selection.Selection, string) {
	// 1. Evaluate all constraints; any Fail kills this branch outright.
	statuses := make([]constraint.Status, len(k))
	for i, c := range k {
		statuses[i] = c.GetStatus(start)
		if statuses[i] == constraint.Fail {
			return false, nil, "Constraint Fail: " + c.Label
		}
	}

	// 2. Supply-cap check (deferred: non-supply obligations may still need
	// fixing even once the cap is reached).
	capReached := start.CurrentNormalPileCount() == start.RequiredCards()

	// 3. Fire the first action-required constraint, in order.
	for i, c := range k {
		if statuses[i] != constraint.ActionReq {
			continue
		}
		if c.Remediation == nil {
			return false, nil, "ActionReq with no remediation: " + c.Label
		}
		build := func(s *selection.Selection) (bool, *selection.Selection, string) {
			return buildSelection(k, cat, s)
		}
		return c.Remediation.Apply(c.Label, start, build)
	}

	// 4. Cap reached, no action required: done.
	if capReached {
		return true, start, "complete"
	}

	// 5. Cost-target phase.
	if start.TargetCheckRequired() {
		if ok, result, msg, handled := costTargetPhase(k, cat, start); handled {
			return ok, result, msg
		}
	}

	// 6. Cost-targets yielded nothing further to try from this frame on.
	start.ClearTargetCheck()

	// 7. General-pile expansion.
	for {
		p, ok := start.GetGeneralPile()
		if !ok {
			break
		}
		if start.HasPile(p.Name) {
			continue
		}
		clone := start.Clone()
		if !clone.AddPile(p) {
			return false, nil, "general: addPile failed unexpectedly for " + p.Name
		}
		clone.TagPile(p.Name, "<why?general>")
		if ok2, result, msg := buildSelection(k, cat, clone); ok2 {
			return true, result, msg
		}
	}

	// 8.
	return false, nil, "exhausted general pile stream"
}

// costTargetPhase runs spec §4.6 step 5. handled is false when the phase
// determined there was nothing conclusive to do and the caller should fall
// through to steps 6-7; otherwise (ok, result, msg) is the frame's final
// answer.
func costTargetPhase(k []constraint.Constraint, cat *catalog.Catalog, start *selection.Selection) (ok bool, result *selection.Selection, msg string, handled bool) {
	votes := costvote.NewVotes(cat.LegalCosts())
	needTargetAction := false
	for _, raw := range start.Targets() {
		t, isVoter := raw.(costvote.Target)
		if !isVoter {
			continue
		}
		if t.AddVotes(start.CostsInSupply(), votes) {
			needTargetAction = true
		}
	}
	for _, c := range start.CostsInSupply().Items() {
		votes.AddVote(c, haveCostPenalty)
	}

	s := votes.GetMaxWeighted(costVoteThreshold, costVoteTolerance)
	if s.Len() == 0 {
		if needTargetAction {
			return false, nil, "cost-target: no weighted costs cleared threshold", true
		}
		return false, nil, "", false
	}

	candidates, _ := cat.GetPiles(property.CostProperty{Costs: s, SupplyOnly: true})
	blame := start.TargetBlame()
	for _, p := range candidates {
		if start.HasPile(p.Name) {
			continue
		}
		clone := start.Clone()
		if !needTargetAction {
			clone.ClearTargetCheck()
		}
		if !clone.AddPile(p) {
			if !needTargetAction {
				start.ClearTargetCheck()
				break
			}
			return false, nil, "cost-target: addPile failed for " + p.Name, true
		}
		clone.TagPile(p.Name, fmt.Sprintf("<why?cost-target:%s>", blame))
		if built, res, buildMsg := buildSelection(k, cat, clone); built {
			return true, res, buildMsg, true
		}
	}

	if needTargetAction {
		return false, nil, "cost-target: no candidate satisfied the build", true
	}
	return false, nil, "", false
}
