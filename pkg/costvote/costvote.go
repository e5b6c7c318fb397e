// Package costvote implements the cost-target weighted-voting sub-engine
// (C5): cards contribute CostTarget objects which vote on which costs the
// build engine should prefer among the piles it is about to add.
package costvote

import (
	"github.com/dshills/kingdomgen/pkg/card"
	"github.com/dshills/kingdomgen/pkg/cost"
)

// Target is a behavioural cost-target predicate: given the current set of
// supply costs it decides whether it is already satisfied and contributes
// weighted votes to a Votes aggregator over the legal cost universe.
type Target interface {
	card.CostTarget
	// AddVotes adds this target's votes to votes given currentCosts, and
	// returns true when the target remains unmet.
	AddVotes(currentCosts *cost.Set, votes *Votes) bool
}

// Votes holds a reference to the legal cost universe and accumulates
// weight per cost as targets vote.
type Votes struct {
	legal   *cost.Set
	weights map[cost.Cost]float64
}

// NewVotes builds a Votes aggregator over legal, the union of costs
// appearing anywhere in the catalog.
func NewVotes(legal *cost.Set) *Votes {
	return &Votes{legal: legal, weights: map[cost.Cost]float64{}}
}

// AddVote adds delta to c's accumulated weight, creating the entry if
// absent. Costs outside the legal universe are silently ignored.
func (v *Votes) AddVote(c cost.Cost, delta float64) {
	if !v.legal.Contains(c) {
		return
	}
	v.weights[c] += delta
}

// GetMaxWeighted computes the maximum accumulated weight. If it is below
// threshold, it returns an empty set; otherwise it returns every cost whose
// weight is within tolerance of the maximum.
func (v *Votes) GetMaxWeighted(threshold, tolerance float64) *cost.Set {
	max := 0.0
	for _, w := range v.weights {
		if w > max {
			max = w
		}
	}
	out := cost.NewSet()
	if max < threshold {
		return out
	}
	for c, w := range v.weights {
		if max-w <= tolerance {
			out.Insert(c)
		}
	}
	return out
}

// Default weights shared by every CostTarget variant (spec §6): a target
// parsed from the catalog grammar without overrides uses these.
const (
	DefaultUnmetWeight  = 3.0
	DefaultMetWeight    = 1.0
	DefaultMatchesMany  = 6
	DefaultMatchesCosts = 3 // used by CostUpto/CostInSet
)

// ---- CostUpto ----

// CostUpto matches when a coin-only cost <= Limit appears among the
// current costs at least MatchesRequired times.
type CostUpto struct {
	MatchesRequired int
	UnmetWeight     float64
	MetWeight       float64
	Limit           int
}

// NewCostUpto builds a CostUpto with the shared default weights.
func NewCostUpto(limit int) CostUpto {
	return CostUpto{MatchesRequired: DefaultMatchesCosts, UnmetWeight: DefaultUnmetWeight, MetWeight: DefaultMetWeight, Limit: limit}
}

func (t CostUpto) AddVotes(currentCosts *cost.Set, votes *Votes) bool {
	matched := 0
	for _, c := range currentCosts.Items() {
		if c.IsCoinOnly() && c.Coin() <= t.Limit {
			matched++
		}
	}
	unmet := matched < t.MatchesRequired
	weight := t.MetWeight / float64(t.Limit)
	if unmet {
		weight = t.UnmetWeight / float64(t.Limit)
	}
	for i := 1; i <= t.Limit; i++ {
		votes.AddVote(cost.New(i), weight)
	}
	return unmet
}

func (t CostUpto) Equal(other card.CostTarget) bool {
	o, ok := other.(CostUpto)
	return ok && o.Limit == t.Limit
}

// ---- CostInSet ----

// CostInSet matches when a cost in Costs appears among the current costs
// at least MatchesRequired times.
type CostInSet struct {
	MatchesRequired int
	UnmetWeight     float64
	MetWeight       float64
	Costs           *cost.Set
}

// NewCostInSet builds a CostInSet with the shared default weights.
func NewCostInSet(costs *cost.Set) CostInSet {
	return CostInSet{MatchesRequired: DefaultMatchesCosts, UnmetWeight: DefaultUnmetWeight, MetWeight: DefaultMetWeight, Costs: costs}
}

func (t CostInSet) AddVotes(currentCosts *cost.Set, votes *Votes) bool {
	matched := 0
	for _, c := range currentCosts.Items() {
		if t.Costs.Contains(c) {
			matched++
		}
	}
	unmet := matched < t.MatchesRequired
	n := float64(t.Costs.Len())
	weight := t.MetWeight / n
	if unmet {
		weight = t.UnmetWeight / n
	}
	for _, c := range t.Costs.Items() {
		votes.AddVote(c, weight)
	}
	return unmet
}

func (t CostInSet) Equal(other card.CostTarget) bool {
	o, ok := other.(CostInSet)
	if !ok || o.Costs.Len() != t.Costs.Len() {
		return false
	}
	for _, c := range t.Costs.Items() {
		if !o.Costs.Contains(c) {
			return false
		}
	}
	return true
}

// ---- CostRelative ----

// CostRelative matches when, for some current coin-bearing cost c, c+Delta
// is also present among current costs. When Strict, only the exact shift
// c+Delta is voted on; otherwise a descending ramp of votes runs from
// c+Delta toward c (and, for negative Delta, onward to zero): c and every
// cost between c and c+Delta are boosted, while c+Delta itself (and any
// further extension toward zero) gets the plain "met" weight. Positive
// Delta biases toward more expensive cards; negative Delta toward cheaper.
type CostRelative struct {
	MatchesRequired int
	UnmetWeight     float64
	MetWeight       float64
	Delta           int
	Strict          bool
}

// NewCostRelative builds a CostRelative with the shared default weights.
func NewCostRelative(delta int, strict bool) CostRelative {
	return CostRelative{MatchesRequired: DefaultMatchesMany, UnmetWeight: DefaultUnmetWeight, MetWeight: DefaultMetWeight, Delta: delta, Strict: strict}
}

func (t CostRelative) AddVotes(currentCosts *cost.Set, votes *Votes) bool {
	matched := 0
	for _, c := range currentCosts.Items() {
		if !c.HasCoin() {
			continue
		}
		if currentCosts.Contains(c.GetRelCost(t.Delta)) {
			matched++
		}
	}
	unmet := matched < t.MatchesRequired

	n := float64(currentCosts.Len())
	if n == 0 {
		return unmet
	}
	weight := t.MetWeight / n

	for _, c := range currentCosts.Items() {
		if !c.HasCoin() || t.Delta == 0 {
			continue
		}
		target := c.GetRelCost(t.Delta)
		if t.Strict {
			votes.AddVote(target, weight)
			continue
		}
		boost := (t.UnmetWeight - t.MetWeight) / float64(t.Delta)
		t.voteRamp(c, target, weight, boost, votes)
	}
	return unmet
}

// voteRamp issues the descending-chain votes for a single current cost c
// shifted toward target. c and every value between c and target are
// boosted; the target endpoint itself gets the plain weight. For negative
// Delta, the ramp additionally extends from target down to zero at the
// plain weight, since cheaper alternatives below the shift are always
// worth suggesting.
func (t CostRelative) voteRamp(c, target cost.Cost, weight, boost float64, votes *Votes) {
	lo, hi := c.Coin(), target.Coin()
	if lo > hi {
		lo, hi = hi, lo
	}
	for v := lo; v <= hi; v++ {
		w := weight
		if v != target.Coin() {
			w = weight + boost
		}
		votes.AddVote(cost.NewFull(v, true, c.Potion(), c.HasPotion(), c.Debt(), c.HasDebt()), w)
	}
	if t.Delta < 0 {
		for v := target.Coin() - 1; v >= 0; v-- {
			votes.AddVote(cost.NewFull(v, true, c.Potion(), c.HasPotion(), c.Debt(), c.HasDebt()), weight)
		}
	}
}

func (t CostRelative) Equal(other card.CostTarget) bool {
	o, ok := other.(CostRelative)
	return ok && o.Delta == t.Delta && o.Strict == t.Strict
}
