// Package constraint implements the constraint library entries (C7) the
// build engine evaluates every frame: a label, an optional precondition, a
// main property, an optional remediation action, and the four thresholds
// that turn a match count into a Status.
//
// This package depends on selection and property but not on engine: an
// Action recurses into the build engine through a BuildFunc callback
// supplied by the caller, not by importing package engine directly, which
// would otherwise cycle back here.
package constraint

import (
	"github.com/dshills/kingdomgen/pkg/property"
	"github.com/dshills/kingdomgen/pkg/selection"
)

// Status is the four-way result of evaluating a Constraint against a
// selection.
type Status int

const (
	// OK means the constraint is satisfied (or inactive).
	OK Status = iota
	// MorePossible means the constraint is satisfied but would still
	// accept further matches.
	MorePossible
	// ActionReq means the constraint's remediation action must fire.
	ActionReq
	// Fail means the constraint's main property matched too many times
	// to ever be satisfied; the selection under construction is dead.
	Fail
)

func (s Status) String() string {
	switch s {
	case OK:
		return "OK"
	case MorePossible:
		return "MorePossible"
	case ActionReq:
		return "ActionReq"
	case Fail:
		return "Fail"
	default:
		return "Unknown"
	}
}

// BuildFunc recurses back into the engine's build step. The engine passes
// itself (bound to the active constraint list) as this callback so actions
// never need to import package engine.
type BuildFunc func(start *selection.Selection) (ok bool, result *selection.Selection, message string)

// Action is the remediation an ActionReq constraint fires. Implementations
// are responsible for cloning start, mutating the clone, and recursing via
// build themselves; none of them mutate start in place.
type Action interface {
	Apply(label string, start *selection.Selection, build BuildFunc) (ok bool, result *selection.Selection, message string)
}

// Constraint is one entry in the constraint library.
type Constraint struct {
	Label        string
	Precondition property.Property // nil means "always active"
	Main         property.Property
	Remediation  Action // nil means "no remediation; Fail is terminal"
	X, A, B, C   int
}

// New builds a Constraint with no precondition and no remediation action.
func New(label string, main property.Property, x, a, b, c int) Constraint {
	return Constraint{Label: label, Main: main, X: x, A: a, B: b, C: c}
}

// MinMax is the (min, max) shorthand constructor from spec §4.7: no
// precondition, x=0, a=b=min, c=max+1.
func MinMax(label string, main property.Property, min, max int) Constraint {
	return Constraint{Label: label, Main: main, X: 0, A: min, B: min, C: max + 1}
}

// countMatches counts how many piles (for a pile-scoped property) or
// whether the whole selection (for a selection-scoped property, yielding 0
// or 1) satisfy p.
func countMatches(p property.Property, sel *selection.Selection) int {
	if p.IsSelectionProperty() {
		if p.MeetsSelection(sel) {
			return 1
		}
		return 0
	}
	n := 0
	for _, pile := range sel.Piles() {
		if p.MeetsPile(pile) {
			n++
		}
	}
	return n
}

// GetStatus evaluates k against sel per spec §4.7.
func (k Constraint) GetStatus(sel *selection.Selection) Status {
	if k.Precondition != nil {
		if countMatches(k.Precondition, sel) < k.X {
			return OK
		}
	}
	n := countMatches(k.Main, sel)
	switch {
	case n >= k.C:
		return Fail
	case n >= k.B:
		return OK
	case n >= k.A:
		return MorePossible
	default:
		return ActionReq
	}
}
