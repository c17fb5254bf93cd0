// Package analysis validates a policy before any proof against it is
// examined: unique declaration names, and — within each declaration's
// formula — no free variables under an atom or a says, and no quantifier
// shadowing.
package analysis

import (
	"fmt"

	"bitbucket.org/creachadair/stringset"

	"github.com/Victor-Crawshaw/pca/ast"
)

// WellFormedError reports a policy well-formedness failure: a duplicate
// declaration name, a free variable escaping its binder, or a shadowed
// quantifier. The message names the offending identifier.
type WellFormedError struct {
	msg string
}

func (e *WellFormedError) Error() string { return e.msg }

func wfErrorf(format string, args ...any) *WellFormedError {
	return &WellFormedError{msg: fmt.Sprintf(format, args...)}
}

// CheckPolicy validates gamma in a single pass and returns a non-nil
// *WellFormedError on the first problem found, or nil if gamma is
// well-formed. Because it only reads gamma, running it twice on the same
// policy value always gives the same verdict.
func CheckPolicy(gamma ast.Policy) error {
	seen := stringset.New()
	for _, decl := range gamma {
		if seen.Contains(decl.Name) {
			return wfErrorf("duplicate variable: declaration name %q is used more than once in the policy", decl.Name)
		}
		seen.Add(decl.Name)

		if err := checkFormula(decl.Formula, stringset.New()); err != nil {
			return err
		}
	}
	return nil
}

// checkFormula traverses f carrying the set of variable identifiers bound
// by an enclosing Forall so far. It never sees an Affirms formula: that
// variant is internal to package engine and is never part of a policy.
func checkFormula(f ast.Form, bound stringset.Set) error {
	switch p := f.(type) {
	case ast.Atom:
		for _, arg := range p.Args {
			if v, ok := arg.(ast.Variable); ok && !bound.Contains(v.ID) {
				return wfErrorf("unbound variable %s in %s", v.ID, p)
			}
		}
		return nil
	case ast.Says:
		if v, ok := p.Agent.(ast.Variable); ok && !bound.Contains(v.ID) {
			return wfErrorf("unbound variable %s in %s", v.ID, p)
		}
		return checkFormula(p.Formula, bound)
	case ast.Implies:
		if err := checkFormula(p.Premise, bound); err != nil {
			return err
		}
		return checkFormula(p.Conclusion, bound)
	case ast.Forall:
		if bound.Contains(p.Var.ID) {
			return wfErrorf("shadowed variable: %s is already bound by an enclosing quantifier in %s", p.Var.ID, p)
		}
		return checkFormula(p.Formula, bound.Union(stringset.New(p.Var.ID)))
	case ast.Affirms:
		// Affirms never appears in a user-supplied policy.
		return wfErrorf("internal error: unexpected Affirms formula in policy input")
	default:
		return wfErrorf("internal error: unexpected Form variant %T", p)
	}
}
