package ast

import "strconv"

// SubstTerm returns t with every occurrence of Variable(x) replaced by
// replacement; any other term (including a Variable with a different
// identifier) is returned unchanged.
func SubstTerm(x Variable, replacement Term, t Term) Term {
	if v, ok := t.(Variable); ok && v.ID == x.ID {
		return replacement
	}
	return t
}

// SubstForm returns a new formula that is f with every free occurrence of
// Variable(x) replaced by the term t. This does not α-rename bound
// variables to avoid capture; it relies on its callers (package engine)
// never substituting a term whose free variables would be captured by a
// binder in f.
//
// Atom: substitute in each argument term.
// Implies: recurse on both sides.
// Says: substitute in the agent term, recurse into the body.
// Forall: if the bound variable is x, f is returned unchanged (the binder
// shadows x); otherwise recurse into the body.
// Affirms: substitute in the agent term, recurse into the formula.
func SubstForm(x Variable, t Term, f Form) Form {
	switch p := f.(type) {
	case Atom:
		args := make([]Term, len(p.Args))
		for i, a := range p.Args {
			args[i] = SubstTerm(x, t, a)
		}
		return Atom{Predicate: p.Predicate, Args: args}
	case Implies:
		return Implies{Premise: SubstForm(x, t, p.Premise), Conclusion: SubstForm(x, t, p.Conclusion)}
	case Says:
		return Says{Agent: SubstTerm(x, t, p.Agent), Formula: SubstForm(x, t, p.Formula)}
	case Forall:
		if p.Var.ID == x.ID {
			return p
		}
		return Forall{Var: p.Var, Formula: SubstForm(x, t, p.Formula)}
	case Affirms:
		return Affirms{Agent: SubstTerm(x, t, p.Agent), Formula: SubstForm(x, t, p.Formula)}
	default:
		return f // cannot happen: Form is a closed sum of the five cases above
	}
}

// VarGen produces variables whose identifiers are fresh within the scope of
// a single VarGen value — typically one per top-level engine.Verify call, so
// that two concurrent verifications never interact through a shared
// counter.
type VarGen struct {
	counts map[string]int
}

// NewVarGen returns a VarGen with its counter freshly scoped.
func NewVarGen() *VarGen {
	return &VarGen{counts: make(map[string]int)}
}

// Fresh returns a variable whose identifier is uniquely derived from x.ID by
// appending a monotonically increasing, per-identifier suffix.
func (g *VarGen) Fresh(x Variable) Variable {
	n := g.counts[x.ID]
	g.counts[x.ID] = n + 1
	return Variable{ID: x.ID + "'" + strconv.Itoa(n)}
}
