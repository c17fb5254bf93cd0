// Package ast contains the abstract syntax of the PCA proof-carrying
// authorization logic: terms, formulas, proof terms, and policies.
//
// Values are immutable once constructed. Operations that would "change" a
// formula (substitution) return a new value rather than mutating the
// receiver; see subst.go.
package ast

import "fmt"

// Term is a first-order term: a Variable or a Constant.
type Term interface {
	// Marker method; only Variable and Constant implement Term.
	isTerm()

	// String returns the surface-syntax spelling of the term.
	String() string

	// Equals is syntactic (structural) equality: same variant, same
	// identifier. It is not α-equivalence and never renames.
	Equals(Term) bool
}

// Variable is a bindable first-order name, uppercase-initial in surface
// syntax (e.g. X, Agent).
type Variable struct {
	ID string
}

func (Variable) isTerm() {}

// String returns the variable's identifier.
func (v Variable) String() string { return v.ID }

// Equals reports whether u is a Variable with the same identifier.
func (v Variable) Equals(u Term) bool {
	o, ok := u.(Variable)
	return ok && v.ID == o.ID
}

// Constant is a rigid first-order name, lowercase-initial in surface syntax
// (e.g. alice, p).
type Constant struct {
	Name string
}

func (Constant) isTerm() {}

// String returns the constant's name.
func (c Constant) String() string { return c.Name }

// Equals reports whether u is a Constant with the same name.
func (c Constant) Equals(u Term) bool {
	o, ok := u.(Constant)
	return ok && c.Name == o.Name
}

// Form is a formula of the logic: Atom, Implies, Says, Forall, or the
// internal Affirms variant.
//
// Affirms never occurs in a policy, a user-supplied proof term, or a
// user-supplied claimed formula; it is constructed and consumed only by the
// checker in package engine while it is focused on a "says" goal.
type Form interface {
	// Marker method; only the five Form variants implement it.
	isForm()

	// String returns the surface-syntax spelling of the formula. Affirms has
	// no surface syntax and renders with an internal-only notation, since it
	// should never reach a place where a user reads it.
	String() string

	// Equals is structural, variant-for-variant equality with no
	// α-renaming: Forall(X, p(X)) and Forall(Y, p(Y)) are distinct.
	Equals(Form) bool
}

// Atom is a predicate constant applied to zero or more terms. The core
// never interprets the predicate or checks arity across occurrences.
type Atom struct {
	Predicate Constant
	Args      []Term
}

func (Atom) isForm() {}

func (a Atom) String() string {
	s := a.Predicate.Name + "("
	for i, t := range a.Args {
		if i > 0 {
			s += ", "
		}
		s += t.String()
	}
	return s + ")"
}

// Equals requires equal predicates and positionwise-equal, equal-length
// argument lists.
func (a Atom) Equals(g Form) bool {
	o, ok := g.(Atom)
	if !ok || !a.Predicate.Equals(o.Predicate) || len(a.Args) != len(o.Args) {
		return false
	}
	for i, t := range a.Args {
		if !t.Equals(o.Args[i]) {
			return false
		}
	}
	return true
}

// Implies is implication, P -> Q.
type Implies struct {
	Premise    Form
	Conclusion Form
}

func (Implies) isForm() {}

func (i Implies) String() string {
	return "(" + i.Premise.String() + " -> " + i.Conclusion.String() + ")"
}

func (i Implies) Equals(g Form) bool {
	o, ok := g.(Implies)
	return ok && i.Premise.Equals(o.Premise) && i.Conclusion.Equals(o.Conclusion)
}

// Says is the modality "Agent says Formula".
type Says struct {
	Agent   Term
	Formula Form
}

func (Says) isForm() {}

func (s Says) String() string {
	return "(" + s.Agent.String() + " says " + s.Formula.String() + ")"
}

func (s Says) Equals(g Form) bool {
	o, ok := g.(Says)
	return ok && s.Agent.Equals(o.Agent) && s.Formula.Equals(o.Formula)
}

// Forall is universal quantification, !Variable. Formula.
type Forall struct {
	Var     Variable
	Formula Form
}

func (Forall) isForm() {}

func (f Forall) String() string {
	return "(!" + f.Var.String() + ". " + f.Formula.String() + ")"
}

func (f Forall) Equals(g Form) bool {
	o, ok := g.(Forall)
	return ok && f.Var.Equals(o.Var) && f.Formula.Equals(o.Formula)
}

// Affirms is the internal checking-mode marker "Agent affirms Formula": the
// goal of proving the content of an Agent-says-Formula assumption while the
// checker is focused under that agent's affirmation. It is constructed only
// by engine's saysR rule and consumed only by its saysE, aff, and
// synthesis-switch rules. Any other appearance is an internal error, not a
// user error — see (and panic at) the exhaustive-dispatch sites in
// package engine and package parse.
type Affirms struct {
	Agent   Term
	Formula Form
}

func (Affirms) isForm() {}

func (a Affirms) String() string {
	return fmt.Sprintf("<<%s affirms %s>>", a.Agent, a.Formula)
}

func (a Affirms) Equals(g Form) bool {
	o, ok := g.(Affirms)
	return ok && a.Agent.Equals(o.Agent) && a.Formula.Equals(o.Formula)
}

// Declaration is one named assumption of a policy: name : formula.
type Declaration struct {
	Name    string
	Formula Form
}

// Policy is an ordered sequence of declarations. Order matters for
// duplicate-name detection and because Let/LetWrap checking rules extend
// the policy by appending; a Policy value is never mutated in place, only
// extended by producing a new, longer slice (see Extend).
type Policy []Declaration

// Lookup scans the policy in order and returns the formula of the first
// declaration named v, as required by the hyp rule of synthesis.
func (p Policy) Lookup(v string) (Form, bool) {
	for _, d := range p {
		if d.Name == v {
			return d.Formula, true
		}
	}
	return nil, false
}

// Extend returns a new policy with (name, f) appended, leaving p untouched.
// Recursive subcalls of the checker that extend the context must see a
// logically distinct value from their caller, so the caller's own view of
// the policy never grows underneath it.
func (p Policy) Extend(name string, f Form) Policy {
	out := make(Policy, len(p), len(p)+1)
	copy(out, p)
	return append(out, Declaration{Name: name, Formula: f})
}
