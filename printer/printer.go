// Package printer renders the core's abstract syntax back into concrete
// surface syntax, as a collaborator of the core kept separate from it,
// grounded directly on the reference implementation's stringify_term /
// stringify_form / stringify_proof / stringify_policy / stringify_typing
// functions.
//
// Every compound formula and proof is fully parenthesized, so printer
// output always reparses unambiguously regardless of operator precedence.
package printer

import (
	"fmt"
	"strings"

	"github.com/Victor-Crawshaw/pca/ast"
)

// Term renders a term in surface syntax.
func Term(t ast.Term) string {
	switch x := t.(type) {
	case ast.Variable:
		return x.ID
	case ast.Constant:
		return x.Name
	default:
		return "?" // cannot happen: Term is a closed sum of Variable and Constant
	}
}

func terms(ts []ast.Term) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = Term(t)
	}
	return strings.Join(parts, ", ")
}

// Form renders a formula in surface syntax. Affirms has no surface syntax
// and must never reach a place a user reads it; it renders as the same
// cannot-happen sentinel as an unknown variant rather than crashing the
// caller.
func Form(f ast.Form) string {
	switch x := f.(type) {
	case ast.Atom:
		return fmt.Sprintf("%s(%s)", x.Predicate.Name, terms(x.Args))
	case ast.Says:
		return fmt.Sprintf("(%s says %s)", Term(x.Agent), Form(x.Formula))
	case ast.Implies:
		return fmt.Sprintf("(%s -> %s)", Form(x.Premise), Form(x.Conclusion))
	case ast.Forall:
		return fmt.Sprintf("(!%s. %s)", x.Var.ID, Form(x.Formula))
	case ast.Affirms:
		return "?" // cannot happen: Affirms has no surface syntax
	default:
		return "?" // cannot happen: Form is a closed sum of the five cases above
	}
}

// Policy renders a policy as "name1 : Form1;\nname2 : Form2;\n...".
func Policy(p ast.Policy) string {
	if len(p) == 0 {
		return ""
	}
	lines := make([]string, len(p))
	for i, d := range p {
		lines[i] = fmt.Sprintf("%s : %s;", d.Name, Form(d.Formula))
	}
	return strings.Join(lines, "\n")
}

// Proof renders a proof term in surface syntax.
func Proof(m ast.Proof) string {
	switch x := m.(type) {
	case ast.Pvar:
		return x.Name
	case ast.App:
		return fmt.Sprintf("(%s %s)", Proof(x.M1), Proof(x.M2))
	case ast.Inst:
		return fmt.Sprintf("(%s [%s])", Proof(x.M), Term(x.T))
	case ast.Wrap:
		return fmt.Sprintf("{ %s }_%s", Proof(x.M), Term(x.Agent))
	case ast.LetWrap:
		return fmt.Sprintf("let {%s}_%s = %s in (%s)", x.V, Term(x.Agent), Proof(x.M), Proof(x.N))
	case ast.Let:
		return fmt.Sprintf("let %s = %s in (%s)", x.V, Proof(x.M), Proof(x.N))
	default:
		return "?" // cannot happen: Proof is a closed sum of the six cases above
	}
}

// Typing renders "Proof\n : \nForm", the judgment display shown before
// verifying.
func Typing(m ast.Proof, p ast.Form) string {
	return fmt.Sprintf("%s\n : \n%s", Proof(m), Form(p))
}
