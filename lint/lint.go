// Package lint provides advisory, non-blocking checks over a parsed,
// well-formed policy and a claimed proof: findings never change
// engine.Verify's verdict, they only surface style concerns. Findings are
// collected as a rule/severity/message triple, the same shape used for
// Datalog-rule lint findings elsewhere in this lineage, re-pointed here at
// policy-level concerns.
package lint

import (
	"fmt"

	"github.com/Victor-Crawshaw/pca/ast"
)

// Severity classifies a finding's importance.
type Severity int

const (
	// SeverityInfo findings are informational and rarely actionable.
	SeverityInfo Severity = iota
	// SeverityWarning findings usually indicate a real naming/readability
	// problem worth fixing.
	SeverityWarning
)

// String returns the human-readable name of a severity level.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	default:
		return "info"
	}
}

// Finding is a single lint result.
type Finding struct {
	Rule     string
	Severity Severity
	Message  string
}

func (f Finding) String() string {
	return fmt.Sprintf("[%s] %s: %s", f.Severity, f.Rule, f.Message)
}

// Check runs every rule over gamma and m and returns all findings, in rule
// order. It assumes gamma has already passed analysis.CheckPolicy and m
// has already passed engine.Verify (or is at least well-formed enough to
// walk); lint does not re-validate either.
func Check(gamma ast.Policy, m ast.Proof) []Finding {
	var findings []Finding
	findings = append(findings, checkUnusedDeclarations(gamma, m)...)
	findings = append(findings, checkAmbiguousNames(gamma)...)
	return findings
}

// checkUnusedDeclarations flags a policy declaration that no Pvar in the
// proof ever references by name. A declaration can legitimately go unused
// (the proof may only need some of the policy), so this is informational.
func checkUnusedDeclarations(gamma ast.Policy, m ast.Proof) []Finding {
	used := map[string]bool{}
	collectPvarNames(m, used)

	var findings []Finding
	for _, d := range gamma {
		if !used[d.Name] {
			findings = append(findings, Finding{
				Rule:     "unused-declaration",
				Severity: SeverityInfo,
				Message:  fmt.Sprintf("declaration %q is never referenced by the proof", d.Name),
			})
		}
	}
	return findings
}

func collectPvarNames(m ast.Proof, out map[string]bool) {
	switch p := m.(type) {
	case ast.Pvar:
		out[p.Name] = true
	case ast.App:
		collectPvarNames(p.M1, out)
		collectPvarNames(p.M2, out)
	case ast.Inst:
		collectPvarNames(p.M, out)
	case ast.Wrap:
		collectPvarNames(p.M, out)
	case ast.LetWrap:
		collectPvarNames(p.M, out)
		collectPvarNames(p.N, out)
	case ast.Let:
		collectPvarNames(p.M, out)
		collectPvarNames(p.N, out)
	default:
		// cannot happen: Proof is a closed sum of the six cases above
	}
}

// checkAmbiguousNames flags a declaration whose name is also used as an
// agent or predicate constant somewhere in the policy — the two namespaces
// (declaration names and constants) are disjoint in the logic, but reusing
// a spelling across both invites misreading a policy dump.
func checkAmbiguousNames(gamma ast.Policy) []Finding {
	seenAsConstant := map[string]bool{}
	for _, d := range gamma {
		collectConstantNames(d.Formula, seenAsConstant)
	}

	var findings []Finding
	reported := map[string]bool{}
	for _, d := range gamma {
		if seenAsConstant[d.Name] && !reported[d.Name] {
			reported[d.Name] = true
			findings = append(findings, Finding{
				Rule:     "ambiguous-name",
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("%q is used both as a declaration name and as a constant in the policy", d.Name),
			})
		}
	}
	return findings
}

func collectConstantNames(f ast.Form, out map[string]bool) {
	switch p := f.(type) {
	case ast.Atom:
		out[p.Predicate.Name] = true
		for _, t := range p.Args {
			if c, ok := t.(ast.Constant); ok {
				out[c.Name] = true
			}
		}
	case ast.Says:
		if c, ok := p.Agent.(ast.Constant); ok {
			out[c.Name] = true
		}
		collectConstantNames(p.Formula, out)
	case ast.Implies:
		collectConstantNames(p.Premise, out)
		collectConstantNames(p.Conclusion, out)
	case ast.Forall:
		collectConstantNames(p.Formula, out)
	case ast.Affirms:
		// unreachable over policy formulas; see ast.Affirms's doc comment.
	default:
		// cannot happen: Form is a closed sum of the five cases above
	}
}
