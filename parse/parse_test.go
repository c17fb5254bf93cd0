package parse

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/multierr"

	"github.com/Victor-Crawshaw/pca/ast"
)

func TestParsePolicyScenario1(t *testing.T) {
	got, err := ParsePolicy("h1 : p(); h2 : (p() -> q());")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	want := ast.Policy{
		{Name: "h1", Formula: ast.Atom{Predicate: ast.Constant{Name: "p"}}},
		{Name: "h2", Formula: ast.Implies{
			Premise:    ast.Atom{Predicate: ast.Constant{Name: "p"}},
			Conclusion: ast.Atom{Predicate: ast.Constant{Name: "q"}},
		}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParsePolicy mismatch (-want +got):\n%s", diff)
	}
}

func TestParsePolicyWithQuantifierAndArgs(t *testing.T) {
	got, err := ParsePolicy("h : !X. p(X, c);")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	want := ast.Policy{
		{Name: "h", Formula: ast.Forall{
			Var: ast.Variable{ID: "X"},
			Formula: ast.Atom{
				Predicate: ast.Constant{Name: "p"},
				Args:      []ast.Term{ast.Variable{ID: "X"}, ast.Constant{Name: "c"}},
			},
		}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParsePolicy mismatch (-want +got):\n%s", diff)
	}
}

func TestParsePolicyEmpty(t *testing.T) {
	got, err := ParsePolicy("   ")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected an empty policy, got %v", got)
	}
}

func TestParsePolicyRejectsMissingSemicolon(t *testing.T) {
	_, err := ParsePolicy("h : p()")
	if err == nil {
		t.Fatal("expected a parse error for a missing trailing semicolon")
	}
}

func TestParseTypingApplication(t *testing.T) {
	m, f, err := ParseTyping("h2 h1 : q()")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	wantM := ast.App{M1: ast.Pvar{Name: "h2"}, M2: ast.Pvar{Name: "h1"}}
	wantF := ast.Atom{Predicate: ast.Constant{Name: "q"}}
	if diff := cmp.Diff(ast.Proof(wantM), m); diff != "" {
		t.Errorf("proof mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(ast.Form(wantF), f); diff != "" {
		t.Errorf("formula mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTypingWrapAndInst(t *testing.T) {
	m, f, err := ParseTyping("{ h [c] }_alice : (alice says p(c))")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	wantM := ast.Wrap{
		M:     ast.Inst{M: ast.Pvar{Name: "h"}, T: ast.Constant{Name: "c"}},
		Agent: ast.Constant{Name: "alice"},
	}
	wantF := ast.Says{
		Agent:   ast.Constant{Name: "alice"},
		Formula: ast.Atom{Predicate: ast.Constant{Name: "p"}, Args: []ast.Term{ast.Constant{Name: "c"}}},
	}
	if diff := cmp.Diff(ast.Proof(wantM), m); diff != "" {
		t.Errorf("proof mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(ast.Form(wantF), f); diff != "" {
		t.Errorf("formula mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTypingLetWrap(t *testing.T) {
	src := "let { x }_alice = h1 in ({ h2 x }_alice) : (alice says q())"
	m, f, err := ParseTyping(src)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	wantM := ast.LetWrap{
		V:     "x",
		Agent: ast.Constant{Name: "alice"},
		M:     ast.Pvar{Name: "h1"},
		N: ast.Wrap{
			M:     ast.App{M1: ast.Pvar{Name: "h2"}, M2: ast.Pvar{Name: "x"}},
			Agent: ast.Constant{Name: "alice"},
		},
	}
	wantF := ast.Says{Agent: ast.Constant{Name: "alice"}, Formula: ast.Atom{Predicate: ast.Constant{Name: "q"}}}
	if diff := cmp.Diff(ast.Proof(wantM), m); diff != "" {
		t.Errorf("proof mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(ast.Form(wantF), f); diff != "" {
		t.Errorf("formula mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTypingLet(t *testing.T) {
	m, _, err := ParseTyping("let x = h in x : p()")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	want := ast.Let{V: "x", M: ast.Pvar{Name: "h"}, N: ast.Pvar{Name: "x"}}
	if diff := cmp.Diff(ast.Proof(want), m); diff != "" {
		t.Errorf("proof mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTypingAggregatesMultipleSyntaxErrors(t *testing.T) {
	_, _, err := ParseTyping("h h : q(")
	if err == nil {
		t.Fatal("expected a parse error")
	}
	// "q(" at end of input lacks both an argument term and its ')'.
	if n := len(multierr.Errors(err)); n < 2 {
		t.Errorf("expected at least 2 aggregated syntax errors, got %d: %v", n, err)
	}
}

func TestParseTypingRejectsTrailingGarbage(t *testing.T) {
	_, _, err := ParseTyping("h : p() extra")
	if err == nil {
		t.Fatal("expected a trailing-input error")
	}
}
