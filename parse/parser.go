package parse

import (
	"github.com/Victor-Crawshaw/pca/ast"
)

type parser struct {
	toks []token
	pos  int
	errs *errorList
}

func newParser(toks []token, errs *errorList) *parser {
	return &parser{toks: toks, errs: errs}
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) peekAt(n int) token {
	i := p.pos + n
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF
	}
	return p.toks[i]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

// expect consumes the next token if it has kind k, else records an error
// and returns the (unconsumed) offending token.
func (p *parser) expect(k tokenKind, what string) token {
	t := p.peek()
	if t.kind != k {
		p.errs.add(posErrorf(t, "expected %s, got %q", what, t.text))
		return t
	}
	return p.next()
}

// ParsePolicy parses the "name1 : Form1 ; name2 : Form2 ; …" policy syntax
// into an ast.Policy. The declarations are returned in source order,
// unvalidated: well-formedness is analysis.CheckPolicy's job, not the
// parser's.
func ParsePolicy(src string) (ast.Policy, error) {
	lx := newLexer(src)
	toks := lx.lex()
	p := newParser(toks, lx.errs)

	var decls ast.Policy
	for p.peek().kind != tokEOF {
		before := p.pos
		decls = append(decls, p.parseDeclaration())
		if p.pos == before {
			// parseDeclaration made no progress (e.g. garbage at top level);
			// force advance so a malformed policy still terminates in one pass.
			p.next()
		}
	}
	if err := p.errs.combined(); err != nil {
		return nil, err
	}
	return decls, nil
}

func (p *parser) parseDeclaration() ast.Declaration {
	name := p.expect(tokLower, "declaration name").text
	p.expect(tokColon, "':'")
	f := p.parseForm()
	p.expect(tokSemi, "';'")
	return ast.Declaration{Name: name, Formula: f}
}

// ParseTyping parses "Proof : Form", the concrete syntax of a claimed
// judgment, into an ast.Proof and its claimed ast.Form.
func ParseTyping(src string) (ast.Proof, ast.Form, error) {
	lx := newLexer(src)
	toks := lx.lex()
	p := newParser(toks, lx.errs)

	m := p.parseProof2()
	p.expect(tokColon, "':'")
	f := p.parseForm()
	if p.peek().kind != tokEOF {
		p.errs.add(posErrorf(p.peek(), "unexpected trailing input %q", p.peek().text))
	}
	if err := p.errs.combined(); err != nil {
		return nil, nil, err
	}
	return m, f, nil
}

// --- Formulas ---
//
// form     := says-or-implies
// implies  := says (' -> ' implies)?            (right-associative)
// says     := term 'says' atomic | atomic        (says's body is atomic: no
//                                                  bare '->' inside without
//                                                  parens, matching the
//                                                  original grammar)
// atomic   := atom | forall | '(' form ')'

func (p *parser) parseForm() ast.Form {
	return p.parseImplies()
}

func (p *parser) parseImplies() ast.Form {
	left := p.parseSays()
	if p.peek().kind == tokArrow {
		p.next()
		right := p.parseImplies()
		return ast.Implies{Premise: left, Conclusion: right}
	}
	return left
}

func (p *parser) startsTerm(k tokenKind) bool { return k == tokLower || k == tokUpper }

func (p *parser) parseSays() ast.Form {
	if p.startsTerm(p.peek().kind) && p.peekAt(1).kind == tokSays {
		agent := p.parseTerm()
		p.next() // 'says'
		body := p.parseAtomicForm()
		return ast.Says{Agent: agent, Formula: body}
	}
	return p.parseAtomicForm()
}

func (p *parser) parseAtomicForm() ast.Form {
	switch p.peek().kind {
	case tokLower:
		return p.parseAtom()
	case tokBang:
		return p.parseForall()
	case tokLParen:
		p.next()
		f := p.parseForm()
		p.expect(tokRParen, "')'")
		return f
	default:
		t := p.peek()
		p.errs.add(posErrorf(t, "expected a formula, got %q", t.text))
		return ast.Atom{Predicate: ast.Constant{Name: "_error"}}
	}
}

func (p *parser) parseAtom() ast.Atom {
	pred := p.expect(tokLower, "predicate name").text
	p.expect(tokLParen, "'('")
	var args []ast.Term
	if p.peek().kind != tokRParen {
		args = append(args, p.parseTerm())
		for p.peek().kind == tokComma {
			p.next()
			args = append(args, p.parseTerm())
		}
	}
	p.expect(tokRParen, "')'")
	return ast.Atom{Predicate: ast.Constant{Name: pred}, Args: args}
}

func (p *parser) parseForall() ast.Form {
	p.next() // '!'
	x := p.expect(tokUpper, "bound variable").text
	p.expect(tokDot, "'.'")
	body := p.parseForm()
	return ast.Forall{Var: ast.Variable{ID: x}, Formula: body}
}

func (p *parser) parseTerm() ast.Term {
	t := p.peek()
	switch t.kind {
	case tokLower:
		p.next()
		return ast.Constant{Name: t.text}
	case tokUpper:
		p.next()
		return ast.Variable{ID: t.text}
	default:
		p.errs.add(posErrorf(t, "expected a term, got %q", t.text))
		return ast.Constant{Name: "_error"}
	}
}

// --- Proofs ---
//
// proof2 := proof ( proof        -> App, left-assoc
//                 | '[' term ']' -> Inst, left-assoc
//                 )*
// proof  := LOWER                                -> Pvar
//         | '{' proof2 '}' '_' term               -> Wrap
//         | 'let' '{' LOWER '}' '_' term '=' proof2 'in' proof2 -> LetWrap
//         | 'let' LOWER '=' proof2 'in' proof2     -> Let
//         | '(' proof2 ')'

func (p *parser) startsProof(k tokenKind) bool {
	switch k {
	case tokLower, tokLBrace, tokLet, tokLParen:
		return true
	default:
		return false
	}
}

func (p *parser) parseProof2() ast.Proof {
	m := p.parseProofPrimary()
	for {
		switch {
		case p.peek().kind == tokLBracket:
			p.next()
			t := p.parseTerm()
			p.expect(tokRBracket, "']'")
			m = ast.Inst{M: m, T: t}
		case p.startsProof(p.peek().kind):
			arg := p.parseProofPrimary()
			m = ast.App{M1: m, M2: arg}
		default:
			return m
		}
	}
}

func (p *parser) parseProofPrimary() ast.Proof {
	switch p.peek().kind {
	case tokLower:
		name := p.next().text
		return ast.Pvar{Name: name}

	case tokLBrace:
		p.next()
		m := p.parseProof2()
		p.expect(tokRBrace, "'}'")
		p.expect(tokUnderscore, "'_'")
		agent := p.parseTerm()
		return ast.Wrap{M: m, Agent: agent}

	case tokLet:
		p.next()
		if p.peek().kind == tokLBrace {
			p.next()
			v := p.expect(tokLower, "bound proof variable").text
			p.expect(tokRBrace, "'}'")
			p.expect(tokUnderscore, "'_'")
			agent := p.parseTerm()
			p.expect(tokEquals, "'='")
			m := p.parseProof2()
			p.expect(tokIn, "'in'")
			n := p.parseProof2()
			return ast.LetWrap{V: v, Agent: agent, M: m, N: n}
		}
		v := p.expect(tokLower, "bound proof variable").text
		p.expect(tokEquals, "'='")
		m := p.parseProof2()
		p.expect(tokIn, "'in'")
		n := p.parseProof2()
		return ast.Let{V: v, M: m, N: n}

	case tokLParen:
		p.next()
		m := p.parseProof2()
		p.expect(tokRParen, "')'")
		return m

	default:
		t := p.peek()
		p.errs.add(posErrorf(t, "expected a proof term, got %q", t.text))
		return ast.Pvar{Name: "_error"}
	}
}
