// Package parser turns a Quill token stream into an internal/ast.Expr tree
// (spec §4.2). It is a hand-written recursive-descent parser with one
// precedence level per method, from weakest (decl/assign) to strongest
// (atom), built around a single mutable cursor since Quill's grammar has
// no statement/expression split.
package parser

import (
	"github.com/kestrel-lang/quill/internal/ast"
	qerrors "github.com/kestrel-lang/quill/internal/errors"
	"github.com/kestrel-lang/quill/internal/lexer"
)

// Parser consumes tokens one at a time from a lexer.Lexer. It does not
// expose backtracking to callers — Quill's grammar is LL(1) everywhere
// except the map-vs-block cutover after `{`, which is resolved with the
// lexer's own Peek.
type Parser struct {
	lex *lexer.Lexer
	src string
	cur lexer.Token
	err *qerrors.SyntaxError
}

// New creates a parser over src and primes the first token.
func New(src string) *Parser {
	p := &Parser{lex: lexer.New(src), src: src}
	p.advance()
	return p
}

// ParseScript parses a complete program: a sequence of top-level
// expressions separated by ';', wrapped in a Do block (spec §4.2 `script`).
func ParseScript(src string) (ast.Expr, *qerrors.SyntaxError) {
	p := New(src)
	exprs := p.parseStatements()
	if p.err != nil {
		return nil, p.err
	}
	if p.cur.Kind != lexer.EOF {
		return nil, p.unexpected("end of input")
	}
	return &ast.Do{Exprs: exprs}, nil
}

// ParseExpression parses a single expression; any token left over after it
// is a SyntaxError (spec §6.1 parse_expression — "no trailing tokens
// allowed").
func ParseExpression(src string) (ast.Expr, *qerrors.SyntaxError) {
	p := New(src)
	e := p.parseExpr()
	if p.err != nil {
		return nil, p.err
	}
	if p.cur.Kind != lexer.EOF {
		return nil, p.unexpected("end of input")
	}
	return e, nil
}

func (p *Parser) advance() {
	if p.err != nil {
		return
	}
	tok, err := p.lex.NextToken()
	if err != nil {
		p.err = err
		p.cur = lexer.Token{Kind: lexer.EOF, Start: tok.Start, End: tok.End, Pos: tok.Pos}
		return
	}
	p.cur = tok
}

func (p *Parser) pos() lexer.Position { return p.cur.Pos }
func (p *Parser) text() string        { return p.cur.Text(p.src) }

func (p *Parser) isOp(s string) bool      { return p.cur.Kind == lexer.Operator && p.text() == s }
func (p *Parser) isPunct(s string) bool   { return p.cur.Kind == lexer.Punctuation && p.text() == s }
func (p *Parser) isKeyword(s string) bool { return p.cur.Kind == lexer.Keyword && p.text() == s }

func (p *Parser) unexpected(expected ...string) *qerrors.SyntaxError {
	if p.err != nil {
		return p.err
	}
	p.err = &qerrors.SyntaxError{
		Kind:     qerrors.UnexpectedToken,
		Pos:      p.pos(),
		Message:  "unexpected " + p.cur.Kind.String() + " " + p.text(),
		Expected: expected,
	}
	return p.err
}

// expectPunct consumes a punctuation token matching s, or records an error.
func (p *Parser) expectPunct(s string) {
	if !p.isPunct(s) {
		p.unexpected(s)
		return
	}
	p.advance()
}

func (p *Parser) expectKeyword(s string) {
	if !p.isKeyword(s) {
		p.unexpected(s)
		return
	}
	p.advance()
}

func (p *Parser) expectOp(s string) {
	if !p.isOp(s) {
		p.unexpected(s)
		return
	}
	p.advance()
}

// parseStatements parses (expr (';')*)* for a script or block body,
// treating ';' as the only statement separator; Quill's tokenizer filters
// newlines as whitespace by default (spec §3), so the `NL` alternative in
// the grammar's `script`/`block` rules has nothing left to key off at
// parse time — see DESIGN.md for this resolution.
func (p *Parser) parseStatements() []ast.Expr {
	var exprs []ast.Expr
	for p.err == nil && p.cur.Kind != lexer.EOF && !p.isPunct("}") {
		exprs = append(exprs, p.parseExpr())
		for p.isPunct(";") {
			p.advance()
		}
	}
	return exprs
}

// parseExpr is the `expr` production: decl, assign, or pipe.
func (p *Parser) parseExpr() ast.Expr {
	if p.err != nil {
		return nil
	}
	if p.isKeyword("let") {
		return p.parseDecl()
	}
	start := p.pos()
	lhs := p.parsePipe()
	if p.err != nil {
		return lhs
	}
	if p.isOp("=") && isAssignable(lhs) {
		p.advance()
		value := p.parseExpr()
		return &ast.Assign{P: start, Target: lhs, Value: value}
	}
	return lhs
}

func isAssignable(e ast.Expr) bool {
	switch e.(type) {
	case *ast.Symbol, *ast.Index:
		return true
	default:
		return false
	}
}

// parseDecl parses `let` <target> `=` expr. target is a plain Symbol, or a
// List/Map pattern of Symbols for destructuring (SPEC_FULL supplement).
func (p *Parser) parseDecl() ast.Expr {
	start := p.pos()
	p.advance() // 'let'
	target := p.parseDeclTarget()
	p.expectOp("=")
	value := p.parseExpr()
	return &ast.Declare{P: start, Target: target, Value: value}
}

func (p *Parser) parseDeclTarget() ast.Expr {
	switch {
	case p.cur.Kind == lexer.Symbol:
		sym := &ast.Symbol{P: p.pos(), Name: p.text()}
		p.advance()
		return sym
	case p.isPunct("["):
		return p.parseListPattern()
	case p.isPunct("{"):
		return p.parseMapPattern()
	default:
		p.unexpected("symbol", "[", "{")
		return &ast.Symbol{P: p.pos()}
	}
}

func (p *Parser) parseListPattern() ast.Expr {
	start := p.pos()
	p.advance() // '['
	var elems []ast.Expr
	for p.err == nil && !p.isPunct("]") {
		elems = append(elems, p.parseDeclTarget())
		if p.isPunct(",") {
			p.advance()
		} else {
			break
		}
	}
	p.expectPunct("]")
	return &ast.List{P: start, Elements: elems}
}

func (p *Parser) parseMapPattern() ast.Expr {
	start := p.pos()
	p.advance() // '{'
	m := ast.NewMap(start)
	for p.err == nil && !p.isPunct("}") {
		if p.cur.Kind != lexer.Symbol {
			p.unexpected("symbol")
			break
		}
		name := p.text()
		m.Values[name] = &ast.Symbol{P: p.pos(), Name: name}
		p.advance()
		if p.isPunct(",") {
			p.advance()
		} else {
			break
		}
	}
	p.expectPunct("}")
	return m
}

// parsePipe: logical ('~>' logical)*, left-associative — (a) ~> (b) ~> c is
// Apply(c, [Apply(b, [a])]). A bare symbol directly followed by '~>' is
// read as a macro by parseSymbolOrLambdaOrMacro, at the start of a chain
// and in the middle of one alike, so such stages need parentheses.
func (p *Parser) parsePipe() ast.Expr {
	lhs := p.parseLogical()
	for p.err == nil && p.isOp("~>") {
		pos := p.pos()
		p.advance()
		rhs := p.parseLogical()
		lhs = &ast.Apply{P: pos, Callee: rhs, Args: []ast.Expr{lhs}}
	}
	return lhs
}

func (p *Parser) parseLogical() ast.Expr {
	lhs := p.parseCompare()
	for p.err == nil && (p.isOp("&&") || p.isOp("||")) {
		op := p.text()
		pos := p.pos()
		p.advance()
		rhs := p.parseCompare()
		lhs = binOp(pos, op, lhs, rhs)
	}
	return lhs
}

func (p *Parser) parseCompare() ast.Expr {
	lhs := p.parseAdd()
	for p.err == nil && (p.isOp("==") || p.isOp("!=") || p.isOp("<") || p.isOp("<=") || p.isOp(">") || p.isOp(">=")) {
		op := p.text()
		pos := p.pos()
		p.advance()
		rhs := p.parseAdd()
		lhs = binOp(pos, op, lhs, rhs)
	}
	return lhs
}

func (p *Parser) parseAdd() ast.Expr {
	lhs := p.parseMul()
	for p.err == nil && (p.isOp("+") || p.isOp("-")) {
		op := p.text()
		pos := p.pos()
		p.advance()
		rhs := p.parseMul()
		lhs = binOp(pos, op, lhs, rhs)
	}
	return lhs
}

func (p *Parser) parseMul() ast.Expr {
	lhs := p.parseUnary()
	for p.err == nil && (p.isOp("*") || p.isOp("/") || p.isOp("%")) {
		op := p.text()
		pos := p.pos()
		p.advance()
		rhs := p.parseUnary()
		lhs = binOp(pos, op, lhs, rhs)
	}
	return lhs
}

// parseUnary: ('-'|'!') unary | apply. Unary operators desugar to a call of
// the "neg"/"not" builtins rather than a dedicated AST node, since
// Expression has no binary/unary-op variant (spec §3) — every operator is
// sugar over Apply of a Symbol bound to a builtin (spec §4.4).
func (p *Parser) parseUnary() ast.Expr {
	if p.isOp("-") {
		pos := p.pos()
		p.advance()
		operand := p.parseUnary()
		return &ast.Apply{P: pos, Callee: &ast.Symbol{P: pos, Name: "neg"}, Args: []ast.Expr{operand}}
	}
	if p.isOp("!") {
		pos := p.pos()
		p.advance()
		operand := p.parseUnary()
		return &ast.Apply{P: pos, Callee: &ast.Symbol{P: pos, Name: "not"}, Args: []ast.Expr{operand}}
	}
	return p.parseApply()
}

var binOpNames = map[string]string{
	"+": "+", "-": "-", "*": "*", "/": "/", "%": "%",
	"==": "==", "!=": "!=", "<": "<", "<=": "<=", ">": ">", ">=": ">=",
	"&&": "&&", "||": "||",
}

func binOp(pos lexer.Position, op string, lhs, rhs ast.Expr) ast.Expr {
	return &ast.Apply{P: pos, Callee: &ast.Symbol{P: pos, Name: binOpNames[op]}, Args: []ast.Expr{lhs, rhs}}
}

// parseApply: atom ( call_args | '.' SYMBOL | '[' expr ']' )*.
func (p *Parser) parseApply() ast.Expr {
	result := p.parseAtom()
	for p.err == nil {
		switch {
		case p.isPunct("("):
			result = p.parseCallArgs(result)
		case p.isPunct("."):
			p.advance()
			if p.cur.Kind != lexer.Symbol {
				p.unexpected("symbol")
				return result
			}
			key := &ast.String{P: p.pos(), Value: p.text()}
			pos := p.pos()
			p.advance()
			result = &ast.Index{P: pos, Container: result, Key: key}
		case p.isPunct("["):
			pos := p.pos()
			p.advance()
			key := p.parseExpr()
			p.expectPunct("]")
			result = &ast.Index{P: pos, Container: result, Key: key}
		case p.canStartJuxtaposedArg():
			pos := p.pos()
			arg := p.parseAtom()
			result = &ast.Apply{P: pos, Callee: result, Args: []ast.Expr{arg}}
		default:
			return result
		}
	}
	return result
}

// canStartJuxtaposedArg reports whether the current token can begin a bare
// juxtaposed argument (`f x`), as opposed to ending the application chain
// (an operator, closing bracket, separator, or a keyword that starts a
// different construct).
func (p *Parser) canStartJuxtaposedArg() bool {
	switch p.cur.Kind {
	case lexer.Symbol, lexer.StringLiteral, lexer.IntegerLiteral, lexer.FloatLiteral,
		lexer.BooleanLiteral, lexer.NoneLiteral:
		return true
	case lexer.Punctuation:
		return p.text() == "(" || p.text() == "[" || p.text() == "{"
	case lexer.Operator:
		return p.text() == "'"
	default:
		return false
	}
}

func (p *Parser) parseCallArgs(callee ast.Expr) ast.Expr {
	pos := p.pos()
	p.advance() // '('
	var args []ast.Expr
	for p.err == nil && !p.isPunct(")") {
		args = append(args, p.parseExpr())
		if p.isPunct(",") {
			p.advance()
		} else {
			break
		}
	}
	p.expectPunct(")")
	return &ast.Apply{P: pos, Callee: callee, Args: args}
}

// parseAtom is the `atom` production — every primary form, including the
// lambda/macro/block/list/map/if/for/while/quote alternatives.
func (p *Parser) parseAtom() ast.Expr {
	pos := p.pos()
	switch {
	case p.cur.Kind == lexer.IntegerLiteral:
		v, err := parseIntegerLiteral(p.text())
		if err != nil {
			p.err = &qerrors.SyntaxError{Kind: qerrors.InvalidNumber, Pos: pos, Message: err.Error()}
			return &ast.Integer{P: pos}
		}
		p.advance()
		return &ast.Integer{P: pos, Value: v}
	case p.cur.Kind == lexer.FloatLiteral:
		v, err := parseFloatLiteral(p.text())
		if err != nil {
			p.err = &qerrors.SyntaxError{Kind: qerrors.InvalidNumber, Pos: pos, Message: err.Error()}
			return &ast.Float{P: pos}
		}
		p.advance()
		return &ast.Float{P: pos, Value: v}
	case p.cur.Kind == lexer.BooleanLiteral:
		v := p.text() == "true"
		p.advance()
		return &ast.Boolean{P: pos, Value: v}
	case p.cur.Kind == lexer.NoneLiteral:
		p.advance()
		return &ast.None{P: pos}
	case p.cur.Kind == lexer.StringLiteral:
		raw := p.text()
		p.advance()
		decoded, err := lexer.DecodeString(raw)
		if err != nil {
			p.err = &qerrors.SyntaxError{Kind: qerrors.InvalidEscape, Pos: pos, Message: err.Error()}
			return &ast.String{P: pos}
		}
		return &ast.String{P: pos, Value: decoded}
	case p.cur.Kind == lexer.Symbol:
		return p.parseSymbolOrLambdaOrMacro()
	case p.isOp("'"):
		p.advance()
		return &ast.Quote{P: pos, Wrapped: p.parseAtom()}
	case p.isPunct("("):
		p.advance()
		e := p.parseExpr()
		p.expectPunct(")")
		return e
	case p.isPunct("["):
		return p.parseList()
	case p.isPunct("{"):
		return p.parseBraced()
	case p.isKeyword("if"):
		return p.parseIf()
	case p.isKeyword("for"):
		return p.parseFor()
	case p.isKeyword("while"):
		return p.parseWhile()
	default:
		p.unexpected("expression")
		return &ast.None{P: pos}
	}
}

// parseSymbolOrLambdaOrMacro resolves the one genuine ambiguity in the
// grammar: a bare SYMBOL followed by '->' is a lambda, followed by '~>' is
// a macro; otherwise it is a plain variable reference. See DESIGN.md for
// why this greedy rule is taken over the alternative reading of `~>` as
// always-pipe (it is what the worked `let m = x ~> ...` examples require).
func (p *Parser) parseSymbolOrLambdaOrMacro() ast.Expr {
	pos := p.pos()
	name := p.text()
	p.advance()
	switch {
	case p.isOp("->"):
		p.advance()
		body := p.parseExpr()
		return &ast.Lambda{P: pos, Param: name, Body: body}
	case p.isOp("~>"):
		p.advance()
		body := p.parseExpr()
		return &ast.Macro{P: pos, Param: name, Body: body}
	default:
		return &ast.Symbol{P: pos, Name: name}
	}
}

func (p *Parser) parseList() ast.Expr {
	pos := p.pos()
	p.advance() // '['
	var elems []ast.Expr
	for p.err == nil && !p.isPunct("]") {
		elems = append(elems, p.parseExpr())
		if p.isPunct(",") {
			p.advance()
		} else {
			break
		}
	}
	p.expectPunct("]")
	return &ast.List{P: pos, Elements: elems}
}

// parseBraced resolves the map-vs-block ambiguity (spec §4.2 Notes, §9
// Design Notes) with a single lookahead over the logical next two tokens
// after '{': SYMBOL-or-string followed by ':' means map; anything else
// means block, except an immediate '}' (empty `{}` is defined as a map by
// the grammar, so that one case is special-cased first).
func (p *Parser) parseBraced() ast.Expr {
	if next, err := p.lex.Peek(0); err == nil && next.Kind == lexer.Punctuation && next.Text(p.src) == "}" {
		return p.parseMap() // empty {} is defined as a map, not a block
	}
	if p.looksLikeMapStart() {
		return p.parseMap()
	}
	return p.parseBlock()
}

// looksLikeMapStart peeks two tokens ahead of the current '{' using the
// lexer's own buffering (Peek does not disturb NextToken's position).
func (p *Parser) looksLikeMapStart() bool {
	first, err1 := p.lex.Peek(0)
	if err1 != nil {
		return false
	}
	if first.Kind != lexer.Symbol && first.Kind != lexer.StringLiteral {
		return false
	}
	second, err2 := p.lex.Peek(1)
	if err2 != nil {
		return false
	}
	return second.Kind == lexer.Punctuation && second.Text(p.src) == ":"
}

func (p *Parser) parseMap() ast.Expr {
	pos := p.pos()
	p.advance() // '{'
	m := ast.NewMap(pos)
	for p.err == nil && !p.isPunct("}") {
		var key string
		switch {
		case p.cur.Kind == lexer.Symbol:
			key = p.text()
			p.advance()
		case p.cur.Kind == lexer.StringLiteral:
			raw := p.text()
			decoded, err := lexer.DecodeString(raw)
			if err != nil {
				p.err = &qerrors.SyntaxError{Kind: qerrors.InvalidEscape, Pos: p.pos(), Message: err.Error()}
				return m
			}
			key = decoded
			p.advance()
		default:
			p.unexpected("symbol", "string")
			return m
		}
		p.expectPunct(":")
		m.Values[key] = p.parseExpr()
		if p.isPunct(",") {
			p.advance()
		} else {
			break
		}
	}
	p.expectPunct("}")
	return m
}

func (p *Parser) parseBlock() ast.Expr {
	pos := p.pos()
	p.advance() // '{'
	exprs := p.parseStatements()
	p.expectPunct("}")
	return &ast.Do{P: pos, Exprs: exprs}
}

func (p *Parser) parseIf() ast.Expr {
	pos := p.pos()
	p.advance() // 'if'
	cond := p.parseExpr()
	p.expectKeyword("then")
	then := p.parseExpr()
	var els ast.Expr
	if p.isKeyword("else") {
		p.advance()
		els = p.parseExpr()
	}
	return &ast.If{P: pos, Cond: cond, Then: then, Else: els}
}

func (p *Parser) parseFor() ast.Expr {
	pos := p.pos()
	p.advance() // 'for'
	if p.cur.Kind != lexer.Symbol {
		p.unexpected("symbol")
		return &ast.None{P: pos}
	}
	name := p.text()
	p.advance()
	p.expectKeyword("in")
	iterable := p.parseExpr()
	body := p.parseBlock()
	return &ast.For{P: pos, Var: name, Iterable: iterable, Body: body}
}

func (p *Parser) parseWhile() ast.Expr {
	pos := p.pos()
	p.advance() // 'while'
	cond := p.parseExpr()
	body := p.parseBlock()
	return &ast.While{P: pos, Cond: cond, Body: body}
}
