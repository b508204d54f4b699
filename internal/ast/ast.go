// Package ast defines Quill's unified expression/value model: every
// syntactic form the parser produces and every runtime datum the
// evaluator produces or consumes is an Expr. This is what makes `quote`
// and macros possible — a quoted expression is not a separate "syntax"
// type, it is the same Expr a literal 5 or a List would be.
package ast

import (
	"fmt"

	"github.com/kestrel-lang/quill/internal/lexer"
)

// Kind tags which concrete Expr variant a value is.
type Kind int

const (
	KindNone Kind = iota
	KindBoolean
	KindInteger
	KindFloat
	KindString
	KindSymbol
	KindList
	KindMap
	KindLambda
	KindMacro
	KindBuiltin
	KindApply
	KindQuote
	KindDo
	KindIf
	KindAssign
	KindDeclare
	KindFor
	KindWhile
	KindIndex
)

var kindNames = [...]string{
	KindNone: "None", KindBoolean: "Boolean", KindInteger: "Integer",
	KindFloat: "Float", KindString: "String", KindSymbol: "Symbol",
	KindList: "List", KindMap: "Map", KindLambda: "Lambda", KindMacro: "Macro",
	KindBuiltin: "Builtin", KindApply: "Apply", KindQuote: "Quote",
	KindDo: "Do", KindIf: "If", KindAssign: "Assign", KindDeclare: "Declare",
	KindFor: "For", KindWhile: "While", KindIndex: "Index",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// Expr is the unified AST node / runtime value interface (spec §3). Every
// variant below implements it; evaluating most of them to themselves is
// how literal containers and quoted data double as both syntax and value.
type Expr interface {
	Kind() Kind
	Pos() lexer.Position
	// String returns the canonical textual form (spec §6.2). For pure-data
	// variants, parsing String() back reproduces an equal value.
	String() string
}

func at(pos lexer.Position) lexer.Position { return pos }

// None is the unit value.
type None struct{ P lexer.Position }

func (e *None) Kind() Kind          { return KindNone }
func (e *None) Pos() lexer.Position { return at(e.P) }
func (e *None) String() string      { return "None" }

// Boolean is a literal true/false.
type Boolean struct {
	P     lexer.Position
	Value bool
}

func (e *Boolean) Kind() Kind          { return KindBoolean }
func (e *Boolean) Pos() lexer.Position { return at(e.P) }
func (e *Boolean) String() string {
	if e.Value {
		return "true"
	}
	return "false"
}

// Integer is a signed integer value, at minimum 64-bit (spec §3; Quill uses
// a native int64 — see DESIGN.md for why arbitrary precision was not used).
type Integer struct {
	P     lexer.Position
	Value int64
}

func (e *Integer) Kind() Kind          { return KindInteger }
func (e *Integer) Pos() lexer.Position { return at(e.P) }
func (e *Integer) String() string      { return fmt.Sprintf("%d", e.Value) }

// Float is an IEEE-754 double.
type Float struct {
	P     lexer.Position
	Value float64
}

func (e *Float) Kind() Kind          { return KindFloat }
func (e *Float) Pos() lexer.Position { return at(e.P) }
func (e *Float) String() string      { return formatFloat(e.Value) }

// String is a text literal/value.
type String struct {
	P     lexer.Position
	Value string
}

func (e *String) Kind() Kind          { return KindString }
func (e *String) Pos() lexer.Position { return at(e.P) }
func (e *String) String() string      { return quoteString(e.Value) }

// Symbol is a variable reference (or, inside a Declare pattern, a binding
// target).
type Symbol struct {
	P     lexer.Position
	Name  string
}

func (e *Symbol) Kind() Kind          { return KindSymbol }
func (e *Symbol) Pos() lexer.Position { return at(e.P) }
func (e *Symbol) String() string      { return e.Name }

// List is an ordered sequence.
type List struct {
	P        lexer.Position
	Elements []Expr
}

func (e *List) Kind() Kind          { return KindList }
func (e *List) Pos() lexer.Position { return at(e.P) }
func (e *List) String() string {
	s := "["
	for i, el := range e.Elements {
		if i > 0 {
			s += ", "
		}
		s += el.String()
	}
	return s + "]"
}

// Map is a mapping from string keys to Expr values. Iteration and display
// order is always ascending key order (spec §3 invariant); SortedKeys
// computes that order on each call.
type Map struct {
	P      lexer.Position
	Values map[string]Expr
}

func NewMap(pos lexer.Position) *Map {
	return &Map{P: pos, Values: make(map[string]Expr)}
}

func (e *Map) Kind() Kind          { return KindMap }
func (e *Map) Pos() lexer.Position { return at(e.P) }
func (e *Map) String() string {
	keys := e.SortedKeys()
	s := "{"
	for i, k := range keys {
		if i > 0 {
			s += ", "
		}
		// A key prints bare only when it would lex back as a Symbol;
		// otherwise it prints as a string literal, which map syntax accepts.
		bare := k != "" && !lexer.IsReserved(k)
		for j, r := range k {
			start := r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
			if !start && (j == 0 || !((r >= '0' && r <= '9') || r == '!' || r == '?')) {
				bare = false
			}
		}
		if bare {
			s += k + ": " + e.Values[k].String()
		} else {
			s += quoteString(k) + ": " + e.Values[k].String()
		}
	}
	return s + "}"
}

// Lambda is a closure: a single parameter, a body, and the environment it
// was constructed in, captured by shared reference (spec §3 invariant) so
// later mutation of that environment is visible through the closure.
type Lambda struct {
	P       lexer.Position
	Param   string
	Body    Expr
	Closure *Environment
}

func (e *Lambda) Kind() Kind          { return KindLambda }
func (e *Lambda) Pos() lexer.Position { return at(e.P) }
func (e *Lambda) String() string      { return fmt.Sprintf("<lambda %s -> ...>", e.Param) }

// Macro is structurally distinct from Lambda (not a flag on Lambda) so the
// evaluator's Apply dispatch stays exhaustive on type, not on state: its
// parameter is bound to the caller's unevaluated syntax.
type Macro struct {
	P     lexer.Position
	Param string
	Body  Expr
}

func (e *Macro) Kind() Kind          { return KindMacro }
func (e *Macro) Pos() lexer.Position { return at(e.P) }
func (e *Macro) String() string      { return fmt.Sprintf("<macro %s ~> ...>", e.Param) }

// BuiltinFunc is a host-provided callable, invoked with its raw (unevaluated)
// argument expressions plus the calling environment; whether and when to
// evaluate them is the builtin's own choice (spec §4.4). depth is the
// recursion depth of the Apply invoking this builtin — a builtin that
// evaluates its own operands must pass depth+1 through to eval.Eval rather
// than restarting the count at 0, or the MaxDepth/StackOverflow guard never
// trips for programs built entirely out of operator application.
type BuiltinFunc func(args []Expr, env *Environment, depth int) (Expr, error)

// Builtin wraps a host function as a callable Expr. Arity is the number of
// arguments Fn needs before it actually runs; applying fewer (as juxtaposed
// calls always do one argument at a time, spec §4.3's curry-equivalence
// rule) yields a partially-applied Builtin rather than an arity error — see
// internal/eval.applyTo. A negative Arity marks a builtin that always runs
// immediately regardless of how many arguments it receives (it does its own
// arity checking, e.g. a fixed 0-arg builtin or one with optional args).
type Builtin struct {
	P     lexer.Position
	Name  string
	Fn    BuiltinFunc
	Help  string
	Arity int
}

func (e *Builtin) Kind() Kind          { return KindBuiltin }
func (e *Builtin) Pos() lexer.Position { return at(e.P) }
func (e *Builtin) String() string      { return fmt.Sprintf("<builtin %s>", e.Name) }

// Apply is a function/macro/builtin application node.
type Apply struct {
	P      lexer.Position
	Callee Expr
	Args   []Expr
}

func (e *Apply) Kind() Kind          { return KindApply }
func (e *Apply) Pos() lexer.Position { return at(e.P) }
func (e *Apply) String() string {
	s := e.Callee.String() + "("
	for i, a := range e.Args {
		if i > 0 {
			s += ", "
		}
		s += a.String()
	}
	return s + ")"
}

// Quote wraps an expression so evaluating it returns the wrapped syntax
// verbatim — this is what lets a quoted expression be passed to eval.
type Quote struct {
	P       lexer.Position
	Wrapped Expr
}

func (e *Quote) Kind() Kind          { return KindQuote }
func (e *Quote) Pos() lexer.Position { return at(e.P) }
func (e *Quote) String() string      { return "'" + e.Wrapped.String() }

// Do is a sequential block; its value is the last expression's value, or
// None if empty.
type Do struct {
	P     lexer.Position
	Exprs []Expr
}

func (e *Do) Kind() Kind          { return KindDo }
func (e *Do) Pos() lexer.Position { return at(e.P) }
func (e *Do) String() string {
	s := "{ "
	for i, x := range e.Exprs {
		if i > 0 {
			s += "; "
		}
		s += x.String()
	}
	return s + " }"
}

// If is a conditional, Else may be nil.
type If struct {
	P          lexer.Position
	Cond, Then Expr
	Else       Expr
}

func (e *If) Kind() Kind          { return KindIf }
func (e *If) Pos() lexer.Position { return at(e.P) }
func (e *If) String() string {
	s := "if " + e.Cond.String() + " then " + e.Then.String()
	if e.Else != nil {
		s += " else " + e.Else.String()
	}
	return s
}

// Assign rebinds a target; the parser only ever produces a plain Symbol or
// an Index chain for Assign.Target.
type Assign struct {
	P      lexer.Position
	Target Expr
	Value  Expr
}

func (e *Assign) Kind() Kind          { return KindAssign }
func (e *Assign) Pos() lexer.Position { return at(e.P) }
func (e *Assign) String() string      { return e.Target.String() + " = " + e.Value.String() }

// Declare is `let`; Target is a Symbol for a plain binding, or a List/Map of
// Symbols for a destructuring pattern (SPEC_FULL supplemental feature).
type Declare struct {
	P      lexer.Position
	Target Expr
	Value  Expr
}

func (e *Declare) Kind() Kind          { return KindDeclare }
func (e *Declare) Pos() lexer.Position { return at(e.P) }
func (e *Declare) String() string      { return "let " + e.Target.String() + " = " + e.Value.String() }

// For iterates Iterable, binding Var in a fresh child scope on each pass.
type For struct {
	P        lexer.Position
	Var      string
	Iterable Expr
	Body     Expr
}

func (e *For) Kind() Kind          { return KindFor }
func (e *For) Pos() lexer.Position { return at(e.P) }
func (e *For) String() string {
	return "for " + e.Var + " in " + e.Iterable.String() + " " + e.Body.String()
}

// While is a classical pre-test loop.
type While struct {
	P          lexer.Position
	Cond, Body Expr
}

func (e *While) Kind() Kind          { return KindWhile }
func (e *While) Pos() lexer.Position { return at(e.P) }
func (e *While) String() string      { return "while " + e.Cond.String() + " " + e.Body.String() }

// Literal wraps an already-evaluated value so it can be handed to Eval
// again (e.g. as a builtin-constructed argument to Apply) without being
// reduced a second time — unlike Quote, which deliberately unwraps on
// Eval, Literal always evaluates to exactly the Value it holds. The
// parser never produces this node; it exists only for host/builtin code
// that needs to pass a value through the ordinary argument-evaluation
// path (see internal/builtins `try`).
type Literal struct {
	Value Expr
}

func (e *Literal) Kind() Kind          { return e.Value.Kind() }
func (e *Literal) Pos() lexer.Position { return e.Value.Pos() }
func (e *Literal) String() string      { return e.Value.String() }

// Index is a subscript: container[key].
type Index struct {
	P                  lexer.Position
	Container, Key Expr
}

func (e *Index) Kind() Kind          { return KindIndex }
func (e *Index) Pos() lexer.Position { return at(e.P) }
func (e *Index) String() string      { return e.Container.String() + "[" + e.Key.String() + "]" }
