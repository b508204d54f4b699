// Package builtins installs Quill's core prelude — the arithmetic,
// comparison, and meta-operation (eval/quote/try) builtins spec §4.4
// requires — into a root internal/ast.Environment. Every binary/unary
// operator the parser's sugar produces (spec §4.3 Notes: "every operator
// is Apply of a Symbol bound to a builtin") resolves to one of these.
package builtins

import "github.com/kestrel-lang/quill/internal/ast"

// InstallPrelude populates root with every core builtin. Hosts (the CLI,
// tests) call this once on a fresh root environment before running any
// script.
func InstallPrelude(root *ast.Environment) {
	installArithmetic(root)
	installComparison(root)
	installLogic(root)
	installMeta(root)
}

// define registers a builtin of the given arity — the number of arguments
// Fn needs before it runs; see ast.Builtin's Arity doc for how juxtaposed
// calls accumulate toward it. Pass -1 for a builtin that always runs
// immediately and does its own arity checking (e.g. fixed 0-arg builtins).
func define(env *ast.Environment, name string, arity int, help string, fn ast.BuiltinFunc) {
	env.Define(name, &ast.Builtin{Name: name, Fn: fn, Help: help, Arity: arity})
}
