package eval_test

import (
	"fmt"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/kestrel-lang/quill/internal/ast"
	"github.com/kestrel-lang/quill/internal/builtins"
	"github.com/kestrel-lang/quill/internal/eval"
	"github.com/kestrel-lang/quill/internal/parser"
)

// TestFixtures runs a table of named scripts end to end (tokenize →
// parse → eval) and snapshots the printed result or error.
func TestFixtures(t *testing.T) {
	fixtures := []struct {
		name   string
		script string
	}{
		{"arithmetic_precedence", "1 + 2 * 3 - 4 / 2"},
		{"lambda_application", "let square = x -> x * x; square 9"},
		{"curried_lambda", "let add = a -> b -> a + b; (add 3) 4"},
		{"pipeline", "[3,1,2] ~> (xs -> xs[0])"},
		{"list_and_map_printing", `{name: "ann", tags: [1, 2, 3]}`},
		{"macro_swap", "let swap = pair ~> quote([pair[1], pair[0]]); eval(swap([1, 2]))"},
		{"try_recovers_divide_by_zero", "try (10 / 0) (e -> e.message)"},
		{"for_loop_accumulation", "let total = 0; for x in [1,2,3,4] { total = total + x }; total"},
		{"destructuring_let", "let [a, b] = [10, 20]; a - b"},
		{"unbound_symbol_error", "undefinedName"},
	}

	for _, fx := range fixtures {
		t.Run(fx.name, func(t *testing.T) {
			program, perr := parser.ParseScript(fx.script)
			if perr != nil {
				snaps.MatchSnapshot(t, fmt.Sprintf("SyntaxError: %s", perr.Error()))
				return
			}

			root := ast.NewRoot()
			builtins.InstallPrelude(root)
			result, everr := eval.Eval(program, root, 0)
			if everr != nil {
				snaps.MatchSnapshot(t, fmt.Sprintf("EvalError[%d]: %s", everr.Code(), everr.Error()))
				return
			}
			snaps.MatchSnapshot(t, result.String())
		})
	}
}
