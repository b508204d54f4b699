package cmd

import (
	"fmt"
	"os"

	"github.com/kestrel-lang/quill/internal/ast"
	"github.com/kestrel-lang/quill/internal/builtins"
	"github.com/kestrel-lang/quill/internal/config"
	qerrors "github.com/kestrel-lang/quill/internal/errors"
	"github.com/kestrel-lang/quill/internal/eval"
	"github.com/kestrel-lang/quill/internal/parser"
	"github.com/spf13/cobra"
)

var (
	runEvalExpr string
	runDumpAST  bool
	runTrace    bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Quill file or expression",
	Long: `Execute a Quill program from a file or inline expression.

Examples:
  # Run a script file
  quill run script.quill

  # Evaluate an inline expression
  quill run -e "1 + 2 * 3"

  # Run with standard modules preloaded
  quill run --modules json,fs script.quill

  # Run with the parsed expression tree dumped first
  quill run --dump-ast script.quill`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runEvalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().BoolVar(&runDumpAST, "dump-ast", false, "dump the parsed expression tree (for debugging)")
	runCmd.Flags().BoolVar(&runTrace, "trace", false, "trace execution (for debugging)")
}

func runScript(cmd *cobra.Command, args []string) error {
	input, filename, err := readSource(runEvalExpr, args)
	if err != nil {
		return err
	}

	program, perr := parser.ParseScript(input)
	if perr != nil {
		printSyntaxError(perr, input, filename)
		return fmt.Errorf("parsing failed")
	}

	if runDumpAST {
		fmt.Println("AST:")
		fmt.Println(program.String())
		fmt.Println()
	}

	depth, modules := maxDepth, moduleNames
	if cwd, cerr := os.Getwd(); cerr == nil {
		if rc, rcErr := config.Load(cwd); rcErr == nil {
			if !cmd.Flags().Changed("depth") && rc.Depth > 0 {
				depth = rc.Depth
			}
			if !cmd.Flags().Changed("modules") && len(rc.Modules) > 0 {
				modules = rc.Modules
			}
		}
	}

	root := ast.NewRoot()
	builtins.InstallPrelude(root)
	if err := loadModules(root, modules); err != nil {
		return err
	}

	if runTrace {
		fmt.Fprintf(os.Stderr, "[trace] evaluating %s\n", filename)
	}

	eval.MaxDepth = depth
	result, evalErr := eval.Eval(program, root, 0)
	if evalErr != nil {
		printEvalError(evalErr, input, filename)
		return fmt.Errorf("execution failed")
	}

	if _, isNone := result.(*ast.None); !isNone {
		fmt.Println(result.String())
	}
	return nil
}

func printEvalError(err *qerrors.EvalError, source, file string) {
	ce := qerrors.FromEvalError(err, source, file)
	fmt.Fprintln(os.Stderr, formatCompilerError(ce))
}
