package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/kestrel-lang/quill/internal/ast"
	qerrors "github.com/kestrel-lang/quill/internal/errors"
	"github.com/kestrel-lang/quill/internal/parser"
	"github.com/spf13/cobra"
)

var (
	parseExpression bool
	parseDumpAST    bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse Quill source and display the expression tree",
	Long: `Parse Quill source code and display its expression tree.

If no file is provided, reads from stdin. Use -e to parse a single
expression from the command line. Use --dump-ast for an indented node
dump instead of the tree's canonical printed form.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().BoolVarP(&parseExpression, "expression", "e", false, "parse a single expression instead of a script")
	parseCmd.Flags().BoolVar(&parseDumpAST, "dump-ast", false, "dump the full expression tree structure")
}

func runParse(_ *cobra.Command, args []string) error {
	input, filename, err := parseInput(args)
	if err != nil {
		return err
	}

	var tree ast.Expr
	var perr *qerrors.SyntaxError
	if parseExpression {
		tree, perr = parser.ParseExpression(input)
	} else {
		tree, perr = parser.ParseScript(input)
	}
	if perr != nil {
		printSyntaxError(perr, input, filename)
		return fmt.Errorf("parsing failed")
	}

	if parseDumpAST {
		fmt.Println("Expression tree:")
		fmt.Println("================")
		dumpASTNode(tree, 0)
	} else {
		fmt.Println(tree.String())
	}
	return nil
}

func parseInput(args []string) (input, filename string, err error) {
	switch {
	case parseExpression && len(args) == 1:
		return args[0], "<eval>", nil
	case parseExpression:
		return "", "", fmt.Errorf("no expression provided")
	case len(args) == 1:
		data, rerr := os.ReadFile(args[0])
		if rerr != nil {
			return "", "", fmt.Errorf("error reading file: %w", rerr)
		}
		return string(data), args[0], nil
	default:
		data, rerr := io.ReadAll(os.Stdin)
		if rerr != nil {
			return "", "", fmt.Errorf("error reading stdin: %w", rerr)
		}
		return string(data), "<stdin>", nil
	}
}

func dumpASTNode(node ast.Expr, indent int) {
	pad := ""
	for i := 0; i < indent; i++ {
		pad += "  "
	}

	switch n := node.(type) {
	case *ast.Do:
		fmt.Printf("%sDo (%d statements)\n", pad, len(n.Exprs))
		for _, sub := range n.Exprs {
			dumpASTNode(sub, indent+1)
		}
	case *ast.Apply:
		fmt.Printf("%sApply\n", pad)
		fmt.Printf("%s  Callee:\n", pad)
		dumpASTNode(n.Callee, indent+2)
		for _, a := range n.Args {
			fmt.Printf("%s  Arg:\n", pad)
			dumpASTNode(a, indent+2)
		}
	case *ast.If:
		fmt.Printf("%sIf\n", pad)
		dumpASTNode(n.Cond, indent+1)
		dumpASTNode(n.Then, indent+1)
		if n.Else != nil {
			dumpASTNode(n.Else, indent+1)
		}
	case *ast.Lambda:
		fmt.Printf("%sLambda(%s)\n", pad, n.Param)
		dumpASTNode(n.Body, indent+1)
	case *ast.Macro:
		fmt.Printf("%sMacro(%s)\n", pad, n.Param)
		dumpASTNode(n.Body, indent+1)
	case *ast.Quote:
		fmt.Printf("%sQuote\n", pad)
		dumpASTNode(n.Wrapped, indent+1)
	case *ast.List:
		fmt.Printf("%sList (%d elements)\n", pad, len(n.Elements))
		for _, el := range n.Elements {
			dumpASTNode(el, indent+1)
		}
	case *ast.Map:
		fmt.Printf("%sMap (%d entries)\n", pad, len(n.Values))
		for _, k := range n.SortedKeys() {
			fmt.Printf("%s  %s:\n", pad, k)
			dumpASTNode(n.Values[k], indent+2)
		}
	case *ast.Symbol:
		fmt.Printf("%sSymbol: %s\n", pad, n.Name)
	case *ast.Integer:
		fmt.Printf("%sInteger: %d\n", pad, n.Value)
	case *ast.Float:
		fmt.Printf("%sFloat: %g\n", pad, n.Value)
	case *ast.String:
		fmt.Printf("%sString: %q\n", pad, n.Value)
	case *ast.Boolean:
		fmt.Printf("%sBoolean: %v\n", pad, n.Value)
	case *ast.None:
		fmt.Printf("%sNone\n", pad)
	default:
		fmt.Printf("%s%T: %s\n", pad, node, node.String())
	}
}
