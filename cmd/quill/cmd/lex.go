package cmd

import (
	"fmt"
	"os"

	qerrors "github.com/kestrel-lang/quill/internal/errors"
	"github.com/kestrel-lang/quill/internal/lexer"
	"github.com/spf13/cobra"
)

var (
	lexEvalExpr string
	showPos     bool
	showKind    bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a Quill file or expression",
	Long: `Tokenize (lex) Quill source and print the resulting tokens.

This command is useful for debugging the tokenizer and understanding how
Quill source text is split into tokens.

Examples:
  # Tokenize a script file
  quill lex script.quill

  # Tokenize an inline expression
  quill lex -e "1 + 2 * 3"

  # Show token kinds and positions
  quill lex --show-kind --show-pos script.quill`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexEvalExpr, "eval", "e", "", "tokenize inline code instead of reading from file")
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&showKind, "show-kind", false, "show token kind names")
}

func lexScript(_ *cobra.Command, args []string) error {
	input, filename, err := readSource(lexEvalExpr, args)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Printf("Tokenizing: %s\n", filename)
		fmt.Printf("Input length: %d bytes\n", len(input))
		fmt.Println("---")
	}

	l := lexer.New(input)
	tokenCount := 0
	for {
		tok, lexErr := l.NextToken()
		if lexErr != nil {
			printSyntaxError(lexErr, input, filename)
			return fmt.Errorf("tokenizing failed")
		}
		tokenCount++
		printToken(tok, input)
		if tok.Kind == lexer.EOF {
			break
		}
	}

	if verbose {
		fmt.Println("---")
		fmt.Printf("Total tokens: %d\n", tokenCount)
	}
	return nil
}

func printToken(tok lexer.Token, src string) {
	var output string
	if showKind {
		output = fmt.Sprintf("[%-14s]", tok.Kind.String())
	}
	if tok.Kind == lexer.EOF {
		output += " EOF"
	} else {
		output += fmt.Sprintf(" %q", tok.Text(src))
	}
	if showPos {
		output += fmt.Sprintf(" @%s", tok.Pos)
	}
	fmt.Println(output)
}

func readSource(inlineExpr string, args []string) (input, filename string, err error) {
	if inlineExpr != "" {
		return inlineExpr, "<eval>", nil
	}
	if len(args) == 1 {
		content, rerr := os.ReadFile(args[0])
		if rerr != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], rerr)
		}
		return string(content), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e flag for inline code")
}

func printSyntaxError(err *qerrors.SyntaxError, source, file string) {
	ce := qerrors.FromSyntaxError(err, source, file)
	fmt.Fprintln(os.Stderr, formatCompilerError(ce))
}

// formatCompilerError renders ce as a single line around the error, or with
// --context lines of surrounding source either side when requested.
func formatCompilerError(ce *qerrors.CompilerError) string {
	if errorContext > 0 {
		return ce.FormatWithContext(errorContext, true)
	}
	return ce.Format(true)
}
