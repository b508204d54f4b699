package errors

import (
	"fmt"
	"sort"

	"github.com/kestrel-lang/quill/internal/lexer"
)

// Code is the stable integer users can dispatch on (spec §4.5). Codes never
// change meaning once assigned; add new ones at the end of the table.
type Code int

const (
	CodeSyntaxError   Code = 1
	CodeUnboundSymbol Code = 2
	CodeTypeMismatch  Code = 3
	CodeArityMismatch Code = 4
	CodeIndexError    Code = 5
	CodeDivideByZero  Code = 6
	CodeNotCallable   Code = 7
	CodeStackOverflow Code = 8
	CodeCustomError   Code = 99
)

var codeNames = map[Code]string{
	CodeSyntaxError:   "SyntaxError",
	CodeUnboundSymbol: "UnboundSymbol",
	CodeTypeMismatch:  "TypeMismatch",
	CodeArityMismatch: "ArityMismatch",
	CodeIndexError:    "IndexError",
	CodeDivideByZero:  "DivideByZero",
	CodeNotCallable:   "NotCallable",
	CodeStackOverflow: "StackOverflow",
	CodeCustomError:   "CustomError",
}

// Name returns the error kind name associated with a code, e.g. "IndexError".
func (c Code) Name() string {
	if n, ok := codeNames[c]; ok {
		return n
	}
	return "UnknownError"
}

// Codes returns the stable code table sorted by code, for Error::codes().
func Codes() []struct {
	Code Code
	Name string
} {
	out := make([]struct {
		Code Code
		Name string
	}, 0, len(codeNames))
	for c, n := range codeNames {
		out = append(out, struct {
			Code Code
			Name string
		}{c, n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// SyntaxErrorKind distinguishes lexer/parser failure modes.
type SyntaxErrorKind int

const (
	UnterminatedString SyntaxErrorKind = iota
	InvalidEscape
	InvalidNumber
	UnrecognizedChar
	UnexpectedToken
)

var syntaxKindNames = [...]string{
	UnterminatedString: "unterminated string",
	InvalidEscape:      "invalid escape sequence",
	InvalidNumber:      "invalid number literal",
	UnrecognizedChar:   "unrecognized character",
	UnexpectedToken:    "unexpected token",
}

func (k SyntaxErrorKind) String() string {
	if int(k) >= 0 && int(k) < len(syntaxKindNames) {
		return syntaxKindNames[k]
	}
	return "syntax error"
}

// SyntaxError is returned by the tokenizer and parser (spec §4.1, §4.2).
// It always carries Code() == CodeSyntaxError.
type SyntaxError struct {
	Kind     SyntaxErrorKind
	Pos      lexer.Position
	Message  string
	Expected []string // for UnexpectedToken: the set of tokens that would have been accepted
}

func (e *SyntaxError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	return fmt.Sprintf("SyntaxError: %s at %s", msg, e.Pos)
}

// Code implements the common Error-code contract (spec §6.1).
func (e *SyntaxError) Code() Code { return CodeSyntaxError }

// EvalError is the runtime fault the evaluator returns for every failing
// eval() call (spec §4.5, §7). Unlike SyntaxError it never halts the host
// process — it propagates as an ordinary return value up the eval stack.
type EvalError struct {
	ErrCode Code
	Message string
	Pos     *lexer.Position // nil when no source token is known
}

func NewEvalError(code Code, format string, args ...any) *EvalError {
	return &EvalError{ErrCode: code, Message: fmt.Sprintf(format, args...)}
}

func (e *EvalError) At(pos lexer.Position) *EvalError {
	e.Pos = &pos
	return e
}

// Error implements the standard error interface as well as the
// "<kind>: <message>" user-visible format spec §7 requires.
func (e *EvalError) Error() string {
	return fmt.Sprintf("%s: %s", e.ErrCode.Name(), e.Message)
}

// Code returns the stable dispatch code (spec §6.1 Error::code()).
func (e *EvalError) Code() Code { return e.ErrCode }
