package lexer

import "fmt"

// Position locates a byte offset in source text in human terms.
type Position struct {
	Offset int // byte offset from the start of the source
	Line   int // 1-based
	Column int // 1-based, counted in runes
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a classified span over the source text: [Start, End) are byte
// offsets into the original string, half-open and contiguous with their
// neighbors (see Tokenize's coverage guarantee).
type Token struct {
	Kind  Kind
	Start int
	End   int
	Pos   Position // position of Start, for diagnostics
}

// Text returns the raw lexeme this token covers in src.
func (t Token) Text(src string) string {
	return src[t.Start:t.End]
}

func (t Token) String() string {
	return fmt.Sprintf("%s@%s", t.Kind, t.Pos)
}
