package kerr

import (
	"fmt"
	"go/token"
)

// Location is a span of the user program an error is attributed to.
// The zero Location is unknown, which is the case for errors raised during const evaluation.
type Location struct {
	PosStart token.Pos
	PosEnd   token.Pos
}

func (l Location) Pos() token.Pos { return l.PosStart }
func (l Location) End() token.Pos { return l.PosEnd }

func (l Location) IsUnknown() bool {
	return l.PosStart == token.NoPos && l.PosEnd == token.NoPos
}

func (l Location) String() string {
	switch {
	case l.IsUnknown():
		return "?"
	case l.PosStart == l.PosEnd:
		return fmt.Sprintf("%v", l.PosStart)
	default:
		return fmt.Sprintf("%v-%v", l.PosStart, l.PosEnd)
	}
}
