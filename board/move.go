package board

import "fmt"

// Move represents a chess move in a compact form: the two squares, the
// kinds of the moving, captured and promotion pieces, and flags for the
// special move types. The zero Move is not a legal move and doubles as
// "no move".
type Move struct {
	From      uint8
	To        uint8
	Piece     Piece // kind of the moving piece
	Captured  Piece // kind of the captured piece (Pawn for en passant), Empty otherwise
	Promotion Piece // promotion kind, Empty otherwise
	Flags     MoveFlag
}

// MoveFlag marks special move types.
type MoveFlag uint8

const (
	FlagNone      MoveFlag = 0
	FlagEnPassant MoveFlag = 1 << iota
	FlagCastling
	FlagDoublePush
)

// IsCapture reports whether the move takes a piece (including en passant).
func (m Move) IsCapture() bool {
	return m.Captured != Empty
}

// IsEnPassant reports whether the move is an en passant capture.
func (m Move) IsEnPassant() bool {
	return m.Flags&FlagEnPassant != 0
}

// UCI returns the move in UCI notation (e.g. "e2e4", "e7e8q").
func (m Move) UCI() string {
	uci := SquareName(int(m.From)) + SquareName(int(m.To))
	if m.Promotion != Empty {
		uci += string(kindLetters[m.Promotion])
	}
	return uci
}

func (m Move) String() string {
	return m.UCI()
}

// SquareName converts a square index to algebraic notation (0 -> "a1").
func SquareName(sq int) string {
	if sq < 0 || sq > 63 {
		return "??"
	}
	return fmt.Sprintf("%c%d", 'a'+fileOf(sq), rankOf(sq)+1)
}

// SquareIndex parses algebraic notation into a square index ("e2" -> 12).
func SquareIndex(name string) (int, error) {
	if len(name) != 2 || name[0] < 'a' || name[0] > 'h' || name[1] < '1' || name[1] > '8' {
		return 0, fmt.Errorf("invalid square %q", name)
	}
	return int(name[1]-'1')*8 + int(name[0]-'a'), nil
}

// FindMove looks up the legal move matching from, to and promotion kind.
// It returns false when no such move exists in the current position.
func (p *Position) FindMove(from, to int, promotion Piece) (Move, bool) {
	for _, m := range p.LegalMoves() {
		if int(m.From) == from && int(m.To) == to && m.Promotion == promotion {
			return m, true
		}
	}
	return Move{}, false
}
