package board

// Piece encodes a piece kind in the low three bits and the color in two
// flag bits, so a single byte per square is enough for the mailbox board.
type Piece uint8

const (
	Empty Piece = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

const (
	kindMask  Piece = 0x07
	whiteFlag Piece = 0x08
	blackFlag Piece = 0x10
)

// ColoredPiece builds a board piece from a kind and a color.
func ColoredPiece(kind Piece, white bool) Piece {
	if white {
		return kind | whiteFlag
	}
	return kind | blackFlag
}

// Kind strips the color flags, leaving Pawn..King (or Empty).
func (p Piece) Kind() Piece {
	return p & kindMask
}

// IsWhite reports whether the piece is white. False for Empty.
func (p Piece) IsWhite() bool {
	return p&whiteFlag != 0
}

// isColor reports whether the piece belongs to the given side.
func (p Piece) isColor(white bool) bool {
	if white {
		return p&whiteFlag != 0
	}
	return p&blackFlag != 0
}

var kindLetters = [7]byte{'.', 'p', 'n', 'b', 'r', 'q', 'k'}

// Letter returns the FEN letter for the piece: uppercase for White,
// lowercase for Black, '.' for an empty square.
func (p Piece) Letter() byte {
	c := kindLetters[p.Kind()]
	if p.IsWhite() {
		return c - 'a' + 'A'
	}
	return c
}

// pieceFromLetter parses a FEN piece letter. Returns Empty if unknown.
func pieceFromLetter(c byte) Piece {
	white := c >= 'A' && c <= 'Z'
	if white {
		c = c - 'A' + 'a'
	}
	for kind, l := range kindLetters {
		if kind != 0 && l == c {
			return ColoredPiece(Piece(kind), white)
		}
	}
	return Empty
}
