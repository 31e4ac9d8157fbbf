package engine

import "chessd/board"

// Piece values in centipawns.
const (
	PawnValue   = 100
	KnightValue = 320
	BishopValue = 330
	RookValue   = 500
	QueenValue  = 900
)

var pieceValues = [7]int{0, PawnValue, KnightValue, BishopValue, RookValue, QueenValue, 0}

// Mid-game piece-square tables, indexed by square for White (a1 = 0) and by
// the mirrored square (sq^56) for Black. No phase blending.
var pst = [7][64]int{
	board.Pawn: {
		0, 5, 5, -10, -10, 5, 5, 0,
		0, 10, -5, 0, 0, -5, 10, 0,
		0, 10, 10, 20, 20, 10, 10, 0,
		5, 15, 15, 25, 25, 15, 15, 5,
		10, 20, 20, 30, 30, 20, 20, 10,
		20, 30, 30, 40, 40, 30, 30, 20,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	board.Knight: {
		-50, -40, -30, -30, -30, -30, -40, -50,
		-40, -20, 0, 0, 0, 0, -20, -40,
		-30, 5, 10, 15, 15, 10, 5, -30,
		-30, 0, 15, 20, 20, 15, 0, -30,
		-30, 5, 15, 20, 20, 15, 5, -30,
		-30, 0, 10, 15, 15, 10, 0, -30,
		-40, -20, 0, 0, 0, 0, -20, -40,
		-50, -40, -30, -30, -30, -30, -40, -50,
	},
	board.Bishop: {
		-20, -10, -10, -10, -10, -10, -10, -20,
		-10, 5, 0, 0, 0, 0, 5, -10,
		-10, 10, 10, 10, 10, 10, 10, -10,
		-10, 0, 10, 15, 15, 10, 0, -10,
		-10, 5, 10, 15, 15, 10, 5, -10,
		-10, 10, 10, 10, 10, 10, 10, -10,
		-10, 5, 0, 0, 0, 0, 5, -10,
		-20, -10, -10, -10, -10, -10, -10, -20,
	},
	board.Rook: {
		0, 0, 5, 10, 10, 5, 0, 0,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 5, 5, 0, 0, -5,
		-5, 0, 0, 5, 5, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		5, 10, 10, 10, 10, 10, 10, 5,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	board.Queen: {
		-20, -10, -10, -5, -5, -10, -10, -20,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-10, 0, 5, 5, 5, 5, 0, -10,
		-5, 0, 5, 5, 5, 5, 0, -5,
		0, 0, 5, 5, 5, 5, 0, -5,
		-10, 5, 5, 5, 5, 5, 0, -10,
		-10, 0, 5, 0, 0, 0, 0, -10,
		-20, -10, -10, -5, -5, -10, -10, -20,
	},
	board.King: {
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-20, -30, -30, -40, -40, -30, -30, -20,
		-10, -20, -20, -20, -20, -20, -20, -10,
		20, 20, 0, 0, 0, 0, 20, 20,
		20, 30, 10, 0, 0, 10, 30, 20,
	},
}

// mirror flips a square to the other side's perspective.
func mirror(sq int) int {
	return sq ^ 56
}

// Evaluate returns the static evaluation in centipawns, positive for White.
// Material plus piece-square bonuses plus a small mobility term for the side
// to move. Antisymmetric: eval(P) == -eval(mirror of P).
func Evaluate(pos *board.Position) int {
	score := 0
	for sq, piece := range pos.Squares {
		if piece == board.Empty {
			continue
		}
		kind := piece.Kind()
		val := pieceValues[kind]
		if piece.IsWhite() {
			val += pst[kind][sq]
			score += val
		} else {
			val += pst[kind][mirror(sq)]
			score -= val
		}
	}

	mobility := len(pos.LegalMoves())
	if pos.WhiteMove {
		score += mobility
	} else {
		score -= mobility
	}
	return score
}
