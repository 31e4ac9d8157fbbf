package engine

import (
	"slices"

	"chessd/board"
)

// mvvLVA scores a capture as 10*victim - attacker using the piece ranks
// P=1 N=2 B=3 R=4 Q=5 K=6. Non-captures score 0; an en passant victim is a
// pawn. Taking a queen with a pawn outranks taking a pawn with a queen.
func mvvLVA(m board.Move) int {
	if m.Captured == board.Empty {
		return 0
	}
	return 10*int(m.Captured) - int(m.Piece)
}

// orderedMoves returns the legal moves sorted for the alpha-beta loop.
// Descending lexicographic key: TT move first, then MVV-LVA, then killer
// membership at this depth, then the history score.
func (s *Session) orderedMoves(pos *board.Position, depth int, ttMove board.Move) []board.Move {
	moves := pos.LegalMoves()
	slices.SortStableFunc(moves, func(a, b board.Move) int {
		if c := cmpBool(a == ttMove, b == ttMove); c != 0 {
			return -c
		}
		if c := mvvLVA(a) - mvvLVA(b); c != 0 {
			return -c
		}
		if c := cmpBool(s.isKiller(depth, a), s.isKiller(depth, b)); c != 0 {
			return -c
		}
		return -(s.history[a.From][a.To] - s.history[b.From][b.To])
	})
	return moves
}

func cmpBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return 1
	default:
		return -1
	}
}
