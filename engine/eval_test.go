package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"chessd/board"
)

func mustParse(t *testing.T, fen string) board.Position {
	t.Helper()
	pos, err := board.ParseFEN(fen)
	assert.NoError(t, err)
	return pos
}

// mirrorPosition swaps colors, reflects ranks, flips the side to move and
// transposes castling rights and the en passant file to the other side.
func mirrorPosition(pos board.Position) board.Position {
	var m board.Position
	for sq, piece := range pos.Squares {
		if piece == board.Empty {
			continue
		}
		m.Squares[sq^56] = board.ColoredPiece(piece.Kind(), !piece.IsWhite())
	}
	m.WhiteMove = !pos.WhiteMove
	if pos.Castle&board.CastleWhiteKingSide != 0 {
		m.Castle |= board.CastleBlackKingSide
	}
	if pos.Castle&board.CastleWhiteQueenSide != 0 {
		m.Castle |= board.CastleBlackQueenSide
	}
	if pos.Castle&board.CastleBlackKingSide != 0 {
		m.Castle |= board.CastleWhiteKingSide
	}
	if pos.Castle&board.CastleBlackQueenSide != 0 {
		m.Castle |= board.CastleWhiteQueenSide
	}
	m.EnPassant = board.NoEnPassant
	if pos.EnPassant != board.NoEnPassant {
		m.EnPassant = pos.EnPassant ^ 56
	}
	m.FullMove = pos.FullMove
	m.Hash = m.ComputeHash()
	return m
}

func TestEvaluate_QueenVsRookSign(t *testing.T) {
	up := mustParse(t, "8/8/8/8/8/8/4r3/4Q3 w - - 0 1")
	assert.Greater(t, Evaluate(&up), 0, "queen for rook should favor White")

	down := mustParse(t, "8/4q3/8/8/8/8/8/4R3 b - - 0 1")
	assert.Less(t, Evaluate(&down), 0, "rook for queen should favor Black")
}

func TestEvaluate_MirrorAntisymmetry(t *testing.T) {
	fens := []string{
		board.InitialPositionFEN,
		"8/8/8/8/8/8/4r3/4Q3 w - - 0 1",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	}
	for _, fen := range fens {
		pos := mustParse(t, fen)
		mirrored := mirrorPosition(pos)
		assert.Equal(t, Evaluate(&pos), -Evaluate(&mirrored), "eval must negate under mirroring: %s", fen)
	}
}

func TestEvaluate_InitialPositionNearZero(t *testing.T) {
	pos := board.Initial()
	score := Evaluate(&pos)
	assert.InDelta(t, 0, score, 50, "the starting position is balanced up to the mobility term")
}

func TestEvaluate_MaterialDominates(t *testing.T) {
	pos := mustParse(t, "rnb1kbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	assert.Greater(t, Evaluate(&pos), QueenValue/2, "a missing black queen should show up in the score")
}
