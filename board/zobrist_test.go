package board

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Walk random games and verify that the incrementally maintained hash always
// matches a from-scratch recomputation.
func TestZobrist_IncrementalMatchesRecompute(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for game := 0; game < 20; game++ {
		pos := Initial()
		for ply := 0; ply < 60; ply++ {
			moves := pos.LegalMoves()
			if len(moves) == 0 {
				break
			}
			pos.MakeMove(moves[rng.Intn(len(moves))])
			assert.Equal(t, pos.ComputeHash(), pos.Hash, "game %d ply %d", game, ply)
		}
	}
}

func TestZobrist_TranspositionSameHash(t *testing.T) {
	// 1.Nf3 Nf6 2.Ng1 Ng8 returns to the start placement; only the counters
	// differ, and they are not part of the key.
	pos := Initial()
	initial := pos.Hash
	for _, uci := range []string{"g1f3", "g8f6", "f3g1", "f6g8"} {
		m := findUCI(pos, uci)
		pos.MakeMove(m)
	}
	assert.Equal(t, initial, pos.Hash)
}

func TestZobrist_SideAndEnPassantInKey(t *testing.T) {
	a := mustParse(t, "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2")
	b := mustParse(t, "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2")
	c := mustParse(t, "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 2")

	assert.NotEqual(t, a.Hash, b.Hash, "en passant file is part of the key")
	assert.NotEqual(t, b.Hash, c.Hash, "side to move is part of the key")
}

func findUCI(pos Position, uci string) Move {
	for _, m := range pos.LegalMoves() {
		if m.UCI() == uci {
			return m
		}
	}
	panic("move not legal: " + uci)
}
