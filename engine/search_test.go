package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"chessd/board"
)

var (
	_ Searcher = (*Session)(nil)
	_ Searcher = (*ParallelSearcher)(nil)
)

func TestSearchBestMove_MateInOne(t *testing.T) {
	s := NewSession(16, nil)
	pos := mustParse(t, "6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1")

	move, ok := s.SearchBestMove(pos, 3, 5*time.Second)
	assert.True(t, ok)
	assert.Equal(t, "a1a8", move.UCI(), "the rook mates on the back rank")
}

func TestSearchBestMove_ReturnsLegalMove(t *testing.T) {
	s := NewSession(16, nil)
	pos := board.Initial()

	move, ok := s.SearchBestMove(pos, 2, time.Second)
	assert.True(t, ok)

	legal := uciSet(pos.LegalMoves())
	assert.True(t, legal[move.UCI()], "returned move %s must be legal", move.UCI())
}

func TestSearchBestMove_CapturesHangingQueen(t *testing.T) {
	s := NewSession(16, nil)
	pos := mustParse(t, "rnb1kbnr/pppppppp/8/8/3q4/4P3/PPPP1PPP/RNBQKBNR w KQkq - 0 1")

	move, ok := s.SearchBestMove(pos, 2, 5*time.Second)
	assert.True(t, ok)
	assert.Equal(t, "e3d4", move.UCI(), "the hanging queen must be taken")
}

func TestSearchBestMove_HonorsTimeLimit(t *testing.T) {
	s := NewSession(16, nil)
	pos := board.Initial()

	start := time.Now()
	s.SearchBestMove(pos, 10, 100*time.Millisecond)
	elapsed := time.Since(start)

	assert.Less(t, elapsed, 200*time.Millisecond, "a 100ms budget must not run past 200ms")
}

func TestSearchBestMove_DoesNotMutateInput(t *testing.T) {
	s := NewSession(16, nil)
	pos := mustParse(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	fen := pos.FEN()

	s.SearchBestMove(pos, 2, time.Second)
	assert.Equal(t, fen, pos.FEN(), "the caller's position is search input, never scratch space")
}

func TestSearchBestMove_NoLegalMoves(t *testing.T) {
	s := NewSession(16, nil)

	stalemate := mustParse(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	_, ok := s.SearchBestMove(stalemate, 3, time.Second)
	assert.False(t, ok, "stalemate has no move to return")

	mated := mustParse(t, "R5k1/5ppp/8/8/8/8/5PPP/6K1 b - - 0 1")
	_, ok = s.SearchBestMove(mated, 3, time.Second)
	assert.False(t, ok, "a mated side has no move to return")
}

func TestSearchBestMove_TTGrowsAcrossDepths(t *testing.T) {
	s := NewSession(16, nil)
	pos := board.Initial()

	s.TT.Clear()
	_, ok := s.SearchBestMove(pos, 2, 5*time.Second)
	assert.True(t, ok)
	used1 := s.TT.Used()
	assert.Greater(t, used1, uint64(0))

	_, ok = s.SearchBestMove(pos, 3, 5*time.Second)
	assert.True(t, ok)
	assert.GreaterOrEqual(t, s.TT.Used(), used1, "the table is kept across calls and only grows")
}

func TestSearchBestMove_TTKeptKillersCleared(t *testing.T) {
	s := NewSession(16, nil)
	pos := board.Initial()

	_, ok := s.SearchBestMove(pos, 3, 5*time.Second)
	assert.True(t, ok)
	used := s.TT.Used()

	// A later call must start with fresh killers; seed one and verify it is
	// gone after the next search.
	marker := board.Move{From: 6, To: 21, Piece: board.Knight}
	s.storeKiller(2, marker)
	_, _ = s.SearchBestMove(pos, 1, time.Second)
	assert.NotEqual(t, marker, s.killers[2][0], "killers are per top-level call")
	assert.GreaterOrEqual(t, s.TT.Used(), used, "the transposition table is kept across calls")
}

func TestQuiesce_SideRelativeSign(t *testing.T) {
	s := NewSession(1, nil)
	// Queen against rook with no capture or check available to either side:
	// quiescence reduces to the stand-pat evaluation, which is positive for
	// the side that is ahead and negative for the side that is behind.
	white := mustParse(t, "8/8/8/8/8/8/3r4/5Q2 w - - 0 1")
	score := s.quiesce(&white, -Infinity, Infinity, newSearchContext(time.Second))
	assert.Greater(t, score, 0, "White to move stands a queen for a rook up")

	black := mustParse(t, "8/8/8/8/8/8/3r4/5Q2 b - - 0 1")
	score = s.quiesce(&black, -Infinity, Infinity, newSearchContext(time.Second))
	assert.Less(t, score, 0, "Black to move stands the same amount down")
}

func TestQuiesce_ResolvesHangingCapture(t *testing.T) {
	s := NewSession(1, nil)
	// White to move can win the rook outright; the quiescence score must
	// reflect the capture, not the pre-capture material count.
	pos := mustParse(t, "8/8/8/8/8/8/4r3/4Q3 w - - 0 1")
	score := s.quiesce(&pos, -Infinity, Infinity, newSearchContext(time.Second))
	assert.Greater(t, score, QueenValue-RookValue+200, "winning the rook dominates the stand-pat score")
}

func TestAlphaBeta_MateScoreFromTerminalNode(t *testing.T) {
	s := NewSession(1, nil)
	ctx := newSearchContext(time.Second)

	mated := mustParse(t, "R5k1/5ppp/8/8/8/8/5PPP/6K1 b - - 0 1")
	score := s.alphaBeta(&mated, 1, -Infinity, Infinity, ctx)
	assert.Equal(t, -Infinity, score, "checkmated side scores -INF")

	stale := mustParse(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	score = s.alphaBeta(&stale, 1, -Infinity, Infinity, ctx)
	assert.Equal(t, 0, score, "stalemate scores zero")
}

func uciSet(moves []board.Move) map[string]bool {
	set := make(map[string]bool, len(moves))
	for _, m := range moves {
		set[m.UCI()] = true
	}
	return set
}
