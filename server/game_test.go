package server

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"chessd/board"
)

func playUCI(t *testing.T, g *Game, ucis ...string) {
	t.Helper()
	for _, uci := range ucis {
		from, err := squareToIndex(uci[:2])
		assert.NoError(t, err)
		to, err := squareToIndex(uci[2:4])
		assert.NoError(t, err)
		promo := board.Empty
		if len(uci) == 5 {
			promo, err = parsePromotion(uci[4:])
			assert.NoError(t, err)
		}
		m, ok := g.pos.FindMove(from, to, promo)
		assert.True(t, ok, "move %s must be legal", uci)
		g.apply(m)
	}
}

func TestGame_ThreefoldRepetition(t *testing.T) {
	g := NewGame(true, 2)
	shuffle := []string{"g1f3", "g8f6", "f3g1", "f6g8"}

	playUCI(t, g, shuffle...)
	assert.False(t, g.isDraw(), "two occurrences are not a draw")

	playUCI(t, g, shuffle...)
	assert.True(t, g.isDraw(), "third occurrence of the start position")
}

func TestGame_FiftyMoveRule(t *testing.T) {
	g := NewGame(true, 2)
	g.pos, _ = board.ParseFEN("8/8/8/4k3/8/4K3/8/7R w - - 99 80")
	playUCI(t, g, "h1h2")
	assert.True(t, g.isDraw(), "the hundredth reversible half-move draws")
}

func TestGame_StatePayload(t *testing.T) {
	g := NewGame(true, 2)
	st := g.state()

	assert.Equal(t, g.ID.String(), st.GameID)
	assert.True(t, st.WhiteToMove)
	assert.False(t, st.Check)
	assert.False(t, st.Checkmate)
	assert.False(t, st.Stalemate)
	assert.Len(t, st.LegalMoves, 20)

	// Row 0 is rank 8: black pieces lowercase; row 7 is rank 1: white pieces.
	assert.Equal(t, "r", st.Board[0][0])
	assert.Equal(t, "k", st.Board[0][4])
	assert.Equal(t, "R", st.Board[7][0])
	assert.Equal(t, "K", st.Board[7][4])
	assert.Equal(t, ".", st.Board[4][4])
}

func TestGame_CheckmateState(t *testing.T) {
	g := NewGame(true, 2)
	g.pos, _ = board.ParseFEN("R5k1/5ppp/8/8/8/8/5PPP/6K1 b - - 0 1")
	st := g.state()
	assert.True(t, st.Check)
	assert.True(t, st.Checkmate)
	assert.False(t, st.Stalemate)
	assert.Empty(t, st.LegalMoves)
}

func TestGame_StalemateState(t *testing.T) {
	g := NewGame(true, 2)
	g.pos, _ = board.ParseFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	st := g.state()
	assert.False(t, st.Check)
	assert.False(t, st.Checkmate)
	assert.True(t, st.Stalemate)
}

func TestGame_TurnHelpers(t *testing.T) {
	g := NewGame(true, 2)
	assert.False(t, g.botToMove(), "human plays White and moves first")
	assert.True(t, g.atStart())

	playUCI(t, g, "e2e4")
	assert.True(t, g.botToMove())
	assert.False(t, g.atStart())

	botAsWhite := NewGame(false, 2)
	assert.True(t, botAsWhite.botToMove())
}
