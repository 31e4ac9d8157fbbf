package server

import (
	"github.com/google/uuid"

	"chessd/board"
)

// Game is the single live game the façade owns: the current position, which
// color the human plays, the search depth, and the hash history needed for
// threefold repetition. Access is serialized by the server mutex.
type Game struct {
	ID          uuid.UUID
	pos         board.Position
	playerWhite bool
	depth       int
	seen        map[uint64]int
}

// NewGame starts a fresh game from the initial position.
func NewGame(playerWhite bool, depth int) *Game {
	pos := board.Initial()
	return &Game{
		ID:          uuid.New(),
		pos:         pos,
		playerWhite: playerWhite,
		depth:       depth,
		seen:        map[uint64]int{pos.Hash: 1},
	}
}

// apply plays a move on the live position and records it for repetition.
func (g *Game) apply(m board.Move) {
	g.pos.MakeMove(m)
	g.seen[g.pos.Hash]++
}

// isDraw reports threefold repetition or the fifty-move rule. Stalemate is
// reported separately via the legal move count.
func (g *Game) isDraw() bool {
	if g.seen[g.pos.Hash] >= 3 {
		return true
	}
	return g.pos.HalfmoveClock >= 100
}

// botWhite reports which color the engine plays.
func (g *Game) botWhite() bool {
	return !g.playerWhite
}

// botToMove reports whether it is the engine's turn.
func (g *Game) botToMove() bool {
	return g.pos.WhiteMove == g.botWhite()
}

// atStart reports whether the game is still on the opening position, which
// is when the bot's first move as White is drawn from the jitter list
// instead of the search.
func (g *Game) atStart() bool {
	return g.seen[g.pos.Hash] == 1 && g.pos.Hash == board.Initial().Hash
}

// gameState is the JSON game object every endpoint returns.
type gameState struct {
	GameID      string       `json:"game_id"`
	Board       [8][8]string `json:"board"`
	WhiteToMove bool         `json:"white_to_move"`
	Check       bool         `json:"check"`
	Checkmate   bool         `json:"checkmate"`
	Stalemate   bool         `json:"stalemate"`
	Draw        bool         `json:"draw,omitempty"`
	LegalMoves  []uiMove     `json:"legal_moves,omitempty"`
}

// state snapshots the game for the client. Row 0 of the board array is rank
// 8, matching the UI's orientation.
func (g *Game) state() gameState {
	st := gameState{
		GameID:      g.ID.String(),
		WhiteToMove: g.pos.WhiteMove,
	}
	for sq := 0; sq < 64; sq++ {
		row, col := indexToRC(sq)
		st.Board[row][col] = string(g.pos.PieceAt(sq).Letter())
	}

	legal := g.pos.LegalMoves()
	st.Check = g.pos.InCheck()
	st.Checkmate = st.Check && len(legal) == 0
	st.Stalemate = !st.Check && len(legal) == 0
	st.Draw = g.isDraw()
	for _, m := range legal {
		st.LegalMoves = append(st.LegalMoves, moveToUI(m))
	}
	return st
}
