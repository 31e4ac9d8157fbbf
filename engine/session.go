package engine

import (
	"time"

	"go.uber.org/zap"

	"chessd/board"
)

// Search defaults matching the service configuration.
const (
	DefaultDepth     = 10
	DefaultTimeLimit = 20 * time.Second
	DefaultWorkers   = 24

	aspirationWindow = 50 // centipawns, initial half-window
)

// Searcher finds a best move within a time budget. The two implementations
// are the single-threaded aspiration driver (Session) and the root-parallel
// driver (ParallelSearcher); which one a game uses is fixed at construction.
type Searcher interface {
	SearchBestMove(pos board.Position, depth int, timeLimit time.Duration) (board.Move, bool)
}

// Session holds per-game search state: the transposition table survives
// across calls within a game, while killers and history are fresh for every
// top-level search. A Session must not be shared by concurrent searches.
type Session struct {
	TT      *TranspositionTable
	killers [maxSearchDepth][2]board.Move
	history [64][64]int
	logger  *zap.Logger
}

// NewSession creates a session with its own transposition table of
// hashSizeMB megabytes. A nil logger disables search logging.
func NewSession(hashSizeMB int, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		TT:     NewTranspositionTable(hashSizeMB),
		logger: logger,
	}
}

// Clear resets all session state, including the transposition table.
func (s *Session) Clear() {
	s.TT.Clear()
	s.clearKillers()
	s.clearHistory()
}

func (s *Session) clearKillers() {
	for i := range s.killers {
		s.killers[i][0] = board.Move{}
		s.killers[i][1] = board.Move{}
	}
}

func (s *Session) clearHistory() {
	for from := range s.history {
		for to := range s.history[from] {
			s.history[from][to] = 0
		}
	}
}

// storeKiller records a quiet move that caused a beta cutoff, prepending it
// to the two-slot list for this depth.
func (s *Session) storeKiller(depth int, move board.Move) {
	if depth < 0 || depth >= maxSearchDepth || move.IsCapture() {
		return
	}
	if s.killers[depth][0] == move {
		return
	}
	s.killers[depth][1] = s.killers[depth][0]
	s.killers[depth][0] = move
}

func (s *Session) isKiller(depth int, move board.Move) bool {
	if depth < 0 || depth >= maxSearchDepth {
		return false
	}
	return s.killers[depth][0] == move || s.killers[depth][1] == move
}

// SearchBestMove runs iterative deepening with aspiration windows up to
// maxDepth under a hard wall-clock limit. Killers and history are cleared;
// the transposition table is kept so later calls in the same game reuse it.
// Returns false when no move was ever recorded: either the root has no legal
// moves, or depth 1 did not finish before the deadline.
func (s *Session) SearchBestMove(pos board.Position, maxDepth int, timeLimit time.Duration) (board.Move, bool) {
	s.clearKillers()
	s.clearHistory()

	ctx := newSearchContext(timeLimit)
	var best board.Move
	found := false
	score := 0

	for d := 1; d <= maxDepth; d++ {
		window := aspirationWindow
		alpha := score - window
		beta := score + window

		for {
			root := pos
			result := s.alphaBeta(&root, d, alpha, beta, ctx)
			if ctx.stopped.Load() {
				return best, found
			}
			if result <= alpha && alpha > -Infinity {
				alpha = max(alpha-window, -Infinity)
				window *= 2
				continue
			}
			if result >= beta && beta < Infinity {
				beta = min(beta+window, Infinity)
				window *= 2
				continue
			}
			score = result
			break
		}

		if entry, ok := s.TT.Probe(pos.Hash); ok && entry.BestMove != (board.Move{}) {
			best = entry.BestMove
			found = true
		}

		s.logger.Debug("search depth complete",
			zap.Int("depth", d),
			zap.Int("score", score),
			zap.String("best", best.UCI()),
			zap.Int64("nodes", ctx.nodes),
			zap.Duration("elapsed", ctx.elapsed()),
		)

		if ctx.expired() {
			break
		}
	}

	return best, found
}
