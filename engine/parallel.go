package engine

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"chessd/board"
)

// workerHashMB sizes the throwaway transposition table each root task gets.
// Tasks share no search state, so there is no point in large tables.
const workerHashMB = 8

// ParallelSearcher is the root-parallel driver: an alternative to the
// aspiration Session, selected at construction. Each iterative-deepening
// round fans the root moves out to a bounded pool of goroutines; every task
// scores one child position with a full-window search and fresh search state
// (own TT, killers, history). The driver negates the returned scores and
// keeps the maximum. Search quality is traded for wall-clock parallelism:
// workers cannot share cutoff information.
type ParallelSearcher struct {
	workers int
	logger  *zap.Logger
}

// NewParallelSearcher builds a driver running at most workers concurrent
// root tasks. A nil logger disables search logging.
func NewParallelSearcher(workers int, logger *zap.Logger) *ParallelSearcher {
	if workers < 1 {
		workers = DefaultWorkers
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ParallelSearcher{workers: workers, logger: logger}
}

type rootScore struct {
	index int
	score int
}

// SearchBestMove iterates depths 1..maxDepth, scoring every root move in
// parallel at each depth, until the deadline passes. A depth whose workers
// were cut off by the deadline is discarded; the best move of the last
// completed depth is returned. Returns false when no depth completed or the
// root has no legal moves.
func (p *ParallelSearcher) SearchBestMove(pos board.Position, maxDepth int, timeLimit time.Duration) (board.Move, bool) {
	ctx := newSearchContext(timeLimit)

	rootMoves := pos.LegalMoves()
	if len(rootMoves) == 0 {
		return board.Move{}, false
	}

	var best board.Move
	found := false

	for d := 1; d <= maxDepth; d++ {
		results := make(chan rootScore, len(rootMoves))
		sem := make(chan struct{}, p.workers)
		var wg sync.WaitGroup

		for i, move := range rootMoves {
			wg.Add(1)
			go func(i int, move board.Move) {
				defer wg.Done()
				sem <- struct{}{}
				defer func() { <-sem }()

				child := pos
				child.MakeMove(move)

				worker := NewSession(workerHashMB, nil)
				taskCtx := ctx.fork()
				score := -worker.alphaBeta(&child, d-1, -Infinity, Infinity, taskCtx)
				if taskCtx.stopped.Load() {
					score = -Infinity // discarded below with the whole depth
				}
				results <- rootScore{index: i, score: score}
			}(i, move)
		}

		wg.Wait()
		close(results)

		if ctx.expired() {
			break
		}

		bestIndex, bestScore := -1, -Infinity-1
		for r := range results {
			if r.score > bestScore {
				bestScore = r.score
				bestIndex = r.index
			}
		}
		if bestIndex >= 0 {
			best = rootMoves[bestIndex]
			found = true
		}

		p.logger.Debug("parallel depth complete",
			zap.Int("depth", d),
			zap.Int("score", bestScore),
			zap.String("best", best.UCI()),
			zap.Duration("elapsed", ctx.elapsed()),
		)

		if ctx.expired() {
			break
		}
	}

	return best, found
}
