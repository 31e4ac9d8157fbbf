package engine

import "chessd/board"

// Search limits and scores. Infinity doubles as the mate score: a side with
// no legal moves while in check is scored -Infinity at that node.
const (
	Infinity       = 1_000_000_000
	maxSearchDepth = 64

	// Late move reductions use the conservative thresholds: reduce only from
	// the seventh move onwards and only with five or more plies remaining.
	lmrMoveThreshold  = 6
	lmrDepthThreshold = 5

	nullMoveReduction = 3
)

// alphaBeta is the negamax core: scores are relative to the side to move and
// negated at each ply. The node order is deadline probe, TT probe, leaf,
// null-move pruning, then the ordered full-width loop with late move
// reductions. Returns a fail-soft score; a 0 return with the stop flag set
// is garbage the caller must discard.
func (s *Session) alphaBeta(pos *board.Position, depth, alpha, beta int, ctx *searchContext) int {
	ctx.nodes++
	if ctx.nodes&(checkInterval-1) == 0 && ctx.checkTimeout() {
		return 0
	}

	alphaOrig := alpha
	hash := pos.Hash

	var ttMove board.Move
	if entry, found := s.TT.Probe(hash); found {
		ttMove = entry.BestMove
		if int(entry.Depth) >= depth {
			score := int(entry.Score)
			switch entry.Flag {
			case TTFlagExact:
				return score
			case TTFlagLower:
				if score >= beta {
					return score
				}
			case TTFlagUpper:
				if score <= alpha {
					return score
				}
			}
		}
	}

	if depth == 0 {
		return s.quiesce(pos, alpha, beta, ctx)
	}

	inCheck := pos.InCheck()

	// Null-move pruning. Skipped in check, and skipped when a legal en
	// passant capture exists: the null move would forfeit it and the
	// reduced search could return a bound the real position cannot honor.
	if depth >= 3 && !inCheck && !pos.HasLegalEnPassant() {
		child := *pos
		child.MakeNullMove()
		nullScore := -s.alphaBeta(&child, depth-nullMoveReduction, -beta, -beta+1, ctx)
		if ctx.stopped.Load() {
			return 0
		}
		if nullScore >= beta {
			return beta
		}
	}

	moves := s.orderedMoves(pos, depth, ttMove)
	if len(moves) == 0 {
		if inCheck {
			return -Infinity
		}
		return 0
	}

	bestScore := -Infinity
	var bestMove board.Move

	for i, move := range moves {
		child := *pos
		child.MakeMove(move)

		newDepth := depth - 1
		if i >= lmrMoveThreshold && depth >= lmrDepthThreshold && !inCheck {
			newDepth--
		}

		score := -s.alphaBeta(&child, newDepth, -beta, -alpha, ctx)
		if ctx.stopped.Load() {
			return 0
		}

		if score > bestScore {
			bestScore = score
			bestMove = move
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			s.storeKiller(depth, move)
			break
		}
	}

	if bestMove != (board.Move{}) && !bestMove.IsCapture() {
		s.history[bestMove.From][bestMove.To] += depth * depth
	}

	if !ctx.stopped.Load() {
		var flag TTFlag
		switch {
		case bestScore <= alphaOrig:
			flag = TTFlagUpper
		case bestScore >= beta:
			flag = TTFlagLower
		default:
			flag = TTFlagExact
		}
		s.TT.Store(hash, depth, flag, bestScore, bestMove)
	}

	return bestScore
}

// quiesce extends the search past the horizon through captures and checking
// moves only, using the static evaluation as a fail-hard stand-pat bound.
func (s *Session) quiesce(pos *board.Position, alpha, beta int, ctx *searchContext) int {
	ctx.nodes++
	if ctx.nodes&(checkInterval-1) == 0 && ctx.checkTimeout() {
		return 0
	}

	stand := Evaluate(pos)
	if !pos.WhiteMove {
		stand = -stand
	}
	if stand >= beta {
		return beta
	}
	if stand > alpha {
		alpha = stand
	}

	for _, move := range pos.LegalMoves() {
		if !move.IsCapture() && !pos.GivesCheck(move) {
			continue
		}
		child := *pos
		child.MakeMove(move)
		score := -s.quiesce(&child, -beta, -alpha, ctx)
		if ctx.stopped.Load() {
			return 0
		}
		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}
