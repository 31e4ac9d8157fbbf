package board

// Direction offsets as (file delta, rank delta) pairs.
var (
	knightOffsets = [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingOffsets   = [8][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
	bishopDirs    = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	rookDirs      = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
)

// offsetSquare returns the square shifted by (df, dr), or -1 when the shift
// leaves the board.
func offsetSquare(sq, df, dr int) int {
	f := fileOf(sq) + df
	r := rankOf(sq) + dr
	if f < 0 || f > 7 || r < 0 || r > 7 {
		return -1
	}
	return r*8 + f
}

// LegalMoves generates all legal moves for the side to move. Pseudo-legal
// moves are filtered by making each one on a copy and rejecting those that
// leave the mover's king attacked.
func (p *Position) LegalMoves() []Move {
	pseudo := p.pseudoMoves()
	legal := pseudo[:0]
	for _, m := range pseudo {
		child := *p
		child.MakeMove(m)
		if !child.kingAttacked(p.WhiteMove) {
			legal = append(legal, m)
		}
	}
	return legal
}

// pseudoMoves generates moves that obey piece movement rules but may leave
// the own king in check. Castling is fully legality-checked here because the
// transit squares cannot be validated by the make-and-test filter.
func (p *Position) pseudoMoves() []Move {
	moves := make([]Move, 0, 48)
	for sq, piece := range p.Squares {
		if piece == Empty || piece.IsWhite() != p.WhiteMove {
			continue
		}
		switch piece.Kind() {
		case Pawn:
			moves = p.pawnMoves(moves, sq)
		case Knight:
			moves = p.stepMoves(moves, sq, Knight, knightOffsets[:])
		case Bishop:
			moves = p.slideMoves(moves, sq, Bishop, bishopDirs[:])
		case Rook:
			moves = p.slideMoves(moves, sq, Rook, rookDirs[:])
		case Queen:
			moves = p.slideMoves(moves, sq, Queen, bishopDirs[:])
			moves = p.slideMoves(moves, sq, Queen, rookDirs[:])
		case King:
			moves = p.stepMoves(moves, sq, King, kingOffsets[:])
			moves = p.castleMoves(moves, sq)
		}
	}
	return moves
}

var promotionKinds = [4]Piece{Queen, Rook, Bishop, Knight}

// appendPawnMove expands promotions when the pawn reaches the last rank.
func appendPawnMove(moves []Move, from, to int, captured Piece, flags MoveFlag) []Move {
	if rankOf(to) == 0 || rankOf(to) == 7 {
		for _, kind := range promotionKinds {
			moves = append(moves, Move{
				From: uint8(from), To: uint8(to),
				Piece: Pawn, Captured: captured, Promotion: kind, Flags: flags,
			})
		}
		return moves
	}
	return append(moves, Move{
		From: uint8(from), To: uint8(to),
		Piece: Pawn, Captured: captured, Flags: flags,
	})
}

func (p *Position) pawnMoves(moves []Move, sq int) []Move {
	dir, startRank := 1, 1
	if !p.WhiteMove {
		dir, startRank = -1, 6
	}

	// single and double pushes
	if fwd := offsetSquare(sq, 0, dir); fwd >= 0 && p.Squares[fwd] == Empty {
		moves = appendPawnMove(moves, sq, fwd, Empty, FlagNone)
		if rankOf(sq) == startRank {
			if fwd2 := offsetSquare(sq, 0, 2*dir); p.Squares[fwd2] == Empty {
				moves = append(moves, Move{
					From: uint8(sq), To: uint8(fwd2), Piece: Pawn, Flags: FlagDoublePush,
				})
			}
		}
	}

	// captures, including en passant
	for _, df := range [2]int{-1, 1} {
		t := offsetSquare(sq, df, dir)
		if t < 0 {
			continue
		}
		target := p.Squares[t]
		if target != Empty && target.IsWhite() != p.WhiteMove {
			moves = appendPawnMove(moves, sq, t, target.Kind(), FlagNone)
		} else if target == Empty && p.EnPassant != NoEnPassant && t == int(p.EnPassant) {
			moves = append(moves, Move{
				From: uint8(sq), To: uint8(t),
				Piece: Pawn, Captured: Pawn, Flags: FlagEnPassant,
			})
		}
	}
	return moves
}

func (p *Position) stepMoves(moves []Move, sq int, kind Piece, offsets [][2]int) []Move {
	for _, off := range offsets {
		t := offsetSquare(sq, off[0], off[1])
		if t < 0 {
			continue
		}
		target := p.Squares[t]
		if target == Empty {
			moves = append(moves, Move{From: uint8(sq), To: uint8(t), Piece: kind})
		} else if target.IsWhite() != p.WhiteMove {
			moves = append(moves, Move{From: uint8(sq), To: uint8(t), Piece: kind, Captured: target.Kind()})
		}
	}
	return moves
}

func (p *Position) slideMoves(moves []Move, sq int, kind Piece, dirs [][2]int) []Move {
	for _, dir := range dirs {
		for step := 1; ; step++ {
			t := offsetSquare(sq, dir[0]*step, dir[1]*step)
			if t < 0 {
				break
			}
			target := p.Squares[t]
			if target == Empty {
				moves = append(moves, Move{From: uint8(sq), To: uint8(t), Piece: kind})
				continue
			}
			if target.IsWhite() != p.WhiteMove {
				moves = append(moves, Move{From: uint8(sq), To: uint8(t), Piece: kind, Captured: target.Kind()})
			}
			break
		}
	}
	return moves
}

// castleMoves generates castling. The king must not be in check, and neither
// the transit square nor the destination may be attacked.
func (p *Position) castleMoves(moves []Move, sq int) []Move {
	type castle struct {
		right    uint8
		kingFrom int
		kingTo   int
		empty    []int
		safe     []int
	}
	var candidates []castle
	if p.WhiteMove {
		candidates = []castle{
			{CastleWhiteKingSide, 4, 6, []int{5, 6}, []int{4, 5, 6}},
			{CastleWhiteQueenSide, 4, 2, []int{1, 2, 3}, []int{4, 3, 2}},
		}
	} else {
		candidates = []castle{
			{CastleBlackKingSide, 60, 62, []int{61, 62}, []int{60, 61, 62}},
			{CastleBlackQueenSide, 60, 58, []int{57, 58, 59}, []int{60, 59, 58}},
		}
	}

	for _, c := range candidates {
		if sq != c.kingFrom || p.Castle&c.right == 0 {
			continue
		}
		ok := true
		for _, e := range c.empty {
			if p.Squares[e] != Empty {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		for _, s := range c.safe {
			if p.IsSquareAttacked(s, !p.WhiteMove) {
				ok = false
				break
			}
		}
		if ok {
			moves = append(moves, Move{
				From: uint8(c.kingFrom), To: uint8(c.kingTo), Piece: King, Flags: FlagCastling,
			})
		}
	}
	return moves
}

// IsSquareAttacked reports whether the given side attacks a square.
func (p *Position) IsSquareAttacked(sq int, byWhite bool) bool {
	// pawn attacks: a white pawn on s attacks s+7 and s+9
	pawnDir := 1
	if byWhite {
		pawnDir = -1
	}
	for _, df := range [2]int{-1, 1} {
		if t := offsetSquare(sq, df, pawnDir); t >= 0 {
			piece := p.Squares[t]
			if piece.Kind() == Pawn && piece.isColor(byWhite) {
				return true
			}
		}
	}

	for _, off := range knightOffsets {
		if t := offsetSquare(sq, off[0], off[1]); t >= 0 {
			piece := p.Squares[t]
			if piece.Kind() == Knight && piece.isColor(byWhite) {
				return true
			}
		}
	}

	for _, off := range kingOffsets {
		if t := offsetSquare(sq, off[0], off[1]); t >= 0 {
			piece := p.Squares[t]
			if piece.Kind() == King && piece.isColor(byWhite) {
				return true
			}
		}
	}

	if p.slideAttack(sq, byWhite, bishopDirs[:], Bishop) {
		return true
	}
	return p.slideAttack(sq, byWhite, rookDirs[:], Rook)
}

// slideAttack scans rays from sq for a slider (or queen) of the given side.
func (p *Position) slideAttack(sq int, byWhite bool, dirs [][2]int, slider Piece) bool {
	for _, dir := range dirs {
		for step := 1; ; step++ {
			t := offsetSquare(sq, dir[0]*step, dir[1]*step)
			if t < 0 {
				break
			}
			piece := p.Squares[t]
			if piece == Empty {
				continue
			}
			if piece.isColor(byWhite) {
				kind := piece.Kind()
				if kind == slider || kind == Queen {
					return true
				}
			}
			break
		}
	}
	return false
}

// GivesCheck reports whether making the move leaves the opponent in check.
func (p *Position) GivesCheck(m Move) bool {
	child := *p
	child.MakeMove(m)
	return child.InCheck()
}

// HasLegalEnPassant reports whether the side to move has a legal en passant
// capture available. Null-move pruning is skipped in that case: the null move
// would silently forfeit the capture and corrupt the bound.
func (p *Position) HasLegalEnPassant() bool {
	if p.EnPassant == NoEnPassant {
		return false
	}
	ep := int(p.EnPassant)
	dir := 1
	if !p.WhiteMove {
		dir = -1
	}
	for _, df := range [2]int{-1, 1} {
		from := offsetSquare(ep, df, -dir)
		if from < 0 {
			continue
		}
		piece := p.Squares[from]
		if piece.Kind() != Pawn || piece.IsWhite() != p.WhiteMove {
			continue
		}
		m := Move{From: uint8(from), To: uint8(ep), Piece: Pawn, Captured: Pawn, Flags: FlagEnPassant}
		child := *p
		child.MakeMove(m)
		if !child.kingAttacked(p.WhiteMove) {
			return true
		}
	}
	return false
}
