package board

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseFEN builds a position from Forsyth-Edwards Notation. The hash is
// computed from scratch; MakeMove keeps it incremental afterwards.
func ParseFEN(fen string) (Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return Position{}, fmt.Errorf("fen %q: want at least 4 fields, got %d", fen, len(fields))
	}

	var pos Position
	pos.EnPassant = NoEnPassant
	pos.FullMove = 1

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return Position{}, fmt.Errorf("fen %q: want 8 ranks, got %d", fen, len(ranks))
	}
	for i, rank := range ranks {
		r := 7 - i // FEN starts at rank 8
		f := 0
		for j := 0; j < len(rank); j++ {
			c := rank[j]
			if c >= '1' && c <= '8' {
				f += int(c - '0')
				continue
			}
			piece := pieceFromLetter(c)
			if piece == Empty || f > 7 {
				return Position{}, fmt.Errorf("fen %q: bad rank %q", fen, rank)
			}
			pos.Squares[r*8+f] = piece
			f++
		}
		if f != 8 {
			return Position{}, fmt.Errorf("fen %q: rank %q does not fill 8 files", fen, rank)
		}
	}

	switch fields[1] {
	case "w":
		pos.WhiteMove = true
	case "b":
		pos.WhiteMove = false
	default:
		return Position{}, fmt.Errorf("fen %q: bad side %q", fen, fields[1])
	}

	if fields[2] != "-" {
		for _, c := range fields[2] {
			switch c {
			case 'K':
				pos.Castle |= CastleWhiteKingSide
			case 'Q':
				pos.Castle |= CastleWhiteQueenSide
			case 'k':
				pos.Castle |= CastleBlackKingSide
			case 'q':
				pos.Castle |= CastleBlackQueenSide
			default:
				return Position{}, fmt.Errorf("fen %q: bad castling %q", fen, fields[2])
			}
		}
	}

	if fields[3] != "-" {
		sq, err := SquareIndex(fields[3])
		if err != nil {
			return Position{}, fmt.Errorf("fen %q: %w", fen, err)
		}
		pos.EnPassant = int8(sq)
	}

	if len(fields) > 4 {
		n, err := strconv.Atoi(fields[4])
		if err != nil {
			return Position{}, fmt.Errorf("fen %q: bad halfmove clock: %w", fen, err)
		}
		pos.HalfmoveClock = uint8(n)
	}
	if len(fields) > 5 {
		n, err := strconv.Atoi(fields[5])
		if err != nil {
			return Position{}, fmt.Errorf("fen %q: bad fullmove number: %w", fen, err)
		}
		pos.FullMove = uint16(n)
	}

	pos.Hash = pos.ComputeHash()
	return pos, nil
}

// FEN serializes the position back to Forsyth-Edwards Notation.
func (p *Position) FEN() string {
	var sb strings.Builder

	for r := 7; r >= 0; r-- {
		empty := 0
		for f := 0; f < 8; f++ {
			piece := p.Squares[r*8+f]
			if piece == Empty {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte('0' + byte(empty))
				empty = 0
			}
			sb.WriteByte(piece.Letter())
		}
		if empty > 0 {
			sb.WriteByte('0' + byte(empty))
		}
		if r > 0 {
			sb.WriteByte('/')
		}
	}

	if p.WhiteMove {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}

	if p.Castle == 0 {
		sb.WriteByte('-')
	} else {
		if p.Castle&CastleWhiteKingSide != 0 {
			sb.WriteByte('K')
		}
		if p.Castle&CastleWhiteQueenSide != 0 {
			sb.WriteByte('Q')
		}
		if p.Castle&CastleBlackKingSide != 0 {
			sb.WriteByte('k')
		}
		if p.Castle&CastleBlackQueenSide != 0 {
			sb.WriteByte('q')
		}
	}

	sb.WriteByte(' ')
	if p.EnPassant == NoEnPassant {
		sb.WriteByte('-')
	} else {
		sb.WriteString(SquareName(int(p.EnPassant)))
	}

	fmt.Fprintf(&sb, " %d %d", p.HalfmoveClock, p.FullMove)
	return sb.String()
}
