package board

import "math/rand"

// Zobrist hashing keys for position identification. XOR properties enable
// incremental updates in MakeMove: hash ^= key adds or removes a feature.
var (
	// zobristPiece[color][kind-1][square]; color 0 = white
	zobristPiece [2][6][64]uint64

	// zobristCastle[rights] for the 16 castling combinations
	zobristCastle [16]uint64

	// zobristEnPassant[file] for the en passant target file
	zobristEnPassant [8]uint64

	// zobristSide is XORed in when Black is to move
	zobristSide uint64
)

func init() {
	// Fixed seed so hashes are stable across runs.
	rng := rand.New(rand.NewSource(0x5D3A9F04C1B2E687))

	for color := 0; color < 2; color++ {
		for kind := 0; kind < 6; kind++ {
			for sq := 0; sq < 64; sq++ {
				zobristPiece[color][kind][sq] = rng.Uint64()
			}
		}
	}
	for i := range zobristCastle {
		zobristCastle[i] = rng.Uint64()
	}
	for i := range zobristEnPassant {
		zobristEnPassant[i] = rng.Uint64()
	}
	zobristSide = rng.Uint64()
}

// pieceKey returns the Zobrist key for a colored piece on a square.
func pieceKey(piece Piece, sq int) uint64 {
	color := 1
	if piece.IsWhite() {
		color = 0
	}
	return zobristPiece[color][piece.Kind()-1][sq]
}

// ComputeHash calculates the full Zobrist hash from scratch. MakeMove keeps
// the hash incrementally; this is used when building a position from FEN and
// by tests validating the incremental updates. The halfmove and fullmove
// counters are not part of the key.
func (p *Position) ComputeHash() uint64 {
	var hash uint64
	for sq, piece := range p.Squares {
		if piece != Empty {
			hash ^= pieceKey(piece, sq)
		}
	}
	hash ^= zobristCastle[p.Castle]
	if p.EnPassant != NoEnPassant {
		hash ^= zobristEnPassant[fileOf(int(p.EnPassant))]
	}
	if !p.WhiteMove {
		hash ^= zobristSide
	}
	return hash
}
