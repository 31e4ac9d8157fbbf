package server

import (
	"fmt"
	"strings"

	"chessd/board"
)

// The UI addresses squares two ways: algebraic strings ("e2") and (row, col)
// pairs with row 0 = rank 8, matching the 8x8 board array sent to clients.
// Internally squares are rank*8+file with a1 = 0, so e2 is index 12,
// (row, col) (6, 4) and "e2" all name the same square.

// sqToRC converts an algebraic square to its (row, col) pair.
func sqToRC(s string) (int, int, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return 0, 0, fmt.Errorf("invalid square %q", s)
	}
	return 8 - int(s[1]-'0'), int(s[0] - 'a'), nil
}

// rcToSq converts a (row, col) pair back to algebraic notation.
func rcToSq(row, col int) string {
	return fmt.Sprintf("%c%d", 'a'+col, 8-row)
}

// indexToRC converts an internal square index to a (row, col) pair.
func indexToRC(sq int) (int, int) {
	return 7 - sq/8, sq % 8
}

// rcToIndex converts a (row, col) pair to an internal square index.
func rcToIndex(row, col int) int {
	return (7-row)*8 + col
}

// squareToIndex converts an algebraic square straight to the internal index.
func squareToIndex(s string) (int, error) {
	row, col, err := sqToRC(s)
	if err != nil {
		return 0, err
	}
	return rcToIndex(row, col), nil
}

// indexToSquare converts an internal square index to algebraic notation.
func indexToSquare(sq int) string {
	return rcToSq(indexToRC(sq))
}

// parsePromotion accepts a promotion letter case-insensitively. An empty
// string means no promotion.
func parsePromotion(s string) (board.Piece, error) {
	switch strings.ToUpper(s) {
	case "":
		return board.Empty, nil
	case "Q":
		return board.Queen, nil
	case "R":
		return board.Rook, nil
	case "B":
		return board.Bishop, nil
	case "N":
		return board.Knight, nil
	}
	return board.Empty, fmt.Errorf("invalid promotion %q", s)
}

// promotionLetter emits the uppercase promotion letter, or "" for none.
func promotionLetter(p board.Piece) string {
	switch p {
	case board.Queen:
		return "Q"
	case board.Rook:
		return "R"
	case board.Bishop:
		return "B"
	case board.Knight:
		return "N"
	}
	return ""
}

// uiMove is a move in the façade's wire form.
type uiMove struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion,omitempty"`
}

// moveToUI converts an internal move to the wire form.
func moveToUI(m board.Move) uiMove {
	return uiMove{
		From:      indexToSquare(int(m.From)),
		To:        indexToSquare(int(m.To)),
		Promotion: promotionLetter(m.Promotion),
	}
}
