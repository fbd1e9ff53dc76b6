package analysis

import (
	"fmt"

	. "github.com/cricklet/chessmates/internal/helpers"
)

// MissingKingError means the board has no king for the player; the position cannot
// be analyzed.
type MissingKingError struct {
	Player Player
}

func (e MissingKingError) Error() string {
	return fmt.Sprintf("no %v king on the board", e.Player)
}

type CheckingPiece struct {
	Square FileRank `json:"position"`
	Piece  Piece    `json:"piece"`
	// Distance is the Chebyshev distance to the king.
	Distance int `json:"distance"`
}

func FindKing(board *BoardArray, player Player) (FileRank, Error) {
	king := PieceForPlayer[player][King]
	for i, piece := range board {
		if piece == king {
			return FileRankFromIndex(i), NilError
		}
	}
	return FileRank{}, Wrap(MissingKingError{Player: player})
}

// FindCheckers lists every enemy piece attacking the king on kingSquare, in board
// index order. Callers that compare lists should sort them first.
func FindCheckers(board *BoardArray, kingSquare FileRank) []CheckingPiece {
	king := board.At(kingSquare)
	checkers := []CheckingPiece{}
	for i, piece := range board {
		if piece == XX || piece.Player() == king.Player() {
			continue
		}
		square := FileRankFromIndex(i)
		if Attacks(board, square, kingSquare) {
			checkers = append(checkers, CheckingPiece{
				Square:   square,
				Piece:    piece,
				Distance: Chebyshev(square, kingSquare),
			})
		}
	}
	return checkers
}
