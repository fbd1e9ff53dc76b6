package analysis

import (
	. "github.com/cricklet/chessmates/internal/helpers"
)

var kingOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1},
}

// BlockingSquares lists the empty squares a piece could be interposed on, from the
// checker towards the king. Only a lone, non-adjacent, sliding checker can be blocked.
func BlockingSquares(checkers []CheckingPiece, kingSquare FileRank) []FileRank {
	if len(checkers) != 1 {
		return []FileRank{}
	}
	checker := checkers[0]
	if Chebyshev(checker.Square, kingSquare) == 1 {
		return []FileRank{}
	}
	if checker.Piece.PieceType() == Knight {
		return []FileRank{}
	}

	squares := SquaresBetween(checker.Square, kingSquare)
	if squares == nil {
		return []FileRank{}
	}
	return squares
}

// CapturableCheckers is the square of a lone checker. It is a candidate only; nothing
// checks that a capture is legal.
func CapturableCheckers(checkers []CheckingPiece, kingSquare FileRank) []FileRank {
	if len(checkers) != 1 {
		return []FileRank{}
	}
	return []FileRank{checkers[0].Square}
}

func friendlyNeighbors(board *BoardArray, kingSquare FileRank) []FileRank {
	king := board.At(kingSquare)
	if king.PieceType() != King {
		return []FileRank{}
	}

	result := []FileRank{}
	for _, offset := range kingOffsets {
		square, ok := kingSquare.Offset(offset[0], offset[1])
		if !ok {
			continue
		}
		piece := board.At(square)
		if piece == XX || piece.Player() != king.Player() {
			continue
		}
		result = append(result, square)
	}
	return result
}

// RemovableNeighbors lists the king's own pieces next to it that are free to move
// away, i.e. not pinned to the king.
func RemovableNeighbors(board *BoardArray, kingSquare FileRank) []FileRank {
	return FilterSlice(friendlyNeighbors(board, kingSquare), func(square FileRank) bool {
		return !IsPinned(board, square, kingSquare)
	})
}

// SafeVacatedNeighbors lists the king's own pieces next to it whose square would not
// be attacked by the enemy once the piece is gone. This is square safety, a different
// property from RemovableNeighbors. The board is never modified: each probe runs on a
// masked copy.
func SafeVacatedNeighbors(board *BoardArray, kingSquare FileRank) []FileRank {
	enemy := board.At(kingSquare).Player().Other()
	return FilterSlice(friendlyNeighbors(board, kingSquare), func(square FileRank) bool {
		masked := board.Without(square)
		return !IsSquareAttacked(&masked, square, enemy)
	})
}
