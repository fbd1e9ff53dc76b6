package analysis

import (
	. "github.com/cricklet/chessmates/internal/helpers"
)

// IsPinned reports whether the piece on pieceSquare shields kingSquare from an enemy
// slider: slider, piece and king on one line, the piece strictly between, and
// nothing else on either stretch of the line. Any slider counts on any line, so a rook
// on a diagonal pins too.
func IsPinned(board *BoardArray, pieceSquare FileRank, kingSquare FileRank) bool {
	piece := board.At(pieceSquare)
	if piece == XX {
		return false
	}

	for i, pinner := range board {
		if pinner == XX || pinner.Player() == piece.Player() {
			continue
		}
		if !pinner.PieceType().IsSliding() {
			continue
		}

		pinnerSquare := FileRankFromIndex(i)
		if !collinear(pinnerSquare, pieceSquare, kingSquare) {
			continue
		}
		if !strictlyBetween(pieceSquare, pinnerSquare, kingSquare) {
			continue
		}
		if RayClear(board, pinnerSquare, pieceSquare) && RayClear(board, pieceSquare, kingSquare) {
			return true
		}
	}
	return false
}

// collinear checks all three pairs, not only the endpoints.
func collinear(a FileRank, b FileRank, c FileRank) bool {
	sameFile := a.File == b.File && b.File == c.File
	sameRank := a.Rank == b.Rank && b.Rank == c.Rank
	sameDiagonal := onDiagonal(a, b) && onDiagonal(b, c) && onDiagonal(a, c)
	return sameFile || sameRank || sameDiagonal
}

func strictlyBetween(test FileRank, a FileRank, b FileRank) bool {
	if test == a || test == b {
		return false
	}
	return Chebyshev(a, test)+Chebyshev(test, b) == Chebyshev(a, b)
}
