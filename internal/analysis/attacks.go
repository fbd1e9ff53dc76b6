package analysis

import (
	. "github.com/cricklet/chessmates/internal/helpers"
)

type attackRule func(board *BoardArray, from FileRank, to FileRank) bool

// attackRules is indexed by PieceType.
var attackRules = [6]attackRule{
	Rook:   rookAttacks,
	Knight: knightAttacks,
	Bishop: bishopAttacks,
	King:   kingAttacks,
	Queen:  queenAttacks,
	Pawn:   pawnAttacks,
}

// Attacks reports whether the piece on from geometrically attacks to. Whatever
// stands on to is ignored, so an attack on a friendly piece still counts.
func Attacks(board *BoardArray, from FileRank, to FileRank) bool {
	piece := board.At(from)
	pieceType := piece.PieceType()
	if !pieceType.IsValid() || from == to {
		return false
	}
	return attackRules[pieceType](board, from, to)
}

var pawnAttackOffsets = [2][2][2]int{
	White: {{-1, 1}, {1, 1}},
	Black: {{-1, -1}, {1, -1}},
}

func pawnAttacks(board *BoardArray, from FileRank, to FileRank) bool {
	player := board.At(from).Player()
	for _, offset := range pawnAttackOffsets[player] {
		if target, ok := from.Offset(offset[0], offset[1]); ok && target == to {
			return true
		}
	}
	return false
}

var knightOffsets = [8][2]int{
	{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2},
	{1, -2}, {1, 2}, {2, -1}, {2, 1},
}

func knightAttacks(board *BoardArray, from FileRank, to FileRank) bool {
	df, dr := Delta(from, to)
	for _, offset := range knightOffsets {
		if offset[0] == df && offset[1] == dr {
			return true
		}
	}
	return false
}

func bishopAttacks(board *BoardArray, from FileRank, to FileRank) bool {
	return onDiagonal(from, to) && RayClear(board, from, to)
}

func rookAttacks(board *BoardArray, from FileRank, to FileRank) bool {
	return onRankOrFile(from, to) && RayClear(board, from, to)
}

func queenAttacks(board *BoardArray, from FileRank, to FileRank) bool {
	return rookAttacks(board, from, to) || bishopAttacks(board, from, to)
}

func kingAttacks(board *BoardArray, from FileRank, to FileRank) bool {
	return Chebyshev(from, to) <= 1
}

func onDiagonal(a FileRank, b FileRank) bool {
	df, dr := Delta(a, b)
	return df != 0 && Abs(df) == Abs(dr)
}

func onRankOrFile(a FileRank, b FileRank) bool {
	return a != b && (a.File == b.File || a.Rank == b.Rank)
}

// Aligned is true when a and b are distinct and share a rank, file or diagonal.
func Aligned(a FileRank, b FileRank) bool {
	return onRankOrFile(a, b) || onDiagonal(a, b)
}

// SquaresBetween walks from a towards b, excluding both ends. Squares that are not
// aligned have nothing between them.
func SquaresBetween(a FileRank, b FileRank) []FileRank {
	if !Aligned(a, b) {
		return nil
	}
	df, dr := Delta(a, b)
	stepFile, stepRank := Sign(df), Sign(dr)

	result := make([]FileRank, 0, Chebyshev(a, b)-1)
	current, _ := a.Offset(stepFile, stepRank)
	for current != b {
		result = append(result, current)
		current, _ = current.Offset(stepFile, stepRank)
	}
	return result
}

// RayClear is true when no square strictly between from and to is occupied.
func RayClear(board *BoardArray, from FileRank, to FileRank) bool {
	for _, square := range SquaresBetween(from, to) {
		if board.At(square) != XX {
			return false
		}
	}
	return true
}

// IsSquareAttacked reports whether any piece of byPlayer attacks square.
func IsSquareAttacked(board *BoardArray, square FileRank, byPlayer Player) bool {
	for i, piece := range board {
		if piece == XX || piece.Player() != byPlayer {
			continue
		}
		if Attacks(board, FileRankFromIndex(i), square) {
			return true
		}
	}
	return false
}
