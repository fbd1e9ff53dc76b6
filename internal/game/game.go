package game

import (
	. "github.com/cricklet/chessmates/internal/helpers"
)

// Position is a board snapshot plus the state a FEN string carries. Only Board and
// Player are read by analysis; the rest is kept so the position can be written back.
type Position struct {
	Board                        BoardArray
	Player                       Player
	PlayerAndCastlingSideAllowed [2][2]bool
	EnPassantTarget              Optional[FileRank]
	HalfMoveClock                int
	FullMoveClock                int
}

func NewPosition(board BoardArray, player Player) Position {
	return Position{
		Board:         board,
		Player:        player,
		FullMoveClock: 1,
	}
}

func (p Position) CanCastle(player Player, side CastlingSide) bool {
	return p.PlayerAndCastlingSideAllowed[player][side]
}

// BoardFromRanks reads eight rows, rank 8 first, with '.' for an empty square.
func BoardFromRanks(ranks [8]string) (BoardArray, Error) {
	board := BoardArray{}
	for i, row := range ranks {
		if len(row) != 8 {
			return BoardArray{}, Errorf("rank %v has %v squares, wants 8: %q", 8-i, len(row), row)
		}
		rank := Rank(7 - i)
		for file, c := range row {
			if c == '.' {
				continue
			}
			piece, err := PieceFromRune(c)
			if !IsNil(err) {
				return BoardArray{}, Join(Errorf("rank %v", rank), err)
			}
			board[IndexFromFileRank(FileRank{File: File(file), Rank: rank})] = piece
		}
	}
	return board, NilError
}
