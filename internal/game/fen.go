package game

import (
	"fmt"
	"strconv"
	"strings"

	. "github.com/cricklet/chessmates/internal/helpers"
)

func FenStringForPlayer(p Player) string {
	if p == White {
		return "w"
	} else {
		return "b"
	}
}

var fenStringForCastling = [2][2]string{
	{"K", "Q"},
	{"k", "q"},
}

func fenStringForCastlingAllowed(p Position) string {
	s := ""
	for _, player := range []Player{White, Black} {
		for _, side := range AllCastlingSides {
			if p.CanCastle(player, side) {
				s += fenStringForCastling[player][side]
			}
		}
	}
	if len(s) == 0 {
		s += "-"
	}
	return s
}

func fenStringForEnPassant(enPassant Optional[FileRank]) string {
	if enPassant.IsEmpty() {
		return "-"
	}
	return enPassant.Value().String()
}

func FenStringForBoard(b BoardArray) string {
	s := strings.Builder{}
	for rank := 7; rank >= 0; rank-- {
		numSpaces := 0
		for file := 0; file < 8; file++ {
			piece := b[IndexFromFileRank(FileRank{File: File(file), Rank: Rank(rank)})]
			if piece == XX {
				numSpaces++
				continue
			}
			if numSpaces > 0 {
				s.WriteString(strconv.Itoa(numSpaces))
				numSpaces = 0
			}
			s.WriteString(piece.String())
		}
		if numSpaces > 0 {
			s.WriteString(strconv.Itoa(numSpaces))
		}
		if rank != 0 {
			s.WriteString("/")
		}
	}
	return s.String()
}

func FenStringForPosition(p Position) string {
	return fmt.Sprintf("%v %v %v %v %v %v",
		FenStringForBoard(p.Board),
		FenStringForPlayer(p.Player),
		fenStringForCastlingAllowed(p),
		fenStringForEnPassant(p.EnPassantTarget),
		p.HalfMoveClock,
		p.FullMoveClock)
}

func boardFromFenString(boardStr string) (BoardArray, Error) {
	var board BoardArray

	ranks := strings.Split(boardStr, "/")
	if len(ranks) != 8 {
		return board, Errorf("expected 8 ranks, got %v in '%v'", len(ranks), boardStr)
	}

	for i, rankStr := range ranks {
		rank := Rank(7 - i)
		file := 0
		for _, c := range rankStr {
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			if file >= 8 {
				return board, Errorf("too many squares in rank %v of '%v'", rank, boardStr)
			}
			p, err := PieceFromRune(c)
			if !IsNil(err) {
				return board, Join(Errorf("rank %v of '%v'", rank, boardStr), err)
			}
			board[IndexFromFileRank(FileRank{File: File(file), Rank: rank})] = p
			file++
		}
		if file != 8 {
			return board, Errorf("rank %v of '%v' has %v squares", rank, boardStr, file)
		}
	}

	return board, NilError
}

// PositionFromFenString accepts 2, 4 or 6 fields; missing clocks default to "0 1".
func PositionFromFenString(s string) (Position, Error) {
	ss := strings.Fields(s)
	if len(ss) != 6 && len(ss) != 4 && len(ss) != 2 {
		return Position{}, Errorf("wrong num %v of fields in str '%v'", len(ss), s)
	}

	boardStr, playerString := ss[0], ss[1]

	board, err := boardFromFenString(boardStr)
	if !IsNil(err) {
		return Position{}, err
	}

	player, err := PlayerFromString(playerString)
	if !IsNil(err) {
		return Position{}, Join(Errorf("invalid player '%v' in '%v'", playerString, s), err)
	}

	castlingRightsString, enPassantTargetString := "-", "-"
	if len(ss) >= 4 {
		castlingRightsString, enPassantTargetString = ss[2], ss[3]
	}

	halfMoveClockString, fullMoveClockString := "0", "1"
	if len(ss) == 6 {
		halfMoveClockString, fullMoveClockString = ss[4], ss[5]
	}

	var playerAndCastlingSideAllowed [2][2]bool
	for _, c := range castlingRightsString {
		switch c {
		case '-':
			continue
		case 'K':
			playerAndCastlingSideAllowed[White][Kingside] = true
		case 'Q':
			playerAndCastlingSideAllowed[White][Queenside] = true
		case 'k':
			playerAndCastlingSideAllowed[Black][Kingside] = true
		case 'q':
			playerAndCastlingSideAllowed[Black][Queenside] = true
		default:
			return Position{}, Errorf("invalid castling rights '%v' in '%v'", castlingRightsString, s)
		}
	}

	enPassantTarget := Empty[FileRank]()
	if enPassantTargetString != "-" {
		v, err := FileRankFromString(enPassantTargetString)
		if !IsNil(err) {
			return Position{}, Join(Errorf("invalid en-passant target '%v' in '%v'", enPassantTargetString, s), err)
		}
		enPassantTarget = Some(v)
	}

	halfMoveClock, parseErr := strconv.Atoi(halfMoveClockString)
	if parseErr != nil {
		return Position{}, Join(Errorf("invalid half move clock '%v' in '%v'", halfMoveClockString, s), Wrap(parseErr))
	}

	fullMoveClock, parseErr := strconv.Atoi(fullMoveClockString)
	if parseErr != nil {
		return Position{}, Join(Errorf("invalid full move clock '%v' in '%v'", fullMoveClockString, s), Wrap(parseErr))
	}

	position := NewPosition(board, player)
	position.PlayerAndCastlingSideAllowed = playerAndCastlingSideAllowed
	position.EnPassantTarget = enPassantTarget
	position.HalfMoveClock = halfMoveClock
	position.FullMoveClock = fullMoveClock
	return position, NilError
}
