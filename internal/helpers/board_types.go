package helpers

import (
	"fmt"
	"strconv"
)

type File uint
type Rank uint

// FileRank is a square: file 0..7 maps to 'a'..'h', rank 0..7 maps to '1'..'8'.
type FileRank struct {
	File File
	Rank Rank
}

type Player uint

const (
	White Player = iota
	Black
)

var _playerStrings = [2]string{
	"white", "black",
}

func (p Player) String() string {
	return _playerStrings[p]
}

func (p Player) Other() Player {
	return 1 - p
}

type Piece uint

const (
	XX Piece = iota
	WR
	WN
	WB
	WK
	WQ
	WP
	BR
	BN
	BB
	BK
	BQ
	BP
)

type PieceType uint

const (
	Rook PieceType = iota
	Knight
	Bishop
	King
	Queen
	Pawn
	InvalidPiece
)

func (p PieceType) String() string {
	return [7]string{
		"r", "n", "b", "k", "q", "p", "?",
	}[p]
}

func (p PieceType) IsValid() bool {
	return p >= Rook && p <= Pawn
}

// IsSliding is true for the pieces that attack along unobstructed rays.
func (p PieceType) IsSliding() bool {
	return p == Rook || p == Bishop || p == Queen
}

func (f File) String() string {
	return [8]string{
		"a", "b", "c", "d", "e", "f", "g", "h",
	}[f]
}

func (r Rank) String() string {
	return [8]string{
		"1", "2", "3", "4", "5", "6", "7", "8",
	}[r]
}

func RankFromChar(c byte) (Rank, Error) {
	rank := int(c) - '1'
	if rank < 0 || rank >= 8 {
		return 0, Errorf("rank invalid %q", c)
	}
	return Rank(rank), NilError
}

func FileFromChar(c byte) (File, Error) {
	file := int(c) - 'a'
	if file < 0 || file >= 8 {
		return 0, Errorf("file invalid %q", c)
	}
	return File(file), NilError
}

func (v FileRank) String() string {
	return v.File.String() + v.Rank.String()
}

func (v FileRank) IsValid() bool {
	return v.File < 8 && v.Rank < 8
}

// Offset returns the square df files and dr ranks away, and whether it is on the board.
func (v FileRank) Offset(df int, dr int) (FileRank, bool) {
	f := int(v.File) + df
	r := int(v.Rank) + dr
	if f < 0 || f >= 8 || r < 0 || r >= 8 {
		return FileRank{}, false
	}
	return FileRank{File(f), Rank(r)}, true
}

// MarshalJSON writes a square as [file, rank].
func (v FileRank) MarshalJSON() ([]byte, error) {
	return []byte("[" + strconv.Itoa(int(v.File)) + "," + strconv.Itoa(int(v.Rank)) + "]"), nil
}

func FileRankFromString(s string) (FileRank, Error) {
	if len(s) != 2 {
		return FileRank{}, Errorf("invalid location %v", s)
	}

	file, fileErr := FileFromChar(s[0])
	rank, rankErr := RankFromChar(s[1])

	if !IsNil(fileErr) || !IsNil(rankErr) {
		return FileRank{}, Join(Errorf("invalid location %v", s), fileErr, rankErr)
	}

	return FileRank{file, rank}, NilError
}

func PlayerFromString(c string) (Player, Error) {
	switch c {
	case "b":
		return Black, NilError
	case "w":
		return White, NilError
	default:
		return White, Errorf("invalid player char %v", c)
	}
}

var PieceTypeLookup [16]PieceType = func() [16]PieceType {
	result := [16]PieceType{}
	for i := range result {
		result[i] = InvalidPiece
	}
	result[WR] = Rook
	result[WN] = Knight
	result[WB] = Bishop
	result[WK] = King
	result[WQ] = Queen
	result[WP] = Pawn
	result[BR] = Rook
	result[BN] = Knight
	result[BB] = Bishop
	result[BK] = King
	result[BQ] = Queen
	result[BP] = Pawn
	return result
}()

func (p Piece) PieceType() PieceType {
	if p >= 16 {
		return InvalidPiece
	}
	return PieceTypeLookup[p]
}

func (p Piece) IsValid() bool {
	return p.PieceType().IsValid()
}

func (p Piece) Player() Player {
	if p < BR {
		return White
	}
	return Black
}

var PieceForPlayer [2][8]Piece = func() [2][8]Piece {
	result := [2][8]Piece{}

	result[White][Rook] = WR
	result[White][Knight] = WN
	result[White][Bishop] = WB
	result[White][King] = WK
	result[White][Queen] = WQ
	result[White][Pawn] = WP

	result[Black][Rook] = BR
	result[Black][Knight] = BN
	result[Black][Bishop] = BB
	result[Black][King] = BK
	result[Black][Queen] = BQ
	result[Black][Pawn] = BP

	return result
}()

// InvalidPieceCodeError is returned when a square holds something outside {PNBRQK pnbrqk}.
type InvalidPieceCodeError struct {
	Code string
}

func (e InvalidPieceCodeError) Error() string {
	return fmt.Sprintf("invalid piece code %q", e.Code)
}

func PieceFromRune(c rune) (Piece, Error) {
	switch c {
	case 'R':
		return WR, NilError
	case 'N':
		return WN, NilError
	case 'B':
		return WB, NilError
	case 'K':
		return WK, NilError
	case 'Q':
		return WQ, NilError
	case 'P':
		return WP, NilError
	case 'r':
		return BR, NilError
	case 'n':
		return BN, NilError
	case 'b':
		return BB, NilError
	case 'k':
		return BK, NilError
	case 'q':
		return BQ, NilError
	case 'p':
		return BP, NilError
	default:
		return XX, Wrap(InvalidPieceCodeError{Code: string(c)})
	}
}

var _pieceStrings = [13]string{
	" ",
	"R",
	"N",
	"B",
	"K",
	"Q",
	"P",
	"r",
	"n",
	"b",
	"k",
	"q",
	"p",
}

func (p Piece) String() string {
	if p >= Piece(len(_pieceStrings)) {
		return "?"
	}
	return _pieceStrings[p]
}

// MarshalJSON writes the FEN letter of the piece.
func (p Piece) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(p.String())), nil
}

// BoardArray is indexed a1 = 0, b1 = 1, ... h8 = 63.
type BoardArray [64]Piece

func (b BoardArray) String() string {
	result := ""
	for rank := 7; rank >= 0; rank-- {
		row := b[rank*8 : (rank+1)*8]
		for _, p := range row {
			result += p.String()
		}
		if rank != 0 {
			result += "\n"
		}
	}
	return result
}

func (b *BoardArray) At(location FileRank) Piece {
	return b[IndexFromFileRank(location)]
}

// Without returns a copy of the board with location emptied. The receiver is untouched.
func (b *BoardArray) Without(location FileRank) BoardArray {
	masked := *b
	masked[IndexFromFileRank(location)] = XX
	return masked
}

// Validate fails closed on any square holding an unknown piece code.
func (b *BoardArray) Validate() Error {
	for i, p := range b {
		if p != XX && !p.IsValid() {
			return Join(
				Errorf("square %v", StringFromBoardIndex(i)),
				Wrap(InvalidPieceCodeError{Code: fmt.Sprint(uint(p))}))
		}
	}
	return NilError
}

func IndexFromFileRank(location FileRank) int {
	if !location.IsValid() {
		panic(fmt.Sprintf("square off board: file %d rank %d", location.File, location.Rank))
	}
	return int(location.Rank)*8 + int(location.File)
}

func FileRankFromIndex(index int) FileRank {
	f := File(index & 0b111)
	r := Rank(index >> 3)
	return FileRank{f, r}
}

func StringFromBoardIndex(index int) string {
	return FileRankFromIndex(index).String()
}

func BoardIndexFromString(s string) int {
	location, err := FileRankFromString(s)
	if !IsNil(err) {
		panic(err)
	}
	return IndexFromFileRank(location)
}

// Sq is FileRankFromString for literals known to be valid, e.g. Sq("e4").
func Sq(s string) FileRank {
	return FileRankFromIndex(BoardIndexFromString(s))
}

type CastlingSide int

const (
	Kingside CastlingSide = iota
	Queenside
)

var AllCastlingSides = [2]CastlingSide{Kingside, Queenside}
