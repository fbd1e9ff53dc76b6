package game

import (
	"errors"
	"testing"

	. "github.com/cricklet/chessmates/internal/helpers"
	"github.com/stretchr/testify/assert"
)

func TestFenRoundTrip(t *testing.T) {
	fens := []string{
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		"8/3R3N/3Q4/5k2/4p1P1/6K1/8/8 b - - 0 60",
		"5R2/1p6/p1q3Pr/8/1P6/P7/1KQ1pk2/8 b - - 0 60",
		"r3rkR1/1p1b3Q/8/pP1nq1p1/P1p5/4P3/3PN1PP/R5K1 b - - 7 31",
		"3r2k1/pp2pp1p/4b1p1/q3P3/8/8/PQ2BPPP/R1r1K2R w KQ - 4 19",
	}
	for _, fen := range fens {
		position, err := PositionFromFenString(fen)
		assert.True(t, IsNil(err), fen)
		assert.Equal(t, fen, FenStringForPosition(position))
	}
}

func TestFenFields(t *testing.T) {
	position, err := PositionFromFenString("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
	assert.True(t, IsNil(err))

	assert.Equal(t, Black, position.Player)
	assert.Equal(t, WR, position.Board.At(Sq("a1")))
	assert.Equal(t, WP, position.Board.At(Sq("e4")))
	assert.Equal(t, BQ, position.Board.At(Sq("d8")))
	assert.Equal(t, XX, position.Board.At(Sq("e2")))
	assert.True(t, position.CanCastle(White, Kingside))
	assert.True(t, position.CanCastle(Black, Queenside))
	assert.Equal(t, Sq("e3"), position.EnPassantTarget.Value())
}

func TestShortFen(t *testing.T) {
	position, err := PositionFromFenString("8/8/8/8/8/8/8/K6k w")
	assert.True(t, IsNil(err))
	assert.Equal(t, "8/8/8/8/8/8/8/K6k w - - 0 1", FenStringForPosition(position))
}

func TestInvalidFen(t *testing.T) {
	invalid := []string{
		"",
		"8/8/8/8/8/8/8 w - - 0 1",
		"8/8/8/8/8/8/8/9 w - - 0 1",
		"8/8/8/8/8/8/8/K6kk w - - 0 1",
		"8/8/8/8/8/8/8/K6k x - - 0 1",
		"8/8/8/8/8/8/8/K6k w X - 0 1",
		"8/8/8/8/8/8/8/K6k w - z9 0 1",
		"8/8/8/8/8/8/8/K6k w - - a 1",
	}
	for _, fen := range invalid {
		_, err := PositionFromFenString(fen)
		assert.False(t, IsNil(err), fen)
	}
}

func TestFenInvalidPieceCode(t *testing.T) {
	_, err := PositionFromFenString("8/8/8/3x4/8/8/8/K6k w - - 0 1")
	assert.False(t, IsNil(err))

	var invalid InvalidPieceCodeError
	assert.True(t, errors.As(err, &invalid))
	assert.Equal(t, "x", invalid.Code)
}

func TestBoardFromRanks(t *testing.T) {
	board, err := BoardFromRanks([8]string{
		"...k....",
		"........",
		"...b....",
		"...R....",
		"........",
		"........",
		"........",
		"....K...",
	})
	assert.True(t, IsNil(err))
	assert.Equal(t, BK, board.At(Sq("d8")))
	assert.Equal(t, BB, board.At(Sq("d6")))
	assert.Equal(t, WR, board.At(Sq("d5")))
	assert.Equal(t, WK, board.At(Sq("e1")))
	assert.Equal(t, "3k4/8/3b4/3R4/8/8/8/4K3", FenStringForBoard(board))

	_, err = BoardFromRanks([8]string{"...k...", "", "", "", "", "", "", ""})
	assert.False(t, IsNil(err))

	_, err = BoardFromRanks([8]string{
		"...k....", "........", "........", "...?....",
		"........", "........", "........", "....K...",
	})
	var invalid InvalidPieceCodeError
	assert.True(t, errors.As(err, &invalid))
}
