package analysis

import (
	"sort"
	"testing"

	"github.com/cricklet/chessmates/internal/game"
	. "github.com/cricklet/chessmates/internal/helpers"
	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
)

func pp(t any) string {
	return spew.Sdump(t)
}

func positionFromFen(t *testing.T, fen string) game.Position {
	position, err := game.PositionFromFenString(fen)
	if !IsNil(err) {
		t.Fatalf("parsing %v: %v", fen, err)
	}
	return position
}

func boardFromRanks(t *testing.T, ranks ...string) BoardArray {
	board, err := game.BoardFromRanks([8]string(ranks))
	if !IsNil(err) {
		t.Fatalf("parsing %v: %v", ranks, err)
	}
	return board
}

func sortedByPiece(checkers []CheckingPiece) []CheckingPiece {
	result := append([]CheckingPiece{}, checkers...)
	sort.Slice(result, func(i, j int) bool {
		return result[i].Piece.String() < result[j].Piece.String()
	})
	return result
}

func squares(ss ...string) []FileRank {
	return MapSlice(ss, Sq)
}

func assertSquares(t *testing.T, expected []FileRank, actual []FileRank) {
	t.Helper()
	assert.Equal(t, expected, actual, pp(actual))
}
