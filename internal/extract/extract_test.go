package extract

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/cricklet/chessmates/internal/helpers"
	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
)

func pp(t any) string {
	return spew.Sdump(t)
}

var matesPgn = filepath.Join("testdata", "mates.pgn")

func TestReadGames(t *testing.T) {
	games, err := LoadGames(context.Background(), matesPgn)
	assert.True(t, IsNil(err))
	assert.Len(t, games, 4)
	assert.True(t, strings.HasPrefix(games[0], `[Event "Casual"]`))
	assert.Contains(t, games[3], "Qxf7#")
}

func TestReadGamesWithoutBlankLines(t *testing.T) {
	games, err := ReadGames(context.Background(), strings.NewReader("1. e4 e5 *\n"))
	assert.True(t, IsNil(err))
	assert.Equal(t, []string{"1. e4 e5 *\n"}, games)

	games, err = ReadGames(context.Background(), strings.NewReader("\n\n"))
	assert.True(t, IsNil(err))
	assert.Empty(t, games)
}

func TestParseGame(t *testing.T) {
	games, err := LoadGames(context.Background(), matesPgn)
	assert.True(t, IsNil(err))

	parsed, err := ParseGame(games[0])
	assert.True(t, IsNil(err))
	assert.True(t, parsed.IsCheckmate)
	assert.Equal(t, 4, parsed.NumMoves)
	assert.True(t, strings.HasPrefix(parsed.FinalFen, "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w "), parsed.FinalFen)
	assert.Equal(t, "Alice vs Bob, Casual, 2021", parsed.Provenance())

	parsed, err = ParseGame(games[1])
	assert.True(t, IsNil(err))
	assert.False(t, parsed.IsCheckmate)

	_, err = ParseGame(games[2])
	assert.False(t, IsNil(err))
}

func TestProvenanceWithMissingTags(t *testing.T) {
	parsed := ParsedGame{Tags: map[string]string{"White": "Anand"}}
	assert.Equal(t, "Anand vs ?, ?, ????", parsed.Provenance())
}

func TestVerifyCheckmate(t *testing.T) {
	mate, err := VerifyCheckmate("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	assert.True(t, IsNil(err))
	assert.True(t, mate)

	mate, err = VerifyCheckmate("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	assert.True(t, IsNil(err))
	assert.False(t, mate)

	// stalemate
	mate, err = VerifyCheckmate("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	assert.True(t, IsNil(err))
	assert.False(t, mate)
}

func TestExtractorRun(t *testing.T) {
	extractor := NewExtractor(WithLogger(&SilentLogger), WithWorkers(2))
	result, err := extractor.Run(context.Background(), []string{matesPgn, filepath.Join("testdata", "missing.pgn")})
	assert.True(t, IsNil(err))

	assert.Equal(t, 4, result.Games)
	assert.Len(t, result.Mates, 2, pp(result.Mates))
	assert.Len(t, result.Failures, 2, pp(result.Failures))

	fools := result.Mates[0]
	assert.Equal(t, "Alice vs Bob, Casual, 2021", fools.From)
	assert.Equal(t, []FileRank{Sq("g3"), Sq("f2")}, fools.Analysis.BlockingSquares)
	assert.Equal(t, []FileRank{Sq("h4")}, fools.Analysis.CapturableCheckers)
	assert.Equal(t, []FileRank{Sq("d1"), Sq("d2"), Sq("e2"), Sq("f1")}, fools.Analysis.RemovableNeighbors)

	scholars := result.Mates[1]
	assert.Equal(t, "Grace vs Heidi, Club Blitz, 2019", scholars.From)
	assert.True(t, strings.HasPrefix(scholars.Mate, "r1bqkb1r/pppp1Qpp/2n2n2/4p3/2B1P3/8/PPPP1PPP/RNB1K1NR b "), scholars.Mate)
	assert.Equal(t, []FileRank{}, scholars.Analysis.BlockingSquares)
	assert.Equal(t, []FileRank{Sq("f7")}, scholars.Analysis.CapturableCheckers)
	assert.Equal(t, []FileRank{Sq("d7"), Sq("d8"), Sq("f8")}, scholars.Analysis.RemovableNeighbors)

	assert.Equal(t, matesPgn, result.Failures[0].File)
	assert.Equal(t, 2, result.Failures[0].Game)
	assert.Equal(t, -1, result.Failures[1].Game)
}

func TestExtractorIsDeterministic(t *testing.T) {
	files := []string{matesPgn, matesPgn}

	serial, err := NewExtractor(WithLogger(&SilentLogger), WithWorkers(1), WithSquareSafety()).Run(context.Background(), files)
	assert.True(t, IsNil(err))
	parallel, err := NewExtractor(WithLogger(&SilentLogger), WithWorkers(8), WithSquareSafety()).Run(context.Background(), files)
	assert.True(t, IsNil(err))

	assert.Len(t, serial.Mates, 4)
	assert.Equal(t, serial.Mates, parallel.Mates)
	assert.Equal(t, len(serial.Failures), len(parallel.Failures))
	assert.NotNil(t, serial.Mates[0].Analysis.SafeVacatedNeighbors)
}

func TestExtractorProgress(t *testing.T) {
	total, ticks, closed := 0, 0, false
	progress := func(n int) ProgressBar {
		total = n
		return ProgressBar{
			Set:   func(int) {},
			Add:   func(i int) { ticks += i },
			Close: func() { closed = true },
		}
	}

	_, err := NewExtractor(WithLogger(&SilentLogger), WithWorkers(1), WithProgress(progress)).Run(context.Background(), []string{matesPgn})
	assert.True(t, IsNil(err))
	assert.Equal(t, 4, total)
	assert.Equal(t, 4, ticks)
	assert.True(t, closed)
}

func TestExtractorCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewExtractor(WithLogger(&SilentLogger)).Run(ctx, []string{matesPgn})
	assert.False(t, IsNil(err))
}

func TestMateJSON(t *testing.T) {
	result, err := NewExtractor(WithLogger(&SilentLogger)).Run(context.Background(), []string{matesPgn})
	assert.True(t, IsNil(err))

	bytes, jsonErr := json.Marshal(result.Mates[1])
	assert.NoError(t, jsonErr)

	decoded := map[string]any{}
	assert.NoError(t, json.Unmarshal(bytes, &decoded))
	assert.Equal(t, "Grace vs Heidi, Club Blitz, 2019", decoded["from"])
	assert.Contains(t, decoded, "mate")
	assert.Contains(t, decoded, "analysis")
}

func TestExtractorRunReader(t *testing.T) {
	pgn := `[Event "Casual"]
[White "Alice"]
[Black "Bob"]
[Date "2021.03.04"]

1. f3 e5 2. g4 Qh4# 0-1
`
	result, err := NewExtractor(WithLogger(&SilentLogger)).RunReader(context.Background(), "upload", strings.NewReader(pgn))
	assert.True(t, IsNil(err))
	assert.Equal(t, 1, result.Games)
	assert.Len(t, result.Mates, 1)
	assert.Equal(t, "Alice vs Bob, Casual, 2021", result.Mates[0].From)
	assert.Empty(t, result.Failures)
}
