package extract

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"

	. "github.com/cricklet/chessmates/internal/helpers"
	"github.com/notnil/chess"
)

// SplitGames cuts PGN text into one string per game. A new game starts at a tag line
// that follows a blank line.
func SplitGames(ctx context.Context, r io.Reader, games chan<- string) Error {
	sb := &strings.Builder{}
	isEmptyPrevLine := false

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "[") && isEmptyPrevLine && strings.TrimSpace(sb.String()) != "" {
			select {
			case <-ctx.Done():
				return Wrap(ctx.Err())
			case games <- sb.String():
				sb = &strings.Builder{}
			}
		}
		sb.WriteString(line)
		sb.WriteString("\n")
		isEmptyPrevLine = strings.TrimSpace(line) == ""
	}

	if strings.TrimSpace(sb.String()) != "" {
		select {
		case <-ctx.Done():
			return Wrap(ctx.Err())
		case games <- sb.String():
		}
	}

	return Wrap(scanner.Err())
}

func LoadGames(ctx context.Context, path string) ([]string, Error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, Wrap(err)
	}
	defer file.Close()

	return ReadGames(ctx, file)
}

func ReadGames(ctx context.Context, r io.Reader) ([]string, Error) {
	games := make(chan string)
	done := make(chan Error, 1)
	go func() {
		done <- SplitGames(ctx, r, games)
		close(games)
	}()

	result := []string{}
	for game := range games {
		result = append(result, game)
	}
	return result, <-done
}

type ParsedGame struct {
	Tags        map[string]string
	NumMoves    int
	FinalFen    string
	IsCheckmate bool
}

// ParseGame replays the moves of one PGN game and reports where it ended.
func ParseGame(text string) (ParsedGame, Error) {
	pgn, err := chess.PGN(strings.NewReader(text))
	if err != nil {
		return ParsedGame{}, Wrap(err)
	}
	g := chess.NewGame(pgn)

	tags := map[string]string{}
	for _, tag := range g.TagPairs() {
		tags[tag.Key] = tag.Value
	}

	final := g.Position()
	return ParsedGame{
		Tags:        tags,
		NumMoves:    len(g.Moves()),
		FinalFen:    final.String(),
		IsCheckmate: final.Status() == chess.Checkmate,
	}, NilError
}

func tagOr(tags map[string]string, key string, fallback string) string {
	if v, ok := tags[key]; ok && v != "" {
		return v
	}
	return fallback
}

// Provenance reads like "Carlsen vs Karjakin, World Championship, 2016".
func (g ParsedGame) Provenance() string {
	year := tagOr(g.Tags, "Date", "????")
	if len(year) > 4 {
		year = year[:4]
	}
	return tagOr(g.Tags, "White", "?") + " vs " + tagOr(g.Tags, "Black", "?") + ", " +
		tagOr(g.Tags, "Event", "?") + ", " + year
}
