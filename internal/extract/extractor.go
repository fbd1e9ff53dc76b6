package extract

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sort"
	"sync"

	"github.com/cricklet/chessmates/internal/analysis"
	"github.com/cricklet/chessmates/internal/game"
	. "github.com/cricklet/chessmates/internal/helpers"
	"golang.org/x/sync/errgroup"
)

// Mate is one analyzed checkmate with the game it came from.
type Mate struct {
	From string `json:"from"`
	analysis.MateRecord
}

// GameFailure records a game that was skipped. Game is -1 when the whole file failed.
type GameFailure struct {
	File string
	Game int
	Err  Error
}

func (f GameFailure) String() string {
	if f.Game < 0 {
		return fmt.Sprintf("%v: %v", f.File, f.Err.Error())
	}
	return fmt.Sprintf("%v game %v: %v", f.File, f.Game+1, f.Err.Error())
}

type Result struct {
	Games    int
	Mates    []Mate
	Failures []GameFailure
}

type Extractor struct {
	logger   Logger
	workers  int
	progress func(total int) ProgressBar
	options  []analysis.AnalysisOption
}

type ExtractorOption func(*Extractor)

func WithLogger(logger Logger) ExtractorOption {
	return func(e *Extractor) {
		e.logger = logger
	}
}

func WithWorkers(workers int) ExtractorOption {
	return func(e *Extractor) {
		e.workers = workers
	}
}

func WithProgress(create func(total int) ProgressBar) ExtractorOption {
	return func(e *Extractor) {
		e.progress = create
	}
}

// WithSquareSafety also reports analysis.SafeVacatedNeighbors for every mate.
func WithSquareSafety() ExtractorOption {
	return func(e *Extractor) {
		e.options = append(e.options, analysis.WithSquareSafety())
	}
}

func NewExtractor(options ...ExtractorOption) *Extractor {
	e := &Extractor{}
	for _, o := range options {
		o(e)
	}
	if e.logger == nil {
		e.logger = &DefaultLogger
	}
	if e.workers <= 0 {
		e.workers = runtime.NumCPU()
	}
	if e.progress == nil {
		e.progress = func(int) ProgressBar { return NoProgress }
	}
	return e
}

type gameText struct {
	file  string
	index int
	text  string
}

// Run analyzes every checkmate in the given PGN files. A game that cannot be read or
// analyzed is recorded in Result.Failures and the batch carries on; only cancellation
// of ctx stops it early.
func (e *Extractor) Run(ctx context.Context, files []string) (Result, Error) {
	result := Result{}

	texts := []gameText{}
	for _, file := range files {
		games, err := LoadGames(ctx, file)
		if !IsNil(err) {
			if ctx.Err() != nil {
				return result, Wrap(ctx.Err())
			}
			e.logger.Println("skipping", file, err)
			result.Failures = append(result.Failures, GameFailure{File: file, Game: -1, Err: err})
			continue
		}
		for i, text := range games {
			texts = append(texts, gameText{file, i, text})
		}
	}

	return e.analyzeAll(ctx, files, texts, result)
}

// RunReader is Run for PGN text that is not in a file. name is used in failures.
func (e *Extractor) RunReader(ctx context.Context, name string, r io.Reader) (Result, Error) {
	games, err := ReadGames(ctx, r)
	if !IsNil(err) {
		return Result{}, err
	}
	texts := MapSlice(games, func(text string) gameText {
		return gameText{file: name, text: text}
	})
	for i := range texts {
		texts[i].index = i
	}
	return e.analyzeAll(ctx, []string{name}, texts, Result{})
}

func (e *Extractor) analyzeAll(ctx context.Context, files []string, texts []gameText, result Result) (Result, Error) {
	lock := sync.Mutex{}
	result.Games = len(texts)

	progress := e.progress(len(texts))
	defer progress.Close()

	mates := make([]*Mate, len(texts))

	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i := range texts {
		i := i
		if groupCtx.Err() != nil {
			break
		}
		g.Go(func() error {
			if groupCtx.Err() != nil {
				return groupCtx.Err()
			}
			defer progress.Add(1)

			mate, err := e.analyzeGame(texts[i])
			if !IsNil(err) {
				failure := GameFailure{File: texts[i].file, Game: texts[i].index, Err: err}
				e.logger.Println("skipping", failure)
				AppendSafe(&lock, &result.Failures, failure)
				return nil
			}
			if mate.HasValue() {
				m := mate.Value()
				mates[i] = &m
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return result, Wrap(err)
	}
	if ctx.Err() != nil {
		return result, Wrap(ctx.Err())
	}

	fileOrder := map[string]int{}
	for i, file := range files {
		if _, ok := fileOrder[file]; !ok {
			fileOrder[file] = i
		}
	}
	sort.SliceStable(result.Failures, func(i, j int) bool {
		a, b := result.Failures[i], result.Failures[j]
		if fileOrder[a.File] != fileOrder[b.File] {
			return fileOrder[a.File] < fileOrder[b.File]
		}
		return a.Game < b.Game
	})

	for _, m := range mates {
		if m != nil {
			result.Mates = append(result.Mates, *m)
		}
	}
	return result, NilError
}

func (e *Extractor) analyzeGame(text gameText) (mate Optional[Mate], err Error) {
	defer func() {
		if r := recover(); r != nil {
			mate, err = Empty[Mate](), Errorf("panic: %v", r)
		}
	}()

	parsed, err := ParseGame(text.text)
	if !IsNil(err) {
		return Empty[Mate](), err
	}
	if !parsed.IsCheckmate {
		return Empty[Mate](), NilError
	}

	confirmed, err := VerifyCheckmate(parsed.FinalFen)
	if !IsNil(err) {
		return Empty[Mate](), err
	}
	if !confirmed {
		e.logger.Printf("%v game %v: move generators disagree about mate in '%v'", text.file, text.index+1, parsed.FinalFen)
		return Empty[Mate](), NilError
	}

	position, err := game.PositionFromFenString(parsed.FinalFen)
	if !IsNil(err) {
		return Empty[Mate](), err
	}
	record, err := analysis.BuildAnalysis(position, e.options...)
	if !IsNil(err) {
		return Empty[Mate](), err
	}

	return Some(Mate{From: parsed.Provenance(), MateRecord: record}), NilError
}
