package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/cricklet/chessmates/internal/analysis"
	"github.com/cricklet/chessmates/internal/extract"
	. "github.com/cricklet/chessmates/internal/helpers"
	"github.com/cricklet/chessmates/internal/render"
	"github.com/dustin/go-humanize"
	"github.com/pkg/profile"
	"golang.org/x/term"
)

const usage = `usage:
  mates extract [profile] [safety] [workers=N] <pgn>...
  mates analyze [safety] <fen>
  mates svg <fen>`

type settings struct {
	safety  bool
	workers int
	rest    []string
}

func settingsFromArgs(args []string) (settings, Error) {
	result := settings{}
	for _, arg := range args {
		if arg == "safety" {
			result.safety = true
		} else if value, ok := strings.CutPrefix(arg, "workers="); ok {
			workers, err := strconv.Atoi(value)
			if err != nil || workers <= 0 {
				return result, Errorf("invalid worker count '%v'", value)
			}
			result.workers = workers
		} else {
			result.rest = append(result.rest, arg)
		}
	}
	return result, NilError
}

func (s settings) analysisOptions() []analysis.AnalysisOption {
	if s.safety {
		return []analysis.AnalysisOption{analysis.WithSquareSafety()}
	}
	return nil
}

func printJSON(v any) Error {
	bytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return Wrap(err)
	}
	fmt.Println(string(bytes))
	return NilError
}

func runExtract(s settings) Error {
	if len(s.rest) == 0 {
		return Errorf("no pgn files given")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	options := []extract.ExtractorOption{
		extract.WithWorkers(s.workers),
		extract.WithLogger(FuncLogger(func(line string) {
			fmt.Fprint(os.Stderr, line)
		})),
	}
	if s.safety {
		options = append(options, extract.WithSquareSafety())
	}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		options = append(options, extract.WithProgress(func(total int) ProgressBar {
			return CreateProgressBar(os.Stderr, total, "games")
		}))
	}

	result, err := extract.NewExtractor(options...).Run(ctx, s.rest)
	if !IsNil(err) {
		return err
	}

	mates := result.Mates
	if mates == nil {
		mates = []extract.Mate{}
	}
	if err := printJSON(mates); !IsNil(err) {
		return err
	}

	fmt.Fprintf(os.Stderr, "%v games, %v mates, %v skipped\n",
		humanize.Comma(int64(result.Games)),
		humanize.Comma(int64(len(result.Mates))),
		humanize.Comma(int64(len(result.Failures))))
	return NilError
}

func runAnalyze(s settings) Error {
	record, err := analysis.BuildAnalysisFromFen(strings.Join(s.rest, " "), s.analysisOptions()...)
	if !IsNil(err) {
		return err
	}
	return printJSON(record)
}

func runSvg(s settings) Error {
	return render.MateDiagramFromFen(os.Stdout, strings.Join(s.rest, " "), s.analysisOptions()...)
}

// run returns the process exit code so deferred work, like stopping the profiler,
// happens before main exits.
func run(args []string) (code int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, "recover()", r)
			code = 2
		}
	}()

	if Contains(args, "profile") {
		profilePath := RootDir() + "/data/CmdMatesMain"
		p := profile.Start(profile.ProfilePath(profilePath))
		defer p.Stop()
	}
	args = FilterSlice(args, func(arg string) bool {
		return arg != "profile"
	})

	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, usage)
		return 2
	}

	s, err := settingsFromArgs(args[1:])
	if IsNil(err) {
		switch args[0] {
		case "extract":
			err = runExtract(s)
		case "analyze":
			err = runAnalyze(s)
		case "svg":
			err = runSvg(s)
		default:
			err = Errorf("unknown command '%v'\n%v", args[0], usage)
		}
	}

	if !IsNil(err) {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:]))
}
