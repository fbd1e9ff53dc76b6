package main

import (
	"fmt"
	"net/http"
	"os"
	"runtime/debug"
	"strconv"
	"time"

	. "github.com/cricklet/chessmates/internal/helpers"
	"github.com/cricklet/chessmates/internal/server"
	"github.com/rs/zerolog"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, fmt.Sprint(r))
			fmt.Fprintln(os.Stderr, string(debug.Stack()))
		}
	}()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()

	port := 8002
	config := server.Config{Logger: logger}

	args := os.Args[1:]
	for _, arg := range args {
		if parsed, err := strconv.ParseInt(arg, 10, 64); err == nil {
			port = int(parsed)
		}
	}
	config.SquareSafety = Contains(args, "safety")

	logger.Info().Int("port", port).Bool("safety", config.SquareSafety).Msg("serving")

	err := Wrap(http.ListenAndServe(fmt.Sprintf(":%v", port), server.NewServer(config).Router()))
	if !IsNil(err) {
		logger.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
