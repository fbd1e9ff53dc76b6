package analysis

import (
	"github.com/cricklet/chessmates/internal/game"
	. "github.com/cricklet/chessmates/internal/helpers"
)

type AnalysisResult struct {
	BlockingSquares    []FileRank `json:"blocking_squares"`
	CapturableCheckers []FileRank `json:"capturable_checkers"`
	RemovableNeighbors []FileRank `json:"removable_neighbors"`

	// SafeVacatedNeighbors is only filled in when requested with WithSquareSafety.
	SafeVacatedNeighbors []FileRank `json:"safe_vacated_neighbors,omitempty"`
}

type MateRecord struct {
	Mate     string         `json:"mate"`
	Analysis AnalysisResult `json:"analysis"`
}

type analysisConfig struct {
	squareSafety bool
}

type AnalysisOption func(*analysisConfig)

// WithSquareSafety adds SafeVacatedNeighbors next to the pin-based RemovableNeighbors.
func WithSquareSafety() AnalysisOption {
	return func(c *analysisConfig) {
		c.squareSafety = true
	}
}

// Analyze explains a mate position: how the check could have been blocked, which
// checker could have been captured, and which neighbouring pieces could step aside.
func Analyze(position game.Position, options ...AnalysisOption) (AnalysisResult, Error) {
	config := analysisConfig{}
	for _, o := range options {
		o(&config)
	}

	board := position.Board
	if err := board.Validate(); !IsNil(err) {
		return AnalysisResult{}, err
	}

	kingSquare, err := FindKing(&board, position.Player)
	if !IsNil(err) {
		return AnalysisResult{}, err
	}
	checkers := FindCheckers(&board, kingSquare)

	result := AnalysisResult{
		BlockingSquares:    BlockingSquares(checkers, kingSquare),
		CapturableCheckers: CapturableCheckers(checkers, kingSquare),
		RemovableNeighbors: RemovableNeighbors(&board, kingSquare),
	}
	if config.squareSafety {
		result.SafeVacatedNeighbors = SafeVacatedNeighbors(&board, kingSquare)
	}
	return result, NilError
}

func BuildAnalysis(position game.Position, options ...AnalysisOption) (MateRecord, Error) {
	result, err := Analyze(position, options...)
	if !IsNil(err) {
		return MateRecord{}, err
	}
	return MateRecord{
		Mate:     game.FenStringForPosition(position),
		Analysis: result,
	}, NilError
}

func BuildAnalysisFromFen(fen string, options ...AnalysisOption) (MateRecord, Error) {
	position, err := game.PositionFromFenString(fen)
	if !IsNil(err) {
		return MateRecord{}, err
	}
	return BuildAnalysis(position, options...)
}
