package render

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"
	"github.com/cricklet/chessmates/internal/analysis"
	"github.com/cricklet/chessmates/internal/game"
	. "github.com/cricklet/chessmates/internal/helpers"
)

const (
	SquareSize = 45
	Margin     = 20
	BoardSize  = 8*SquareSize + 2*Margin
)

const (
	lightSquare    = "fill:#f0d9b5"
	darkSquare     = "fill:#b58863"
	blockingFill   = "fill:#3b78e7;fill-opacity:0.55"
	capturableFill = "fill:#e53935;fill-opacity:0.55"
	removableFill  = "fill:#43a047;fill-opacity:0.55"
	kingOutline    = "fill:none;stroke:#ff9800;stroke-width:4"
	labelStyle     = "font-family:sans-serif;font-size:12px;text-anchor:middle;fill:#333"
	pieceStyle     = "font-family:serif;font-size:36px;text-anchor:middle;dominant-baseline:central"
)

var pieceGlyphs = map[Piece]string{
	WR: "♖", WN: "♘", WB: "♗", WK: "♔", WQ: "♕", WP: "♙",
	BR: "♜", BN: "♞", BB: "♝", BK: "♚", BQ: "♛", BP: "♟",
}

// corner is the top-left pixel of a square, with white at the bottom.
func corner(square FileRank) (int, int) {
	return Margin + int(square.File)*SquareSize, Margin + (7-int(square.Rank))*SquareSize
}

// squareStyle colours a1 dark.
func squareStyle(square FileRank) string {
	if (int(square.File)+int(square.Rank))%2 == 0 {
		return darkSquare
	}
	return lightSquare
}

func highlight(canvas *svg.SVG, squares []FileRank, style string) {
	for _, square := range squares {
		x, y := corner(square)
		canvas.Rect(x, y, SquareSize, SquareSize, style)
	}
}

// MateDiagram draws the mate position of record and colours the squares from its
// analysis: blocking squares blue, capturable checkers red, removable neighbours green.
func MateDiagram(w io.Writer, record analysis.MateRecord) Error {
	position, err := game.PositionFromFenString(record.Mate)
	if !IsNil(err) {
		return err
	}

	canvas := svg.New(w)
	canvas.Start(BoardSize, BoardSize)
	canvas.Title(record.Mate)
	canvas.Rect(0, 0, BoardSize, BoardSize, "fill:white")

	for i := 0; i < 64; i++ {
		square := FileRankFromIndex(i)
		x, y := corner(square)
		canvas.Rect(x, y, SquareSize, SquareSize, squareStyle(square))
	}

	highlight(canvas, record.Analysis.BlockingSquares, blockingFill)
	highlight(canvas, record.Analysis.CapturableCheckers, capturableFill)
	highlight(canvas, record.Analysis.RemovableNeighbors, removableFill)

	if king, err := analysis.FindKing(&position.Board, position.Player); IsNil(err) {
		x, y := corner(king)
		canvas.Rect(x+2, y+2, SquareSize-4, SquareSize-4, kingOutline)
	}

	for i := 0; i < 64; i++ {
		square := FileRankFromIndex(i)
		glyph, ok := pieceGlyphs[position.Board.At(square)]
		if !ok {
			continue
		}
		x, y := corner(square)
		canvas.Text(x+SquareSize/2, y+SquareSize/2, glyph, pieceStyle)
	}

	for f := 0; f < 8; f++ {
		x := Margin + f*SquareSize + SquareSize/2
		canvas.Text(x, BoardSize-Margin/3, string(rune('a'+f)), labelStyle)
	}
	for r := 0; r < 8; r++ {
		y := Margin + (7-r)*SquareSize + SquareSize/2 + 4
		canvas.Text(Margin/2, y, fmt.Sprint(r+1), labelStyle)
	}

	canvas.End()
	return NilError
}

func MateDiagramFromFen(w io.Writer, fen string, options ...analysis.AnalysisOption) Error {
	record, err := analysis.BuildAnalysisFromFen(fen, options...)
	if !IsNil(err) {
		return err
	}
	return MateDiagram(w, record)
}
