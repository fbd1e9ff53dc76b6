package extract

import (
	"fmt"

	. "github.com/cricklet/chessmates/internal/helpers"
	"github.com/dylhunn/dragontoothmg"
)

// VerifyCheckmate confirms with an independent move generator that the side to move
// is in check and has no legal move.
func VerifyCheckmate(fen string) (result bool, err Error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = false, Errorf("move generator rejected '%v': %v", fen, fmt.Sprint(r))
		}
	}()

	board := dragontoothmg.ParseFen(fen)
	return board.OurKingInCheck() && len(board.GenerateLegalMoves()) == 0, NilError
}
