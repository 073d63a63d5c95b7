package authority

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/qnkhuat/checkersterm/pkg/checkers"
)

// JSON bodies of the authority's HTTP contract.

type boardResponse struct {
	Board         [][]string `json:"board"`
	CurrentTurn   string     `json:"current_turn"`
	AllValidMoves [][]int    `json:"all_valid_moves"`
}

type moveRequest struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

type messageResponse struct {
	Message string  `json:"message"`
	Winner  *string `json:"winner,omitempty"`
}

type computerMoveResponse struct {
	Move    []int   `json:"move,omitempty"`
	Message string  `json:"message,omitempty"`
	Winner  *string `json:"winner,omitempty"`
}

type errorResponse struct {
	Detail json.RawMessage `json:"detail"`
}

var errMalformedBoard = errors.New("malformed board")

func newMoveRequest(m checkers.Move) moveRequest {
	return moveRequest{X1: m.From.Col, Y1: m.From.Row, X2: m.To.Col, Y2: m.To.Row}
}

func moveFromTuple(t []int) (checkers.Move, error) {
	if len(t) != 4 {
		return checkers.Move{}, fmt.Errorf("move %v: want 4 coordinates", t)
	}
	m := checkers.Move{
		From: checkers.Coord{Col: t[0], Row: t[1]},
		To:   checkers.Coord{Col: t[2], Row: t[3]},
	}
	if !m.From.InBounds() || !m.To.InBounds() {
		return checkers.Move{}, fmt.Errorf("move %v: off the board", t)
	}
	return m, nil
}

// parseWinner maps a missing or null winner to NoSide.
func parseWinner(w *string) (checkers.Side, error) {
	if w == nil || *w == "" {
		return checkers.NoSide, nil
	}
	side, ok := checkers.ParseSide(*w)
	if !ok {
		return checkers.NoSide, fmt.Errorf("unknown side %q", *w)
	}
	return side, nil
}

func (b *boardResponse) snapshot() (*checkers.Snapshot, error) {
	if len(b.Board) != checkers.NumRows {
		return nil, fmt.Errorf("%w: %d rows", errMalformedBoard, len(b.Board))
	}
	s := &checkers.Snapshot{}
	for r, row := range b.Board {
		if len(row) != checkers.NumCols {
			return nil, fmt.Errorf("%w: row %d has %d squares", errMalformedBoard, r, len(row))
		}
		for c, code := range row {
			if len(code) != 1 {
				return nil, fmt.Errorf("%w: square (%d,%d) code %q", errMalformedBoard, c, r, code)
			}
			s.Board[r][c] = checkers.Piece(code[0])
		}
	}
	turn, ok := checkers.ParseSide(b.CurrentTurn)
	if !ok {
		return nil, fmt.Errorf("%w: turn %q", errMalformedBoard, b.CurrentTurn)
	}
	s.Turn = turn
	for _, t := range b.AllValidMoves {
		m, err := moveFromTuple(t)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errMalformedBoard, err)
		}
		s.ValidMoves = append(s.ValidMoves, m)
	}
	return s, nil
}
