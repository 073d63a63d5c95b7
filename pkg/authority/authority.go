// Package authority talks to the remote checkers service that owns the board,
// the rules, turn order and the computer player.
package authority

import (
	"context"

	"github.com/qnkhuat/checkersterm/pkg/checkers"
)

// Authority is the remote side of a game. Any backend speaking the HTTP
// contract can stand behind it.
type Authority interface {
	// Board fetches the current position, side to move and legal moves.
	Board(ctx context.Context) (*checkers.Snapshot, error)
	// IsValidMove asks whether m may be played now.
	IsValidMove(ctx context.Context, m checkers.Move) (bool, error)
	// ExecuteMove plays m.
	ExecuteMove(ctx context.Context, m checkers.Move) (*MoveResult, error)
	// Start resets the game.
	Start(ctx context.Context) (*Result, error)
	// ComputerMove lets the remote search pick and play a move.
	ComputerMove(ctx context.Context) (*ComputerMoveResult, error)
	// Undo reverts the last move.
	Undo(ctx context.Context) (*Result, error)
	// Winner returns NoSide while the game is running.
	Winner(ctx context.Context) (checkers.Side, error)
}

type Result struct {
	Message string
}

type MoveResult struct {
	Message string
	Winner  checkers.Side
}

// ComputerMoveResult has a nil Move when the computer could not play.
type ComputerMoveResult struct {
	Move    *checkers.Move
	Message string
	Winner  checkers.Side
}
