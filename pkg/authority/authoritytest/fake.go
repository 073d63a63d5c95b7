// Package authoritytest provides a scripted Authority for tests.
package authoritytest

import (
	"context"
	"sync"

	"github.com/qnkhuat/checkersterm/pkg/authority"
	"github.com/qnkhuat/checkersterm/pkg/checkers"
)

// Fake answers from its fields and records every call by operation name.
// A non-nil error field makes the matching call fail.
type Fake struct {
	mu sync.Mutex

	Snapshot *checkers.Snapshot
	// Snapshots, when set, is consumed one per Board call before falling
	// back to Snapshot.
	Snapshots []*checkers.Snapshot
	Valid     bool
	Executed  authority.MoveResult
	Started   authority.Result
	Computer  authority.ComputerMoveResult
	Undone    authority.Result
	Win       checkers.Side

	BoardErr, ValidErr, ExecuteErr, StartErr, ComputerErr, UndoErr, WinnerErr error

	Calls []string
	Moves []checkers.Move
}

var _ authority.Authority = (*Fake)(nil)

func (f *Fake) record(op string) {
	f.mu.Lock()
	f.Calls = append(f.Calls, op)
	f.mu.Unlock()
}

// Count returns how many times op was called.
func (f *Fake) Count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.Calls {
		if c == op {
			n++
		}
	}
	return n
}

func (f *Fake) Board(ctx context.Context) (*checkers.Snapshot, error) {
	f.record("get_board")
	if f.BoardErr != nil {
		return nil, f.BoardErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	s := f.Snapshot
	if len(f.Snapshots) > 0 {
		s = f.Snapshots[0]
		f.Snapshots = f.Snapshots[1:]
	}
	if s == nil {
		s = checkers.NewSnapshot()
	}
	cp := *s
	cp.ValidMoves = append([]checkers.Move(nil), s.ValidMoves...)
	return &cp, nil
}

func (f *Fake) IsValidMove(ctx context.Context, m checkers.Move) (bool, error) {
	f.record("is_valid_move")
	f.mu.Lock()
	f.Moves = append(f.Moves, m)
	f.mu.Unlock()
	if f.ValidErr != nil {
		return false, f.ValidErr
	}
	return f.Valid, nil
}

func (f *Fake) ExecuteMove(ctx context.Context, m checkers.Move) (*authority.MoveResult, error) {
	f.record("execute_move")
	if f.ExecuteErr != nil {
		return nil, f.ExecuteErr
	}
	res := f.Executed
	return &res, nil
}

func (f *Fake) Start(ctx context.Context) (*authority.Result, error) {
	f.record("start")
	if f.StartErr != nil {
		return nil, f.StartErr
	}
	res := f.Started
	return &res, nil
}

func (f *Fake) ComputerMove(ctx context.Context) (*authority.ComputerMoveResult, error) {
	f.record("monte_carlo_simulation")
	if f.ComputerErr != nil {
		return nil, f.ComputerErr
	}
	res := f.Computer
	return &res, nil
}

func (f *Fake) Undo(ctx context.Context) (*authority.Result, error) {
	f.record("undo_move")
	if f.UndoErr != nil {
		return nil, f.UndoErr
	}
	res := f.Undone
	return &res, nil
}

func (f *Fake) Winner(ctx context.Context) (checkers.Side, error) {
	f.record("get_winner")
	if f.WinnerErr != nil {
		return checkers.NoSide, f.WinnerErr
	}
	return f.Win, nil
}

// StartingSnapshot is the usual opening position: black on rows 0-2, white on
// rows 5-7, white to move. No legal moves are filled in.
func StartingSnapshot() *checkers.Snapshot {
	s := checkers.NewSnapshot()
	for r := 0; r < checkers.NumRows; r++ {
		for c := 0; c < checkers.NumCols; c++ {
			if (r+c)%2 == 0 {
				continue
			}
			switch {
			case r < 3:
				s.Board[r][c] = checkers.BlackMan
			case r > 4:
				s.Board[r][c] = checkers.WhiteMan
			}
		}
	}
	return s
}
