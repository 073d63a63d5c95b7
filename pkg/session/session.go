// Package session turns board clicks, typed tile numbers and button presses
// into requests against the remote authority and keeps the view in step with
// its answers.
package session

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/qnkhuat/checkersterm/pkg/authority"
	"github.com/qnkhuat/checkersterm/pkg/checkers"
)

// View is what the session draws on. Implementations must tolerate being
// called from a goroutine other than their UI loop.
type View interface {
	// Render replaces the whole board, dropping every mark.
	Render(s *checkers.Snapshot)
	MarkSelected(c checkers.Coord)
	MarkDestinations(cs []checkers.Coord)
	ClearMarks()
	SetStatus(msg string)
	SetTileInputs(start, end string)
	SetControlsEnabled(enabled bool)
}

// Session holds the selection and the controls flag for one player. It is
// not safe for concurrent use; the gui drives it from a single worker.
type Session struct {
	auth authority.Authority
	view View
	log  *zap.Logger

	selection   Selection
	interactive bool
}

func New(auth authority.Authority, view View, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{
		auth:        auth,
		view:        view,
		log:         log,
		interactive: true,
	}
}

func (s *Session) Selection() Selection {
	return s.selection
}

// Interactive is false once the game is over or the player quit.
func (s *Session) Interactive() bool {
	return s.interactive
}

// Refresh fetches a fresh snapshot, redraws the board and checks whether the
// game has ended. A failed fetch leaves the last drawn board in place.
func (s *Session) Refresh(ctx context.Context) error {
	snap, err := s.auth.Board(ctx)
	if err != nil {
		s.fail(msgFetchBoard, err)
		return err
	}
	s.selection = Selection{}
	s.view.Render(snap)
	s.checkWinner(ctx)
	return nil
}

func (s *Session) checkWinner(ctx context.Context) {
	winner, err := s.auth.Winner(ctx)
	if err != nil {
		s.fail(msgCheckWinner, err)
		return
	}
	if winner != checkers.NoSide {
		s.gameOver(winner)
	}
}

func (s *Session) gameOver(winner checkers.Side) {
	s.log.Info("game over", zap.Stringer("winner", winner))
	s.view.SetStatus(fmt.Sprintf(msgGameOver, winner))
	s.setInteractive(false)
}

func (s *Session) setInteractive(enabled bool) {
	s.interactive = enabled
	s.view.SetControlsEnabled(enabled)
}

// fail logs err and shows it under the given prefix.
func (s *Session) fail(prefix string, err error) {
	s.log.Error(prefix, zap.Error(err))
	s.view.SetStatus(fmt.Sprintf("%s: %v", prefix, err))
}
