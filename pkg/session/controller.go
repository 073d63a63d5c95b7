package session

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/qnkhuat/checkersterm/pkg/checkers"
)

// NewGame starts over and lifts any freeze left by a finished game.
func (s *Session) NewGame(ctx context.Context) error {
	res, err := s.auth.Start(ctx)
	if err != nil {
		s.fail(msgStartError, err)
		return err
	}
	s.log.Info("new game")
	s.view.SetStatus(res.Message)
	_ = s.Refresh(ctx)
	s.setInteractive(true)
	return nil
}

// ComputerMove lets the authority's search play for the side to move.
func (s *Session) ComputerMove(ctx context.Context) error {
	s.view.SetStatus(msgThinking)
	res, err := s.auth.ComputerMove(ctx)
	if err != nil {
		s.fail(msgComputerError, err)
		return err
	}

	if res.Move == nil {
		msg := res.Message
		if msg == "" {
			msg = msgComputerStuck
		}
		s.view.SetStatus(msg)
	} else {
		from, _ := checkers.ToTile(res.Move.From)
		to, _ := checkers.ToTile(res.Move.To)
		s.log.Info("computer moved", zap.Stringer("from", from), zap.Stringer("to", to))
		s.view.SetStatus(fmt.Sprintf(msgComputerMoved, from, to))
		_ = s.Refresh(ctx)
	}
	if res.Winner != checkers.NoSide {
		s.gameOver(res.Winner)
	}
	return nil
}

// Undo reverts the last move. A finished game stays frozen.
func (s *Session) Undo(ctx context.Context) error {
	res, err := s.auth.Undo(ctx)
	if err != nil {
		s.fail(msgUndoError, err)
		return err
	}
	s.view.SetStatus(res.Message)
	_ = s.Refresh(ctx)
	return nil
}

// Quit freezes the controls. Nothing is sent to the authority.
func (s *Session) Quit() {
	s.log.Info("quit")
	s.view.SetStatus(msgQuit)
	s.setInteractive(false)
}
