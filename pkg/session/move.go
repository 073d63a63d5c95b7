package session

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/qnkhuat/checkersterm/pkg/checkers"
)

// Outcome is how a move attempt ended.
type Outcome int

const (
	// OutcomeRejected means the input never reached the authority.
	OutcomeRejected Outcome = iota
	// OutcomeInvalid means the authority refused the move.
	OutcomeInvalid
	// OutcomeExecuted means the move was played.
	OutcomeExecuted
	// OutcomeFailed means a request failed.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRejected:
		return "rejected"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeExecuted:
		return "executed"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MakeMove plays a move typed as two tile numbers.
func (s *Session) MakeMove(ctx context.Context, startText, endText string) Outcome {
	start, errStart := checkers.ParseTile(strings.TrimSpace(startText))
	end, errEnd := checkers.ParseTile(strings.TrimSpace(endText))
	if errStart != nil || errEnd != nil {
		s.log.Debug("rejected tiles", zap.String("start", startText), zap.String("end", endText))
		s.view.SetStatus(msgBadTiles)
		return OutcomeRejected
	}
	from, okFrom := checkers.ToCoord(start)
	to, okTo := checkers.ToCoord(end)
	if !okFrom || !okTo {
		s.view.SetStatus(msgNotASquare)
		return OutcomeRejected
	}
	return s.AttemptMove(ctx, from, to)
}

// AttemptMove asks the authority to validate the move and, if it agrees, to
// play it, then redraws from a fresh snapshot. The board is never updated
// locally. The selection is idle afterwards.
func (s *Session) AttemptMove(ctx context.Context, from, to checkers.Coord) Outcome {
	defer s.resetSelection()

	if !from.Playable() || !to.Playable() {
		s.view.SetStatus(msgNotASquare)
		return OutcomeRejected
	}
	m := checkers.Move{From: from, To: to}
	log := s.log.With(zap.Stringer("from", from), zap.Stringer("to", to))

	valid, err := s.auth.IsValidMove(ctx, m)
	if err != nil {
		s.fail(msgMoveError, err)
		return OutcomeFailed
	}
	if !valid {
		log.Debug("move refused")
		s.view.SetStatus(msgInvalidMove)
		return OutcomeInvalid
	}

	res, err := s.auth.ExecuteMove(ctx, m)
	if err != nil {
		s.fail(msgMoveError, err)
		return OutcomeFailed
	}
	log.Info("move executed", zap.String("message", res.Message))
	s.view.SetStatus(res.Message)

	// A failed refresh has already reported itself; the move still stands.
	_ = s.Refresh(ctx)
	if res.Winner != checkers.NoSide {
		s.gameOver(res.Winner)
	}
	return OutcomeExecuted
}
