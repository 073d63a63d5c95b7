package session

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/qnkhuat/checkersterm/pkg/checkers"
)

// Selection is either idle or holds the square of the picked piece.
type Selection struct {
	origin   checkers.Coord
	selected bool
}

func (sel Selection) Idle() bool {
	return !sel.selected
}

func (sel Selection) Origin() (checkers.Coord, bool) {
	return sel.origin, sel.selected
}

func (sel Selection) String() string {
	if !sel.selected {
		return "idle"
	}
	return "selected " + sel.origin.String()
}

// Click handles a click on a board square. The first click picks one of the
// mover's pieces and highlights its legal destinations; the second click
// tries the move and always drops the selection, whatever the outcome.
func (s *Session) Click(ctx context.Context, c checkers.Coord) {
	if !c.Playable() {
		return
	}
	s.view.ClearMarks()

	origin, selected := s.selection.Origin()
	if !selected {
		s.pick(ctx, c)
		return
	}

	from, _ := checkers.ToTile(origin)
	to, _ := checkers.ToTile(c)
	s.view.SetTileInputs(from.String(), to.String())
	s.AttemptMove(ctx, origin, c)
}

func (s *Session) pick(ctx context.Context, c checkers.Coord) {
	snap, err := s.auth.Board(ctx)
	if err != nil {
		s.fail(msgFetchBoard, err)
		return
	}
	if !snap.CanSelect(c) {
		s.log.Debug("rejected selection", zap.Stringer("square", c), zap.Stringer("turn", snap.Turn))
		s.view.SetStatus(msgNotYourPiece)
		return
	}

	s.selection = Selection{origin: c, selected: true}
	s.view.MarkSelected(c)
	s.view.MarkDestinations(snap.Destinations(c))
	tile, _ := checkers.ToTile(c)
	s.view.SetStatus(fmt.Sprintf(msgSelected, tile))
	s.log.Debug("selected", zap.Stringer("square", c))
}

// resetSelection returns to idle and wipes every trace of the last attempt.
func (s *Session) resetSelection() {
	s.selection = Selection{}
	s.view.ClearMarks()
	s.view.SetTileInputs("", "")
}
