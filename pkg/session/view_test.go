package session

import (
	"github.com/qnkhuat/checkersterm/pkg/checkers"
)

// fakeView records what the session asked it to draw.
type fakeView struct {
	renders      []*checkers.Snapshot
	selected     *checkers.Coord
	destinations []checkers.Coord
	status       []string
	start, end   string
	enabled      bool
	enabledCalls int
}

func newFakeView() *fakeView {
	return &fakeView{enabled: true}
}

func (v *fakeView) Render(s *checkers.Snapshot) {
	v.renders = append(v.renders, s)
	v.ClearMarks()
}

func (v *fakeView) MarkSelected(c checkers.Coord) {
	v.selected = &c
}

func (v *fakeView) MarkDestinations(cs []checkers.Coord) {
	v.destinations = append(v.destinations, cs...)
}

func (v *fakeView) ClearMarks() {
	v.selected = nil
	v.destinations = nil
}

func (v *fakeView) SetStatus(msg string) {
	v.status = append(v.status, msg)
}

func (v *fakeView) SetTileInputs(start, end string) {
	v.start, v.end = start, end
}

func (v *fakeView) SetControlsEnabled(enabled bool) {
	v.enabled = enabled
	v.enabledCalls++
}

func (v *fakeView) lastStatus() string {
	if len(v.status) == 0 {
		return ""
	}
	return v.status[len(v.status)-1]
}

func (v *fakeView) marked() bool {
	return v.selected != nil || len(v.destinations) != 0
}
