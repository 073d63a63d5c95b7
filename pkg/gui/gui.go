// Package gui is the terminal front end: a clickable board, tile number
// inputs, the game buttons and a status line.
package gui

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"

	"github.com/qnkhuat/checkersterm/pkg/authority"
	"github.com/qnkhuat/checkersterm/pkg/checkers"
	"github.com/qnkhuat/checkersterm/pkg/session"
)

const (
	ActionQueueSize = 10
	boardWidth      = checkers.NumCols*3 + 2
	boardHeight     = checkers.NumRows + 2
	panelWidth      = 22
)

type Options struct {
	Theme  Theme
	Title  string
	Logger *zap.Logger
}

type action struct {
	name Action
	run  func(ctx context.Context)
}

// App owns the tview application and the session it drives. Button and board
// callbacks run on the tview loop and hand work to a single worker goroutine,
// so requests never block drawing and run one at a time in click order.
type App struct {
	App    *tview.Application
	Layout *tview.Grid

	board   *Board
	turn    *tview.TextView
	status  *tview.TextView
	start   *tview.InputField
	end     *tview.InputField
	buttons map[Action]*tview.Button
	focus   []tview.Primitive

	session *session.Session
	actions chan action
	theme   Theme
	log     *zap.Logger

	// enabled mirrors the session's controls flag; only the tview loop
	// touches it.
	enabled bool
	// queue runs f on the tview loop.
	queue   func(f func())
}

func New(auth authority.Authority, opts Options) *App {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	theme := opts.Theme
	if theme.Name == "" {
		theme = ThemeBasic
	}
	a := &App{
		App:     tview.NewApplication(),
		buttons: make(map[Action]*tview.Button),
		actions: make(chan action, ActionQueueSize),
		theme:   theme,
		log:     log,
		enabled: true,
	}
	a.queue = func(f func()) { a.App.QueueUpdateDraw(f) }
	a.session = session.New(auth, view{a}, log)
	a.build(opts.Title)
	return a
}

func (a *App) build(title string) {
	a.board = NewBoard(a.theme, func(c checkers.Coord) {
		a.handle(ActionClick, func(ctx context.Context) { a.session.Click(ctx, c) })
	})
	a.board.Table.SetBorder(true)
	if title == "" {
		title = "checkers"
	}
	a.board.Table.SetTitle(" " + title + " ")

	a.turn = tview.NewTextView().
		SetTextColor(a.theme.Turn).
		SetText("Current Turn: -")

	a.status = tview.NewTextView().
		SetWrap(true).
		SetWordWrap(true).
		SetTextColor(a.theme.Msg)

	a.start = a.tileInput("From ")
	a.end = a.tileInput("To   ")
	a.end.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEnter {
			a.press(ActionMakeMove)
		}
	})

	for _, act := range []Action{ActionMakeMove, ActionNewGame, ActionComputerMove, ActionUndo, ActionQuit} {
		act := act
		btn := tview.NewButton(string(act)).SetSelectedFunc(func() { a.press(act) })
		btn.SetBackgroundColor(a.theme.Button)
		a.buttons[act] = btn
	}

	gameOptions := tview.NewGrid().
		SetColumns(-1).
		SetRows(1, 1, 1, 1, 1, 1, 1, 1, 1, 1).
		AddItem(a.turn, 0, 0, 1, 1, 0, 0, false).
		AddItem(a.start, 2, 0, 1, 1, 0, 0, false).
		AddItem(a.end, 3, 0, 1, 1, 0, 0, false).
		AddItem(a.buttons[ActionMakeMove], 4, 0, 1, 1, 0, 0, false).
		AddItem(a.buttons[ActionNewGame], 6, 0, 1, 1, 0, 0, false).
		AddItem(a.buttons[ActionComputerMove], 7, 0, 1, 1, 0, 0, false).
		AddItem(a.buttons[ActionUndo], 8, 0, 1, 1, 0, 0, false).
		AddItem(a.buttons[ActionQuit], 9, 0, 1, 1, 0, 0, false)

	a.Layout = tview.NewGrid().
		SetRows(-1, boardHeight, 4, -1).
		SetColumns(-1, boardWidth, panelWidth, -1).
		AddItem(a.board.Table, 1, 1, 1, 1, 0, 0, true).
		AddItem(gameOptions, 1, 2, 1, 1, 0, 0, false).
		AddItem(a.status, 2, 1, 1, 2, 0, 0, false)

	a.focus = []tview.Primitive{
		a.board.Table,
		a.start,
		a.end,
		a.buttons[ActionMakeMove],
		a.buttons[ActionNewGame],
		a.buttons[ActionComputerMove],
		a.buttons[ActionUndo],
		a.buttons[ActionQuit],
	}
	a.App.SetInputCapture(a.handleKey)
}

func (a *App) tileInput(label string) *tview.InputField {
	return tview.NewInputField().
		SetLabel(label).
		SetFieldWidth(4).
		SetAcceptanceFunc(tview.InputFieldInteger)
}

// handleKey cycles focus with Tab and leaves on Escape.
func (a *App) handleKey(ev *tcell.EventKey) *tcell.EventKey {
	switch ev.Key() {
	case tcell.KeyEscape:
		a.App.Stop()
		return nil
	case tcell.KeyTab:
		a.cycleFocus(1)
		return nil
	case tcell.KeyBacktab:
		a.cycleFocus(-1)
		return nil
	}
	return ev
}

func (a *App) cycleFocus(step int) {
	current := a.App.GetFocus()
	next := 0
	for i, p := range a.focus {
		if p == current {
			next = (i + step + len(a.focus)) % len(a.focus)
			break
		}
	}
	a.App.SetFocus(a.focus[next])
}

// press runs a button's action.
func (a *App) press(act Action) {
	switch act {
	case ActionNewGame:
		a.handle(act, func(ctx context.Context) { a.session.NewGame(ctx) })
	case ActionMakeMove:
		start, end := a.start.GetText(), a.end.GetText()
		a.handle(act, func(ctx context.Context) { a.session.MakeMove(ctx, start, end) })
	case ActionComputerMove:
		a.handle(act, func(ctx context.Context) { a.session.ComputerMove(ctx) })
	case ActionUndo:
		a.handle(act, func(ctx context.Context) { a.session.Undo(ctx) })
	case ActionQuit:
		a.handle(act, func(ctx context.Context) { a.session.Quit() })
	case ActionRefresh:
		a.handle(act, func(ctx context.Context) { a.session.Refresh(ctx) })
	}
}

// handle queues run for the worker unless the controls are frozen.
func (a *App) handle(name Action, run func(ctx context.Context)) {
	if name.frozen() && !a.enabled {
		a.log.Debug("ignored while frozen", zap.String("action", string(name)))
		return
	}
	select {
	case a.actions <- action{name: name, run: run}:
	default:
		a.log.Warn("action queue full, dropping", zap.String("action", string(name)))
	}
}

func (a *App) work(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case act := <-a.actions:
			a.log.Debug("action", zap.String("action", string(act.name)))
			act.run(ctx)
		}
	}
}

// Run shows the board, draws the current game and blocks until the user
// leaves or ctx is done.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.work(ctx)
	go func() {
		<-ctx.Done()
		a.App.Stop()
	}()
	a.press(ActionRefresh)

	if err := a.App.SetRoot(a.Layout, true).EnableMouse(true).Run(); err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}

func (a *App) setControlsEnabled(enabled bool) {
	a.enabled = enabled
	label := tcell.ColorWhite
	accept := tview.InputFieldInteger
	if !enabled {
		label = a.theme.Disabled
		accept = func(string, rune) bool { return false }
	}
	for act, btn := range a.buttons {
		if act.frozen() {
			btn.SetLabelColor(label)
		}
	}
	for _, in := range []*tview.InputField{a.start, a.end} {
		in.SetLabelColor(label)
		in.SetAcceptanceFunc(accept)
	}
}

// view adapts App to session.View by moving every call onto the tview loop.
type view struct {
	a *App
}

func (v view) Render(s *checkers.Snapshot) {
	v.a.queue(func() {
		v.a.board.Render(s)
		v.a.turn.SetText("Current Turn: " + s.Turn.String())
	})
}

func (v view) MarkSelected(c checkers.Coord) {
	v.a.queue(func() { v.a.board.MarkSelected(c) })
}

func (v view) MarkDestinations(cs []checkers.Coord) {
	v.a.queue(func() { v.a.board.MarkDestinations(cs) })
}

func (v view) ClearMarks() {
	v.a.queue(v.a.board.ClearMarks)
}

func (v view) SetStatus(msg string) {
	v.a.queue(func() { v.a.status.SetText(msg) })
}

func (v view) SetTileInputs(start, end string) {
	v.a.queue(func() {
		v.a.start.SetText(start)
		v.a.end.SetText(end)
	})
}

func (v view) SetControlsEnabled(enabled bool) {
	v.a.queue(func() { v.a.setControlsEnabled(enabled) })
}
