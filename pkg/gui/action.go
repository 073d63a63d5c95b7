package gui

// Action is a user command; its value doubles as the button label.
type Action string

const (
	ActionNewGame      Action = "New Game"
	ActionMakeMove     Action = "Make Move"
	ActionComputerMove Action = "Computer Move"
	ActionUndo         Action = "Undo Move"
	ActionQuit         Action = "Quit"
	ActionClick        Action = "Click"
	ActionRefresh      Action = "Refresh"
)

// frozen reports whether a finished or quit game blocks the action.
func (a Action) frozen() bool {
	switch a {
	case ActionQuit, ActionRefresh:
		return false
	default:
		return true
	}
}
