package session

// Status line texts.
const (
	msgFetchBoard    = "Error fetching board state"
	msgCheckWinner   = "Error checking for winner"
	msgMoveError     = "An error occurred while trying to make the move"
	msgStartError    = "Error starting new game"
	msgComputerError = "An error occurred while computer was making a move"
	msgUndoError     = "Error undoing move"

	msgGameOver      = "Game Over! %s wins!"
	msgSelected      = "Selected piece at tile %s. Now select destination."
	msgNotYourPiece  = "No piece or not your turn. Please select your own piece."
	msgBadTiles      = "Please enter valid tile numbers (1-32)."
	msgNotASquare    = "Invalid tile numbers or not a valid square."
	msgInvalidMove   = "Invalid move. Please try again."
	msgThinking      = "Computer is thinking..."
	msgComputerMoved = "Computer moved from tile %s to %s."
	msgComputerStuck = "Computer has no valid moves or game is over."
	msgQuit          = "Game quit. Restart to begin a new session."
)
