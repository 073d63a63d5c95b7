package checkers

type Side byte

const (
	NoSide Side = 0
	White  Side = 'w'
	Black  Side = 'b'
)

func (s Side) String() string {
	switch s {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "Unknown"
	}
}

func (s Side) Opponent() Side {
	switch s {
	case White:
		return Black
	case Black:
		return White
	default:
		return NoSide
	}
}

// ParseSide accepts the one-letter side code used on the wire.
func ParseSide(code string) (Side, bool) {
	switch code {
	case "w":
		return White, true
	case "b":
		return Black, true
	default:
		return NoSide, false
	}
}

// Piece is the single character code the authority uses for a square:
// lowercase is a man, uppercase a king, the letter is the side.
type Piece byte

const (
	Empty     Piece = '.'
	WhiteMan  Piece = 'w'
	WhiteKing Piece = 'W'
	BlackMan  Piece = 'b'
	BlackKing Piece = 'B'
)

func (p Piece) Side() Side {
	switch p {
	case WhiteMan, WhiteKing:
		return White
	case BlackMan, BlackKing:
		return Black
	default:
		return NoSide
	}
}

func (p Piece) IsKing() bool {
	return p == WhiteKing || p == BlackKing
}

func (p Piece) IsEmpty() bool {
	return p.Side() == NoSide
}

func (p Piece) String() string {
	if p == 0 {
		return string(Empty)
	}
	return string(p)
}
