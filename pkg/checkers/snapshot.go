package checkers

// Move is a single step from one square to another.
type Move struct {
	From, To Coord
}

// Snapshot is one read of the authority's board. It is never cached: legality
// and turn can change between two reads.
type Snapshot struct {
	Board      [NumRows][NumCols]Piece
	Turn       Side
	ValidMoves []Move
}

// PieceAt returns Empty for coordinates off the board.
func (s *Snapshot) PieceAt(c Coord) Piece {
	if !c.InBounds() {
		return Empty
	}
	p := s.Board[c.Row][c.Col]
	if p == 0 {
		return Empty
	}
	return p
}

// Destinations lists every square the piece on from may legally move to.
func (s *Snapshot) Destinations(from Coord) []Coord {
	var dests []Coord
	for _, m := range s.ValidMoves {
		if m.From == from {
			dests = append(dests, m.To)
		}
	}
	return dests
}

// CanSelect reports whether the piece on c belongs to the side to move.
func (s *Snapshot) CanSelect(c Coord) bool {
	p := s.PieceAt(c)
	return !p.IsEmpty() && p.Side() == s.Turn
}

// NewSnapshot returns an empty board with white to move.
func NewSnapshot() *Snapshot {
	s := &Snapshot{Turn: White}
	for r := range s.Board {
		for c := range s.Board[r] {
			s.Board[r][c] = Empty
		}
	}
	return s
}
