package checkers

import (
	"fmt"
	"strconv"
)

const (
	NumRows  = 8
	NumCols  = 8
	NumTiles = 32

	tilesPerRow = NumCols / 2
)

// Coord is a (column, row) position on the board. Row 0 is the top row.
type Coord struct {
	Col, Row int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Col, c.Row)
}

// InBounds reports whether c lies on the 8x8 board.
func (c Coord) InBounds() bool {
	return c.Col >= 0 && c.Col < NumCols && c.Row >= 0 && c.Row < NumRows
}

// Playable reports whether c is a dark square, the only squares pieces use.
func (c Coord) Playable() bool {
	return c.InBounds() && (c.Col+c.Row)%2 == 1
}

// Tile numbers the playable squares 1..32 row by row, left to right.
type Tile int

// NoTile is returned wherever a coordinate or number has no tile.
const NoTile Tile = 0

func (t Tile) Valid() bool {
	return t >= 1 && t <= NumTiles
}

func (t Tile) String() string {
	if !t.Valid() {
		return "-"
	}
	return strconv.Itoa(int(t))
}

// ToTile maps a playable coordinate to its tile number.
func ToTile(c Coord) (Tile, bool) {
	if !c.Playable() {
		return NoTile, false
	}
	return Tile(c.Row*tilesPerRow + c.Col/2 + 1), true
}

// ToCoord is the inverse of ToTile.
func ToCoord(t Tile) (Coord, bool) {
	if !t.Valid() {
		return Coord{}, false
	}
	idx := int(t) - 1
	row := idx / tilesPerRow
	col := (idx % tilesPerRow) * 2
	if row%2 == 0 { // even rows start on a light square
		col++
	}
	return Coord{Col: col, Row: row}, true
}

// ParseTile reads a tile number typed by the user.
func ParseTile(s string) (Tile, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return NoTile, fmt.Errorf("tile %q: %w", s, err)
	}
	t := Tile(n)
	if !t.Valid() {
		return NoTile, fmt.Errorf("tile %d out of range 1-%d", n, NumTiles)
	}
	return t, nil
}
