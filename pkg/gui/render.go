package gui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/qnkhuat/checkersterm/pkg/checkers"
)

const (
	glyphMan  = "●"
	glyphKing = "♚"
)

// Board draws a snapshot onto a tview.Table, one cell per square with row 0
// on top. It must only be used from the tview event loop.
type Board struct {
	Table   *tview.Table
	theme   Theme
	onClick func(checkers.Coord)
}

func NewBoard(theme Theme, onClick func(checkers.Coord)) *Board {
	b := &Board{
		Table:   tview.NewTable(),
		theme:   theme,
		onClick: onClick,
	}
	b.Table.SetSelectable(true, true)
	b.Table.SetSelectedFunc(func(row, col int) { // Enter on a cell
		b.click(checkers.Coord{Col: col, Row: row})
	})
	b.Render(nil)
	return b
}

func (b *Board) click(c checkers.Coord) {
	if b.onClick != nil && c.Playable() {
		b.onClick(c)
	}
}

// Render rebuilds every cell from s. Marks from earlier selections are gone
// afterwards. A nil snapshot draws the empty board.
func (b *Board) Render(s *checkers.Snapshot) {
	b.Table.Clear()
	for r := 0; r < checkers.NumRows; r++ {
		for c := 0; c < checkers.NumCols; c++ {
			coord := checkers.Coord{Col: c, Row: r}
			p := checkers.Empty
			if s != nil {
				p = s.PieceAt(coord)
			}
			b.Table.SetCell(r, c, b.newCell(coord, p))
		}
	}
}

func (b *Board) newCell(coord checkers.Coord, p checkers.Piece) *tview.TableCell {
	cell := tview.NewTableCell(cellText(coord, p)).
		SetAlign(tview.AlignCenter).
		SetTextColor(pieceColor(p, b.theme)).
		SetBackgroundColor(squareBg(coord, b.theme))
	if !coord.Playable() {
		return cell.SetSelectable(false)
	}
	return cell.SetClickedFunc(func() bool {
		b.click(coord)
		return false
	})
}

// cellText is three columns wide. Empty dark squares show their tile number.
func cellText(coord checkers.Coord, p checkers.Piece) string {
	switch {
	case !p.IsEmpty() && p.IsKing():
		return " " + glyphKing + " "
	case !p.IsEmpty():
		return " " + glyphMan + " "
	}
	if tile, ok := checkers.ToTile(coord); ok {
		return fmt.Sprintf("%2d ", tile)
	}
	return "   "
}

func pieceColor(p checkers.Piece, t Theme) tcell.Color {
	switch p.Side() {
	case checkers.White:
		return t.White
	case checkers.Black:
		return t.Black
	default:
		return t.TileNumber
	}
}

func squareBg(c checkers.Coord, t Theme) tcell.Color {
	if c.Playable() {
		return t.SquareDark
	}
	return t.SquareLight
}

func (b *Board) setBg(c checkers.Coord, color tcell.Color) {
	if !c.InBounds() {
		return
	}
	b.Table.GetCell(c.Row, c.Col).SetBackgroundColor(color)
}

func (b *Board) MarkSelected(c checkers.Coord) {
	b.setBg(c, b.theme.SquareSelected)
}

func (b *Board) MarkDestinations(cs []checkers.Coord) {
	for _, c := range cs {
		b.setBg(c, b.theme.SquareHint)
	}
}

// ClearMarks restores the parity colour of every square.
func (b *Board) ClearMarks() {
	for r := 0; r < checkers.NumRows; r++ {
		for c := 0; c < checkers.NumCols; c++ {
			coord := checkers.Coord{Col: c, Row: r}
			b.setBg(coord, squareBg(coord, b.theme))
		}
	}
}
