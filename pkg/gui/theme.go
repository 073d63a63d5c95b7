package gui

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Terminal safe color palette is available here
// Themes should be limited to the colors defined in this reference
// https://upload.wikimedia.org/wikipedia/commons/1/15/Xterm_256color_chart.svg

// Theme is used for dynamically coloring the UI
type Theme struct {
	Name           string
	SquareDark     tcell.Color
	SquareLight    tcell.Color
	SquareSelected tcell.Color
	SquareHint     tcell.Color
	White          tcell.Color
	Black          tcell.Color
	TileNumber     tcell.Color
	Turn           tcell.Color
	Msg            tcell.Color
	Button         tcell.Color
	Disabled       tcell.Color
}

// ThemeHex is the config file form of a Theme
type ThemeHex struct {
	Name           string `json:"name" yaml:"name"`
	SquareDark     string `json:"squareDark" yaml:"square_dark"`
	SquareLight    string `json:"squareLight" yaml:"square_light"`
	SquareSelected string `json:"squareSelected" yaml:"square_selected"`
	SquareHint     string `json:"squareHint" yaml:"square_hint"`
	White          string `json:"white" yaml:"white"`
	Black          string `json:"black" yaml:"black"`
	TileNumber     string `json:"tileNumber" yaml:"tile_number"`
	Turn           string `json:"turn" yaml:"turn"`
	Msg            string `json:"msg" yaml:"msg"`
	Button         string `json:"button" yaml:"button"`
	Disabled       string `json:"disabled" yaml:"disabled"`
}

// fmtHex returns a one character hex for the ColorDefault
// and otherwise it returns a standard hex. This is useful
// because it allows ColorDefault to be imported from the config
// and parsed properly rather than being interpreted as black
func fmtHex(v int32) string {
	if v == -1 {
		return "#0"
	}
	return fmt.Sprintf("#%06x", v)
}

// Hex converts a Theme to a ThemeHex
func (t Theme) Hex() ThemeHex {
	return ThemeHex{
		t.Name,
		fmtHex(t.SquareDark.Hex()),
		fmtHex(t.SquareLight.Hex()),
		fmtHex(t.SquareSelected.Hex()),
		fmtHex(t.SquareHint.Hex()),
		fmtHex(t.White.Hex()),
		fmtHex(t.Black.Hex()),
		fmtHex(t.TileNumber.Hex()),
		fmtHex(t.Turn.Hex()),
		fmtHex(t.Msg.Hex()),
		fmtHex(t.Button.Hex()),
		fmtHex(t.Disabled.Hex()),
	}
}

// Theme converts a ThemeHex to a Theme
func (t ThemeHex) Theme() Theme {
	return Theme{
		t.Name,
		tcell.GetColor(t.SquareDark),
		tcell.GetColor(t.SquareLight),
		tcell.GetColor(t.SquareSelected),
		tcell.GetColor(t.SquareHint),
		tcell.GetColor(t.White),
		tcell.GetColor(t.Black),
		tcell.GetColor(t.TileNumber),
		tcell.GetColor(t.Turn),
		tcell.GetColor(t.Msg),
		tcell.GetColor(t.Button),
		tcell.GetColor(t.Disabled),
	}
}

// ImportThemes returns a converted Theme from a slice of ThemeHex
// entities if its name matches the want argument. Built-in themes are
// searched last.
func ImportThemes(want string, themes []ThemeHex) (Theme, error) {
	// First check if want is in the provided config (override)
	for _, t := range themes {
		if t.Name == want {
			return t.Theme(), nil
		}
	}
	for _, t := range Themes {
		if t.Name == want {
			return t, nil
		}
	}

	return Theme{}, errors.New("theme: no theme found")
}

// ThemeBasic is the default theme
var ThemeBasic = Theme{
	"basic",        // Name
	tcell.Color94,  // SquareDark
	tcell.Color230, // SquareLight
	tcell.Color226, // SquareSelected
	tcell.Color107, // SquareHint
	tcell.Color255, // White
	tcell.Color232, // Black
	tcell.Color180, // TileNumber
	tcell.Color252, // Turn
	tcell.Color160, // Msg
	tcell.Color24,  // Button
	tcell.Color240, // Disabled
}

// ThemeTerminal sticks to the 16 ANSI colors
var ThemeTerminal = Theme{
	"terminal",         // Name
	tcell.ColorGreen,   // SquareDark
	tcell.ColorBlue,    // SquareLight
	tcell.ColorRed,     // SquareSelected
	tcell.ColorYellow,  // SquareHint
	tcell.ColorWhite,   // White
	tcell.ColorBlack,   // Black
	tcell.ColorSilver,  // TileNumber
	tcell.ColorDefault, // Turn
	tcell.ColorRed,     // Msg
	tcell.ColorNavy,    // Button
	tcell.ColorGray,    // Disabled
}

var Themes = []Theme{ThemeBasic, ThemeTerminal}
