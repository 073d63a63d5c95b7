// Package boardimage draws a board snapshot as a PNG.
package boardimage

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"sync"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/qnkhuat/checkersterm/pkg/checkers"
)

const (
	SquareSize   = 64
	BannerHeight = 32
	Margin       = 16

	Width  = SquareSize*checkers.NumCols + Margin*2
	Height = SquareSize*checkers.NumRows + Margin*2 + BannerHeight
)

//go:embed assets/pieces/*.svg
var pieceFiles embed.FS

var (
	background  = color.RGBA{40, 36, 32, 255}
	lightSquare = color.RGBA{233, 207, 163, 255}
	darkSquare  = color.RGBA{120, 78, 48, 255}
	tileText    = color.RGBA{233, 207, 163, 160}
	bannerText  = color.RGBA{236, 239, 255, 255}
	turnWhite   = color.RGBA{244, 239, 228, 255}
	turnBlack   = color.RGBA{20, 20, 20, 255}
)

var (
	pieceCache   = map[checkers.Piece]image.Image{}
	pieceCacheMu sync.Mutex
)

// RenderPNG encodes s as a PNG: a turn banner above the board, pieces on
// their squares and tile numbers on the empty playable ones.
func RenderPNG(ctx context.Context, s *checkers.Snapshot) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("boardimage: snapshot is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, Width, Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	drawBanner(img, s.Turn)
	origin := image.Point{X: Margin, Y: Margin + BannerHeight}
	for r := 0; r < checkers.NumRows; r++ {
		for c := 0; c < checkers.NumCols; c++ {
			coord := checkers.Coord{Col: c, Row: r}
			rect := squareRect(coord, origin)
			clr := lightSquare
			if coord.Playable() {
				clr = darkSquare
			}
			draw.Draw(img, rect, image.NewUniform(clr), image.Point{}, draw.Src)

			p := s.PieceAt(coord)
			if p.IsEmpty() {
				if tile, ok := checkers.ToTile(coord); ok {
					drawText(img, tile.String(), rect.Min.X+4, rect.Min.Y+14, tileText)
				}
				continue
			}
			piece, err := pieceImage(p)
			if err != nil {
				return nil, err
			}
			draw.Draw(img, rect, piece, image.Point{}, draw.Over)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func squareRect(c checkers.Coord, origin image.Point) image.Rectangle {
	x := origin.X + c.Col*SquareSize
	y := origin.Y + c.Row*SquareSize
	return image.Rect(x, y, x+SquareSize, y+SquareSize)
}

func drawBanner(img *image.RGBA, turn checkers.Side) {
	swatch := image.Rect(Margin, Margin, Margin+BannerHeight-8, Margin+BannerHeight-8)
	clr := turnWhite
	if turn == checkers.Black {
		clr = turnBlack
	}
	draw.Draw(img, swatch, image.NewUniform(clr), image.Point{}, draw.Src)
	drawText(img, "Current Turn: "+turn.String(), swatch.Max.X+8, Margin+17, bannerText)
}

func drawText(img *image.RGBA, text string, x, baseline int, clr color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(clr),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, baseline),
	}
	d.DrawString(text)
}

func pieceAsset(p checkers.Piece) (string, error) {
	switch p {
	case checkers.WhiteMan:
		return "assets/pieces/wm.svg", nil
	case checkers.WhiteKing:
		return "assets/pieces/wk.svg", nil
	case checkers.BlackMan:
		return "assets/pieces/bm.svg", nil
	case checkers.BlackKing:
		return "assets/pieces/bk.svg", nil
	}
	return "", fmt.Errorf("boardimage: no asset for piece %q", string(p))
}

func pieceImage(p checkers.Piece) (image.Image, error) {
	pieceCacheMu.Lock()
	defer pieceCacheMu.Unlock()
	if img, ok := pieceCache[p]; ok {
		return img, nil
	}

	name, err := pieceAsset(p)
	if err != nil {
		return nil, err
	}
	data, err := pieceFiles.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read piece asset %s: %w", name, err)
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse piece svg %s: %w", name, err)
	}
	icon.SetTarget(0, 0, SquareSize, SquareSize)

	img := image.NewRGBA(image.Rect(0, 0, SquareSize, SquareSize))
	scanner := rasterx.NewScannerGV(SquareSize, SquareSize, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(SquareSize, SquareSize, scanner), 1.0)

	pieceCache[p] = img
	return img, nil
}
