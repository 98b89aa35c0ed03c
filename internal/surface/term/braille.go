package term

import (
	"image"
	"strings"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// brailleGrid is a cols x rows grid of braille cells, i.e. a
// (cols*2) x (rows*4) dot raster.
type brailleGrid struct {
	cols, rows int
	cells      [][]rune
}

func newBrailleGrid(cols, rows int) *brailleGrid {
	g := &brailleGrid{cols: cols, rows: rows, cells: make([][]rune, rows)}
	for i := range g.cells {
		g.cells[i] = make([]rune, cols)
	}
	g.clear()
	return g
}

func (g *brailleGrid) clear() {
	for i := range g.cells {
		for j := range g.cells[i] {
			g.cells[i][j] = blank
		}
	}
}

// set lights the dot at (x, y) in dot coordinates.
func (g *brailleGrid) set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= g.cols || row >= g.rows {
		return
	}
	g.cells[row][col] |= rune(pixelMap[y%4][x%2])
}

// rasterize samples img onto the dot raster; a dot is lit when the sampled
// pixel's luminance is at least threshold (0-255).
func (g *brailleGrid) rasterize(img image.Image, threshold uint32) {
	g.clear()
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	dotsX, dotsY := g.cols*2, g.rows*4
	for dy := 0; dy < dotsY; dy++ {
		py := b.Min.Y + dy*b.Dy()/dotsY
		for dx := 0; dx < dotsX; dx++ {
			px := b.Min.X + dx*b.Dx()/dotsX
			if luminance(img, px, py) >= threshold {
				g.set(dx, dy)
			}
		}
	}
}

func luminance(img image.Image, x, y int) uint32 {
	r, gr, b, _ := img.At(x, y).RGBA()
	// Rec. 601 weights on 16-bit channels, scaled down to 8 bits
	return (299*r + 587*gr + 114*b) / 1000 >> 8
}

func (g *brailleGrid) String() string {
	var sb strings.Builder
	sb.Grow(g.rows * (g.cols*3 + 1))
	for i, row := range g.cells {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(row))
	}
	return sb.String()
}
