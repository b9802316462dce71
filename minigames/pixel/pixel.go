// Package pixel implements the pixel-art coloring canvas: a square
// grid of color cells, optionally constrained by a template whose
// empty cells cannot be painted, with PNG export and image import.
package pixel

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
)

type Tool int

const (
	ToolBrush Tool = iota
	ToolEraser
)

// Background is the blank cell color.
var Background = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

const DefaultGridSize = 16

// Canvas is a direct-manipulation raster editor. It is not a state
// machine; every operation mutates the grid immediately.
type Canvas struct {
	size     int
	cells    [][]color.NRGBA
	template [][]int
	tool     Tool
	color    color.NRGBA
	stroke   bool
}

// NewCanvas returns a blank size x size canvas with no template.
func NewCanvas(size int) *Canvas {
	c := &Canvas{size: size, color: color.NRGBA{R: 0xFF, A: 0xFF}}
	c.clear()
	return c
}

// FromTemplate returns a blank canvas constrained by the template:
// cells where the template grid is zero are not colorable.
func FromTemplate(t Template) *Canvas {
	c := NewCanvas(len(t.Grid))
	c.template = t.Grid
	return c
}

// FromImage downsamples an image to a size x size canvas, averaging
// the source pixels that fall into each cell.
func FromImage(img image.Image, size int) *Canvas {
	c := NewCanvas(size)
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w == 0 || h == 0 {
		return c
	}

	for row := 0; row < size; row++ {
		y0 := bounds.Min.Y + row*h/size
		y1 := bounds.Min.Y + (row+1)*h/size
		if y1 == y0 {
			y1 = y0 + 1
		}
		for col := 0; col < size; col++ {
			x0 := bounds.Min.X + col*w/size
			x1 := bounds.Min.X + (col+1)*w/size
			if x1 == x0 {
				x1 = x0 + 1
			}

			var r, g, b, n uint64
			for y := y0; y < y1; y++ {
				for x := x0; x < x1; x++ {
					pr, pg, pb, _ := img.At(x, y).RGBA()
					r += uint64(pr >> 8)
					g += uint64(pg >> 8)
					b += uint64(pb >> 8)
					n++
				}
			}
			c.cells[row][col] = color.NRGBA{
				R: uint8(r / n),
				G: uint8(g / n),
				B: uint8(b / n),
				A: 0xFF,
			}
		}
	}
	return c
}

func (c *Canvas) clear() {
	c.cells = make([][]color.NRGBA, c.size)
	for i := range c.cells {
		c.cells[i] = make([]color.NRGBA, c.size)
		for j := range c.cells[i] {
			c.cells[i][j] = Background
		}
	}
}

func (c *Canvas) Size() int { return c.size }

// CellAt returns the color of one cell; Background for out-of-range.
func (c *Canvas) CellAt(row, col int) color.NRGBA {
	if row < 0 || row >= c.size || col < 0 || col >= c.size {
		return Background
	}
	return c.cells[row][col]
}

// HasTemplate reports whether a template constrains the canvas.
func (c *Canvas) HasTemplate() bool { return c.template != nil }

func (c *Canvas) SetColor(col color.NRGBA) { c.color = col }

func (c *Canvas) SetTool(t Tool) { c.tool = t }

// Paint colors one cell with the active tool. It reports false for
// no-ops: out of range, or a template cell that is not colorable.
func (c *Canvas) Paint(row, col int) bool {
	if row < 0 || row >= c.size || col < 0 || col >= c.size {
		return false
	}
	if c.template != nil && c.template[row][col] == 0 {
		return false
	}
	if c.tool == ToolEraser {
		c.cells[row][col] = Background
	} else {
		c.cells[row][col] = c.color
	}
	return true
}

// BeginStroke starts a drag-paint and paints the starting cell.
func (c *Canvas) BeginStroke(row, col int) {
	c.stroke = true
	c.Paint(row, col)
}

// EnterCell paints the cell the pointer moved into, but only while a
// stroke is active.
func (c *Canvas) EnterCell(row, col int) {
	if c.stroke {
		c.Paint(row, col)
	}
}

// EndStroke finishes the drag-paint.
func (c *Canvas) EndStroke() { c.stroke = false }

// Reset blanks the canvas; the template constraint, if any, stays.
func (c *Canvas) Reset() { c.clear() }

// Image rasterizes the canvas, drawing every cell as a cellSize block.
func (c *Canvas) Image(cellSize int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, c.size*cellSize, c.size*cellSize))
	for row := 0; row < c.size; row++ {
		for col := 0; col < c.size; col++ {
			block := image.Rect(col*cellSize, row*cellSize, (col+1)*cellSize, (row+1)*cellSize)
			draw.Draw(img, block, image.NewUniform(c.cells[row][col]), image.Point{}, draw.Src)
		}
	}
	return img
}

// EncodePNG writes the rasterized canvas as PNG.
func (c *Canvas) EncodePNG(w io.Writer, cellSize int) error {
	return png.Encode(w, c.Image(cellSize))
}

// ParseHex parses a #RRGGBB color.
func ParseHex(s string) (color.NRGBA, error) {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.NRGBA{R: r, G: g, B: b, A: 0xFF}, nil
}
