package glterm

import "fmt"

// Cell is one character position of a TextBuffer.
type Cell struct {
	Char rune
	Fg   uint32
	Bg   uint32
}

// TextBuffer is a monospace grid of cells written through a cursor. Writes
// only show after Terminal.Flush rebuilds the meshes.
type TextBuffer struct {
	cols, rows  int
	cells       []Cell
	cursorX     int
	cursorY     int
	fg, bg      uint32
	aspectRatio float32

	// Geometry from the last flush, in the unit square.
	fgVertices []Vertex
	bgVertices []Vertex

	fgMesh Mesh
	bgMesh Mesh
}

// NewTextBuffer creates a cols x rows buffer laid out with the terminal's
// font.
func (t *Terminal) NewTextBuffer(cols, rows int) (*TextBuffer, error) {
	return NewTextBuffer(t.font, cols, rows)
}

// NewTextBuffer creates a cols x rows buffer whose aspect ratio follows the
// cell size of font.
func NewTextBuffer(font *Font, cols, rows int) (*TextBuffer, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("glterm: invalid text buffer size %dx%d", cols, rows)
	}
	cw, ch := font.CellSize()
	tb := &TextBuffer{
		cols:        cols,
		rows:        rows,
		cells:       make([]Cell, cols*rows),
		fg:          ColorWhite,
		bg:          ColorTransparent,
		aspectRatio: float32(cols*cw) / float32(rows*ch),
	}
	tb.Clear()
	return tb, nil
}

// Size returns the grid size in cells.
func (tb *TextBuffer) Size() (cols, rows int) {
	return tb.cols, tb.rows
}

// AspectRatio returns the pixel width/height ratio of the whole grid.
func (tb *TextBuffer) AspectRatio() float32 {
	return tb.aspectRatio
}

// Meshes returns the meshes built by the last flush.
func (tb *TextBuffer) Meshes() (foreground, background Mesh, ok bool) {
	if tb.fgMesh == nil || tb.bgMesh == nil {
		return nil, nil, false
	}
	return tb.fgMesh, tb.bgMesh, true
}

// SetColors sets the colors used by subsequent writes.
func (tb *TextBuffer) SetColors(fg, bg uint32) {
	tb.fg, tb.bg = fg, bg
}

// SetForeground sets the glyph color used by subsequent writes.
func (tb *TextBuffer) SetForeground(fg uint32) { tb.fg = fg }

// SetBackground sets the cell color used by subsequent writes and Clear.
func (tb *TextBuffer) SetBackground(bg uint32) { tb.bg = bg }

// Clear fills the grid with spaces in the current background color and
// homes the cursor.
func (tb *TextBuffer) Clear() {
	for i := range tb.cells {
		tb.cells[i] = Cell{Char: ' ', Fg: tb.fg, Bg: tb.bg}
	}
	tb.cursorX, tb.cursorY = 0, 0
}

// MoveCursor places the cursor, clamped to the grid.
func (tb *TextBuffer) MoveCursor(x, y int) {
	tb.cursorX = min(max(x, 0), tb.cols-1)
	tb.cursorY = min(max(y, 0), tb.rows-1)
}

// Cursor returns the cursor position.
func (tb *TextBuffer) Cursor() (x, y int) {
	return tb.cursorX, tb.cursorY
}

// PutChar writes r at the cursor and advances it, wrapping at the end of a
// row. Writes past the last cell are dropped.
func (tb *TextBuffer) PutChar(r rune) {
	if tb.cursorY >= tb.rows {
		return
	}
	tb.cells[tb.cursorY*tb.cols+tb.cursorX] = Cell{Char: r, Fg: tb.fg, Bg: tb.bg}
	tb.cursorX++
	if tb.cursorX >= tb.cols {
		tb.cursorX = 0
		tb.cursorY++
	}
}

// PutString writes s from the cursor. '\n' moves to the next row.
func (tb *TextBuffer) PutString(s string) {
	for _, r := range s {
		if r == '\n' {
			tb.cursorX = 0
			tb.cursorY++
			continue
		}
		tb.PutChar(r)
	}
}

// Cell returns the cell at x, y.
func (tb *TextBuffer) Cell(x, y int) (Cell, bool) {
	if x < 0 || y < 0 || x >= tb.cols || y >= tb.rows {
		return Cell{}, false
	}
	return tb.cells[y*tb.cols+x], true
}

// rebuild regenerates the quad geometry for every cell. Characters missing
// from the font fall back to '?', or are skipped if that is missing too.
func (tb *TextBuffer) rebuild(font *Font) {
	cw, ch := font.CellSize()
	gridW := float32(tb.cols * cw)
	gridH := float32(tb.rows * ch)
	minY := font.MinYOffset()

	tb.fgVertices = tb.fgVertices[:0]
	tb.bgVertices = tb.bgVertices[:0]

	for y := 0; y < tb.rows; y++ {
		for x := 0; x < tb.cols; x++ {
			c := tb.cells[y*tb.cols+x]

			if _, _, _, a := UnpackRGBA(c.Bg); a > 0 {
				x0, y0 := float32(x)/float32(tb.cols), float32(y)/float32(tb.rows)
				x1, y1 := float32(x+1)/float32(tb.cols), float32(y+1)/float32(tb.rows)
				tb.bgVertices = appendQuad(tb.bgVertices, x0, y0, x1, y1, 0, 0, 0, 0, c.Bg)
			}

			if c.Char == ' ' {
				continue
			}
			g, err := font.Glyph(c.Char)
			if err != nil {
				if g, err = font.Glyph('?'); err != nil {
					continue
				}
			}
			if g.Width == 0 || g.Height == 0 {
				continue
			}

			px := float32(x*cw + g.XOffset)
			py := float32(y*ch + g.YOffset - minY)
			tb.fgVertices = appendQuad(tb.fgVertices,
				px/gridW, py/gridH,
				(px+float32(g.Width))/gridW, (py+float32(g.Height))/gridH,
				g.U0, g.V0, g.U1, g.V1, c.Fg)
		}
	}
}

// upload replaces the meshes with ones built from the current geometry.
func (tb *TextBuffer) upload(gfx Graphics) error {
	fg, err := gfx.NewMesh(MeshForeground, tb.fgVertices)
	if err != nil {
		return fmt.Errorf("glterm: build foreground mesh: %w", err)
	}
	bg, err := gfx.NewMesh(MeshBackground, tb.bgVertices)
	if err != nil {
		fg.Release()
		return fmt.Errorf("glterm: build background mesh: %w", err)
	}
	tb.Release()
	tb.fgMesh, tb.bgMesh = fg, bg
	return nil
}

// Release frees the buffer's meshes. The buffer can be flushed again.
func (tb *TextBuffer) Release() {
	if tb.fgMesh != nil {
		tb.fgMesh.Release()
		tb.fgMesh = nil
	}
	if tb.bgMesh != nil {
		tb.bgMesh.Release()
		tb.bgMesh = nil
	}
}

// appendQuad adds two triangles covering (x0, y0)-(x1, y1).
func appendQuad(v []Vertex, x0, y0, x1, y1, u0, v0, u1, v1 float32, color uint32) []Vertex {
	tl := Vertex{Pos: [2]float32{x0, y0}, TexCoord: [2]float32{u0, v0}, Color: color}
	tr := Vertex{Pos: [2]float32{x1, y0}, TexCoord: [2]float32{u1, v0}, Color: color}
	bl := Vertex{Pos: [2]float32{x0, y1}, TexCoord: [2]float32{u0, v1}, Color: color}
	br := Vertex{Pos: [2]float32{x1, y1}, TexCoord: [2]float32{u1, v1}, Color: color}
	return append(v, tl, bl, tr, tr, bl, br)
}
