package glterm

import "testing"

func testFont(t *testing.T) *Font {
	t.Helper()
	f, err := DefaultFont()
	if err != nil {
		t.Fatalf("DefaultFont: %v", err)
	}
	return f
}

func TestTextBufferAspectRatio(t *testing.T) {
	tb, err := NewTextBuffer(testFont(t), 80, 24)
	if err != nil {
		t.Fatal(err)
	}
	want := float32(80*22) / float32(24*56)
	if tb.AspectRatio() != want {
		t.Errorf("AspectRatio = %v, want %v", tb.AspectRatio(), want)
	}
}

func TestTextBufferInvalidSize(t *testing.T) {
	for _, size := range [][2]int{{0, 1}, {1, 0}, {-3, 4}} {
		if _, err := NewTextBuffer(testFont(t), size[0], size[1]); err == nil {
			t.Errorf("NewTextBuffer(%d, %d) succeeded", size[0], size[1])
		}
	}
}

func TestTextBufferWrapping(t *testing.T) {
	tb, err := NewTextBuffer(testFont(t), 3, 2)
	if err != nil {
		t.Fatal(err)
	}

	tb.PutString("abcdefgh")
	want := []rune("abcdef")
	for i, r := range want {
		c, _ := tb.Cell(i%3, i/3)
		if c.Char != r {
			t.Errorf("cell %d = %q, want %q", i, c.Char, r)
		}
	}
	if x, y := tb.Cursor(); x != 0 || y != 2 {
		t.Errorf("Cursor = %d, %d, want 0, 2", x, y)
	}

	tb.Clear()
	if x, y := tb.Cursor(); x != 0 || y != 0 {
		t.Errorf("Cursor after Clear = %d, %d", x, y)
	}
	tb.PutString("a\nb")
	if c, _ := tb.Cell(0, 1); c.Char != 'b' {
		t.Errorf("cell (0,1) = %q, want 'b'", c.Char)
	}
	if c, _ := tb.Cell(1, 0); c.Char != ' ' {
		t.Errorf("cell (1,0) = %q, want ' '", c.Char)
	}
}

func TestTextBufferCursorClamp(t *testing.T) {
	tb, err := NewTextBuffer(testFont(t), 4, 3)
	if err != nil {
		t.Fatal(err)
	}
	tb.MoveCursor(10, -2)
	if x, y := tb.Cursor(); x != 3 || y != 0 {
		t.Errorf("Cursor = %d, %d, want 3, 0", x, y)
	}
	if _, ok := tb.Cell(4, 0); ok {
		t.Error("Cell outside the grid reported ok")
	}
}

func TestTextBufferColors(t *testing.T) {
	tb, err := NewTextBuffer(testFont(t), 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	tb.SetColors(ColorRed, ColorBlue)
	tb.PutChar('x')

	c, _ := tb.Cell(0, 0)
	if c.Fg != ColorRed || c.Bg != ColorBlue {
		t.Errorf("cell colors = %#x, %#x", c.Fg, c.Bg)
	}
	if c, _ := tb.Cell(1, 0); c.Bg != ColorTransparent {
		t.Errorf("untouched cell bg = %#x, want transparent", c.Bg)
	}

	tb.SetForeground(ColorYellow)
	tb.SetBackground(ColorBlack)
	tb.Clear()
	tb.PutChar('y')
	if c, _ := tb.Cell(0, 0); c.Fg != ColorYellow || c.Bg != ColorBlack {
		t.Errorf("cell colors after setters = %#x, %#x", c.Fg, c.Bg)
	}
	if c, _ := tb.Cell(1, 0); c.Bg != ColorBlack {
		t.Errorf("cleared cell bg = %#x, want black", c.Bg)
	}
}

func TestTextBufferRebuild(t *testing.T) {
	font := testFont(t)
	tb, err := NewTextBuffer(font, 4, 2)
	if err != nil {
		t.Fatal(err)
	}

	tb.PutString("a b")
	tb.SetColors(ColorWhite, ColorGreen)
	tb.PutChar('c')
	tb.rebuild(font)

	// 'a', 'b' and 'c' get glyphs; only 'c' has an opaque background.
	if len(tb.fgVertices) != 3*6 {
		t.Errorf("foreground vertices = %d, want 18", len(tb.fgVertices))
	}
	if len(tb.bgVertices) != 6 {
		t.Fatalf("background vertices = %d, want 6", len(tb.bgVertices))
	}

	// The background quad of cell (3, 0) spans a quarter of the width and
	// half the height.
	tl, br := tb.bgVertices[0], tb.bgVertices[5]
	if tl.Pos != [2]float32{0.75, 0} || br.Pos != [2]float32{1, 0.5} {
		t.Errorf("background quad = %v..%v", tl.Pos, br.Pos)
	}
	if tl.Color != ColorGreen {
		t.Errorf("background color = %#x", tl.Color)
	}

	g, _ := font.Glyph('a')
	first := tb.fgVertices[0]
	if first.TexCoord != [2]float32{g.U0, g.V0} {
		t.Errorf("first glyph tex coord = %v, want %v", first.TexCoord, [2]float32{g.U0, g.V0})
	}
	cw, ch := font.CellSize()
	wantX := float32(g.XOffset) / float32(4*cw)
	wantY := float32(g.YOffset-font.MinYOffset()) / float32(2*ch)
	if first.Pos != [2]float32{wantX, wantY} {
		t.Errorf("first glyph pos = %v, want %v", first.Pos, [2]float32{wantX, wantY})
	}

	// Rebuilding from the same cells yields the same geometry.
	before := append([]Vertex(nil), tb.fgVertices...)
	tb.rebuild(font)
	if len(before) != len(tb.fgVertices) {
		t.Fatal("rebuild is not stable")
	}
	for i := range before {
		if before[i] != tb.fgVertices[i] {
			t.Fatalf("vertex %d changed on rebuild", i)
		}
	}
}

func TestTextBufferMissingGlyphFallback(t *testing.T) {
	font := testFont(t)
	tb, err := NewTextBuffer(font, 2, 1)
	if err != nil {
		t.Fatal(err)
	}

	// U+2603 truncates to 0x03, which the font lacks.
	tb.PutChar('☃')
	tb.rebuild(font)

	if len(tb.fgVertices) != 6 {
		t.Fatalf("foreground vertices = %d, want 6", len(tb.fgVertices))
	}
	q, _ := font.Glyph('?')
	if tb.fgVertices[0].TexCoord != [2]float32{q.U0, q.V0} {
		t.Error("missing glyph did not fall back to '?'")
	}
}

func TestAppendQuadWinding(t *testing.T) {
	v := appendQuad(nil, 0, 0, 1, 1, 0, 0, 1, 1, ColorWhite)
	if len(v) != 6 {
		t.Fatalf("got %d vertices, want 6", len(v))
	}
	want := [][2]float32{{0, 0}, {0, 1}, {1, 0}, {1, 0}, {0, 1}, {1, 1}}
	for i, p := range want {
		if v[i].Pos != p || v[i].TexCoord != p {
			t.Errorf("vertex %d = %v/%v, want %v", i, v[i].Pos, v[i].TexCoord, p)
		}
	}
}
