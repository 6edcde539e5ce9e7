/*
Package glterm renders a grid of bitmap-font characters through OpenGL, for
games and tools that want a lightweight terminal-style display.

# Overview

A Terminal owns the window, a Viewport that letterboxes content to a target
aspect ratio, and the shader programs. Text is written into TextBuffers,
flushed into meshes, and drawn once per frame:

	term, err := glterm.New(
	    glterm.WithBackend(opengl.Backend),
	    glterm.WithTitle("Hello"),
	    glterm.WithDimensions(1280, 720),
	)
	if err != nil {
	    return err
	}
	defer term.Destroy()

	tb, _ := term.NewTextBuffer(80, 24)
	tb.PutString("Hello, World!")
	term.Flush(tb)

	for term.Refresh() {
	    if term.Input().KeyPressed(glterm.KeyEscape) {
	        term.Close()
	    }
	    term.Draw(tb)
	}

# Fonts

Fonts are a text description plus an RGBA atlas image. Two description
grammars are read: the compact .sfl layout

	Iosevka
	56 32
	iosevka.png
	191
	32 0 0 0 0 0 14 22
	...

(name, line height and size, atlas file, character count, then one
"id x y width height xoffset yoffset [xadvance]" line per character) and
the AngelCode BMFont text layout (.fnt). Load resolves the atlas next to
the description, LoadFS does the same inside an fs.FS, and LoadRaw takes
both parts from memory. All three produce identical fonts.

The atlas may be PNG, BMP, TIFF or WebP but must decode to 8-bit
non-premultiplied RGBA. It is never converted.

Glyphs are keyed by their id truncated to a byte, so only codes 0-255 are
distinct. Fonts with ids of 256 and above load, but those glyphs overwrite
the entry of their low byte.

# Debug mode

Debug mode draws glyph and background quads as wireframes with a separate
program. It is toggled with SetDebug or, during Refresh, by the key set
with WithDebugToggleKey (F3 by default).

# Headless

WithHeadless builds a terminal with no window or GPU, for tests of game
logic. Refresh, Close, FPS and Flush work; Draw, DrawMultiple and Program
return ErrUnsupportedOperation.

# Threading

A Terminal is driven by one goroutine, the one that runs the frame loop.
With the OpenGL backend that must be the locked main thread. Viewport is
safe for concurrent readers, and a Font is immutable once loaded.
*/
package glterm
