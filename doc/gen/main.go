// Command gen renders sample text buffers in a hidden window, captures the
// framebuffer and saves JPEG screenshots to doc/imgs/.
//
// Usage:
//
//	go run ./doc/gen/
package main

import (
	"fmt"
	"image/jpeg"
	"os"
	"path/filepath"
	"runtime"

	"github.com/go-theft-auto/glterm"
	"github.com/go-theft-auto/glterm/backend/opengl"
)

// The hidden window is larger than every screenshot. Resizing it would be
// processed asynchronously by GLFW, so only the viewport changes.
const (
	windowWidth  = 800
	windowHeight = 600
)

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// screenshot defines a single capture.
type screenshot struct {
	name       string // filename without extension
	width      int    // viewport width
	height     int    // viewport height
	cols, rows int
	debug      bool
	fill       func(tb *glterm.TextBuffer)
}

func run() error {
	var renderer *opengl.Renderer
	backend := func(cfg glterm.WindowConfig) (glterm.Window, glterm.Graphics, error) {
		win, gfx, err := opengl.Backend(cfg)
		if err != nil {
			return nil, nil, err
		}
		renderer = gfx.(*opengl.Renderer)
		return win, gfx, nil
	}

	term, err := glterm.New(
		glterm.WithBackend(backend),
		glterm.WithTitle("screenshot-gen"),
		glterm.WithDimensions(windowWidth, windowHeight),
		glterm.WithVisibility(false),
		glterm.WithClearColor(glterm.RGBAf(0.12, 0.12, 0.14, 1)),
	)
	if err != nil {
		return err
	}
	defer term.Destroy()

	outDir := filepath.Join("doc", "imgs")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	shots := buildScreenshots()
	for _, s := range shots {
		if err := capture(term, renderer, s, outDir); err != nil {
			return fmt.Errorf("capture %s: %w", s.name, err)
		}
		fmt.Printf("  %s.jpg (%dx%d)\n", s.name, s.width, s.height)
	}

	fmt.Printf("\nGenerated %d screenshots in %s/\n", len(shots), outDir)
	return nil
}

func capture(term *glterm.Terminal, renderer *opengl.Renderer, s screenshot, outDir string) error {
	term.Viewport().SetWindowSize(s.width, s.height)
	term.SetDebug(s.debug)

	tb, err := term.NewTextBuffer(s.cols, s.rows)
	if err != nil {
		return err
	}
	defer tb.Release()

	s.fill(tb)
	if err := term.Flush(tb); err != nil {
		return err
	}
	if err := term.Draw(tb); err != nil {
		return err
	}

	img := renderer.Capture(s.width, s.height)

	path := filepath.Join(outDir, s.name+".jpg")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
}

// buildScreenshots returns every screenshot to generate.
func buildScreenshots() []screenshot {
	return []screenshot{
		{
			name: "text", width: 480, height: 200, cols: 30, rows: 4,
			fill: func(tb *glterm.TextBuffer) {
				tb.PutString("Hello, World!\n")
				tb.PutString("The quick brown fox\njumps over the lazy dog.")
			},
		},
		{
			name: "colors", width: 480, height: 200, cols: 24, rows: 4,
			fill: func(tb *glterm.TextBuffer) {
				colors := []uint32{
					glterm.ColorRed, glterm.ColorGreen, glterm.ColorBlue,
					glterm.ColorYellow, glterm.ColorCyan, glterm.ColorMagenta,
				}
				for i, c := range colors {
					tb.SetColors(c, glterm.ColorTransparent)
					tb.PutString(fmt.Sprintf("color %d ", i))
				}
				tb.SetColors(glterm.ColorBlack, glterm.ColorWhite)
				tb.MoveCursor(0, 3)
				tb.PutString(" inverted ")
			},
		},
		{
			name: "charset", width: 640, height: 400, cols: 32, rows: 6,
			fill: func(tb *glterm.TextBuffer) {
				for r := rune(32); r < 127; r++ {
					tb.PutChar(r)
				}
				tb.PutString("\n")
				for r := rune(160); r < 256; r++ {
					tb.PutChar(r)
				}
			},
		},
		{
			name: "letterbox", width: 600, height: 200, cols: 8, rows: 4,
			fill: func(tb *glterm.TextBuffer) {
				tb.SetColors(glterm.ColorWhite, glterm.RGBA(40, 60, 100, 255))
				tb.Clear()
				tb.PutString("8x4 grid in a wide window")
			},
		},
		{
			name: "debug", width: 480, height: 200, cols: 20, rows: 3,
			debug: true,
			fill: func(tb *glterm.TextBuffer) {
				tb.SetColors(glterm.ColorWhite, glterm.ColorGray)
				tb.PutString("Wireframe view")
			},
		},
	}
}
