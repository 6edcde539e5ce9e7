// Example opens a terminal window, writes a few lines into a text buffer
// and runs the frame loop until the window is closed or Escape is pressed.
//
//	go run ./example/            # run with the bundled font
//	go run ./example/ -v         # with debug logging
//
// Press F3 to toggle the wireframe debug view.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/go-theft-auto/glterm"
	"github.com/go-theft-auto/glterm/backend/opengl"
)

const (
	windowWidth  = 1280
	windowHeight = 720
	windowTitle  = "glterm example"
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	verbose := flag.Bool("v", false, "enable debug logging")
	fontPath := flag.String("font", "", "font description (.sfl or .fnt) to load instead of the bundled font")
	flag.Parse()

	glterm.SetVerbose(*verbose)
	if err := run(*fontPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(fontPath string) error {
	opts := []glterm.Option{
		glterm.WithBackend(opengl.Backend),
		glterm.WithTitle(windowTitle),
		glterm.WithDimensions(windowWidth, windowHeight),
	}
	if fontPath != "" {
		font, err := glterm.Load(fontPath)
		if err != nil {
			return fmt.Errorf("load font: %w", err)
		}
		opts = append(opts, glterm.WithFont(font))
	}

	term, err := glterm.New(opts...)
	if err != nil {
		return err
	}
	defer term.Destroy()

	tb, err := term.NewTextBuffer(80, 24)
	if err != nil {
		return err
	}
	defer tb.Release()

	frame := 0
	for term.Refresh() {
		input := term.Input()
		if input.KeyPressed(glterm.KeyEscape) {
			term.Close()
		}

		// Flushing is heavy, so the status text is rebuilt every 30 frames.
		if frame%30 == 0 {
			tb.SetColors(glterm.ColorWhite, glterm.RGBA(20, 30, 50, 255))
			tb.Clear()
			tb.PutString("Hello, glterm!\n\n")
			tb.SetColors(glterm.ColorYellow, glterm.ColorTransparent)
			tb.PutString(fmt.Sprintf("fps: %.0f  debug: %v\n", term.FPS(), term.Debug()))
			tb.SetColors(glterm.ColorCyan, glterm.ColorTransparent)
			tb.PutString("F3 toggles wireframe, Esc quits.")
			if err := term.Flush(tb); err != nil {
				return err
			}
		}
		frame++

		if err := term.Draw(tb); err != nil {
			return err
		}
	}
	return nil
}
