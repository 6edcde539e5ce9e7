package glterm

import "time"

// Option configures a Terminal.
type Option func(*config)

// config holds everything New needs to open a terminal.
type config struct {
	title       string
	width       int
	height      int
	clearColor  uint32
	font        *Font
	visible     bool
	headless    bool
	bufferRatio bool
	backend     Backend
	debugKey    Key
	now         func() time.Time
}

func defaultConfig() config {
	return config{
		title:       "Hello, World ! ",
		width:       1280,
		height:      720,
		clearColor:  RGBAf(0.14, 0.19, 0.28, 1.0),
		visible:     true,
		bufferRatio: true,
		debugKey:    KeyF3,
		now:         time.Now,
	}
}

// WithTitle sets the window title.
func WithTitle(title string) Option {
	return func(c *config) { c.title = title }
}

// WithDimensions sets the size the window opens with.
func WithDimensions(width, height int) Option {
	return func(c *config) { c.width, c.height = width, height }
}

// WithClearColor sets the color the frame is cleared to, packed as by RGBA.
func WithClearColor(color uint32) Option {
	return func(c *config) { c.clearColor = color }
}

// WithFont replaces the bundled font.
func WithFont(font *Font) Option {
	return func(c *config) { c.font = font }
}

// WithVisibility sets whether the window opens visible. Ignored when headless.
func WithVisibility(visible bool) Option {
	return func(c *config) { c.visible = visible }
}

// WithHeadless builds a terminal without window or graphics backend, for
// logic-only tests. Draw calls on it return ErrUnsupportedOperation.
func WithHeadless(headless bool) Option {
	return func(c *config) { c.headless = headless }
}

// WithTextBufferAspectRatio chooses where the letterboxing ratio comes from.
//
// When true (default) the ratio follows the drawn TextBuffer, so nearly any
// window gets bars instead of distorted glyphs. When false the ratio of the
// initial window size is kept, which stretches the font a little.
func WithTextBufferAspectRatio(enabled bool) Option {
	return func(c *config) { c.bufferRatio = enabled }
}

// WithBackend sets the function that opens the window and graphics context,
// such as opengl.Backend.
func WithBackend(backend Backend) Option {
	return func(c *config) { c.backend = backend }
}

// WithDebugToggleKey sets the key that flips debug (wireframe) mode during
// Refresh. KeyNone disables the toggle. Default is KeyF3.
func WithDebugToggleKey(key Key) Option {
	return func(c *config) { c.debugKey = key }
}

// WithClock replaces time.Now for frame timing and shader time.
func WithClock(now func() time.Time) Option {
	return func(c *config) { c.now = now }
}
