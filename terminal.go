package glterm

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"
)

// State is the lifecycle state of a Terminal.
type State int

const (
	// StateActive is the initial state: Refresh reports true.
	StateActive State = iota
	// StateClosing is terminal: entered by Close or a window close event.
	StateClosing
)

func (s State) String() string {
	if s == StateClosing {
		return "closing"
	}
	return "active"
}

// RenderMode selects which programs draw calls use.
type RenderMode int

const (
	ModeNormal RenderMode = iota
	ModeDebug
)

// programTable maps a render mode and mesh kind to a compiled program.
// Debug mode draws every kind with the same wireframe program.
type programTable struct {
	normal [2]Program // indexed by MeshKind
	debug  Program
}

func (p programTable) lookup(mode RenderMode, kind MeshKind) Program {
	if mode == ModeDebug {
		return p.debug
	}
	return p.normal[kind]
}

// renderTarget is the graphics side of a Terminal. A headless terminal has
// none, so every graphics path checks for it in one place.
type renderTarget struct {
	window   Window
	gfx      Graphics
	programs programTable
}

// Terminal owns the window, the viewport and the frame loop state, and
// sequences draw calls for text buffers.
//
// A Terminal is driven from a single goroutine: the one running the frame
// loop.
type Terminal struct {
	target   *renderTarget // nil when headless
	viewport *Viewport
	font     *Font
	frames   *FrameCounter
	input    InputState

	bufferRatio bool
	debugKey    Key
	debug       bool
	running     atomic.Bool

	start time.Time
	now   func() time.Time
}

// New opens a terminal. Unless WithHeadless is given, a Backend must be
// supplied with WithBackend.
func New(opts ...Option) (*Terminal, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.width <= 0 || cfg.height <= 0 {
		return nil, fmt.Errorf("glterm: invalid dimensions %dx%d", cfg.width, cfg.height)
	}
	if cfg.font == nil {
		f, err := DefaultFont()
		if err != nil {
			return nil, fmt.Errorf("glterm: load default font: %w", err)
		}
		cfg.font = f
	}
	if cfg.now == nil {
		cfg.now = time.Now
	}

	t := &Terminal{
		font:        cfg.font,
		frames:      NewFrameCounter(cfg.now),
		bufferRatio: cfg.bufferRatio,
		debugKey:    cfg.debugKey,
		start:       cfg.now(),
		now:         cfg.now,
	}
	t.running.Store(true)

	ratio := float32(cfg.width) / float32(cfg.height)
	if cfg.headless {
		t.viewport = NewViewport(cfg.width, cfg.height, ratio, nil)
		return t, nil
	}

	if cfg.backend == nil {
		return nil, errors.New("glterm: no graphics backend, use WithBackend or WithHeadless")
	}
	target, err := openTarget(cfg)
	if err != nil {
		return nil, err
	}
	t.target = target
	t.viewport = NewViewport(cfg.width, cfg.height, ratio, target.gfx.SetViewport)
	target.gfx.SetViewport(cfg.width, cfg.height)

	Logger().Info("terminal opened", "title", cfg.title, "width", cfg.width, "height", cfg.height, "font", cfg.font.Name)
	return t, nil
}

func openTarget(cfg config) (*renderTarget, error) {
	window, gfx, err := cfg.backend(WindowConfig{
		Title:      cfg.title,
		Width:      cfg.width,
		Height:     cfg.height,
		Visible:    cfg.visible,
		ClearColor: cfg.clearColor,
	})
	if err != nil {
		return nil, fmt.Errorf("glterm: open window: %w", err)
	}

	fail := func(err error) (*renderTarget, error) {
		gfx.Delete()
		window.Destroy()
		return nil, err
	}

	src := gfx.Shaders()
	var programs programTable
	builds := []struct {
		name string
		frag string
		dst  *Program
	}{
		{"foreground", src.Foreground, &programs.normal[MeshForeground]},
		{"background", src.Background, &programs.normal[MeshBackground]},
		{"debug", src.Debug, &programs.debug},
	}
	for _, b := range builds {
		p, err := gfx.CompileProgram(src.Vertex, b.frag)
		if err != nil {
			return fail(fmt.Errorf("glterm: compile %s program: %w", b.name, err))
		}
		*b.dst = p
	}

	if err := gfx.UploadAtlas(cfg.font.AtlasWidth(), cfg.font.AtlasHeight(), cfg.font.AtlasPixels()); err != nil {
		return fail(fmt.Errorf("glterm: upload font atlas: %w", err))
	}
	gfx.SetClearColor(cfg.clearColor)

	return &renderTarget{window: window, gfx: gfx, programs: programs}, nil
}

// Headless reports whether the terminal was built without a backend.
func (t *Terminal) Headless() bool {
	return t.target == nil
}

// Refresh advances one frame: it counts the frame, swaps the displayed
// buffer, drains window events and handles the debug toggle key. It returns
// whether the frame loop should keep running.
func (t *Terminal) Refresh() bool {
	t.frames.Update()

	if t.target == nil {
		return t.State() == StateActive
	}

	t.input.Reset()
	t.target.window.SwapBuffers()

	for _, ev := range t.target.window.PollEvents() {
		switch ev.Kind {
		case EventClosed:
			t.Close()
		case EventResized:
			Logger().Debug("window resized", "width", ev.Width, "height", ev.Height)
			t.viewport.SetWindowSize(ev.Width, ev.Height)
		case EventKey:
			t.input.SetKey(ev.Key, ev.Pressed)
		}
	}

	if t.debugKey != KeyNone && t.input.KeyPressed(t.debugKey) {
		t.SetDebug(!t.debug)
	}

	return t.State() == StateActive
}

// Close asks the frame loop to stop. Only the first call has an effect.
func (t *Terminal) Close() {
	if t.running.CompareAndSwap(true, false) {
		Logger().Debug("terminal closing")
	}
}

// State returns the lifecycle state.
func (t *Terminal) State() State {
	if t.running.Load() {
		return StateActive
	}
	return StateClosing
}

// Running reports whether Close has not been requested yet.
func (t *Terminal) Running() bool {
	return t.running.Load()
}

// SetDebug switches debug mode, which draws glyphs and cell backgrounds as
// wireframes. It does nothing on a headless terminal.
func (t *Terminal) SetDebug(debug bool) {
	if t.target == nil || t.debug == debug {
		return
	}
	t.target.gfx.SetWireframe(debug)
	t.debug = debug
	Logger().Info("debug mode", "enabled", debug)
}

// Debug reports whether debug mode is on.
func (t *Terminal) Debug() bool {
	return t.debug
}

// Mode returns the render mode implied by the debug flag.
func (t *Terminal) Mode() RenderMode {
	if t.debug {
		return ModeDebug
	}
	return ModeNormal
}

// Program returns the program used for meshes of the given kind in the
// current mode. It fails with ErrUnsupportedOperation when headless.
func (t *Terminal) Program(kind MeshKind) (Program, error) {
	if t.target == nil {
		return NoProgram, fmt.Errorf("%w: program lookup on headless terminal", ErrUnsupportedOperation)
	}
	return t.target.programs.lookup(t.Mode(), kind), nil
}

// Flush rebuilds the meshes of tb from its cells so the next draw shows
// them. This is heavy; call it only after the buffer changed. A headless
// terminal builds the geometry but uploads nothing.
func (t *Terminal) Flush(tb *TextBuffer) error {
	tb.rebuild(t.font)
	if t.target == nil {
		return nil
	}
	return tb.upload(t.target.gfx)
}

// Draw clears the frame and draws one drawable. A drawable without meshes
// is skipped and nothing is cleared.
func (t *Terminal) Draw(d Drawable) error {
	if t.target == nil {
		return fmt.Errorf("%w: draw on headless terminal", ErrUnsupportedOperation)
	}
	fg, bg, ok := d.Meshes()
	if !ok {
		return nil
	}
	t.target.gfx.Clear()
	return t.drawMeshes(d, fg, bg)
}

// DrawMultiple clears the frame once and draws each drawable in order,
// skipping those without meshes. Use it instead of Draw when several text
// buffers share a frame.
func (t *Terminal) DrawMultiple(ds ...Drawable) error {
	if t.target == nil {
		return fmt.Errorf("%w: draw on headless terminal", ErrUnsupportedOperation)
	}
	t.target.gfx.Clear()
	for _, d := range ds {
		fg, bg, ok := d.Meshes()
		if !ok {
			continue
		}
		if err := t.drawMeshes(d, fg, bg); err != nil {
			return err
		}
	}
	return nil
}

func (t *Terminal) drawMeshes(d Drawable, fg, bg Mesh) error {
	if t.bufferRatio {
		if r := d.AspectRatio(); r != t.viewport.TargetAspectRatio() {
			t.viewport.SetTargetAspectRatio(r)
		}
	}

	elapsed := float32(t.now().Sub(t.start).Seconds())
	proj := t.viewport.Projection()
	mode := t.Mode()

	for _, m := range []Mesh{bg, fg} {
		program := t.target.programs.lookup(mode, m.Kind())
		if err := t.target.gfx.Draw(program, proj, elapsed, m); err != nil {
			return fmt.Errorf("glterm: draw %s: %w", m.Kind(), err)
		}
	}
	return nil
}

// Input returns a snapshot of the keyboard state for this frame. Fetch it
// again every frame. A headless terminal always reports no keys.
func (t *Terminal) Input() InputState {
	return t.input
}

// SetTitle changes the window title. Calling it every frame is expensive.
func (t *Terminal) SetTitle(title string) {
	if t.target != nil {
		t.target.window.SetTitle(title)
	}
}

// Show makes a hidden window visible.
func (t *Terminal) Show() {
	if t.target != nil {
		t.target.window.Show()
	}
}

// FPS returns the frames counted in the last full second.
func (t *Terminal) FPS() float32 {
	return t.frames.FPS()
}

// Font returns the font text buffers are laid out with.
func (t *Terminal) Font() *Font {
	return t.font
}

// Viewport returns the terminal's viewport.
func (t *Terminal) Viewport() *Viewport {
	return t.viewport
}

// Destroy releases the graphics backend and closes the window. The
// terminal must not be used afterwards.
func (t *Terminal) Destroy() {
	t.Close()
	if t.target != nil {
		t.target.gfx.Delete()
		t.target.window.Destroy()
		t.target = nil
	}
}
