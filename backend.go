package glterm

import "github.com/go-gl/mathgl/mgl32"

// Program is an opaque handle to a compiled shader program.
type Program uint32

// NoProgram is the zero handle. Backends reject it in Draw.
const NoProgram Program = 0

// Mesh is a GPU-resident vertex buffer ready for a draw call.
type Mesh interface {
	Kind() MeshKind
	VertexCount() int
	// Release frees the GPU buffers. The mesh must not be drawn afterwards.
	Release()
}

// Drawable is anything the terminal can draw: an aspect ratio and, once
// flushed, a foreground and background mesh.
type Drawable interface {
	AspectRatio() float32
	// Meshes returns ok == false until both meshes exist.
	Meshes() (foreground, background Mesh, ok bool)
}

// EventKind identifies a window event.
type EventKind int

const (
	EventClosed EventKind = iota
	EventResized
	EventKey
)

// Event is a window event drained by Window.PollEvents.
type Event struct {
	Kind EventKind

	// EventResized
	Width, Height int

	// EventKey
	Key     Key
	Pressed bool
}

// Window is the platform window and its event queue.
type Window interface {
	// PollEvents returns the events that arrived since the last call
	// without blocking.
	PollEvents() []Event
	SwapBuffers()
	SetTitle(title string)
	Show()
	Destroy()
}

// ShaderSources holds the GLSL sources a backend compiles for the
// terminal. Every fragment shader pairs with the one vertex shader.
type ShaderSources struct {
	Vertex     string
	Foreground string
	Background string
	Debug      string
}

// Graphics is the draw-call surface of a graphics backend.
type Graphics interface {
	Shaders() ShaderSources
	CompileProgram(vertexSource, fragmentSource string) (Program, error)

	// UploadAtlas makes the RGBA8 font atlas the texture glyph meshes
	// sample from.
	UploadAtlas(width, height int, pixels []byte) error
	NewMesh(kind MeshKind, vertices []Vertex) (Mesh, error)

	SetClearColor(color uint32)
	// SetWireframe switches polygon rasterization to outlines for debug mode.
	SetWireframe(on bool)
	Clear()
	SetViewport(width, height int)
	Draw(program Program, projection mgl32.Mat4, time float32, mesh Mesh) error

	// Delete releases programs and textures owned by the backend.
	Delete()
}

// WindowConfig describes the window a Backend opens.
type WindowConfig struct {
	Title      string
	Width      int
	Height     int
	Visible    bool
	ClearColor uint32
}

// Backend opens a window and its graphics context.
type Backend func(cfg WindowConfig) (Window, Graphics, error)
