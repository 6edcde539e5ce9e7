package opengl

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/go-theft-auto/glterm"
)

// Mesh is a static vertex buffer of glyph or cell quads.
type Mesh struct {
	kind  glterm.MeshKind
	vao   uint32
	vbo   uint32
	count int32
}

func newMesh(kind glterm.MeshKind, vertices []glterm.Vertex) *Mesh {
	m := &Mesh{kind: kind, count: int32(len(vertices))}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	if len(vertices) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*int(unsafe.Sizeof(glterm.Vertex{})),
			gl.Ptr(vertices), gl.STATIC_DRAW)
	}

	// Vertex layout: Pos (2 floats) + TexCoord (2 floats) + Color (1 uint32)
	stride := int32(unsafe.Sizeof(glterm.Vertex{}))

	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)

	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, unsafe.Offsetof(glterm.Vertex{}.TexCoord))
	gl.EnableVertexAttribArray(1)

	// Color attribute (normalized uint8x4)
	gl.VertexAttribPointerWithOffset(2, 4, gl.UNSIGNED_BYTE, true, stride, unsafe.Offsetof(glterm.Vertex{}.Color))
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)
	return m
}

// Kind reports whether the mesh holds glyphs or cell backgrounds.
func (m *Mesh) Kind() glterm.MeshKind { return m.kind }

// VertexCount returns the number of vertices drawn.
func (m *Mesh) VertexCount() int { return int(m.count) }

// Release deletes the GL buffers.
func (m *Mesh) Release() {
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
		m.vbo = 0
	}
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
	m.count = 0
}
