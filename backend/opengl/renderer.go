// Package opengl provides the GLFW window and OpenGL 4.1 renderer for glterm.
package opengl

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/go-theft-auto/glterm"
)

// programUniforms caches the uniform locations of one program.
type programUniforms struct {
	projection int32
	time       int32
	atlas      int32 // -1 in programs that do not sample the atlas
}

// Renderer implements glterm.Graphics using OpenGL.
// It must be created and used on the thread owning the GL context.
type Renderer struct {
	atlasTex uint32
	programs map[glterm.Program]programUniforms
}

// NewRenderer creates a renderer for the current GL context.
func NewRenderer() *Renderer {
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)

	return &Renderer{programs: make(map[glterm.Program]programUniforms)}
}

// Shaders returns the GLSL 4.10 sources for the terminal programs.
func (r *Renderer) Shaders() glterm.ShaderSources {
	return shaderSources
}

// CompileProgram compiles and links a program and caches its uniforms.
func (r *Renderer) CompileProgram(vertexSource, fragmentSource string) (glterm.Program, error) {
	id, err := createShaderProgram(vertexSource, fragmentSource)
	if err != nil {
		return glterm.NoProgram, err
	}
	p := glterm.Program(id)
	r.programs[p] = programUniforms{
		projection: gl.GetUniformLocation(id, gl.Str("projection\x00")),
		time:       gl.GetUniformLocation(id, gl.Str("time\x00")),
		atlas:      gl.GetUniformLocation(id, gl.Str("fontTexture\x00")),
	}
	return p, nil
}

// UploadAtlas replaces the font texture with an RGBA8 atlas.
func (r *Renderer) UploadAtlas(width, height int, pixels []byte) error {
	if len(pixels) != width*height*4 {
		return fmt.Errorf("atlas has %d bytes, want %d", len(pixels), width*height*4)
	}
	if r.atlasTex != 0 {
		gl.DeleteTextures(1, &r.atlasTex)
	}

	gl.GenTextures(1, &r.atlasTex)
	gl.BindTexture(gl.TEXTURE_2D, r.atlasTex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return nil
}

// NewMesh uploads vertices into a new static mesh.
func (r *Renderer) NewMesh(kind glterm.MeshKind, vertices []glterm.Vertex) (glterm.Mesh, error) {
	return newMesh(kind, vertices), nil
}

// SetClearColor sets the color Clear fills the frame with.
func (r *Renderer) SetClearColor(color uint32) {
	cr, cg, cb, ca := glterm.UnpackRGBA(color)
	gl.ClearColor(float32(cr)/255, float32(cg)/255, float32(cb)/255, float32(ca)/255)
}

// SetWireframe toggles polygon mode between LINE and FILL.
func (r *Renderer) SetWireframe(on bool) {
	if on {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

// Clear clears the color buffer.
func (r *Renderer) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// SetViewport updates the GL viewport size.
func (r *Renderer) SetViewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Draw issues one draw call for mesh with the given program.
func (r *Renderer) Draw(program glterm.Program, projection mgl32.Mat4, time float32, mesh glterm.Mesh) error {
	if program == glterm.NoProgram {
		return errors.New("draw with no program")
	}
	u, ok := r.programs[program]
	if !ok {
		return fmt.Errorf("program %d was not compiled by this renderer", program)
	}
	m, ok := mesh.(*Mesh)
	if !ok {
		return fmt.Errorf("mesh %T was not created by this renderer", mesh)
	}
	if m.count == 0 {
		return nil
	}

	gl.UseProgram(uint32(program))
	gl.UniformMatrix4fv(u.projection, 1, false, &projection[0])
	gl.Uniform1f(u.time, time)
	if u.atlas >= 0 {
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, r.atlasTex)
		gl.Uniform1i(u.atlas, 0)
	}

	gl.BindVertexArray(m.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, m.count)
	gl.BindVertexArray(0)
	return nil
}

// Delete releases OpenGL resources.
func (r *Renderer) Delete() {
	if r.atlasTex != 0 {
		gl.DeleteTextures(1, &r.atlasTex)
		r.atlasTex = 0
	}
	for p := range r.programs {
		gl.DeleteProgram(uint32(p))
	}
	clear(r.programs)
}

// createShaderProgram compiles and links a shader program.
func createShaderProgram(vertexSource, fragmentSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex shader compilation failed: %w", err)
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment shader compilation failed: %w", err)
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetProgramInfoLog(program, logLength, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("shader program linking failed: %s", string(log))
	}

	return program, nil
}

func compileShader(source string, kind uint32) (uint32, error) {
	shader := gl.CreateShader(kind)
	csource, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetShaderInfoLog(shader, logLength, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, errors.New(string(log))
	}
	return shader, nil
}
