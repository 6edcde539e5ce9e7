package opengl

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/glterm"
)

func TestVersionCompatible(t *testing.T) {
	tests := []struct {
		version string
		want    bool
	}{
		{"4.1 Metal - 88", true},
		{"3.3.0 NVIDIA 535.54", true},
		{"4.6 (Core Profile) Mesa 23.2.1", true},
		{"3.2.0", false},
		{"2.1 Mesa 10.1", false},
		{"", false},
		{"OpenGL ES 3.2", false},
	}
	for _, tt := range tests {
		if got := versionCompatible(tt.version); got != tt.want {
			t.Errorf("versionCompatible(%q) = %v, want %v", tt.version, got, tt.want)
		}
	}
}

func TestGLFWKeyMapping(t *testing.T) {
	tests := []struct {
		key  glfw.Key
		want glterm.Key
	}{
		{glfw.KeyA, glterm.KeyA},
		{glfw.KeyQ, glterm.KeyQ},
		{glfw.Key0, glterm.Key0},
		{glfw.Key7, glterm.Key7},
		{glfw.KeyF3, glterm.KeyF3},
		{glfw.KeyF12, glterm.KeyF12},
		{glfw.KeyEscape, glterm.KeyEscape},
		{glfw.KeyEnter, glterm.KeyEnter},
		{glfw.KeyPageUp, glterm.KeyPageUp},
		{glfw.KeyF13, glterm.KeyNone},
		{glfw.KeyLeftShift, glterm.KeyNone},
	}
	for _, tt := range tests {
		if got := glfwKeyToKey(tt.key); got != tt.want {
			t.Errorf("glfwKeyToKey(%d) = %s, want %s", tt.key, glterm.KeyName(got), glterm.KeyName(tt.want))
		}
	}
}

func TestShaderSourcesTerminated(t *testing.T) {
	for name, src := range map[string]string{
		"vertex":     shaderSources.Vertex,
		"foreground": shaderSources.Foreground,
		"background": shaderSources.Background,
		"debug":      shaderSources.Debug,
	} {
		if len(src) == 0 || src[len(src)-1] != 0 {
			t.Errorf("%s shader is not NUL-terminated", name)
		}
	}
}
