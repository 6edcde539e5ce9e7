package opengl

import "github.com/go-theft-auto/glterm"

// Vertex shader source, shared by every program.
const vertexShaderSource = `
#version 410 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec2 aTexCoord;
layout (location = 2) in vec4 aColor;

out vec2 TexCoord;
out vec4 Color;

uniform mat4 projection;

void main() {
    gl_Position = projection * vec4(aPos, 0.0, 1.0);
    TexCoord = aTexCoord;
    Color = aColor;
}
` + "\x00"

// Glyph fragment shader: the RGBA atlas modulated by the cell's
// foreground color.
const foregroundShaderSource = `
#version 410 core
in vec2 TexCoord;
in vec4 Color;

out vec4 FragColor;

uniform sampler2D fontTexture;
uniform float time;

void main() {
    FragColor = texture(fontTexture, TexCoord) * Color;
}
` + "\x00"

// Cell background fragment shader: flat vertex color.
const backgroundShaderSource = `
#version 410 core
in vec2 TexCoord;
in vec4 Color;

out vec4 FragColor;

uniform float time;

void main() {
    FragColor = Color;
}
` + "\x00"

// Debug fragment shader, drawn with polygon mode LINE. The pulse shows the
// time uniform is flowing.
const debugShaderSource = `
#version 410 core
in vec2 TexCoord;
in vec4 Color;

out vec4 FragColor;

uniform float time;

void main() {
    float pulse = 0.6 + 0.4 * sin(time * 3.0);
    FragColor = vec4(0.2, pulse, 0.4, 1.0);
}
` + "\x00"

var shaderSources = glterm.ShaderSources{
	Vertex:     vertexShaderSource,
	Foreground: foregroundShaderSource,
	Background: backgroundShaderSource,
	Debug:      debugShaderSource,
}
