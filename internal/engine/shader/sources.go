package shader

// Attribute locations shared with the renderer's vertex layout.
const (
	LocPosition = 0
	LocNormal   = 1
	LocColor    = 2
)

// MannequinVertex transforms positions by uMVP and shades the vertex colour
// against a model-space key light, matching lighting.Light.Shade.
const MannequinVertex = `#version 410 core

layout (location = 0) in vec3 aPosition;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec4 aColor;

uniform mat4 uMVP;
uniform vec3 uLightDir;
uniform float uAmbient;
uniform float uDiffuse;

out vec4 vColor;

void main() {
    gl_Position = uMVP * vec4(aPosition, 1.0);
    float shade = min(uAmbient + uDiffuse * max(dot(normalize(aNormal), uLightDir), 0.0), 1.0);
    vColor = vec4(aColor.rgb * shade, aColor.a);
}
`

// MannequinFragment outputs the interpolated colour.
const MannequinFragment = `#version 410 core

in vec4 vColor;
out vec4 FragColor;

void main() {
    FragColor = vColor;
}
`
