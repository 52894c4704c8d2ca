// Package renderer provides OpenGL rendering for the target solid and
// projectiles.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/okatsuro/prismbreak/internal/engine/geometry"
	"github.com/okatsuro/prismbreak/internal/engine/shader"
	"github.com/okatsuro/prismbreak/internal/logger"
)

// floatsPerVertex is the interleaved layout: position(3), normal(3),
// color(3), barycentric(2), base color(3), restore fill(1).
const floatsPerVertex = 15

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config

	meshProgram  uint32
	pointProgram uint32

	meshVAO  uint32
	meshVBO  uint32
	vertices int
	scratch  []float32

	pointVAO uint32
	pointVBO uint32
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.ClearColor(0.06, 0.06, 0.1, 1.0)

	var err error
	r.meshProgram, err = shader.CompileProgram(meshVertexSrc, meshFragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("mesh program: %w", err)
	}
	r.pointProgram, err = shader.CompileProgram(pointVertexSrc, pointFragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("point program: %w", err)
	}

	r.setupMeshBuffers()
	r.setupPointBuffers()

	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.meshVAO != 0 {
		gl.DeleteVertexArrays(1, &r.meshVAO)
	}
	if r.meshVBO != 0 {
		gl.DeleteBuffers(1, &r.meshVBO)
	}
	if r.pointVAO != 0 {
		gl.DeleteVertexArrays(1, &r.pointVAO)
	}
	if r.pointVBO != 0 {
		gl.DeleteBuffers(1, &r.pointVBO)
	}
	if r.meshProgram != 0 {
		gl.DeleteProgram(r.meshProgram)
	}
	if r.pointProgram != 0 {
		gl.DeleteProgram(r.pointProgram)
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// End finishes the current frame.
func (r *Renderer) End() {
}

// Projection returns the current perspective projection matrix.
func (r *Renderer) Projection() mgl32.Mat4 {
	aspect := float32(r.config.Width) / float32(r.config.Height)
	return mgl32.Perspective(mgl32.DegToRad(55), aspect, 0.1, 100)
}

func (r *Renderer) setupMeshBuffers() {
	gl.GenVertexArrays(1, &r.meshVAO)
	gl.BindVertexArray(r.meshVAO)
	gl.GenBuffers(1, &r.meshVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.meshVBO)

	stride := int32(floatsPerVertex * 4)
	offsets := []struct {
		size   int32
		offset uintptr
	}{
		{3, 0},      // position
		{3, 3 * 4},  // normal
		{3, 6 * 4},  // color
		{2, 9 * 4},  // barycentric
		{3, 11 * 4}, // base color
		{1, 14 * 4}, // restore fill
	}
	for i, a := range offsets {
		gl.VertexAttribPointer(uint32(i), a.size, gl.FLOAT, false, stride, unsafe.Pointer(a.offset))
		gl.EnableVertexAttribArray(uint32(i))
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

func (r *Renderer) setupPointBuffers() {
	gl.GenVertexArrays(1, &r.pointVAO)
	gl.BindVertexArray(r.pointVAO)
	gl.GenBuffers(1, &r.pointVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.pointVBO)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

// UploadMesh packs the exploded mesh into the interleaved vertex buffer.
// Colors and fill values change every frame while a restore animates, so
// the whole buffer is re-packed and re-uploaded on each call.
func (r *Renderer) UploadMesh(mesh *geometry.Mesh, fills []float32) {
	n := len(mesh.Vertices)
	need := n * floatsPerVertex
	if cap(r.scratch) < need {
		r.scratch = make([]float32, need)
	}
	buf := r.scratch[:need]

	for i, v := range mesh.Vertices {
		o := i * floatsPerVertex
		buf[o+0], buf[o+1], buf[o+2] = v.Position.X(), v.Position.Y(), v.Position.Z()
		buf[o+3], buf[o+4], buf[o+5] = v.Normal.X(), v.Normal.Y(), v.Normal.Z()
		buf[o+6], buf[o+7], buf[o+8] = v.Color.X(), v.Color.Y(), v.Color.Z()
		buf[o+9], buf[o+10] = v.Bary.X(), v.Bary.Y()
		buf[o+11], buf[o+12], buf[o+13] = v.Base.X(), v.Base.Y(), v.Base.Z()
		fill := float32(1)
		if i < len(fills) {
			fill = fills[i]
		}
		buf[o+14] = fill
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, r.meshVBO)
	if n != r.vertices {
		gl.BufferData(gl.ARRAY_BUFFER, need*4, unsafe.Pointer(&buf[0]), gl.DYNAMIC_DRAW)
		r.vertices = n
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, need*4, unsafe.Pointer(&buf[0]))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// DrawMesh renders the uploaded mesh with the given transforms.
func (r *Renderer) DrawMesh(model, view mgl32.Mat4, lightDir mgl32.Vec3) {
	if r.vertices == 0 {
		return
	}
	proj := r.Projection()

	gl.UseProgram(r.meshProgram)
	gl.UniformMatrix4fv(shader.GetUniform(r.meshProgram, "model"), 1, false, &model[0])
	gl.UniformMatrix4fv(shader.GetUniform(r.meshProgram, "view"), 1, false, &view[0])
	gl.UniformMatrix4fv(shader.GetUniform(r.meshProgram, "projection"), 1, false, &proj[0])
	gl.Uniform3f(shader.GetUniform(r.meshProgram, "lightDir"), lightDir.X(), lightDir.Y(), lightDir.Z())

	gl.BindVertexArray(r.meshVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(r.vertices))
	gl.BindVertexArray(0)
}

// DrawPoints renders projectiles as camera-facing points.
func (r *Renderer) DrawPoints(positions []mgl32.Vec3, view mgl32.Mat4, size float32, color mgl32.Vec3) {
	if len(positions) == 0 {
		return
	}
	buf := make([]float32, 0, len(positions)*3)
	for _, p := range positions {
		buf = append(buf, p.X(), p.Y(), p.Z())
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, r.pointVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(buf)*4, unsafe.Pointer(&buf[0]), gl.STREAM_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	proj := r.Projection()
	gl.UseProgram(r.pointProgram)
	gl.UniformMatrix4fv(shader.GetUniform(r.pointProgram, "view"), 1, false, &view[0])
	gl.UniformMatrix4fv(shader.GetUniform(r.pointProgram, "projection"), 1, false, &proj[0])
	gl.Uniform1f(shader.GetUniform(r.pointProgram, "pointSize"), size)
	gl.Uniform3f(shader.GetUniform(r.pointProgram, "pointColor"), color.X(), color.Y(), color.Z())

	gl.BindVertexArray(r.pointVAO)
	gl.DrawArrays(gl.POINTS, 0, int32(len(positions)))
	gl.BindVertexArray(0)
}

// ReadPixels copies the current framebuffer into an RGBA byte slice,
// bottom-up as OpenGL delivers it.
func (r *Renderer) ReadPixels() (pixels []byte, width, height int) {
	width, height = r.config.Width, r.config.Height
	pixels = make([]byte, width*height*4)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, width, height
}

const meshVertexSrc = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec3 aColor;
layout (location = 3) in vec2 aBary;
layout (location = 4) in vec3 aBase;
layout (location = 5) in float aFill;

uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;

out vec3 vNormal;
out vec3 vColor;
out vec3 vBase;
out vec3 vBary;
out float vFill;

void main() {
	gl_Position = projection * view * model * vec4(aPos, 1.0);
	vNormal = mat3(model) * aNormal;
	vColor = aColor;
	vBase = aBase;
	vBary = vec3(aBary, 1.0 - aBary.x - aBary.y);
	vFill = aFill;
}
`

const meshFragmentSrc = `
#version 410 core

in vec3 vNormal;
in vec3 vColor;
in vec3 vBase;
in vec3 vBary;
in float vFill;

uniform vec3 lightDir;

out vec4 FragColor;

void main() {
	// Restore spread: fill blends the committed color over the pre-split base.
	vec3 albedo = mix(vBase, vColor, clamp(vFill, 0.0, 1.0));

	vec3 n = normalize(vNormal);
	float diffuse = max(dot(n, normalize(-lightDir)), 0.0);
	vec3 lit = albedo * (0.35 + 0.65 * diffuse);

	// Darken triangle edges so the facet structure reads.
	float edge = min(min(vBary.x, vBary.y), vBary.z);
	float outline = smoothstep(0.0, 0.04, edge);
	lit *= mix(0.55, 1.0, outline);

	FragColor = vec4(lit, 1.0);
}
`

const pointVertexSrc = `
#version 410 core

layout (location = 0) in vec3 aPos;

uniform mat4 view;
uniform mat4 projection;
uniform float pointSize;

void main() {
	gl_Position = projection * view * vec4(aPos, 1.0);
	gl_PointSize = pointSize / max(gl_Position.w, 0.1);
}
`

const pointFragmentSrc = `
#version 410 core

uniform vec3 pointColor;

out vec4 FragColor;

void main() {
	vec2 d = gl_PointCoord - vec2(0.5);
	if (dot(d, d) > 0.25) {
		discard;
	}
	FragColor = vec4(pointColor, 1.0);
}
`
