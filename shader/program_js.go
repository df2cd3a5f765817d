package shader

import (
	"errors"
	"fmt"
	"syscall/js"

	"github.com/seqsense/pcdoverlay/mat"
	webgl "github.com/seqsense/webgl-go"
)

var (
	errContextLost   = errors.New("WebGL context lost")
	errImageNotFound = errors.New("failed to load image")
)

func compileShader(gl *webgl.WebGL, typ webgl.ShaderType, name, src string) (webgl.Shader, error) {
	s := gl.CreateShader(typ)
	gl.ShaderSource(s, src)
	gl.CompileShader(s)
	if !gl.GetShaderParameter(s, gl.COMPILE_STATUS).(bool) {
		if gl.IsContextLost() {
			return webgl.Shader(js.Null()), errContextLost
		}
		return webgl.Shader(js.Null()), fmt.Errorf("compile failed (%s)", name)
	}
	return s, nil
}

// Program is a linked program with its uniform locations resolved.
type Program struct {
	Source ProgramSource

	gl        *webgl.WebGL
	program   webgl.Program
	locations map[string]webgl.Location
}

func Compile(gl *webgl.WebGL, src ProgramSource) (*Program, error) {
	vs, err := compileShader(gl, gl.VERTEX_SHADER, src.Name+" VERTEX_SHADER", src.Vertex)
	if err != nil {
		return nil, err
	}
	fs, err := compileShader(gl, gl.FRAGMENT_SHADER, src.Name+" FRAGMENT_SHADER", src.Fragment)
	if err != nil {
		return nil, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)
	if !gl.GetProgramParameter(program, gl.LINK_STATUS).(bool) {
		if gl.IsContextLost() {
			return nil, errContextLost
		}
		return nil, errors.New("link failed: " + gl.GetProgramInfoLog(program))
	}

	p := &Program{
		Source:    src,
		gl:        gl,
		program:   program,
		locations: make(map[string]webgl.Location, len(src.Uniforms)),
	}
	for _, name := range src.Uniforms {
		p.locations[name] = gl.GetUniformLocation(program, name)
	}
	return p, nil
}

// Use activates the program and uploads the given uniforms.
func (p *Program) Use(u Uniforms) error {
	p.gl.UseProgram(p.program)
	for name, v := range u {
		loc, ok := p.locations[name]
		if !ok {
			return fmt.Errorf("%s: unknown uniform %s", p.Source.Name, name)
		}
		switch v := v.(type) {
		case mat.Mat4:
			p.gl.UniformMatrix4fv(loc, false, v)
		case mat.Vec3:
			p.gl.Uniform3fv(loc, v)
		case float32:
			p.gl.Uniform1f(loc, v)
		case int:
			p.gl.Uniform1i(loc, v)
		default:
			return fmt.Errorf("%s: unsupported uniform type %T for %s", p.Source.Name, v, name)
		}
	}
	return nil
}

// Mesh is a float vertex buffer bound to attribute location 0.
type Mesh struct {
	gl    *webgl.WebGL
	buf   webgl.Buffer
	size  int
	count int
}

func NewMesh(gl *webgl.WebGL, size int, data []float32) *Mesh {
	m := &Mesh{gl: gl, buf: gl.CreateBuffer(), size: size}
	m.Update(data)
	return m
}

func NewQuad(gl *webgl.WebGL) *Mesh {
	return NewMesh(gl, 2, QuadVertices)
}

func (m *Mesh) Update(data []float32) {
	m.count = len(data) / m.size
	if m.count == 0 {
		return
	}
	m.gl.BindBuffer(m.gl.ARRAY_BUFFER, m.buf)
	m.gl.BufferData(m.gl.ARRAY_BUFFER, webgl.Float32ArrayBuffer(data), m.gl.STATIC_DRAW)
}

func (m *Mesh) Len() int {
	return m.count
}

func (m *Mesh) Draw(mode webgl.DrawMode) {
	if m.count == 0 {
		return
	}
	m.gl.BindBuffer(m.gl.ARRAY_BUFFER, m.buf)
	m.gl.VertexAttribPointer(0, m.size, m.gl.FLOAT, false, m.size*4, 0)
	m.gl.EnableVertexAttribArray(0)
	m.gl.DrawArrays(mode, 0, m.count)
}

// LoadImage fetches an image through the browser and blocks until it is
// decoded.
func LoadImage(url string) (js.Value, error) {
	img := js.Global().Get("Image").New()
	img.Set("crossOrigin", "anonymous")
	chOK := make(chan bool, 1)
	onLoad := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		chOK <- true
		return nil
	})
	onError := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		chOK <- false
		return nil
	})
	defer onLoad.Release()
	defer onError.Release()
	img.Call("addEventListener", "load", onLoad)
	img.Call("addEventListener", "error", onError)
	img.Set("src", url)

	if !<-chOK {
		return js.Null(), fmt.Errorf("%s: %w", url, errImageNotFound)
	}
	return img, nil
}

// NewTexture uploads img to texture unit 0. Both axes clamp so that
// images of any size are accepted.
func NewTexture(gl *webgl.WebGL, img js.Value) webgl.Texture {
	tex := gl.CreateTexture()
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, gl.RGBA, gl.UNSIGNED_BYTE, img)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	return tex
}
