package main

import (
	"bytes"
	"fmt"
	"syscall/js"
	"time"

	"github.com/seqsense/pcgol/pc"
	webgl "github.com/seqsense/webgl-go"
	"gopkg.in/yaml.v3"

	"github.com/seqsense/pcdoverlay/blob"
	"github.com/seqsense/pcdoverlay/camera"
	"github.com/seqsense/pcdoverlay/config"
	"github.com/seqsense/pcdoverlay/mat"
	"github.com/seqsense/pcdoverlay/overlay"
	"github.com/seqsense/pcdoverlay/raster"
	"github.com/seqsense/pcdoverlay/scene"
	"github.com/seqsense/pcdoverlay/shader"
)

const (
	defaultScenePath = "scene.yaml"
	blitOpacity      = 0.5
	frameInterval    = time.Second / 30
)

type programs struct {
	grid, sphere, environment, blit, face, point *shader.Program
}

func compilePrograms(gl *webgl.WebGL) (*programs, error) {
	var p programs
	for _, t := range []struct {
		dst **shader.Program
		src shader.ProgramSource
	}{
		{&p.grid, shader.GridProgram},
		{&p.sphere, shader.SphereProgram},
		{&p.environment, shader.EnvironmentProgram},
		{&p.blit, shader.BlitProgram},
		{&p.face, shader.FaceProgram},
		{&p.point, shader.PointProgram},
	} {
		prog, err := shader.Compile(gl, t.src)
		if err != nil {
			return nil, err
		}
		*t.dst = prog
	}
	return &p, nil
}

func loadConfig(path string) (*config.Config, error) {
	b, err := blob.Fetch(path)
	if err != nil {
		return nil, err
	}
	return config.Parse(b)
}

func pointBuffer(points []mat.Vec3) []float32 {
	buf := make([]float32, 0, len(points)*3)
	for _, p := range points {
		buf = append(buf, p[0], p[1], p[2])
	}
	return buf
}

func triangleBuffer(tris []raster.Triangle) []float32 {
	buf := make([]float32, 0, len(tris)*9)
	for _, t := range tris {
		for _, v := range t {
			buf = append(buf, v[0], v[1], v[2])
		}
	}
	return buf
}

func main() {
	doc := js.Global().Get("document")
	canvas := doc.Call("getElementById", "mapCanvas")

	logDiv := doc.Call("getElementById", "log")
	logPrint := func(msg interface{}) {
		html := logDiv.Get("innerHTML").String()
		logDiv.Set("innerHTML", fmt.Sprintf("%s%v<br/>", html, msg))
	}

	scenePath := defaultScenePath
	if p := js.Global().Get("scenePath"); p.Type() == js.TypeString {
		scenePath = p.String()
	}
	c, err := loadConfig(scenePath)
	if err != nil {
		logPrint(err)
		return
	}

	gl, err := webgl.New(canvas)
	if err != nil {
		logPrint(err)
		return
	}
	progs, err := compilePrograms(gl)
	if err != nil {
		logPrint(err)
		return
	}

	s := scene.FromConfig(c)
	ctl := scene.NewController(s, c.Camera.New(), c.Width, c.Height)

	quad := shader.NewQuad(gl)
	boxes := shader.NewMesh(gl, 3, triangleBuffer(s.Boxes))
	points := shader.NewMesh(gl, 3, nil)

	setPointCloud := func(pp *pc.PointCloud) {
		if err := s.SetPointCloud(pp); err != nil {
			logPrint(err)
			return
		}
		points.Update(pointBuffer(s.Points))
		logPrint(fmt.Sprintf("%d points loaded", len(s.Points)))
		ctl.Invalidate()
	}
	if c.PointCloud.Path != "" {
		b, err := blob.Fetch(c.PointCloud.Path)
		if err != nil {
			logPrint(err)
		} else if pp, err := pc.Unmarshal(bytes.NewReader(b)); err != nil {
			logPrint(err)
		} else {
			setPointCloud(pp)
		}
	}

	var hasEnvironment bool
	if c.Environment.Image != "" {
		img, err := shader.LoadImage(c.Environment.Image)
		if err != nil {
			logPrint(err)
		} else {
			shader.NewTexture(gl, img)
			hasEnvironment = true
		}
	}

	chPCD := make(chan js.Value)
	js.Global().Set("loadPCD",
		js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			chPCD <- args[0]
			return nil
		}),
	)
	js.Global().Set("saveScene",
		js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			c.Camera.Position = ctl.Camera.Position
			c.Camera.Yaw, c.Camera.Pitch, c.Camera.Zoom = ctl.Camera.Yaw(), ctl.Camera.Pitch(), ctl.Camera.Zoom()
			b, err := yaml.Marshal(c)
			if err != nil {
				return js.Global().Get("Error").New(err.Error())
			}
			return blob.New(b, "application/x-yaml").JS()
		}),
	)

	chWheel := make(chan webgl.WheelEvent, 8)
	gl.Canvas.OnWheel(func(e webgl.WheelEvent) {
		e.PreventDefault()
		e.StopPropagation()
		chWheel <- e
	})
	chMouseDown := make(chan webgl.MouseEvent, 8)
	gl.Canvas.OnMouseDown(func(e webgl.MouseEvent) {
		e.PreventDefault()
		e.StopPropagation()
		chMouseDown <- e
	})
	chMouseMove := make(chan webgl.MouseEvent, 8)
	gl.Canvas.OnMouseMove(func(e webgl.MouseEvent) {
		e.PreventDefault()
		e.StopPropagation()
		chMouseMove <- e
	})
	chMouseUp := make(chan webgl.MouseEvent, 8)
	gl.Canvas.OnMouseUp(func(e webgl.MouseEvent) {
		e.PreventDefault()
		e.StopPropagation()
		chMouseUp <- e
	})
	gl.Canvas.OnContextMenu(func(e webgl.MouseEvent) {
		e.PreventDefault()
		e.StopPropagation()
	})
	chKey := make(chan webgl.KeyboardEvent, 8)
	gl.Canvas.OnKeyDown(func(e webgl.KeyboardEvent) {
		e.PreventDefault()
		e.StopPropagation()
		chKey <- e
	})

	gl.ClearColor(0.0, 0.0, 0.0, 1.0)
	gl.ClearDepth(1.0)
	gl.DepthFunc(gl.LEQUAL)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	use := func(p *shader.Program, u shader.Uniforms) bool {
		if err := p.Use(u); err != nil {
			logPrint(err)
			return false
		}
		return true
	}

	var showPanorama bool
	tick := time.NewTicker(frameInterval)
	defer tick.Stop()

	for {
		if w, h := gl.Canvas.ClientWidth(), gl.Canvas.ClientHeight(); w != ctl.Width || h != ctl.Height {
			gl.Canvas.SetWidth(w)
			gl.Canvas.SetHeight(h)
			gl.Viewport(0, 0, w, h)
			ctl.Resize(w, h)
		}

		if ctl.Modified() && ctl.Width > 0 && ctl.Height > 0 {
			tr := ctl.Camera.Transform(ctl.Width, ctl.Height)
			gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

			gl.Disable(gl.DEPTH_TEST)
			gl.Enable(gl.BLEND)
			if hasEnvironment && use(progs.environment, shader.EnvironmentUniforms(
				tr, c.Environment.Model(), c.Environment.Strength, c.Environment.Range(),
			)) {
				quad.Draw(gl.TRIANGLES)
			}

			gl.Enable(gl.DEPTH_TEST)
			gl.Disable(gl.BLEND)
			if boxes.Len() > 0 && use(progs.face, shader.FaceUniforms(tr, raster.DefaultFaceColors)) {
				boxes.Draw(gl.TRIANGLES)
			}
			if points.Len() > 0 && use(progs.point, shader.PointUniforms(tr, c.PointCloud.Model(), s.PointStyle)) {
				points.Draw(gl.POINTS)
			}

			gl.Enable(gl.BLEND)
			if s.ShowSphere && use(progs.sphere, shader.SphereUniforms(
				tr, c.Sphere.Sphere(), overlay.Color(c.Sphere.InsideColor), overlay.Color(c.Sphere.OutsideColor),
			)) {
				quad.Draw(gl.TRIANGLES)
			}
			if s.ShowGrid && use(progs.grid, shader.GridUniforms(tr, c.Grid.Params())) {
				quad.Draw(gl.TRIANGLES)
			}

			if showPanorama && hasEnvironment {
				gl.Disable(gl.DEPTH_TEST)
				if use(progs.blit, shader.BlitUniforms(blitOpacity)) {
					quad.Draw(gl.TRIANGLES)
				}
			}
		}

		select {
		case v := <-chPCD:
			b, err := blob.FromJS(v)
			if err != nil {
				logPrint(err)
				break
			}
			r, err := b.Reader()
			if err != nil {
				logPrint(err)
				break
			}
			pp, err := pc.Unmarshal(r)
			if err != nil {
				logPrint(err)
				break
			}
			setPointCloud(pp)
		case e := <-chWheel:
			ctl.Wheel(-e.DeltaY)
		case e := <-chMouseDown:
			switch e.Button {
			case 0:
				ctl.MouseDown(e.OffsetX, e.OffsetY, camera.ButtonLeft)
			case 1:
				ctl.MouseDown(e.OffsetX, e.OffsetY, camera.ButtonMiddle)
			case 2:
				ctl.MouseDown(e.OffsetX, e.OffsetY, camera.ButtonRight)
			}
			canvas.Call("focus")
		case e := <-chMouseMove:
			ctl.MouseMove(e.OffsetX, e.OffsetY)
		case e := <-chMouseUp:
			ctl.MouseUp(e.OffsetX, e.OffsetY)
		case e := <-chKey:
			switch e.Key {
			case "g", "G":
				ctl.ToggleGrid()
			case "s", "S":
				ctl.ToggleSphere()
			case "p", "P":
				showPanorama = !showPanorama
				ctl.Invalidate()
			}
		case <-tick.C:
		}
	}
}
