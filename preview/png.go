package preview

import (
	"fmt"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"gonum.org/v1/gonum/spatial/r3"
)

// View configures the camera of a shaded mesh preview.
type View struct {
	// LookAt is the point the camera looks at.
	LookAt r3.Vec
	// Up is the upwards direction of the image.
	Up r3.Vec
	// Eye is where the camera is located.
	Eye       r3.Vec
	Near, Far float64
	// Width and Height of the output image in pixels.
	Width, Height int
	// Supersample renders at Supersample times the output size and
	// downsamples the result for antialiasing.
	Supersample int
}

// DefaultView looks at a mesh fitted in the bi-unit cube from above and
// to the side of the gear.
func DefaultView() View {
	return View{
		Up:          r3.Vec{Z: 1},
		Eye:         r3.Vec{X: 2, Y: 2, Z: 3},
		Near:        1,
		Far:         10,
		Width:       800,
		Height:      600,
		Supersample: 2,
	}
}

// RenderSTL draws a shaded image of the STL file at stlPath and saves it as
// a PNG at pngPath. The mesh is fitted in a bi-unit cube centered at the
// origin before drawing.
func RenderSTL(stlPath, pngPath string, view View) error {
	if view.Width <= 0 || view.Height <= 0 {
		return fmt.Errorf("invalid image size %dx%d", view.Width, view.Height)
	}
	scale := max(view.Supersample, 1)
	mesh, err := fauxgl.LoadSTL(stlPath)
	if err != nil {
		return err
	}
	const fovy = 30 // vertical field of view in degrees
	var (
		eye    = fauxgl.V(view.Eye.X, view.Eye.Y, view.Eye.Z)
		center = fauxgl.V(view.LookAt.X, view.LookAt.Y, view.LookAt.Z)
		up     = fauxgl.V(view.Up.X, view.Up.Y, view.Up.Z)
		light  = fauxgl.V(-0.75, 1, 0.25).Normalize()
		color  = fauxgl.HexColor("#468966")
	)
	mesh.BiUnitCube()
	context := fauxgl.NewContext(view.Width*scale, view.Height*scale)
	context.ClearColorBufferWith(fauxgl.HexColor("#FFF8E3"))
	aspect := float64(view.Width) / float64(view.Height)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(fovy, aspect, view.Near, view.Far)
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = color
	context.Shader = shader
	context.DrawMesh(mesh)
	image := context.Image()
	if scale > 1 {
		image = resize.Resize(uint(view.Width), uint(view.Height), image, resize.Bilinear)
	}
	return fauxgl.SavePNG(pngPath, image)
}
