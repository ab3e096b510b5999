// Package preview draws gear sketches and meshes to image files.
package preview

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/soypat/gear/sketch"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	outlineColor = color.RGBA{R: 0x46, G: 0x89, B: 0x66, A: 0xff}
	splineColor  = color.RGBA{R: 0xb6, G: 0x40, B: 0x26, A: 0xff}
	rootColor    = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
)

// PlotSketch draws the flattened outline of the sketched gear, the fitted
// points of the tooth flanks and the root circle to an image at path.
// The image format is taken from the path extension (png, svg, pdf...).
func PlotSketch(sk *sketch.Sketch, path string, facets int, size vg.Length) error {
	if sk == nil {
		return errors.New("nil sketch")
	}
	outline, err := sk.GearOutline(facets)
	if err != nil {
		return err
	}
	p := plot.New()
	p.Title.Text = sk.Name
	p.X.Label.Text = "x [cm]"
	p.Y.Label.Text = "y [cm]"
	p.Add(plotter.NewGrid())

	gearLine, err := plotter.NewLine(closed(outline))
	if err != nil {
		return fmt.Errorf("gear outline: %w", err)
	}
	gearLine.Color = outlineColor
	gearLine.Width = vg.Points(1)
	p.Add(gearLine)
	p.Legend.Add("outline", gearLine)

	var fitted plotter.XYs
	for _, spline := range sk.Splines {
		fitted = append(fitted, xys(spline.Points)...)
	}
	flanks, err := plotter.NewScatter(fitted)
	if err != nil {
		return fmt.Errorf("flank points: %w", err)
	}
	flanks.GlyphStyle.Color = splineColor
	flanks.GlyphStyle.Radius = vg.Points(1.5)
	p.Add(flanks)
	p.Legend.Add("involute", flanks)

	for _, c := range sk.Circles {
		circle, err := plotter.NewLine(circleXYs(c.Center, c.Radius, 180))
		if err != nil {
			return fmt.Errorf("circle: %w", err)
		}
		circle.Color = rootColor
		circle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(circle)
	}

	// Equal axis scaling so the gear is not distorted.
	var r float64
	for _, v := range outline {
		r = math.Max(r, r2.Norm(v))
	}
	r *= 1.05
	p.X.Min, p.X.Max = -r, r
	p.Y.Min, p.Y.Max = -r, r
	return p.Save(size, size, path)
}

func xys(points []r2.Vec) plotter.XYs {
	out := make(plotter.XYs, len(points))
	for i, v := range points {
		out[i] = plotter.XY{X: v.X, Y: v.Y}
	}
	return out
}

func closed(points []r2.Vec) plotter.XYs {
	out := xys(points)
	if len(out) > 0 {
		out = append(out, out[0])
	}
	return out
}

func circleXYs(center r2.Vec, radius float64, n int) plotter.XYs {
	out := make(plotter.XYs, n+1)
	for i := range out {
		s, c := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		out[i] = plotter.XY{X: center.X + radius*c, Y: center.Y + radius*s}
	}
	return out
}
