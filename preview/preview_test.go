package preview

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/soypat/gear"
	"github.com/soypat/gear/render"
	"github.com/soypat/gear/sketch"
	"gonum.org/v1/plot/cmpimg"
	"gonum.org/v1/plot/vg"
)

func defaultSketch(t *testing.T) *sketch.Sketch {
	t.Helper()
	res, err := gear.Generate(gear.DefaultSpec())
	if err != nil {
		t.Fatal(err)
	}
	sk, err := sketch.New(res)
	if err != nil {
		t.Fatal(err)
	}
	return sk
}

func TestPlotSketch(t *testing.T) {
	sk := defaultSketch(t)
	path := filepath.Join(t.TempDir(), "profile.png")
	if err := PlotSketch(sk, path, 4, 4*vg.Inch); err != nil {
		t.Fatal(err)
	}
	fp, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer fp.Close()
	if _, err := png.Decode(fp); err != nil {
		t.Fatal(err)
	}
	if err := PlotSketch(&sketch.Sketch{}, path, 4, vg.Inch); err == nil {
		t.Error("expected error plotting empty sketch")
	}
}

func TestRenderSTL(t *testing.T) {
	dir := t.TempDir()
	stlPath := filepath.Join(dir, "gear.stl")
	mesh, err := defaultSketch(t).Mesh(4)
	if err != nil {
		t.Fatal(err)
	}
	if err := render.CreateSTL(stlPath, mesh); err != nil {
		t.Fatal(err)
	}
	view := DefaultView()
	view.Width, view.Height = 160, 120
	var images [2][]byte
	for i := range images {
		pngPath := filepath.Join(dir, "gear.png")
		if err := RenderSTL(stlPath, pngPath, view); err != nil {
			t.Fatal(err)
		}
		images[i], err = os.ReadFile(pngPath)
		if err != nil {
			t.Fatal(err)
		}
	}
	ok, err := cmpimg.EqualApprox("png", images[0], images[1], 0)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("rendering is not deterministic")
	}
	view.Width = 0
	if err := RenderSTL(stlPath, filepath.Join(dir, "bad.png"), view); err == nil {
		t.Error("expected error for zero width image")
	}
}
