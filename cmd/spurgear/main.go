// Command spurgear generates an involute spur gear and writes it as a
// binary STL file, optionally along with a 2D profile plot and a shaded
// PNG preview.
//
// Flag defaults may be overridden by environment variables, which are also
// read from a .env file in the working directory when present.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/soypat/gear"
	"github.com/soypat/gear/preview"
	"github.com/soypat/gear/render"
	"github.com/soypat/gear/sketch"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot/vg"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "loading .env:", err)
	}
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			slog.Error("spurgear failed", slog.String("err", err.Error()))
		}
		os.Exit(1)
	}
}

type config struct {
	spec      gear.Spec
	points    int
	facets    int
	output    string
	plotPath  string
	pngPath   string
	verbose   bool
	check     bool
	angleDegs float64
}

func parseFlags(args []string, stderr io.Writer) (config, error) {
	var c config
	def := gear.DefaultSpec()
	fset := flag.NewFlagSet("spurgear", flag.ContinueOnError)
	fset.SetOutput(stderr)
	fset.Float64Var(&c.spec.DiametralPitch, "pitch", envFloat("SPURGEAR_PITCH", def.DiametralPitch), "diametral pitch in teeth per cm of pitch diameter")
	fset.Float64Var(&c.angleDegs, "angle", envFloat("SPURGEAR_PRESSURE_ANGLE", gear.RtoD(def.PressureAngle)), "pressure angle in degrees")
	fset.IntVar(&c.spec.Teeth, "teeth", envInt("SPURGEAR_TEETH", def.Teeth), "number of teeth")
	fset.Float64Var(&c.spec.Thickness, "thickness", envFloat("SPURGEAR_THICKNESS", def.Thickness), "gear thickness in cm")
	fset.IntVar(&c.points, "points", envInt("SPURGEAR_POINTS", gear.DefaultInvolutePoints), "samples along each involute flank")
	fset.StringVar(&c.output, "o", envString("SPURGEAR_OUTPUT", "gear.stl"), "output STL file")
	fset.StringVar(&c.plotPath, "plot", "", "write a 2D plot of the gear profile to this file")
	fset.StringVar(&c.pngPath, "png", "", "write a shaded PNG preview of the STL to this file")
	fset.IntVar(&c.facets, "facets", 8, "segments per flattened curve segment")
	fset.BoolVar(&c.verbose, "v", false, "log debug information")
	fset.BoolVar(&c.check, "check", false, "check the gear solid against the meshed outline")
	if err := fset.Parse(args); err != nil {
		return c, err
	}
	if fset.NArg() > 0 {
		return c, fmt.Errorf("unexpected arguments %q", fset.Args())
	}
	c.spec.PressureAngle = gear.DtoR(c.angleDegs)
	return c, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	c, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	level := slog.LevelInfo
	if c.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)
	gear.SetLogger(log)
	defer gear.SetLogger(nil)

	res, err := gear.Config{InvolutePoints: c.points}.Generate(c.spec)
	if err != nil {
		return err
	}
	d := res.Dims
	fmt.Fprintf(stdout, "%s\n", res.Name())
	fmt.Fprintf(stdout, "teeth:            %d\n", res.Count)
	fmt.Fprintf(stdout, "pitch diameter:   %.4f\n", d.PitchDiameter)
	fmt.Fprintf(stdout, "root diameter:    %.4f\n", d.RootDiameter)
	fmt.Fprintf(stdout, "base diameter:    %.4f\n", d.BaseDiameter)
	fmt.Fprintf(stdout, "outside diameter: %.4f\n", d.OutsideDiameter)
	fmt.Fprintf(stdout, "thickness:        %.4f\n", res.Thickness)
	if d.Undercut() {
		log.Warn("base circle lies inside the root circle, flanks are trimmed at the root")
	}

	sk, err := sketch.New(res)
	if err != nil {
		return err
	}
	mesh, err := sk.Mesh(c.facets)
	if err != nil {
		return err
	}
	if err := render.CreateSTL(c.output, mesh); err != nil {
		return fmt.Errorf("writing %s: %w", c.output, err)
	}
	log.Info("wrote gear", slog.String("path", c.output), slog.Int("triangles", mesh.NumTriangles()))

	if c.check {
		n, err := checkSolid(sk, c.facets)
		if err != nil {
			return fmt.Errorf("checking solid: %w", err)
		}
		log.Info("solid matches mesh", slog.Int("samples", n))
	}

	if c.plotPath != "" {
		if err := preview.PlotSketch(sk, c.plotPath, c.facets, 6*vg.Inch); err != nil {
			return fmt.Errorf("plotting profile: %w", err)
		}
		log.Info("wrote profile plot", slog.String("path", c.plotPath))
	}
	if c.pngPath != "" {
		if err := preview.RenderSTL(c.output, c.pngPath, preview.DefaultView()); err != nil {
			return fmt.Errorf("rendering preview: %w", err)
		}
		log.Info("wrote preview", slog.String("path", c.pngPath))
	}
	return nil
}

// checkSolid samples the signed distance of the gear solid on the meshed
// outline, at the tooth tips, at the gaps between teeth and above and
// below the body. It returns the number of samples taken.
func checkSolid(sk *sketch.Sketch, facets int) (int, error) {
	solid, err := sk.Solid(facets)
	if err != nil {
		return 0, err
	}
	outline, err := sk.GearOutline(facets)
	if err != nil {
		return 0, err
	}
	h := sk.Extrusion
	root := sk.Circles[0].Radius
	var outside float64
	for _, p := range outline {
		outside = math.Max(outside, r2.Norm(p))
	}
	tol := 1e-9 * outside
	n := 0
	for i, p := range outline {
		if d := solid.Evaluate(r3.Vec{X: p.X, Y: p.Y, Z: h / 2}); math.Abs(d) > tol {
			return n, fmt.Errorf("outline point %d at %v is %g off the solid surface", i, p, d)
		}
		n++
	}
	step := 2 * math.Pi / float64(sk.Count)
	inset := 0.05 * (outside - root)
	for k := 0; k < sk.Count; k++ {
		sin, cos := math.Sincos(float64(k) * step)
		tip := r3.Vec{X: (outside - inset) * cos, Y: (outside - inset) * sin, Z: h / 2}
		if d := solid.Evaluate(tip); d >= 0 {
			return n, fmt.Errorf("tooth %d tip %v outside the solid", k, tip)
		}
		sin, cos = math.Sincos((float64(k) + 0.5) * step)
		gap := r3.Vec{X: (root + inset) * cos, Y: (root + inset) * sin, Z: h / 2}
		if d := solid.Evaluate(gap); d <= 0 {
			return n, fmt.Errorf("gap %d point %v inside the solid", k, gap)
		}
		n += 2
	}
	for _, z := range []float64{-h / 2, 3 * h / 2} {
		if d := solid.Evaluate(r3.Vec{Z: z}); d <= 0 {
			return n, fmt.Errorf("point at z=%g on the axis inside the solid", z)
		}
		n++
	}
	return n, nil
}

func envString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func envFloat(key string, def float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return def
	}
	return v
}

func envInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}
