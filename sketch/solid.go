package sketch

import (
	"fmt"

	"github.com/soypat/gear/render"
	"github.com/soypat/gear/sdf"
)

// Solid returns the signed distance function of the gear body: the root
// disk joined with Count copies of the tooth, extruded from z=0 to
// z=Extrusion.
func (sk *Sketch) Solid(facets int) (sdf.SDF3, error) {
	if sk.Count < 1 {
		return nil, errNotExtruded
	}
	tooth, err := sk.ToothOutline(facets)
	if err != nil {
		return nil, err
	}
	root, _ := sk.rootRadius()
	disk, err := sdf.Circle(root)
	if err != nil {
		return nil, fmt.Errorf("root disk: %w", err)
	}
	profile, err := sdf.Polygon(tooth)
	if err != nil {
		return nil, fmt.Errorf("tooth profile: %w", err)
	}
	teeth, err := sdf.RotateCopy2D(profile, sk.Count)
	if err != nil {
		return nil, err
	}
	section, err := sdf.Union2D(disk, teeth)
	if err != nil {
		return nil, err
	}
	return sdf.Extrude3D(section, sk.Extrusion)
}

// Mesh returns a renderer that triangulates the extruded gear outline.
func (sk *Sketch) Mesh(facets int) (*render.Prism, error) {
	if sk.Extrusion == 0 {
		return nil, errNotExtruded
	}
	outline, err := sk.GearOutline(facets)
	if err != nil {
		return nil, err
	}
	return render.NewPrism(outline, sk.Extrusion)
}
