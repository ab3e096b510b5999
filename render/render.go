// Package render meshes extruded gear outlines into triangles and reads and
// writes them as binary STL.
package render

import (
	"io"

	"github.com/soypat/glgl/math/ms3"
)

// Renderer streams the triangles of a model.
type Renderer interface {
	// ReadTriangles writes triangles into dst and returns the number written.
	// It returns io.EOF once the model has no triangles left.
	ReadTriangles(dst []ms3.Triangle) (int, error)
}

// RenderAll reads the full contents of a Renderer and returns the slice read.
// It does not return error on io.EOF, like the io.ReadAll implementation.
func RenderAll(r Renderer) ([]ms3.Triangle, error) {
	var err error
	var nt int
	result := make([]ms3.Triangle, 0, 1<<12)
	buf := make([]ms3.Triangle, 1024)
	for {
		nt, err = r.ReadTriangles(buf)
		result = append(result, buf[:nt]...)
		if err != nil {
			break
		}
	}
	if err == io.EOF {
		return result, nil
	}
	return result, err
}
