package analysis

import (
	"fmt"

	"github.com/desertthunder/stratos/internal/models"
	"github.com/peterstace/simplefeatures/geom"
)

// ConvexHull returns the vertices of the smallest convex polygon enclosing points, in ring order
// and without repeating the first vertex.
//
// Fewer than 3 points, non-finite coordinates, and collinear or coincident input all fail with
// [ErrDegenerate].
func ConvexHull(points []models.Point) ([]models.Point, error) {
	if len(points) < 3 {
		return nil, fmt.Errorf("%w: %d points", ErrDegenerate, len(points))
	}

	pts := make([]geom.Point, 0, len(points))
	for _, p := range points {
		if !p.Valid() {
			return nil, fmt.Errorf("%w: non-finite coordinate", ErrDegenerate)
		}
		pt, err := geom.NewPoint(geom.Coordinates{XY: geom.XY{X: p.X, Y: p.Y}})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDegenerate, err)
		}
		pts = append(pts, pt)
	}

	hull := geom.NewMultiPoint(pts).ConvexHull()
	poly, ok := hull.AsPolygon()
	if !ok {
		return nil, fmt.Errorf("%w: hull is a %s", ErrDegenerate, hull.Type())
	}

	seq := poly.ExteriorRing().Coordinates()
	n := seq.Length()
	if n < 4 {
		return nil, fmt.Errorf("%w: ring has %d coordinates", ErrDegenerate, n)
	}

	// The ring is closed, so the last coordinate repeats the first.
	vertices := make([]models.Point, 0, n-1)
	for i := 0; i < n-1; i++ {
		xy := seq.GetXY(i)
		vertices = append(vertices, models.Point{X: xy.X, Y: xy.Y})
	}
	return vertices, nil
}
