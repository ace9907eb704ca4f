package analysis

import (
	"fmt"
	"math"

	"github.com/desertthunder/stratos/internal/models"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distmv"
)

const singularTolerance = 1e-9

// Extent is an axis-aligned rectangle in pitch units.
type Extent struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// PitchExtent covers a 120 x 80 pitch.
var PitchExtent = Extent{MinX: 0, MaxX: 120, MinY: 0, MaxY: 80}

// Grid is a density surface sampled on Cols x Rows points spanning Extent, endpoints included.
type Grid struct {
	Extent Extent
	Cols   int
	Rows   int
	Values []float64 // Row-major, Values[r*Cols+c]
}

// At returns the value at column c, row r.
func (g Grid) At(c, r int) float64 { return g.Values[r*g.Cols+c] }

// X returns the pitch x coordinate of column c.
func (g Grid) X(c int) float64 {
	return g.Extent.MinX + float64(c)*(g.Extent.MaxX-g.Extent.MinX)/float64(g.Cols-1)
}

// Y returns the pitch y coordinate of row r.
func (g Grid) Y(r int) float64 {
	return g.Extent.MinY + float64(r)*(g.Extent.MaxY-g.Extent.MinY)/float64(g.Rows-1)
}

// Max returns the largest sampled value.
func (g Grid) Max() float64 {
	m := 0.0
	for _, v := range g.Values {
		m = math.Max(m, v)
	}
	return m
}

// Sample returns the value nearest to p, clamped to the grid.
func (g Grid) Sample(p models.Point) float64 {
	fx := (p.X - g.Extent.MinX) / (g.Extent.MaxX - g.Extent.MinX) * float64(g.Cols-1)
	fy := (p.Y - g.Extent.MinY) / (g.Extent.MaxY - g.Extent.MinY) * float64(g.Rows-1)
	c := min(max(int(math.Round(fx)), 0), g.Cols-1)
	r := min(max(int(math.Round(fy)), 0), g.Rows-1)
	return g.At(c, r)
}

// KDE fits a Gaussian kernel density estimate to points and samples it on a cols x rows grid.
//
// The kernel covariance is the data covariance scaled by Scott's factor n^(-1/6). A singular
// or non positive definite covariance fails with [ErrSingular].
func KDE(points []models.Point, extent Extent, cols, rows int) (Grid, error) {
	if cols < 2 || rows < 2 {
		return Grid{}, fmt.Errorf("%w: grid %dx%d", ErrDegenerate, cols, rows)
	}
	if len(points) < 3 {
		return Grid{}, fmt.Errorf("%w: %d points", ErrDegenerate, len(points))
	}

	n := len(points)
	data := mat.NewDense(n, 2, nil)
	for i, p := range points {
		if !p.Valid() {
			return Grid{}, fmt.Errorf("%w: non-finite coordinate", ErrDegenerate)
		}
		data.Set(i, 0, p.X)
		data.Set(i, 1, p.Y)
	}

	var cov mat.SymDense
	stat.CovarianceMatrix(&cov, data, nil)

	// Potrf accepts pivots that are positive only through rounding, so near-singular
	// covariances are rejected up front.
	sxx, syy, sxy := cov.At(0, 0), cov.At(1, 1), cov.At(0, 1)
	if sxx <= 0 || syy <= 0 || sxx*syy-sxy*sxy <= singularTolerance*sxx*syy {
		return Grid{}, ErrSingular
	}

	factor := math.Pow(float64(n), -1.0/6.0)
	cov.ScaleSym(factor*factor, &cov)

	kernel, ok := distmv.NewNormal([]float64{0, 0}, &cov, nil)
	if !ok {
		return Grid{}, ErrSingular
	}

	grid := Grid{Extent: extent, Cols: cols, Rows: rows, Values: make([]float64, cols*rows)}
	delta := make([]float64, 2)
	for r := range rows {
		y := grid.Y(r)
		for c := range cols {
			x := grid.X(c)
			sum := 0.0
			for _, p := range points {
				delta[0], delta[1] = x-p.X, y-p.Y
				sum += math.Exp(kernel.LogProb(delta))
			}
			grid.Values[r*cols+c] = sum / float64(n)
		}
	}
	return grid, nil
}
