// Package analysis contains the numerical kernels behind the replay overlays: team-shape convex
// hulls, positional kernel density estimates, proximity networks, defensive lines and
// nearest-entity picking.
//
// Every function is pure. Degenerate input is reported through [ErrDegenerate] or [ErrSingular]
// so callers can drop the one artifact and keep going.
package analysis

import "fmt"

var (
	ErrDegenerate = fmt.Errorf("degenerate point set")
	ErrSingular   = fmt.Errorf("singular covariance")
)
