package analysis

import "github.com/desertthunder/stratos/internal/models"

// Pair is an unordered pair of points, I < J, at distance Dist.
type Pair struct {
	I, J int
	A, B models.Point
	Dist float64
}

// ProximityPairs returns every unordered pair whose distance lies strictly inside (0, threshold).
//
// This approximates a pass network from proximity alone; no pass data is involved.
func ProximityPairs(points []models.Point, threshold float64) []Pair {
	var pairs []Pair
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			d := points[i].Dist(points[j])
			if d > 0 && d < threshold {
				pairs = append(pairs, Pair{I: i, J: j, A: points[i], B: points[j], Dist: d})
			}
		}
	}
	return pairs
}

// DefensiveLines returns the deepest home x (minimum, home attacks rightward) and the deepest away x
// (maximum). A side without points reports false.
func DefensiveLines(home, away []models.Point) (homeX float64, okHome bool, awayX float64, okAway bool) {
	for i, p := range home {
		if i == 0 || p.X < homeX {
			homeX = p.X
		}
		okHome = true
	}
	for i, p := range away {
		if i == 0 || p.X > awayX {
			awayX = p.X
		}
		okAway = true
	}
	return
}

// Nearest returns the index of the point closest to target among those strictly within radius.
// Ties keep the earliest index.
func Nearest(points []models.Point, target models.Point, radius float64) (int, bool) {
	best, bestDist := -1, radius
	for i, p := range points {
		if d := p.Dist(target); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, best >= 0
}
