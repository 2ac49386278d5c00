package stats

import (
	"math"

	"compscope/server/internal/models"
)

// Point is one paired sample for a least-squares fit.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// FitLine fits y = slope*x + intercept by ordinary least squares.
// Returns nil when fewer than two points exist, when any coordinate is
// non-finite, or when all x-values are equal (zero normal-equations
// denominator). Callers treat nil as "no trendline", not as an error.
func FitLine(points []Point) *models.RegressionResult {
	if len(points) < 2 {
		return nil
	}

	var n, sumX, sumY, sumXY, sumXX float64
	for _, p := range points {
		if math.IsNaN(p.X) || math.IsInf(p.X, 0) || math.IsNaN(p.Y) || math.IsInf(p.Y, 0) {
			continue
		}
		n++
		sumX += p.X
		sumY += p.Y
		sumXY += p.X * p.Y
		sumXX += p.X * p.X
	}
	if n < 2 {
		return nil
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return nil
	}

	slope := (n*sumXY - sumX*sumY) / denom
	return &models.RegressionResult{
		Slope:     slope,
		Intercept: (sumY - slope*sumX) / n,
	}
}
