package services

import (
	"bytes"
	"encoding/json"
	"math"
	"parcel-kpi-service/internal/domain"
	"slices"
)

type CurvePoint struct {
	X float64
	Y float64
}

// Curve is a Gaussian density overlay for a dimension histogram. It is a visual aid
// fitted by moments, not a normality test.
type Curve []CurvePoint

// GaussianCurve evaluates the normal density with the sample's mean and population
// standard deviation at n evenly spaced points from min to max inclusive. X is
// rounded to 2 decimals and Y to 6; points whose rounded X collide keep the last
// density. An empty sample or a zero deviation yields an empty curve.
func GaussianCurve(values []float64, n int) Curve {
	curve := Curve{}
	if len(values) == 0 || n < 2 {
		return curve
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var sq float64
	for _, v := range values {
		sq += (v - mean) * (v - mean)
	}
	std := math.Sqrt(sq / float64(len(values)))
	if std == 0 || math.IsNaN(std) {
		return curve
	}

	lo, hi := slices.Min(values), slices.Max(values)
	step := (hi - lo) / float64(n-1)
	norm := 1 / (std * math.Sqrt(2*math.Pi))

	for i := 0; i < n; i++ {
		x := lo + float64(i)*step
		if i == n-1 {
			x = hi
		}
		z := (x - mean) / std
		p := CurvePoint{X: round2(x), Y: round6(norm * math.Exp(-0.5*z*z))}

		if k := len(curve); k > 0 && curve[k-1].X == p.X {
			curve[k-1] = p
			continue
		}
		curve = append(curve, p)
	}

	return curve
}

// MarshalJSON writes {"<x>": y, ...} in ascending x order.
func (c Curve) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(domain.FormatFloat(p.X))
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(p.Y)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
