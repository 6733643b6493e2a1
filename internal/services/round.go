package services

import "math"

func round2(v float64) float64 { return roundTo(v, 100) }

func round6(v float64) float64 { return roundTo(v, 1e6) }

func roundTo(v, scale float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*scale) / scale
}

// percent returns 100*n/total rounded to 2 decimals, or 0 when total is 0.
func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return round2(100 * float64(n) / float64(total))
}

// average returns total/n rounded to 2 decimals, or 0 when n is 0.
func average(total, n int) float64 {
	if n == 0 {
		return 0
	}
	return round2(float64(total) / float64(n))
}
