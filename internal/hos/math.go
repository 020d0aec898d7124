package hos

import (
	"math"
	"time"
)

func minFloat(vs ...float64) float64 {
	m := vs[0]
	for _, v := range vs[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func hoursToDuration(h float64) time.Duration {
	return time.Duration(h * float64(time.Hour))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
