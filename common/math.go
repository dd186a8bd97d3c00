package common

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
)

var ErrInvalidRange = errors.New("common: invalid range")

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// RandRange samples uniformly from [lo, hi).
func RandRange(r *rand.Rand, lo, hi float64) (float64, error) {
	if math.IsNaN(lo) || math.IsNaN(hi) || lo > hi {
		return 0, fmt.Errorf("%w: [%v, %v]", ErrInvalidRange, lo, hi)
	}
	if lo == hi {
		return lo, nil
	}
	return Lerp(lo, hi, r.Float64()), nil
}

// RandSign returns -1 or +1 with equal probability.
func RandSign(r *rand.Rand) int {
	if r.IntN(2) == 0 {
		return -1
	}
	return 1
}

// WorldToScreen maps world units (origin centre, y up) to base-resolution
// pixels (origin top-left, y down).
func WorldToScreen(x, y float64) (float64, float64) {
	return BaseWidth/2 + x*PixelsPerUnit, BaseHeight/2 - y*PixelsPerUnit
}
