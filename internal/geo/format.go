package geo

import (
	"math"
	"math/big"
	"strconv"
)

// FormatDistance renders a distance in meters for display.
//
// Below 1000 the value is rounded to whole meters ("999 m"); from 1000 up it
// is shown in kilometers with one decimal ("1.5 km"). Halfway cases round up.
func FormatDistance(meters float64) string {
	switch {
	case math.IsNaN(meters):
		return "NaN km"
	case math.IsInf(meters, 1):
		return "Infinity km"
	case math.IsInf(meters, -1):
		return "-Infinity m"
	}

	if meters < 1000 {
		r := roundHalfUp(meters)
		if r == 0 {
			r = 0 // drop the sign of -0
		}
		return strconv.FormatFloat(r, 'f', 0, 64) + " m"
	}
	return oneDecimal(meters/1000) + " km"
}

// roundHalfUp rounds to the nearest integer with ties toward +Inf.
// x - floor(x) is exact for float64, so no tie is lost to rounding error.
func roundHalfUp(x float64) float64 {
	r := math.Floor(x)
	if x-r >= 0.5 {
		r++
	}
	return r
}

// oneDecimal formats a finite non-negative v with one decimal digit. Rounding
// works on the exact binary value of v and resolves ties upward, so 1.25
// becomes "1.3" where strconv would pick the even "1.2". From 1e21 up the
// shortest exponent form is used instead ("1e+22"), as browsers do.
func oneDecimal(v float64) string {
	if v >= 1e21 {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}

	r := new(big.Rat).SetFloat64(v)
	r.Mul(r, big.NewRat(10, 1))
	r.Add(r, big.NewRat(1, 2))

	tenths := new(big.Int).Div(r.Num(), r.Denom())
	whole, frac := new(big.Int).QuoRem(tenths, big.NewInt(10), new(big.Int))
	return whole.String() + "." + frac.String()
}
