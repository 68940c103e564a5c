// Package rating computes derived figures from normalized load fields.
package rating

import "math"

// RatePerMile returns the booked rate divided by mileage, rounded to two
// decimal places. It is defined only when both inputs are positive; otherwise
// nil is returned so "not computable" stays distinguishable from a computed
// zero.
func RatePerMile(miles, bookedRate float64) *float64 {
	if miles <= 0 || bookedRate <= 0 {
		return nil
	}
	rpm := math.Round(bookedRate/miles*100) / 100
	return &rpm
}
