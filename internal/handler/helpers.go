package handler

import (
	"math"

	"github.com/pbw78/Rentalmasters/internal/model"
)

// round2 normalizes monetary values to 2 decimal places at the write
// boundary so stored amounts never drift.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// validDate reports whether s is a well-formed YYYY-MM-DD date
func validDate(s string) bool {
	_, err := model.ParseDate(s)
	return err == nil
}
