package calculator

import (
	"errors"

	"golang.org/x/exp/constraints"
)

// ErrEmptyInput is returned when an aggregate needs at least one value.
var ErrEmptyInput = errors.New("empty input series")

// Number is any integer or floating-point element type.
type Number interface {
	constraints.Integer | constraints.Float
}

// Extremum is a value together with its position in the series.
type Extremum struct {
	Value float64
	Index int
}

// Mean computes the arithmetic mean of series.
func Mean[T Number](series []T) (float64, error) {
	if len(series) == 0 {
		return 0, ErrEmptyInput
	}
	sum := 0.0
	for _, v := range series {
		sum += float64(v)
	}
	return sum / float64(len(series)), nil
}

// FindMin returns the smallest value and the index of its last occurrence.
// ok is false when series is empty.
func FindMin[T Number](series []T) (ext Extremum, ok bool) {
	return scanLast(series, func(v, best float64) bool { return v <= best })
}

// FindMax returns the largest value and the index of its last occurrence.
// ok is false when series is empty.
func FindMax[T Number](series []T) (ext Extremum, ok bool) {
	return scanLast(series, func(v, best float64) bool { return v >= best })
}

// scanLast walks the series once; using a non-strict comparison lets later ties replace earlier ones.
func scanLast[T Number](series []T, better func(v, best float64) bool) (Extremum, bool) {
	if len(series) == 0 {
		return Extremum{}, false
	}
	ext := Extremum{Value: float64(series[0]), Index: 0}
	for i := 1; i < len(series); i++ {
		v := float64(series[i])
		if better(v, ext.Value) {
			ext = Extremum{Value: v, Index: i}
		}
	}
	return ext, true
}
