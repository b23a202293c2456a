package query

import "math"

// Number is any value that can be summed.
type Number interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// Count returns the number of records satisfying pred. A nil pred counts everything.
func Count[T any](items []T, pred func(T) bool) int {
	if pred == nil {
		return len(items)
	}
	var n int
	for _, item := range items {
		if pred(item) {
			n++
		}
	}
	return n
}

// Sum adds up val over items.
func Sum[T any, N Number](items []T, val func(T) N) N {
	var total N
	for _, item := range items {
		total += val(item)
	}
	return total
}

// Percent returns part/total as a percentage rounded to 2 decimals; 0 when total is 0.
func Percent(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return Round(float64(part)*100/float64(total), 2)
}

// Average returns sum/n; 0 when n is 0.
func Average[N Number](sum N, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

// Round rounds f to the given number of decimals.
func Round(f float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(f*p) / p
}
