// sim/metrics_utils.go
package sim

type IntOrFloat64 interface {
	int | int64 | float64
}

// CalculateMean is a util function that calculates the mean of a data list.
// Returns 0 for an empty list.
func CalculateMean[T IntOrFloat64](numbers []T) float64 {
	if len(numbers) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, number := range numbers {
		sum += float64(number)
	}

	return sum / float64(len(numbers))
}

// JainFairnessIndex computes (Σx)² / (n·Σx²).
// Defined as 1.0 when every value is 0 and as 0 for an empty list.
func JainFairnessIndex[T IntOrFloat64](values []T) float64 {
	if len(values) == 0 {
		return 0.0
	}
	sum, sumSq := 0.0, 0.0
	for _, v := range values {
		x := float64(v)
		sum += x
		sumSq += x * x
	}
	if sumSq == 0 {
		return 1.0
	}
	return (sum * sum) / (float64(len(values)) * sumSq)
}
