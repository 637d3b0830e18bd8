package graph

import (
	"math"
)

// HarmonicCredit computes per-author credit weights from 1-based author
// positions using the Harmonic Credit Model: credit_i = (1/order_i) /
// sum_k(1/order_k), rounded to 4 decimal places. Positions <= 0 default
// to 1, so a fully unordered author list splits credit evenly. Credits
// sum to 1.0 across the list up to rounding.
func HarmonicCredit(orders []int) []float64 {
	if len(orders) == 0 {
		return nil
	}

	sum := 0.0
	for _, order := range orders {
		if order <= 0 {
			order = 1
		}
		sum += 1.0 / float64(order)
	}

	weights := make([]float64, len(orders))
	for i, order := range orders {
		if order <= 0 {
			order = 1
		}
		weights[i] = math.Round((1.0/float64(order))/sum*10000) / 10000
	}
	return weights
}
