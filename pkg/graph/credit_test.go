package graph

import (
	"math"
	"reflect"
	"testing"
)

func TestHarmonicCredit(t *testing.T) {
	tests := []struct {
		name   string
		orders []int
		want   []float64
	}{
		{
			name:   "empty input",
			orders: nil,
			want:   nil,
		},
		{
			name:   "single author",
			orders: []int{1},
			want:   []float64{1.0},
		},
		{
			name:   "two authors",
			orders: []int{1, 2},
			want:   []float64{0.6667, 0.3333},
		},
		{
			name:   "three authors",
			orders: []int{1, 2, 3},
			want:   []float64{0.5455, 0.2727, 0.1818},
		},
		{
			name:   "unspecified orders split evenly",
			orders: []int{0, 0},
			want:   []float64{0.5, 0.5},
		},
		{
			name:   "negative order treated as first",
			orders: []int{-1, 1},
			want:   []float64{0.5, 0.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HarmonicCredit(tt.orders)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("HarmonicCredit(%v) = %v, want %v", tt.orders, got, tt.want)
			}
		})
	}
}

func TestHarmonicCreditSumsToOne(t *testing.T) {
	tests := []struct {
		name   string
		orders []int
	}{
		{name: "sequential", orders: []int{1, 2, 3, 4, 5}},
		{name: "shared positions", orders: []int{1, 1, 2}},
		{name: "large list", orders: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sum := 0.0
			for _, w := range HarmonicCredit(tt.orders) {
				sum += w
			}
			if math.Abs(sum-1.0) > 1e-3 {
				t.Errorf("credits for %v sum to %v, want 1.0", tt.orders, sum)
			}
		})
	}
}

func TestHarmonicCreditDecreasesWithOrder(t *testing.T) {
	weights := HarmonicCredit([]int{1, 2, 3, 4})
	for i := 1; i < len(weights); i++ {
		if weights[i] >= weights[i-1] {
			t.Errorf("weight at position %d (%v) not less than position %d (%v)",
				i+1, weights[i], i, weights[i-1])
		}
	}
}
