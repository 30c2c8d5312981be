package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundMoney(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{10.004, 10.00},
		{10.005, 10.01},
		{349.999999, 350.00},
		{0.1 + 0.2, 0.30},
		{-10.005, -10.01},
		{0, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, RoundMoney(tc.in), "RoundMoney(%v)", tc.in)
	}
}

func TestSplitInstallmentsExactSum(t *testing.T) {
	cases := []struct {
		amount float64
		n      int
		want   []float64
	}{
		{100.00, 3, []float64{33.34, 33.33, 33.33}},
		{100.00, 4, []float64{25.00, 25.00, 25.00, 25.00}},
		{0.05, 3, []float64{0.02, 0.02, 0.01}},
		{1000.00, 6, []float64{166.67, 166.67, 166.67, 166.67, 166.66, 166.66}},
		{899.99, 3, []float64{300.00, 300.00, 299.99}},
	}
	for _, tc := range cases {
		got := SplitInstallments(tc.amount, tc.n)
		assert.Equal(t, tc.want, got, "SplitInstallments(%v, %d)", tc.amount, tc.n)

		var cents int64
		for _, part := range got {
			cents += toCents(part)
		}
		assert.Equal(t, toCents(tc.amount), cents, "parts of %v must sum exactly", tc.amount)
	}
}

func TestSplitInstallmentsFrontLoadsRemainder(t *testing.T) {
	parts := SplitInstallments(100.00, 3)
	for i := 1; i < len(parts); i++ {
		assert.LessOrEqual(t, parts[i], parts[i-1], "later installments must not exceed earlier ones")
	}
}
