package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDueDate(t *testing.T) {
	got, ok := ParseDueDate("2026-04-10")
	assert.True(t, ok)
	assert.Equal(t, "2026-04-10", FormatDate(got))

	// Full timestamps are accepted by their date prefix.
	got, ok = ParseDueDate("2026-04-10T15:30:00Z")
	assert.True(t, ok)
	assert.Equal(t, "2026-04-10", FormatDate(got))

	for _, bad := range []string{"", "10/04/2026", "2026-13-01", "not a date"} {
		_, ok := ParseDueDate(bad)
		assert.False(t, ok, "ParseDueDate(%q) should fail", bad)
	}
}

func TestClampDayOfMonth(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		day   int
		want  int
	}{
		{2026, time.April, 31, 30},
		{2026, time.February, 31, 28},
		{2028, time.February, 31, 29}, // leap year
		{2026, time.March, 31, 31},
		{2026, time.June, 15, 15},
		{2026, time.June, 0, 1},
	}
	for _, tc := range cases {
		got := clampDayOfMonth(tc.year, tc.month, tc.day)
		assert.Equal(t, tc.want, got, "clampDayOfMonth(%d, %v, %d)", tc.year, tc.month, tc.day)
	}
}

func TestInstallmentDueDate(t *testing.T) {
	saleDate := time.Date(2026, time.January, 15, 14, 30, 0, 0, time.Local)

	// Installment k is due on the configured day, k+1 months after the
	// sale month, clamped to the target month's length.
	first := installmentDueDate(saleDate, 0, 31)
	assert.Equal(t, "2026-02-28", FormatDate(first))

	second := installmentDueDate(saleDate, 1, 31)
	assert.Equal(t, "2026-03-31", FormatDate(second))

	third := installmentDueDate(saleDate, 2, 31)
	assert.Equal(t, "2026-04-30", FormatDate(third))
}

func TestInstallmentDueDateYearRollover(t *testing.T) {
	saleDate := time.Date(2026, time.November, 5, 9, 0, 0, 0, time.Local)

	first := installmentDueDate(saleDate, 0, 10)
	assert.Equal(t, "2026-12-10", FormatDate(first))

	second := installmentDueDate(saleDate, 1, 10)
	assert.Equal(t, "2027-01-10", FormatDate(second))
}

func TestPlusDays(t *testing.T) {
	now := time.Date(2026, time.January, 15, 18, 45, 12, 0, time.Local)
	got := plusDays(now, 30)
	assert.Equal(t, "2026-02-14", FormatDate(got))
	assert.Equal(t, 0, got.Hour(), "result must land on midnight")
}
