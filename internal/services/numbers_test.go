package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseLenient(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"150,00", 150},
		{"200,50", 200.5},
		{"12.5", 12.5},
		{"R$ 35,90", 35.9},
		{"42 litros", 42},
		{"-3,25", -3.25},
		{"abc", 0},
		{"", 0},
		{"--", 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseLenient(tc.in), "input %q", tc.in)
	}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "350,50", FormatNumber(350.5))
	assert.Equal(t, "0,00", FormatNumber(0))
	assert.Equal(t, "1234,57", FormatNumber(1234.567))
}

func TestFormatBRL(t *testing.T) {
	assert.Equal(t, "350,50", FormatBRL(350.5))
	assert.Equal(t, "1.234,57", FormatBRL(1234.567))
	assert.Equal(t, "1.234.567,00", FormatBRL(1234567))
	assert.Equal(t, "-1.500,00", FormatBRL(-1500))
	assert.Equal(t, "0,00", FormatBRL(0))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 500.0, Round2(100*5.0))
	assert.Equal(t, 0.13, Round2(0.125))
	assert.Equal(t, 2.67, Round2(2.666666))
}

func TestMonthTitle(t *testing.T) {
	assert.Equal(t, "JANEIRO 2024", MonthTitle(time.Date(2024, 1, 10, 0, 0, 0, 0, time.Local)))
	assert.Equal(t, "FEVEREIRO 2024", MonthTitle(time.Date(2024, 2, 5, 0, 0, 0, 0, time.Local)))
	assert.Equal(t, "DEZEMBRO 2025", MonthTitle(time.Date(2025, 12, 31, 0, 0, 0, 0, time.Local)))
}

func TestParseTicketDate(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local)

	got := ParseTicketDate("2024-01-10", now)
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.Local), got)

	got = ParseTicketDate("10/01/2024", now)
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.Local), got)

	got = ParseTicketDate("2024-01-10T08:30:00", now)
	assert.Equal(t, time.Date(2024, 1, 10, 8, 30, 0, 0, time.Local), got)

	// Unparsable dates resolve to now instead of being dropped
	assert.Equal(t, now, ParseTicketDate("não informada", now))
	assert.Equal(t, now, ParseTicketDate("", now))
}
