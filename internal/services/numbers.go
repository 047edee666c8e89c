package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Numeric and date helpers for legacy ticket data. Municipal forms produce
// comma-formatted decimal strings and a handful of date layouts; the report
// pipeline must digest them without erroring.

// ParseLenient converts a legacy numeric string to a float. It strips every
// character except digits, comma, dot and minus, converts the comma to a dot
// and returns 0 when the remainder still does not parse. Fallback-to-zero is
// deliberate: reports must stay renderable over partial or garbled data.
func ParseLenient(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	cleaned := strings.ReplaceAll(b.String(), ",", ".")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}

var ticketDateLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006",
}

// ParseTicketDate parses a ticket date string against the known form
// layouts. Unparsable dates resolve to now so the ticket still lands in a
// month group instead of being dropped.
func ParseTicketDate(s string, now time.Time) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range ticketDateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t
		}
	}
	return now
}

// Round2 rounds to two decimal places (half away from zero)
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatNumber renders a figure with two decimals and a comma separator
// ("1234,56"). Used for liters, kilometers and prices on documents.
func FormatNumber(v float64) string {
	return strings.Replace(fmt.Sprintf("%.2f", v), ".", ",", 1)
}

// FormatBRL renders a monetary figure with thousands dots and a comma
// decimal separator ("1.234,56").
func FormatBRL(v float64) string {
	s := fmt.Sprintf("%.2f", math.Abs(v))
	parts := strings.SplitN(s, ".", 2)
	intPart, decPart := parts[0], parts[1]

	var b strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}

	sign := ""
	if v < 0 {
		sign = "-"
	}
	return sign + b.String() + "," + decPart
}

var monthNames = [12]string{
	"JANEIRO", "FEVEREIRO", "MARÇO", "ABRIL", "MAIO", "JUNHO",
	"JULHO", "AGOSTO", "SETEMBRO", "OUTUBRO", "NOVEMBRO", "DEZEMBRO",
}

// MonthTitle returns the localized upper-case month heading ("JANEIRO 2024")
func MonthTitle(t time.Time) string {
	return fmt.Sprintf("%s %d", monthNames[t.Month()-1], t.Year())
}
