package utils

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{0, "$0.00"},
		{20.14, "$20.14"},
		{10070, "$10,070.00"},
		{1234567.89, "$1,234,567.89"},
		{-165.5, "-$165.50"},
	}
	for _, tc := range cases {
		if got := FormatCurrency(tc.amount); got != tc.want {
			t.Errorf("FormatCurrency(%v) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	cases := []struct {
		value float64
		want  string
	}{
		{1.636, "+1.64%"},
		{0, "0.00%"},
		{-20, "-20.00%"},
	}
	for _, tc := range cases {
		if got := FormatPercent(tc.value); got != tc.want {
			t.Errorf("FormatPercent(%v) = %q, want %q", tc.value, got, tc.want)
		}
	}
}

func TestFormatShares(t *testing.T) {
	cases := []struct {
		shares int
		want   string
	}{
		{500, "500"},
		{10000, "10,000"},
		{-50, "-50"},
		{1234567, "1,234,567"},
	}
	for _, tc := range cases {
		if got := FormatShares(tc.shares); got != tc.want {
			t.Errorf("FormatShares(%d) = %q, want %q", tc.shares, got, tc.want)
		}
	}
}

// Property: currency formatting keeps the dollar prefix, two decimal
// places, comma grouping in threes, and parses back to the input value.
func TestProperty_CurrencyFormatting(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	groupPattern := regexp.MustCompile(`^\d{1,3}(,\d{3})*$`)

	properties.Property("FormatCurrency round-trips and groups correctly", prop.ForAll(
		func(amount float64) bool {
			formatted := FormatCurrency(amount)

			if amount >= 0 {
				if !strings.HasPrefix(formatted, "$") {
					return false
				}
			} else if !strings.HasPrefix(formatted, "-$") {
				return false
			}

			parts := strings.Split(formatted, ".")
			if len(parts) != 2 || len(parts[1]) != 2 {
				return false
			}

			numPart := strings.TrimPrefix(strings.TrimPrefix(parts[0], "-"), "$")
			if !groupPattern.MatchString(numPart) {
				return false
			}

			parsed, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimPrefix(strings.TrimPrefix(formatted, "-"), "$"), ",", ""), 64)
			if err != nil {
				return false
			}
			if amount < 0 {
				parsed = -parsed
			}
			return math.Abs(parsed-amount) < 0.005+math.Abs(amount)*1e-9
		},
		gen.Float64Range(-1e12, 1e12),
	))

	properties.TestingRun(t)
}
