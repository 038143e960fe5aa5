// Package money holds the numeric and calendar primitives shared by the
// calculation, import and metrics layers. All currency values are
// shopspring decimals; float64 never carries money.
package money

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var isoDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Round2 rounds to 2 decimal places, half away from zero.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Parse converts a raw form field into a decimal. Blank input, or input that
// is not a number, returns ok=false — callers must treat that as absence,
// never as zero.
func Parse(raw string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// FromAny converts an untrusted JSON value (string, json.Number, float64 or
// int) into a decimal. Used by the backup import, where field types are not
// guaranteed.
func FromAny(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case nil:
		return decimal.Zero, false
	case string:
		return Parse(n)
	case json.Number:
		return Parse(n.String())
	case float64:
		return decimal.NewFromFloat(n), true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int64:
		return decimal.NewFromInt(n), true
	default:
		return decimal.Zero, false
	}
}

// IsISODate reports whether s matches YYYY-MM-DD. It is a shape check only:
// calendar validity is not enforced, so 2024-02-31 passes.
func IsISODate(s string) bool {
	return isoDateRe.MatchString(s)
}

// MonthKey returns the YYYY-MM prefix of an ISO date.
func MonthKey(isoDate string) string {
	if len(isoDate) < 7 {
		return ""
	}
	return isoDate[:7]
}

// LocalToday formats the current local date as YYYY-MM-DD.
// Local time on purpose: UTC truncation shifts the date near midnight.
func LocalToday() string {
	return time.Now().Format("2006-01-02")
}

// LocalMonthKey formats the current local month as YYYY-MM.
func LocalMonthKey() string {
	return time.Now().Format("2006-01")
}

// MonthToInt converts YYYY-MM to a single ordinal (year*12 + month-1) so that
// previous/next month navigation is ±1 with implicit year rollover.
func MonthToInt(m string) (int, error) {
	t, err := time.Parse("2006-01", m)
	if err != nil {
		return 0, fmt.Errorf("mês inválido %q: %w", m, err)
	}
	return t.Year()*12 + int(t.Month()) - 1, nil
}

// IntToMonth is the inverse of MonthToInt.
func IntToMonth(n int) string {
	return fmt.Sprintf("%04d-%02d", n/12, n%12+1)
}

// FormatBRL renders a decimal as a pt-BR currency string for user-facing
// messages, e.g. "R$ 1234,56".
func FormatBRL(d decimal.Decimal) string {
	return "R$ " + strings.ReplaceAll(d.StringFixed(2), ".", ",")
}
