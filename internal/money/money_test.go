package money

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRound2MetadeParaLonge(t *testing.T) {
	casos := map[string]string{
		"2.005":  "2.01",
		"2.004":  "2",
		"-2.005": "-2.01",
		"10":     "10",
		"0.125":  "0.13",
	}
	for entrada, esperado := range casos {
		d, err := decimal.NewFromString(entrada)
		require.NoError(t, err)
		assert.Equal(t, esperado, Round2(d).String(), "entrada %s", entrada)
	}
}

func TestParseVazioNaoEZero(t *testing.T) {
	_, ok := Parse("")
	assert.False(t, ok)
	_, ok = Parse("   ")
	assert.False(t, ok)
	_, ok = Parse("abc")
	assert.False(t, ok)

	d, ok := Parse(" 10.50 ")
	require.True(t, ok)
	assert.Equal(t, "10.5", d.String())

	d, ok = Parse("-3")
	require.True(t, ok)
	assert.True(t, d.IsNegative())
}

func TestFromAny(t *testing.T) {
	d, ok := FromAny(json.Number("100.00"))
	require.True(t, ok)
	assert.Equal(t, "100", d.String())

	d, ok = FromAny("42.5")
	require.True(t, ok)
	assert.Equal(t, "42.5", d.String())

	_, ok = FromAny(nil)
	assert.False(t, ok)

	_, ok = FromAny([]string{"x"})
	assert.False(t, ok)

	d, ok = FromAny(7)
	require.True(t, ok)
	assert.Equal(t, "7", d.String())
}

func TestIsISODateSoVerificaFormato(t *testing.T) {
	assert.True(t, IsISODate("2024-01-15"))
	// Validade de calendário não é checada de propósito.
	assert.True(t, IsISODate("2024-02-31"))
	assert.False(t, IsISODate("2024-1-15"))
	assert.False(t, IsISODate("15/01/2024"))
	assert.False(t, IsISODate(""))
	assert.False(t, IsISODate("2024-01-15T00:00:00Z"))
}

func TestMonthKey(t *testing.T) {
	assert.Equal(t, "2024-05", MonthKey("2024-05-10"))
	assert.Equal(t, "", MonthKey("2024"))
}

func TestMonthToIntNavegacao(t *testing.T) {
	n, err := MonthToInt("2024-12")
	require.NoError(t, err)
	assert.Equal(t, "2025-01", IntToMonth(n+1))
	assert.Equal(t, "2024-11", IntToMonth(n-1))

	n, err = MonthToInt("2024-01")
	require.NoError(t, err)
	assert.Equal(t, "2023-12", IntToMonth(n-1))

	_, err = MonthToInt("2024-13")
	assert.Error(t, err)
	_, err = MonthToInt("sem-mes")
	assert.Error(t, err)
}

func TestMonthToIntRoundTrip(t *testing.T) {
	for _, mes := range []string{"1999-01", "2024-06", "2030-12"} {
		n, err := MonthToInt(mes)
		require.NoError(t, err)
		assert.Equal(t, mes, IntToMonth(n))
	}
}

func TestFormatBRL(t *testing.T) {
	assert.Equal(t, "R$ 1234,50", FormatBRL(decimal.NewFromFloat(1234.5)))
	assert.Equal(t, "R$ 0,00", FormatBRL(decimal.Zero))
}
