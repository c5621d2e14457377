package calc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{14, "14"},
		{-2.5, "-2.5"},
		{0.1 + 0.2, "0.30000000000000004"},
		{1e21, "1e+21"},
		{123456789012345678901, "123456789012345680000"},
		{1.5e-7, "1.5e-7"},
		{0.000001, "0.000001"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
		{math.NaN(), "NaN"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatNumber(tc.in), "FormatNumber(%v)", tc.in)
	}
}

func TestFormatNumberRoundTrips(t *testing.T) {
	for _, f := range []float64{1.0 / 3, 2.0 / 3 * 1e15, -7.25e-9, 98765.4321, 1e300} {
		assert.Equal(t, f, ParseNumber(FormatNumber(f)))
	}
}

func TestFormatEntry(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{-2.5, "-2.5"},
		{1e-8, "0.00000001"},
		{-1.5e-7, "-0.00000015"},
		{1e21, "1000000000000000000000"},
	}
	for _, tc := range cases {
		got := FormatEntry(tc.in)
		assert.Equal(t, tc.want, got, "FormatEntry(%v)", tc.in)
		assert.Equal(t, tc.in, ParseNumber(got))
	}
}

func TestFormatDisplay(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"999", "999"},
		{"1000", "1,000"},
		{"-1234567.891", "-1,234,567.891"},
		{"12.", "12."},
		{"0.", "0."},
		{"123456789012345680000", "123,456,789,012,345,680,000"},
		{"1e+21", "1e+21"},
		{ErrorText, ErrorText},
		{"Infinity", "Infinity"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatDisplay(tc.in), "FormatDisplay(%q)", tc.in)
	}
}

func TestParseNumber(t *testing.T) {
	assert.Equal(t, 1234.5, ParseNumber("1,234.5"))
	assert.Equal(t, 12.0, ParseNumber("12."))
	assert.Equal(t, 0.0, ParseNumber(ErrorText))
	assert.Equal(t, -3.0, ParseNumber("-3"))
}

func TestParseOperator(t *testing.T) {
	for in, want := range map[string]Operator{
		"+": Add, "add": Add,
		"-": Subtract, "−": Subtract,
		"*": Multiply, "×": Multiply,
		"/": Divide, "divide": Divide,
	} {
		got, ok := ParseOperator(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := ParseOperator("^")
	assert.False(t, ok)
	assert.Equal(t, "÷", Divide.Symbol())
	assert.Equal(t, "multiply", Multiply.String())
	assert.True(t, Multiply.HighPrecedence())
	assert.False(t, Subtract.HighPrecedence())
}
