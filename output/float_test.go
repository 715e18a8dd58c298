package output

import (
	"math"
	"strconv"
	"testing"
)

func TestAppendFloat64(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  string
	}{
		{name: "zero", value: 0, want: "0"},
		{name: "negative zero", value: math.Copysign(0, -1), want: "0"},
		{name: "one", value: 1, want: "1"},
		{name: "minus one", value: -1, want: "-1"},
		{name: "tenth", value: 0.1, want: "0.1"},
		{name: "fraction", value: 0.12314, want: "0.12314"},
		{name: "integer valued", value: 123456, want: "123456"},
		{name: "decimal point", value: 123.45, want: "123.45"},
		{name: "positional limit", value: 1e20, want: "100000000000000000000"},
		{name: "first exponent", value: 1e21, want: "1e+21"},
		{name: "large", value: 1e52, want: "1e+52"},
		{name: "huge", value: 1e308, want: "1e+308"},
		{name: "small positional", value: 1e-6, want: "0.000001"},
		{name: "first small exponent", value: 1e-7, want: "1e-7"},
		{name: "small with digits", value: 1.25e-7, want: "1.25e-7"},
		{name: "negative exponent form", value: -2.5e30, want: "-2.5e+30"},
		{name: "pi", value: 3.141592653589793, want: "3.141592653589793"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(AppendFloat64(nil, tt.value)); got != tt.want {
				t.Errorf("AppendFloat64(%g) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestAppendFloat32(t *testing.T) {
	tests := []struct {
		name  string
		value float32
		want  string
	}{
		{name: "zero", value: 0, want: "0"},
		{name: "fraction", value: 0.12314, want: "0.12314"},
		{name: "single precision rounding", value: 9999999999999999999, want: "10000000000000000000"},
		{name: "third", value: 1.0 / 3.0, want: "0.33333334"},
		{name: "negative", value: -2.5, want: "-2.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(AppendFloat32(nil, tt.value)); got != tt.want {
				t.Errorf("AppendFloat32(%g) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestFloatRoundTrip(t *testing.T) {
	values := []float64{
		0.1, 2.0 / 3.0, 1e-300, 4.9e-324, math.MaxFloat64,
		12345.6789, 1e21, 1e-7, 98765432109876543210,
	}
	for _, v := range values {
		text := string(AppendFloat64(nil, v))
		parsed, err := strconv.ParseFloat(text, 64)
		if err != nil {
			t.Fatalf("ParseFloat(%q): %v", text, err)
		}
		if parsed != v {
			t.Errorf("round-trip of %g through %q gave %g", v, text, parsed)
		}
	}

	values32 := []float32{0.1, 2.0 / 3.0, math.MaxFloat32, 1.5e-45, 12345.678}
	for _, v := range values32 {
		text := string(AppendFloat32(nil, v))
		parsed, err := strconv.ParseFloat(text, 32)
		if err != nil {
			t.Fatalf("ParseFloat(%q): %v", text, err)
		}
		if float32(parsed) != v {
			t.Errorf("round-trip of %g through %q gave %g", v, text, parsed)
		}
	}
}
