package circuit

import (
	"math"
	"testing"
)

func TestParseParamExpr(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"1.5707", 1.5707, true},
		{"-0.5", -0.5, true},
		{"3.14e-2", 0.0314, true},
		{"pi", math.Pi, true},
		{"PI", math.Pi, true},
		{"pi/2", math.Pi / 2, true},
		{"pi/8", math.Pi / 8, true},
		{"2pi", 2 * math.Pi, true},
		{"3*pi/4", 3 * math.Pi / 4, true},
		{"+pi/3", math.Pi / 3, true},
		{"-pi", -math.Pi, true},
		{"-2*pi/3", -2 * math.Pi / 3, true},
		{" 3 * pi / 4 ", 3 * math.Pi / 4, true},
		{"", 0, false},
		{"tau", 0, false},
		{"pi/0", 0, false},
		{"pi/", 0, false},
		{"nan", 0, false},
		{"NaN", 0, false},
		{"inf", 0, false},
		{"-Inf", 0, false},
		{"1e999", 0, false},
	}

	for _, tt := range tests {
		got, err := ParseParamExpr(tt.input)
		if (err == nil) != tt.ok {
			t.Errorf("ParseParamExpr(%q): err=%v, want ok=%v", tt.input, err, tt.ok)
			continue
		}
		if tt.ok && math.Abs(got-tt.want) > 1e-10 {
			t.Errorf("ParseParamExpr(%q) = %g, want %g", tt.input, got, tt.want)
		}
	}
}

func TestParseParams(t *testing.T) {
	params, err := ParseParams("pi/2, 0.25")
	if err != nil || len(params) != 2 {
		t.Fatalf("ParseParams: got %v, %v", params, err)
	}
	if params, err := ParseParams(""); err != nil || params != nil {
		t.Errorf("ParseParams(\"\") = %v, %v; want nil, nil", params, err)
	}
	if _, err := ParseParams("pi/2,garbage"); err == nil {
		t.Error("ParseParams(\"pi/2,garbage\") should fail")
	}
}

func TestFormatParam(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{math.Pi, "pi"},
		{math.Pi / 2, "pi/2"},
		{3 * math.Pi / 4, "3*pi/4"},
		{-math.Pi / 2, "-pi/2"},
		{2 * math.Pi, "2*pi"},
		{1.5, "1.5"},
		{0, "0"},
		{0.01, "0.01"},
	}

	for _, tt := range tests {
		if got := FormatParam(tt.input); got != tt.want {
			t.Errorf("FormatParam(%g) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	for _, v := range []float64{math.Pi / 6, -3 * math.Pi / 2, 0.125, 2 * math.Pi / 3} {
		got, err := ParseParamExpr(FormatParam(v))
		if err != nil {
			t.Fatalf("round trip %g: %v", v, err)
		}
		if math.Abs(got-v) > 1e-10 {
			t.Errorf("round trip %g -> %q -> %g", v, FormatParam(v), got)
		}
	}
}
