package circuit

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// piExpr matches pi, 2pi, 2*pi, pi/2, 3pi/4, 3*pi/4, -pi/2 and friends.
var piExpr = regexp.MustCompile(`^([+-]?)(\d*\.?\d*)\s*\*?\s*pi(?:\s*/\s*(\d+\.?\d*))?$`)

// ParseParamExpr parses a rotation angle: a plain number ("1.5707",
// "-0.5", "3.14e-2") or a multiple/fraction of pi ("pi", "pi/2", "3*pi/4",
// "-2pi"). Matching is case-insensitive.
func ParseParamExpr(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrParam)
	}
	if val, err := strconv.ParseFloat(s, 64); err == nil {
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return 0, fmt.Errorf("%w: %q is not finite", ErrParam, s)
		}
		return val, nil
	}

	m := piExpr.FindStringSubmatch(strings.ToLower(s))
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrParam, s)
	}
	coeff := 1.0
	if m[2] != "" {
		var err error
		if coeff, err = strconv.ParseFloat(m[2], 64); err != nil {
			return 0, fmt.Errorf("%w: coefficient in %q", ErrParam, s)
		}
	}
	val := coeff * math.Pi
	if m[3] != "" {
		denom, err := strconv.ParseFloat(m[3], 64)
		if err != nil || denom == 0 {
			return 0, fmt.Errorf("%w: denominator in %q", ErrParam, s)
		}
		val /= denom
	}
	if m[1] == "-" {
		val = -val
	}
	return val, nil
}

// ParseParams parses a comma-separated angle list; an empty input yields nil.
func ParseParams(s string) ([]float64, error) {
	var params []float64
	for part := range strings.SplitSeq(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		v, err := ParseParamExpr(part)
		if err != nil {
			return nil, err
		}
		params = append(params, v)
	}
	return params, nil
}

var piForms = []struct {
	value   float64
	display string
}{
	{2 * math.Pi, "2*pi"},
	{math.Pi, "pi"},
	{math.Pi / 2, "pi/2"},
	{math.Pi / 3, "pi/3"},
	{math.Pi / 4, "pi/4"},
	{math.Pi / 6, "pi/6"},
	{math.Pi / 8, "pi/8"},
	{3 * math.Pi / 4, "3*pi/4"},
	{3 * math.Pi / 2, "3*pi/2"},
	{2 * math.Pi / 3, "2*pi/3"},
}

// FormatParam renders an angle, preferring pi notation for common fractions.
func FormatParam(val float64) string {
	for _, pf := range piForms {
		switch {
		case math.Abs(val-pf.value) < 1e-10:
			return pf.display
		case math.Abs(val+pf.value) < 1e-10:
			return "-" + pf.display
		}
	}
	return strconv.FormatFloat(val, 'g', -1, 64)
}
