package blocks

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// errNotANumber indicates a value that cannot be coerced to a number. It never
// escapes the package: evaluation degrades to NaN instead of failing.
var errNotANumber = errors.New("value is not a number")

// ToNumber coerces a runtime value to float64. Strings are parsed, booleans
// map to 1 and 0. Anything else fails.
func ToNumber(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case bool:
		if n {
			return 1, nil
		}

		return 0, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", errNotANumber, n)
		}

		return f, nil
	default:
		return 0, fmt.Errorf("%w: %T", errNotANumber, v)
	}
}

// FormatValue renders a runtime value the way it appears in outcome strings.
// Numbers print without a trailing ".0" so a constant 5 reads as "5".
func FormatValue(v any) string {
	switch n := v.(type) {
	case nil:
		return ""
	case string:
		return n
	case float64:
		return strconv.FormatFloat(n, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(n), 'g', -1, 32)
	case bool:
		return strconv.FormatBool(n)
	default:
		return fmt.Sprint(v)
	}
}

// FormatResults renders a body's outcome list inside a compound block's own
// outcome string.
func FormatResults(results []string) string {
	return "[" + strings.Join(results, ", ") + "]"
}

// Truthy reports whether a runtime value counts as true in a condition slot.
func Truthy(v any) bool {
	switch n := v.(type) {
	case bool:
		return n
	case float64:
		return n != 0
	case float32:
		return n != 0
	case int:
		return n != 0
	case int64:
		return n != 0
	case string:
		return n != ""
	case nil:
		return false
	default:
		return false
	}
}

// Equal implements block equality: numeric comparison when both operands are
// numbers, otherwise same-type value equality. "5" never equals 5.
func Equal(a, b any) bool {
	if an, aok := numeric(a); aok {
		if bn, bok := numeric(b); bok {
			return an == bn
		}

		return false
	}

	switch av := a.(type) {
	case string:
		bv, ok := b.(string)

		return ok && av == bv
	case nil:
		return b == nil
	default:
		return a == b
	}
}

// numeric unwraps the numeric runtime types without string parsing. Booleans
// compare numerically.
func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case bool:
		if n {
			return 1, true
		}

		return 0, true
	default:
		return 0, false
	}
}

// compareValues orders two values numerically when both coerce, otherwise
// lexicographically over their rendered forms. Returns a negative, zero, or
// positive result like strings.Compare.
func compareValues(a, b any) int {
	an, aerr := ToNumber(a)
	bn, berr := ToNumber(b)

	if aerr == nil && berr == nil {
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		default:
			return 0
		}
	}

	return strings.Compare(FormatValue(a), FormatValue(b))
}

// wrapHeading normalizes a heading in degrees into [0, 360), in either turn
// direction.
func wrapHeading(degrees float64) float64 {
	m := math.Mod(degrees, 360)
	if m < 0 {
		m += 360
	}

	return m
}

// floorMod is modulo with the divisor's sign, so mod(-7, 3) is 2. Zero
// divisors are handled by the caller.
func floorMod(a, b float64) float64 {
	m := math.Mod(a, b)
	if m != 0 && (m < 0) != (b < 0) {
		m += b
	}

	return m
}

// radians converts degrees to radians.
func radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// degreesOf converts radians to degrees.
func degreesOf(rad float64) float64 {
	return rad * 180 / math.Pi
}
