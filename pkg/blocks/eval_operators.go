package blocks

import (
	"math"
	"strings"
	"unicode/utf8"
)

// evalArithmetic covers Add, Subtract, Multiply, Divide and Mod. Division by
// zero yields +Inf, modulo by zero yields NaN; neither is an error.
func (b *Block) evalArithmetic(ctx *Context) any {
	num1 := b.number("NUM1", ctx)
	num2 := b.number("NUM2", ctx)

	switch b.Kind {
	case KindAdd:
		return num1 + num2
	case KindSubtract:
		return num1 - num2
	case KindMultiply:
		return num1 * num2
	case KindDivide:
		if num2 == 0 {
			return math.Inf(1)
		}

		return num1 / num2
	default: // KindMod
		if num2 == 0 {
			return math.NaN()
		}

		return floorMod(num1, num2)
	}
}

// randomBound caps the bounds at the largest integer range float64 represents
// exactly, so converting to int64 never overflows.
const randomBound = 1 << 53

// evalRandom returns a whole number in the inclusive range. An inverted range
// swaps its bounds so execution stays total.
func (b *Block) evalRandom(ctx *Context) any {
	from := b.number("FROM_NUM", ctx)
	to := b.number("TO_NUM", ctx)

	if math.IsNaN(from) || math.IsNaN(to) || math.IsInf(from, 0) || math.IsInf(to, 0) {
		return math.NaN()
	}

	lo := math.Trunc(from)
	hi := math.Trunc(to)

	if hi < lo {
		lo, hi = hi, lo
	}

	lo = math.Max(lo, -randomBound)
	hi = math.Min(hi, randomBound)

	n := int64(hi-lo) + 1

	return lo + float64(ctx.Rand.Int64N(n))
}

// evalLetterOf indexes 1-based by code point; out of range yields "".
func (b *Block) evalLetterOf(ctx *Context) any {
	index := truncNumber(b.resolve("LETTER_NUM", ctx))
	runes := []rune(FormatValue(b.resolve("STRING", ctx)))

	if math.IsNaN(index) || index < 1 || index > float64(len(runes)) {
		return ""
	}

	return string(runes[int(index)-1])
}

func (b *Block) evalLengthOf(ctx *Context) any {
	return float64(utf8.RuneCountInString(FormatValue(b.resolve("STRING", ctx))))
}

// evalContains reports whether STRING1 contains STRING2.
func (b *Block) evalContains(ctx *Context) any {
	haystack := FormatValue(b.resolve("STRING1", ctx))
	needle := FormatValue(b.resolve("STRING2", ctx))

	return strings.Contains(haystack, needle)
}

// evalMathFunction dispatches the OPERATOR field. Domain errors degrade to
// NaN; an unsupported operator name returns the input unchanged.
func (b *Block) evalMathFunction(ctx *Context) any {
	num := b.number("NUM", ctx)

	switch b.field("OPERATOR") {
	case "abs":
		return math.Abs(num)
	case "floor":
		return math.Floor(num)
	case "ceiling":
		return math.Ceil(num)
	case "sqrt":
		return math.Sqrt(num)
	case "sin":
		return math.Sin(radians(num))
	case "cos":
		return math.Cos(radians(num))
	case "tan":
		return math.Tan(radians(num))
	case "asin":
		return degreesOf(math.Asin(num))
	case "acos":
		return degreesOf(math.Acos(num))
	case "atan":
		return degreesOf(math.Atan(num))
	case "ln":
		if num <= 0 {
			return math.NaN()
		}

		return math.Log(num)
	case "log":
		if num <= 0 {
			return math.NaN()
		}

		return math.Log10(num)
	case "e ^":
		return math.Exp(num)
	case "10 ^":
		return math.Pow(10, num)
	default:
		return num
	}
}
