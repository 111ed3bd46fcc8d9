package blocks

import (
	"fmt"
	"math"
)

// Stage bounds for the random-position blocks.
const (
	stageHalfWidth  = 240
	stageHalfHeight = 180
)

// truncNumber coerces an already-resolved value to a whole number, degrading
// to NaN. Inputs are resolved exactly once so producer blocks run exactly
// once per evaluation.
func truncNumber(v any) float64 {
	n, err := ToNumber(v)
	if err != nil {
		return math.NaN()
	}

	return math.Trunc(n)
}

func (b *Block) evalMoveSteps(ctx *Context) any {
	steps := b.resolve("STEPS", ctx)
	n := truncNumber(steps)

	rad := radians(ctx.Heading)
	ctx.X += n * math.Cos(rad)
	ctx.Y += n * math.Sin(rad)

	return fmt.Sprintf("Moved %s steps", FormatValue(steps))
}

// evalTurn handles TurnRight (sign +1) and TurnLeft (sign -1).
func (b *Block) evalTurn(ctx *Context, sign float64) any {
	degrees := b.resolve("DEGREES", ctx)
	ctx.Heading = wrapHeading(ctx.Heading + sign*truncNumber(degrees))

	if sign < 0 {
		return fmt.Sprintf("Turned left %s degrees", FormatValue(degrees))
	}

	return fmt.Sprintf("Turned right %s degrees", FormatValue(degrees))
}

func (b *Block) evalGoToRandom(ctx *Context) any {
	x := ctx.Rand.IntN(2*stageHalfWidth+1) - stageHalfWidth
	y := ctx.Rand.IntN(2*stageHalfHeight+1) - stageHalfHeight
	ctx.X = float64(x)
	ctx.Y = float64(y)

	return fmt.Sprintf("Moved to random position (%d, %d)", x, y)
}

func (b *Block) evalGotoXY(ctx *Context) any {
	x := b.resolve("X", ctx)
	y := b.resolve("Y", ctx)
	ctx.X = truncNumber(x)
	ctx.Y = truncNumber(y)

	return fmt.Sprintf("Moved to (%s, %s)", FormatValue(x), FormatValue(y))
}

func (b *Block) evalGlideToRandom(ctx *Context) any {
	secs := b.resolve("SECS", ctx)
	x := ctx.Rand.IntN(2*stageHalfWidth+1) - stageHalfWidth
	y := ctx.Rand.IntN(2*stageHalfHeight+1) - stageHalfHeight
	ctx.X = float64(x)
	ctx.Y = float64(y)

	return fmt.Sprintf("Glided to random position (%d, %d) in %s seconds", x, y, FormatValue(secs))
}

func (b *Block) evalGlideToXY(ctx *Context) any {
	secs := b.resolve("SECS", ctx)
	x := b.resolve("X", ctx)
	y := b.resolve("Y", ctx)
	ctx.X = truncNumber(x)
	ctx.Y = truncNumber(y)

	return fmt.Sprintf("Glided to (%s, %s) in %s seconds",
		FormatValue(x), FormatValue(y), FormatValue(secs))
}

func (b *Block) evalPointInDirection(ctx *Context) any {
	direction := b.resolve("DIRECTION", ctx)
	ctx.Heading = wrapHeading(truncNumber(direction))

	return fmt.Sprintf("Pointed in direction %s", FormatValue(direction))
}

func (b *Block) evalChangeXBy(ctx *Context) any {
	dx := b.resolve("DX", ctx)
	ctx.X += truncNumber(dx)

	return fmt.Sprintf("Changed x by %s", FormatValue(dx))
}

func (b *Block) evalSetXTo(ctx *Context) any {
	x := b.resolve("X", ctx)
	ctx.X = truncNumber(x)

	return fmt.Sprintf("Set x to %s", FormatValue(x))
}

func (b *Block) evalChangeYBy(ctx *Context) any {
	dy := b.resolve("DY", ctx)
	ctx.Y += truncNumber(dy)

	return fmt.Sprintf("Changed y by %s", FormatValue(dy))
}

func (b *Block) evalSetYTo(ctx *Context) any {
	y := b.resolve("Y", ctx)
	ctx.Y = truncNumber(y)

	return fmt.Sprintf("Set y to %s", FormatValue(y))
}

func (b *Block) evalChangeSizeBy(ctx *Context) any {
	change := b.resolve("CHANGE", ctx)
	ctx.Size += truncNumber(change)

	return fmt.Sprintf("Changed size by %s", FormatValue(change))
}

func (b *Block) evalSetSizeTo(ctx *Context) any {
	size := b.resolve("SIZE", ctx)
	ctx.Size = truncNumber(size)

	return fmt.Sprintf("Set size to %s", FormatValue(size))
}
