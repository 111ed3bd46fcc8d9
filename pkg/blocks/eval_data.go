package blocks

import "fmt"

func (b *Block) evalSetVariable(ctx *Context) any {
	name := b.field("VARIABLE")
	value := b.resolve("VALUE", ctx)
	ctx.SetVariable(name, value)

	return fmt.Sprintf("Set %s to %s", name, FormatValue(value))
}

// evalChangeVariableBy adds numerically when both the current value and the
// delta coerce to numbers, and concatenates otherwise.
func (b *Block) evalChangeVariableBy(ctx *Context) any {
	name := b.field("VARIABLE")
	value := b.resolve("VALUE", ctx)
	current := ctx.Variable(name)

	currentNum, currentErr := ToNumber(current)
	valueNum, valueErr := ToNumber(value)

	if currentErr == nil && valueErr == nil {
		ctx.SetVariable(name, currentNum+valueNum)
	} else {
		ctx.SetVariable(name, FormatValue(current)+FormatValue(value))
	}

	return fmt.Sprintf("Changed %s by %s", name, FormatValue(value))
}
