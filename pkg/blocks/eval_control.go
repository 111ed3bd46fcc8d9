package blocks

import "fmt"

// Loop bodies run exactly one linear pass per script run: there is no driving
// clock in this engine, so "repeat N" and "forever" report their intent and
// evaluate the substack once.

func (b *Block) evalRepeat(ctx *Context) any {
	times := b.resolve("TIMES", ctx)
	results := runBody(b.Body, ctx)

	return fmt.Sprintf("Repeated %s times: %s", FormatValue(times), FormatResults(results))
}

func (b *Block) evalForever(ctx *Context) any {
	results := runBody(b.Body, ctx)

	return fmt.Sprintf("Forever loop: %s", FormatResults(results))
}

func (b *Block) evalIf(ctx *Context) any {
	if Truthy(b.resolve("CONDITION", ctx)) {
		results := runBody(b.Body, ctx)

		return fmt.Sprintf("If condition met: %s", FormatResults(results))
	}

	return "If condition not met"
}

// evalIfElse evaluates both arms and reports both traces, with the taken arm
// first. Side effects of the untaken arm apply too.
func (b *Block) evalIfElse(ctx *Context) any {
	condition := Truthy(b.resolve("CONDITION", ctx))
	ifResults := runBody(b.Body, ctx)
	elseResults := runBody(b.ElseBody, ctx)

	if condition {
		return fmt.Sprintf("If condition met: %s (else: %s)",
			FormatResults(ifResults), FormatResults(elseResults))
	}

	return fmt.Sprintf("Else condition met: %s (if: %s)",
		FormatResults(elseResults), FormatResults(ifResults))
}

func (b *Block) evalRepeatUntil(ctx *Context) any {
	condition := b.resolve("CONDITION", ctx)
	results := runBody(b.Body, ctx)

	return fmt.Sprintf("Repeat until %s: %s", FormatValue(condition), FormatResults(results))
}
