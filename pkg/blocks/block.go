package blocks

import (
	"fmt"
	"math"
)

// Input is one resolved input slot on a runtime block: either a literal bound
// at build time or a reference to another block evaluated lazily at run time.
type Input struct {
	Literal any
	Ref     *Block
}

// LiteralInput binds a literal value.
func LiteralInput(v any) Input {
	return Input{Literal: v}
}

// RefInput binds a lazily evaluated producer block.
func RefInput(b *Block) Input {
	return Input{Ref: b}
}

// Block is one instantiated node of a compiled program. The builder owns the
// tree: Next and Body/ElseBody children are owned references, and only
// constant-produced literals are shared between blocks.
type Block struct {
	ID     string
	Kind   Kind
	Inputs map[string]Input
	Fields map[string]any

	Next     *Block
	Body     []*Block
	ElseBody []*Block
}

// New returns an empty runtime block of the given kind.
func New(id string, kind Kind) *Block {
	return &Block{
		ID:     id,
		Kind:   kind,
		Inputs: make(map[string]Input),
		Fields: make(map[string]any),
	}
}

// resolve evaluates the named input: literals pass through, block references
// are executed depth-first against the shared context.
func (b *Block) resolve(name string, ctx *Context) any {
	in, ok := b.Inputs[name]
	if !ok {
		return nil
	}

	if in.Ref != nil {
		return in.Ref.Execute(ctx)
	}

	return in.Literal
}

// number resolves the named input and coerces it to a number. Coercion
// failures degrade to NaN so a run always completes.
func (b *Block) number(name string, ctx *Context) float64 {
	n, err := ToNumber(b.resolve(name, ctx))
	if err != nil {
		return math.NaN()
	}

	return n
}

// field returns the named field as a string. Fields are literals by
// construction.
func (b *Block) field(name string) string {
	return FormatValue(b.Fields[name])
}

// runBody evaluates every block of a body list top to bottom and collects the
// rendered outcomes.
func runBody(body []*Block, ctx *Context) []string {
	results := make([]string, 0, len(body))
	for _, child := range body {
		results = append(results, FormatValue(child.Execute(ctx)))
	}

	return results
}

// Execute evaluates the block against the context and returns its outcome:
// a descriptive string for stack and hat blocks, a plain value for reporters
// and predicates. Evaluation never fails; degenerate numeric operations
// produce Inf or NaN per the catalog policy.
func (b *Block) Execute(ctx *Context) any {
	switch b.Kind {
	case KindWhenFlagClicked:
		return "Program started"
	case KindWhenKeyPressed:
		return fmt.Sprintf("Key %s pressed", b.field("KEY_OPTION"))

	case KindMoveSteps:
		return b.evalMoveSteps(ctx)
	case KindTurnRight:
		return b.evalTurn(ctx, 1)
	case KindTurnLeft:
		return b.evalTurn(ctx, -1)
	case KindGoToRandom:
		return b.evalGoToRandom(ctx)
	case KindGotoXY:
		return b.evalGotoXY(ctx)
	case KindGlideToRandom:
		return b.evalGlideToRandom(ctx)
	case KindGlideToXY:
		return b.evalGlideToXY(ctx)
	case KindPointInDirection:
		return b.evalPointInDirection(ctx)
	case KindChangeXBy:
		return b.evalChangeXBy(ctx)
	case KindSetXTo:
		return b.evalSetXTo(ctx)
	case KindChangeYBy:
		return b.evalChangeYBy(ctx)
	case KindSetYTo:
		return b.evalSetYTo(ctx)
	case KindXPosition:
		return ctx.X
	case KindYPosition:
		return ctx.Y

	case KindSay:
		return fmt.Sprintf("Says: %s", FormatValue(b.resolve("MESSAGE", ctx)))
	case KindSayForSecs:
		return fmt.Sprintf("Says '%s' for %s seconds",
			FormatValue(b.resolve("MESSAGE", ctx)), FormatValue(b.resolve("SECS", ctx)))
	case KindThink:
		return fmt.Sprintf("Thinks: %s", FormatValue(b.resolve("MESSAGE", ctx)))
	case KindThinkForSecs:
		return fmt.Sprintf("Thinks '%s' for %s seconds",
			FormatValue(b.resolve("MESSAGE", ctx)), FormatValue(b.resolve("SECS", ctx)))
	case KindChangeSizeBy:
		return b.evalChangeSizeBy(ctx)
	case KindSetSizeTo:
		return b.evalSetSizeTo(ctx)

	case KindWait:
		return fmt.Sprintf("Waited %s seconds", FormatValue(b.resolve("SECS", ctx)))
	case KindRepeat:
		return b.evalRepeat(ctx)
	case KindForever:
		return b.evalForever(ctx)
	case KindIf:
		return b.evalIf(ctx)
	case KindIfElse:
		return b.evalIfElse(ctx)
	case KindWaitUntil:
		return fmt.Sprintf("Waited until condition: %s", FormatValue(b.resolve("CONDITION", ctx)))
	case KindRepeatUntil:
		return b.evalRepeatUntil(ctx)
	case KindStop:
		return fmt.Sprintf("Stop %s", b.field("STOP_OPTION"))

	case KindKeyPressed:
		return ctx.KeyDown(b.field("KEY_OPTION"))
	case KindMouseDown:
		return ctx.MouseDown

	case KindAdd, KindSubtract, KindMultiply, KindDivide, KindMod:
		return b.evalArithmetic(ctx)
	case KindRandom:
		return b.evalRandom(ctx)
	case KindGreaterThan:
		return compareValues(b.resolve("OPERAND1", ctx), b.resolve("OPERAND2", ctx)) > 0
	case KindLessThan:
		return compareValues(b.resolve("OPERAND1", ctx), b.resolve("OPERAND2", ctx)) < 0
	case KindEquals:
		return Equal(b.resolve("OPERAND1", ctx), b.resolve("OPERAND2", ctx))
	case KindAnd:
		return Truthy(b.resolve("OPERAND1", ctx)) && Truthy(b.resolve("OPERAND2", ctx))
	case KindOr:
		return Truthy(b.resolve("OPERAND1", ctx)) || Truthy(b.resolve("OPERAND2", ctx))
	case KindNot:
		return !Truthy(b.resolve("OPERAND", ctx))
	case KindJoin:
		return FormatValue(b.resolve("STRING1", ctx)) + FormatValue(b.resolve("STRING2", ctx))
	case KindLetterOf:
		return b.evalLetterOf(ctx)
	case KindLengthOf:
		return b.evalLengthOf(ctx)
	case KindContains:
		return b.evalContains(ctx)
	case KindRound:
		return math.RoundToEven(b.number("NUM", ctx))
	case KindMathFunction:
		return b.evalMathFunction(ctx)

	case KindSetVariable:
		return b.evalSetVariable(ctx)
	case KindChangeVariableBy:
		return b.evalChangeVariableBy(ctx)
	case KindGetVariable:
		return ctx.Variable(b.field("VARIABLE"))

	default:
		// Only reachable with a custom catalog declaring kinds this engine
		// has no rule for.
		return fmt.Sprintf("Unsupported block kind: %s", b.Kind)
	}
}
