package blocks

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func operatorBlock(kind Kind, inputs map[string]any) *Block {
	b := New("test", kind)
	for name, value := range inputs {
		b.Inputs[name] = LiteralInput(value)
	}

	return b
}

func TestArithmetic(t *testing.T) {
	ctx := NewContext()

	tests := []struct {
		name string
		kind Kind
		num1 any
		num2 any
		want float64
	}{
		{"add", KindAdd, 2.0, 3.0, 5},
		{"subtract", KindSubtract, 2.0, 3.0, -1},
		{"multiply", KindMultiply, 4.0, 2.5, 10},
		{"divide", KindDivide, 10.0, 2.0, 5},
		{"divide negative", KindDivide, -9.0, 3.0, -3},
		{"mod", KindMod, 7.0, 3.0, 1},
		{"mod negative dividend", KindMod, -7.0, 3.0, 2},
		{"mod negative divisor", KindMod, 7.0, -3.0, -2},
		{"add coerces strings", KindAdd, "2", "3", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := operatorBlock(tt.kind, map[string]any{"NUM1": tt.num1, "NUM2": tt.num2})
			got, ok := b.Execute(ctx).(float64)
			require.True(t, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestDivideByZero(t *testing.T) {
	ctx := NewContext()

	b := operatorBlock(KindDivide, map[string]any{"NUM1": 10.0, "NUM2": 0.0})
	got, ok := b.Execute(ctx).(float64)
	require.True(t, ok)
	assert.True(t, math.IsInf(got, 1))

	b = operatorBlock(KindDivide, map[string]any{"NUM1": -10.0, "NUM2": 0.0})
	got, ok = b.Execute(ctx).(float64)
	require.True(t, ok)
	assert.True(t, math.IsInf(got, 1))
}

func TestModByZero(t *testing.T) {
	ctx := NewContext()

	b := operatorBlock(KindMod, map[string]any{"NUM1": 10.0, "NUM2": 0.0})
	got, ok := b.Execute(ctx).(float64)
	require.True(t, ok)
	assert.True(t, math.IsNaN(got))
}

func TestNonNumericOperandIsNaN(t *testing.T) {
	ctx := NewContext()

	b := operatorBlock(KindAdd, map[string]any{"NUM1": "hello", "NUM2": 3.0})
	got, ok := b.Execute(ctx).(float64)
	require.True(t, ok)
	assert.True(t, math.IsNaN(got))
}

func TestComparisons(t *testing.T) {
	ctx := NewContext()

	tests := []struct {
		name string
		kind Kind
		op1  any
		op2  any
		want bool
	}{
		{"numeric strings compare numerically", KindGreaterThan, "10", "9", true},
		{"lexicographic fallback", KindGreaterThan, "b", "a", true},
		{"less than", KindLessThan, 3.0, 5.0, true},
		{"equals numeric", KindEquals, "5", "5", true},
		{"equals cross type", KindEquals, "5", 5.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := operatorBlock(tt.kind, map[string]any{"OPERAND1": tt.op1, "OPERAND2": tt.op2})
			assert.Equal(t, tt.want, b.Execute(ctx))
		})
	}
}

func TestBooleanOperators(t *testing.T) {
	ctx := NewContext()

	and := operatorBlock(KindAnd, map[string]any{"OPERAND1": true, "OPERAND2": 0.0})
	assert.Equal(t, false, and.Execute(ctx))

	or := operatorBlock(KindOr, map[string]any{"OPERAND1": false, "OPERAND2": "x"})
	assert.Equal(t, true, or.Execute(ctx))

	not := operatorBlock(KindNot, map[string]any{"OPERAND": false})
	assert.Equal(t, true, not.Execute(ctx))
}

func TestStringOperators(t *testing.T) {
	ctx := NewContext()

	join := operatorBlock(KindJoin, map[string]any{"STRING1": "foo", "STRING2": 5.0})
	assert.Equal(t, "foo5", join.Execute(ctx))

	letter := operatorBlock(KindLetterOf, map[string]any{"LETTER_NUM": 2.0, "STRING": "abc"})
	assert.Equal(t, "b", letter.Execute(ctx))

	outOfRange := operatorBlock(KindLetterOf, map[string]any{"LETTER_NUM": 9.0, "STRING": "abc"})
	assert.Equal(t, "", outOfRange.Execute(ctx))

	length := operatorBlock(KindLengthOf, map[string]any{"STRING": "hello"})
	assert.Equal(t, 5.0, length.Execute(ctx))

	contains := operatorBlock(KindContains, map[string]any{"STRING1": "hello world", "STRING2": "o w"})
	assert.Equal(t, true, contains.Execute(ctx))
}

func TestRound(t *testing.T) {
	ctx := NewContext()

	round := operatorBlock(KindRound, map[string]any{"NUM": 2.5})
	assert.InDelta(t, 2.0, round.Execute(ctx).(float64), 1e-9)

	round = operatorBlock(KindRound, map[string]any{"NUM": 3.5})
	assert.InDelta(t, 4.0, round.Execute(ctx).(float64), 1e-9)
}

func TestMathFunction(t *testing.T) {
	ctx := NewContext()

	mathOp := func(op string, num float64) float64 {
		b := New("test", KindMathFunction)
		b.Fields["OPERATOR"] = op
		b.Inputs["NUM"] = LiteralInput(num)

		got, ok := b.Execute(ctx).(float64)
		require.True(t, ok)

		return got
	}

	assert.InDelta(t, 4.0, mathOp("abs", -4), 1e-9)
	assert.InDelta(t, 3.0, mathOp("floor", 3.9), 1e-9)
	assert.InDelta(t, 4.0, mathOp("ceiling", 3.1), 1e-9)
	assert.InDelta(t, 3.0, mathOp("sqrt", 9), 1e-9)
	assert.InDelta(t, 1.0, mathOp("sin", 90), 1e-9)
	assert.InDelta(t, -1.0, mathOp("cos", 180), 1e-9)
	assert.InDelta(t, 90.0, mathOp("asin", 1), 1e-9)
	assert.InDelta(t, 45.0, mathOp("atan", 1), 1e-9)
	assert.InDelta(t, 2.0, mathOp("log", 100), 1e-9)
	assert.InDelta(t, 100.0, mathOp("10 ^", 2), 1e-9)
	assert.True(t, math.IsNaN(mathOp("ln", 0)))
	assert.True(t, math.IsNaN(mathOp("log", -1)))
	assert.True(t, math.IsNaN(mathOp("sqrt", -1)))

	// Unsupported operator names pass the input through.
	assert.InDelta(t, 7.0, mathOp("mystery", 7), 1e-9)
}

func TestRandomRange(t *testing.T) {
	ctx := NewContext()
	ctx.Seed(1)

	b := operatorBlock(KindRandom, map[string]any{"FROM_NUM": 1.0, "TO_NUM": 10.0})

	for range 100 {
		got, ok := b.Execute(ctx).(float64)
		require.True(t, ok)
		assert.GreaterOrEqual(t, got, 1.0)
		assert.LessOrEqual(t, got, 10.0)
		assert.Equal(t, math.Trunc(got), got)
	}
}

func TestRandomInvertedRangeSwaps(t *testing.T) {
	ctx := NewContext()
	ctx.Seed(7)

	b := operatorBlock(KindRandom, map[string]any{"FROM_NUM": 10.0, "TO_NUM": 1.0})

	for range 100 {
		got, ok := b.Execute(ctx).(float64)
		require.True(t, ok)
		assert.GreaterOrEqual(t, got, 1.0)
		assert.LessOrEqual(t, got, 10.0)
	}
}

func TestRandomNaNBound(t *testing.T) {
	ctx := NewContext()

	b := operatorBlock(KindRandom, map[string]any{"FROM_NUM": "junk", "TO_NUM": 10.0})
	got, ok := b.Execute(ctx).(float64)
	require.True(t, ok)
	assert.True(t, math.IsNaN(got))
}

func TestRandomExtremeBoundsClamp(t *testing.T) {
	ctx := NewContext()
	ctx.Seed(5)

	tests := []struct {
		name string
		from any
		to   any
	}{
		{"upper bound beyond int range", 1.0, 1e19},
		{"lower bound beyond int range", -1e19, 0.0},
		{"both bounds beyond int range", -1e300, 1e300},
		{"both bounds beyond same side", 1e19, 2e19},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := operatorBlock(KindRandom, map[string]any{"FROM_NUM": tt.from, "TO_NUM": tt.to})

			got, ok := b.Execute(ctx).(float64)
			require.True(t, ok)
			require.False(t, math.IsNaN(got))
			require.False(t, math.IsInf(got, 0))
			assert.Equal(t, math.Trunc(got), got)
		})
	}
}

func TestMoveSteps(t *testing.T) {
	ctx := NewContext()

	b := operatorBlock(KindMoveSteps, map[string]any{"STEPS": 10.0})
	assert.Equal(t, "Moved 10 steps", b.Execute(ctx))
	assert.InDelta(t, 10.0, ctx.X, 1e-9)
	assert.InDelta(t, 0.0, ctx.Y, 1e-9)

	ctx.Heading = 90
	b.Execute(ctx)
	assert.InDelta(t, 10.0, ctx.X, 1e-9)
	assert.InDelta(t, 10.0, ctx.Y, 1e-9)
}

func TestTurnWrapsHeading(t *testing.T) {
	ctx := NewContext()
	ctx.Heading = 350

	right := operatorBlock(KindTurnRight, map[string]any{"DEGREES": 20.0})
	assert.Equal(t, "Turned right 20 degrees", right.Execute(ctx))
	assert.InDelta(t, 10.0, ctx.Heading, 1e-9)

	left := operatorBlock(KindTurnLeft, map[string]any{"DEGREES": 20.0})
	assert.Equal(t, "Turned left 20 degrees", left.Execute(ctx))
	assert.InDelta(t, 350.0, ctx.Heading, 1e-9)
}

func TestGotoXYTruncates(t *testing.T) {
	ctx := NewContext()

	b := operatorBlock(KindGotoXY, map[string]any{"X": 3.9, "Y": -2.9})
	assert.Equal(t, "Moved to (3.9, -2.9)", b.Execute(ctx))
	assert.InDelta(t, 3.0, ctx.X, 1e-9)
	assert.InDelta(t, -2.0, ctx.Y, 1e-9)
}

func TestGoToRandomStaysOnStage(t *testing.T) {
	ctx := NewContext()
	ctx.Seed(3)

	b := New("test", KindGoToRandom)

	for range 50 {
		b.Execute(ctx)
		assert.GreaterOrEqual(t, ctx.X, -240.0)
		assert.LessOrEqual(t, ctx.X, 240.0)
		assert.GreaterOrEqual(t, ctx.Y, -180.0)
		assert.LessOrEqual(t, ctx.Y, 180.0)
	}
}

func TestPointInDirection(t *testing.T) {
	ctx := NewContext()

	b := operatorBlock(KindPointInDirection, map[string]any{"DIRECTION": -90.0})
	assert.Equal(t, "Pointed in direction -90", b.Execute(ctx))
	assert.InDelta(t, 270.0, ctx.Heading, 1e-9)
}

func TestSizeBlocks(t *testing.T) {
	ctx := NewContext()

	change := operatorBlock(KindChangeSizeBy, map[string]any{"CHANGE": 25.0})
	assert.Equal(t, "Changed size by 25", change.Execute(ctx))
	assert.InDelta(t, 125.0, ctx.Size, 1e-9)

	set := operatorBlock(KindSetSizeTo, map[string]any{"SIZE": 50.0})
	assert.Equal(t, "Set size to 50", set.Execute(ctx))
	assert.InDelta(t, 50.0, ctx.Size, 1e-9)
}

func TestVariables(t *testing.T) {
	ctx := NewContext()

	set := New("set", KindSetVariable)
	set.Fields["VARIABLE"] = "score"
	set.Inputs["VALUE"] = LiteralInput(5.0)
	assert.Equal(t, "Set score to 5", set.Execute(ctx))

	change := New("change", KindChangeVariableBy)
	change.Fields["VARIABLE"] = "score"
	change.Inputs["VALUE"] = LiteralInput(3.0)
	assert.Equal(t, "Changed score by 3", change.Execute(ctx))

	get := New("get", KindGetVariable)
	get.Fields["VARIABLE"] = "score"
	assert.Equal(t, 8.0, get.Execute(ctx))

	// Unset variables read as zero.
	other := New("other", KindGetVariable)
	other.Fields["VARIABLE"] = "missing"
	assert.Equal(t, 0.0, other.Execute(ctx))
}

func TestChangeVariableByConcatenates(t *testing.T) {
	ctx := NewContext()
	ctx.SetVariable("name", "sprite")

	change := New("change", KindChangeVariableBy)
	change.Fields["VARIABLE"] = "name"
	change.Inputs["VALUE"] = LiteralInput("!")
	change.Execute(ctx)

	assert.Equal(t, "sprite!", ctx.Variable("name"))
}

func TestIfBranches(t *testing.T) {
	ctx := NewContext()

	child := New("child", KindSetXTo)
	child.Inputs["X"] = LiteralInput(5.0)

	b := New("if", KindIf)
	b.Inputs["CONDITION"] = LiteralInput(true)
	b.Body = []*Block{child}

	assert.Equal(t, "If condition met: [Set x to 5]", b.Execute(ctx))
	assert.InDelta(t, 5.0, ctx.X, 1e-9)

	ctx = NewContext()
	b.Inputs["CONDITION"] = LiteralInput(false)
	assert.Equal(t, "If condition not met", b.Execute(ctx))
	assert.InDelta(t, 0.0, ctx.X, 1e-9)
}

func TestIfElseRunsBothArms(t *testing.T) {
	ctx := NewContext()

	ifChild := New("a", KindSetXTo)
	ifChild.Inputs["X"] = LiteralInput(1.0)
	elseChild := New("b", KindSetYTo)
	elseChild.Inputs["Y"] = LiteralInput(2.0)

	b := New("ifelse", KindIfElse)
	b.Inputs["CONDITION"] = LiteralInput(true)
	b.Body = []*Block{ifChild}
	b.ElseBody = []*Block{elseChild}

	assert.Equal(t, "If condition met: [Set x to 1] (else: [Set y to 2])", b.Execute(ctx))
	assert.InDelta(t, 1.0, ctx.X, 1e-9)
	assert.InDelta(t, 2.0, ctx.Y, 1e-9)

	b.Inputs["CONDITION"] = LiteralInput(false)
	assert.Equal(t, "Else condition met: [Set y to 2] (if: [Set x to 1])", b.Execute(ctx))
}

func TestRepeatSinglePass(t *testing.T) {
	ctx := NewContext()

	child := New("child", KindChangeXBy)
	child.Inputs["DX"] = LiteralInput(1.0)

	b := New("repeat", KindRepeat)
	b.Inputs["TIMES"] = LiteralInput(10.0)
	b.Body = []*Block{child}

	assert.Equal(t, "Repeated 10 times: [Changed x by 1]", b.Execute(ctx))
	assert.InDelta(t, 1.0, ctx.X, 1e-9)
}

func TestReferenceInputsEvaluateOnce(t *testing.T) {
	ctx := NewContext()

	// A producer with a side effect: its result feeds SetXTo.
	producer := New("producer", KindChangeVariableBy)
	producer.Fields["VARIABLE"] = "count"
	producer.Inputs["VALUE"] = LiteralInput(1.0)

	b := New("set", KindSetXTo)
	b.Inputs["X"] = RefInput(producer)
	b.Execute(ctx)

	assert.Equal(t, 1.0, ctx.Variable("count"))
}

func TestHatBlocks(t *testing.T) {
	ctx := NewContext()

	flag := New("flag", KindWhenFlagClicked)
	assert.Equal(t, "Program started", flag.Execute(ctx))

	key := New("key", KindWhenKeyPressed)
	key.Fields["KEY_OPTION"] = "space"
	assert.Equal(t, "Key space pressed", key.Execute(ctx))
}

func TestSensing(t *testing.T) {
	ctx := NewContext()
	ctx.PressKey("space")
	ctx.MouseDown = true

	pressed := New("kp", KindKeyPressed)
	pressed.Fields["KEY_OPTION"] = "space"
	assert.Equal(t, true, pressed.Execute(ctx))

	pressed.Fields["KEY_OPTION"] = "up"
	assert.Equal(t, false, pressed.Execute(ctx))

	mouse := New("md", KindMouseDown)
	assert.Equal(t, true, mouse.Execute(ctx))
}

func TestSnapshot(t *testing.T) {
	ctx := NewContext()
	ctx.X = 3
	ctx.Heading = 90
	ctx.SetVariable("score", 8.0)
	ctx.PressKey("space")

	snap := ctx.Snapshot()

	assert.Equal(t, 3.0, snap["x"])
	assert.Equal(t, 90.0, snap["direction"])
	assert.Equal(t, 100.0, snap["size"])
	assert.Equal(t, 8.0, snap["var_score"])
	assert.Equal(t, true, snap["key_space"])
	assert.NotContains(t, snap, "mouse_down")
}
