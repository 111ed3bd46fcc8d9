// Package blocks defines the block catalog: the closed set of block kinds, their
// port and field schemas, the runtime Block tree, and the evaluation rules that
// run a block against a mutable sprite Context.
package blocks

// Kind identifies one block kind in the catalog. The set is closed: every kind
// has exactly one evaluation rule, dispatched by exhaustive switch in Execute.
type Kind string

// KindConstant is not a catalog entry. A constant node carries a single literal
// value on one implicit, unnamed output port.
const KindConstant Kind = "Constant"

// Trigger kinds (hat blocks) start scripts.
const (
	KindWhenFlagClicked Kind = "WhenFlagClicked"
	KindWhenKeyPressed  Kind = "WhenKeyPressed"
)

// Motion kinds.
const (
	KindMoveSteps        Kind = "MoveSteps"
	KindTurnRight        Kind = "TurnRight"
	KindTurnLeft         Kind = "TurnLeft"
	KindGoToRandom       Kind = "GoToRandom"
	KindGotoXY           Kind = "GotoXY"
	KindGlideToRandom    Kind = "GlideToRandom"
	KindGlideToXY        Kind = "GlideToXY"
	KindPointInDirection Kind = "PointInDirection"
	KindChangeXBy        Kind = "ChangeXBy"
	KindSetXTo           Kind = "SetXTo"
	KindChangeYBy        Kind = "ChangeYBy"
	KindSetYTo           Kind = "SetYTo"
	KindXPosition        Kind = "XPosition"
	KindYPosition        Kind = "YPosition"
)

// Looks kinds.
const (
	KindSay          Kind = "Say"
	KindSayForSecs   Kind = "SayForSecs"
	KindThink        Kind = "Think"
	KindThinkForSecs Kind = "ThinkForSecs"
	KindChangeSizeBy Kind = "ChangeSizeBy"
	KindSetSizeTo    Kind = "SetSizeTo"
)

// Control kinds.
const (
	KindWait        Kind = "Wait"
	KindRepeat      Kind = "Repeat"
	KindForever     Kind = "Forever"
	KindIf          Kind = "If"
	KindIfElse      Kind = "IfElse"
	KindWaitUntil   Kind = "WaitUntil"
	KindRepeatUntil Kind = "RepeatUntil"
	KindStop        Kind = "Stop"
)

// Sensing kinds.
const (
	KindKeyPressed Kind = "KeyPressed"
	KindMouseDown  Kind = "MouseDown"
)

// Operator kinds.
const (
	KindAdd          Kind = "Add"
	KindSubtract     Kind = "Subtract"
	KindMultiply     Kind = "Multiply"
	KindDivide       Kind = "Divide"
	KindRandom       Kind = "Random"
	KindGreaterThan  Kind = "GreaterThan"
	KindLessThan     Kind = "LessThan"
	KindEquals       Kind = "Equals"
	KindAnd          Kind = "And"
	KindOr           Kind = "Or"
	KindNot          Kind = "Not"
	KindJoin         Kind = "Join"
	KindLetterOf     Kind = "LetterOf"
	KindLengthOf     Kind = "LengthOf"
	KindContains     Kind = "Contains"
	KindMod          Kind = "Mod"
	KindRound        Kind = "Round"
	KindMathFunction Kind = "MathFunction"
)

// Variable kinds.
const (
	KindSetVariable      Kind = "SetVariable"
	KindChangeVariableBy Kind = "ChangeVariableBy"
	KindGetVariable      Kind = "GetVariable"
)

// IsTrigger reports whether the kind is a hat block that roots a script.
func (k Kind) IsTrigger() bool {
	return k == KindWhenFlagClicked || k == KindWhenKeyPressed
}

// IsConstant reports whether the kind is the implicit constant pseudo-kind.
func (k Kind) IsConstant() bool {
	return k == KindConstant
}
