package engine

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spritelang/spritec/pkg/blocks"
	"github.com/spritelang/spritec/pkg/compiler"
	"github.com/spritelang/spritec/pkg/graph"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func compileDoc(t *testing.T, doc string) *compiler.Program {
	t.Helper()

	g, err := graph.Decode([]byte(doc), blocks.DefaultCatalog())
	require.NoError(t, err)

	program, err := compiler.Compile(g, blocks.DefaultCatalog())
	require.NoError(t, err)

	return program
}

func TestRunScript(t *testing.T) {
	program := compileDoc(t, `{
		"flag": {
			"nodeName": "WhenFlagClicked",
			"edges": [{"portID": "THEN", "otherNodeID": "set"}]
		},
		"set": {
			"nodeName": "SetVariable",
			"edges": [
				{"portID": "EXEC", "otherNodeID": "flag"},
				{"portID": "VARIABLE", "otherNodeID": "var_name"},
				{"portID": "VALUE", "otherNodeID": "five"},
				{"portID": "THEN", "otherNodeID": "change"}
			]
		},
		"var_name": {
			"nodeName": "Constant",
			"value": "x",
			"edges": [{"portID": "RESULT", "otherNodeID": "set"}]
		},
		"five": {
			"nodeName": "Constant",
			"value": 5,
			"edges": [{"portID": "RESULT", "otherNodeID": "set"}]
		},
		"change": {
			"nodeName": "ChangeVariableBy",
			"edges": [
				{"portID": "EXEC", "otherNodeID": "set"},
				{"portID": "VARIABLE", "otherNodeID": "var_name2"},
				{"portID": "VALUE", "otherNodeID": "three"}
			]
		},
		"var_name2": {
			"nodeName": "Constant",
			"value": "x",
			"edges": [{"portID": "RESULT", "otherNodeID": "change"}]
		},
		"three": {
			"nodeName": "Constant",
			"value": 3,
			"edges": [{"portID": "RESULT", "otherNodeID": "change"}]
		}
	}`)

	trace := New(testLogger()).Run(context.Background(), program, nil)

	require.Len(t, trace.Scripts, 1)
	assert.Equal(t, []string{"Program started", "Set x to 5", "Changed x by 3"}, trace.Scripts[0])
	assert.Equal(t, 8.0, trace.Context["var_x"])

	_, err := uuid.Parse(trace.RunID)
	assert.NoError(t, err)
}

func TestRunMultipleScriptsShareContext(t *testing.T) {
	program := compileDoc(t, `{
		"nodes": {
			"flag": {"name": "WhenFlagClicked"},
			"move": {"name": "ChangeXBy"},
			"ten": {"name": "Constant", "value": 10},
			"key": {"name": "WhenKeyPressed"},
			"key_opt": {"name": "Constant", "value": "space"},
			"move2": {"name": "ChangeXBy"},
			"five": {"name": "Constant", "value": 5}
		},
		"edges": [
			{"outNodeID": "flag", "outPortID": "THEN", "inNodeID": "move", "inPortID": "EXEC"},
			{"outNodeID": "ten", "outPortID": "", "inNodeID": "move", "inPortID": "DX"},
			{"outNodeID": "key_opt", "outPortID": "", "inNodeID": "key", "inPortID": "KEY_OPTION"},
			{"outNodeID": "key", "outPortID": "THEN", "inNodeID": "move2", "inPortID": "EXEC"},
			{"outNodeID": "five", "outPortID": "", "inNodeID": "move2", "inPortID": "DX"}
		]
	}`)

	trace := New(testLogger()).Run(context.Background(), program, nil)

	require.Len(t, trace.Scripts, 2)
	assert.Equal(t, []string{"Program started", "Changed x by 10"}, trace.Scripts[0])
	assert.Equal(t, []string{"Key space pressed", "Changed x by 5"}, trace.Scripts[1])
	assert.Equal(t, 15.0, trace.Context["x"])
}

func TestRunSeededIsReproducible(t *testing.T) {
	doc := `{
		"nodes": {
			"flag": {"name": "WhenFlagClicked"},
			"set": {"name": "SetXTo"},
			"rand": {"name": "Random"},
			"one": {"name": "Constant", "value": 1},
			"hundred": {"name": "Constant", "value": 100}
		},
		"edges": [
			{"outNodeID": "flag", "outPortID": "THEN", "inNodeID": "set", "inPortID": "EXEC"},
			{"outNodeID": "rand", "outPortID": "RESULT", "inNodeID": "set", "inPortID": "X"},
			{"outNodeID": "one", "outPortID": "", "inNodeID": "rand", "inPortID": "FROM_NUM"},
			{"outNodeID": "hundred", "outPortID": "", "inNodeID": "rand", "inPortID": "TO_NUM"}
		]
	}`

	runner := New(testLogger())

	run := func() *Trace {
		sprite := blocks.NewContext()
		sprite.Seed(42)

		return runner.Run(context.Background(), compileDoc(t, doc), sprite)
	}

	first := run()
	second := run()

	assert.Equal(t, first.Scripts, second.Scripts)
	assert.Equal(t, first.Context["x"], second.Context["x"])
	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestRunEmptyProgram(t *testing.T) {
	program := compileDoc(t, `{"nodes": {}, "edges": []}`)

	trace := New(testLogger()).Run(context.Background(), program, nil)

	assert.Empty(t, trace.Scripts)
	assert.Equal(t, 0.0, trace.Context["x"])
	assert.Equal(t, 100.0, trace.Context["size"])
}
