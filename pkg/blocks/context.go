package blocks

import (
	"math/rand/v2"
)

// Context is the mutable simulated-sprite state threaded through one program
// run. It is owned by exactly one run and discarded afterwards.
type Context struct {
	X       float64
	Y       float64
	Heading float64 // degrees, kept in [0, 360)
	Size    float64

	Variables map[string]any
	KeysDown  map[string]bool
	MouseDown bool

	// Rand drives GoToRandom, GlideToRandom and Random. Seed it for
	// reproducible traces.
	Rand *rand.Rand
}

// Default sprite state for a fresh run.
const (
	DefaultSize = 100
)

// NewContext returns a context with the documented default state and an
// arbitrarily seeded random source.
func NewContext() *Context {
	return &Context{
		Size:      DefaultSize,
		Variables: make(map[string]any),
		KeysDown:  make(map[string]bool),
		Rand:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// Seed replaces the random source with a deterministic one.
func (c *Context) Seed(seed uint64) {
	c.Rand = rand.New(rand.NewPCG(seed, 0))
}

// Variable returns the named variable, or 0 when it has never been set.
func (c *Context) Variable(name string) any {
	if v, ok := c.Variables[name]; ok {
		return v
	}

	return float64(0)
}

// SetVariable stores a variable value.
func (c *Context) SetVariable(name string, value any) {
	c.Variables[name] = value
}

// KeyDown reports whether the simulated key is held.
func (c *Context) KeyDown(key string) bool {
	return c.KeysDown[key]
}

// PressKey marks a simulated key as held for the run.
func (c *Context) PressKey(key string) {
	c.KeysDown[key] = true
}

// Snapshot flattens the context into the mapping returned to callers: sprite
// state under fixed keys, variables under "var_" and held keys under "key_".
func (c *Context) Snapshot() map[string]any {
	snap := map[string]any{
		"x":         c.X,
		"y":         c.Y,
		"direction": c.Heading,
		"size":      c.Size,
	}

	for name, value := range c.Variables {
		snap["var_"+name] = value
	}

	for key, down := range c.KeysDown {
		if down {
			snap["key_"+key] = true
		}
	}

	if c.MouseDown {
		snap["mouse_down"] = true
	}

	return snap
}
