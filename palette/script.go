package palette

import (
	"errors"
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"go.uber.org/zap"

	"github.com/milk9111/gsandbox/common"
)

var errNoColor = errors.New("script did not set 'color' to [r, g, b] or [r, g, b, a]")

// ScriptPicker asks a tengo script for each color. The script sees the
// globals `count` (1-based firing number) and `seed`, and must assign
// `color`. Script failures are logged and answered by the fallback picker.
type ScriptPicker struct {
	name     string
	compiled *tengo.Compiled
	fallback Picker
	log      *zap.SugaredLogger
}

func NewScriptPicker(name string, src []byte, seed int64, fallback Picker, log *zap.SugaredLogger) (*ScriptPicker, error) {
	if fallback == nil {
		fallback = NewRandomPicker(seed)
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	if err := script.Add("count", 0); err != nil {
		return nil, fmt.Errorf("palette: %s: %w", name, err)
	}
	if err := script.Add("seed", seed); err != nil {
		return nil, fmt.Errorf("palette: %s: %w", name, err)
	}

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("palette: compile %s: %w", name, err)
	}

	return &ScriptPicker{
		name:     name,
		compiled: compiled,
		fallback: fallback,
		log:      log,
	}, nil
}

func (p *ScriptPicker) Pick(count int) common.LinearColor {
	c, err := p.run(count)
	if err != nil {
		p.log.Warnw("palette script failed, using fallback", "script", p.name, "count", count, "error", err)
		return p.fallback.Pick(count)
	}
	return c
}

func (p *ScriptPicker) run(count int) (common.LinearColor, error) {
	if err := p.compiled.Set("count", count); err != nil {
		return common.LinearColor{}, err
	}
	if err := p.compiled.Run(); err != nil {
		return common.LinearColor{}, err
	}

	out := p.compiled.Get("color")
	if out == nil || out.IsUndefined() {
		return common.LinearColor{}, errNoColor
	}
	values := out.Array()
	if len(values) != 3 && len(values) != 4 {
		return common.LinearColor{}, errNoColor
	}

	channels := [4]float64{0, 0, 0, 1}
	for i, v := range values {
		f, ok := toFloat(v)
		if !ok {
			return common.LinearColor{}, fmt.Errorf("color[%d] is %T, want a number", i, v)
		}
		channels[i] = f
	}
	return common.LinearColor{R: channels[0], G: channels[1], B: channels[2], A: channels[3]}, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}
