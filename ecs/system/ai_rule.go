package system

import (
	"errors"
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/frostpurge/ecs/component"
)

var errRuleNoResult = errors.New("ai rule: script does not define detect")

// DetectRule is a compiled tengo script deciding whether an enemy notices the
// player. The script sees dist, detect_radius, lose_radius, player_hp and
// state, and must assign a truthy global named detect.
type DetectRule struct {
	compiled *tengo.Compiled
}

type ruleInput struct {
	Dist         float64
	DetectRadius float64
	LoseRadius   float64
	PlayerHP     int
	State        component.StateID
}

// CompileDetectRule compiles src and runs it once with zero inputs so a
// script that never assigns detect is rejected up front.
func CompileDetectRule(src string) (*DetectRule, error) {
	script := tengo.NewScript([]byte(src))
	script.SetImports(stdlib.GetModuleMap("math"))
	_ = script.Add("dist", 0.0)
	_ = script.Add("detect_radius", 0.0)
	_ = script.Add("lose_radius", 0.0)
	_ = script.Add("player_hp", 0)
	_ = script.Add("state", "")

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("ai rule: compile: %w", err)
	}
	if err := compiled.Run(); err != nil {
		return nil, fmt.Errorf("ai rule: run: %w", err)
	}
	if !compiled.IsDefined("detect") {
		return nil, errRuleNoResult
	}
	return &DetectRule{compiled: compiled}, nil
}

func (r *DetectRule) eval(in ruleInput) (bool, error) {
	c := r.compiled
	for name, v := range map[string]any{
		"dist":          in.Dist,
		"detect_radius": in.DetectRadius,
		"lose_radius":   in.LoseRadius,
		"player_hp":     in.PlayerHP,
		"state":         string(in.State),
	} {
		if err := c.Set(name, v); err != nil {
			return false, err
		}
	}
	if err := c.Run(); err != nil {
		return false, fmt.Errorf("ai rule: run: %w", err)
	}
	return c.Get("detect").Bool(), nil
}
