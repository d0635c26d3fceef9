package projection

import (
	"github.com/latticehq/lattice/pkg/domain"
)

// VisualProps is what the hosting render layer consumes for one node
// per paint. It is derived, never stored.
type VisualProps struct {
	Content   string            `json:"content,omitempty"`
	Styles    map[string]any    `json:"styles,omitempty"`
	Props     map[string]any    `json:"props,omitempty"`
	Visible   bool              `json:"visible"`
	Animation *domain.Animation `json:"animation,omitempty"`
}

// Project maps an element and a device mode to its visual output
// properties. Pure: the element is never mutated and the same inputs
// always produce the same output, so it is safe to call on every
// paint, far more often than the document changes.
func Project(el domain.Element, mode domain.DeviceMode) VisualProps {
	return ProjectWith(el, mode, nil)
}

// ProjectWith additionally evaluates the element's visibility rules
// against a runtime answer context. A nil context behaves as an empty
// one.
func ProjectWith(el domain.Element, mode domain.DeviceMode, answers map[string]any) VisualProps {
	out := VisualProps{
		Content: el.Content,
		Styles:  overlay(el.Styles, overrideFor(el, mode).Styles),
		Props:   overlay(el.Props, overrideFor(el, mode).Props),
		Visible: visible(el.Visibility, answers),
	}
	if el.Animation != nil {
		anim := *el.Animation
		out.Animation = &anim
	}
	return out
}

func overrideFor(el domain.Element, mode domain.DeviceMode) domain.Override {
	if mode.IsBase() {
		return domain.Override{}
	}
	// Each mode's override is independent: tablet never inherits from
	// mobile or vice versa, only from the desktop base.
	return el.Responsive[mode]
}

// overlay copies base and applies override keys on top. Both inputs
// are read-only; the result is always a fresh map.
func overlay(base, override map[string]any) map[string]any {
	if len(base) == 0 && len(override) == 0 {
		return nil
	}
	out := make(map[string]any, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		out[k] = v
	}
	return out
}

// visible evaluates a show/hide rule set. No rules means visible.
func visible(vis *domain.Visibility, answers map[string]any) bool {
	if vis == nil || len(vis.Rules) == 0 {
		return true
	}
	matchAny := vis.Match == "any"
	for _, rule := range vis.Rules {
		ok := ruleHolds(rule, answers)
		if matchAny && ok {
			return true
		}
		if !matchAny && !ok {
			return false
		}
	}
	return !matchAny
}

func ruleHolds(rule domain.VisibilityRule, answers map[string]any) bool {
	val, present := answers[rule.Field]
	switch rule.Operator {
	case "present":
		return present
	case "absent":
		return !present
	case "not-equals":
		return !present || val != rule.Value
	default: // "equals" and unset
		return present && val == rule.Value
	}
}
