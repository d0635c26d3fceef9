package domain

// Page is the root document of a funnel. It owns an ordered sequence of
// steps; everything below it is owned exclusively by its parent. The
// only cross-references in the tree are the weak step-id references
// inside embedded flow navigation, which must be validated rather than
// dereferenced blindly.
type Page struct {
	ID       string         `json:"id" yaml:"id"`
	Slug     string         `json:"slug,omitempty" yaml:"slug,omitempty"`
	Steps    []Step         `json:"steps" yaml:"steps"`
	Settings map[string]any `json:"settings,omitempty" yaml:"settings,omitempty"`
}

// Step is one screen of the outer funnel.
// A page always keeps at least one step; deletion helpers enforce it.
type Step struct {
	ID         string         `json:"id" yaml:"id"`
	Name       string         `json:"name,omitempty" yaml:"name,omitempty"`
	Type       string         `json:"step_type,omitempty" yaml:"step_type,omitempty"`
	Intent     StepIntent     `json:"step_intent,omitempty" yaml:"step_intent,omitempty"`
	SubmitMode string         `json:"submit_mode,omitempty" yaml:"submit_mode,omitempty"`
	Frames     []Frame        `json:"frames" yaml:"frames"`
	Background *Background    `json:"background,omitempty" yaml:"background,omitempty"`
	Settings   map[string]any `json:"settings,omitempty" yaml:"settings,omitempty"`
}

// Background is a per-step override of the page background.
type Background struct {
	Color    string  `json:"color,omitempty" yaml:"color,omitempty"`
	ImageURL string  `json:"image_url,omitempty" yaml:"image_url,omitempty"`
	Overlay  string  `json:"overlay,omitempty" yaml:"overlay,omitempty"`
	Blur     float64 `json:"blur,omitempty" yaml:"blur,omitempty"`
}

// Frame is a layout band within a step. Purely presentational; no
// cross-frame invariants beyond ordering.
type Frame struct {
	ID       string         `json:"id" yaml:"id"`
	Label    string         `json:"label,omitempty" yaml:"label,omitempty"`
	Layout   FrameLayout    `json:"layout,omitempty" yaml:"layout,omitempty"`
	Stacks   []Stack        `json:"stacks" yaml:"stacks"`
	Settings map[string]any `json:"settings,omitempty" yaml:"settings,omitempty"`
}

// Stack is a flex container of blocks.
type Stack struct {
	ID        string         `json:"id" yaml:"id"`
	Direction StackDirection `json:"direction,omitempty" yaml:"direction,omitempty"`
	Blocks    []Block        `json:"blocks" yaml:"blocks"`
}

// Block is a semantic content unit. When Type is BlockApplicationFlow
// the block embeds a secondary step graph in Flow; the document parser
// lifts legacy props["steps"] payloads into that field.
type Block struct {
	ID       string         `json:"id" yaml:"id"`
	Type     BlockType      `json:"type" yaml:"type"`
	Elements []Element      `json:"elements,omitempty" yaml:"elements,omitempty"`
	Props    map[string]any `json:"props,omitempty" yaml:"props,omitempty"`
	Styles   map[string]any `json:"styles,omitempty" yaml:"styles,omitempty"`
	Flow     *Flow          `json:"flow,omitempty" yaml:"flow,omitempty"`
}

// Element is the leaf node: a typed visual primitive.
type Element struct {
	ID         string                  `json:"id" yaml:"id"`
	Type       ElementType             `json:"type" yaml:"type"`
	Content    string                  `json:"content,omitempty" yaml:"content,omitempty"`
	Props      map[string]any          `json:"props,omitempty" yaml:"props,omitempty"`
	Styles     map[string]any          `json:"styles,omitempty" yaml:"styles,omitempty"`
	Visibility *Visibility             `json:"visibility,omitempty" yaml:"visibility,omitempty"`
	Animation  *Animation              `json:"animation,omitempty" yaml:"animation,omitempty"`
	Responsive map[DeviceMode]Override `json:"responsive,omitempty" yaml:"responsive,omitempty"`
}

// Override holds per-device-mode style/prop overrides. A key present
// here wins over the base value for that mode only; absent keys fall
// back to the desktop base.
type Override struct {
	Styles map[string]any `json:"styles,omitempty" yaml:"styles,omitempty"`
	Props  map[string]any `json:"props,omitempty" yaml:"props,omitempty"`
}

// Visibility is a conditional show/hide rule set evaluated against a
// runtime answer context.
type Visibility struct {
	// Match is "all" or "any". Empty defaults to "all".
	Match string           `json:"match,omitempty" yaml:"match,omitempty"`
	Rules []VisibilityRule `json:"rules,omitempty" yaml:"rules,omitempty"`
}

// VisibilityRule compares one context field against a value.
// Supported operators: "equals", "not-equals", "present", "absent".
type VisibilityRule struct {
	Field    string `json:"field" yaml:"field"`
	Operator string `json:"operator" yaml:"operator"`
	Value    any    `json:"value,omitempty" yaml:"value,omitempty"`
}

// Animation settings are passed through to the hosting renderer.
type Animation struct {
	Type     string `json:"type,omitempty" yaml:"type,omitempty"`
	Duration int    `json:"duration,omitempty" yaml:"duration,omitempty"`
	Delay    int    `json:"delay,omitempty" yaml:"delay,omitempty"`
	Easing   string `json:"easing,omitempty" yaml:"easing,omitempty"`
}

// StepByID returns the document-level step with the given id.
func (p *Page) StepByID(id string) (*Step, bool) {
	for i := range p.Steps {
		if p.Steps[i].ID == id {
			return &p.Steps[i], true
		}
	}
	return nil, false
}

// FlowBlockByID returns the application-flow block with the given id,
// searching every step of the page.
func (p *Page) FlowBlockByID(blockID string) (*Block, bool) {
	for si := range p.Steps {
		for fi := range p.Steps[si].Frames {
			for ki := range p.Steps[si].Frames[fi].Stacks {
				stack := &p.Steps[si].Frames[fi].Stacks[ki]
				for bi := range stack.Blocks {
					b := &stack.Blocks[bi]
					if b.ID == blockID && b.Type == BlockApplicationFlow {
						return b, true
					}
				}
			}
		}
	}
	return nil, false
}
