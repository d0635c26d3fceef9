package domain

// Deep-copy helpers backing the persistent-update discipline: every
// mutation produces a new tree, so change detection by reference and
// undo/history remain possible upstream.

// ClonePage returns an independent deep copy of the document.
func ClonePage(p *Page) *Page {
	if p == nil {
		return nil
	}
	out := *p
	out.Settings = CloneMap(p.Settings)
	out.Steps = make([]Step, len(p.Steps))
	for i := range p.Steps {
		out.Steps[i] = CloneStep(p.Steps[i])
	}
	return &out
}

// CloneStep deep-copies a document-level step.
func CloneStep(s Step) Step {
	out := s
	out.Settings = CloneMap(s.Settings)
	if s.Background != nil {
		bg := *s.Background
		out.Background = &bg
	}
	out.Frames = make([]Frame, len(s.Frames))
	for i := range s.Frames {
		out.Frames[i] = CloneFrame(s.Frames[i])
	}
	return out
}

// CloneFrame deep-copies a frame.
func CloneFrame(f Frame) Frame {
	out := f
	out.Settings = CloneMap(f.Settings)
	out.Stacks = make([]Stack, len(f.Stacks))
	for i := range f.Stacks {
		out.Stacks[i] = CloneStack(f.Stacks[i])
	}
	return out
}

// CloneStack deep-copies a stack.
func CloneStack(s Stack) Stack {
	out := s
	out.Blocks = make([]Block, len(s.Blocks))
	for i := range s.Blocks {
		out.Blocks[i] = CloneBlock(s.Blocks[i])
	}
	return out
}

// CloneBlock deep-copies a block, including any embedded flow.
func CloneBlock(b Block) Block {
	out := b
	out.Props = CloneMap(b.Props)
	out.Styles = CloneMap(b.Styles)
	out.Elements = make([]Element, len(b.Elements))
	for i := range b.Elements {
		out.Elements[i] = CloneElement(b.Elements[i])
	}
	if b.Flow != nil {
		out.Flow = CloneFlow(b.Flow)
	}
	return out
}

// CloneElement deep-copies an element.
func CloneElement(e Element) Element {
	out := e
	out.Props = CloneMap(e.Props)
	out.Styles = CloneMap(e.Styles)
	if e.Visibility != nil {
		vis := Visibility{Match: e.Visibility.Match}
		vis.Rules = append([]VisibilityRule(nil), e.Visibility.Rules...)
		out.Visibility = &vis
	}
	if e.Animation != nil {
		anim := *e.Animation
		out.Animation = &anim
	}
	if e.Responsive != nil {
		out.Responsive = make(map[DeviceMode]Override, len(e.Responsive))
		for mode, ov := range e.Responsive {
			out.Responsive[mode] = Override{
				Styles: CloneMap(ov.Styles),
				Props:  CloneMap(ov.Props),
			}
		}
	}
	return out
}

// CloneFlow deep-copies an embedded flow.
func CloneFlow(f *Flow) *Flow {
	if f == nil {
		return nil
	}
	out := Flow{Steps: make([]FlowStep, len(f.Steps))}
	for i := range f.Steps {
		out.Steps[i] = CloneFlowStep(f.Steps[i])
	}
	return &out
}

// CloneFlowStep deep-copies a flow step, both navigation shapes included.
func CloneFlowStep(s FlowStep) FlowStep {
	out := s
	out.Settings = CloneMap(s.Settings)
	out.Elements = make([]Element, len(s.Elements))
	for i := range s.Elements {
		out.Elements[i] = CloneElement(s.Elements[i])
	}
	if s.Navigation != nil {
		nav := *s.Navigation
		out.Navigation = &nav
	}
	if s.Action != nil {
		act := *s.Action
		out.Action = &act
	}
	return out
}

// CloneMap copies a free-form settings/props/styles map, descending
// into nested maps and slices so the copy shares nothing mutable with
// the original.
func CloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch vt := v.(type) {
	case map[string]any:
		return CloneMap(vt)
	case []any:
		out := make([]any, len(vt))
		for i, e := range vt {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
