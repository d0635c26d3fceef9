package domain

// Selection is a stable, serializable address for exactly one node in
// the tree. Path is the ordered list of ancestor kind/id markers from
// the page root down to the target, e.g.
//
//	["step", stepID, "frame", frameID, "stack", stackID, "block", blockID]
//
// Steps inside an embedded flow are not reachable via that path alone,
// so they additionally carry FlowBlockID (which block's flow) and
// StepIndex (which step within it).
type Selection struct {
	Kind NodeKind `json:"type"`
	ID   string   `json:"id"`
	Path []string `json:"path"`

	FlowBlockID string `json:"application_engine_id,omitempty"`
	StepIndex   int    `json:"step_index"`
}

// EmptySelection is the "no node selected" value. It is a concrete
// zero address with a non-nil empty path, never nil, so consumers can
// always destructure safely.
func EmptySelection() Selection {
	return Selection{Path: []string{}, StepIndex: -1}
}

// IsEmpty reports whether nothing is selected.
func (s Selection) IsEmpty() bool {
	return s.Kind == "" && s.ID == ""
}

// SelectionFor builds the address of the node with the given id, or
// the empty selection if the id is not present in the document.
func SelectionFor(p *Page, nodeID string) Selection {
	if p == nil || nodeID == "" {
		return EmptySelection()
	}
	if p.ID == nodeID {
		return Selection{Kind: KindPage, ID: nodeID, Path: []string{}, StepIndex: -1}
	}
	for si := range p.Steps {
		step := &p.Steps[si]
		path := []string{string(KindStep), step.ID}
		if step.ID == nodeID {
			return Selection{Kind: KindStep, ID: nodeID, Path: path, StepIndex: -1}
		}
		if sel, ok := selectInFrames(step.Frames, path, nodeID); ok {
			return sel
		}
	}
	return EmptySelection()
}

func selectInFrames(frames []Frame, prefix []string, nodeID string) (Selection, bool) {
	for fi := range frames {
		frame := &frames[fi]
		path := appendPath(prefix, KindFrame, frame.ID)
		if frame.ID == nodeID {
			return Selection{Kind: KindFrame, ID: nodeID, Path: path, StepIndex: -1}, true
		}
		for ki := range frame.Stacks {
			stack := &frame.Stacks[ki]
			stackPath := appendPath(path, KindStack, stack.ID)
			if stack.ID == nodeID {
				return Selection{Kind: KindStack, ID: nodeID, Path: stackPath, StepIndex: -1}, true
			}
			for bi := range stack.Blocks {
				if sel, ok := selectInBlock(&stack.Blocks[bi], stackPath, nodeID); ok {
					return sel, true
				}
			}
		}
	}
	return Selection{}, false
}

func selectInBlock(block *Block, prefix []string, nodeID string) (Selection, bool) {
	path := appendPath(prefix, KindBlock, block.ID)
	if block.ID == nodeID {
		return Selection{Kind: KindBlock, ID: nodeID, Path: path, StepIndex: -1}, true
	}
	for ei := range block.Elements {
		el := &block.Elements[ei]
		if el.ID == nodeID {
			return Selection{
				Kind: KindElement, ID: nodeID,
				Path:      appendPath(path, KindElement, el.ID),
				StepIndex: -1,
			}, true
		}
	}
	if block.Flow != nil {
		for i := range block.Flow.Steps {
			fs := &block.Flow.Steps[i]
			if fs.ID == nodeID {
				return Selection{
					Kind: KindFlowStep, ID: nodeID,
					Path:        appendPath(path, KindFlowStep, fs.ID),
					FlowBlockID: block.ID,
					StepIndex:   i,
				}, true
			}
			for ei := range fs.Elements {
				el := &fs.Elements[ei]
				if el.ID == nodeID {
					return Selection{
						Kind: KindElement, ID: nodeID,
						Path:        appendPath(appendPath(path, KindFlowStep, fs.ID), KindElement, el.ID),
						FlowBlockID: block.ID,
						StepIndex:   i,
					}, true
				}
			}
		}
	}
	return Selection{}, false
}

func appendPath(prefix []string, kind NodeKind, id string) []string {
	out := make([]string, 0, len(prefix)+2)
	out = append(out, prefix...)
	return append(out, string(kind), id)
}
