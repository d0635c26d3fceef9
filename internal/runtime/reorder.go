package runtime

import (
	"github.com/latticehq/lattice/pkg/domain"
)

// Move returns a copy of list with the item at from re-inserted at to.
// Out-of-range indices leave the list untouched and report false. The
// input slice is never mutated.
func Move[T any](list []T, from, to int) ([]T, bool) {
	if from < 0 || from >= len(list) || to < 0 || to >= len(list) {
		return list, false
	}
	out := append([]T(nil), list...)
	if from == to {
		return out, true
	}
	item := out[from]
	out = append(out[:from], out[from+1:]...)
	rest := append([]T(nil), out[:to]...)
	rest = append(rest, item)
	out = append(rest, out[to:]...)
	return out, true
}

// Reorder moves a child of the node identified by parentID from one
// index to another in its primary child list (steps of a page, frames
// of a step, stacks of a frame, blocks of a stack, elements of a
// block, steps of an embedded flow). The read-compute-write happens in
// one synchronous call so stale indices can never interleave, and the
// result is a new tree sharing all untouched subtrees.
func Reorder(page *domain.Page, parentID string, from, to int) (*domain.Page, bool) {
	if page == nil || parentID == "" {
		return page, false
	}
	if page.ID == parentID {
		steps, ok := Move(page.Steps, from, to)
		if !ok {
			return page, false
		}
		next := *page
		next.Steps = steps
		return &next, true
	}
	for si := range page.Steps {
		if updated, ok := reorderInStep(page.Steps[si], parentID, from, to); ok {
			next := *page
			next.Steps = append([]domain.Step(nil), page.Steps...)
			next.Steps[si] = updated
			return &next, true
		}
	}
	return page, false
}

func reorderInStep(step domain.Step, parentID string, from, to int) (domain.Step, bool) {
	if step.ID == parentID {
		frames, ok := Move(step.Frames, from, to)
		if !ok {
			return step, false
		}
		step.Frames = frames
		return step, true
	}
	for fi := range step.Frames {
		if updated, ok := reorderInFrame(step.Frames[fi], parentID, from, to); ok {
			step.Frames = append([]domain.Frame(nil), step.Frames...)
			step.Frames[fi] = updated
			return step, true
		}
	}
	return step, false
}

func reorderInFrame(frame domain.Frame, parentID string, from, to int) (domain.Frame, bool) {
	if frame.ID == parentID {
		stacks, ok := Move(frame.Stacks, from, to)
		if !ok {
			return frame, false
		}
		frame.Stacks = stacks
		return frame, true
	}
	for ki := range frame.Stacks {
		stack := frame.Stacks[ki]
		if stack.ID == parentID {
			blocks, ok := Move(stack.Blocks, from, to)
			if !ok {
				return frame, false
			}
			stack.Blocks = blocks
			frame.Stacks = append([]domain.Stack(nil), frame.Stacks...)
			frame.Stacks[ki] = stack
			return frame, true
		}
		for bi := range stack.Blocks {
			if updated, ok := reorderInBlock(stack.Blocks[bi], parentID, from, to); ok {
				stack.Blocks = append([]domain.Block(nil), stack.Blocks...)
				stack.Blocks[bi] = updated
				frame.Stacks = append([]domain.Stack(nil), frame.Stacks...)
				frame.Stacks[ki] = stack
				return frame, true
			}
		}
	}
	return frame, false
}

func reorderInBlock(block domain.Block, parentID string, from, to int) (domain.Block, bool) {
	if block.ID == parentID {
		if block.Flow != nil {
			steps, ok := Move(block.Flow.Steps, from, to)
			if !ok {
				return block, false
			}
			block.Flow = &domain.Flow{Steps: steps}
			return block, true
		}
		elements, ok := Move(block.Elements, from, to)
		if !ok {
			return block, false
		}
		block.Elements = elements
		return block, true
	}
	if block.Flow != nil {
		for i := range block.Flow.Steps {
			if block.Flow.Steps[i].ID == parentID {
				elements, ok := Move(block.Flow.Steps[i].Elements, from, to)
				if !ok {
					return block, false
				}
				steps := append([]domain.FlowStep(nil), block.Flow.Steps...)
				steps[i].Elements = elements
				block.Flow = &domain.Flow{Steps: steps}
				return block, true
			}
		}
	}
	return block, false
}
