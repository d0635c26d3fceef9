package runtime

import (
	"github.com/latticehq/lattice/pkg/domain"
)

// AddStep appends a new document-level step and returns the new tree
// with the created step's id.
func AddStep(page *domain.Page, name string) (*domain.Page, string) {
	step := domain.Step{
		ID:     domain.NewID(),
		Name:   name,
		Frames: []domain.Frame{},
	}
	next := *page
	next.Steps = append(append([]domain.Step(nil), page.Steps...), step)
	return &next, step.ID
}

// DuplicateStep inserts a deep copy of the given step directly after
// it, with fresh ids throughout the copied subtree so sibling-id
// uniqueness holds. Missing step id is a soft no-op.
func DuplicateStep(page *domain.Page, stepID string) (*domain.Page, string, bool) {
	for si := range page.Steps {
		if page.Steps[si].ID != stepID {
			continue
		}
		dup := remintStep(domain.CloneStep(page.Steps[si]))
		next := *page
		next.Steps = make([]domain.Step, 0, len(page.Steps)+1)
		next.Steps = append(next.Steps, page.Steps[:si+1]...)
		next.Steps = append(next.Steps, dup)
		next.Steps = append(next.Steps, page.Steps[si+1:]...)
		return &next, dup.ID, true
	}
	return page, "", false
}

// DeleteStep removes a document-level step. The last remaining step is
// never deleted (soft no-op), preserving the page's at-least-one-step
// invariant. Dangling flow references created by the deletion are NOT
// repaired here: the explicit policy is to flag them via validation,
// never to silently rewrite another step's navigation.
func DeleteStep(page *domain.Page, stepID string) (*domain.Page, bool) {
	if len(page.Steps) <= 1 {
		return page, false
	}
	for si := range page.Steps {
		if page.Steps[si].ID != stepID {
			continue
		}
		next := *page
		next.Steps = make([]domain.Step, 0, len(page.Steps)-1)
		next.Steps = append(next.Steps, page.Steps[:si]...)
		next.Steps = append(next.Steps, page.Steps[si+1:]...)
		return &next, true
	}
	return page, false
}

// AddFlowStep appends a step to the embedded flow of the given block.
func AddFlowStep(page *domain.Page, blockID string, stepType domain.FlowStepType, name string) (*domain.Page, string, bool) {
	step := domain.FlowStep{
		ID:   domain.NewID(),
		Name: name,
		Type: stepType,
	}
	next, ok := withFlow(page, blockID, func(flow *domain.Flow) (*domain.Flow, bool) {
		return &domain.Flow{Steps: append(append([]domain.FlowStep(nil), flow.Steps...), step)}, true
	})
	if !ok {
		return page, "", false
	}
	return next, step.ID, true
}

// DeleteFlowStep removes a step from an embedded flow, guarded by the
// same last-step rule as document-level steps. Like DeleteStep it
// leaves other steps' targetStepId untouched; validation reports any
// reference it orphaned.
func DeleteFlowStep(page *domain.Page, blockID, stepID string) (*domain.Page, bool) {
	return withFlow(page, blockID, func(flow *domain.Flow) (*domain.Flow, bool) {
		if len(flow.Steps) <= 1 {
			return flow, false
		}
		idx := flow.StepIndex(stepID)
		if idx < 0 {
			return flow, false
		}
		steps := make([]domain.FlowStep, 0, len(flow.Steps)-1)
		steps = append(steps, flow.Steps[:idx]...)
		steps = append(steps, flow.Steps[idx+1:]...)
		return &domain.Flow{Steps: steps}, true
	})
}

// withFlow rewrites the flow of one block persistently, copying only
// the path from the page root to that block.
func withFlow(page *domain.Page, blockID string, fn func(*domain.Flow) (*domain.Flow, bool)) (*domain.Page, bool) {
	if page == nil {
		return page, false
	}
	for si := range page.Steps {
		step := page.Steps[si]
		for fi := range step.Frames {
			frame := step.Frames[fi]
			for ki := range frame.Stacks {
				stack := frame.Stacks[ki]
				for bi := range stack.Blocks {
					block := stack.Blocks[bi]
					if block.ID != blockID || block.Flow == nil {
						continue
					}
					updated, ok := fn(block.Flow)
					if !ok {
						return page, false
					}
					block.Flow = updated
					stack.Blocks = append([]domain.Block(nil), stack.Blocks...)
					stack.Blocks[bi] = block
					frame.Stacks = append([]domain.Stack(nil), frame.Stacks...)
					frame.Stacks[ki] = stack
					step.Frames = append([]domain.Frame(nil), step.Frames...)
					step.Frames[fi] = frame
					next := *page
					next.Steps = append([]domain.Step(nil), page.Steps...)
					next.Steps[si] = step
					return &next, true
				}
			}
		}
	}
	return page, false
}

// remintStep assigns fresh ids to a cloned step subtree.
func remintStep(step domain.Step) domain.Step {
	step.ID = domain.NewID()
	for fi := range step.Frames {
		step.Frames[fi].ID = domain.NewID()
		for ki := range step.Frames[fi].Stacks {
			stack := &step.Frames[fi].Stacks[ki]
			stack.ID = domain.NewID()
			for bi := range stack.Blocks {
				remintBlock(&stack.Blocks[bi])
			}
		}
	}
	return step
}

func remintBlock(block *domain.Block) {
	block.ID = domain.NewID()
	for ei := range block.Elements {
		block.Elements[ei].ID = domain.NewID()
	}
	if block.Flow == nil {
		return
	}
	// Flow step ids are referenced by sibling navigation; remint them
	// consistently so internal go-to-step references stay intact.
	idMap := make(map[string]string, len(block.Flow.Steps))
	for i := range block.Flow.Steps {
		idMap[block.Flow.Steps[i].ID] = domain.NewID()
	}
	for i := range block.Flow.Steps {
		fs := &block.Flow.Steps[i]
		fs.ID = idMap[fs.ID]
		for ei := range fs.Elements {
			fs.Elements[ei].ID = domain.NewID()
		}
		if fs.Navigation != nil && fs.Navigation.TargetStepID != "" {
			if mapped, ok := idMap[fs.Navigation.TargetStepID]; ok {
				fs.Navigation.TargetStepID = mapped
			}
		}
		if fs.Action != nil && fs.Action.TargetStepID != "" {
			if mapped, ok := idMap[fs.Action.TargetStepID]; ok {
				fs.Action.TargetStepID = mapped
				if raw, ok := fs.Settings["buttonAction"].(map[string]any); ok {
					raw["targetStepId"] = mapped
				}
			}
		}
	}
}
