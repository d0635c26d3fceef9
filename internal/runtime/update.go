package runtime

import (
	"github.com/latticehq/lattice/pkg/domain"
)

// ApplyUpdate applies a partial update to exactly one node, identified
// by id, and returns a new tree. Siblings and unrelated fields of the
// target are left untouched; untouched subtrees are shared with the
// input, never copied. A missing target is a soft no-op: the input
// tree comes back unchanged with applied=false. The caller may race
// with a deletion, so this must never be an error.
func ApplyUpdate(page *domain.Page, targetID string, patch domain.Patch) (*domain.Page, bool) {
	if page == nil || targetID == "" {
		return page, false
	}
	if page.ID == targetID {
		next := *page
		applyPagePatch(&next, patch)
		return &next, true
	}
	for si := range page.Steps {
		if updated, ok := updateInStep(page.Steps[si], targetID, patch); ok {
			next := *page
			next.Steps = append([]domain.Step(nil), page.Steps...)
			next.Steps[si] = updated
			return &next, true
		}
	}
	return page, false
}

func updateInStep(step domain.Step, targetID string, patch domain.Patch) (domain.Step, bool) {
	if step.ID == targetID {
		applyStepPatch(&step, patch)
		return step, true
	}
	for fi := range step.Frames {
		if updated, ok := updateInFrame(step.Frames[fi], targetID, patch); ok {
			step.Frames = append([]domain.Frame(nil), step.Frames...)
			step.Frames[fi] = updated
			return step, true
		}
	}
	return step, false
}

func updateInFrame(frame domain.Frame, targetID string, patch domain.Patch) (domain.Frame, bool) {
	if frame.ID == targetID {
		applyFramePatch(&frame, patch)
		return frame, true
	}
	for ki := range frame.Stacks {
		if updated, ok := updateInStack(frame.Stacks[ki], targetID, patch); ok {
			frame.Stacks = append([]domain.Stack(nil), frame.Stacks...)
			frame.Stacks[ki] = updated
			return frame, true
		}
	}
	return frame, false
}

func updateInStack(stack domain.Stack, targetID string, patch domain.Patch) (domain.Stack, bool) {
	if stack.ID == targetID {
		if patch.Direction != nil {
			stack.Direction = *patch.Direction
		}
		return stack, true
	}
	for bi := range stack.Blocks {
		if updated, ok := updateInBlock(stack.Blocks[bi], targetID, patch); ok {
			stack.Blocks = append([]domain.Block(nil), stack.Blocks...)
			stack.Blocks[bi] = updated
			return stack, true
		}
	}
	return stack, false
}

func updateInBlock(block domain.Block, targetID string, patch domain.Patch) (domain.Block, bool) {
	if block.ID == targetID {
		block.Props = mergeByKey(block.Props, patch.Props)
		block.Styles = mergeByKey(block.Styles, patch.Styles)
		return block, true
	}
	for ei := range block.Elements {
		if block.Elements[ei].ID == targetID {
			block.Elements = append([]domain.Element(nil), block.Elements...)
			block.Elements[ei] = applyElementPatch(block.Elements[ei], patch)
			return block, true
		}
	}
	if block.Flow != nil {
		if updatedFlow, ok := updateInFlow(block.Flow, targetID, patch); ok {
			block.Flow = updatedFlow
			return block, true
		}
	}
	return block, false
}

func updateInFlow(flow *domain.Flow, targetID string, patch domain.Patch) (*domain.Flow, bool) {
	for i := range flow.Steps {
		if flow.Steps[i].ID == targetID {
			next := domain.Flow{Steps: append([]domain.FlowStep(nil), flow.Steps...)}
			next.Steps[i] = applyFlowStepPatch(flow.Steps[i], patch)
			return &next, true
		}
		for ei := range flow.Steps[i].Elements {
			if flow.Steps[i].Elements[ei].ID == targetID {
				next := domain.Flow{Steps: append([]domain.FlowStep(nil), flow.Steps...)}
				step := next.Steps[i]
				step.Elements = append([]domain.Element(nil), step.Elements...)
				step.Elements[ei] = applyElementPatch(step.Elements[ei], patch)
				next.Steps[i] = step
				return &next, true
			}
		}
	}
	return flow, false
}

func applyPagePatch(page *domain.Page, patch domain.Patch) {
	if patch.Slug != nil {
		page.Slug = *patch.Slug
	}
	page.Settings = mergeByKey(page.Settings, patch.Settings)
}

func applyStepPatch(step *domain.Step, patch domain.Patch) {
	if patch.Name != nil {
		step.Name = *patch.Name
	}
	if patch.Intent != nil {
		step.Intent = *patch.Intent
	}
	if patch.SubmitMode != nil {
		step.SubmitMode = *patch.SubmitMode
	}
	if patch.Background != nil {
		bg := *patch.Background
		step.Background = &bg
	}
	step.Settings = mergeByKey(step.Settings, patch.Settings)
}

func applyFramePatch(frame *domain.Frame, patch domain.Patch) {
	if patch.Label != nil {
		frame.Label = *patch.Label
	}
	if patch.Layout != nil {
		frame.Layout = *patch.Layout
	}
	frame.Settings = mergeByKey(frame.Settings, patch.Settings)
}

// applyElementPatch is the one responsive-aware write site. With a
// non-base mode on the patch, style/prop keys are redirected into the
// element's override slot for that mode; the base maps stay untouched.
func applyElementPatch(el domain.Element, patch domain.Patch) domain.Element {
	if patch.Content != nil {
		el.Content = *patch.Content
	}
	if patch.Visibility != nil {
		vis := *patch.Visibility
		vis.Rules = append([]domain.VisibilityRule(nil), patch.Visibility.Rules...)
		el.Visibility = &vis
	}
	if patch.Animation != nil {
		anim := *patch.Animation
		el.Animation = &anim
	}
	if !patch.Mode.IsBase() && (len(patch.Styles) > 0 || len(patch.Props) > 0) {
		responsive := make(map[domain.DeviceMode]domain.Override, len(el.Responsive)+1)
		for mode, ov := range el.Responsive {
			responsive[mode] = ov
		}
		slot := responsive[patch.Mode]
		slot.Styles = mergeByKey(slot.Styles, patch.Styles)
		slot.Props = mergeByKey(slot.Props, patch.Props)
		responsive[patch.Mode] = slot
		el.Responsive = responsive
		return el
	}
	el.Styles = mergeByKey(el.Styles, patch.Styles)
	el.Props = mergeByKey(el.Props, patch.Props)
	return el
}

func applyFlowStepPatch(step domain.FlowStep, patch domain.Patch) domain.FlowStep {
	if patch.Name != nil {
		step.Name = *patch.Name
	}
	step.Settings = mergeByKey(step.Settings, patch.Settings)
	if patch.Navigation != nil {
		nav := *patch.Navigation
		step.Navigation = &nav
	}
	if patch.Action != nil {
		act := *patch.Action
		step.Action = &act
		// The settings map is the wire form of the unified shape; keep
		// it in sync so serialized documents stay authoritative.
		step.Settings = mergeByKey(step.Settings, map[string]any{
			"buttonAction": map[string]any{
				"action":       string(act.Action),
				"targetStepId": act.TargetStepID,
				"redirectUrl":  act.RedirectURL,
			},
		})
	}
	return step
}

// mergeByKey replaces each named sub-key and preserves all sibling
// sub-keys. A nil value deletes the key. This is deliberately not a
// deep recursive merge: inspectors write one leaf field at a time, and
// replacing the named key wholesale is the contract they rely on.
func mergeByKey(base, patch map[string]any) map[string]any {
	if len(patch) == 0 {
		return base
	}
	out := make(map[string]any, len(base)+len(patch))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range patch {
		if v == nil {
			delete(out, k)
			continue
		}
		out[k] = v
	}
	return out
}
