package validator

import (
	"fmt"
	"strings"

	"github.com/latticehq/lattice/pkg/domain"
	"github.com/latticehq/lattice/pkg/schema"
)

// Validate walks the document and reports every structural violation
// it finds. Validation is advisory: the editor must tolerate a
// temporarily-invalid document mid-edit (a half-typed redirect URL, a
// just-orphaned step reference), so findings are collected in batch
// and returned, never thrown.
func Validate(page *domain.Page) []domain.Violation {
	if page == nil {
		return nil
	}
	var out []domain.Violation

	if len(page.Steps) == 0 {
		out = append(out, domain.Violation{
			Code:    domain.ViolationNoSteps,
			NodeID:  page.ID,
			Path:    "page",
			Message: "page has no steps",
		})
	}
	out = append(out, checkSiblingIDs("page.steps", stepIDs(page.Steps))...)

	for si := range page.Steps {
		step := &page.Steps[si]
		stepPath := fmt.Sprintf("steps[%d]", si)
		out = append(out, checkSiblingIDs(stepPath+".frames", frameIDs(step.Frames))...)
		for fi := range step.Frames {
			frame := &step.Frames[fi]
			framePath := fmt.Sprintf("%s.frames[%d]", stepPath, fi)
			out = append(out, checkSiblingIDs(framePath+".stacks", stackIDs(frame.Stacks))...)
			for ki := range frame.Stacks {
				stack := &frame.Stacks[ki]
				stackPath := fmt.Sprintf("%s.stacks[%d]", framePath, ki)
				out = append(out, checkSiblingIDs(stackPath+".blocks", blockIDs(stack.Blocks))...)
				for bi := range stack.Blocks {
					block := &stack.Blocks[bi]
					blockPath := fmt.Sprintf("%s.blocks[%d]", stackPath, bi)
					out = append(out, checkSiblingIDs(blockPath+".elements", elementIDs(block.Elements))...)
					out = append(out, checkElementProps(blockPath+".elements", block.Elements)...)
					if block.Type == domain.BlockApplicationFlow {
						out = append(out, validateFlow(block, blockPath)...)
					}
				}
			}
		}
	}
	return out
}

// validateFlow checks the embedded step graph: step count, sibling id
// uniqueness (steps and each step's element list), element props, and
// every navigation record of every step (both legacy and unified
// shapes, via the canonical view).
func validateFlow(block *domain.Block, path string) []domain.Violation {
	var out []domain.Violation

	if block.Flow == nil || len(block.Flow.Steps) == 0 {
		out = append(out, domain.Violation{
			Code:    domain.ViolationNoSteps,
			NodeID:  block.ID,
			Path:    path,
			Message: "application flow has no steps",
		})
		return out
	}

	flow := block.Flow
	out = append(out, checkSiblingIDs(path+".flow.steps", flowStepIDs(flow.Steps))...)

	for i := range flow.Steps {
		step := &flow.Steps[i]
		stepPath := fmt.Sprintf("%s.flow.steps[%d]", path, i)
		out = append(out, checkSiblingIDs(stepPath+".elements", elementIDs(step.Elements))...)
		out = append(out, checkElementProps(stepPath+".elements", step.Elements)...)
		nav := step.EffectiveNavigation()

		switch nav.Action {
		case domain.ActionGoToStep:
			if nav.TargetStepID == step.ID {
				out = append(out, domain.Violation{
					Code:    domain.ViolationSelfReference,
					NodeID:  step.ID,
					Path:    stepPath,
					Message: "step navigation targets itself",
				})
			} else if _, ok := flow.StepByID(nav.TargetStepID); !ok {
				out = append(out, domain.Violation{
					Code:    domain.ViolationDanglingReference,
					NodeID:  step.ID,
					Path:    stepPath,
					Message: fmt.Sprintf("navigation targets missing step %q", nav.TargetStepID),
				})
			}
		case domain.ActionRedirect:
			if strings.TrimSpace(nav.RedirectURL) == "" {
				out = append(out, domain.Violation{
					Code:    domain.ViolationEmptyRedirectURL,
					NodeID:  step.ID,
					Path:    stepPath,
					Message: "redirect action has no URL",
				})
			}
		}
	}
	return out
}

// checkSiblingIDs reports duplicates within one sibling collection.
// IDs must be unique per parent; global uniqueness is recommended but
// not required.
func checkSiblingIDs(path string, ids []string) []domain.Violation {
	var out []domain.Violation
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if seen[id] {
			out = append(out, domain.Violation{
				Code:    domain.ViolationDuplicateID,
				NodeID:  id,
				Path:    path,
				Message: fmt.Sprintf("duplicate sibling id %q", id),
			})
			continue
		}
		seen[id] = true
	}
	return out
}

// checkElementProps validates each element's props against the
// capability schema of its type, one violation per offending prop.
// Elements of unknown types validate trivially.
func checkElementProps(path string, elements []domain.Element) []domain.Violation {
	var out []domain.Violation
	for i := range elements {
		el := &elements[i]
		err := schema.ValidateElement(el)
		if err == nil {
			continue
		}
		elPath := fmt.Sprintf("%s[%d]", path, i)
		errs := schema.ValidationErrors(err)
		if errs == nil {
			errs = []error{err}
		}
		for _, e := range errs {
			out = append(out, domain.Violation{
				Code:    domain.ViolationInvalidProp,
				NodeID:  el.ID,
				Path:    elPath,
				Message: e.Error(),
			})
		}
	}
	return out
}

func stepIDs(steps []domain.Step) []string {
	out := make([]string, len(steps))
	for i := range steps {
		out[i] = steps[i].ID
	}
	return out
}

func frameIDs(frames []domain.Frame) []string {
	out := make([]string, len(frames))
	for i := range frames {
		out[i] = frames[i].ID
	}
	return out
}

func stackIDs(stacks []domain.Stack) []string {
	out := make([]string, len(stacks))
	for i := range stacks {
		out[i] = stacks[i].ID
	}
	return out
}

func blockIDs(blocks []domain.Block) []string {
	out := make([]string, len(blocks))
	for i := range blocks {
		out[i] = blocks[i].ID
	}
	return out
}

func elementIDs(elements []domain.Element) []string {
	out := make([]string, len(elements))
	for i := range elements {
		out[i] = elements[i].ID
	}
	return out
}

func flowStepIDs(steps []domain.FlowStep) []string {
	out := make([]string, len(steps))
	for i := range steps {
		out[i] = steps[i].ID
	}
	return out
}
