package runtime

import (
	"errors"

	"github.com/latticehq/lattice/pkg/domain"
)

// Resolve determines the next presented step (or terminal outcome)
// after a user completes the given flow step. It is the strict,
// edit-time entry point: a dangling go-to-step target is surfaced as a
// DanglingReferenceError so the editor can flag the step, never
// silently resolved to "next".
//
// An unknown current step id and a self-referencing target are fatal
// in both modes; proceeding would crash the viewer or loop forever.
func Resolve(flow *domain.Flow, currentStepID string) (domain.Resolution, error) {
	return resolve(flow, currentStepID, true)
}

// ResolveRuntime is the lenient viewer-path variant: a dangling
// reference degrades to a terminal outcome instead of failing, because
// a stored document may legitimately carry one until the editor fixes
// it.
func ResolveRuntime(flow *domain.Flow, currentStepID string) (domain.Resolution, error) {
	return resolve(flow, currentStepID, false)
}

func resolve(flow *domain.Flow, currentStepID string, strict bool) (domain.Resolution, error) {
	if flow == nil {
		return domain.Resolution{}, &domain.StepNotFoundError{StepID: currentStepID}
	}
	step, ok := flow.StepByID(currentStepID)
	if !ok {
		return domain.Resolution{}, &domain.StepNotFoundError{StepID: currentStepID}
	}

	nav := step.EffectiveNavigation()
	switch nav.Action {
	case domain.ActionNext, "":
		idx := flow.StepIndex(currentStepID)
		if idx == len(flow.Steps)-1 {
			// A stored document can carry "next" on the last step even
			// though the editor disables it. Terminal, never a crash.
			return domain.Resolution{Kind: domain.ResolutionTerminal}, nil
		}
		return domain.Resolution{Kind: domain.ResolutionStep, StepID: flow.Steps[idx+1].ID}, nil

	case domain.ActionGoToStep:
		if nav.TargetStepID == currentStepID {
			return domain.Resolution{}, &domain.SelfReferenceError{StepID: currentStepID}
		}
		if _, ok := flow.StepByID(nav.TargetStepID); !ok {
			if strict {
				return domain.Resolution{}, &domain.DanglingReferenceError{
					StepID:   currentStepID,
					TargetID: nav.TargetStepID,
				}
			}
			return domain.Resolution{Kind: domain.ResolutionTerminal}, nil
		}
		return domain.Resolution{Kind: domain.ResolutionStep, StepID: nav.TargetStepID}, nil

	case domain.ActionSubmit:
		return domain.Resolution{Kind: domain.ResolutionSubmitted}, nil

	case domain.ActionRedirect:
		if nav.RedirectURL == "" {
			// Empty URL is permitted mid-edit; resolving it is a no-op.
			return domain.Resolution{Kind: domain.ResolutionTerminal}, nil
		}
		return domain.Resolution{Kind: domain.ResolutionRedirected, URL: nav.RedirectURL}, nil

	default:
		return domain.Resolution{}, errors.New("unknown navigation action: " + string(nav.Action))
	}
}
