package domain

// Flow is the embedded multi-step graph inside an application-flow
// block. It is a second, nested tree: its steps are not reachable via
// the normal frame/stack/block path.
type Flow struct {
	Steps []FlowStep `json:"steps" yaml:"steps"`
}

// FlowStep is one screen within an embedded flow.
//
// Two navigation shapes coexist for compatibility: the deprecated
// top-level Navigation record, and the unified ButtonAction lifted out
// of settings["buttonAction"] by the document parser. Consumers must
// go through EffectiveNavigation, which prefers the unified shape. The
// legacy record is never dropped; documents that have not been
// migrated round-trip unchanged.
type FlowStep struct {
	ID       string         `json:"id" yaml:"id"`
	Name     string         `json:"name,omitempty" yaml:"name,omitempty"`
	Type     FlowStepType   `json:"type" yaml:"type"`
	Elements []Element      `json:"elements,omitempty" yaml:"elements,omitempty"`
	Settings map[string]any `json:"settings,omitempty" yaml:"settings,omitempty"`

	// Navigation is the legacy per-step record. Deprecated in favor of
	// the unified ButtonAction, but still accepted and resolved.
	Navigation *StepNavigation `json:"navigation,omitempty" yaml:"navigation,omitempty"`

	// Action is the canonical lifted copy of settings["buttonAction"].
	// It is populated at the document boundary and not serialized; the
	// raw settings map remains the source of truth on the wire.
	Action *ButtonAction `json:"-" yaml:"-"`
}

// StepNavigation is the legacy navigation record.
type StepNavigation struct {
	Action            NavigationAction `json:"action" yaml:"action"`
	TargetStepID      string           `json:"targetStepId,omitempty" yaml:"targetStepId,omitempty"`
	RedirectURL       string           `json:"redirectUrl,omitempty" yaml:"redirectUrl,omitempty"`
	SubmitAndContinue bool             `json:"submitAndContinue,omitempty" yaml:"submitAndContinue,omitempty"`
}

// ButtonAction is the unified navigation shape referenced by
// settings["buttonAction"].
type ButtonAction struct {
	Action       NavigationAction `json:"action" yaml:"action" mapstructure:"action"`
	TargetStepID string           `json:"targetStepId,omitempty" yaml:"targetStepId,omitempty" mapstructure:"targetStepId"`
	RedirectURL  string           `json:"redirectUrl,omitempty" yaml:"redirectUrl,omitempty" mapstructure:"redirectUrl"`
}

// Navigation is the internal canonical navigation record the resolver
// consumes. Both wire shapes normalize into it.
type Navigation struct {
	Action       NavigationAction
	TargetStepID string
	RedirectURL  string
}

// EffectiveNavigation normalizes the step's navigation config,
// preferring the unified shape when both are set. A step with neither
// shape behaves as "next".
func (s *FlowStep) EffectiveNavigation() Navigation {
	if s.Action != nil {
		return Navigation{
			Action:       s.Action.Action,
			TargetStepID: s.Action.TargetStepID,
			RedirectURL:  s.Action.RedirectURL,
		}
	}
	if s.Navigation != nil {
		return Navigation{
			Action:       s.Navigation.Action,
			TargetStepID: s.Navigation.TargetStepID,
			RedirectURL:  s.Navigation.RedirectURL,
		}
	}
	return Navigation{Action: ActionNext}
}

// StepByID returns the flow step with the given id.
func (f *Flow) StepByID(id string) (*FlowStep, bool) {
	for i := range f.Steps {
		if f.Steps[i].ID == id {
			return &f.Steps[i], true
		}
	}
	return nil, false
}

// StepIndex returns the position of a step id, or -1.
func (f *Flow) StepIndex(id string) int {
	for i := range f.Steps {
		if f.Steps[i].ID == id {
			return i
		}
	}
	return -1
}
