package domain

// ResolutionKind classifies the outcome of resolving a flow step's
// navigation.
type ResolutionKind string

const (
	// ResolutionStep means another step in the same flow is presented
	// next; Resolution.StepID carries its id.
	ResolutionStep ResolutionKind = "step"
	// ResolutionSubmitted is the submit terminal pseudo-state.
	ResolutionSubmitted ResolutionKind = "submitted"
	// ResolutionRedirected carries the redirect URL.
	ResolutionRedirected ResolutionKind = "redirected"
	// ResolutionTerminal is a no-op end: "next" on the last step, or a
	// redirect with an empty URL.
	ResolutionTerminal ResolutionKind = "terminal"
)

// Resolution is the result of one navigation resolution call.
type Resolution struct {
	Kind   ResolutionKind `json:"kind"`
	StepID string         `json:"step_id,omitempty"`
	URL    string         `json:"url,omitempty"`
}

// Terminal reports whether the resolution leaves the flow.
func (r Resolution) Terminal() bool {
	return r.Kind != ResolutionStep
}
