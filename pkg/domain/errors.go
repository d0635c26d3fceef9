package domain

import (
	"errors"
	"fmt"
)

// ErrDocumentNotFound is returned when a document ID cannot be found in a store.
var ErrDocumentNotFound = errors.New("document not found")

// ErrFlowNotFound is returned when a block id does not name an
// application-flow block in the document.
var ErrFlowNotFound = errors.New("flow block not found")

// StepNotFoundError reports a resolution call with an unknown current
// step id. This is a programmer-error-class failure: it is fatal to
// the call, never degraded.
type StepNotFoundError struct {
	StepID string
}

func (e *StepNotFoundError) Error() string {
	return fmt.Sprintf("flow step not found: %s", e.StepID)
}

// SelfReferenceError reports a go-to-step pointing at its own step.
// Fatal: following it would loop forever.
type SelfReferenceError struct {
	StepID string
}

func (e *SelfReferenceError) Error() string {
	return fmt.Sprintf("step %s targets itself", e.StepID)
}

// DanglingReferenceError reports a go-to-step whose target id is no
// longer present in the flow (typically after a step deletion). Strict
// resolution surfaces it so the editor can flag the step; runtime
// resolution degrades it to a terminal outcome instead.
type DanglingReferenceError struct {
	StepID   string
	TargetID string
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("step %s targets missing step %s", e.StepID, e.TargetID)
}
