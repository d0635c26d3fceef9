package domain

import "fmt"

// ViolationCode classifies a structural violation found by validation.
type ViolationCode string

const (
	ViolationDanglingReference ViolationCode = "dangling_reference"
	ViolationSelfReference     ViolationCode = "self_reference"
	ViolationEmptyRedirectURL  ViolationCode = "empty_redirect_url"
	ViolationNoSteps           ViolationCode = "no_steps"
	ViolationDuplicateID       ViolationCode = "duplicate_id"
	ViolationInvalidProp       ViolationCode = "invalid_prop"
)

// Violation is one advisory finding. Violations are collected and
// reported in batch; they never block further edits, because the
// editor must tolerate a temporarily-invalid document mid-edit.
type Violation struct {
	Code    ViolationCode `json:"code"`
	NodeID  string        `json:"node_id,omitempty"`
	Path    string        `json:"path,omitempty"`
	Message string        `json:"message"`
}

func (v Violation) String() string {
	if v.NodeID != "" {
		return fmt.Sprintf("[%s] %s: %s", v.Code, v.NodeID, v.Message)
	}
	return fmt.Sprintf("[%s] %s", v.Code, v.Message)
}
