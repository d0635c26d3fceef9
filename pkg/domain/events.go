package domain

import "context"

// EditHooks are optional observability callbacks fired by the editor
// around document mutations. All hooks are synchronous and must be
// fast; nil hooks are skipped.
type EditHooks struct {
	OnUpdate    func(ctx context.Context, e *UpdateEvent)
	OnReorder   func(ctx context.Context, e *ReorderEvent)
	OnDelete    func(ctx context.Context, e *DeleteEvent)
	OnResolve   func(ctx context.Context, e *ResolveEvent)
	OnViolation func(ctx context.Context, e *ViolationEvent)
}

// UpdateEvent describes one applied (or soft no-op) patch.
type UpdateEvent struct {
	DocumentID string
	NodeID     string
	Kind       NodeKind
	Mode       DeviceMode
	Applied    bool
}

// ReorderEvent describes one sibling-list move.
type ReorderEvent struct {
	DocumentID string
	ParentID   string
	From       int
	To         int
	Applied    bool
}

// DeleteEvent describes one node removal.
type DeleteEvent struct {
	DocumentID string
	NodeID     string
	Kind       NodeKind
	Applied    bool
}

// ResolveEvent describes one navigation resolution outcome.
type ResolveEvent struct {
	DocumentID string
	BlockID    string
	StepID     string
	Outcome    ResolutionKind
	Err        error
}

// ViolationEvent carries one batch of validation findings.
type ViolationEvent struct {
	DocumentID string
	Violations []Violation
}
