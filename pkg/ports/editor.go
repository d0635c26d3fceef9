package ports

import (
	"context"

	"github.com/latticehq/lattice/pkg/domain"
)

// DocumentEditor is the interface adapters (HTTP, MCP) program
// against. Every discrete UI event translates to exactly one of these
// calls; the implementations degrade gracefully even when the hosting
// UI fails to disable an invalid path.
type DocumentEditor interface {
	// Get loads a document by id.
	Get(ctx context.Context, docID string) (*domain.Page, error)

	// Put stores a document under the given id, normalizing legacy
	// navigation shapes at the boundary.
	Put(ctx context.Context, docID string, page *domain.Page) error

	// Apply patches exactly one node. A missing target is a soft no-op
	// reported through the returned flag, not an error.
	Apply(ctx context.Context, docID, targetID string, patch domain.Patch) (bool, error)

	// Validate reports every structural violation in batch.
	Validate(ctx context.Context, docID string) ([]domain.Violation, error)

	// Resolve runs strict edit-time navigation resolution for the flow
	// embedded in the given block.
	Resolve(ctx context.Context, docID, blockID, currentStepID string) (domain.Resolution, error)

	// Reorder moves a child within the identified parent's child list.
	Reorder(ctx context.Context, docID, parentID string, from, to int) (bool, error)

	// Select addresses a node for later scoped updates.
	Select(ctx context.Context, docID, nodeID string) (domain.Selection, error)
}

// Projector is the render-side consumer contract: a pure function from
// (element, device mode) to visual properties. It must resolve
// responsive overrides, never mutate the node, and be idempotent so
// the host can call it once per visible node per paint.
type Projector[V any] interface {
	Project(el domain.Element, mode domain.DeviceMode) V
}
