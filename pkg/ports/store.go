package ports

import (
	"context"

	"github.com/latticehq/lattice/pkg/domain"
)

// DocumentStore defines the interface for persisting funnel documents.
// The core defines the document shape but not the transport or storage
// mechanism; load/save are external collaborators behind this port.
type DocumentStore interface {
	// Save persists the document under the given id.
	Save(ctx context.Context, docID string, page *domain.Page) error

	// Load retrieves the document for a given id.
	// Returns domain.ErrDocumentNotFound if it does not exist.
	Load(ctx context.Context, docID string) (*domain.Page, error)

	// Delete removes the document.
	Delete(ctx context.Context, docID string) error

	// List returns the ids of all stored documents.
	List(ctx context.Context) ([]string, error)
}
