package lattice

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/latticehq/lattice/internal/compiler"
	"github.com/latticehq/lattice/internal/logging"
	"github.com/latticehq/lattice/internal/presentation/graph"
	"github.com/latticehq/lattice/internal/runtime"
	"github.com/latticehq/lattice/internal/validator"
	"github.com/latticehq/lattice/pkg/adapters/memory"
	"github.com/latticehq/lattice/pkg/domain"
	"github.com/latticehq/lattice/pkg/ports"
	"github.com/latticehq/lattice/pkg/session"
)

// Editor is the high-level entry point for the Lattice library. It
// wraps the document runtime and provides a simplified API for
// consumers: one call per discrete UI event, persistent updates
// underneath, graceful degradation when the hosting UI lets an invalid
// event through.
type Editor struct {
	sessions *session.Manager
	parser   *compiler.Parser
	hooks    domain.EditHooks
	locker   ports.DistributedLocker
	store    ports.DocumentStore
	logger   *slog.Logger
}

var _ ports.DocumentEditor = (*Editor)(nil)

// Option defines a functional option for configuring the Editor.
type Option func(*Editor)

// WithStore injects a custom document store, bypassing the default
// in-memory one.
func WithStore(store ports.DocumentStore) Option {
	return func(e *Editor) {
		e.store = store
	}
}

// WithLocker enables distributed locking for document sessions.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(e *Editor) {
		e.locker = locker
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) {
		e.logger = logger
	}
}

// WithEditHooks registers observability hooks.
func WithEditHooks(hooks domain.EditHooks) Option {
	return func(e *Editor) {
		e.hooks = hooks
	}
}

// New initializes a new Lattice Editor. By default it uses an
// in-memory document store.
func New(opts ...Option) *Editor {
	e := &Editor{
		parser: compiler.NewParser(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.store == nil {
		e.store = memory.NewStore()
	}
	if e.logger == nil {
		e.logger = logging.NewNop()
	}

	sessionOpts := []session.Option{session.WithLogger(e.logger)}
	if e.locker != nil {
		sessionOpts = append(sessionOpts, session.WithLocker(e.locker))
	}
	e.sessions = session.NewManager(e.store, sessionOpts...)
	return e
}

// Parse decodes raw JSON/YAML document bytes, normalizing legacy
// navigation shapes at the boundary.
func (e *Editor) Parse(data []byte) (*domain.Page, error) {
	return e.parser.Parse(data)
}

// Create normalizes and stores a document, minting an id when the page
// has none. Returns the document id.
func (e *Editor) Create(ctx context.Context, page *domain.Page) (string, error) {
	if page.ID == "" {
		page.ID = domain.NewID()
	}
	if err := e.parser.Normalize(page); err != nil {
		return "", err
	}
	if err := e.sessions.Save(ctx, page.ID, page); err != nil {
		return "", err
	}
	return page.ID, nil
}

// Get loads a document by id.
func (e *Editor) Get(ctx context.Context, docID string) (*domain.Page, error) {
	return e.sessions.Load(ctx, docID)
}

// Put stores a document under the given id, normalizing first.
func (e *Editor) Put(ctx context.Context, docID string, page *domain.Page) error {
	if err := e.parser.Normalize(page); err != nil {
		return err
	}
	return e.sessions.Save(ctx, docID, page)
}

// Delete removes a document.
func (e *Editor) Delete(ctx context.Context, docID string) error {
	return e.sessions.Delete(ctx, docID)
}

// List returns stored document ids.
func (e *Editor) List(ctx context.Context) ([]string, error) {
	return e.sessions.List(ctx)
}

// Apply patches exactly one node of a stored document. A missing
// target id is a soft no-op (the caller may race with a deletion): the
// document is left unchanged, applied=false comes back, and a warning
// is logged instead of an error surfacing.
func (e *Editor) Apply(ctx context.Context, docID, targetID string, patch domain.Patch) (bool, error) {
	var applied bool
	err := e.sessions.WithLock(ctx, docID, func(ctx context.Context) error {
		page, err := e.sessions.Store().Load(ctx, docID)
		if err != nil {
			return err
		}
		next, ok := runtime.ApplyUpdate(page, targetID, patch)
		applied = ok
		if !ok {
			e.logger.Warn("update target not found", "doc_id", docID, "node_id", targetID)
			return nil
		}
		return e.sessions.Store().Save(ctx, docID, next)
	})
	if err != nil {
		return false, err
	}
	e.emitUpdate(ctx, docID, targetID, patch.Mode, applied)
	return applied, nil
}

// Validate reports every structural violation of a stored document in
// one batch.
func (e *Editor) Validate(ctx context.Context, docID string) ([]domain.Violation, error) {
	page, err := e.sessions.Load(ctx, docID)
	if err != nil {
		return nil, err
	}
	violations := validator.Validate(page)
	if e.hooks.OnViolation != nil {
		e.hooks.OnViolation(ctx, &domain.ViolationEvent{DocumentID: docID, Violations: violations})
	}
	return violations, nil
}

// ValidatePage validates an in-memory document without touching the store.
func (e *Editor) ValidatePage(page *domain.Page) []domain.Violation {
	return validator.Validate(page)
}

// Resolve runs strict, edit-time navigation resolution for the flow
// embedded in the given block.
func (e *Editor) Resolve(ctx context.Context, docID, blockID, currentStepID string) (domain.Resolution, error) {
	return e.resolve(ctx, docID, blockID, currentStepID, runtime.Resolve)
}

// ResolveRuntime is the lenient viewer-path variant: dangling
// references degrade to a terminal outcome.
func (e *Editor) ResolveRuntime(ctx context.Context, docID, blockID, currentStepID string) (domain.Resolution, error) {
	return e.resolve(ctx, docID, blockID, currentStepID, runtime.ResolveRuntime)
}

func (e *Editor) resolve(ctx context.Context, docID, blockID, currentStepID string,
	fn func(*domain.Flow, string) (domain.Resolution, error)) (domain.Resolution, error) {

	page, err := e.sessions.Load(ctx, docID)
	if err != nil {
		return domain.Resolution{}, err
	}
	block, ok := page.FlowBlockByID(blockID)
	if !ok {
		return domain.Resolution{}, fmt.Errorf("%w: %s", domain.ErrFlowNotFound, blockID)
	}
	res, err := fn(block.Flow, currentStepID)
	if e.hooks.OnResolve != nil {
		e.hooks.OnResolve(ctx, &domain.ResolveEvent{
			DocumentID: docID,
			BlockID:    blockID,
			StepID:     currentStepID,
			Outcome:    res.Kind,
			Err:        err,
		})
	}
	return res, err
}

// Reorder moves a child within the identified parent's child list,
// atomically: read, compute, write in one locked step so stale indices
// can never interleave.
func (e *Editor) Reorder(ctx context.Context, docID, parentID string, from, to int) (bool, error) {
	var applied bool
	err := e.sessions.WithLock(ctx, docID, func(ctx context.Context) error {
		page, err := e.sessions.Store().Load(ctx, docID)
		if err != nil {
			return err
		}
		next, ok := runtime.Reorder(page, parentID, from, to)
		applied = ok
		if !ok {
			return nil
		}
		return e.sessions.Store().Save(ctx, docID, next)
	})
	if err != nil {
		return false, err
	}
	if e.hooks.OnReorder != nil {
		e.hooks.OnReorder(ctx, &domain.ReorderEvent{
			DocumentID: docID, ParentID: parentID, From: from, To: to, Applied: applied,
		})
	}
	return applied, nil
}

// Select addresses a node for later scoped updates. An unknown node id
// yields the empty selection, not an error.
func (e *Editor) Select(ctx context.Context, docID, nodeID string) (domain.Selection, error) {
	page, err := e.sessions.Load(ctx, docID)
	if err != nil {
		return domain.EmptySelection(), err
	}
	return domain.SelectionFor(page, nodeID), nil
}

// AddStep appends a document-level step and returns its id.
func (e *Editor) AddStep(ctx context.Context, docID, name string) (string, error) {
	var stepID string
	err := e.sessions.WithLock(ctx, docID, func(ctx context.Context) error {
		page, err := e.sessions.Store().Load(ctx, docID)
		if err != nil {
			return err
		}
		next, id := runtime.AddStep(page, name)
		stepID = id
		return e.sessions.Store().Save(ctx, docID, next)
	})
	return stepID, err
}

// DuplicateStep deep-copies a step with fresh ids and inserts it after
// the original. Missing step id is a soft no-op.
func (e *Editor) DuplicateStep(ctx context.Context, docID, stepID string) (string, bool, error) {
	var newID string
	var applied bool
	err := e.sessions.WithLock(ctx, docID, func(ctx context.Context) error {
		page, err := e.sessions.Store().Load(ctx, docID)
		if err != nil {
			return err
		}
		next, id, ok := runtime.DuplicateStep(page, stepID)
		newID, applied = id, ok
		if !ok {
			return nil
		}
		return e.sessions.Store().Save(ctx, docID, next)
	})
	return newID, applied, err
}

// DeleteStep removes a document-level step. The last remaining step is
// never deleted. Dangling flow references the deletion may create are
// deliberately left in place, flagged by Validate rather than silently
// repaired.
func (e *Editor) DeleteStep(ctx context.Context, docID, stepID string) (bool, error) {
	var applied bool
	err := e.sessions.WithLock(ctx, docID, func(ctx context.Context) error {
		page, err := e.sessions.Store().Load(ctx, docID)
		if err != nil {
			return err
		}
		next, ok := runtime.DeleteStep(page, stepID)
		applied = ok
		if !ok {
			return nil
		}
		return e.sessions.Store().Save(ctx, docID, next)
	})
	if err != nil {
		return false, err
	}
	if e.hooks.OnDelete != nil {
		e.hooks.OnDelete(ctx, &domain.DeleteEvent{
			DocumentID: docID, NodeID: stepID, Kind: domain.KindStep, Applied: applied,
		})
	}
	return applied, nil
}

// AddFlowStep appends a step to a block's embedded flow.
func (e *Editor) AddFlowStep(ctx context.Context, docID, blockID string, stepType domain.FlowStepType, name string) (string, bool, error) {
	var stepID string
	var applied bool
	err := e.sessions.WithLock(ctx, docID, func(ctx context.Context) error {
		page, err := e.sessions.Store().Load(ctx, docID)
		if err != nil {
			return err
		}
		next, id, ok := runtime.AddFlowStep(page, blockID, stepType, name)
		stepID, applied = id, ok
		if !ok {
			return nil
		}
		return e.sessions.Store().Save(ctx, docID, next)
	})
	return stepID, applied, err
}

// DeleteFlowStep removes a step from a block's embedded flow, guarded
// by the same last-step rule and no-auto-repair policy as DeleteStep.
func (e *Editor) DeleteFlowStep(ctx context.Context, docID, blockID, stepID string) (bool, error) {
	var applied bool
	err := e.sessions.WithLock(ctx, docID, func(ctx context.Context) error {
		page, err := e.sessions.Store().Load(ctx, docID)
		if err != nil {
			return err
		}
		next, ok := runtime.DeleteFlowStep(page, blockID, stepID)
		applied = ok
		if !ok {
			return nil
		}
		return e.sessions.Store().Save(ctx, docID, next)
	})
	if err != nil {
		return false, err
	}
	if e.hooks.OnDelete != nil {
		e.hooks.OnDelete(ctx, &domain.DeleteEvent{
			DocumentID: docID, NodeID: stepID, Kind: domain.KindFlowStep, Applied: applied,
		})
	}
	return applied, nil
}

// Graph renders the mermaid flowchart for a block's embedded flow.
func (e *Editor) Graph(ctx context.Context, docID, blockID string) (string, error) {
	page, err := e.sessions.Load(ctx, docID)
	if err != nil {
		return "", err
	}
	block, ok := page.FlowBlockByID(blockID)
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrFlowNotFound, blockID)
	}
	return graph.GenerateMermaid(block.Flow), nil
}

// Edit opens a draft session over a stored document.
func (e *Editor) Edit(ctx context.Context, docID string) (*session.Draft, error) {
	return e.sessions.Edit(ctx, docID)
}

// Sessions returns the underlying session manager.
func (e *Editor) Sessions() *session.Manager {
	return e.sessions
}

func (e *Editor) emitUpdate(ctx context.Context, docID, targetID string, mode domain.DeviceMode, applied bool) {
	if e.hooks.OnUpdate == nil {
		return
	}
	kind := domain.NodeKind("")
	if applied {
		if page, err := e.sessions.Load(ctx, docID); err == nil {
			kind = domain.SelectionFor(page, targetID).Kind
		}
	}
	e.hooks.OnUpdate(ctx, &domain.UpdateEvent{
		DocumentID: docID,
		NodeID:     targetID,
		Kind:       kind,
		Mode:       mode,
		Applied:    applied,
	})
}
