package session

import (
	"context"
	"sync"

	"github.com/latticehq/lattice/internal/runtime"
	"github.com/latticehq/lattice/pkg/domain"
)

// Draft is an edit session over one document. Continuously-varying
// controls (sliders, color wheels, drag handles) stage intermediate
// values at any frequency; none of them touch the store or the
// document history. Commit collapses everything staged for a target
// into exactly one applied patch, so a whole gesture costs one
// document mutation regardless of how many positions were visited.
type Draft struct {
	mu     sync.Mutex
	docID  string
	mgr    *Manager
	base   *domain.Page // last committed tree
	staged map[string]domain.Patch
	order  []string // stage order of target ids, for deterministic commits
}

// Edit opens a draft over an existing document.
func (m *Manager) Edit(ctx context.Context, docID string) (*Draft, error) {
	base, err := m.Load(ctx, docID)
	if err != nil {
		return nil, err
	}
	return &Draft{
		docID:  docID,
		mgr:    m,
		base:   base,
		staged: make(map[string]domain.Patch),
	}, nil
}

// Stage records an uncommitted patch for a node. Successive stages for
// the same target merge, last write wins per field.
func (d *Draft) Stage(targetID string, patch domain.Patch) {
	d.mu.Lock()
	defer d.mu.Unlock()

	existing, ok := d.staged[targetID]
	if !ok {
		d.order = append(d.order, targetID)
		d.staged[targetID] = patch
		return
	}
	d.staged[targetID] = existing.MergedWith(patch)
}

// Preview returns the base tree with all staged patches applied, for
// projection reads during a gesture. The base itself is untouched.
func (d *Draft) Preview() *domain.Page {
	d.mu.Lock()
	defer d.mu.Unlock()

	page := d.base
	for _, targetID := range d.order {
		page, _ = runtime.ApplyUpdate(page, targetID, d.staged[targetID])
	}
	return page
}

// Commit applies each staged target's collapsed patch once, persists
// the result once, and clears the staged set. Returns the committed
// tree.
func (d *Draft) Commit(ctx context.Context) (*domain.Page, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.order) == 0 {
		return d.base, nil
	}

	page := d.base
	for _, targetID := range d.order {
		page, _ = runtime.ApplyUpdate(page, targetID, d.staged[targetID])
	}
	if err := d.mgr.Save(ctx, d.docID, page); err != nil {
		return nil, err
	}
	d.base = page
	d.staged = make(map[string]domain.Patch)
	d.order = nil
	return page, nil
}

// Discard drops everything staged. Called on selection change or
// component teardown: an edit in flight is never flushed as a partial
// write.
func (d *Draft) Discard() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.staged = make(map[string]domain.Patch)
	d.order = nil
}

// CommitText implements the blur rule for text fields: commit when the
// entered value is non-empty and differs from the prior value,
// otherwise revert to the last known-good value. Returns whether a
// commit happened.
func (d *Draft) CommitText(ctx context.Context, targetID, prior, entered string) (bool, error) {
	if entered == "" || entered == prior {
		d.mu.Lock()
		// Drop any staged content for this target; the field reverts.
		if patch, ok := d.staged[targetID]; ok {
			patch.Content = nil
			patch.Name = nil
			d.staged[targetID] = patch
		}
		d.mu.Unlock()
		return false, nil
	}
	d.Stage(targetID, domain.Patch{Content: &entered})
	_, err := d.Commit(ctx)
	return err == nil, err
}

// Base returns the last committed tree.
func (d *Draft) Base() *domain.Page {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.base
}
