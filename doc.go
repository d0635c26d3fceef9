// Package lattice is a document engine for visual funnel builders.
//
// It models a page as a strict containment tree (page, step, frame,
// stack, block, element), applies partial updates persistently so
// consumers can diff by pointer identity, resolves embedded flow
// navigation as a small state machine, and projects elements to
// device-specific visual properties.
//
// The Editor type is the primary entry point:
//
//	ed := lattice.New()
//	id, err := ed.Create(ctx, page)
//	applied, err := ed.Apply(ctx, id, elementID, domain.Patch{
//		Mode:   domain.ModeMobile,
//		Styles: map[string]any{"fontSize": "14px"},
//	})
//
// Storage, locking, logging and observability hooks are all pluggable
// through functional options; the default configuration is an
// in-memory store with no logging.
package lattice
