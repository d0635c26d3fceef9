/*
Package ports defines the driven ports (interfaces) for the Lattice
document core.

These interfaces decouple the core logic from external implementations,
allowing the editor to work with various storage backends and hosting
surfaces.

# Key Interfaces

  - DocumentStore: persisting and loading funnel documents.
  - DistributedLocker: distributed locking for concurrent document access.
  - DocumentEditor: the operation surface adapters program against.
*/
package ports
