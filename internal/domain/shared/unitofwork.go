package shared

import "context"

// UnitOfWork collects the mutations of a single commercial event so they can
// be applied to the persistent store as one all-or-nothing group. The engine
// registers creates and updates while planning; nothing is written until
// Commit, and a failed Commit leaves the store untouched.
//
// A UnitOfWork is single-use: after Commit returns it must be discarded.
// There is no rollback method because nothing is applied before Commit.
type UnitOfWork interface {
	// RegisterNew schedules a brand-new entity for insertion.
	RegisterNew(entity any)
	// RegisterDirty schedules an existing entity for update.
	RegisterDirty(entity any)
	// Commit applies every registered mutation atomically. Either all of
	// them become visible or none do.
	Commit(ctx context.Context) error
}

// UnitOfWorkFactory creates a fresh UnitOfWork per engine call
type UnitOfWorkFactory interface {
	New() UnitOfWork
}
