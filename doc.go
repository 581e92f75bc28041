// Package memo is the composition root for the memo sticky-notes backend.
//
// It connects the note service (pkg/core) with the file storage
// (pkg/adapters/fs) and exposes the functional options used to configure
// them.
//
// Writes are coalesced: create and update change the in-memory store and
// arm a single deferred flush that fires after the debounce window and
// writes whatever the store holds at that moment. Delete, tray creation and
// quit write immediately.
//
// Usage:
//
//	svc, err := memo.New(ctx, "",
//		memo.WithLogger(logger),
//		memo.WithWatch(true),
//	)
//
//	n, err := svc.Create(ctx, memo.Note{ID: "a1", Title: "Groceries"})
//	defer svc.Quit(ctx)
package memo
