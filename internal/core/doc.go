// Package core implements the inventory mutation and reconciliation engine.
//
// It contains all domain logic independent of transport or storage: product
// CRUD, the stock-change audit trail, bulk CSV import reconciliation, and CSV
// export. The HTTP layer and the PostgreSQL store both depend on this
// package, never the other way around.
//
// # Persistence port
//
// All storage access goes through the [Store] interface. The production
// implementation lives in internal/store; tests substitute an in-memory
// fake. Implementations guarantee single-statement atomicity and a unique
// constraint on product name that surfaces as [*ConflictError].
//
// # Audit invariant
//
// Every product update that changes the stock value appends exactly one
// [HistoryRecord] through the [Recorder]; updates that leave stock untouched
// append nothing. The audit write is best-effort: it runs after the primary
// update, outside any transaction, and its failure is logged and swallowed
// so the user-visible update never fails due to logging trouble.
//
// # Import reconciliation
//
// [Service.ImportProducts] streams rows from a CSV reader and classifies
// each as accepted, duplicate, or invalid, accumulating an [ImportReport].
// Duplicate detection is an exact match on the whitespace-trimmed name,
// re-checked against the store per row so that within-batch duplicates are
// caught. Rows failing individually never abort the batch; only a transient
// store fault does, returning the partial report alongside the error.
//
// # Error handling
//
// Operational failures map onto a small taxonomy (validation, not-found,
// no-change, conflict, empty-dataset, transient) and [MapError] turns any of
// them into a sanitized user-facing message with a support code.
package core
