package core

import (
	"context"
	"log/slog"
	"time"
)

// Recorder appends immutable stock-change records to the audit trail.
//
// It is purely additive: no read-modify-write, no updates, no deletes.
// Recording is best-effort by contract — callers must treat a failure as
// non-fatal and only log it, so audit trouble never fails a user-visible
// operation.
type Recorder struct {
	store Store
	now   func() time.Time
}

// NewRecorder creates a Recorder backed by the given store.
func NewRecorder(store Store) *Recorder {
	return &Recorder{store: store, now: time.Now}
}

// Record appends one history record for a stock transition on productID.
// The change date is set here, never by the caller. An empty actor falls
// back to DefaultActor.
func (r *Recorder) Record(ctx context.Context, productID, oldQty, newQty int64, actor string) (*HistoryRecord, error) {
	if actor == "" {
		actor = DefaultActor
	}

	rec := &HistoryRecord{
		ProductID:   productID,
		OldQuantity: oldQty,
		NewQuantity: newQty,
		ChangeDate:  r.now().UTC(),
		UserInfo:    actor,
	}

	id, err := r.store.AppendHistory(ctx, rec)
	if err != nil {
		return nil, err
	}
	rec.ID = id

	slog.Debug("stock change recorded",
		"product_id", productID,
		"old_quantity", oldQty,
		"new_quantity", newQty,
		"actor", actor,
	)

	return rec, nil
}

// History returns all records for a product, newest first. A product with no
// history, or an id that never existed, yields an empty slice and no error.
func (r *Recorder) History(ctx context.Context, productID int64) ([]HistoryRecord, error) {
	records, err := r.store.ListHistory(ctx, productID)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []HistoryRecord{}
	}
	return records, nil
}
