package core

import (
	"context"
	"testing"
	"time"
)

func TestRecorder_SetsTimestampAndActor(t *testing.T) {
	store := newMemStore()
	rec := NewRecorder(store)

	fixed := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	rec.now = func() time.Time { return fixed }

	entry, err := rec.Record(context.Background(), 7, 10, 4, "")
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if !entry.ChangeDate.Equal(fixed) {
		t.Errorf("ChangeDate = %v, want %v", entry.ChangeDate, fixed)
	}
	if entry.UserInfo != DefaultActor {
		t.Errorf("UserInfo = %q, want %q", entry.UserInfo, DefaultActor)
	}
	if entry.ID == 0 {
		t.Error("expected assigned id")
	}
}

func TestRecorder_ExplicitActorKept(t *testing.T) {
	rec := NewRecorder(newMemStore())

	entry, err := rec.Record(context.Background(), 7, 1, 2, "jane@example.com")
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if entry.UserInfo != "jane@example.com" {
		t.Errorf("UserInfo = %q, want explicit actor", entry.UserInfo)
	}
}

func TestRecorder_HistoryNewestFirst(t *testing.T) {
	store := newMemStore()
	rec := NewRecorder(store)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	times := []time.Time{base, base.Add(2 * time.Hour), base.Add(time.Hour)}
	for i, ts := range times {
		ts := ts
		rec.now = func() time.Time { return ts }
		if _, err := rec.Record(context.Background(), 1, int64(i), int64(i+1), ""); err != nil {
			t.Fatalf("Record(%d) error = %v", i, err)
		}
	}

	records, err := rec.History(context.Background(), 1)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("length = %d, want 3", len(records))
	}
	for i := 1; i < len(records); i++ {
		if records[i].ChangeDate.After(records[i-1].ChangeDate) {
			t.Errorf("records not in descending change date order: %v before %v",
				records[i-1].ChangeDate, records[i].ChangeDate)
		}
	}
}

func TestRecorder_HistoryScopedToProduct(t *testing.T) {
	rec := NewRecorder(newMemStore())
	ctx := context.Background()

	if _, err := rec.Record(ctx, 1, 5, 6, ""); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if _, err := rec.Record(ctx, 2, 9, 8, ""); err != nil {
		t.Fatalf("Record: %v", err)
	}

	records, err := rec.History(ctx, 1)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("length = %d, want 1", len(records))
	}
	if records[0].ProductID != 1 {
		t.Errorf("ProductID = %d, want 1", records[0].ProductID)
	}
}
