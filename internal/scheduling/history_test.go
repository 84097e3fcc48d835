package scheduling_test

import (
	"context"
	"testing"

	"clinic-management-api/internal/model"
	"clinic-management-api/internal/scheduling"
)

func historySetup(t *testing.T) (*scheduling.HistoryFilter, *scheduling.Service, *memStore) {
	t.Helper()
	svc, st := setup(t)
	return scheduling.NewHistoryFilter(st), svc, st
}

func TestHistoryUnfiltered(t *testing.T) {
	hf, svc, _ := historySetup(t)

	svc.Book(context.Background(), "doc-1", "pat-1", at(9))
	svc.Book(context.Background(), "doc-2", "pat-1", at(14))
	svc.Book(context.Background(), "doc-1", "pat-2", at(10))

	views, err := hf.Filter(context.Background(), "pat-1", "", "")
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(views))
	}
	// rows are flattened, not linked entities
	if views[0].DoctorName == "" || views[0].PatientName != "Alice Smith" {
		t.Errorf("view not flattened: %+v", views[0])
	}
}

func TestHistoryCondition(t *testing.T) {
	hf, svc, _ := historySetup(t)

	id1, _ := svc.Book(context.Background(), "doc-1", "pat-1", at(9))
	svc.Book(context.Background(), "doc-1", "pat-1", at(11))
	svc.ChangeStatus(context.Background(), id1, model.StatusCompleted)

	past, err := hf.Filter(context.Background(), "pat-1", "past", "")
	if err != nil {
		t.Fatalf("past: %v", err)
	}
	if len(past) != 1 || past[0].ID != id1 {
		t.Errorf("past should contain only completed appointment, got %d", len(past))
	}

	future, err := hf.Filter(context.Background(), "pat-1", "future", "")
	if err != nil {
		t.Fatalf("future: %v", err)
	}
	if len(future) != 1 || future[0].Status != model.StatusScheduled {
		t.Errorf("future should contain only scheduled appointment, got %d", len(future))
	}
}

func TestHistoryConditionCaseInsensitive(t *testing.T) {
	hf, svc, _ := historySetup(t)

	id, _ := svc.Book(context.Background(), "doc-1", "pat-1", at(9))
	svc.ChangeStatus(context.Background(), id, model.StatusCompleted)

	views, err := hf.Filter(context.Background(), "pat-1", "PAST", "")
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(views) != 1 {
		t.Errorf("condition should be case-insensitive, got %d rows", len(views))
	}
}

// Unrecognized conditions fail closed: empty result, no error.
func TestHistoryUnknownCondition(t *testing.T) {
	hf, svc, _ := historySetup(t)

	svc.Book(context.Background(), "doc-1", "pat-1", at(9))

	for _, cond := range []string{"yesterday", "tomorrow", "all"} {
		views, err := hf.Filter(context.Background(), "pat-1", cond, "")
		if err != nil {
			t.Fatalf("filter %q: %v", cond, err)
		}
		if len(views) != 0 {
			t.Errorf("condition %q should yield empty result, got %d", cond, len(views))
		}
	}

	// unknown condition combined with doctor name is also empty
	views, err := hf.Filter(context.Background(), "pat-1", "yesterday", "House")
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(views) != 0 {
		t.Errorf("expected empty result, got %d", len(views))
	}
}

func TestHistoryDoctorName(t *testing.T) {
	hf, svc, _ := historySetup(t)

	svc.Book(context.Background(), "doc-1", "pat-1", at(9))  // Dr. House
	svc.Book(context.Background(), "doc-2", "pat-1", at(14)) // Dr. Wilson

	views, err := hf.Filter(context.Background(), "pat-1", "", "house")
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(views) != 1 || views[0].DoctorName != "Dr. House" {
		t.Errorf("expected only Dr. House rows, got %d", len(views))
	}
}

func TestHistoryDoctorNameAndCondition(t *testing.T) {
	hf, svc, _ := historySetup(t)

	id1, _ := svc.Book(context.Background(), "doc-1", "pat-1", at(9))
	svc.Book(context.Background(), "doc-1", "pat-1", at(11))
	svc.Book(context.Background(), "doc-2", "pat-1", at(14))
	svc.ChangeStatus(context.Background(), id1, model.StatusCompleted)

	views, err := hf.Filter(context.Background(), "pat-1", "past", "house")
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(views) != 1 || views[0].ID != id1 {
		t.Errorf("expected the completed Dr. House appointment only, got %d", len(views))
	}
}

// The prescription flow drives this: complete then query past/future.
func TestHistoryCompleteThenFilter(t *testing.T) {
	hf, svc, _ := historySetup(t)

	id, _ := svc.Book(context.Background(), "doc-1", "pat-1", at(9))
	if ok, _ := svc.ChangeStatus(context.Background(), id, model.StatusCompleted); !ok {
		t.Fatal("change status not applied")
	}

	past, _ := hf.Filter(context.Background(), "pat-1", "past", "")
	if len(past) != 1 || past[0].ID != id {
		t.Fatalf("past should be [%s], got %d rows", id, len(past))
	}
	future, _ := hf.Filter(context.Background(), "pat-1", "future", "")
	if len(future) != 0 {
		t.Errorf("future should be empty, got %d", len(future))
	}
}
