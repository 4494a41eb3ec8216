package services

import (
	"context"
	"testing"
)

func TestSemesterPeriods(t *testing.T) {
	sm, _ := newTestManager(t)
	ctx := context.Background()

	semester, err := sm.Calendar().CreateSemester(ctx, &SemesterCreateRequest{
		Code:      "S1",
		StartDate: "2025-09-01",
		EndDate:   "2026-01-31",
	})
	if err != nil {
		t.Fatalf("CreateSemester: %v", err)
	}

	for _, p := range []struct{ typ, start, end string }{
		{"cours", "2025-09-01", "2025-12-12"},
		{"examens", "2026-01-05", "2026-01-16"},
	} {
		if _, err := sm.Calendar().CreatePeriod(ctx, &PeriodCreateRequest{
			SemesterID: semester.ID,
			Type:       p.typ,
			StartDate:  p.start,
			EndDate:    p.end,
		}); err != nil {
			t.Fatalf("CreatePeriod %s: %v", p.typ, err)
		}
	}

	periods, err := sm.Calendar().ListPeriods(ctx, semester.ID)
	if err != nil {
		t.Fatalf("ListPeriods: %v", err)
	}
	if len(periods) != 2 {
		t.Fatalf("got %d periods, want 2", len(periods))
	}
	// Ordered by start date.
	if periods[0].Type != "cours" {
		t.Errorf("first period = %q, want cours", periods[0].Type)
	}

	// Deleting the semester removes its periods.
	if err := sm.Calendar().DeleteSemester(ctx, semester.ID); err != nil {
		t.Fatalf("DeleteSemester: %v", err)
	}
	periods, err = sm.Calendar().ListPeriods(ctx, semester.ID)
	if err != nil {
		t.Fatalf("ListPeriods: %v", err)
	}
	if len(periods) != 0 {
		t.Errorf("got %d periods after semester delete, want 0", len(periods))
	}
}

func TestCreatePeriodUnknownSemester(t *testing.T) {
	sm, _ := newTestManager(t)

	_, err := sm.Calendar().CreatePeriod(context.Background(), &PeriodCreateRequest{
		SemesterID: 9999,
		Type:       "cours",
		StartDate:  "2025-09-01",
		EndDate:    "2025-12-12",
	})
	if err != ErrSemesterNotFound {
		t.Errorf("CreatePeriod error = %v, want ErrSemesterNotFound", err)
	}
}
