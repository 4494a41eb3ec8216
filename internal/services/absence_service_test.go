package services

import (
	"context"
	"testing"
)

func TestAbsenceStats(t *testing.T) {
	sm, _ := newTestManager(t)
	ctx := context.Background()

	stats, err := sm.Absences().Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Rate != 0 {
		t.Errorf("rate on empty registry = %v, want 0", stats.Rate)
	}

	alice := mustCreateStudent(t, sm, "Durand", "Alice")
	paul := mustCreateStudent(t, sm, "Martin", "Paul")
	module := mustCreateModule(t, sm, "MATH101", 2)

	for i := 0; i < 3; i++ {
		if _, err := sm.Absences().Record(ctx, &AbsenceCreateRequest{
			StudentID: alice.ID,
			ModuleID:  module.ID,
			Date:      "2026-03-10",
		}); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	if _, err := sm.Absences().Record(ctx, &AbsenceCreateRequest{
		StudentID: paul.ID,
		ModuleID:  module.ID,
		Date:      "2026-03-11",
		Justified: true,
		Reason:    strPtr("certificat médical"),
	}); err != nil {
		t.Fatalf("Record: %v", err)
	}

	stats, err = sm.Absences().Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalAbsences != 4 {
		t.Errorf("total absences = %d, want 4", stats.TotalAbsences)
	}
	if stats.TotalStudents != 2 {
		t.Errorf("total students = %d, want 2", stats.TotalStudents)
	}
	if stats.Rate != 2 {
		t.Errorf("rate = %v, want 2", stats.Rate)
	}
}

func TestAbsenceAlerts(t *testing.T) {
	sm, _ := newTestManager(t)
	ctx := context.Background()

	alice := mustCreateStudent(t, sm, "Durand", "Alice")
	paul := mustCreateStudent(t, sm, "Martin", "Paul")
	lea := mustCreateStudent(t, sm, "Petit", "Lea")
	module := mustCreateModule(t, sm, "MATH101", 2)

	record := func(studentID uint, n int) {
		for i := 0; i < n; i++ {
			if _, err := sm.Absences().Record(ctx, &AbsenceCreateRequest{
				StudentID: studentID,
				ModuleID:  module.ID,
				Date:      "2026-03-10",
			}); err != nil {
				t.Fatalf("Record: %v", err)
			}
		}
	}
	record(alice.ID, 4)
	record(paul.ID, 2)
	record(lea.ID, 1)

	alerts, err := sm.Absences().Alerts(ctx, 2)
	if err != nil {
		t.Fatalf("Alerts: %v", err)
	}
	if len(alerts) != 2 {
		t.Fatalf("got %d alerts, want 2", len(alerts))
	}
	// Most absent first.
	if alerts[0].StudentID != alice.ID || alerts[0].Count != 4 {
		t.Errorf("first alert = %+v, want alice with 4", alerts[0])
	}
	if alerts[1].StudentID != paul.ID || alerts[1].Count != 2 {
		t.Errorf("second alert = %+v, want paul with 2", alerts[1])
	}
}

func TestRecordAbsenceUnknownStudent(t *testing.T) {
	sm, _ := newTestManager(t)

	module := mustCreateModule(t, sm, "MATH101", 2)
	_, err := sm.Absences().Record(context.Background(), &AbsenceCreateRequest{
		StudentID: 9999,
		ModuleID:  module.ID,
		Date:      "2026-03-10",
	})
	if err != ErrStudentNotFound {
		t.Errorf("Record error = %v, want ErrStudentNotFound", err)
	}
}
