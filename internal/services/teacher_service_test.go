package services

import (
	"context"
	"testing"
)

func TestAssignTeacher(t *testing.T) {
	sm, _ := newTestManager(t)
	ctx := context.Background()

	teacher, err := sm.Teachers().Create(ctx, &TeacherCreateRequest{LastName: "Bernard", FirstName: "Marc"})
	if err != nil {
		t.Fatalf("Create teacher: %v", err)
	}
	module := mustCreateModule(t, sm, "MATH101", 2)

	year := "2025-2026"
	req := &AssignmentCreateRequest{TeacherID: teacher.ID, ModuleID: module.ID, AcademicYear: &year}
	if _, err := sm.Teachers().Assign(ctx, req); err != nil {
		t.Fatalf("Assign: %v", err)
	}

	// The same triple is a conflict.
	if _, err := sm.Teachers().Assign(ctx, req); !IsConflictError(err) {
		t.Errorf("repeated Assign = %v, want conflict", err)
	}

	// A different year is a fresh assignment.
	otherYear := "2026-2027"
	if _, err := sm.Teachers().Assign(ctx, &AssignmentCreateRequest{
		TeacherID:    teacher.ID,
		ModuleID:     module.ID,
		AcademicYear: &otherYear,
	}); err != nil {
		t.Errorf("Assign other year: %v", err)
	}

	assignments, err := sm.Teachers().ListTeacherAssignments(ctx, teacher.ID)
	if err != nil {
		t.Fatalf("ListTeacherAssignments: %v", err)
	}
	if len(assignments) != 2 {
		t.Errorf("got %d assignments, want 2", len(assignments))
	}
}

func TestAssignUnknownTeacher(t *testing.T) {
	sm, _ := newTestManager(t)

	module := mustCreateModule(t, sm, "MATH101", 2)
	_, err := sm.Teachers().Assign(context.Background(), &AssignmentCreateRequest{
		TeacherID: 9999,
		ModuleID:  module.ID,
	})
	if err != ErrTeacherNotFound {
		t.Errorf("Assign error = %v, want ErrTeacherNotFound", err)
	}
}
