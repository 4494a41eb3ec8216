package services

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/campus-hub/registrar-service/internal/models"
	"github.com/campus-hub/registrar-service/internal/repositories"
)

func TestGradeAuditTrail(t *testing.T) {
	sm, _ := newTestManager(t)
	ctx := context.Background()

	student := mustCreateStudent(t, sm, "Durand", "Alice")
	module := mustCreateModule(t, sm, "MATH101", 2)

	grade := mustCreateGrade(t, sm, student.ID, module.ID, 12)

	newValue := 15.5
	if _, err := sm.Grades().Update(ctx, grade.ID, &GradeUpdateRequest{Value: &newValue}, "tester"); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := sm.Grades().Delete(ctx, grade.ID, "tester"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	records, err := sm.Grades().History(ctx, grade.ID)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d audit records, want 3", len(records))
	}

	wantActions := []models.AuditAction{models.AuditInsert, models.AuditUpdate, models.AuditDelete}
	for i, record := range records {
		if record.Action != wantActions[i] {
			t.Errorf("record %d action = %s, want %s", i, record.Action, wantActions[i])
		}
		if record.ChangedBy != "tester" {
			t.Errorf("record %d changed_by = %q, want tester", i, record.ChangedBy)
		}
	}

	// The update record carries both payloads.
	var oldSnap, newSnap models.GradeSnapshot
	if err := json.Unmarshal([]byte(*records[1].OldValue), &oldSnap); err != nil {
		t.Fatalf("unmarshal old snapshot: %v", err)
	}
	if err := json.Unmarshal([]byte(*records[1].NewValue), &newSnap); err != nil {
		t.Fatalf("unmarshal new snapshot: %v", err)
	}
	if oldSnap.Value != 12 || newSnap.Value != 15.5 {
		t.Errorf("update snapshot values = %v -> %v, want 12 -> 15.5", oldSnap.Value, newSnap.Value)
	}

	// The grade is gone but its trail remains, ending in DELETE.
	grades, _, err := sm.Grades().List(ctx, repositories.GradeFilters{StudentID: &student.ID})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(grades) != 0 {
		t.Errorf("got %d grades after delete, want 0", len(grades))
	}
}

func TestGradeCreateUnknownReferences(t *testing.T) {
	sm, _ := newTestManager(t)
	ctx := context.Background()

	student := mustCreateStudent(t, sm, "Durand", "Alice")
	module := mustCreateModule(t, sm, "MATH101", 2)
	value := 10.0

	tests := []struct {
		name      string
		studentID uint
		moduleID  uint
		wantErr   error
	}{
		{"unknown student", 9999, module.ID, ErrStudentNotFound},
		{"unknown module", student.ID, 9999, ErrModuleNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sm.Grades().Create(ctx, &GradeCreateRequest{
				StudentID: tt.studentID,
				ModuleID:  tt.moduleID,
				Value:     &value,
			}, "tester")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Create error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGradeValueValidation(t *testing.T) {
	sm, _ := newTestManager(t)
	ctx := context.Background()

	student := mustCreateStudent(t, sm, "Durand", "Alice")
	module := mustCreateModule(t, sm, "MATH101", 2)

	for _, value := range []float64{-0.5, 20.5} {
		v := value
		if _, err := sm.Grades().Create(ctx, &GradeCreateRequest{
			StudentID: student.ID,
			ModuleID:  module.ID,
			Value:     &v,
		}, "tester"); err == nil {
			t.Errorf("value %v accepted, want validation error", value)
		}
	}

	// Bounds are inclusive.
	for _, value := range []float64{0, 20} {
		v := value
		if _, err := sm.Grades().Create(ctx, &GradeCreateRequest{
			StudentID: student.ID,
			ModuleID:  module.ID,
			Value:     &v,
		}, "tester"); err != nil {
			t.Errorf("value %v rejected: %v", value, err)
		}
	}
}

func TestWeightedAverage(t *testing.T) {
	sm, _ := newTestManager(t)
	ctx := context.Background()

	student := mustCreateStudent(t, sm, "Durand", "Alice")
	math1 := mustCreateModule(t, sm, "MATH101", 3)
	phys1 := mustCreateModule(t, sm, "PHYS101", 1)

	mustCreateGrade(t, sm, student.ID, math1.ID, 10)
	mustCreateGrade(t, sm, student.ID, phys1.ID, 18)

	avg, err := sm.Grades().Average(ctx, student.ID)
	if err != nil {
		t.Fatalf("Average: %v", err)
	}
	if !avg.Defined {
		t.Fatal("average undefined, want defined")
	}
	want := (10*3 + 18*1) / 4.0
	if math.Abs(avg.Average-want) > 1e-9 {
		t.Errorf("average = %v, want %v", avg.Average, want)
	}
	if avg.GradeCount != 2 {
		t.Errorf("grade count = %d, want 2", avg.GradeCount)
	}
}

func TestAverageUndefined(t *testing.T) {
	sm, _ := newTestManager(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		setup func(t *testing.T) uint
	}{
		{
			name: "no grades",
			setup: func(t *testing.T) uint {
				return mustCreateStudent(t, sm, "Martin", "Paul").ID
			},
		},
		{
			name: "zero total weight",
			setup: func(t *testing.T) uint {
				student := mustCreateStudent(t, sm, "Petit", "Lea")
				module := mustCreateModule(t, sm, "OPT001", 0)
				mustCreateGrade(t, sm, student.ID, module.ID, 14)
				return student.ID
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			avg, err := sm.Grades().Average(ctx, tt.setup(t))
			if err != nil {
				t.Fatalf("Average: %v", err)
			}
			if avg.Defined {
				t.Errorf("average defined (%v), want undefined", avg.Average)
			}
		})
	}
}
