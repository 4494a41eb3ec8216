package services

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/campus-hub/registrar-service/internal/repositories"
)

func TestGenerateMatricule(t *testing.T) {
	sm, _ := newTestManager(t)

	first := mustCreateStudent(t, sm, "Durand", "Alice")
	if first.Matricule != "ETUDUAL" {
		t.Errorf("matricule = %q, want ETUDUAL", first.Matricule)
	}

	// Same name parts take the next numeric suffix, starting at 2.
	second := mustCreateStudent(t, sm, "Dupont", "Alain")
	if second.Matricule != "ETUDUAL2" {
		t.Errorf("matricule = %q, want ETUDUAL2", second.Matricule)
	}
	third := mustCreateStudent(t, sm, "Dupré", "Aline")
	if third.Matricule != "ETUDUAL3" {
		t.Errorf("matricule = %q, want ETUDUAL3", third.Matricule)
	}
}

func TestCreateStudentValidation(t *testing.T) {
	sm, _ := newTestManager(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  *StudentCreateRequest
	}{
		{"blank last name", &StudentCreateRequest{LastName: "  ", FirstName: "Alice"}},
		{"missing first name", &StudentCreateRequest{LastName: "Durand"}},
		{"bad email", &StudentCreateRequest{LastName: "Durand", FirstName: "Alice", Email: strPtr("not-an-email")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := sm.Students().Create(ctx, tt.req); err == nil {
				t.Error("Create succeeded, want validation error")
			}
		})
	}
}

func TestStudentDeleteCascades(t *testing.T) {
	sm, repo := newTestManager(t)
	ctx := context.Background()

	student := mustCreateStudent(t, sm, "Durand", "Alice")
	module := mustCreateModule(t, sm, "MATH101", 2)
	grade := mustCreateGrade(t, sm, student.ID, module.ID, 12)

	if _, err := sm.Absences().Record(ctx, &AbsenceCreateRequest{
		StudentID: student.ID,
		ModuleID:  module.ID,
		Date:      "2026-03-10",
	}); err != nil {
		t.Fatalf("Record absence: %v", err)
	}

	if err := sm.Students().Delete(ctx, student.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := sm.Students().GetByID(ctx, student.ID); !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("GetByID error = %v, want ErrStudentNotFound", err)
	}
	grades, _, err := sm.Grades().List(ctx, repositories.GradeFilters{StudentID: &student.ID})
	if err != nil {
		t.Fatalf("List grades: %v", err)
	}
	if len(grades) != 0 {
		t.Errorf("got %d grades after cascade, want 0", len(grades))
	}
	absences, _, err := sm.Absences().List(ctx, repositories.AbsenceFilters{StudentID: &student.ID})
	if err != nil {
		t.Fatalf("List absences: %v", err)
	}
	if len(absences) != 0 {
		t.Errorf("got %d absences after cascade, want 0", len(absences))
	}

	// The audit trail of the cascaded grade stays readable.
	records, err := repo.GradeAudit().ListByGrade(ctx, grade.ID)
	if err != nil {
		t.Fatalf("ListByGrade: %v", err)
	}
	if len(records) == 0 {
		t.Error("audit trail vanished with the student")
	}
}

func TestImportCSV(t *testing.T) {
	sm, _ := newTestManager(t)
	ctx := context.Background()

	csv := strings.Join([]string{
		"Nom,Prénom,Email",
		"Durand,Alice,alice@example.org",
		",Paul,paul@example.org",
		"Martin,Paul,",
		"Durand,Alice,alice@example.org",
	}, "\n")

	report, err := sm.Students().ImportCSV(ctx, strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ImportCSV: %v", err)
	}
	// Blank nom and the duplicate email are skipped, never fatal.
	if report.Imported != 2 {
		t.Errorf("imported = %d, want 2", report.Imported)
	}
	if report.Skipped != 2 {
		t.Errorf("skipped = %d, want 2", report.Skipped)
	}

	_, total, err := sm.Students().List(ctx, repositories.StudentFilters{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 2 {
		t.Errorf("total students = %d, want 2", total)
	}
}

func TestImportCSVMissingColumns(t *testing.T) {
	sm, _ := newTestManager(t)

	if _, err := sm.Students().ImportCSV(context.Background(), strings.NewReader("email\nalice@example.org")); err == nil {
		t.Error("ImportCSV succeeded without name columns")
	}
}

func TestExportCSV(t *testing.T) {
	sm, _ := newTestManager(t)
	ctx := context.Background()

	student := mustCreateStudent(t, sm, "Durand", "Alice")

	var buf bytes.Buffer
	if err := sm.Students().ExportCSV(ctx, &buf); err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !strings.HasPrefix(lines[0], "id,matricule") {
		t.Errorf("unexpected header %q", lines[0])
	}
	if !strings.Contains(lines[1], student.Matricule) {
		t.Errorf("row %q missing matricule %s", lines[1], student.Matricule)
	}
}

func strPtr(s string) *string { return &s }
