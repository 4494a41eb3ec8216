package services

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestExportStudentsXLSX(t *testing.T) {
	sm, _ := newTestManager(t)
	ctx := context.Background()

	student := mustCreateStudent(t, sm, "Durand", "Alice")

	path := filepath.Join(t.TempDir(), "etudiants.xlsx")
	if err := sm.Exports().ExportStudentsXLSX(ctx, path); err != nil {
		t.Fatalf("ExportStudentsXLSX: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Etudiants")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0][1] != "Matricule" {
		t.Errorf("header cell = %q, want Matricule", rows[0][1])
	}
	if rows[1][1] != student.Matricule {
		t.Errorf("row matricule = %q, want %q", rows[1][1], student.Matricule)
	}
}

func TestExportGradesXLSX(t *testing.T) {
	sm, _ := newTestManager(t)
	ctx := context.Background()

	student := mustCreateStudent(t, sm, "Durand", "Alice")
	module := mustCreateModule(t, sm, "MATH101", 2)
	mustCreateGrade(t, sm, student.ID, module.ID, 14.5)

	path := filepath.Join(t.TempDir(), "notes.xlsx")
	if err := sm.Exports().ExportGradesXLSX(ctx, path); err != nil {
		t.Fatalf("ExportGradesXLSX: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Notes")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[1][3] != "MATH101" {
		t.Errorf("module code cell = %q, want MATH101", rows[1][3])
	}
}

func TestTranscript(t *testing.T) {
	sm, _ := newTestManager(t)
	ctx := context.Background()

	student := mustCreateStudent(t, sm, "Durand", "Alice")
	math1 := mustCreateModule(t, sm, "MATH101", 3)
	phys1 := mustCreateModule(t, sm, "PHYS101", 1)
	mustCreateGrade(t, sm, student.ID, math1.ID, 10)
	mustCreateGrade(t, sm, student.ID, phys1.ID, 18)

	data, err := sm.Exports().Transcript(ctx, student.ID)
	if err != nil {
		t.Fatalf("Transcript: %v", err)
	}
	if len(data.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(data.Rows))
	}
	if data.Rows[0].ModuleCode != "MATH101" {
		t.Errorf("first row module = %q, want MATH101", data.Rows[0].ModuleCode)
	}
	if !data.Average.Defined {
		t.Fatal("average undefined, want defined")
	}
	if math.Abs(data.Average.Average-12) > 1e-9 {
		t.Errorf("average = %v, want 12", data.Average.Average)
	}
}

func TestAttestation(t *testing.T) {
	sm, _ := newTestManager(t)
	ctx := context.Background()

	student := mustCreateStudent(t, sm, "Durand", "Alice")
	track, _ := sm.Academics().CreateTrack(ctx, &TrackCreateRequest{Code: "INFO", Name: "Informatique"})
	level, _ := sm.Academics().CreateLevel(ctx, &LevelCreateRequest{Code: "L1", Name: "Licence 1"})

	if _, err := sm.Exports().Attestation(ctx, student.ID, "2025-2026"); !errors.Is(err, ErrEnrollmentNotFound) {
		t.Errorf("Attestation without enrollment = %v, want ErrEnrollmentNotFound", err)
	}

	if _, err := sm.Academics().CreateEnrollment(ctx, &EnrollmentCreateRequest{
		StudentID:    student.ID,
		TrackID:      track.ID,
		LevelID:      level.ID,
		AcademicYear: "2025-2026",
	}); err != nil {
		t.Fatalf("CreateEnrollment: %v", err)
	}

	data, err := sm.Exports().Attestation(ctx, student.ID, "2025-2026")
	if err != nil {
		t.Fatalf("Attestation: %v", err)
	}
	if data.TrackCode != "INFO" || data.LevelCode != "L1" {
		t.Errorf("attestation = %+v, want INFO/L1", data)
	}
	if data.AcademicYear != "2025-2026" {
		t.Errorf("academic year = %q, want 2025-2026", data.AcademicYear)
	}
}

func TestExportCreatesFile(t *testing.T) {
	sm, _ := newTestManager(t)

	path := filepath.Join(t.TempDir(), "absences.xlsx")
	if err := sm.Exports().ExportAbsencesXLSX(context.Background(), path); err != nil {
		t.Fatalf("ExportAbsencesXLSX: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Size() == 0 {
		t.Error("empty workbook file")
	}
}
