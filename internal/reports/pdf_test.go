package reports

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/campus-hub/registrar-service/internal/models"
	"github.com/campus-hub/registrar-service/internal/repositories"
	"github.com/campus-hub/registrar-service/internal/services"
)

func TestWriteTranscript(t *testing.T) {
	data := &services.TranscriptResponse{
		Student: &models.Student{Matricule: "ETUDUAL", LastName: "Durand", FirstName: "Alice"},
		Rows: []repositories.TranscriptRow{
			{ModuleCode: "MATH101", ModuleName: "Analyse", Coefficient: 3, Value: 12.5, AcademicYear: "2025-2026", EvalType: "examen"},
			{ModuleCode: "PHYS101", ModuleName: "Mécanique", Coefficient: 2, Value: 9},
		},
		Average: services.AverageResponse{Average: 11.1, TotalWeight: 5, GradeCount: 2, Defined: true},
	}

	path := filepath.Join(t.TempDir(), "releve.pdf")
	if err := WriteTranscript(data, path); err != nil {
		t.Fatalf("WriteTranscript: %v", err)
	}
	assertPDF(t, path)
}

func TestWriteTranscriptNoAverage(t *testing.T) {
	data := &services.TranscriptResponse{
		Student: &models.Student{Matricule: "ETUMAPA", LastName: "Martin", FirstName: "Paul"},
	}

	path := filepath.Join(t.TempDir(), "releve.pdf")
	if err := WriteTranscript(data, path); err != nil {
		t.Fatalf("WriteTranscript: %v", err)
	}
	assertPDF(t, path)
}

func TestWriteTranscriptManyRows(t *testing.T) {
	rows := make([]repositories.TranscriptRow, 80)
	for i := range rows {
		rows[i] = repositories.TranscriptRow{
			ModuleCode: "MOD", ModuleName: "Module", Coefficient: 1, Value: 10,
		}
	}
	data := &services.TranscriptResponse{
		Student: &models.Student{Matricule: "ETUDUAL", LastName: "Durand", FirstName: "Alice"},
		Rows:    rows,
		Average: services.AverageResponse{Average: 10, TotalWeight: 80, GradeCount: 80, Defined: true},
	}

	// The table must flow over a page break without error.
	path := filepath.Join(t.TempDir(), "releve.pdf")
	if err := WriteTranscript(data, path); err != nil {
		t.Fatalf("WriteTranscript: %v", err)
	}
	assertPDF(t, path)
}

func TestWriteAttestation(t *testing.T) {
	data := &services.AttestationResponse{
		Matricule:    "ETUDUAL",
		LastName:     "Durand",
		FirstName:    "Alice",
		AcademicYear: "2025-2026",
		TrackCode:    "INFO",
		TrackName:    "Informatique",
		LevelCode:    "L1",
		LevelName:    "Licence 1",
		Status:       "enrolled",
	}

	path := filepath.Join(t.TempDir(), "attestation.pdf")
	if err := WriteAttestation(data, path); err != nil {
		t.Fatalf("WriteAttestation: %v", err)
	}
	assertPDF(t, path)
}

func assertPDF(t *testing.T, path string) {
	t.Helper()
	payload, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(payload) < 4 || string(payload[:4]) != "%PDF" {
		t.Errorf("file at %s is not a pdf", path)
	}
}
