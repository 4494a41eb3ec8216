package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/campus-hub/registrar-service/internal/repositories"
)

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

// NewExportService creates the spreadsheet and report-data service.
func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{
		repo:   repo,
		logger: logger,
	}
}

func (s *exportService) ExportStudentsXLSX(ctx context.Context, path string) error {
	students, _, err := s.repo.Student().List(ctx, repositories.StudentFilters{})
	if err != nil {
		return fmt.Errorf("failed to list students: %w", err)
	}

	header := []interface{}{"ID", "Matricule", "Nom", "Prénom", "Email", "Statut"}
	rows := make([][]interface{}, 0, len(students))
	for _, st := range students {
		rows = append(rows, []interface{}{
			st.ID, st.Matricule, st.LastName, st.FirstName, derefOr(st.Email, ""), st.Status,
		})
	}
	if err := s.writeSheet(path, "Etudiants", header, rows); err != nil {
		return err
	}

	s.logger.Info("Students exported", "path", path, "count", len(students))
	return nil
}

func (s *exportService) ExportGradesXLSX(ctx context.Context, path string) error {
	grades, _, err := s.repo.Grade().List(ctx, repositories.GradeFilters{})
	if err != nil {
		return fmt.Errorf("failed to list grades: %w", err)
	}

	header := []interface{}{"ID", "Matricule", "Etudiant", "Code module", "Module", "Note", "Coefficient", "Année", "Type"}
	rows := make([][]interface{}, 0, len(grades))
	for _, g := range grades {
		rows = append(rows, []interface{}{
			g.ID,
			g.Student.Matricule,
			g.Student.LastName + " " + g.Student.FirstName,
			g.Module.Code,
			g.Module.Name,
			g.Value,
			g.Module.Coefficient,
			derefOr(g.AcademicYear, ""),
			derefOr(g.EvalType, ""),
		})
	}
	if err := s.writeSheet(path, "Notes", header, rows); err != nil {
		return err
	}

	s.logger.Info("Grades exported", "path", path, "count", len(grades))
	return nil
}

func (s *exportService) ExportAbsencesXLSX(ctx context.Context, path string) error {
	absences, _, err := s.repo.Absence().List(ctx, repositories.AbsenceFilters{})
	if err != nil {
		return fmt.Errorf("failed to list absences: %w", err)
	}

	header := []interface{}{"ID", "Matricule", "Etudiant", "Code module", "Module", "Date", "Justifiée", "Motif"}
	rows := make([][]interface{}, 0, len(absences))
	for _, a := range absences {
		justified := "non"
		if a.Justified {
			justified = "oui"
		}
		rows = append(rows, []interface{}{
			a.ID,
			a.Student.Matricule,
			a.Student.LastName + " " + a.Student.FirstName,
			a.Module.Code,
			a.Module.Name,
			a.Date,
			justified,
			derefOr(a.Reason, ""),
		})
	}
	if err := s.writeSheet(path, "Absences", header, rows); err != nil {
		return err
	}

	s.logger.Info("Absences exported", "path", path, "count", len(absences))
	return nil
}

// Transcript gathers the grade lines and weighted average of one student.
func (s *exportService) Transcript(ctx context.Context, studentID uint) (*TranscriptResponse, error) {
	student, err := s.repo.Student().GetByID(ctx, studentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}

	rows, err := s.repo.Grade().TranscriptRows(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transcript rows: %w", err)
	}

	totals, err := s.repo.Grade().Totals(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate grades: %w", err)
	}
	average := AverageResponse{
		TotalWeight: totals.Weight,
		GradeCount:  totals.Count,
	}
	if totals.Count > 0 && totals.Weight > 0 {
		average.Defined = true
		average.Average = totals.Points / totals.Weight
	}

	return &TranscriptResponse{
		Student: student,
		Rows:    rows,
		Average: average,
	}, nil
}

// Attestation resolves the certificate fields from the student's most recent
// enrollment for the academic year.
func (s *exportService) Attestation(ctx context.Context, studentID uint, academicYear string) (*AttestationResponse, error) {
	student, err := s.repo.Student().GetByID(ctx, studentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}

	enrollment, err := s.repo.Enrollment().Latest(ctx, studentID, academicYear)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("failed to get enrollment: %w", err)
	}

	return &AttestationResponse{
		Matricule:    student.Matricule,
		LastName:     student.LastName,
		FirstName:    student.FirstName,
		AcademicYear: enrollment.AcademicYear,
		TrackCode:    enrollment.Track.Code,
		TrackName:    enrollment.Track.Name,
		LevelCode:    enrollment.Level.Code,
		LevelName:    enrollment.Level.Name,
		Status:       enrollment.Status,
	}, nil
}

func (s *exportService) writeSheet(path, sheet string, header []interface{}, rows [][]interface{}) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to resolve cell: %w", err)
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
