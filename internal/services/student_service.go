package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/campus-hub/registrar-service/internal/models"
	"github.com/campus-hub/registrar-service/internal/repositories"
	"github.com/campus-hub/registrar-service/internal/validator"
)

// matriculePrefix starts every derived enrollment number.
const matriculePrefix = "ETU"

type studentService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

// NewStudentService creates a student service with its dependencies.
func NewStudentService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator) StudentService {
	return &studentService{
		repo:      repo,
		logger:    logger,
		validator: v,
	}
}

func (s *studentService) Create(ctx context.Context, req *StudentCreateRequest) (*models.Student, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	matricule, err := s.GenerateMatricule(ctx, req.LastName, req.FirstName)
	if err != nil {
		return nil, fmt.Errorf("failed to generate matricule: %w", err)
	}

	student := &models.Student{
		Matricule: matricule,
		LastName:  strings.TrimSpace(req.LastName),
		FirstName: strings.TrimSpace(req.FirstName),
		Email:     normalizeEmail(req.Email),
		Status:    models.StudentStatusActive,
	}

	if err := s.repo.Student().Create(ctx, student); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, NewConflictError("student", "email", derefOr(student.Email, ""))
		}
		return nil, fmt.Errorf("failed to create student: %w", err)
	}

	s.logger.Info("Student created",
		"student_id", student.ID,
		"matricule", student.Matricule)

	return student, nil
}

func (s *studentService) GetByID(ctx context.Context, id uint) (*models.Student, error) {
	student, err := s.repo.Student().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	return student, nil
}

func (s *studentService) GetByMatricule(ctx context.Context, matricule string) (*models.Student, error) {
	student, err := s.repo.Student().GetByMatricule(ctx, matricule)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	return student, nil
}

func (s *studentService) List(ctx context.Context, filters repositories.StudentFilters) ([]*models.Student, int64, error) {
	students, total, err := s.repo.Student().List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list students: %w", err)
	}
	return students, total, nil
}

// Delete removes the student together with their enrollments, grades and
// absences. Audit records of the removed grades stay behind.
func (s *studentService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Student().Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrStudentNotFound
		}
		return fmt.Errorf("failed to delete student: %w", err)
	}

	s.logger.Info("Student deleted", "student_id", id)
	return nil
}

// GenerateMatricule derives the enrollment number from the name parts:
// prefix plus the first two letters of each, uppercased, with a numeric
// suffix appended until the result is free.
func (s *studentService) GenerateMatricule(ctx context.Context, lastName, firstName string) (string, error) {
	base := matriculePrefix + namePart(lastName) + namePart(firstName)

	candidate := base
	for suffix := 2; ; suffix++ {
		taken, err := s.repo.Student().ExistsByMatricule(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check matricule: %w", err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s%d", base, suffix)
	}
}

// ImportCSV loads students from a CSV stream with nom, prenom and optional
// email columns. Malformed rows and duplicates are skipped, never fatal.
func (s *studentService) ImportCSV(ctx context.Context, r io.Reader) (*ImportReport, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	lastIdx, firstIdx, emailIdx := -1, -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "nom", "last_name":
			lastIdx = i
		case "prenom", "prénom", "first_name":
			firstIdx = i
		case "email":
			emailIdx = i
		}
	}
	if lastIdx < 0 || firstIdx < 0 {
		return nil, fmt.Errorf("csv header must contain nom and prenom columns")
	}

	report := &ImportReport{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			report.Skipped++
			continue
		}
		if lastIdx >= len(record) || firstIdx >= len(record) {
			report.Skipped++
			continue
		}

		req := &StudentCreateRequest{
			LastName:  strings.TrimSpace(record[lastIdx]),
			FirstName: strings.TrimSpace(record[firstIdx]),
		}
		if emailIdx >= 0 && emailIdx < len(record) {
			if email := strings.TrimSpace(record[emailIdx]); email != "" {
				req.Email = &email
			}
		}

		if _, err := s.Create(ctx, req); err != nil {
			s.logger.Warn("Skipping csv row", "error", err)
			report.Skipped++
			continue
		}
		report.Imported++
	}

	s.logger.Info("Student import finished",
		"imported", report.Imported,
		"skipped", report.Skipped)

	return report, nil
}

// ExportCSV writes every student as CSV, newest first.
func (s *studentService) ExportCSV(ctx context.Context, w io.Writer) error {
	students, _, err := s.repo.Student().List(ctx, repositories.StudentFilters{})
	if err != nil {
		return fmt.Errorf("failed to list students: %w", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"id", "matricule", "nom", "prenom", "email", "statut"}); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, st := range students {
		row := []string{
			fmt.Sprintf("%d", st.ID),
			st.Matricule,
			st.LastName,
			st.FirstName,
			derefOr(st.Email, ""),
			st.Status,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// namePart takes the first two runes of a name, uppercased. Shorter names
// contribute what they have.
func namePart(name string) string {
	runes := []rune(strings.ToUpper(strings.TrimSpace(name)))
	if len(runes) > 2 {
		runes = runes[:2]
	}
	return string(runes)
}

func normalizeEmail(email *string) *string {
	if email == nil {
		return nil
	}
	trimmed := strings.ToLower(strings.TrimSpace(*email))
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
