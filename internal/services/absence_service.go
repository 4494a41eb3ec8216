package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/campus-hub/registrar-service/internal/models"
	"github.com/campus-hub/registrar-service/internal/repositories"
	"github.com/campus-hub/registrar-service/internal/validator"
)

// DefaultAbsenceAlertThreshold is the absence count at which a student
// surfaces in the alert list.
const DefaultAbsenceAlertThreshold = 5

type absenceService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

// NewAbsenceService creates the absence tracking service.
func NewAbsenceService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator) AbsenceService {
	return &absenceService{
		repo:      repo,
		logger:    logger,
		validator: v,
	}
}

func (s *absenceService) Record(ctx context.Context, req *AbsenceCreateRequest) (*models.Absence, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	if _, err := s.repo.Student().GetByID(ctx, req.StudentID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	if _, err := s.repo.Module().GetByID(ctx, req.ModuleID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrModuleNotFound
		}
		return nil, fmt.Errorf("failed to get module: %w", err)
	}

	absence := &models.Absence{
		StudentID: req.StudentID,
		ModuleID:  req.ModuleID,
		Date:      req.Date,
		Justified: req.Justified,
		Reason:    req.Reason,
	}
	if err := s.repo.Absence().Create(ctx, absence); err != nil {
		return nil, fmt.Errorf("failed to record absence: %w", err)
	}

	s.logger.Info("Absence recorded",
		"absence_id", absence.ID,
		"student_id", absence.StudentID,
		"module_id", absence.ModuleID,
		"date", absence.Date)

	return absence, nil
}

func (s *absenceService) List(ctx context.Context, filters repositories.AbsenceFilters) ([]*models.Absence, int64, error) {
	absences, total, err := s.repo.Absence().List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list absences: %w", err)
	}
	return absences, total, nil
}

func (s *absenceService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Absence().Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrAbsenceNotFound
		}
		return fmt.Errorf("failed to delete absence: %w", err)
	}

	s.logger.Info("Absence deleted", "absence_id", id)
	return nil
}

// Stats reports the global absence rate: total absences over total students,
// 0 when the registry is empty.
func (s *absenceService) Stats(ctx context.Context) (*AbsenceStatsResponse, error) {
	absences, err := s.repo.Absence().Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count absences: %w", err)
	}
	students, err := s.repo.Student().Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count students: %w", err)
	}

	resp := &AbsenceStatsResponse{
		TotalAbsences: absences,
		TotalStudents: students,
	}
	if students > 0 {
		resp.Rate = float64(absences) / float64(students)
	}
	return resp, nil
}

func (s *absenceService) Alerts(ctx context.Context, threshold int64) ([]repositories.AbsenceTally, error) {
	if threshold <= 0 {
		threshold = DefaultAbsenceAlertThreshold
	}
	tallies, err := s.repo.Absence().Tallies(ctx, threshold, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to tally absences: %w", err)
	}
	return tallies, nil
}
