package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/campus-hub/registrar-service/internal/models"
	"github.com/campus-hub/registrar-service/internal/repositories"
	"github.com/campus-hub/registrar-service/internal/validator"
)

type calendarService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

// NewCalendarService creates the semester and period service. Period dates
// are stored as given; no overlap or containment check is made.
func NewCalendarService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator) CalendarService {
	return &calendarService{
		repo:      repo,
		logger:    logger,
		validator: v,
	}
}

func (s *calendarService) CreateSemester(ctx context.Context, req *SemesterCreateRequest) (*models.Semester, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	semester := &models.Semester{
		Code:      strings.TrimSpace(req.Code),
		Label:     req.Label,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	if err := s.repo.Semester().Create(ctx, semester); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, NewConflictError("semester", "code", semester.Code)
		}
		return nil, fmt.Errorf("failed to create semester: %w", err)
	}

	s.logger.Info("Semester created", "semester_id", semester.ID, "code", semester.Code)
	return semester, nil
}

func (s *calendarService) ListSemesters(ctx context.Context) ([]*models.Semester, error) {
	semesters, err := s.repo.Semester().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list semesters: %w", err)
	}
	return semesters, nil
}

// DeleteSemester removes the semester and its periods.
func (s *calendarService) DeleteSemester(ctx context.Context, id uint) error {
	if err := s.repo.Semester().Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrSemesterNotFound
		}
		return fmt.Errorf("failed to delete semester: %w", err)
	}

	s.logger.Info("Semester deleted", "semester_id", id)
	return nil
}

func (s *calendarService) CreatePeriod(ctx context.Context, req *PeriodCreateRequest) (*models.Period, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	if _, err := s.repo.Semester().GetByID(ctx, req.SemesterID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSemesterNotFound
		}
		return nil, fmt.Errorf("failed to get semester: %w", err)
	}

	period := &models.Period{
		SemesterID: req.SemesterID,
		Type:       strings.TrimSpace(req.Type),
		Label:      req.Label,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	}
	if err := s.repo.Period().Create(ctx, period); err != nil {
		return nil, fmt.Errorf("failed to create period: %w", err)
	}

	s.logger.Info("Period created",
		"period_id", period.ID,
		"semester_id", period.SemesterID,
		"type", period.Type)

	return period, nil
}

// ListPeriods returns all periods, or the periods of one semester when
// semesterID is non-zero.
func (s *calendarService) ListPeriods(ctx context.Context, semesterID uint) ([]*models.Period, error) {
	var (
		periods []*models.Period
		err     error
	)
	if semesterID == 0 {
		periods, err = s.repo.Period().List(ctx)
	} else {
		periods, err = s.repo.Period().ListBySemester(ctx, semesterID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}
	return periods, nil
}
