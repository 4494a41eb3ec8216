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

type academicService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

// NewAcademicService creates the track, level and enrollment service.
func NewAcademicService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator) AcademicService {
	return &academicService{
		repo:      repo,
		logger:    logger,
		validator: v,
	}
}

func (s *academicService) CreateTrack(ctx context.Context, req *TrackCreateRequest) (*models.Track, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	track := &models.Track{
		Code: strings.TrimSpace(req.Code),
		Name: strings.TrimSpace(req.Name),
	}
	if err := s.repo.Track().Create(ctx, track); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, NewConflictError("track", "code", track.Code)
		}
		return nil, fmt.Errorf("failed to create track: %w", err)
	}

	s.logger.Info("Track created", "track_id", track.ID, "code", track.Code)
	return track, nil
}

func (s *academicService) ListTracks(ctx context.Context) ([]*models.Track, error) {
	tracks, err := s.repo.Track().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tracks: %w", err)
	}
	return tracks, nil
}

// DeleteTrack refuses while enrollments reference the track; modules lose
// their association instead of blocking.
func (s *academicService) DeleteTrack(ctx context.Context, id uint) error {
	if err := s.repo.Track().Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrTrackNotFound
		}
		if repositories.IsForeignKeyError(err) {
			return NewRestrictedError("track", "enrollments")
		}
		return fmt.Errorf("failed to delete track: %w", err)
	}

	s.logger.Info("Track deleted", "track_id", id)
	return nil
}

func (s *academicService) CreateLevel(ctx context.Context, req *LevelCreateRequest) (*models.Level, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	level := &models.Level{
		Code:      strings.TrimSpace(req.Code),
		Name:      strings.TrimSpace(req.Name),
		SortOrder: req.SortOrder,
	}
	if err := s.repo.Level().Create(ctx, level); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, NewConflictError("level", "code", level.Code)
		}
		return nil, fmt.Errorf("failed to create level: %w", err)
	}

	s.logger.Info("Level created", "level_id", level.ID, "code", level.Code)
	return level, nil
}

func (s *academicService) ListLevels(ctx context.Context) ([]*models.Level, error) {
	levels, err := s.repo.Level().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list levels: %w", err)
	}
	return levels, nil
}

func (s *academicService) DeleteLevel(ctx context.Context, id uint) error {
	if err := s.repo.Level().Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrLevelNotFound
		}
		if repositories.IsForeignKeyError(err) {
			return NewRestrictedError("level", "enrollments")
		}
		return fmt.Errorf("failed to delete level: %w", err)
	}

	s.logger.Info("Level deleted", "level_id", id)
	return nil
}

func (s *academicService) CreateEnrollment(ctx context.Context, req *EnrollmentCreateRequest) (*models.Enrollment, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	if _, err := s.repo.Student().GetByID(ctx, req.StudentID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	if _, err := s.repo.Track().GetByID(ctx, req.TrackID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrTrackNotFound
		}
		return nil, fmt.Errorf("failed to get track: %w", err)
	}
	if _, err := s.repo.Level().GetByID(ctx, req.LevelID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrLevelNotFound
		}
		return nil, fmt.Errorf("failed to get level: %w", err)
	}

	enrollment := &models.Enrollment{
		StudentID:    req.StudentID,
		TrackID:      req.TrackID,
		LevelID:      req.LevelID,
		AcademicYear: strings.TrimSpace(req.AcademicYear),
		Status:       models.EnrollmentStatusEnrolled,
	}
	if err := s.repo.Enrollment().Create(ctx, enrollment); err != nil {
		return nil, fmt.Errorf("failed to create enrollment: %w", err)
	}

	s.logger.Info("Enrollment created",
		"enrollment_id", enrollment.ID,
		"student_id", enrollment.StudentID,
		"academic_year", enrollment.AcademicYear)

	return enrollment, nil
}

func (s *academicService) ListEnrollments(ctx context.Context) ([]*models.Enrollment, error) {
	enrollments, err := s.repo.Enrollment().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	return enrollments, nil
}

func (s *academicService) ListStudentEnrollments(ctx context.Context, studentID uint) ([]*models.Enrollment, error) {
	enrollments, err := s.repo.Enrollment().ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	return enrollments, nil
}

func (s *academicService) DeleteEnrollment(ctx context.Context, id uint) error {
	if err := s.repo.Enrollment().Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrEnrollmentNotFound
		}
		return fmt.Errorf("failed to delete enrollment: %w", err)
	}

	s.logger.Info("Enrollment deleted", "enrollment_id", id)
	return nil
}
