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

type teacherService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

// NewTeacherService creates the teacher and assignment service.
func NewTeacherService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator) TeacherService {
	return &teacherService{
		repo:      repo,
		logger:    logger,
		validator: v,
	}
}

func (s *teacherService) Create(ctx context.Context, req *TeacherCreateRequest) (*models.Teacher, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	teacher := &models.Teacher{
		LastName:  strings.TrimSpace(req.LastName),
		FirstName: strings.TrimSpace(req.FirstName),
		Email:     normalizeEmail(req.Email),
	}
	if err := s.repo.Teacher().Create(ctx, teacher); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, NewConflictError("teacher", "email", derefOr(teacher.Email, ""))
		}
		return nil, fmt.Errorf("failed to create teacher: %w", err)
	}

	s.logger.Info("Teacher created", "teacher_id", teacher.ID)
	return teacher, nil
}

func (s *teacherService) List(ctx context.Context) ([]*models.Teacher, error) {
	teachers, err := s.repo.Teacher().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teachers: %w", err)
	}
	return teachers, nil
}

// Delete removes the teacher and their assignments.
func (s *teacherService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Teacher().Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrTeacherNotFound
		}
		return fmt.Errorf("failed to delete teacher: %w", err)
	}

	s.logger.Info("Teacher deleted", "teacher_id", id)
	return nil
}

// Assign links a teacher to a module for an optional academic year. The
// triple is unique; repeating it is a conflict.
func (s *teacherService) Assign(ctx context.Context, req *AssignmentCreateRequest) (*models.TeachingAssignment, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	if _, err := s.repo.Teacher().GetByID(ctx, req.TeacherID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrTeacherNotFound
		}
		return nil, fmt.Errorf("failed to get teacher: %w", err)
	}
	if _, err := s.repo.Module().GetByID(ctx, req.ModuleID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrModuleNotFound
		}
		return nil, fmt.Errorf("failed to get module: %w", err)
	}

	assignment := &models.TeachingAssignment{
		TeacherID:    req.TeacherID,
		ModuleID:     req.ModuleID,
		AcademicYear: req.AcademicYear,
	}
	if err := s.repo.TeachingAssignment().Create(ctx, assignment); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, NewConflictError("assignment", "teacher/module/year",
				fmt.Sprintf("%d/%d/%s", req.TeacherID, req.ModuleID, derefOr(req.AcademicYear, "")))
		}
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}

	s.logger.Info("Teaching assignment created",
		"assignment_id", assignment.ID,
		"teacher_id", assignment.TeacherID,
		"module_id", assignment.ModuleID)

	return assignment, nil
}

func (s *teacherService) ListAssignments(ctx context.Context) ([]*models.TeachingAssignment, error) {
	assignments, err := s.repo.TeachingAssignment().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	return assignments, nil
}

func (s *teacherService) ListTeacherAssignments(ctx context.Context, teacherID uint) ([]*models.TeachingAssignment, error) {
	assignments, err := s.repo.TeachingAssignment().ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	return assignments, nil
}
