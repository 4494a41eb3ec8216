package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/campus-hub/registrar-service/internal/models"
	"github.com/campus-hub/registrar-service/internal/repositories"
	"github.com/campus-hub/registrar-service/internal/validator"
)

type gradeService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

// NewGradeService creates the grade service. Every mutation writes its audit
// record inside the same transaction, so the trail never drifts from the
// grades table.
func NewGradeService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator) GradeService {
	return &gradeService{
		repo:      repo,
		logger:    logger,
		validator: v,
	}
}

func (s *gradeService) Create(ctx context.Context, req *GradeCreateRequest, actor string) (*models.Grade, error) {
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

	grade := &models.Grade{
		StudentID:    req.StudentID,
		ModuleID:     req.ModuleID,
		Value:        *req.Value,
		EvalType:     req.EvalType,
		AcademicYear: req.AcademicYear,
	}

	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Grade().Create(ctx, grade); err != nil {
			return fmt.Errorf("failed to create grade: %w", err)
		}
		record := &models.GradeAudit{
			GradeID:   grade.ID,
			Action:    models.AuditInsert,
			NewValue:  snapshotOf(grade),
			ChangedAt: auditStamp(),
			ChangedBy: actor,
		}
		if err := tx.GradeAudit().Create(ctx, record); err != nil {
			return fmt.Errorf("failed to write audit record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Grade recorded",
		"grade_id", grade.ID,
		"student_id", grade.StudentID,
		"module_id", grade.ModuleID,
		"value", grade.Value,
		"actor", actor)

	return grade, nil
}

func (s *gradeService) Update(ctx context.Context, id uint, req *GradeUpdateRequest, actor string) (*models.Grade, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	grade, err := s.repo.Grade().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrGradeNotFound
		}
		return nil, fmt.Errorf("failed to get grade: %w", err)
	}

	oldSnapshot := snapshotOf(grade)
	grade.Value = *req.Value
	if req.EvalType != nil {
		grade.EvalType = req.EvalType
	}
	if req.AcademicYear != nil {
		grade.AcademicYear = req.AcademicYear
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Grade().Update(ctx, grade); err != nil {
			return fmt.Errorf("failed to update grade: %w", err)
		}
		record := &models.GradeAudit{
			GradeID:   grade.ID,
			Action:    models.AuditUpdate,
			OldValue:  oldSnapshot,
			NewValue:  snapshotOf(grade),
			ChangedAt: auditStamp(),
			ChangedBy: actor,
		}
		if err := tx.GradeAudit().Create(ctx, record); err != nil {
			return fmt.Errorf("failed to write audit record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Grade updated",
		"grade_id", grade.ID,
		"value", grade.Value,
		"actor", actor)

	return grade, nil
}

func (s *gradeService) Delete(ctx context.Context, id uint, actor string) error {
	grade, err := s.repo.Grade().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrGradeNotFound
		}
		return fmt.Errorf("failed to get grade: %w", err)
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Grade().Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete grade: %w", err)
		}
		record := &models.GradeAudit{
			GradeID:   grade.ID,
			Action:    models.AuditDelete,
			OldValue:  snapshotOf(grade),
			ChangedAt: auditStamp(),
			ChangedBy: actor,
		}
		if err := tx.GradeAudit().Create(ctx, record); err != nil {
			return fmt.Errorf("failed to write audit record: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Grade deleted", "grade_id", id, "actor", actor)
	return nil
}

func (s *gradeService) List(ctx context.Context, filters repositories.GradeFilters) ([]*models.Grade, int64, error) {
	grades, total, err := s.repo.Grade().List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list grades: %w", err)
	}
	return grades, total, nil
}

// History returns the audit trail of a grade in chronological order. The
// trail outlives the grade, so no existence check is made.
func (s *gradeService) History(ctx context.Context, gradeID uint) ([]*models.GradeAudit, error) {
	records, err := s.repo.GradeAudit().ListByGrade(ctx, gradeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit records: %w", err)
	}
	return records, nil
}

// Average computes the coefficient-weighted mean of the student's grades.
// With no grades, or a total weight of 0, the result is flagged undefined
// instead of dividing by zero.
func (s *gradeService) Average(ctx context.Context, studentID uint) (*AverageResponse, error) {
	if _, err := s.repo.Student().GetByID(ctx, studentID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}

	totals, err := s.repo.Grade().Totals(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate grades: %w", err)
	}

	resp := &AverageResponse{
		TotalWeight: totals.Weight,
		GradeCount:  totals.Count,
	}
	if totals.Count > 0 && totals.Weight > 0 {
		resp.Defined = true
		resp.Average = totals.Points / totals.Weight
	}
	return resp, nil
}

// snapshotOf serializes the gradable fields for the audit payload.
func snapshotOf(grade *models.Grade) *string {
	payload, err := json.Marshal(models.GradeSnapshot{
		Value:        grade.Value,
		EvalType:     grade.EvalType,
		AcademicYear: grade.AcademicYear,
	})
	if err != nil {
		return nil
	}
	s := string(payload)
	return &s
}

func auditStamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
