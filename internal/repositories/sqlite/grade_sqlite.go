package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"gorm.io/gorm"

	"github.com/campus-hub/registrar-service/internal/models"
	"github.com/campus-hub/registrar-service/internal/repositories"
)

type GradeSQLite struct {
	db *gorm.DB
}

func NewGradeSQLite(db *gorm.DB) repositories.GradeRepository {
	return &GradeSQLite{db: db}
}

func (g *GradeSQLite) Create(ctx context.Context, grade *models.Grade) error {
	if err := g.db.WithContext(ctx).Create(grade).Error; err != nil {
		return fmt.Errorf("failed to create grade: %w", err)
	}
	return nil
}

func (g *GradeSQLite) GetByID(ctx context.Context, id uint) (*models.Grade, error) {
	var grade models.Grade
	if err := g.db.WithContext(ctx).
		Preload("Student").
		Preload("Module").
		First(&grade, id).Error; err != nil {
		return nil, err
	}
	return &grade, nil
}

func (g *GradeSQLite) List(ctx context.Context, filters repositories.GradeFilters) ([]*models.Grade, int64, error) {
	query := g.db.WithContext(ctx).Model(&models.Grade{})

	if filters.StudentID != nil {
		query = query.Where("student_id = ?", *filters.StudentID)
	}
	if filters.ModuleID != nil {
		query = query.Where("module_id = ?", *filters.ModuleID)
	}
	if filters.AcademicYear != nil {
		query = query.Where("academic_year = ?", *filters.AcademicYear)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count grades: %w", err)
	}

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit).Offset(filters.Offset)
	}

	var grades []*models.Grade
	if err := query.
		Preload("Student").
		Preload("Module").
		Order("id DESC").
		Find(&grades).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list grades: %w", err)
	}
	return grades, total, nil
}

func (g *GradeSQLite) Update(ctx context.Context, grade *models.Grade) error {
	if err := g.db.WithContext(ctx).Model(&models.Grade{}).
		Where("id = ?", grade.ID).
		Updates(map[string]interface{}{
			"value":         grade.Value,
			"eval_type":     grade.EvalType,
			"academic_year": grade.AcademicYear,
		}).Error; err != nil {
		return fmt.Errorf("failed to update grade: %w", err)
	}
	return nil
}

func (g *GradeSQLite) Delete(ctx context.Context, id uint) error {
	result := g.db.WithContext(ctx).Delete(&models.Grade{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete grade: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (g *GradeSQLite) Totals(ctx context.Context, studentID uint) (*repositories.GradeTotals, error) {
	var row struct {
		Points sql.NullFloat64
		Weight sql.NullFloat64
		Count  int64
	}
	if err := g.db.WithContext(ctx).
		Model(&models.Grade{}).
		Select("SUM(grades.value * modules.coefficient) AS points, SUM(modules.coefficient) AS weight, COUNT(*) AS count").
		Joins("JOIN modules ON modules.id = grades.module_id").
		Where("grades.student_id = ?", studentID).
		Scan(&row).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate grades: %w", err)
	}

	return &repositories.GradeTotals{
		Points: row.Points.Float64,
		Weight: row.Weight.Float64,
		Count:  row.Count,
	}, nil
}

func (g *GradeSQLite) TranscriptRows(ctx context.Context, studentID uint) ([]repositories.TranscriptRow, error) {
	var rows []repositories.TranscriptRow
	if err := g.db.WithContext(ctx).
		Model(&models.Grade{}).
		Select(`modules.code AS module_code,
			modules.name AS module_name,
			modules.coefficient AS coefficient,
			grades.value AS value,
			COALESCE(grades.academic_year, '') AS academic_year,
			COALESCE(grades.eval_type, '') AS eval_type`).
		Joins("JOIN modules ON modules.id = grades.module_id").
		Where("grades.student_id = ?", studentID).
		Order("COALESCE(grades.academic_year, ''), modules.code").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load transcript rows: %w", err)
	}
	return rows, nil
}

type GradeAuditSQLite struct {
	db *gorm.DB
}

func NewGradeAuditSQLite(db *gorm.DB) repositories.GradeAuditRepository {
	return &GradeAuditSQLite{db: db}
}

func (a *GradeAuditSQLite) Create(ctx context.Context, record *models.GradeAudit) error {
	if err := a.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to create audit record: %w", err)
	}
	return nil
}

func (a *GradeAuditSQLite) ListByGrade(ctx context.Context, gradeID uint) ([]*models.GradeAudit, error) {
	var records []*models.GradeAudit
	if err := a.db.WithContext(ctx).
		Where("grade_id = ?", gradeID).
		Order("id").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list audit records: %w", err)
	}
	return records, nil
}
