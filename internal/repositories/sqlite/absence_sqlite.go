package sqlite

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/campus-hub/registrar-service/internal/models"
	"github.com/campus-hub/registrar-service/internal/repositories"
)

type AbsenceSQLite struct {
	db *gorm.DB
}

func NewAbsenceSQLite(db *gorm.DB) repositories.AbsenceRepository {
	return &AbsenceSQLite{db: db}
}

func (a *AbsenceSQLite) Create(ctx context.Context, absence *models.Absence) error {
	if err := a.db.WithContext(ctx).Create(absence).Error; err != nil {
		return fmt.Errorf("failed to create absence: %w", err)
	}
	return nil
}

func (a *AbsenceSQLite) GetByID(ctx context.Context, id uint) (*models.Absence, error) {
	var absence models.Absence
	if err := a.db.WithContext(ctx).
		Preload("Student").
		Preload("Module").
		First(&absence, id).Error; err != nil {
		return nil, err
	}
	return &absence, nil
}

func (a *AbsenceSQLite) List(ctx context.Context, filters repositories.AbsenceFilters) ([]*models.Absence, int64, error) {
	query := a.db.WithContext(ctx).Model(&models.Absence{})

	if filters.StudentID != nil {
		query = query.Where("student_id = ?", *filters.StudentID)
	}
	if filters.ModuleID != nil {
		query = query.Where("module_id = ?", *filters.ModuleID)
	}
	if filters.Justified != nil {
		query = query.Where("justified = ?", *filters.Justified)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count absences: %w", err)
	}

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit).Offset(filters.Offset)
	}

	var absences []*models.Absence
	if err := query.
		Preload("Student").
		Preload("Module").
		Order("absence_date DESC").
		Find(&absences).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list absences: %w", err)
	}
	return absences, total, nil
}

func (a *AbsenceSQLite) Delete(ctx context.Context, id uint) error {
	result := a.db.WithContext(ctx).Delete(&models.Absence{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete absence: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (a *AbsenceSQLite) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := a.db.WithContext(ctx).Model(&models.Absence{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count absences: %w", err)
	}
	return count, nil
}

func (a *AbsenceSQLite) Tallies(ctx context.Context, threshold int64, limit int) ([]repositories.AbsenceTally, error) {
	query := a.db.WithContext(ctx).
		Model(&models.Absence{}).
		Select(`absences.student_id AS student_id,
			students.matricule AS matricule,
			students.last_name AS last_name,
			students.first_name AS first_name,
			COUNT(*) AS count`).
		Joins("JOIN students ON students.id = absences.student_id").
		Group("absences.student_id").
		Order("count DESC")

	if threshold > 0 {
		query = query.Having("COUNT(*) >= ?", threshold)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var tallies []repositories.AbsenceTally
	if err := query.Scan(&tallies).Error; err != nil {
		return nil, fmt.Errorf("failed to tally absences: %w", err)
	}
	return tallies, nil
}
