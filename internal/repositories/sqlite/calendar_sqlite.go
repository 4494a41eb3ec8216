package sqlite

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/campus-hub/registrar-service/internal/models"
	"github.com/campus-hub/registrar-service/internal/repositories"
)

type SemesterSQLite struct {
	db *gorm.DB
}

func NewSemesterSQLite(db *gorm.DB) repositories.SemesterRepository {
	return &SemesterSQLite{db: db}
}

func (s *SemesterSQLite) Create(ctx context.Context, semester *models.Semester) error {
	if err := s.db.WithContext(ctx).Create(semester).Error; err != nil {
		return fmt.Errorf("failed to create semester: %w", err)
	}
	return nil
}

func (s *SemesterSQLite) GetByID(ctx context.Context, id uint) (*models.Semester, error) {
	var semester models.Semester
	if err := s.db.WithContext(ctx).First(&semester, id).Error; err != nil {
		return nil, err
	}
	return &semester, nil
}

func (s *SemesterSQLite) List(ctx context.Context) ([]*models.Semester, error) {
	var semesters []*models.Semester
	if err := s.db.WithContext(ctx).
		Order("start_date").
		Find(&semesters).Error; err != nil {
		return nil, fmt.Errorf("failed to list semesters: %w", err)
	}
	return semesters, nil
}

func (s *SemesterSQLite) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Semester{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete semester: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

type PeriodSQLite struct {
	db *gorm.DB
}

func NewPeriodSQLite(db *gorm.DB) repositories.PeriodRepository {
	return &PeriodSQLite{db: db}
}

func (p *PeriodSQLite) Create(ctx context.Context, period *models.Period) error {
	if err := p.db.WithContext(ctx).Create(period).Error; err != nil {
		return fmt.Errorf("failed to create period: %w", err)
	}
	return nil
}

func (p *PeriodSQLite) List(ctx context.Context) ([]*models.Period, error) {
	var periods []*models.Period
	if err := p.db.WithContext(ctx).
		Preload("Semester").
		Order("start_date").
		Find(&periods).Error; err != nil {
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}
	return periods, nil
}

func (p *PeriodSQLite) ListBySemester(ctx context.Context, semesterID uint) ([]*models.Period, error) {
	var periods []*models.Period
	if err := p.db.WithContext(ctx).
		Where("semester_id = ?", semesterID).
		Order("start_date").
		Find(&periods).Error; err != nil {
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}
	return periods, nil
}

func (p *PeriodSQLite) Delete(ctx context.Context, id uint) error {
	result := p.db.WithContext(ctx).Delete(&models.Period{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete period: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
