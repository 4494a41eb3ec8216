package sqlite

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/campus-hub/registrar-service/internal/models"
	"github.com/campus-hub/registrar-service/internal/repositories"
)

type StudentSQLite struct {
	db *gorm.DB
}

func NewStudentSQLite(db *gorm.DB) repositories.StudentRepository {
	return &StudentSQLite{db: db}
}

func (s *StudentSQLite) Create(ctx context.Context, student *models.Student) error {
	if err := s.db.WithContext(ctx).Create(student).Error; err != nil {
		return fmt.Errorf("failed to create student: %w", err)
	}
	return nil
}

func (s *StudentSQLite) GetByID(ctx context.Context, id uint) (*models.Student, error) {
	var student models.Student
	if err := s.db.WithContext(ctx).First(&student, id).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

func (s *StudentSQLite) GetByMatricule(ctx context.Context, matricule string) (*models.Student, error) {
	var student models.Student
	if err := s.db.WithContext(ctx).Where("matricule = ?", matricule).First(&student).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

func (s *StudentSQLite) List(ctx context.Context, filters repositories.StudentFilters) ([]*models.Student, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Student{})

	if filters.Query != "" {
		like := "%" + filters.Query + "%"
		query = query.Where("matricule LIKE ? OR last_name LIKE ? OR first_name LIKE ?", like, like, like)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count students: %w", err)
	}

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit).Offset(filters.Offset)
	}

	var students []*models.Student
	if err := query.Order("id DESC").Find(&students).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list students: %w", err)
	}
	return students, total, nil
}

func (s *StudentSQLite) Update(ctx context.Context, student *models.Student) error {
	if err := s.db.WithContext(ctx).Save(student).Error; err != nil {
		return fmt.Errorf("failed to update student: %w", err)
	}
	return nil
}

// Delete removes the student row; enrollments, grades and absences follow by
// referential cascade.
func (s *StudentSQLite) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Student{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete student: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *StudentSQLite) ExistsByMatricule(ctx context.Context, matricule string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&models.Student{}).
		Where("matricule = ?", matricule).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check matricule: %w", err)
	}
	return count > 0, nil
}

func (s *StudentSQLite) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Student{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count students: %w", err)
	}
	return count, nil
}
