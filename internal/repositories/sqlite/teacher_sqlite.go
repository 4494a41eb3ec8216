package sqlite

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/campus-hub/registrar-service/internal/models"
	"github.com/campus-hub/registrar-service/internal/repositories"
)

type TeacherSQLite struct {
	db *gorm.DB
}

func NewTeacherSQLite(db *gorm.DB) repositories.TeacherRepository {
	return &TeacherSQLite{db: db}
}

func (t *TeacherSQLite) Create(ctx context.Context, teacher *models.Teacher) error {
	if err := t.db.WithContext(ctx).Create(teacher).Error; err != nil {
		return fmt.Errorf("failed to create teacher: %w", err)
	}
	return nil
}

func (t *TeacherSQLite) GetByID(ctx context.Context, id uint) (*models.Teacher, error) {
	var teacher models.Teacher
	if err := t.db.WithContext(ctx).First(&teacher, id).Error; err != nil {
		return nil, err
	}
	return &teacher, nil
}

func (t *TeacherSQLite) List(ctx context.Context) ([]*models.Teacher, error) {
	var teachers []*models.Teacher
	if err := t.db.WithContext(ctx).
		Order("last_name, first_name").
		Find(&teachers).Error; err != nil {
		return nil, fmt.Errorf("failed to list teachers: %w", err)
	}
	return teachers, nil
}

func (t *TeacherSQLite) Delete(ctx context.Context, id uint) error {
	result := t.db.WithContext(ctx).Delete(&models.Teacher{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete teacher: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

type TeachingAssignmentSQLite struct {
	db *gorm.DB
}

func NewTeachingAssignmentSQLite(db *gorm.DB) repositories.TeachingAssignmentRepository {
	return &TeachingAssignmentSQLite{db: db}
}

func (t *TeachingAssignmentSQLite) Create(ctx context.Context, assignment *models.TeachingAssignment) error {
	if err := t.db.WithContext(ctx).Create(assignment).Error; err != nil {
		return fmt.Errorf("failed to create teaching assignment: %w", err)
	}
	return nil
}

func (t *TeachingAssignmentSQLite) List(ctx context.Context) ([]*models.TeachingAssignment, error) {
	var assignments []*models.TeachingAssignment
	if err := t.db.WithContext(ctx).
		Preload("Teacher").
		Preload("Module").
		Order("id DESC").
		Find(&assignments).Error; err != nil {
		return nil, fmt.Errorf("failed to list teaching assignments: %w", err)
	}
	return assignments, nil
}

func (t *TeachingAssignmentSQLite) ListByTeacher(ctx context.Context, teacherID uint) ([]*models.TeachingAssignment, error) {
	var assignments []*models.TeachingAssignment
	if err := t.db.WithContext(ctx).
		Preload("Module").
		Where("teacher_id = ?", teacherID).
		Order("id DESC").
		Find(&assignments).Error; err != nil {
		return nil, fmt.Errorf("failed to list teaching assignments: %w", err)
	}
	return assignments, nil
}

func (t *TeachingAssignmentSQLite) Delete(ctx context.Context, id uint) error {
	result := t.db.WithContext(ctx).Delete(&models.TeachingAssignment{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete teaching assignment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
