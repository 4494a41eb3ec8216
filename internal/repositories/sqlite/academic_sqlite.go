package sqlite

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/campus-hub/registrar-service/internal/models"
	"github.com/campus-hub/registrar-service/internal/repositories"
)

type TrackSQLite struct {
	db *gorm.DB
}

func NewTrackSQLite(db *gorm.DB) repositories.TrackRepository {
	return &TrackSQLite{db: db}
}

func (t *TrackSQLite) Create(ctx context.Context, track *models.Track) error {
	if err := t.db.WithContext(ctx).Create(track).Error; err != nil {
		return fmt.Errorf("failed to create track: %w", err)
	}
	return nil
}

func (t *TrackSQLite) GetByID(ctx context.Context, id uint) (*models.Track, error) {
	var track models.Track
	if err := t.db.WithContext(ctx).First(&track, id).Error; err != nil {
		return nil, err
	}
	return &track, nil
}

func (t *TrackSQLite) List(ctx context.Context) ([]*models.Track, error) {
	var tracks []*models.Track
	if err := t.db.WithContext(ctx).Order("code").Find(&tracks).Error; err != nil {
		return nil, fmt.Errorf("failed to list tracks: %w", err)
	}
	return tracks, nil
}

// Delete fails with a foreign-key violation while an enrollment references the
// track; module references are nulled by the schema instead.
func (t *TrackSQLite) Delete(ctx context.Context, id uint) error {
	result := t.db.WithContext(ctx).Delete(&models.Track{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete track: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

type LevelSQLite struct {
	db *gorm.DB
}

func NewLevelSQLite(db *gorm.DB) repositories.LevelRepository {
	return &LevelSQLite{db: db}
}

func (l *LevelSQLite) Create(ctx context.Context, level *models.Level) error {
	if err := l.db.WithContext(ctx).Create(level).Error; err != nil {
		return fmt.Errorf("failed to create level: %w", err)
	}
	return nil
}

func (l *LevelSQLite) GetByID(ctx context.Context, id uint) (*models.Level, error) {
	var level models.Level
	if err := l.db.WithContext(ctx).First(&level, id).Error; err != nil {
		return nil, err
	}
	return &level, nil
}

func (l *LevelSQLite) List(ctx context.Context) ([]*models.Level, error) {
	var levels []*models.Level
	if err := l.db.WithContext(ctx).
		Order("COALESCE(sort_order, 999), code").
		Find(&levels).Error; err != nil {
		return nil, fmt.Errorf("failed to list levels: %w", err)
	}
	return levels, nil
}

func (l *LevelSQLite) Delete(ctx context.Context, id uint) error {
	result := l.db.WithContext(ctx).Delete(&models.Level{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete level: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

type EnrollmentSQLite struct {
	db *gorm.DB
}

func NewEnrollmentSQLite(db *gorm.DB) repositories.EnrollmentRepository {
	return &EnrollmentSQLite{db: db}
}

func (e *EnrollmentSQLite) Create(ctx context.Context, enrollment *models.Enrollment) error {
	if err := e.db.WithContext(ctx).Create(enrollment).Error; err != nil {
		return fmt.Errorf("failed to create enrollment: %w", err)
	}
	return nil
}

func (e *EnrollmentSQLite) GetByID(ctx context.Context, id uint) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	if err := e.db.WithContext(ctx).
		Preload("Student").
		Preload("Track").
		Preload("Level").
		First(&enrollment, id).Error; err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (e *EnrollmentSQLite) ListByStudent(ctx context.Context, studentID uint) ([]*models.Enrollment, error) {
	var enrollments []*models.Enrollment
	if err := e.db.WithContext(ctx).
		Preload("Track").
		Preload("Level").
		Where("student_id = ?", studentID).
		Order("id DESC").
		Find(&enrollments).Error; err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	return enrollments, nil
}

func (e *EnrollmentSQLite) List(ctx context.Context) ([]*models.Enrollment, error) {
	var enrollments []*models.Enrollment
	if err := e.db.WithContext(ctx).
		Preload("Student").
		Preload("Track").
		Preload("Level").
		Order("id DESC").
		Find(&enrollments).Error; err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	return enrollments, nil
}

func (e *EnrollmentSQLite) Latest(ctx context.Context, studentID uint, academicYear string) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	if err := e.db.WithContext(ctx).
		Preload("Student").
		Preload("Track").
		Preload("Level").
		Where("student_id = ? AND academic_year = ?", studentID, academicYear).
		Order("id DESC").
		First(&enrollment).Error; err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (e *EnrollmentSQLite) Delete(ctx context.Context, id uint) error {
	result := e.db.WithContext(ctx).Delete(&models.Enrollment{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete enrollment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (e *EnrollmentSQLite) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := e.db.WithContext(ctx).Model(&models.Enrollment{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count enrollments: %w", err)
	}
	return count, nil
}
