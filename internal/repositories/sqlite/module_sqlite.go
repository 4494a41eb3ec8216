package sqlite

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/campus-hub/registrar-service/internal/models"
	"github.com/campus-hub/registrar-service/internal/repositories"
)

type ModuleSQLite struct {
	db *gorm.DB
}

func NewModuleSQLite(db *gorm.DB) repositories.ModuleRepository {
	return &ModuleSQLite{db: db}
}

func (m *ModuleSQLite) Create(ctx context.Context, module *models.Module) error {
	if err := m.db.WithContext(ctx).Create(module).Error; err != nil {
		return fmt.Errorf("failed to create module: %w", err)
	}
	return nil
}

func (m *ModuleSQLite) GetByID(ctx context.Context, id uint) (*models.Module, error) {
	var module models.Module
	if err := m.db.WithContext(ctx).First(&module, id).Error; err != nil {
		return nil, err
	}
	return &module, nil
}

func (m *ModuleSQLite) GetByCode(ctx context.Context, code string) (*models.Module, error) {
	var module models.Module
	if err := m.db.WithContext(ctx).Where("code = ?", code).First(&module).Error; err != nil {
		return nil, err
	}
	return &module, nil
}

func (m *ModuleSQLite) List(ctx context.Context) ([]*models.Module, error) {
	var modules []*models.Module
	if err := m.db.WithContext(ctx).
		Preload("Track").
		Preload("Level").
		Order("code").
		Find(&modules).Error; err != nil {
		return nil, fmt.Errorf("failed to list modules: %w", err)
	}
	return modules, nil
}

func (m *ModuleSQLite) Update(ctx context.Context, module *models.Module) error {
	if err := m.db.WithContext(ctx).Save(module).Error; err != nil {
		return fmt.Errorf("failed to update module: %w", err)
	}
	return nil
}

// Delete removes the module; grades, absences and teaching assignments follow
// by referential cascade.
func (m *ModuleSQLite) Delete(ctx context.Context, id uint) error {
	result := m.db.WithContext(ctx).Delete(&models.Module{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete module: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (m *ModuleSQLite) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := m.db.WithContext(ctx).Model(&models.Module{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count modules: %w", err)
	}
	return count, nil
}
