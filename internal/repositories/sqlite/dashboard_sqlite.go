package sqlite

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/campus-hub/registrar-service/internal/models"
	"github.com/campus-hub/registrar-service/internal/repositories"
)

type DashboardSQLite struct {
	db *gorm.DB
}

func NewDashboardSQLite(db *gorm.DB) repositories.DashboardRepository {
	return &DashboardSQLite{db: db}
}

func (d *DashboardSQLite) TotalStudents(ctx context.Context) (int64, error) {
	return d.count(ctx, &models.Student{}, "students")
}

func (d *DashboardSQLite) TotalModules(ctx context.Context) (int64, error) {
	return d.count(ctx, &models.Module{}, "modules")
}

func (d *DashboardSQLite) TotalEnrollments(ctx context.Context) (int64, error) {
	return d.count(ctx, &models.Enrollment{}, "enrollments")
}

func (d *DashboardSQLite) TotalAbsences(ctx context.Context) (int64, error) {
	return d.count(ctx, &models.Absence{}, "absences")
}

func (d *DashboardSQLite) count(ctx context.Context, model interface{}, name string) (int64, error) {
	var count int64
	if err := d.db.WithContext(ctx).Model(model).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", name, err)
	}
	return count, nil
}
