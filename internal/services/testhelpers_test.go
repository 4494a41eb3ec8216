package services

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/campus-hub/registrar-service/internal/config"
	"github.com/campus-hub/registrar-service/internal/models"
	"github.com/campus-hub/registrar-service/internal/repositories"
	"github.com/campus-hub/registrar-service/internal/repositories/sqlite"
	"github.com/campus-hub/registrar-service/internal/validator"
	"github.com/campus-hub/registrar-service/pkg"
)

// newTestManager opens a fresh database in a temp directory and returns an
// initialized service manager over it.
func newTestManager(t *testing.T) (ServiceManager, repositories.Repository) {
	t.Helper()

	cfg := &config.Config{
		DatabasePath:      filepath.Join(t.TempDir(), "test.db"),
		SeedAdminUsername: "admin",
		SeedAdminPassword: "admin123",
	}
	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		t.Fatalf("InitDatabase: %v", err)
	}

	repoManager := sqlite.NewRepositoryManager(sqlite.RepositoryConfig{
		DB:                db,
		SeedAdminUsername: cfg.SeedAdminUsername,
		SeedAdminPassword: cfg.SeedAdminPassword,
	})
	if err := repoManager.Initialize(); err != nil {
		t.Fatalf("Initialize repositories: %v", err)
	}
	t.Cleanup(func() {
		if err := repoManager.Shutdown(context.Background()); err != nil {
			t.Errorf("Shutdown: %v", err)
		}
	})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sm := NewServiceManager(repoManager.GetRepository(), logger, validator.New())
	if err := sm.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize services: %v", err)
	}
	return sm, repoManager.GetRepository()
}

func mustCreateStudent(t *testing.T, sm ServiceManager, last, first string) *models.Student {
	t.Helper()
	student, err := sm.Students().Create(context.Background(), &StudentCreateRequest{
		LastName:  last,
		FirstName: first,
	})
	if err != nil {
		t.Fatalf("create student %s %s: %v", last, first, err)
	}
	return student
}

func mustCreateModule(t *testing.T, sm ServiceManager, code string, coefficient float64) *models.Module {
	t.Helper()
	module, err := sm.Modules().Create(context.Background(), &ModuleCreateRequest{
		Code:        code,
		Name:        "Module " + code,
		Coefficient: &coefficient,
	})
	if err != nil {
		t.Fatalf("create module %s: %v", code, err)
	}
	return module
}

func mustCreateGrade(t *testing.T, sm ServiceManager, studentID, moduleID uint, value float64) *models.Grade {
	t.Helper()
	grade, err := sm.Grades().Create(context.Background(), &GradeCreateRequest{
		StudentID: studentID,
		ModuleID:  moduleID,
		Value:     &value,
	}, "tester")
	if err != nil {
		t.Fatalf("create grade: %v", err)
	}
	return grade
}
