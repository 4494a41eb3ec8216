package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/campus-hub/registrar-service/internal/models"
	"github.com/campus-hub/registrar-service/internal/repositories"
	"github.com/campus-hub/registrar-service/internal/validator"
)

type moduleService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

// NewModuleService creates a module catalogue service.
func NewModuleService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator) ModuleService {
	return &moduleService{
		repo:      repo,
		logger:    logger,
		validator: v,
	}
}

func (s *moduleService) Create(ctx context.Context, req *ModuleCreateRequest) (*models.Module, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	if req.TrackID != nil {
		if _, err := s.repo.Track().GetByID(ctx, *req.TrackID); err != nil {
			if repositories.IsNotFoundError(err) {
				return nil, ErrTrackNotFound
			}
			return nil, fmt.Errorf("failed to get track: %w", err)
		}
	}
	if req.LevelID != nil {
		if _, err := s.repo.Level().GetByID(ctx, *req.LevelID); err != nil {
			if repositories.IsNotFoundError(err) {
				return nil, ErrLevelNotFound
			}
			return nil, fmt.Errorf("failed to get level: %w", err)
		}
	}

	module := &models.Module{
		Code:        strings.TrimSpace(req.Code),
		Name:        strings.TrimSpace(req.Name),
		Coefficient: *req.Coefficient,
		Credits:     req.Credits,
		TrackID:     req.TrackID,
		LevelID:     req.LevelID,
	}
	if err := s.repo.Module().Create(ctx, module); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, NewConflictError("module", "code", module.Code)
		}
		return nil, fmt.Errorf("failed to create module: %w", err)
	}

	s.logger.Info("Module created",
		"module_id", module.ID,
		"code", module.Code,
		"coefficient", module.Coefficient)

	return module, nil
}

func (s *moduleService) GetByID(ctx context.Context, id uint) (*models.Module, error) {
	module, err := s.repo.Module().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrModuleNotFound
		}
		return nil, fmt.Errorf("failed to get module: %w", err)
	}
	return module, nil
}

func (s *moduleService) List(ctx context.Context) ([]*models.Module, error) {
	modules, err := s.repo.Module().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list modules: %w", err)
	}
	return modules, nil
}

// Delete removes the module with its grades, absences and assignments.
func (s *moduleService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Module().Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrModuleNotFound
		}
		return fmt.Errorf("failed to delete module: %w", err)
	}

	s.logger.Info("Module deleted", "module_id", id)
	return nil
}

// Seed loads a catalogue batch. Track and level codes resolve to ids when
// they exist; unknown codes leave the module unassociated.
func (s *moduleService) Seed(ctx context.Context, entries []ModuleSeed) (*ImportReport, error) {
	report := &ImportReport{}

	for _, entry := range entries {
		coefficient := entry.Coefficient
		req := &ModuleCreateRequest{
			Code:        entry.Code,
			Name:        entry.Name,
			Coefficient: &coefficient,
			Credits:     entry.Credits,
		}
		if entry.TrackCode != nil {
			if track, err := s.findTrackByCode(ctx, *entry.TrackCode); err == nil {
				req.TrackID = &track.ID
			}
		}
		if entry.LevelCode != nil {
			if level, err := s.findLevelByCode(ctx, *entry.LevelCode); err == nil {
				req.LevelID = &level.ID
			}
		}

		if _, err := s.Create(ctx, req); err != nil {
			s.logger.Warn("Skipping module entry", "code", entry.Code, "error", err)
			report.Skipped++
			continue
		}
		report.Imported++
	}

	s.logger.Info("Module seed finished",
		"imported", report.Imported,
		"skipped", report.Skipped)

	return report, nil
}

func (s *moduleService) findTrackByCode(ctx context.Context, code string) (*models.Track, error) {
	tracks, err := s.repo.Track().List(ctx)
	if err != nil {
		return nil, err
	}
	for _, track := range tracks {
		if strings.EqualFold(track.Code, code) {
			return track, nil
		}
	}
	return nil, ErrTrackNotFound
}

func (s *moduleService) findLevelByCode(ctx context.Context, code string) (*models.Level, error) {
	levels, err := s.repo.Level().List(ctx)
	if err != nil {
		return nil, err
	}
	for _, level := range levels {
		if strings.EqualFold(level.Code, code) {
			return level, nil
		}
	}
	return nil, ErrLevelNotFound
}
