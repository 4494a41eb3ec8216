package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/campus-hub/registrar-service/internal/repositories"
)

// topAbsenceCount bounds the dashboard absence leaderboard.
const topAbsenceCount = 5

type dashboardService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

// NewDashboardService creates the landing summary service.
func NewDashboardService(repo repositories.Repository, logger *slog.Logger) DashboardService {
	return &dashboardService{
		repo:   repo,
		logger: logger,
	}
}

func (s *dashboardService) Stats(ctx context.Context) (*DashboardStatsResponse, error) {
	dashboard := s.repo.Dashboard()

	students, err := dashboard.TotalStudents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count students: %w", err)
	}
	modules, err := dashboard.TotalModules(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count modules: %w", err)
	}
	enrollments, err := dashboard.TotalEnrollments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count enrollments: %w", err)
	}
	absences, err := dashboard.TotalAbsences(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count absences: %w", err)
	}

	top, err := s.repo.Absence().Tallies(ctx, 1, topAbsenceCount)
	if err != nil {
		return nil, fmt.Errorf("failed to tally absences: %w", err)
	}

	return &DashboardStatsResponse{
		Students:    students,
		Modules:     modules,
		Enrollments: enrollments,
		Absences:    absences,
		TopAbsences: top,
	}, nil
}
