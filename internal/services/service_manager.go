package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/campus-hub/registrar-service/internal/repositories"
	"github.com/campus-hub/registrar-service/internal/validator"
)

// ServiceManager wires every domain service to one repository handle and
// owns their lifecycle.
type ServiceManager interface {
	Initialize(ctx context.Context) error
	Shutdown(ctx context.Context) error

	Students() StudentService
	Academics() AcademicService
	Modules() ModuleService
	Grades() GradeService
	Absences() AbsenceService
	Teachers() TeacherService
	Calendar() CalendarService
	Dashboard() DashboardService
	Auth() AuthService
	Exports() ExportService
}

type serviceManager struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator

	studentService   StudentService
	academicService  AcademicService
	moduleService    ModuleService
	gradeService     GradeService
	absenceService   AbsenceService
	teacherService   TeacherService
	calendarService  CalendarService
	dashboardService DashboardService
	authService      AuthService
	exportService    ExportService

	initialized bool
	mu          sync.RWMutex
}

// NewServiceManager creates a service manager with its dependencies.
func NewServiceManager(repo repositories.Repository, logger *slog.Logger, v *validator.Validator) ServiceManager {
	return &serviceManager{
		repo:      repo,
		logger:    logger,
		validator: v,
	}
}

// Initialize constructs all services and checks the store is reachable.
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := sm.repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository health check failed: %w", err)
	}

	sm.studentService = NewStudentService(sm.repo, sm.logger, sm.validator)
	sm.academicService = NewAcademicService(sm.repo, sm.logger, sm.validator)
	sm.moduleService = NewModuleService(sm.repo, sm.logger, sm.validator)
	sm.gradeService = NewGradeService(sm.repo, sm.logger, sm.validator)
	sm.absenceService = NewAbsenceService(sm.repo, sm.logger, sm.validator)
	sm.teacherService = NewTeacherService(sm.repo, sm.logger, sm.validator)
	sm.calendarService = NewCalendarService(sm.repo, sm.logger, sm.validator)
	sm.dashboardService = NewDashboardService(sm.repo, sm.logger)
	sm.authService = NewAuthService(sm.repo, sm.logger)
	sm.exportService = NewExportService(sm.repo, sm.logger)

	sm.initialized = true
	sm.logger.Info("Service manager initialized")

	return nil
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return nil
	}
	sm.initialized = false
	sm.logger.Info("Service manager shut down")
	return nil
}

func (sm *serviceManager) Students() StudentService     { return sm.studentService }
func (sm *serviceManager) Academics() AcademicService   { return sm.academicService }
func (sm *serviceManager) Modules() ModuleService       { return sm.moduleService }
func (sm *serviceManager) Grades() GradeService         { return sm.gradeService }
func (sm *serviceManager) Absences() AbsenceService     { return sm.absenceService }
func (sm *serviceManager) Teachers() TeacherService     { return sm.teacherService }
func (sm *serviceManager) Calendar() CalendarService    { return sm.calendarService }
func (sm *serviceManager) Dashboard() DashboardService  { return sm.dashboardService }
func (sm *serviceManager) Auth() AuthService            { return sm.authService }
func (sm *serviceManager) Exports() ExportService       { return sm.exportService }
