package repositories

import "context"

// Repository aggregates every entity repository behind one handle.
type Repository interface {
	Student() StudentRepository
	Track() TrackRepository
	Level() LevelRepository
	Enrollment() EnrollmentRepository
	Module() ModuleRepository
	Grade() GradeRepository
	GradeAudit() GradeAuditRepository
	Absence() AbsenceRepository
	Teacher() TeacherRepository
	TeachingAssignment() TeachingAssignmentRepository
	Semester() SemesterRepository
	Period() PeriodRepository
	UserAccount() UserAccountRepository
	Dashboard() DashboardRepository

	// WithTransaction runs fn against a repository bound to one transaction;
	// any error rolls the whole unit back.
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	Ping(ctx context.Context) error
	Close() error
}

// RepositoryManager owns the repository lifecycle: schema migration, first-run
// seeding, shutdown.
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	Shutdown(ctx context.Context) error
}
