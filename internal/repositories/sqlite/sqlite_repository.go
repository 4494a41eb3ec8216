package sqlite

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/campus-hub/registrar-service/internal/models"
	"github.com/campus-hub/registrar-service/internal/repositories"
)

// SQLiteRepository implements the main Repository interface over the embedded
// database file.
type SQLiteRepository struct {
	db *gorm.DB

	student    repositories.StudentRepository
	track      repositories.TrackRepository
	level      repositories.LevelRepository
	enrollment repositories.EnrollmentRepository
	module     repositories.ModuleRepository
	grade      repositories.GradeRepository
	gradeAudit repositories.GradeAuditRepository
	absence    repositories.AbsenceRepository
	teacher    repositories.TeacherRepository
	assignment repositories.TeachingAssignmentRepository
	semester   repositories.SemesterRepository
	period     repositories.PeriodRepository
	user       repositories.UserAccountRepository
	dashboard  repositories.DashboardRepository
}

// RepositoryConfig holds configuration for repository initialization.
type RepositoryConfig struct {
	DB *gorm.DB

	// Seed credentials inserted once, when the account table is empty.
	SeedAdminUsername string
	SeedAdminPassword string
}

// NewSQLiteRepository creates a repository manager with all sub-repositories
// bound to the given database handle.
func NewSQLiteRepository(db *gorm.DB) repositories.Repository {
	repo := &SQLiteRepository{db: db}

	repo.student = NewStudentSQLite(db)
	repo.track = NewTrackSQLite(db)
	repo.level = NewLevelSQLite(db)
	repo.enrollment = NewEnrollmentSQLite(db)
	repo.module = NewModuleSQLite(db)
	repo.grade = NewGradeSQLite(db)
	repo.gradeAudit = NewGradeAuditSQLite(db)
	repo.absence = NewAbsenceSQLite(db)
	repo.teacher = NewTeacherSQLite(db)
	repo.assignment = NewTeachingAssignmentSQLite(db)
	repo.semester = NewSemesterSQLite(db)
	repo.period = NewPeriodSQLite(db)
	repo.user = NewUserAccountSQLite(db)
	repo.dashboard = NewDashboardSQLite(db)

	return repo
}

func (r *SQLiteRepository) Student() repositories.StudentRepository       { return r.student }
func (r *SQLiteRepository) Track() repositories.TrackRepository           { return r.track }
func (r *SQLiteRepository) Level() repositories.LevelRepository           { return r.level }
func (r *SQLiteRepository) Enrollment() repositories.EnrollmentRepository { return r.enrollment }
func (r *SQLiteRepository) Module() repositories.ModuleRepository         { return r.module }
func (r *SQLiteRepository) Grade() repositories.GradeRepository           { return r.grade }
func (r *SQLiteRepository) GradeAudit() repositories.GradeAuditRepository { return r.gradeAudit }
func (r *SQLiteRepository) Absence() repositories.AbsenceRepository       { return r.absence }
func (r *SQLiteRepository) Teacher() repositories.TeacherRepository       { return r.teacher }
func (r *SQLiteRepository) TeachingAssignment() repositories.TeachingAssignmentRepository {
	return r.assignment
}
func (r *SQLiteRepository) Semester() repositories.SemesterRepository       { return r.semester }
func (r *SQLiteRepository) Period() repositories.PeriodRepository           { return r.period }
func (r *SQLiteRepository) UserAccount() repositories.UserAccountRepository { return r.user }
func (r *SQLiteRepository) Dashboard() repositories.DashboardRepository     { return r.dashboard }

// WithTransaction executes fn within a single database transaction.
func (r *SQLiteRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewSQLiteRepository(tx))
	})
}

func (r *SQLiteRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to access database pool: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

func (r *SQLiteRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to access database pool: %w", err)
	}
	return sqlDB.Close()
}

// RepositoryManagerImpl migrates the schema and seeds the first-run admin
// account.
type RepositoryManagerImpl struct {
	config RepositoryConfig
	repo   repositories.Repository
}

func NewRepositoryManager(config RepositoryConfig) *RepositoryManagerImpl {
	return &RepositoryManagerImpl{
		config: config,
		repo:   NewSQLiteRepository(config.DB),
	}
}

// Initialize creates missing tables idempotently and inserts the single admin
// account when the account table is empty.
func (m *RepositoryManagerImpl) Initialize() error {
	if err := m.config.DB.AutoMigrate(
		&models.Student{},
		&models.Track{},
		&models.Level{},
		&models.Enrollment{},
		&models.Module{},
		&models.Grade{},
		&models.GradeAudit{},
		&models.Absence{},
		&models.Teacher{},
		&models.TeachingAssignment{},
		&models.Semester{},
		&models.Period{},
		&models.UserAccount{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	return m.seedAdminAccount()
}

func (m *RepositoryManagerImpl) seedAdminAccount() error {
	ctx := context.Background()

	count, err := m.repo.UserAccount().Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count user accounts: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(m.config.SeedAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	admin := &models.UserAccount{
		Username:     m.config.SeedAdminUsername,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		Active:       true,
	}
	if err := m.repo.UserAccount().Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}
	return nil
}

func (m *RepositoryManagerImpl) GetRepository() repositories.Repository {
	return m.repo
}

func (m *RepositoryManagerImpl) Shutdown(ctx context.Context) error {
	return m.repo.Close()
}
