package repositories

import (
	"context"

	"github.com/campus-hub/registrar-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type StudentFilters struct {
	Query  string // matches matricule, last name or first name
	Status *string
	Limit  int
	Offset int
}

type GradeFilters struct {
	StudentID    *uint
	ModuleID     *uint
	AcademicYear *string
	Limit        int
	Offset       int
}

type AbsenceFilters struct {
	StudentID *uint
	ModuleID  *uint
	Justified *bool
	Limit     int
	Offset    int
}

// ===== SHARED ROW STRUCTS =====

// GradeTotals carries the raw aggregation for a weighted average. Weight 0
// (or no rows at all) means the average is undefined, never a numeric error.
type GradeTotals struct {
	Points float64
	Weight float64
	Count  int64
}

// TranscriptRow is one line of a student transcript, in render order.
type TranscriptRow struct {
	ModuleCode   string
	ModuleName   string
	Coefficient  float64
	Value        float64
	AcademicYear string
	EvalType     string
}

// AbsenceTally is a per-student absence count used by alerts and the
// dashboard leaderboard.
type AbsenceTally struct {
	StudentID uint
	Matricule string
	LastName  string
	FirstName string
	Count     int64
}

// ===== ENTITY REPOSITORIES =====

type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id uint) (*models.Student, error)
	GetByMatricule(ctx context.Context, matricule string) (*models.Student, error)
	List(ctx context.Context, filters StudentFilters) ([]*models.Student, int64, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id uint) error
	ExistsByMatricule(ctx context.Context, matricule string) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type TrackRepository interface {
	Create(ctx context.Context, track *models.Track) error
	GetByID(ctx context.Context, id uint) (*models.Track, error)
	List(ctx context.Context) ([]*models.Track, error)
	Delete(ctx context.Context, id uint) error
}

type LevelRepository interface {
	Create(ctx context.Context, level *models.Level) error
	GetByID(ctx context.Context, id uint) (*models.Level, error)
	// List orders by the optional sort integer, then code.
	List(ctx context.Context) ([]*models.Level, error)
	Delete(ctx context.Context, id uint) error
}

type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *models.Enrollment) error
	GetByID(ctx context.Context, id uint) (*models.Enrollment, error)
	ListByStudent(ctx context.Context, studentID uint) ([]*models.Enrollment, error)
	List(ctx context.Context) ([]*models.Enrollment, error)
	// Latest returns the most recent enrollment of the student for the given
	// academic-year label.
	Latest(ctx context.Context, studentID uint, academicYear string) (*models.Enrollment, error)
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

type ModuleRepository interface {
	Create(ctx context.Context, module *models.Module) error
	GetByID(ctx context.Context, id uint) (*models.Module, error)
	GetByCode(ctx context.Context, code string) (*models.Module, error)
	List(ctx context.Context) ([]*models.Module, error)
	Update(ctx context.Context, module *models.Module) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

type GradeRepository interface {
	Create(ctx context.Context, grade *models.Grade) error
	GetByID(ctx context.Context, id uint) (*models.Grade, error)
	List(ctx context.Context, filters GradeFilters) ([]*models.Grade, int64, error)
	Update(ctx context.Context, grade *models.Grade) error
	Delete(ctx context.Context, id uint) error
	// Totals aggregates value*coefficient and coefficient over the student's
	// grades.
	Totals(ctx context.Context, studentID uint) (*GradeTotals, error)
	// TranscriptRows returns the student's grade lines ordered by academic
	// year then module code.
	TranscriptRows(ctx context.Context, studentID uint) ([]TranscriptRow, error)
}

type GradeAuditRepository interface {
	Create(ctx context.Context, record *models.GradeAudit) error
	ListByGrade(ctx context.Context, gradeID uint) ([]*models.GradeAudit, error)
}

type AbsenceRepository interface {
	Create(ctx context.Context, absence *models.Absence) error
	GetByID(ctx context.Context, id uint) (*models.Absence, error)
	List(ctx context.Context, filters AbsenceFilters) ([]*models.Absence, int64, error)
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
	// Tallies groups absences per student, ordered by count descending.
	// threshold filters (HAVING count >= threshold); limit 0 means no limit.
	Tallies(ctx context.Context, threshold int64, limit int) ([]AbsenceTally, error)
}

type TeacherRepository interface {
	Create(ctx context.Context, teacher *models.Teacher) error
	GetByID(ctx context.Context, id uint) (*models.Teacher, error)
	List(ctx context.Context) ([]*models.Teacher, error)
	Delete(ctx context.Context, id uint) error
}

type TeachingAssignmentRepository interface {
	Create(ctx context.Context, assignment *models.TeachingAssignment) error
	List(ctx context.Context) ([]*models.TeachingAssignment, error)
	ListByTeacher(ctx context.Context, teacherID uint) ([]*models.TeachingAssignment, error)
	Delete(ctx context.Context, id uint) error
}

type SemesterRepository interface {
	Create(ctx context.Context, semester *models.Semester) error
	GetByID(ctx context.Context, id uint) (*models.Semester, error)
	// List orders semesters by start date.
	List(ctx context.Context) ([]*models.Semester, error)
	Delete(ctx context.Context, id uint) error
}

type PeriodRepository interface {
	Create(ctx context.Context, period *models.Period) error
	// List orders periods by start date.
	List(ctx context.Context) ([]*models.Period, error)
	ListBySemester(ctx context.Context, semesterID uint) ([]*models.Period, error)
	Delete(ctx context.Context, id uint) error
}

type UserAccountRepository interface {
	Create(ctx context.Context, account *models.UserAccount) error
	// GetActiveByUsername only returns accounts with the active flag set.
	GetActiveByUsername(ctx context.Context, username string) (*models.UserAccount, error)
	Count(ctx context.Context) (int64, error)
}

type DashboardRepository interface {
	TotalStudents(ctx context.Context) (int64, error)
	TotalModules(ctx context.Context) (int64, error)
	TotalEnrollments(ctx context.Context) (int64, error)
	TotalAbsences(ctx context.Context) (int64, error)
}
