package services

import (
	"context"
	"io"

	"github.com/campus-hub/registrar-service/internal/models"
	"github.com/campus-hub/registrar-service/internal/repositories"
	"github.com/campus-hub/registrar-service/internal/validator"
)

// Request DTOs live with the validator so the tag rules stay next to the
// fields they constrain.
type (
	StudentCreateRequest    = validator.StudentCreateRequest
	TrackCreateRequest      = validator.TrackCreateRequest
	LevelCreateRequest      = validator.LevelCreateRequest
	EnrollmentCreateRequest = validator.EnrollmentCreateRequest
	ModuleCreateRequest     = validator.ModuleCreateRequest
	GradeCreateRequest      = validator.GradeCreateRequest
	GradeUpdateRequest      = validator.GradeUpdateRequest
	AbsenceCreateRequest    = validator.AbsenceCreateRequest
	TeacherCreateRequest    = validator.TeacherCreateRequest
	AssignmentCreateRequest = validator.AssignmentCreateRequest
	SemesterCreateRequest   = validator.SemesterCreateRequest
	PeriodCreateRequest     = validator.PeriodCreateRequest
)

// ===== RESPONSE DTOs =====

// AverageResponse is the outcome of a weighted-average computation. Defined
// is false when the student has no grades or the total weight is 0; Average
// is only meaningful when Defined is true.
type AverageResponse struct {
	Average     float64 `json:"average"`
	TotalWeight float64 `json:"total_weight"`
	GradeCount  int64   `json:"grade_count"`
	Defined     bool    `json:"defined"`
}

// ImportReport summarizes a bulk load: rows persisted and rows skipped.
type ImportReport struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// AbsenceStatsResponse is the global absence picture. Rate is absences per
// registered student, 0 when no students exist.
type AbsenceStatsResponse struct {
	TotalAbsences int64   `json:"total_absences"`
	TotalStudents int64   `json:"total_students"`
	Rate          float64 `json:"rate"`
}

// DashboardStatsResponse is the landing summary.
type DashboardStatsResponse struct {
	Students    int64                      `json:"students"`
	Modules     int64                      `json:"modules"`
	Enrollments int64                      `json:"enrollments"`
	Absences    int64                      `json:"absences"`
	TopAbsences []repositories.AbsenceTally `json:"top_absences"`
}

// TranscriptResponse bundles everything a transcript render needs.
type TranscriptResponse struct {
	Student *models.Student             `json:"student"`
	Rows    []repositories.TranscriptRow `json:"rows"`
	Average AverageResponse             `json:"average"`
}

// AttestationResponse carries the enrollment certificate fields. Track and
// level come from the student's most recent enrollment for the year.
type AttestationResponse struct {
	Matricule    string `json:"matricule"`
	LastName     string `json:"last_name"`
	FirstName    string `json:"first_name"`
	AcademicYear string `json:"academic_year"`
	TrackCode    string `json:"track_code"`
	TrackName    string `json:"track_name"`
	LevelCode    string `json:"level_code"`
	LevelName    string `json:"level_name"`
	Status       string `json:"status"`
}

// ModuleSeed is one entry of a catalogue bulk load.
type ModuleSeed struct {
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	Coefficient float64  `json:"coefficient"`
	Credits     *int     `json:"credits,omitempty"`
	TrackCode   *string  `json:"track_code,omitempty"`
	LevelCode   *string  `json:"level_code,omitempty"`
}

// ===== SERVICE INTERFACES =====

type StudentService interface {
	Create(ctx context.Context, req *StudentCreateRequest) (*models.Student, error)
	GetByID(ctx context.Context, id uint) (*models.Student, error)
	GetByMatricule(ctx context.Context, matricule string) (*models.Student, error)
	List(ctx context.Context, filters repositories.StudentFilters) ([]*models.Student, int64, error)
	Delete(ctx context.Context, id uint) error
	GenerateMatricule(ctx context.Context, lastName, firstName string) (string, error)
	ImportCSV(ctx context.Context, r io.Reader) (*ImportReport, error)
	ExportCSV(ctx context.Context, w io.Writer) error
}

type AcademicService interface {
	CreateTrack(ctx context.Context, req *TrackCreateRequest) (*models.Track, error)
	ListTracks(ctx context.Context) ([]*models.Track, error)
	DeleteTrack(ctx context.Context, id uint) error

	CreateLevel(ctx context.Context, req *LevelCreateRequest) (*models.Level, error)
	ListLevels(ctx context.Context) ([]*models.Level, error)
	DeleteLevel(ctx context.Context, id uint) error

	CreateEnrollment(ctx context.Context, req *EnrollmentCreateRequest) (*models.Enrollment, error)
	ListEnrollments(ctx context.Context) ([]*models.Enrollment, error)
	ListStudentEnrollments(ctx context.Context, studentID uint) ([]*models.Enrollment, error)
	DeleteEnrollment(ctx context.Context, id uint) error
}

type ModuleService interface {
	Create(ctx context.Context, req *ModuleCreateRequest) (*models.Module, error)
	GetByID(ctx context.Context, id uint) (*models.Module, error)
	List(ctx context.Context) ([]*models.Module, error)
	Delete(ctx context.Context, id uint) error
	// Seed loads a module catalogue, skipping entries whose code already
	// exists.
	Seed(ctx context.Context, entries []ModuleSeed) (*ImportReport, error)
}

type GradeService interface {
	Create(ctx context.Context, req *GradeCreateRequest, actor string) (*models.Grade, error)
	Update(ctx context.Context, id uint, req *GradeUpdateRequest, actor string) (*models.Grade, error)
	Delete(ctx context.Context, id uint, actor string) error
	List(ctx context.Context, filters repositories.GradeFilters) ([]*models.Grade, int64, error)
	History(ctx context.Context, gradeID uint) ([]*models.GradeAudit, error)
	Average(ctx context.Context, studentID uint) (*AverageResponse, error)
}

type AbsenceService interface {
	Record(ctx context.Context, req *AbsenceCreateRequest) (*models.Absence, error)
	List(ctx context.Context, filters repositories.AbsenceFilters) ([]*models.Absence, int64, error)
	Delete(ctx context.Context, id uint) error
	Stats(ctx context.Context) (*AbsenceStatsResponse, error)
	// Alerts lists students whose absence count reached threshold, most
	// absent first.
	Alerts(ctx context.Context, threshold int64) ([]repositories.AbsenceTally, error)
}

type TeacherService interface {
	Create(ctx context.Context, req *TeacherCreateRequest) (*models.Teacher, error)
	List(ctx context.Context) ([]*models.Teacher, error)
	Delete(ctx context.Context, id uint) error
	Assign(ctx context.Context, req *AssignmentCreateRequest) (*models.TeachingAssignment, error)
	ListAssignments(ctx context.Context) ([]*models.TeachingAssignment, error)
	ListTeacherAssignments(ctx context.Context, teacherID uint) ([]*models.TeachingAssignment, error)
}

type CalendarService interface {
	CreateSemester(ctx context.Context, req *SemesterCreateRequest) (*models.Semester, error)
	ListSemesters(ctx context.Context) ([]*models.Semester, error)
	DeleteSemester(ctx context.Context, id uint) error
	CreatePeriod(ctx context.Context, req *PeriodCreateRequest) (*models.Period, error)
	ListPeriods(ctx context.Context, semesterID uint) ([]*models.Period, error)
}

type DashboardService interface {
	Stats(ctx context.Context) (*DashboardStatsResponse, error)
}

type AuthService interface {
	// Authenticate verifies the credential pair and opens a session. Every
	// failure mode maps to ErrInvalidCredentials.
	Authenticate(ctx context.Context, username, password string) (*Session, error)
	Current(token string) (*Session, error)
	Logout(token string)
}

type ExportService interface {
	ExportStudentsXLSX(ctx context.Context, path string) error
	ExportGradesXLSX(ctx context.Context, path string) error
	ExportAbsencesXLSX(ctx context.Context, path string) error
	Transcript(ctx context.Context, studentID uint) (*TranscriptResponse, error)
	Attestation(ctx context.Context, studentID uint, academicYear string) (*AttestationResponse, error)
}
