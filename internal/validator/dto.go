package validator

// StudentCreateRequest carries the fields needed to register a student. The
// matricule is derived, never submitted.
type StudentCreateRequest struct {
	LastName  string  `json:"last_name" validate:"required,not_blank"`
	FirstName string  `json:"first_name" validate:"required,not_blank"`
	Email     *string `json:"email" validate:"omitempty,email"`
}

type TrackCreateRequest struct {
	Code string `json:"code" validate:"required,not_blank"`
	Name string `json:"name" validate:"required,not_blank"`
}

type LevelCreateRequest struct {
	Code      string `json:"code" validate:"required,not_blank"`
	Name      string `json:"name" validate:"required,not_blank"`
	SortOrder *int   `json:"sort_order"`
}

type EnrollmentCreateRequest struct {
	StudentID    uint   `json:"student_id" validate:"required"`
	TrackID      uint   `json:"track_id" validate:"required"`
	LevelID      uint   `json:"level_id" validate:"required"`
	AcademicYear string `json:"academic_year" validate:"required,not_blank"`
}

type ModuleCreateRequest struct {
	Code        string   `json:"code" validate:"required,not_blank"`
	Name        string   `json:"name" validate:"required,not_blank"`
	Coefficient *float64 `json:"coefficient" validate:"required,coefficient"`
	Credits     *int     `json:"credits" validate:"omitempty,gte=0"`
	TrackID     *uint    `json:"track_id"`
	LevelID     *uint    `json:"level_id"`
}

// Grade values use pointers so a legitimate 0 survives the required check.
type GradeCreateRequest struct {
	StudentID    uint     `json:"student_id" validate:"required"`
	ModuleID     uint     `json:"module_id" validate:"required"`
	Value        *float64 `json:"value" validate:"required,grade_value"`
	EvalType     *string  `json:"eval_type"`
	AcademicYear *string  `json:"academic_year"`
}

type GradeUpdateRequest struct {
	Value        *float64 `json:"value" validate:"required,grade_value"`
	EvalType     *string  `json:"eval_type"`
	AcademicYear *string  `json:"academic_year"`
}

type AbsenceCreateRequest struct {
	StudentID uint    `json:"student_id" validate:"required"`
	ModuleID  uint    `json:"module_id" validate:"required"`
	Date      string  `json:"date" validate:"required,not_blank"`
	Justified bool    `json:"justified"`
	Reason    *string `json:"reason"`
}

type TeacherCreateRequest struct {
	LastName  string  `json:"last_name" validate:"required,not_blank"`
	FirstName string  `json:"first_name" validate:"required,not_blank"`
	Email     *string `json:"email" validate:"omitempty,email"`
}

type AssignmentCreateRequest struct {
	TeacherID    uint    `json:"teacher_id" validate:"required"`
	ModuleID     uint    `json:"module_id" validate:"required"`
	AcademicYear *string `json:"academic_year"`
}

type SemesterCreateRequest struct {
	Code      string  `json:"code" validate:"required,not_blank"`
	Label     *string `json:"label"`
	StartDate string  `json:"start_date" validate:"required,not_blank"`
	EndDate   string  `json:"end_date" validate:"required,not_blank"`
}

type PeriodCreateRequest struct {
	SemesterID uint    `json:"semester_id" validate:"required"`
	Type       string  `json:"type" validate:"required,not_blank"`
	Label      *string `json:"label"`
	StartDate  string  `json:"start_date" validate:"required,not_blank"`
	EndDate    string  `json:"end_date" validate:"required,not_blank"`
}
