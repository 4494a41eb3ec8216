package models

const EnrollmentStatusEnrolled = "enrolled"

// Track is a program of study (filière). Deletion is blocked while an
// enrollment references it; modules keep a nullable reference instead.
type Track struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Code string `json:"code" gorm:"uniqueIndex;not null;size:32" validate:"required"`
	Name string `json:"name" gorm:"not null;size:200" validate:"required"`
}

func (Track) TableName() string {
	return "tracks"
}

// Level is an academic stage within a track (niveau). SortOrder is only used
// for display ordering and may be absent.
type Level struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Code      string `json:"code" gorm:"uniqueIndex;not null;size:32" validate:"required"`
	Name      string `json:"name" gorm:"not null;size:200" validate:"required"`
	SortOrder *int   `json:"sort_order"`
}

func (Level) TableName() string {
	return "levels"
}

// Enrollment registers a student in one track and level for one academic-year
// label. A student may hold several enrollments, including within one year.
type Enrollment struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	StudentID    uint   `json:"student_id" gorm:"not null;index"`
	TrackID      uint   `json:"track_id" gorm:"not null;index"`
	LevelID      uint   `json:"level_id" gorm:"not null;index"`
	AcademicYear string `json:"academic_year" gorm:"not null;size:32"`
	Status       string `json:"status" gorm:"default:enrolled;size:50"`

	Student Student `json:"student,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Track   Track   `json:"track,omitempty" gorm:"constraint:OnDelete:RESTRICT"`
	Level   Level   `json:"level,omitempty" gorm:"constraint:OnDelete:RESTRICT"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
