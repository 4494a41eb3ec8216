package models

type Teacher struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	LastName  string  `json:"last_name" gorm:"not null;size:100" validate:"required"`
	FirstName string  `json:"first_name" gorm:"not null;size:100" validate:"required"`
	Email     *string `json:"email" gorm:"uniqueIndex;size:255"`
}

func (Teacher) TableName() string {
	return "teachers"
}

// TeachingAssignment links a teacher to a module for an optional academic
// year. The (teacher, module, year) triple is unique.
type TeachingAssignment struct {
	ID           uint    `json:"id" gorm:"primaryKey"`
	TeacherID    uint    `json:"teacher_id" gorm:"not null;uniqueIndex:idx_assignment"`
	ModuleID     uint    `json:"module_id" gorm:"not null;uniqueIndex:idx_assignment"`
	AcademicYear *string `json:"academic_year" gorm:"size:32;uniqueIndex:idx_assignment"`

	Teacher Teacher `json:"teacher,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Module  Module  `json:"module,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

func (TeachingAssignment) TableName() string {
	return "teaching_assignments"
}
