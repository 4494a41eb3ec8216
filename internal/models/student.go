package models

const StudentStatusActive = "active"

// Student is the central record of the registry. Matricule is the derived
// enrollment number and is unique across all students.
type Student struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	Matricule string  `json:"matricule" gorm:"uniqueIndex;not null;size:32"`
	LastName  string  `json:"last_name" gorm:"not null;size:100" validate:"required"`
	FirstName string  `json:"first_name" gorm:"not null;size:100" validate:"required"`
	Email     *string `json:"email" gorm:"uniqueIndex;size:255"`
	Status    string  `json:"status" gorm:"default:active;size:50"`

	// Relations
	Enrollments []Enrollment `json:"enrollments,omitempty" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	Grades      []Grade      `json:"grades,omitempty" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	Absences    []Absence    `json:"absences,omitempty" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
}

func (Student) TableName() string {
	return "students"
}
