package models

// Semester is a unit of the academic calendar. Dates are opaque strings and
// are not checked for chronological order.
type Semester struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	Code      string  `json:"code" gorm:"uniqueIndex;not null;size:32" validate:"required"`
	Label     *string `json:"label" gorm:"size:200"`
	StartDate string  `json:"start_date" gorm:"not null;size:32"`
	EndDate   string  `json:"end_date" gorm:"not null;size:32"`

	Periods []Period `json:"periods,omitempty" gorm:"foreignKey:SemesterID;constraint:OnDelete:CASCADE"`
}

func (Semester) TableName() string {
	return "semesters"
}

// Period is a typed window inside a semester (courses, exams, vacation).
type Period struct {
	ID         uint    `json:"id" gorm:"primaryKey"`
	SemesterID uint    `json:"semester_id" gorm:"not null;index"`
	Type       string  `json:"type" gorm:"not null;size:50"`
	Label      *string `json:"label" gorm:"size:200"`
	StartDate  string  `json:"start_date" gorm:"not null;size:32"`
	EndDate    string  `json:"end_date" gorm:"not null;size:32"`

	Semester Semester `json:"semester,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

func (Period) TableName() string {
	return "periods"
}
