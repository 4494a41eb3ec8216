package models

// Absence records a student missing a module session on a given date. The
// date is kept as the submitted string and is not validated as a calendar
// date.
type Absence struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	StudentID uint    `json:"student_id" gorm:"not null;index"`
	ModuleID  uint    `json:"module_id" gorm:"not null;index"`
	Date      string  `json:"date" gorm:"column:absence_date;not null;size:32"`
	Justified bool    `json:"justified" gorm:"default:false"`
	Reason    *string `json:"reason" gorm:"size:255"`

	Student Student `json:"student,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Module  Module  `json:"module,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

func (Absence) TableName() string {
	return "absences"
}
