package models

type AuditAction string

const (
	AuditInsert AuditAction = "INSERT"
	AuditUpdate AuditAction = "UPDATE"
	AuditDelete AuditAction = "DELETE"
)

// Grade links a student and a module with a value in [0,20]. The range is
// enforced at the service boundary, not by the store.
type Grade struct {
	ID           uint    `json:"id" gorm:"primaryKey"`
	StudentID    uint    `json:"student_id" gorm:"not null;index"`
	ModuleID     uint    `json:"module_id" gorm:"not null;index"`
	Value        float64 `json:"value" gorm:"not null"`
	EvalType     *string `json:"eval_type" gorm:"size:100"`
	AcademicYear *string `json:"academic_year" gorm:"size:32"`

	Student Student `json:"student,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Module  Module  `json:"module,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

func (Grade) TableName() string {
	return "grades"
}

// GradeAudit is the append-only trail of grade mutations. GradeID is a plain
// indexed column, not a foreign key: the history of a grade must survive its
// deletion so that the last record of a deleted grade reads DELETE.
type GradeAudit struct {
	ID        uint        `json:"id" gorm:"primaryKey"`
	GradeID   uint        `json:"grade_id" gorm:"not null;index"`
	Action    AuditAction `json:"action" gorm:"not null;size:16"`
	OldValue  *string     `json:"old_value"`
	NewValue  *string     `json:"new_value"`
	ChangedAt string      `json:"changed_at" gorm:"not null;size:32"`
	ChangedBy string      `json:"changed_by" gorm:"not null;size:100"`
}

func (GradeAudit) TableName() string {
	return "grade_audits"
}

// GradeSnapshot is the serialized old/new payload of an audit record.
type GradeSnapshot struct {
	Value        float64 `json:"value"`
	EvalType     *string `json:"eval_type,omitempty"`
	AcademicYear *string `json:"academic_year,omitempty"`
}
