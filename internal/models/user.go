package models

type UserRole string

const (
	RoleAdmin     UserRole = "ADMIN"
	RoleRegistrar UserRole = "REGISTRAR"
)

// UserAccount gates access to the domain operations. Exactly one admin row is
// seeded when the table is empty.
type UserAccount struct {
	ID           uint     `json:"id" gorm:"primaryKey"`
	Username     string   `json:"username" gorm:"uniqueIndex;not null;size:100"`
	PasswordHash string   `json:"-" gorm:"not null;size:255"`
	Role         UserRole `json:"role" gorm:"not null;size:32"`
	Active       bool     `json:"active" gorm:"default:true"`
}

func (UserAccount) TableName() string {
	return "user_accounts"
}
