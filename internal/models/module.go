package models

// Module is a gradable course unit. Coefficient is the weighting factor of
// every average computation and is required; a coefficient of 0 contributes
// zero weight. The track/level association is informational and nulled when
// the referenced row disappears.
type Module struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Code        string  `json:"code" gorm:"uniqueIndex;not null;size:32" validate:"required"`
	Name        string  `json:"name" gorm:"not null;size:200" validate:"required"`
	Coefficient float64 `json:"coefficient" gorm:"not null"`
	Credits     *int    `json:"credits"`
	TrackID     *uint   `json:"track_id"`
	LevelID     *uint   `json:"level_id"`

	Track *Track `json:"track,omitempty" gorm:"constraint:OnDelete:SET NULL"`
	Level *Level `json:"level,omitempty" gorm:"constraint:OnDelete:SET NULL"`
}

func (Module) TableName() string {
	return "modules"
}
