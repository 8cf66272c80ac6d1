package model

import "time"

// Sex values accepted on a profile.
const (
	SexMale   = "male"
	SexFemale = "female"
)

// Activity levels and their metabolic multipliers.
const (
	ActivityInactive = "inactive"
	ActivityLow      = "low"
	ActivityMedium   = "medium"
	ActivityHigh     = "high"
	ActivityVeryHigh = "very_high"
)

// ActivityFactors maps an activity level to its BMR multiplier.
var ActivityFactors = map[string]float64{
	ActivityInactive: 1.2,
	ActivityLow:      1.4,
	ActivityMedium:   1.6,
	ActivityHigh:     1.8,
	ActivityVeryHigh: 2.1,
}

// Profile is a user's physiological record plus the daily requirement
// derived from it. Requirement columns are recomputed whenever the
// physical attributes change, never read back stale.
type Profile struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	UserID   uint   `json:"user_id" gorm:"uniqueIndex;not null"`
	WeightKg uint   `json:"weight_kg"`
	HeightCm uint   `json:"height_cm"`
	Age      uint   `json:"age"`
	Sex      string `json:"sex" gorm:"size:16"`
	Activity string `json:"activity" gorm:"size:32"`

	// Computed daily requirement.
	DailyKcal uint `json:"daily_kcal"`
	CarbsG    uint `json:"carbs_g"`
	FatG      uint `json:"fat_g"`
	ProteinG  uint `json:"protein_g"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Complete reports whether the profile carries enough data to compute
// a daily requirement.
func (p *Profile) Complete() bool {
	return p.WeightKg > 0 && p.HeightCm > 0 && p.Age > 0 && p.Sex != "" && p.Activity != ""
}
