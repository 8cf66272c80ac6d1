package model

import "time"

// ProductEntry is one logged food item for a profile on a date.
// Macro values are stored already scaled to the logged grams, the way
// the nutrition API reports them.
type ProductEntry struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProfileID uint      `json:"profile_id" gorm:"index:idx_entries_profile_date;not null"`
	Date      time.Time `json:"date" gorm:"type:date;index:idx_entries_profile_date;not null"`
	Name      string    `json:"name" gorm:"size:100;not null"`
	Grams     uint      `json:"grams"`
	Kcal      uint      `json:"kcal"`
	CarbG     uint      `json:"carb_g"`
	FatG      uint      `json:"fat_g"`
	ProteinG  uint      `json:"protein_g"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
