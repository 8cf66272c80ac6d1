package model

import "time"

// APIToken is the opaque credential securing the data API. One row per
// user; rotation replaces Key in place and invalidates the old value
// immediately.
type APIToken struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	Key       string    `json:"key" gorm:"uniqueIndex;size:64;not null"`
	RotatedAt time.Time `json:"rotated_at"`
	CreatedAt time.Time `json:"created_at"`
}
