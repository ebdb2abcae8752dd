package entities

import "time"

type ShortURL struct {
	ID          uint      `gorm:"primaryKey"`
	Code        string    `gorm:"uniqueIndex;size:16;not null"`
	OriginalURL string    `gorm:"size:2048;not null"`
	OwnerID     *string   `gorm:"size:64"`
	Clicks      int64     `gorm:"not null;default:0"`
	CreatedAt   time.Time `gorm:"not null"`
}
