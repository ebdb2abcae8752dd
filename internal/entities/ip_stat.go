package entities

import "time"

// ClickDateLayout is the calendar-date format used for the dedup key.
const ClickDateLayout = "2006-01-02"

// IPStat aggregates visits per (short URL, IP, calendar day). Repeat
// visits on the same day increment ClickCount instead of adding rows.
type IPStat struct {
	ID         uint   `gorm:"primaryKey"`
	ShortURLID uint   `gorm:"uniqueIndex:idx_ip_stats_key;not null"`
	IPAddress  string `gorm:"uniqueIndex:idx_ip_stats_key;size:45;not null"`
	ClickDate  string `gorm:"uniqueIndex:idx_ip_stats_key;size:10;not null"`
	ClickCount int64  `gorm:"not null;default:1"`
}

// DateKey converts a point in time to the UTC calendar date used in
// ClickDate columns.
func DateKey(t time.Time) string {
	return t.UTC().Format(ClickDateLayout)
}
