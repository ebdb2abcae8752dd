package dtos

import "time"

type URLListItem struct {
	Code           string    `json:"code"`
	ShortURL       string    `json:"short_url"`
	Original       string    `json:"original"`
	CreatedAt      time.Time `json:"created_at"`
	Clicks         int64     `json:"clicks"`
	UniqueVisitors int64     `json:"unique_visitors"`
}
