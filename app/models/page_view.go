package models

import "time"

// PageView holds per-day page view counts flushed from the Redis counters.
// Rows are written by the analytics flusher, never by request handlers.
type PageView struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Page      string    `gorm:"type:varchar(100);index:ux_page_views_page_day,unique,priority:1" json:"page"`
	Day       string    `gorm:"type:varchar(10);index:ux_page_views_page_day,unique,priority:2" json:"day"` // YYYY-MM-DD
	Views     int64     `gorm:"default:0" json:"views"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
