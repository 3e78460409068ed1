package model

import (
	"time"

	"gorm.io/gorm"
)

// PropertyView is one recorded visit to a public share page.
type PropertyView struct {
	gorm.Model
	PropertyID uint      `json:"property_id" gorm:"index"`
	IP         string    `json:"ip" gorm:"index"`
	SessionID  string    `json:"session_id" gorm:"index"`
	UserAgent  string    `json:"user_agent"`
	ViewedAt   time.Time `json:"viewed_at" gorm:"index"`
	IsUnique   bool      `json:"is_unique" gorm:"default:true"`

	Property Property `json:"-" gorm:"foreignKey:PropertyID"`
}

// PropertyStats is the aggregated counter row maintained by the stats cron.
type PropertyStats struct {
	gorm.Model
	PropertyID  uint      `json:"property_id" gorm:"uniqueIndex"`
	TotalViews  int64     `json:"total_views"`
	UniqueViews int64     `json:"unique_views"`
	WeeklyViews int64     `json:"weekly_views"`
	LastUpdated time.Time `json:"last_updated"`

	Property Property `json:"-" gorm:"foreignKey:PropertyID"`
}
