package models

import "time"

// PlayHistory is an append-only record of play actions. Rows are never
// updated or deleted.
type PlayHistory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GameID    uint      `gorm:"not null;index" json:"game_id"`
	VisitorID string    `gorm:"not null;size:64;index" json:"visitor_id"`
	Duration  *int      `json:"duration"`
	PlayedAt  time.Time `gorm:"not null" json:"played_at"`
}
