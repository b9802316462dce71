package models

import "time"

// Comment is a visitor comment on a game. Comments are created and
// deleted, never edited.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GameID    uint      `gorm:"not null;index" json:"game_id"`
	Nickname  string    `gorm:"not null;size:50" json:"nickname"`
	Content   string    `gorm:"not null;size:500" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CommentCreateInput - payload for POST /api/games/:id/comments
type CommentCreateInput struct {
	Nickname string `json:"nickname" validate:"required,min=1,max=50"`
	Content  string `json:"content" validate:"required,min=1,max=500"`
}
