package models

import "time"

// Rating is a visitor's score for a game. At most one row exists per
// (game, visitor) pair; a later submission overwrites score and
// timestamp instead of inserting.
type Rating struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GameID    uint      `gorm:"not null;uniqueIndex:idx_ratings_game_visitor" json:"game_id"`
	VisitorID string    `gorm:"not null;size:64;uniqueIndex:idx_ratings_game_visitor" json:"visitor_id"`
	Score     int       `gorm:"not null" json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

// RatingCreateInput - payload for POST /api/games/:id/rating
type RatingCreateInput struct {
	Score     int    `json:"score" validate:"required,gte=1,lte=5"`
	VisitorID string `json:"visitor_id" validate:"required,min=1"`
}

// RatingSummary is the aggregate view returned by
// GET /api/games/:id/rating. UserRating is nil when no visitor id
// was supplied or that visitor has not rated.
type RatingSummary struct {
	GameID      uint    `json:"game_id"`
	AvgRating   float64 `json:"avg_rating"`
	RatingCount int64   `json:"rating_count"`
	UserRating  *int    `json:"user_rating"`
}
