package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// StringSlice stores a []string as a JSON text column so the same
// schema works on sqlite and postgres.
type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		s = StringSlice{}
	}
	b, err := json.Marshal(s)
	return string(b), err
}

func (s *StringSlice) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*s = StringSlice{}
		return nil
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	}
	return errors.New("unsupported type for StringSlice")
}

// GameCategories is the fixed category enumeration, in display order.
var GameCategories = []string{
	"puzzle",
	"action",
	"education",
	"entertainment",
	"casual",
	"sports",
	"strategy",
}

// CategoryNames maps category ids to display names.
var CategoryNames = map[string]string{
	"puzzle":        "퍼즐",
	"action":        "액션",
	"education":     "교육",
	"entertainment": "엔터테인먼트",
	"casual":        "캐주얼",
	"sports":        "스포츠",
	"strategy":      "전략",
}

// Game is a catalog entry. URL is either an external embeddable
// address or an internal mini-game identifier (internal://<key>).
// AvgRating and RatingCount are derived from Rating rows and only
// ever written by the rating upsert path.
type Game struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	Title        string      `gorm:"not null" json:"title"`
	Description  string      `gorm:"not null" json:"description"`
	URL          string      `gorm:"not null" json:"url"`
	Thumbnail    *string     `json:"thumbnail"`
	Category     string      `gorm:"not null;index" json:"category"`
	Tags         StringSlice `gorm:"type:text" json:"tags"`
	EmbedAllowed bool        `gorm:"not null;default:true" json:"embed_allowed"`
	PlayCount    int64       `gorm:"not null;default:0" json:"play_count"`
	AvgRating    float64     `gorm:"not null;default:0" json:"avg_rating"`
	RatingCount  int64       `gorm:"not null;default:0" json:"rating_count"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// GameCreateInput - payload for POST /api/games
type GameCreateInput struct {
	Title        string   `json:"title" validate:"required,min=1"`
	Description  string   `json:"description" validate:"required,min=1"`
	URL          string   `json:"url" validate:"required,url"`
	Thumbnail    *string  `json:"thumbnail" validate:"omitempty,url"`
	Category     string   `json:"category" validate:"required,oneof=puzzle action education entertainment casual sports strategy"`
	Tags         []string `json:"tags"`
	EmbedAllowed *bool    `json:"embed_allowed"`
}

// GameUpdateInput - partial payload for PUT /api/games/:id
type GameUpdateInput struct {
	Title        *string  `json:"title" validate:"omitempty,min=1"`
	Description  *string  `json:"description" validate:"omitempty,min=1"`
	URL          *string  `json:"url" validate:"omitempty,url"`
	Thumbnail    *string  `json:"thumbnail" validate:"omitempty,url"`
	Category     *string  `json:"category" validate:"omitempty,oneof=puzzle action education entertainment casual sports strategy"`
	Tags         []string `json:"tags"`
	EmbedAllowed *bool    `json:"embed_allowed"`
}

// PlayInput - payload for POST /api/games/:id/play
type PlayInput struct {
	VisitorID string `json:"visitor_id" validate:"required,min=1"`
	Duration  *int   `json:"duration" validate:"omitempty,gte=0"`
}
