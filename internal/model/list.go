package model

import "time"

// List is a column of cards on a board, ordered by Position.
type List struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	BoardID   uint      `gorm:"not null;index" json:"board_id"`
	CreatedAt time.Time `json:"created_at"`
}
