package model

import "time"

type Card struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description"`
	Position    int        `gorm:"not null;default:0" json:"position"`
	DueDate     *time.Time `json:"due_date"`
	ListID      uint       `gorm:"not null;index" json:"list_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
