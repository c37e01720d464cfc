package model

import "time"

type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Comment   string    `gorm:"type:text;not null" json:"comment"`
	CardID    uint      `gorm:"not null;index" json:"card_id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
