package model

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	EmailAddress string    `gorm:"uniqueIndex;not null" json:"email_address"`
	Password     string    `gorm:"not null" json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}
