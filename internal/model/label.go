package model

type BoardLabel struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"not null" json:"name"`
	Color   string `gorm:"not null" json:"color"`
	BoardID uint   `gorm:"not null;index" json:"board_id"`
}

