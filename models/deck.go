package models

import "time"

// Deck 闪卡卡组模型
type Deck struct {
	ID           string    `gorm:"type:varchar(50);primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(100)" json:"name"`
	UserID       string    `gorm:"type:varchar(50);index" json:"user_id"`
	CreatedAt    time.Time `json:"createdAt"`
	LastModified time.Time `json:"lastModified"`
}

// Flashcard 闪卡模型
type Flashcard struct {
	ID           string    `gorm:"type:varchar(50);primaryKey" json:"id"`
	Front        string    `gorm:"type:text" json:"front"`
	Back         string    `gorm:"type:text" json:"back"`
	DeckID       string    `gorm:"type:varchar(50);index" json:"deck_id"`
	UserID       string    `gorm:"type:varchar(50);index" json:"user_id"`
	CreatedAt    time.Time `json:"createdAt"`
	LastModified time.Time `json:"lastModified"`
}
