package models

import "time"

// Notebook 笔记本模型
type Notebook struct {
	ID           string    `gorm:"type:varchar(50);primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(100)" json:"name"`
	UserID       string    `gorm:"type:varchar(50);index" json:"user_id"`
	CreatedAt    time.Time `json:"createdAt"`
	LastModified time.Time `json:"lastModified"`
}

// Note 笔记模型
type Note struct {
	ID           string    `gorm:"type:varchar(50);primaryKey" json:"id"`
	Title        string    `gorm:"type:varchar(200)" json:"title"`
	Content      string    `gorm:"type:text" json:"content"`
	NotebookID   string    `gorm:"type:varchar(50);index" json:"notebook_id"`
	UserID       string    `gorm:"type:varchar(50);index" json:"user_id"`
	CreatedAt    time.Time `json:"createdAt"`
	LastModified time.Time `json:"lastModified"`
}
