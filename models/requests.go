package models

import (
	"fmt"
)

// RegisterRequest 注册请求结构体
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest 登录请求结构体
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CreateTaskRequest 创建任务请求结构体
type CreateTaskRequest struct {
	Title    string `json:"title" binding:"required"`
	Notes    string `json:"notes"`
	DueDate  string `json:"dueDate" binding:"required"` // YYYY-MM-DD
	Priority string `json:"priority"`
	Category string `json:"category"`
}

func (r *CreateTaskRequest) Validate() error {
	switch r.Priority {
	case "", PriorityLow, PriorityMedium, PriorityHigh:
		return nil
	}
	return fmt.Errorf("invalid priority, must be one of: low, medium, high")
}

// UpdateTaskRequest 更新任务请求结构体，指针字段表示按需更新
type UpdateTaskRequest struct {
	Title    *string `json:"title"`
	Notes    *string `json:"notes"`
	DueDate  *string `json:"dueDate"` // YYYY-MM-DD
	Priority *string `json:"priority"`
	Category *string `json:"category"`
}

// NotebookRequest 笔记本请求结构体
type NotebookRequest struct {
	Name string `json:"name" binding:"required"`
}

// NoteRequest 笔记请求结构体
type NoteRequest struct {
	Title      string `json:"title" binding:"required"`
	Content    string `json:"content"`
	NotebookID string `json:"notebookId"`
}

// DeckRequest 卡组请求结构体
type DeckRequest struct {
	Name string `json:"name" binding:"required"`
}

// FlashcardRequest 闪卡请求结构体
type FlashcardRequest struct {
	Front  string `json:"front" binding:"required"`
	Back   string `json:"back" binding:"required"`
	DeckID string `json:"deckId" binding:"required"`
}

// ScheduleEventRequest 日程事件请求结构体
type ScheduleEventRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	StartTime   string `json:"startTime" binding:"required"` // RFC3339
	EndTime     string `json:"endTime" binding:"required"`   // RFC3339
}
