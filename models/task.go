package models

import (
	"time"
)

// 任务优先级
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Task 任务模型
type Task struct {
	ID          string     `gorm:"type:varchar(50);primaryKey" json:"id"`
	Title       string     `gorm:"type:varchar(200)" json:"title"`
	Notes       string     `gorm:"type:text" json:"notes"`
	DueDate     time.Time  `gorm:"type:date;index:idx_tasks_user_due" json:"dueDate"` // 截止日期（仅日期）
	Priority    string     `gorm:"type:varchar(10);default:medium" json:"priority"`
	Category    string     `gorm:"type:varchar(50)" json:"category"`
	IsCompleted bool       `gorm:"default:false" json:"isCompleted"`
	CompletedAt *time.Time `json:"completedAt"` // 仅在真正完成时设置
	UserID      string     `gorm:"type:varchar(50);index:idx_tasks_user_due" json:"user_id"`

	// 软删除：历史统计需要保留删除时的完成状态
	IsDeleted    bool       `gorm:"default:false" json:"isDeleted"`
	DeletedAt    *time.Time `json:"deletedAt"`
	WasCompleted bool       `gorm:"default:false" json:"wasCompleted"` // 删除时是否已完成

	CreatedAt    time.Time `json:"createdAt"`
	LastModified time.Time `json:"lastModified"`
}

// SoftDelete 标记删除并固化删除时的完成状态
func (t *Task) SoftDelete(now time.Time) {
	t.IsDeleted = true
	t.DeletedAt = &now
	t.WasCompleted = t.IsCompleted
	t.LastModified = now
}

// MarkCompleted 标记完成并记录完成时间
func (t *Task) MarkCompleted(now time.Time) {
	t.IsCompleted = true
	t.CompletedAt = &now
	t.LastModified = now
}

// MarkUncompleted 取消完成状态
func (t *Task) MarkUncompleted(now time.Time) {
	t.IsCompleted = false
	t.CompletedAt = nil
	t.LastModified = now
}
