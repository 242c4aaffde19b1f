package models

import (
	"time"
)

// 统计周期类型
const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
)

// 效率状态标签，由完成率唯一决定
const (
	StatusHighlyProductive     = "Highly Productive"
	StatusProductive           = "Productive"
	StatusModeratelyProductive = "Moderately Productive"
	StatusLowProductive        = "Low Productive"
	StatusNoTasks              = "No Tasks"
)

// ProductivityPeriodLog 效率周期日志
// 同一 (用户, 周期类型, 起止日期) 只允许一行，重算时原地覆盖
type ProductivityPeriodLog struct {
	ID             string    `gorm:"type:varchar(50);primaryKey" json:"id"`
	UserID         string    `gorm:"type:varchar(50);index:idx_user_period_range,unique" json:"user_id"`
	PeriodType     string    `gorm:"type:varchar(10);index:idx_user_period_range,unique" json:"periodType"`
	PeriodStart    time.Time `gorm:"type:date;index:idx_user_period_range,unique" json:"periodStart"`
	PeriodEnd      time.Time `gorm:"type:date;index:idx_user_period_range,unique" json:"periodEnd"` // 含端点
	CompletionRate float64   `json:"completionRate"` // 0-100
	TotalTasks     int       `json:"totalTasks"`
	CompletedTasks int       `json:"completedTasks"`
	Status         string    `gorm:"type:varchar(30)" json:"status"`
	LoggedAt       time.Time `json:"loggedAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (ProductivityPeriodLog) TableName() string {
	return "productivity_period_logs"
}

// StatusForRate 按固定阈值将完成率映射为状态标签
func StatusForRate(rate float64) string {
	switch {
	case rate >= 90:
		return StatusHighlyProductive
	case rate >= 70:
		return StatusProductive
	case rate >= 40:
		return StatusModeratelyProductive
	default:
		return StatusLowProductive
	}
}
