package models

import "time"

// ScheduleEvent 日程事件模型
type ScheduleEvent struct {
	ID           string    `gorm:"type:varchar(50);primaryKey" json:"id"`
	Title        string    `gorm:"type:varchar(200)" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	StartTime    time.Time `gorm:"index:idx_events_user_start" json:"startTime"`
	EndTime      time.Time `json:"endTime"`
	UserID       string    `gorm:"type:varchar(50);index:idx_events_user_start" json:"user_id"`
	CreatedAt    time.Time `json:"createdAt"`
	LastModified time.Time `json:"lastModified"`
}

func (ScheduleEvent) TableName() string {
	return "schedule_events"
}
