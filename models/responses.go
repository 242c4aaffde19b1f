package models

// ProductivityResponse 效率统计响应结构体
type ProductivityResponse struct {
	Status         string  `json:"status"`
	CompletionRate float64 `json:"completion_rate"`
	TotalTasks     int     `json:"total_tasks"`
	CompletedTasks int     `json:"completed_tasks"`
}

// PeriodLogResponse 效率历史条目响应结构体
type PeriodLogResponse struct {
	PeriodLabel string               `json:"period_label"`
	Log         ProductivityResponse `json:"log"`
}

// UserResponse 用户响应结构体
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar"`
}
