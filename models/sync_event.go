package models

import "time"

// 同步事件状态
const (
	SyncPending = "pending"
	SyncSent    = "sent"
	SyncFailed  = "failed"
)

// 同步事件动作
const (
	SyncActionUpsert = "upsert"
	SyncActionDelete = "delete"
)

// SyncEvent 出站同步事件（outbox）
// 模型写入时与业务数据在同一事务内追加，由后台同步器异步推送到镜像库，
// 核心逻辑不等待也不关心推送结果
type SyncEvent struct {
	ID         string     `gorm:"type:varchar(50);primaryKey" json:"id"`
	EntityType string     `gorm:"type:varchar(50);index:idx_sync_status_created" json:"entityType"`
	EntityID   string     `gorm:"type:varchar(50)" json:"entityId"`
	Action     string     `gorm:"type:varchar(10)" json:"action"`
	Payload    string     `gorm:"type:text" json:"payload"` // 实体快照JSON
	Status     string     `gorm:"type:varchar(10);default:pending;index:idx_sync_status_created" json:"status"`
	Attempts   int        `gorm:"default:0" json:"attempts"`
	CreatedAt  time.Time  `gorm:"index:idx_sync_status_created" json:"createdAt"`
	SentAt     *time.Time `json:"sentAt"`
}
