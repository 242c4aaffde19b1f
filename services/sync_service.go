package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/akzmtmaos/prodactivity-sub000/config"
	"github.com/akzmtmaos/prodactivity-sub000/models"
	"github.com/akzmtmaos/prodactivity-sub000/utils"

	"gorm.io/gorm"
)

// 单个事件最多推送次数，超过后标记为 failed
const maxSyncAttempts = 5

// AppendSyncEvent 在业务写入的同一事务内追加一条出站同步事件
// 推送由 SyncService 异步完成，这里只负责落库
func AppendSyncEvent(tx *gorm.DB, entityType, entityID, action string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal sync payload: %w", err)
	}
	event := models.SyncEvent{
		ID:         utils.GenerateID(),
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Payload:    string(data),
		Status:     models.SyncPending,
		CreatedAt:  time.Now(),
	}
	if err := tx.Create(&event).Error; err != nil {
		return fmt.Errorf("append sync event: %w", err)
	}
	return nil
}

// SyncService 出站同步器
// 轮询 outbox 中的待推送事件并逐条POST到镜像库端点，
// 只负责尽力送达，业务正确性不依赖它
type SyncService struct {
	db       *gorm.DB
	endpoint string
	apiKey   string
	client   *http.Client
}

func NewSyncService(db *gorm.DB, endpoint, apiKey string) *SyncService {
	return &SyncService{
		db:       db,
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// DrainOnce 推送一批待同步事件
func (s *SyncService) DrainOnce(ctx context.Context) error {
	if s.endpoint == "" {
		return nil
	}

	var events []models.SyncEvent
	if err := s.db.Where("status = ?", models.SyncPending).
		Order("created_at ASC").Limit(50).Find(&events).Error; err != nil {
		return fmt.Errorf("load pending sync events: %w", err)
	}

	for i := range events {
		event := &events[i]
		if err := s.push(ctx, event); err != nil {
			event.Attempts++
			if event.Attempts >= maxSyncAttempts {
				event.Status = models.SyncFailed
				config.Logger.Warnw("同步事件多次失败，放弃",
					"eventID", event.ID,
					"entityType", event.EntityType,
					"attempts", event.Attempts,
				)
			} else {
				config.Logger.Debugw("同步事件推送失败，稍后重试",
					"eventID", event.ID,
					"error", err,
				)
			}
		} else {
			now := time.Now()
			event.Status = models.SyncSent
			event.SentAt = &now
		}
		if err := s.db.Save(event).Error; err != nil {
			return fmt.Errorf("update sync event: %w", err)
		}
	}
	return nil
}

func (s *SyncService) push(ctx context.Context, event *models.SyncEvent) error {
	body, err := json.Marshal(map[string]interface{}{
		"entityType": event.EntityType,
		"entityId":   event.EntityID,
		"action":     event.Action,
		"payload":    json.RawMessage(event.Payload),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sync endpoint returned %d", resp.StatusCode)
	}
	return nil
}
