package services

import (
	"context"
	"sync"
	"time"

	"github.com/akzmtmaos/prodactivity-sub000/config"
	"github.com/akzmtmaos/prodactivity-sub000/models"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// SchedulerService 后台定时任务服务
// 由进程入口显式创建、注入和启停，Start 可重入（重复调用不会二次启动）
type SchedulerService struct {
	cron    *cron.Cron
	mu      sync.Mutex
	started bool
}

func NewSchedulerService(loc *time.Location) *SchedulerService {
	return &SchedulerService{
		cron: cron.New(cron.WithLocation(loc)),
	}
}

// RegisterJobs 注册全部定时任务：
// 每天 00:10 回填前一天的效率日志，03:00 清理过期软删除任务，
// 每30秒推送一批出站同步事件
func (s *SchedulerService) RegisterJobs(db *gorm.DB, prod *ProductivityService, sync *SyncService, retentionDays int) error {
	if _, err := s.cron.AddFunc("10 0 * * *", func() {
		yesterday := DateOnly(time.Now()).AddDate(0, 0, -1)
		if err := prod.RollupAllUsers(yesterday); err != nil {
			config.Logger.Errorw("每日效率回填失败", "error", err)
		}
	}); err != nil {
		return err
	}

	if _, err := s.cron.AddFunc("0 3 * * *", func() {
		if err := PurgeDeletedTasks(db, retentionDays); err != nil {
			config.Logger.Errorw("清理软删除任务失败", "error", err)
		}
	}); err != nil {
		return err
	}

	if _, err := s.cron.AddFunc("@every 30s", func() {
		if err := sync.DrainOnce(context.Background()); err != nil {
			config.Logger.Warnw("出站同步推送失败", "error", err)
		}
	}); err != nil {
		return err
	}

	return nil
}

// Start 启动调度器，重复调用直接返回
func (s *SchedulerService) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.cron.Start()
	s.started = true
}

// Started 返回调度器是否已启动
func (s *SchedulerService) Started() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

// Stop 停止调度并等待在跑任务结束
func (s *SchedulerService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.started = false
}

// PurgeDeletedTasks 物理删除超过保留期的软删除任务
func PurgeDeletedTasks(db *gorm.DB, retentionDays int) error {
	if retentionDays <= 0 {
		retentionDays = 30
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	result := db.Where("is_deleted = ? AND deleted_at < ?", true, cutoff).Delete(&models.Task{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		config.Logger.Infow("清理软删除任务", "count", result.RowsAffected)
	}
	return nil
}
