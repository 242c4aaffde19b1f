package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/akzmtmaos/prodactivity-sub000/config"
	"github.com/akzmtmaos/prodactivity-sub000/models"
	"github.com/akzmtmaos/prodactivity-sub000/utils"

	"gorm.io/gorm"
)

// ProductivityLogRepo 效率周期日志仓库
// 以 (用户, 周期类型, 起止日期) 为键做幂等upsert，并发覆盖取后写
type ProductivityLogRepo struct {
	db *gorm.DB
}

func NewProductivityLogRepo(db *gorm.DB) *ProductivityLogRepo {
	return &ProductivityLogRepo{db: db}
}

// Get 按周期键读取已有日志，不存在时返回 gorm.ErrRecordNotFound
func (r *ProductivityLogRepo) Get(userID, periodType string, start, end time.Time) (*models.ProductivityPeriodLog, error) {
	var log models.ProductivityPeriodLog
	err := r.db.Where("user_id = ? AND period_type = ? AND period_start = ? AND period_end = ?",
		userID, periodType, DateOnly(start), DateOnly(end)).First(&log).Error
	if err != nil {
		return nil, err
	}
	return &log, nil
}

// GetOrCreate 存在即返回已有行，否则用给定值创建
func (r *ProductivityLogRepo) GetOrCreate(userID, periodType string, start, end time.Time, values models.ProductivityResponse) (*models.ProductivityPeriodLog, error) {
	existing, err := r.Get(userID, periodType, start, end)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("get period log: %w", err)
	}
	return r.Upsert(userID, periodType, start, end, values)
}

// Upsert 始终用新计算值覆盖周期日志，不存在时创建
// 创建与覆盖分别记录日志，便于观察"读取即改写历史"的行为
func (r *ProductivityLogRepo) Upsert(userID, periodType string, start, end time.Time, values models.ProductivityResponse) (*models.ProductivityPeriodLog, error) {
	start, end = DateOnly(start), DateOnly(end)
	now := time.Now()

	var result *models.ProductivityPeriodLog
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var log models.ProductivityPeriodLog
		err := tx.Where("user_id = ? AND period_type = ? AND period_start = ? AND period_end = ?",
			userID, periodType, start, end).First(&log).Error

		created := false
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log = models.ProductivityPeriodLog{
				ID:          utils.GenerateID(),
				UserID:      userID,
				PeriodType:  periodType,
				PeriodStart: start,
				PeriodEnd:   end,
				LoggedAt:    now,
			}
			created = true
		} else if err != nil {
			return fmt.Errorf("find period log: %w", err)
		}

		log.CompletionRate = values.CompletionRate
		log.TotalTasks = values.TotalTasks
		log.CompletedTasks = values.CompletedTasks
		log.Status = values.Status
		log.UpdatedAt = now

		if err := tx.Save(&log).Error; err != nil {
			return fmt.Errorf("save period log: %w", err)
		}

		if err := AppendSyncEvent(tx, "productivity_log", log.ID, models.SyncActionUpsert, log); err != nil {
			return err
		}

		if created {
			config.Logger.Infow("创建效率周期日志",
				"userID", userID,
				"periodType", periodType,
				"periodStart", start.Format("2006-01-02"),
				"status", log.Status,
			)
		} else {
			config.Logger.Infow("覆盖效率周期日志",
				"userID", userID,
				"periodType", periodType,
				"periodStart", start.Format("2006-01-02"),
				"status", log.Status,
			)
		}

		result = &log
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListBetween 按起始日期倒序列出窗口内已有日志
func (r *ProductivityLogRepo) ListBetween(userID, periodType string, start, end time.Time) ([]models.ProductivityPeriodLog, error) {
	var logs []models.ProductivityPeriodLog
	if err := r.db.Where("user_id = ? AND period_type = ? AND period_start >= ? AND period_start <= ?",
		userID, periodType, DateOnly(start), DateOnly(end)).
		Order("period_start DESC").Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("list period logs: %w", err)
	}
	return logs, nil
}
