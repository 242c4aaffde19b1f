package services

import (
	"fmt"
	"time"

	"github.com/akzmtmaos/prodactivity-sub000/models"

	"gorm.io/gorm"
)

// TaskStore 任务读取层
// 历史统计需要两类互不相同的查询：按截止日期和按完成日期，
// 且都要有"仅活跃"和"含软删除"两种视角——被删除前已完成的任务
// 仍要计入它完成那天的效率
type TaskStore struct {
	db *gorm.DB
}

func NewTaskStore(db *gorm.DB) *TaskStore {
	return &TaskStore{db: db}
}

// 日期按 [start, end+1天) 的半开区间匹配时间戳
func dayBounds(start, end time.Time) (time.Time, time.Time) {
	return DateOnly(start), DateOnly(end).AddDate(0, 0, 1)
}

// PendingDueBetween 截止日期在区间内且未完成的活跃任务
func (s *TaskStore) PendingDueBetween(userID string, start, end time.Time) ([]models.Task, error) {
	lo, hi := dayBounds(start, end)
	var tasks []models.Task
	if err := s.db.Where("user_id = ? AND is_deleted = ? AND is_completed = ? AND due_date >= ? AND due_date < ?",
		userID, false, false, lo, hi).Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("pending due between: %w", err)
	}
	return tasks, nil
}

// CompletedOnBetween 完成时间落在区间内的活跃已完成任务
func (s *TaskStore) CompletedOnBetween(userID string, start, end time.Time) ([]models.Task, error) {
	lo, hi := dayBounds(start, end)
	var tasks []models.Task
	if err := s.db.Where("user_id = ? AND is_deleted = ? AND is_completed = ? AND completed_at >= ? AND completed_at < ?",
		userID, false, true, lo, hi).Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("completed on between: %w", err)
	}
	return tasks, nil
}

// DeletedCompletedOnBetween 已软删除、删除时已完成、完成时间落在区间内的任务
func (s *TaskStore) DeletedCompletedOnBetween(userID string, start, end time.Time) ([]models.Task, error) {
	lo, hi := dayBounds(start, end)
	var tasks []models.Task
	if err := s.db.Where("user_id = ? AND is_deleted = ? AND was_completed = ? AND completed_at >= ? AND completed_at < ?",
		userID, true, true, lo, hi).Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("deleted completed on between: %w", err)
	}
	return tasks, nil
}

// DueBetweenUnscoped 截止日期在区间内的全部任务（含软删除），
// 供周/月聚合按天分桶使用
func (s *TaskStore) DueBetweenUnscoped(userID string, start, end time.Time) ([]models.Task, error) {
	lo, hi := dayBounds(start, end)
	var tasks []models.Task
	if err := s.db.Where("user_id = ? AND due_date >= ? AND due_date < ?",
		userID, lo, hi).Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("due between unscoped: %w", err)
	}
	return tasks, nil
}

// ListActive 用户的全部活跃任务，可按截止日期过滤
func (s *TaskStore) ListActive(userID string, dueOn *time.Time) ([]models.Task, error) {
	q := s.db.Where("user_id = ? AND is_deleted = ?", userID, false)
	if dueOn != nil {
		lo, hi := dayBounds(*dueOn, *dueOn)
		q = q.Where("due_date >= ? AND due_date < ?", lo, hi)
	}
	var tasks []models.Task
	if err := q.Order("due_date ASC, created_at DESC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list active: %w", err)
	}
	return tasks, nil
}
