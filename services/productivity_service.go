package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/akzmtmaos/prodactivity-sub000/config"
	"github.com/akzmtmaos/prodactivity-sub000/models"

	"golang.org/x/net/context"
	"gorm.io/gorm"
)

// 历史浏览时丢弃过旧空周期的界限：
// 周视图28天、月视图90天之前的零任务周期不再返回，
// 近期空周期保留以便前端渲染连续日历
const (
	weeklyEmptyCutoffDays  = 28
	monthlyEmptyCutoffDays = 90
)

// ProductivityService 效率统计服务
// 负责周期边界解析、单周期计算、历史回填与浏览，
// 计算结果总是upsert到周期日志（持久化是副作用，不是主契约）
type ProductivityService struct {
	db    *gorm.DB
	store *TaskStore
	logs  *ProductivityLogRepo
}

func NewProductivityService(db *gorm.DB) *ProductivityService {
	return &ProductivityService{
		db:    db,
		store: NewTaskStore(db),
		logs:  NewProductivityLogRepo(db),
	}
}

func (s *ProductivityService) Logs() *ProductivityLogRepo {
	return s.logs
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// DailyStats 计算单日效率（按完成日期口径）
// 总数 = 当天完成的活跃任务 + 当天到期未完成的活跃任务 + 删除前已完成且完成于当天的任务
func (s *ProductivityService) DailyStats(userID string, day time.Time) (models.ProductivityResponse, error) {
	day = DateOnly(day)

	completed, err := s.store.CompletedOnBetween(userID, day, day)
	if err != nil {
		return models.ProductivityResponse{}, err
	}
	pending, err := s.store.PendingDueBetween(userID, day, day)
	if err != nil {
		return models.ProductivityResponse{}, err
	}
	deletedCompleted, err := s.store.DeletedCompletedOnBetween(userID, day, day)
	if err != nil {
		return models.ProductivityResponse{}, err
	}

	total := len(completed) + len(pending) + len(deletedCompleted)
	done := len(completed) + len(deletedCompleted)

	if total == 0 {
		return models.ProductivityResponse{Status: models.StatusNoTasks}, nil
	}
	rate := round2(float64(done) / float64(total) * 100)
	return models.ProductivityResponse{
		Status:         models.StatusForRate(rate),
		CompletionRate: rate,
		TotalTasks:     total,
		CompletedTasks: done,
	}, nil
}

// 单日的截止日期口径计数，周/月聚合的按天子计算使用
type dayCount struct {
	total     int
	completed int
}

func (c dayCount) percent() float64 {
	if c.total == 0 {
		return 0
	}
	return float64(c.completed) / float64(c.total) * 100
}

// dueDayCounts 把区间内的任务按截止日期分桶
// 活跃任务计入总数，已完成的计入完成数；
// 删除前已完成的任务同时计入总数和完成数，删除前未完成的不计
func (s *ProductivityService) dueDayCounts(userID string, start, end time.Time) (map[string]dayCount, error) {
	tasks, err := s.store.DueBetweenUnscoped(userID, start, end)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]dayCount)
	for _, t := range tasks {
		key := DateOnly(t.DueDate).Format("2006-01-02")
		c := counts[key]
		if t.IsDeleted {
			if t.WasCompleted {
				c.total++
				c.completed++
			}
		} else {
			c.total++
			if t.IsCompleted {
				c.completed++
			}
		}
		counts[key] = c
	}
	return counts, nil
}

// RangeStats 计算多日周期的效率
// 完成率是各天百分比的算术平均（零任务的天按0%计入，不剔除），
// 每天权重相同，与任务量无关；总数/完成数是各天计数之和，仅用于展示
func (s *ProductivityService) RangeStats(userID string, start, end time.Time) (models.ProductivityResponse, error) {
	start, end = DateOnly(start), DateOnly(end)
	counts, err := s.dueDayCounts(userID, start, end)
	if err != nil {
		return models.ProductivityResponse{}, err
	}

	days := 0
	sumPercent := 0.0
	totalTasks := 0
	completedTasks := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		c := counts[d.Format("2006-01-02")]
		sumPercent += c.percent()
		totalTasks += c.total
		completedTasks += c.completed
		days++
	}

	if totalTasks == 0 {
		return models.ProductivityResponse{Status: models.StatusNoTasks}, nil
	}
	rate := round2(sumPercent / float64(days))
	return models.ProductivityResponse{
		Status:         models.StatusForRate(rate),
		CompletionRate: rate,
		TotalTasks:     totalTasks,
		CompletedTasks: completedTasks,
	}, nil
}

// computeFor 按视图选择单日或区间算法
func (s *ProductivityService) computeFor(userID, view string, start, end time.Time) (models.ProductivityResponse, error) {
	if view == models.PeriodDaily {
		return s.DailyStats(userID, start)
	}
	return s.RangeStats(userID, start, end)
}

// RefreshAndGet 解析周期边界、重新计算并覆盖周期日志，返回计算值
// 每次调用都会改写存储的历史行（读取带副作用是刻意保留的行为）
func (s *ProductivityService) RefreshAndGet(userID, view string, target time.Time) (models.ProductivityResponse, time.Time, time.Time, error) {
	start, end := ResolvePeriod(view, target)
	values, err := s.computeFor(userID, view, start, end)
	if err != nil {
		return models.ProductivityResponse{}, start, end, err
	}
	if _, err := s.logs.Upsert(userID, view, start, end, values); err != nil {
		return models.ProductivityResponse{}, start, end, err
	}
	return values, start, end, nil
}

// GetStored 只读访问器：已有日志直接返回，缺失时计算一次并创建，
// 不覆盖已存在的行（与 RefreshAndGet 相对）
func (s *ProductivityService) GetStored(userID, view string, target time.Time) (models.ProductivityResponse, error) {
	start, end := ResolvePeriod(view, target)
	log, err := s.logs.Get(userID, view, start, end)
	if err == nil {
		return models.ProductivityResponse{
			Status:         log.Status,
			CompletionRate: log.CompletionRate,
			TotalTasks:     log.TotalTasks,
			CompletedTasks: log.CompletedTasks,
		}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ProductivityResponse{}, fmt.Errorf("get stored period: %w", err)
	}

	values, err := s.computeFor(userID, view, start, end)
	if err != nil {
		return models.ProductivityResponse{}, err
	}
	if _, err := s.logs.GetOrCreate(userID, view, start, end, values); err != nil {
		return models.ProductivityResponse{}, err
	}
	return values, nil
}

// windowPeriods 枚举锚点日期所在窗口内该粒度的全部周期（升序）
// daily: 锚点所在月的每一天
// weekly: 锚点所在年的全部周一起始周
// monthly: 锚点所在年的12个月
func windowPeriods(view string, anchor time.Time) [][2]time.Time {
	var periods [][2]time.Time
	switch view {
	case models.PeriodWeekly:
		yearStart := time.Date(anchor.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
		start := MondayOf(yearStart)
		if start.Year() < anchor.Year() {
			start = start.AddDate(0, 0, 7)
		}
		for ; start.Year() == anchor.Year(); start = start.AddDate(0, 0, 7) {
			periods = append(periods, [2]time.Time{start, start.AddDate(0, 0, 6)})
		}
	case models.PeriodMonthly:
		for m := time.January; m <= time.December; m++ {
			first := time.Date(anchor.Year(), m, 1, 0, 0, 0, 0, time.UTC)
			periods = append(periods, [2]time.Time{first, first.AddDate(0, 1, -1)})
		}
	default:
		first, last := MonthBounds(anchor)
		for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
			periods = append(periods, [2]time.Time{d, d})
		}
	}
	return periods
}

// ListWindow 浏览历史周期，倒序返回
// 缺失的周期先回填，未来周期完全跳过（不计算、不落库、不返回），
// 周/月视图按界限剔除过旧的空周期
func (s *ProductivityService) ListWindow(userID, view string, anchor, today time.Time) ([]models.PeriodLogResponse, error) {
	anchor, today = DateOnly(anchor), DateOnly(today)
	periods := windowPeriods(view, anchor)

	var out []models.PeriodLogResponse
	for i := len(periods) - 1; i >= 0; i-- {
		start, end := periods[i][0], periods[i][1]
		if start.After(today) {
			continue
		}

		log, err := s.logs.Get(userID, view, start, end)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			values, _, _, rerr := s.RefreshAndGet(userID, view, start)
			if rerr != nil {
				return nil, rerr
			}
			log = &models.ProductivityPeriodLog{
				CompletionRate: values.CompletionRate,
				TotalTasks:     values.TotalTasks,
				CompletedTasks: values.CompletedTasks,
				Status:         values.Status,
			}
		} else if err != nil {
			return nil, fmt.Errorf("list window: %w", err)
		}

		if log.TotalTasks == 0 {
			age := today.Sub(end)
			if view == models.PeriodWeekly && age > weeklyEmptyCutoffDays*24*time.Hour {
				continue
			}
			if view == models.PeriodMonthly && age > monthlyEmptyCutoffDays*24*time.Hour {
				continue
			}
		}

		out = append(out, models.PeriodLogResponse{
			PeriodLabel: PeriodLabel(view, start, end),
			Log: models.ProductivityResponse{
				Status:         log.Status,
				CompletionRate: log.CompletionRate,
				TotalTasks:     log.TotalTasks,
				CompletedTasks: log.CompletedTasks,
			},
		})
	}
	return out, nil
}

// RollupAllUsers 为全部用户回填指定日期的日/周/月日志，定时任务调用
func (s *ProductivityService) RollupAllUsers(day time.Time) error {
	var users []models.User
	if err := s.db.Find(&users).Error; err != nil {
		return fmt.Errorf("list users for rollup: %w", err)
	}

	views := []string{models.PeriodDaily, models.PeriodWeekly, models.PeriodMonthly}
	for _, u := range users {
		for _, view := range views {
			if _, _, _, err := s.RefreshAndGet(u.ID, view, day); err != nil {
				config.Logger.Errorw("定时回填失败",
					"userID", u.ID,
					"view", view,
					"date", day.Format("2006-01-02"),
					"error", err,
				)
			}
		}
	}
	return nil
}

// CacheKey 效率结果的Redis缓存键，按解析后的周期起始日期区分
func CacheKey(userID, view string, start time.Time) string {
	return fmt.Sprintf("productivity:%s:%s:%s", userID, view, start.Format("2006-01-02"))
}

// InvalidateCache 任务变更后删除受影响日期所在周期的缓存
func InvalidateCache(userID string, dates ...time.Time) {
	if config.RedisClient == nil {
		return
	}
	ctx := context.Background()
	for _, d := range dates {
		d = DateOnly(d)
		week := MondayOf(d)
		month, _ := MonthBounds(d)
		config.RedisClient.Del(ctx,
			CacheKey(userID, models.PeriodDaily, d),
			CacheKey(userID, models.PeriodWeekly, week),
			CacheKey(userID, models.PeriodMonthly, month),
		)
	}
}
