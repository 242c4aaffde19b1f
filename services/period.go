package services

import (
	"time"
)

// DateOnly 将时间截断为当天零点（UTC），日期一律按此规范化后比较
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate 解析 YYYY-MM-DD 格式日期
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	return DateOnly(t), nil
}

// MondayOf 返回日期所在周的周一
func MondayOf(d time.Time) time.Time {
	d = DateOnly(d)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// MonthBounds 返回日期所在月份的第一天和最后一天
func MonthBounds(d time.Time) (time.Time, time.Time) {
	first := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first, last
}

// ResolvePeriod 根据视图类型把目标日期解析为具体周期边界（含端点）
// daily: start = end = 目标日期
// weekly: 周一起始，共7天
// monthly: 自然月（正确处理闰年二月和12月跨年）
func ResolvePeriod(view string, target time.Time) (start, end time.Time) {
	target = DateOnly(target)
	switch view {
	case "weekly":
		start = MondayOf(target)
		end = start.AddDate(0, 0, 6)
	case "monthly":
		start, end = MonthBounds(target)
	default: // daily
		start, end = target, target
	}
	return start, end
}

// PeriodLabel 生成展示用的周期标签
func PeriodLabel(view string, start, end time.Time) string {
	switch view {
	case "weekly":
		return start.Format("Jan 2") + " - " + end.Format("Jan 2, 2006")
	case "monthly":
		return start.Format("January 2006")
	default:
		return start.Format("Jan 2, 2006")
	}
}
