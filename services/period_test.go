package services

import (
	"testing"
	"time"

	"github.com/akzmtmaos/prodactivity-sub000/models"

	"github.com/stretchr/testify/assert"
)

func TestResolvePeriodDaily(t *testing.T) {
	target := date(2025, 9, 3)
	start, end := ResolvePeriod(models.PeriodDaily, target)
	assert.Equal(t, target, start)
	assert.Equal(t, target, end)
}

func TestResolvePeriodWeeklyStartsMonday(t *testing.T) {
	// 2025-09-03 是周三
	start, end := ResolvePeriod(models.PeriodWeekly, date(2025, 9, 3))
	assert.Equal(t, date(2025, 9, 1), start)
	assert.Equal(t, date(2025, 9, 7), end)
	assert.Equal(t, time.Monday, start.Weekday())

	// 周日归属前一个周一起始的周
	start, end = ResolvePeriod(models.PeriodWeekly, date(2025, 9, 7))
	assert.Equal(t, date(2025, 9, 1), start)
	assert.Equal(t, date(2025, 9, 7), end)
}

func TestResolvePeriodMonthlyLeapFebruary(t *testing.T) {
	start, end := ResolvePeriod(models.PeriodMonthly, date(2024, 2, 15))
	assert.Equal(t, date(2024, 2, 1), start)
	assert.Equal(t, date(2024, 2, 29), end)

	start, end = ResolvePeriod(models.PeriodMonthly, date(2025, 2, 15))
	assert.Equal(t, date(2025, 2, 28), end)
	assert.Equal(t, date(2025, 2, 1), start)
}

func TestResolvePeriodDecemberNoYearRollover(t *testing.T) {
	start, end := ResolvePeriod(models.PeriodMonthly, date(2025, 12, 10))
	assert.Equal(t, date(2025, 12, 1), start)
	assert.Equal(t, date(2025, 12, 31), end)
	assert.Equal(t, 2025, end.Year())
}

func TestPeriodLabel(t *testing.T) {
	assert.Equal(t, "Sep 1, 2025", PeriodLabel(models.PeriodDaily, date(2025, 9, 1), date(2025, 9, 1)))
	assert.Equal(t, "Sep 1 - Sep 7, 2025", PeriodLabel(models.PeriodWeekly, date(2025, 9, 1), date(2025, 9, 7)))
	assert.Equal(t, "September 2025", PeriodLabel(models.PeriodMonthly, date(2025, 9, 1), date(2025, 9, 30)))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-09-01")
	assert.NoError(t, err)
	assert.Equal(t, date(2025, 9, 1), d)

	_, err = ParseDate("not-a-date")
	assert.Error(t, err)
}
