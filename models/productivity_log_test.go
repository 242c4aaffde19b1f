package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStatusForRateThresholds(t *testing.T) {
	cases := []struct {
		rate float64
		want string
	}{
		{100, StatusHighlyProductive},
		{90, StatusHighlyProductive},
		{89.99, StatusProductive},
		{70, StatusProductive},
		{69.99, StatusModeratelyProductive},
		{40, StatusModeratelyProductive},
		{39.99, StatusLowProductive},
		{0, StatusLowProductive},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, StatusForRate(c.rate), "rate=%v", c.rate)
	}
}

func TestTaskSoftDeleteCapturesCompletionState(t *testing.T) {
	now := date(2025, 9, 1)

	done := Task{}
	done.MarkCompleted(now)
	done.SoftDelete(now)
	assert.True(t, done.WasCompleted)
	assert.True(t, done.IsDeleted)
	assert.NotNil(t, done.DeletedAt)

	pending := Task{}
	pending.SoftDelete(now)
	assert.False(t, pending.WasCompleted)
}

func TestTaskMarkUncompletedClearsTimestamp(t *testing.T) {
	now := date(2025, 9, 1)
	task := Task{}
	task.MarkCompleted(now)
	assert.NotNil(t, task.CompletedAt)

	task.MarkUncompleted(now)
	assert.False(t, task.IsCompleted)
	assert.Nil(t, task.CompletedAt)
}
