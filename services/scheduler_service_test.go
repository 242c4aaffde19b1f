package services

import (
	"testing"
	"time"

	"github.com/akzmtmaos/prodactivity-sub000/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerStartIsIdempotent(t *testing.T) {
	s := NewSchedulerService(time.UTC)

	s.Start()
	assert.True(t, s.Started())
	// 重复启动不应panic或二次启动
	s.Start()
	assert.True(t, s.Started())

	s.Stop()
	assert.False(t, s.Started())
	// 重复停止同样安全
	s.Stop()
}

func TestSchedulerRegisterJobs(t *testing.T) {
	db := newTestDB(t)
	s := NewSchedulerService(time.UTC)
	prod := NewProductivityService(db)
	sync := NewSyncService(db, "", "")

	require.NoError(t, s.RegisterJobs(db, prod, sync, 30))
	s.Start()
	defer s.Stop()
	assert.True(t, s.Started())
}

func TestPurgeDeletedTasks(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)

	day := date(2025, 9, 1)
	old := createTask(t, db, user.ID, taskSpec{due: day, deleted: true})
	// 删除时间改到保留期之外
	past := time.Now().AddDate(0, 0, -60)
	require.NoError(t, db.Model(&models.Task{}).Where("id = ?", old.ID).Update("deleted_at", past).Error)

	recent := createTask(t, db, user.ID, taskSpec{due: day, deleted: true})
	kept := createTask(t, db, user.ID, taskSpec{due: day})

	require.NoError(t, PurgeDeletedTasks(db, 30))

	var remaining []models.Task
	require.NoError(t, db.Find(&remaining).Error)
	ids := make(map[string]bool)
	for _, task := range remaining {
		ids[task.ID] = true
	}
	assert.False(t, ids[old.ID])
	assert.True(t, ids[recent.ID])
	assert.True(t, ids[kept.ID])
}
