package services

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/akzmtmaos/prodactivity-sub000/config"
	"github.com/akzmtmaos/prodactivity-sub000/models"
	"github.com/akzmtmaos/prodactivity-sub000/utils"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	config.Logger = zap.NewNop().Sugar()
	os.Exit(m.Run())
}

var testDBSeq int

// newTestDB 每个测试用独立的内存库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	testDBSeq++
	dsn := fmt.Sprintf("file:svc_test_%d_%s?mode=memory&cache=shared", testDBSeq, t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}
	if err := config.MigrateDB(db); err != nil {
		t.Fatalf("迁移测试数据库失败: %v", err)
	}
	return db
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func createTestUser(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	user := models.User{
		ID:        utils.GenerateID(),
		Username:  "student",
		Email:     fmt.Sprintf("%s@example.com", utils.GenerateID()),
		CreatedAt: time.Now(),
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("创建测试用户失败: %v", err)
	}
	return user
}

type taskSpec struct {
	due          time.Time
	completedOn  *time.Time // 完成当天（时间取正午）
	deleted      bool
	wasCompleted bool
}

func createTask(t *testing.T, db *gorm.DB, userID string, spec taskSpec) models.Task {
	t.Helper()
	now := time.Now()
	task := models.Task{
		ID:           utils.GenerateID(),
		Title:        "task",
		DueDate:      spec.due,
		Priority:     models.PriorityMedium,
		UserID:       userID,
		CreatedAt:    now,
		LastModified: now,
	}
	if spec.completedOn != nil {
		at := spec.completedOn.Add(12 * time.Hour)
		task.IsCompleted = true
		task.CompletedAt = &at
	}
	if spec.deleted {
		task.IsDeleted = true
		deletedAt := now
		task.DeletedAt = &deletedAt
		task.WasCompleted = spec.wasCompleted
	}
	if err := db.Create(&task).Error; err != nil {
		t.Fatalf("创建测试任务失败: %v", err)
	}
	return task
}
