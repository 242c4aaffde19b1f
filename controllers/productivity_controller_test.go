package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/akzmtmaos/prodactivity-sub000/config"
	"github.com/akzmtmaos/prodactivity-sub000/models"
	"github.com/akzmtmaos/prodactivity-sub000/services"
	"github.com/akzmtmaos/prodactivity-sub000/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	config.Logger = zap.NewNop().Sugar()
	os.Exit(m.Run())
}

var ctrlDBSeq int

// setupRouter 建立内存库和测试路由，uid直接注入以跳过JWT
func setupRouter(t *testing.T, uid string) (*gin.Engine, *gorm.DB) {
	t.Helper()
	ctrlDBSeq++
	dsn := fmt.Sprintf("file:ctrl_test_%d_%s?mode=memory&cache=shared", ctrlDBSeq, t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.MigrateDB(db))
	config.DB = db
	config.RedisClient = nil

	pc := NewProductivityController(services.NewProductivityService(db))
	tc := TaskController{}

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("uid", uid) })
	r.GET("/productivity", pc.GetProductivity)
	r.GET("/productivity/logs", pc.GetProductivityLogs)
	r.POST("/tasks", tc.CreateTask)
	r.DELETE("/tasks/:id", tc.DeleteTask)
	r.POST("/tasks/:id/complete", tc.CompleteTask)
	return r, db
}

func seedUser(t *testing.T, db *gorm.DB, id string) models.User {
	t.Helper()
	user := models.User{ID: id, Username: "student", Email: id + "@example.com", CreatedAt: time.Now()}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]interface{}
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &parsed)
	}
	return w, parsed
}

func TestGetProductivityDailyScenario(t *testing.T) {
	r, db := setupRouter(t, "u-1")
	seedUser(t, db, "u-1")

	today := time.Now().UTC().Format("2006-01-02")
	due, err := services.ParseDate(today)
	require.NoError(t, err)
	for i := 0; i < 9; i++ {
		completedAt := due.Add(10 * time.Hour)
		require.NoError(t, db.Create(&models.Task{
			ID: utils.GenerateID(), Title: "t", DueDate: due, UserID: "u-1",
			IsCompleted: true, CompletedAt: &completedAt,
		}).Error)
	}
	require.NoError(t, db.Create(&models.Task{
		ID: utils.GenerateID(), Title: "t", DueDate: due, UserID: "u-1",
	}).Error)

	w, body := doJSON(t, r, http.MethodGet, "/productivity?view=daily&date="+today, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 90.0, body["completion_rate"])
	assert.Equal(t, 10.0, body["total_tasks"])
	assert.Equal(t, 9.0, body["completed_tasks"])
	assert.Equal(t, models.StatusHighlyProductive, body["status"])

	// 读取的副作用：对应周期日志已被upsert
	var count int64
	db.Model(&models.ProductivityPeriodLog{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

// 非法日期参数回退为今天而不是报错
func TestGetProductivityMalformedDateFallsBackToToday(t *testing.T) {
	r, db := setupRouter(t, "u-1")
	seedUser(t, db, "u-1")

	w, body := doJSON(t, r, http.MethodGet, "/productivity?view=daily&date=not-a-date", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.StatusNoTasks, body["status"])

	var log models.ProductivityPeriodLog
	require.NoError(t, db.First(&log).Error)
	today := services.DateOnly(time.Now().UTC())
	assert.Equal(t, today, services.DateOnly(log.PeriodStart))
}

// 非法视图参数回退为daily
func TestGetProductivityInvalidViewFallsBackToDaily(t *testing.T) {
	r, db := setupRouter(t, "u-1")
	seedUser(t, db, "u-1")

	w, _ := doJSON(t, r, http.MethodGet, "/productivity?view=hourly", "")
	require.Equal(t, http.StatusOK, w.Code)

	var log models.ProductivityPeriodLog
	require.NoError(t, db.First(&log).Error)
	assert.Equal(t, models.PeriodDaily, log.PeriodType)
}

// 任务完成后删除，当天统计依然把它算作已完成
func TestDeleteAfterCompleteKeepsDailyCredit(t *testing.T) {
	r, db := setupRouter(t, "u-1")
	seedUser(t, db, "u-1")

	today := time.Now().UTC().Format("2006-01-02")
	w, body := doJSON(t, r, http.MethodPost, "/tasks", `{"title":"read notes","dueDate":"`+today+`"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	taskID := body["task"].(map[string]interface{})["id"].(string)

	w, _ = doJSON(t, r, http.MethodPost, "/tasks/"+taskID+"/complete", "")
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = doJSON(t, r, http.MethodDelete, "/tasks/"+taskID, "")
	require.Equal(t, http.StatusOK, w.Code)

	w, body = doJSON(t, r, http.MethodGet, "/productivity?view=daily", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1.0, body["total_tasks"])
	assert.Equal(t, 1.0, body["completed_tasks"])
	assert.Equal(t, 100.0, body["completion_rate"])
}

// 每次模型写入都会留下出站同步事件
func TestTaskWritesAppendSyncEvents(t *testing.T) {
	r, db := setupRouter(t, "u-1")
	seedUser(t, db, "u-1")

	today := time.Now().UTC().Format("2006-01-02")
	w, body := doJSON(t, r, http.MethodPost, "/tasks", `{"title":"study","dueDate":"`+today+`"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	taskID := body["task"].(map[string]interface{})["id"].(string)

	w, _ = doJSON(t, r, http.MethodDelete, "/tasks/"+taskID, "")
	require.Equal(t, http.StatusOK, w.Code)

	var events []models.SyncEvent
	require.NoError(t, db.Where("entity_type = ?", "task").Order("created_at ASC").Find(&events).Error)
	require.Len(t, events, 2)
	assert.Equal(t, models.SyncActionUpsert, events[0].Action)
	assert.Equal(t, models.SyncActionDelete, events[1].Action)
}

func TestGetProductivityLogsReturnsWindow(t *testing.T) {
	r, db := setupRouter(t, "u-1")
	seedUser(t, db, "u-1")

	w, body := doJSON(t, r, http.MethodGet, "/productivity/logs?view=daily", "")
	require.Equal(t, http.StatusOK, w.Code)
	logs, ok := body["logs"].([]interface{})
	require.True(t, ok)
	// 当月至今每天一条，倒序
	assert.Equal(t, time.Now().UTC().Day(), len(logs))
	first := logs[0].(map[string]interface{})
	assert.NotEmpty(t, first["period_label"])
	assert.NotNil(t, first["log"])
}
