package controllers

import (
	"net/http"
	"time"

	"github.com/akzmtmaos/prodactivity-sub000/config"
	"github.com/akzmtmaos/prodactivity-sub000/models"
	"github.com/akzmtmaos/prodactivity-sub000/services"
	"github.com/akzmtmaos/prodactivity-sub000/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// EventController 日程事件控制器
type EventController struct{}

// ListEvents 获取日程列表，可按日期过滤
func (ec *EventController) ListEvents(c *gin.Context) {
	uid := c.GetString("uid")
	q := config.DB.Where("user_id = ?", uid)
	if dateStr := c.Query("date"); dateStr != "" {
		if d, err := services.ParseDate(dateStr); err == nil {
			q = q.Where("start_time >= ? AND start_time < ?", d, d.AddDate(0, 0, 1))
		}
	}

	var events []models.ScheduleEvent
	if err := q.Order("start_time ASC").Find(&events).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取日程失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

// CreateEvent 创建日程事件
func (ec *EventController) CreateEvent(c *gin.Context) {
	uid := c.GetString("uid")
	var req models.ScheduleEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的开始时间"})
		return
	}
	endTime, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil || endTime.Before(startTime) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的结束时间"})
		return
	}

	now := time.Now()
	event := models.ScheduleEvent{
		ID:           utils.GenerateID(),
		Title:        req.Title,
		Description:  req.Description,
		StartTime:    startTime,
		EndTime:      endTime,
		UserID:       uid,
		CreatedAt:    now,
		LastModified: now,
	}
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&event).Error; err != nil {
			return err
		}
		return services.AppendSyncEvent(tx, "schedule_event", event.ID, models.SyncActionUpsert, event)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "创建日程失败"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"event": event})
}

// DeleteEvent 删除日程事件
func (ec *EventController) DeleteEvent(c *gin.Context) {
	uid := c.GetString("uid")
	var event models.ScheduleEvent
	if err := config.DB.Where("id = ? AND user_id = ?", c.Param("id"), uid).First(&event).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "日程不存在"})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&event).Error; err != nil {
			return err
		}
		return services.AppendSyncEvent(tx, "schedule_event", event.ID, models.SyncActionDelete, event)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "删除日程失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "日程已删除"})
}
