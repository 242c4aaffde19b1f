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

// TaskController 任务控制器
type TaskController struct{}

// ListTasks 获取任务列表，可按截止日期过滤
func (tc *TaskController) ListTasks(c *gin.Context) {
	uid := c.GetString("uid")

	var dueOn *time.Time
	if dateStr := c.Query("date"); dateStr != "" {
		if d, err := services.ParseDate(dateStr); err == nil {
			dueOn = &d
		}
		// 无效日期按无过滤处理
	}

	store := services.NewTaskStore(config.DB)
	tasks, err := store.ListActive(uid, dueOn)
	if err != nil {
		config.Logger.Errorw("获取任务列表失败", "error", err, "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取任务列表失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// CreateTask 创建任务
func (tc *TaskController) CreateTask(c *gin.Context) {
	uid := c.GetString("uid")

	var req models.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dueDate, err := services.ParseDate(req.DueDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的日期格式"})
		return
	}

	now := time.Now()
	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	task := models.Task{
		ID:           utils.GenerateID(),
		Title:        req.Title,
		Notes:        req.Notes,
		DueDate:      dueDate,
		Priority:     priority,
		Category:     req.Category,
		UserID:       uid,
		CreatedAt:    now,
		LastModified: now,
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&task).Error; err != nil {
			return err
		}
		return services.AppendSyncEvent(tx, "task", task.ID, models.SyncActionUpsert, task)
	})
	if err != nil {
		config.Logger.Errorw("创建任务失败", "error", err, "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "创建任务失败"})
		return
	}

	services.InvalidateCache(uid, task.DueDate)
	c.JSON(http.StatusCreated, gin.H{"task": task})
}

// 按所有者加载任务（默认视角，不含软删除）
func findOwnedTask(c *gin.Context) (*models.Task, bool) {
	uid := c.GetString("uid")
	var task models.Task
	if err := config.DB.Where("id = ? AND user_id = ? AND is_deleted = ?",
		c.Param("id"), uid, false).First(&task).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "任务不存在"})
		return nil, false
	}
	return &task, true
}

// GetTask 获取单个任务
func (tc *TaskController) GetTask(c *gin.Context) {
	task, ok := findOwnedTask(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": task})
}

// UpdateTask 更新任务
func (tc *TaskController) UpdateTask(c *gin.Context) {
	task, ok := findOwnedTask(c)
	if !ok {
		return
	}

	var req models.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	oldDue := task.DueDate
	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Notes != nil {
		task.Notes = *req.Notes
	}
	if req.DueDate != nil {
		d, err := services.ParseDate(*req.DueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "无效的日期格式"})
			return
		}
		task.DueDate = d
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.Category != nil {
		task.Category = *req.Category
	}
	task.LastModified = time.Now()

	if err := saveTaskWithSync(task); err != nil {
		config.Logger.Errorw("更新任务失败", "error", err, "taskID", task.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "更新任务失败"})
		return
	}

	services.InvalidateCache(task.UserID, oldDue, task.DueDate)
	c.JSON(http.StatusOK, gin.H{"task": task})
}

// CompleteTask 标记任务完成
func (tc *TaskController) CompleteTask(c *gin.Context) {
	task, ok := findOwnedTask(c)
	if !ok {
		return
	}

	task.MarkCompleted(time.Now().UTC())
	if err := saveTaskWithSync(task); err != nil {
		config.Logger.Errorw("完成任务失败", "error", err, "taskID", task.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "完成任务失败"})
		return
	}

	services.InvalidateCache(task.UserID, task.DueDate, *task.CompletedAt)
	c.JSON(http.StatusOK, gin.H{"task": task})
}

// UncompleteTask 取消任务完成状态
func (tc *TaskController) UncompleteTask(c *gin.Context) {
	task, ok := findOwnedTask(c)
	if !ok {
		return
	}

	oldCompletedAt := task.CompletedAt
	task.MarkUncompleted(time.Now().UTC())
	if err := saveTaskWithSync(task); err != nil {
		config.Logger.Errorw("取消完成失败", "error", err, "taskID", task.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "取消完成失败"})
		return
	}

	affected := []time.Time{task.DueDate}
	if oldCompletedAt != nil {
		affected = append(affected, *oldCompletedAt)
	}
	services.InvalidateCache(task.UserID, affected...)
	c.JSON(http.StatusOK, gin.H{"task": task})
}

// DeleteTask 软删除任务
// 删除时固化完成状态，保证历史效率统计在删除后依然准确
func (tc *TaskController) DeleteTask(c *gin.Context) {
	task, ok := findOwnedTask(c)
	if !ok {
		return
	}

	task.SoftDelete(time.Now().UTC())
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(task).Error; err != nil {
			return err
		}
		return services.AppendSyncEvent(tx, "task", task.ID, models.SyncActionDelete, task)
	})
	if err != nil {
		config.Logger.Errorw("删除任务失败", "error", err, "taskID", task.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "删除任务失败"})
		return
	}

	affected := []time.Time{task.DueDate}
	if task.CompletedAt != nil {
		affected = append(affected, *task.CompletedAt)
	}
	services.InvalidateCache(task.UserID, affected...)
	c.JSON(http.StatusOK, gin.H{"message": "任务已删除"})
}

func saveTaskWithSync(task *models.Task) error {
	return config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(task).Error; err != nil {
			return err
		}
		return services.AppendSyncEvent(tx, "task", task.ID, models.SyncActionUpsert, task)
	})
}
