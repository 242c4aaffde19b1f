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

// NoteController 笔记控制器
type NoteController struct{}

// ListNotebooks 获取笔记本列表
func (nc *NoteController) ListNotebooks(c *gin.Context) {
	uid := c.GetString("uid")
	var notebooks []models.Notebook
	if err := config.DB.Where("user_id = ?", uid).Order("created_at DESC").Find(&notebooks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取笔记本失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notebooks": notebooks})
}

// CreateNotebook 创建笔记本
func (nc *NoteController) CreateNotebook(c *gin.Context) {
	uid := c.GetString("uid")
	var req models.NotebookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	notebook := models.Notebook{
		ID:           utils.GenerateID(),
		Name:         req.Name,
		UserID:       uid,
		CreatedAt:    now,
		LastModified: now,
	}
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&notebook).Error; err != nil {
			return err
		}
		return services.AppendSyncEvent(tx, "notebook", notebook.ID, models.SyncActionUpsert, notebook)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "创建笔记本失败"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"notebook": notebook})
}

// ListNotes 获取笔记列表，可按笔记本过滤
func (nc *NoteController) ListNotes(c *gin.Context) {
	uid := c.GetString("uid")
	q := config.DB.Where("user_id = ?", uid)
	if notebookID := c.Query("notebook"); notebookID != "" {
		q = q.Where("notebook_id = ?", notebookID)
	}
	var notes []models.Note
	if err := q.Order("last_modified DESC").Find(&notes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取笔记失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notes": notes})
}

// CreateNote 创建笔记
func (nc *NoteController) CreateNote(c *gin.Context) {
	uid := c.GetString("uid")
	var req models.NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	note := models.Note{
		ID:           utils.GenerateID(),
		Title:        req.Title,
		Content:      req.Content,
		NotebookID:   req.NotebookID,
		UserID:       uid,
		CreatedAt:    now,
		LastModified: now,
	}
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&note).Error; err != nil {
			return err
		}
		return services.AppendSyncEvent(tx, "note", note.ID, models.SyncActionUpsert, note)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "创建笔记失败"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"note": note})
}

// UpdateNote 更新笔记
func (nc *NoteController) UpdateNote(c *gin.Context) {
	uid := c.GetString("uid")
	var note models.Note
	if err := config.DB.Where("id = ? AND user_id = ?", c.Param("id"), uid).First(&note).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "笔记不存在"})
		return
	}

	var req models.NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	note.Title = req.Title
	note.Content = req.Content
	if req.NotebookID != "" {
		note.NotebookID = req.NotebookID
	}
	note.LastModified = time.Now()

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&note).Error; err != nil {
			return err
		}
		return services.AppendSyncEvent(tx, "note", note.ID, models.SyncActionUpsert, note)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "更新笔记失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"note": note})
}

// DeleteNote 删除笔记
func (nc *NoteController) DeleteNote(c *gin.Context) {
	uid := c.GetString("uid")
	var note models.Note
	if err := config.DB.Where("id = ? AND user_id = ?", c.Param("id"), uid).First(&note).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "笔记不存在"})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&note).Error; err != nil {
			return err
		}
		return services.AppendSyncEvent(tx, "note", note.ID, models.SyncActionDelete, note)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "删除笔记失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "笔记已删除"})
}
