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

// DeckController 闪卡卡组控制器
type DeckController struct{}

// ListDecks 获取卡组列表
func (dc *DeckController) ListDecks(c *gin.Context) {
	uid := c.GetString("uid")
	var decks []models.Deck
	if err := config.DB.Where("user_id = ?", uid).Order("created_at DESC").Find(&decks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取卡组失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"decks": decks})
}

// CreateDeck 创建卡组
func (dc *DeckController) CreateDeck(c *gin.Context) {
	uid := c.GetString("uid")
	var req models.DeckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	deck := models.Deck{
		ID:           utils.GenerateID(),
		Name:         req.Name,
		UserID:       uid,
		CreatedAt:    now,
		LastModified: now,
	}
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&deck).Error; err != nil {
			return err
		}
		return services.AppendSyncEvent(tx, "deck", deck.ID, models.SyncActionUpsert, deck)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "创建卡组失败"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"deck": deck})
}

// ListFlashcards 获取卡组内的闪卡
func (dc *DeckController) ListFlashcards(c *gin.Context) {
	uid := c.GetString("uid")
	var cards []models.Flashcard
	if err := config.DB.Where("user_id = ? AND deck_id = ?", uid, c.Param("id")).
		Order("created_at ASC").Find(&cards).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取闪卡失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"flashcards": cards})
}

// CreateFlashcard 创建闪卡
func (dc *DeckController) CreateFlashcard(c *gin.Context) {
	uid := c.GetString("uid")
	var req models.FlashcardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var deck models.Deck
	if err := config.DB.Where("id = ? AND user_id = ?", req.DeckID, uid).First(&deck).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "卡组不存在"})
		return
	}

	now := time.Now()
	card := models.Flashcard{
		ID:           utils.GenerateID(),
		Front:        req.Front,
		Back:         req.Back,
		DeckID:       deck.ID,
		UserID:       uid,
		CreatedAt:    now,
		LastModified: now,
	}
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&card).Error; err != nil {
			return err
		}
		return services.AppendSyncEvent(tx, "flashcard", card.ID, models.SyncActionUpsert, card)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "创建闪卡失败"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"flashcard": card})
}

// DeleteFlashcard 删除闪卡
func (dc *DeckController) DeleteFlashcard(c *gin.Context) {
	uid := c.GetString("uid")
	var card models.Flashcard
	if err := config.DB.Where("id = ? AND user_id = ?", c.Param("id"), uid).First(&card).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "闪卡不存在"})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&card).Error; err != nil {
			return err
		}
		return services.AppendSyncEvent(tx, "flashcard", card.ID, models.SyncActionDelete, card)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "删除闪卡失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "闪卡已删除"})
}
