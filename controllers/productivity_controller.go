package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/akzmtmaos/prodactivity-sub000/config"
	"github.com/akzmtmaos/prodactivity-sub000/models"
	"github.com/akzmtmaos/prodactivity-sub000/services"

	"github.com/gin-gonic/gin"
)

// 当前周期结果的缓存时长
const productivityCacheTTL = 60 * time.Second

// ProductivityController 效率统计控制器
type ProductivityController struct {
	svc *services.ProductivityService
}

func NewProductivityController(svc *services.ProductivityService) *ProductivityController {
	return &ProductivityController{svc: svc}
}

// 解析视图参数，非法值回退为 daily
func parseView(c *gin.Context) string {
	switch c.Query("view") {
	case models.PeriodWeekly:
		return models.PeriodWeekly
	case models.PeriodMonthly:
		return models.PeriodMonthly
	default:
		return models.PeriodDaily
	}
}

// 解析目标日期："今天"由客户端时区偏移决定，核心只接收纯日期
// 日期格式错误时回退为今天而不是报错
func parseTargetDate(c *gin.Context) time.Time {
	offsetMin := 0
	if s := c.Query("tz_offset"); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			offsetMin = v
		}
	}
	today := services.DateOnly(time.Now().UTC().Add(time.Duration(offsetMin) * time.Minute))

	if dateStr := c.Query("date"); dateStr != "" {
		if d, err := services.ParseDate(dateStr); err == nil {
			return d
		}
		config.Logger.Debugw("无效的日期参数，回退为今天", "date", dateStr)
	}
	return today
}

// GetProductivity 获取指定视图和日期的效率统计
// 每次请求都会重新计算并覆盖对应的周期日志
func (pc *ProductivityController) GetProductivity(c *gin.Context) {
	uid := c.GetString("uid")
	view := parseView(c)
	target := parseTargetDate(c)

	start, _ := services.ResolvePeriod(view, target)
	cacheKey := services.CacheKey(uid, view, start)

	// 命中缓存直接返回
	if config.RedisClient != nil {
		if cached, err := config.RedisClient.Get(c.Request.Context(), cacheKey).Result(); err == nil {
			var resp models.ProductivityResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				c.JSON(http.StatusOK, resp)
				return
			}
		}
	}

	resp, _, _, err := pc.svc.RefreshAndGet(uid, view, target)
	if err != nil {
		config.Logger.Errorw("效率统计计算失败", "error", err, "uid", uid, "view", view)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "效率统计计算失败"})
		return
	}

	if config.RedisClient != nil {
		if data, err := json.Marshal(resp); err == nil {
			config.RedisClient.Set(c.Request.Context(), cacheKey, data, productivityCacheTTL)
		}
	}

	c.JSON(http.StatusOK, resp)
}

// GetProductivityLogs 浏览效率历史，缺失周期按需回填
func (pc *ProductivityController) GetProductivityLogs(c *gin.Context) {
	uid := c.GetString("uid")
	view := parseView(c)
	anchor := parseTargetDate(c)
	today := parseTodayOnly(c)

	logs, err := pc.svc.ListWindow(uid, view, anchor, today)
	if err != nil {
		config.Logger.Errorw("效率历史查询失败", "error", err, "uid", uid, "view", view)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "效率历史查询失败"})
		return
	}
	if logs == nil {
		logs = []models.PeriodLogResponse{}
	}

	c.JSON(http.StatusOK, gin.H{"logs": logs})
}

// 只按时区偏移解析"今天"，忽略 date 参数
func parseTodayOnly(c *gin.Context) time.Time {
	offsetMin := 0
	if s := c.Query("tz_offset"); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			offsetMin = v
		}
	}
	return services.DateOnly(time.Now().UTC().Add(time.Duration(offsetMin) * time.Minute))
}

// Backfill 手动触发全量回填（内部接口）
func (pc *ProductivityController) Backfill(c *gin.Context) {
	target := parseTargetDate(c)
	if err := pc.svc.RollupAllUsers(target); err != nil {
		config.Logger.Errorw("手动回填失败", "error", err, "date", target.Format("2006-01-02"))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "回填失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "回填完成", "date": target.Format("2006-01-02")})
}
