// pkg/api/handlers.go
package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"GoalArena/pkg/catalog"
	"GoalArena/pkg/interaction"
	"GoalArena/pkg/search"
	"GoalArena/pkg/subscription"
)

// Pinger 就绪检查探活依赖，由database.MySQL实现
type Pinger interface {
	Ping() error
}

// Handlers API处理程序
type Handlers struct {
	catalog       *catalog.Service
	search        *search.Service
	interactions  *interaction.Service
	subscriptions *subscription.Service
	db            Pinger
}

// NewHandlers 创建新的API处理程序
func NewHandlers(
	catalogService *catalog.Service,
	searchService *search.Service,
	interactionService *interaction.Service,
	subscriptionService *subscription.Service,
	db Pinger,
) *Handlers {
	return &Handlers{
		catalog:       catalogService,
		search:        searchService,
		interactions:  interactionService,
		subscriptions: subscriptionService,
		db:            db,
	}
}

// HealthCheck 健康检查处理程序
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// ReadinessCheck 就绪检查处理程序，覆盖数据库连通性
func (h *Handlers) ReadinessCheck(c *gin.Context) {
	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
			})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// pageFromQuery 解析分页参数
func pageFromQuery(c *gin.Context) catalog.Page {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	return catalog.Page{
		Page:     page,
		PageSize: pageSize,
		Sort:     c.DefaultQuery("sort", "DESC"),
	}
}

// GetCategories 获取分类列表
func (h *Handlers) GetCategories(c *gin.Context) {
	categories, err := h.catalog.Categories()
	if err != nil {
		HandleError(c, err, "fetch categories")
		return
	}
	Success(c, categories, "Categories retrieved.")
}

// GetVideos 获取视频列表（分页）
func (h *Handlers) GetVideos(c *gin.Context) {
	p := pageFromQuery(c)
	rows, total, err := h.catalog.Videos(p)
	if err != nil {
		HandleError(c, err, "fetch videos")
		return
	}
	Success(c, gin.H{
		"results":    rows,
		"pagination": gin.H{"page": p.Page, "pageSize": p.PageSize, "total": total},
	}, "Videos retrieved.")
}

// GetVideosByCategory 按分类获取视频
func (h *Handlers) GetVideosByCategory(c *gin.Context) {
	categoryName := c.Param("categoryName")
	p := pageFromQuery(c)

	rows, total, err := h.catalog.VideosByCategory(categoryName, p)
	if err != nil {
		HandleError(c, err, "fetch videos")
		return
	}
	Success(c, gin.H{
		"results":    rows,
		"pagination": gin.H{"page": p.Page, "pageSize": p.PageSize, "total": total},
	}, "Videos retrieved.")
}

// GetVideosByCategoryAndDay 按分类+相对日（yesterday|today|tomorrow）获取视频
func (h *Handlers) GetVideosByCategoryAndDay(c *gin.Context) {
	categoryName := c.Param("categoryName")
	filter := c.Param("filter")
	tz := c.DefaultQuery("tz", catalog.DefaultTimezone)
	p := pageFromQuery(c)

	rows, err := h.catalog.VideosByCategoryAndDay(categoryName, filter, tz, p)
	if err != nil {
		HandleError(c, err, "fetch videos")
		return
	}
	Success(c, rows, "Videos retrieved.")
}

// GetVideosByDateRange 按绝对日期区间获取视频
func (h *Handlers) GetVideosByDateRange(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		Error(c, http.StatusBadRequest, "Missing 'from' or 'to' query params")
		return
	}

	fromTime, err := time.Parse("2006-01-02", from)
	if err != nil {
		Error(c, http.StatusBadRequest, "Invalid 'from' date, expected YYYY-MM-DD")
		return
	}
	toTime, err := time.Parse("2006-01-02", to)
	if err != nil {
		Error(c, http.StatusBadRequest, "Invalid 'to' date, expected YYYY-MM-DD")
		return
	}
	// 区间右端取当天末尾
	toTime = toTime.Add(24*time.Hour - time.Nanosecond)

	p := pageFromQuery(c)
	rows, err := h.catalog.VideosByDateRange(fromTime, toTime, c.Query("category"), p)
	if err != nil {
		HandleError(c, err, "fetch videos")
		return
	}
	Success(c, rows, "Videos retrieved.")
}

// GetVideoByID 获取视频详情
func (h *Handlers) GetVideoByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		Error(c, http.StatusBadRequest, "Invalid video id")
		return
	}

	video, err := h.catalog.VideoByID(uint(id))
	if err != nil {
		HandleError(c, err, "fetch video")
		return
	}
	Success(c, video, "Video retrieved.")
}

// GetRecentHighlights 获取最近集锦
func (h *Handlers) GetRecentHighlights(c *gin.Context) {
	p := pageFromQuery(c)
	rows, err := h.catalog.RecentHighlights(p)
	if err != nil {
		HandleError(c, err, "fetch recent highlights")
		return
	}
	Success(c, rows, "Recent highlights retrieved.")
}

// GetRelatedVideos 获取相关视频
func (h *Handlers) GetRelatedVideos(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		Error(c, http.StatusBadRequest, "Invalid video id")
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	rows, err := h.catalog.RelatedVideos(uint(id), limit)
	if err != nil {
		HandleError(c, err, "fetch related videos")
		return
	}
	Success(c, rows, "Related videos retrieved.")
}

// GetFilterOptions 获取搜索过滤选项
func (h *Handlers) GetFilterOptions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	options, err := h.catalog.Options(c.Query("type"), c.Query("q"), limit, offset)
	if err != nil {
		HandleError(c, err, "fetch filter options")
		return
	}
	Success(c, options, "Filter options retrieved.")
}
