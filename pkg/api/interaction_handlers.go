// pkg/api/interaction_handlers.go
package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"GoalArena/pkg/model"
)

// InteractionRequest 互动账本请求体
type InteractionRequest struct {
	SubscriberID uint `json:"subscriber_id"`
	MatchID      uint `json:"match_id"`
}

// bindInteraction 解析并校验互动请求体，失败时已写入响应
func bindInteraction(c *gin.Context) (*InteractionRequest, bool) {
	var req InteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	if req.SubscriberID == 0 {
		Error(c, http.StatusBadRequest, "subscriber_id is required")
		return nil, false
	}
	if req.MatchID == 0 {
		Error(c, http.StatusBadRequest, "match_id is required")
		return nil, false
	}
	return &req, true
}

// subscriberIDFromQuery 解析subscriber_id查询参数，失败时已写入响应
func subscriberIDFromQuery(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Query("subscriber_id"), 10, 32)
	if err != nil || id == 0 {
		Error(c, http.StatusBadRequest, "subscriber_id is required")
		return 0, false
	}
	return uint(id), true
}

// AddSavedMatch 稍后观看收藏
func (h *Handlers) AddSavedMatch(c *gin.Context) {
	req, ok := bindInteraction(c)
	if !ok {
		return
	}
	if err := h.interactions.Add(model.InteractionSaved, req.SubscriberID, req.MatchID); err != nil {
		HandleError(c, err, "save match")
		return
	}
	Success(c, nil, "Match saved for watch later.")
}

// RemoveSavedMatch 取消稍后观看
func (h *Handlers) RemoveSavedMatch(c *gin.Context) {
	req, ok := bindInteraction(c)
	if !ok {
		return
	}
	if err := h.interactions.Remove(model.InteractionSaved, req.SubscriberID, req.MatchID); err != nil {
		HandleError(c, err, "remove saved match")
		return
	}
	Success(c, nil, "Saved match removed.")
}

// ListSavedMatches 稍后观看列表
func (h *Handlers) ListSavedMatches(c *gin.Context) {
	id, ok := subscriberIDFromQuery(c)
	if !ok {
		return
	}
	rows, err := h.interactions.List(model.InteractionSaved, id)
	if err != nil {
		HandleError(c, err, "fetch saved matches")
		return
	}
	Success(c, rows, "Saved matches retrieved.")
}

// AddLovedMatch 喜爱标记
func (h *Handlers) AddLovedMatch(c *gin.Context) {
	req, ok := bindInteraction(c)
	if !ok {
		return
	}
	if err := h.interactions.Add(model.InteractionLoved, req.SubscriberID, req.MatchID); err != nil {
		HandleError(c, err, "love match")
		return
	}
	Success(c, nil, "Match loved.")
}

// RemoveLovedMatch 取消喜爱
func (h *Handlers) RemoveLovedMatch(c *gin.Context) {
	req, ok := bindInteraction(c)
	if !ok {
		return
	}
	if err := h.interactions.Remove(model.InteractionLoved, req.SubscriberID, req.MatchID); err != nil {
		HandleError(c, err, "remove loved match")
		return
	}
	Success(c, nil, "Love removed.")
}

// ListLovedMatches 喜爱列表
func (h *Handlers) ListLovedMatches(c *gin.Context) {
	id, ok := subscriberIDFromQuery(c)
	if !ok {
		return
	}
	rows, err := h.interactions.List(model.InteractionLoved, id)
	if err != nil {
		HandleError(c, err, "fetch loved matches")
		return
	}
	Success(c, rows, "Loved matches retrieved.")
}

// AddFavoriteMatch 收藏夹添加
func (h *Handlers) AddFavoriteMatch(c *gin.Context) {
	req, ok := bindInteraction(c)
	if !ok {
		return
	}
	if err := h.interactions.Add(model.InteractionFavorite, req.SubscriberID, req.MatchID); err != nil {
		HandleError(c, err, "favorite match")
		return
	}
	Success(c, nil, "Match favorited.")
}

// RemoveFavoriteMatch 收藏夹移除
func (h *Handlers) RemoveFavoriteMatch(c *gin.Context) {
	req, ok := bindInteraction(c)
	if !ok {
		return
	}
	if err := h.interactions.Remove(model.InteractionFavorite, req.SubscriberID, req.MatchID); err != nil {
		HandleError(c, err, "remove favorite match")
		return
	}
	Success(c, nil, "Match removed from favorites.")
}

// ListFavoriteMatches 收藏夹列表
func (h *Handlers) ListFavoriteMatches(c *gin.Context) {
	id, ok := subscriberIDFromQuery(c)
	if !ok {
		return
	}
	rows, err := h.interactions.List(model.InteractionFavorite, id)
	if err != nil {
		HandleError(c, err, "fetch favorite matches")
		return
	}
	Success(c, rows, "Favorite matches retrieved.")
}

// GetMatchStats 单场比赛互动统计
func (h *Handlers) GetMatchStats(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("match_id"), 10, 32)
	if err != nil || id == 0 {
		Error(c, http.StatusBadRequest, "Invalid match id")
		return
	}
	stats, err := h.interactions.MatchStats(uint(id))
	if err != nil {
		HandleError(c, err, "fetch match stats")
		return
	}
	Success(c, stats, "Match stats retrieved.")
}

// GetSubscriberStats 单个用户互动统计
func (h *Handlers) GetSubscriberStats(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("subscriber_id"), 10, 32)
	if err != nil || id == 0 {
		Error(c, http.StatusBadRequest, "Invalid subscriber id")
		return
	}
	stats, err := h.interactions.SubscriberStats(uint(id))
	if err != nil {
		HandleError(c, err, "fetch subscriber stats")
		return
	}
	Success(c, stats, "Subscriber stats retrieved.")
}

// GetTopInteractions 互动热榜
func (h *Handlers) GetTopInteractions(c *gin.Context) {
	top, err := h.interactions.Top()
	if err != nil {
		HandleError(c, err, "fetch top interactions")
		return
	}
	Success(c, top, "Top interactions retrieved.")
}
