// pkg/api/response.go
package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"GoalArena/pkg/catalog"
	"GoalArena/pkg/database"
	"GoalArena/pkg/subscription"
)

// Success 统一成功响应体
func Success(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// Error 统一失败响应体
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

// HandleError 服务错误到HTTP状态码的映射，数据库原始错误文本不外泄
func HandleError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, subscription.ErrUnknownCarrier):
		Error(c, http.StatusBadRequest, "Unknown carrier")
	case errors.Is(err, subscription.ErrSessionInvalid):
		Error(c, http.StatusUnauthorized, "Session expired or invalid")
	case errors.Is(err, subscription.ErrSessionExpired):
		Error(c, http.StatusUnauthorized, "Session expired")
	case errors.Is(err, subscription.ErrSubscriberNotFound):
		Error(c, http.StatusNotFound, "Subscriber not found")
	case errors.Is(err, catalog.ErrInvalidDayFilter):
		Error(c, http.StatusBadRequest, "Invalid filter. Use yesterday|today|tomorrow")
	case errors.Is(err, catalog.ErrInvalidFilterType):
		Error(c, http.StatusBadRequest, "Invalid filter type")
	case errors.Is(err, database.ErrNotFound):
		Error(c, http.StatusNotFound, "Not found")
	case database.IsDuplicate(err):
		// 唯一键冲突，重复操作
		Error(c, http.StatusConflict, "Already "+action)
	default:
		log.Printf("处理 %s 失败: %v", action, err)
		Error(c, http.StatusInternalServerError, "Failed to "+action)
	}
}
