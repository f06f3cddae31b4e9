// pkg/api/auth_handlers.go
package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// LoginRequest 登录请求体
type LoginRequest struct {
	Msisdn string `json:"msisdn"`
}

// bearerToken 从Authorization头提取Bearer令牌，没有则返回空串
func bearerToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(auth, "Bearer ")
}

// Login MSISDN登录
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Msisdn == "" {
		Error(c, http.StatusBadRequest, "MSISDN required")
		return
	}

	payload, message, err := h.subscriptions.Login(req.Msisdn)
	if err != nil {
		HandleError(c, err, "log in")
		return
	}
	Success(c, payload, message)
}

// Callback 运营商付费完成后的跳转回调
func (h *Handlers) Callback(c *gin.Context) {
	m := c.Query("msisdn")
	carrier := c.Query("carrier")
	if m == "" || carrier == "" {
		Error(c, http.StatusBadRequest, "Missing msisdn or carrier")
		return
	}

	payload, message, err := h.subscriptions.Callback(m, carrier)
	if err != nil {
		HandleError(c, err, "verify subscription")
		return
	}
	Success(c, payload, message)
}

// Status 订阅状态查询，Bearer令牌优先，其次msisdn查询参数
func (h *Handlers) Status(c *gin.Context) {
	token := bearerToken(c)
	m := c.Query("msisdn")
	if token == "" && m == "" {
		Error(c, http.StatusUnauthorized, "Missing or invalid token")
		return
	}

	payload, message, err := h.subscriptions.Status(token, m)
	if err != nil {
		HandleError(c, err, "check status")
		return
	}
	Success(c, payload, message)
}

// webhookBody 运营商异步通知体
type webhookBody struct {
	Msisdn string `json:"msisdn"`
	Status string `json:"status"`
}

// Webhook 运营商异步生命周期通知，无论处理结果如何一律回200
func (h *Handlers) Webhook(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		log.Printf("读取webhook请求体失败: %v", err)
		Success(c, nil, "Webhook received")
		return
	}

	var body webhookBody
	if err := json.Unmarshal(raw, &body); err != nil {
		log.Printf("解析webhook请求体失败: %v", err)
	}

	if err := h.subscriptions.Webhook(body.Msisdn, body.Status, string(raw)); err != nil {
		log.Printf("处理webhook失败: %v", err)
	}
	Success(c, nil, "Webhook received")
}

// Logout 登出
func (h *Handlers) Logout(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		Error(c, http.StatusUnauthorized, "Missing or invalid token")
		return
	}

	if err := h.subscriptions.Logout(token); err != nil {
		HandleError(c, err, "log out")
		return
	}
	Success(c, nil, "Logged out successfully")
}
