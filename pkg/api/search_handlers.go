// pkg/api/search_handlers.go
package api

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"GoalArena/pkg/search"
)

// parseCSVParams 同时接受重复参数与逗号分隔两种写法
func parseCSVParams(c *gin.Context, key string) []string {
	var out []string
	for _, value := range c.QueryArray(key) {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Search 目录搜索，短查询自动进入联想模式
func (h *Handlers) Search(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	filters := search.Filters{
		Q:           c.Query("q"),
		Leagues:     parseCSVParams(c, "league"),
		Teams:       parseCSVParams(c, "team"),
		Categories:  parseCSVParams(c, "category"),
		Locations:   parseCSVParams(c, "location"),
		MatchStatus: c.Query("match_status"),
		Date:        c.Query("date"),
		Page:        page,
		Limit:       limit,
	}

	result, err := h.search.Search(filters)
	if err != nil {
		HandleError(c, err, "search")
		return
	}
	Success(c, result, "Search completed.")
}
