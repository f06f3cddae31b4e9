// pkg/search/service.go
package search

import (
	"fmt"
	"time"

	"GoalArena/pkg/model"
)

// Querier SQL执行网关，由database.MySQL实现
type Querier interface {
	Raw(dest interface{}, query string, args ...interface{}) error
}

// Suggestion 联想结果项
type Suggestion struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Pagination 分页元数据
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// Result 搜索结果，联想模式无分页
type Result struct {
	Mode        string            `json:"mode"`
	Results     []model.VideoItem `json:"results"`
	Suggestions []Suggestion      `json:"suggestions,omitempty"`
	Pagination  *Pagination       `json:"pagination,omitempty"`
}

// resultRow 带窗口计数的查询行，total_count只进分页元数据不进结果
type resultRow struct {
	model.VideoItem
	TotalCount int64 `json:"-"`
}

// Service 搜索服务
type Service struct {
	db  Querier
	now func() time.Time
}

// NewService 创建搜索服务
func NewService(db Querier) *Service {
	return &Service{db: db, now: time.Now}
}

// Search 按过滤条件搜索：短查询走联想，否则全量搜索并在零结果时布尔兜底
func (s *Service) Search(f Filters) (*Result, error) {
	f = f.Normalized()

	if f.IsAutosuggest() {
		return s.autosuggest(f.Q)
	}
	return s.fullSearch(f)
}

func (s *Service) autosuggest(q string) (*Result, error) {
	query, args := BuildAutosuggestQuery(q)

	var rows []struct {
		Name string `json:"name"`
		Type string `json:"type"`
		Tier int    `json:"tier"`
	}
	if err := s.db.Raw(&rows, query, args...); err != nil {
		return nil, fmt.Errorf("联想查询失败: %w", err)
	}

	suggestions := make([]Suggestion, 0, len(rows))
	for _, row := range rows {
		suggestions = append(suggestions, Suggestion{Name: row.Name, Type: row.Type})
	}

	return &Result{Mode: "autosuggest", Suggestions: suggestions}, nil
}

func (s *Service) fullSearch(f Filters) (*Result, error) {
	now := s.now()

	rows, err := s.runQuery(f, ModeNatural, now)
	if err != nil {
		return nil, err
	}

	// 自然语言模式零召回时，用布尔模式+后缀通配重试一次
	if len(rows) == 0 && f.Q != "" {
		rows, err = s.runQuery(f, ModeBoolean, now)
		if err != nil {
			return nil, err
		}
	}

	var total int64
	items := make([]model.VideoItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.VideoItem)
	}
	if len(rows) > 0 {
		total = rows[0].TotalCount
	}

	return &Result{
		Mode:    "full",
		Results: items,
		Pagination: &Pagination{
			Page:  f.Page,
			Limit: f.Limit,
			Total: total,
		},
	}, nil
}

func (s *Service) runQuery(f Filters, mode TextMode, now time.Time) ([]resultRow, error) {
	query, args := BuildQuery(f, mode, now)

	var rows []resultRow
	if err := s.db.Raw(&rows, query, args...); err != nil {
		return nil, fmt.Errorf("搜索查询失败: %w", err)
	}
	return rows, nil
}
