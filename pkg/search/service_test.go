package search

import (
	"strings"
	"testing"
	"time"

	"GoalArena/pkg/model"
)

// stubQuerier 记录收到的SQL并按预置脚本逐次返回结果
type stubQuerier struct {
	queries []string
	rows    [][]resultRow
	calls   int
}

func (s *stubQuerier) Raw(dest interface{}, query string, args ...interface{}) error {
	s.queries = append(s.queries, query)

	switch d := dest.(type) {
	case *[]resultRow:
		if s.calls < len(s.rows) {
			*d = s.rows[s.calls]
		}
		s.calls++
	}
	return nil
}

func newTestService(db Querier) *Service {
	svc := NewService(db)
	svc.now = func() time.Time {
		return time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestSearchShortQueryUsesAutosuggest(t *testing.T) {
	db := &stubQuerier{}
	svc := newTestService(db)

	result, err := svc.Search(Filters{Q: "ars"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if result.Mode != "autosuggest" {
		t.Errorf("mode = %q, want autosuggest", result.Mode)
	}
	if result.Pagination != nil {
		t.Error("autosuggest should not carry pagination")
	}
	if len(db.queries) != 1 || !strings.Contains(db.queries[0], "UNION") {
		t.Errorf("expected single union query, got %v", db.queries)
	}
}

func TestSearchBooleanFallbackOnZeroRows(t *testing.T) {
	db := &stubQuerier{
		rows: [][]resultRow{
			{}, // 自然语言模式零召回
			{{VideoItem: model.VideoItem{ID: 1, Title: "Arsenal vs Chelsea"}, TotalCount: 1}},
		},
	}
	svc := newTestService(db)

	result, err := svc.Search(Filters{Q: "arsen"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if len(db.queries) != 2 {
		t.Fatalf("expected natural then boolean query, got %d calls", len(db.queries))
	}
	if !strings.Contains(db.queries[0], "NATURAL LANGUAGE MODE") {
		t.Error("first attempt should be natural language mode")
	}
	if !strings.Contains(db.queries[1], "BOOLEAN MODE") {
		t.Error("fallback should be boolean mode")
	}
	if len(result.Results) != 1 || result.Pagination.Total != 1 {
		t.Errorf("result = %+v", result)
	}
}

func TestSearchNoFallbackWithoutQuery(t *testing.T) {
	db := &stubQuerier{rows: [][]resultRow{{}}}
	svc := newTestService(db)

	result, err := svc.Search(Filters{Leagues: []string{"1"}})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(db.queries) != 1 {
		t.Errorf("no text query, fallback should not fire: %d calls", len(db.queries))
	}
	if result.Pagination.Total != 0 {
		t.Errorf("total = %d, want 0", result.Pagination.Total)
	}
}

func TestSearchNoFallbackWhenRowsFound(t *testing.T) {
	db := &stubQuerier{
		rows: [][]resultRow{
			{
				{VideoItem: model.VideoItem{ID: 1}, TotalCount: 42},
				{VideoItem: model.VideoItem{ID: 2}, TotalCount: 42},
			},
		},
	}
	svc := newTestService(db)

	result, err := svc.Search(Filters{Q: "arsenal"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(db.queries) != 1 {
		t.Errorf("fallback fired despite results: %d calls", len(db.queries))
	}
	if result.Pagination.Total != 42 {
		t.Errorf("total = %d, want window count from first row", result.Pagination.Total)
	}
	if len(result.Results) != 2 {
		t.Errorf("results = %d, want 2", len(result.Results))
	}
}
