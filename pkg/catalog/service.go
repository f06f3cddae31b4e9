// pkg/catalog/service.go
package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"GoalArena/pkg/database"
	"GoalArena/pkg/model"
)

var (
	// ErrInvalidDayFilter is returned for day filters outside yesterday|today|tomorrow
	ErrInvalidDayFilter = errors.New("invalid filter, use yesterday|today|tomorrow")

	// ErrInvalidFilterType is returned for unknown filter-option types
	ErrInvalidFilterType = errors.New("invalid filter type")
)

// DefaultTimezone 日期过滤的默认时区
const DefaultTimezone = "Africa/Lagos"

// Store 目录数据存取，由database.CatalogDB实现
type Store interface {
	Categories() ([]model.Category, error)
	Videos(limit, offset int, sort string) ([]model.VideoItem, error)
	CountVideos() (int64, error)
	VideosByCategory(category string, limit, offset int, sort string) ([]model.VideoItem, error)
	CountVideosByCategory(category string) (int64, error)
	VideosByDateRange(from, to time.Time, category string, limit, offset int, sort string) ([]model.VideoItem, error)
	VideoByID(id uint) (*model.VideoItem, error)
	RecentHighlights(limit, offset int) ([]model.VideoItem, error)
	RelatedVideos(videoID uint, limit int) ([]model.VideoItem, error)
	TeamsByName(q string, limit, offset int) ([]database.NameOption, error)
	LeaguesByName(q string, limit, offset int) ([]database.NameOption, error)
	LocationsByName(q string, limit, offset int) ([]database.NameOption, error)
}

// Page 分页参数，规整后使用
type Page struct {
	Page     int
	PageSize int
	Sort     string
}

func (p Page) normalized() Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 10
	}
	return p
}

func (p Page) offset() int {
	return (p.Page - 1) * p.PageSize
}

// Option 过滤选项行，静态枚举的id为语义串，动态查询的id为主键
type Option struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FilterOptions 过滤选项结果
type FilterOptions struct {
	Type    string   `json:"type"`
	Query   string   `json:"query"`
	Options []Option `json:"options"`
	Total   int      `json:"total"`
}

// Service 目录读服务
type Service struct {
	store Store
	now   func() time.Time
}

// NewService 创建目录读服务
func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

func (s *Service) Categories() ([]model.Category, error) {
	return s.store.Categories()
}

func (s *Service) Videos(p Page) ([]model.VideoItem, int64, error) {
	p = p.normalized()
	rows, err := s.store.Videos(p.PageSize, p.offset(), p.Sort)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.store.CountVideos()
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *Service) VideosByCategory(category string, p Page) ([]model.VideoItem, int64, error) {
	p = p.normalized()
	rows, err := s.store.VideosByCategory(category, p.PageSize, p.offset(), p.Sort)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.store.CountVideosByCategory(category)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// DayWindow 计算yesterday|today|tomorrow在指定时区下的起止时刻
func (s *Service) DayWindow(filter, tz string) (time.Time, time.Time, error) {
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("加载时区失败: %w", err)
	}

	now := s.now().In(loc)
	day := now
	switch filter {
	case "yesterday":
		day = now.AddDate(0, 0, -1)
	case "today":
	case "tomorrow":
		day = now.AddDate(0, 0, 1)
	default:
		return time.Time{}, time.Time{}, ErrInvalidDayFilter
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	end := start.Add(24*time.Hour - time.Nanosecond)
	return start, end, nil
}

// VideosByCategoryAndDay 按分类+相对日过滤
func (s *Service) VideosByCategoryAndDay(category, filter, tz string, p Page) ([]model.VideoItem, error) {
	start, end, err := s.DayWindow(filter, tz)
	if err != nil {
		return nil, err
	}
	p = p.normalized()
	return s.store.VideosByDateRange(start, end, category, p.PageSize, p.offset(), p.Sort)
}

// VideosByDateRange 按绝对日期区间过滤，category可为空
func (s *Service) VideosByDateRange(from, to time.Time, category string, p Page) ([]model.VideoItem, error) {
	p = p.normalized()
	return s.store.VideosByDateRange(from, to, category, p.PageSize, p.offset(), p.Sort)
}

func (s *Service) VideoByID(id uint) (*model.VideoItem, error) {
	return s.store.VideoByID(id)
}

func (s *Service) RecentHighlights(p Page) ([]model.VideoItem, error) {
	p = p.normalized()
	return s.store.RecentHighlights(p.PageSize, p.offset())
}

func (s *Service) RelatedVideos(videoID uint, limit int) ([]model.VideoItem, error) {
	if limit < 1 {
		limit = 5
	}
	return s.store.RelatedVideos(videoID, limit)
}

// Options 过滤选项：match_status和category是固定枚举，其余走名称检索
func (s *Service) Options(typ, q string, limit, offset int) (*FilterOptions, error) {
	if limit < 1 {
		limit = 10
	}

	switch typ {
	case "match_status":
		options := []Option{
			{ID: "upcoming", Name: "Upcoming"},
			{ID: "finished", Name: "Finished"},
			{ID: "live", Name: "Live"},
		}
		return &FilterOptions{Type: typ, Query: q, Options: options, Total: len(options)}, nil
	case "category":
		options := []Option{}
		for _, v := range []string{"All Goals", "Highlights", "Extended Highlights", "Live Stream"} {
			options = append(options, Option{ID: v, Name: v})
		}
		return &FilterOptions{Type: typ, Query: q, Options: options, Total: len(options)}, nil
	}

	var (
		rows []database.NameOption
		err  error
	)
	switch typ {
	case "team":
		rows, err = s.store.TeamsByName(q, limit, offset)
	case "league":
		rows, err = s.store.LeaguesByName(q, limit, offset)
	case "location":
		rows, err = s.store.LocationsByName(q, limit, offset)
	default:
		return nil, ErrInvalidFilterType
	}
	if err != nil {
		return nil, err
	}

	options := make([]Option, 0, len(rows))
	for _, row := range rows {
		options = append(options, Option{ID: strconv.FormatUint(uint64(row.ID), 10), Name: row.Name})
	}
	return &FilterOptions{Type: typ, Query: q, Options: options, Total: len(options)}, nil
}
