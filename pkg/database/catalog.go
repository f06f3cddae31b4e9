// pkg/database/catalog.go
package database

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"GoalArena/pkg/model"
)

// videoSelect 视频列表行的联表查询主体
const videoSelect = `
	SELECT
		v.id,
		v.title,
		m.thumbnail,
		c.name AS category,
		m.date AS match_date,
		l.name AS league,
		co.name AS country,
		m.matchview_url AS video_url
	FROM videos v
	JOIN categories c ON v.category_id = c.id
	JOIN matches m ON v.match_id = m.id
	JOIN leagues l ON m.league_id = l.id
	JOIN countries co ON l.country_id = co.id
`

type CatalogDB struct {
	m *MySQL
}

func (m *MySQL) Catalog() *CatalogDB {
	return &CatalogDB{m: m}
}

// orderDir 排序方向白名单，防止拼接注入
func orderDir(sort string) string {
	if sort == "ASC" || sort == "asc" {
		return "ASC"
	}
	return "DESC"
}

func (c *CatalogDB) Categories() ([]model.Category, error) {
	var categories []model.Category
	err := c.m.withRetry(func() error {
		return c.m.db.Order("name ASC").Find(&categories).Error
	})
	if err != nil {
		return nil, fmt.Errorf("查询分类失败: %w", err)
	}
	return categories, nil
}

func (c *CatalogDB) Videos(limit, offset int, sort string) ([]model.VideoItem, error) {
	query := videoSelect + fmt.Sprintf(" ORDER BY m.date %s LIMIT ? OFFSET ?", orderDir(sort))
	var rows []model.VideoItem
	if err := c.m.Raw(&rows, query, limit, offset); err != nil {
		return nil, fmt.Errorf("查询视频列表失败: %w", err)
	}
	return rows, nil
}

func (c *CatalogDB) CountVideos() (int64, error) {
	var total int64
	if err := c.m.Raw(&total, `SELECT COUNT(*) FROM videos`); err != nil {
		return 0, fmt.Errorf("统计视频总数失败: %w", err)
	}
	return total, nil
}

func (c *CatalogDB) VideosByCategory(category string, limit, offset int, sort string) ([]model.VideoItem, error) {
	query := videoSelect + fmt.Sprintf(" WHERE c.name = ? ORDER BY m.date %s LIMIT ? OFFSET ?", orderDir(sort))
	var rows []model.VideoItem
	if err := c.m.Raw(&rows, query, category, limit, offset); err != nil {
		return nil, fmt.Errorf("按分类查询视频失败: %w", err)
	}
	return rows, nil
}

func (c *CatalogDB) CountVideosByCategory(category string) (int64, error) {
	var total int64
	err := c.m.Raw(&total, `
		SELECT COUNT(*)
		FROM videos v
		JOIN categories c ON v.category_id = c.id
		WHERE c.name = ?
	`, category)
	if err != nil {
		return 0, fmt.Errorf("统计分类视频失败: %w", err)
	}
	return total, nil
}

// VideosByDateRange 按比赛日期区间查询，category为空表示不过滤分类
func (c *CatalogDB) VideosByDateRange(from, to time.Time, category string, limit, offset int, sort string) ([]model.VideoItem, error) {
	query := videoSelect + " WHERE m.date BETWEEN ? AND ?"
	args := []interface{}{from, to}
	if category != "" {
		query += " AND c.name = ?"
		args = append(args, category)
	}
	query += fmt.Sprintf(" ORDER BY m.date %s LIMIT ? OFFSET ?", orderDir(sort))
	args = append(args, limit, offset)

	var rows []model.VideoItem
	if err := c.m.Raw(&rows, query, args...); err != nil {
		return nil, fmt.Errorf("按日期查询视频失败: %w", err)
	}
	return rows, nil
}

func (c *CatalogDB) VideoByID(id uint) (*model.VideoItem, error) {
	query := videoSelect + " WHERE v.id = ?"
	var rows []model.VideoItem
	if err := c.m.Raw(&rows, query, id); err != nil {
		return nil, fmt.Errorf("查询视频详情失败: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

// RecentHighlights 最近3天的视频
func (c *CatalogDB) RecentHighlights(limit, offset int) ([]model.VideoItem, error) {
	query := videoSelect + ` WHERE m.date >= DATE_SUB(NOW(), INTERVAL 3 DAY)
		ORDER BY m.date DESC LIMIT ? OFFSET ?`
	var rows []model.VideoItem
	if err := c.m.Raw(&rows, query, limit, offset); err != nil {
		return nil, fmt.Errorf("查询最近集锦失败: %w", err)
	}
	return rows, nil
}

// RelatedVideos 同分类下的相关视频，排除自身
func (c *CatalogDB) RelatedVideos(videoID uint, limit int) ([]model.VideoItem, error) {
	query := videoSelect + `
		WHERE v.category_id = (SELECT category_id FROM videos WHERE id = ?)
		AND v.id <> ?
		ORDER BY m.date DESC
		LIMIT ?`
	var rows []model.VideoItem
	if err := c.m.Raw(&rows, query, videoID, videoID, limit); err != nil {
		return nil, fmt.Errorf("查询相关视频失败: %w", err)
	}
	return rows, nil
}

// NameOption 过滤选项行
type NameOption struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// optionsByName 全文检索优先，LIKE兜底
func (c *CatalogDB) optionsByName(table, q string, limit, offset int) ([]NameOption, error) {
	query := fmt.Sprintf(`
		SELECT id, name FROM %s
		WHERE MATCH(name) AGAINST (?) OR name LIKE CONCAT('%%', ?, '%%')
		ORDER BY name ASC
		LIMIT ? OFFSET ?
	`, table)
	var rows []NameOption
	if err := c.m.Raw(&rows, query, q, q, limit, offset); err != nil {
		return nil, fmt.Errorf("查询过滤选项失败: %w", err)
	}
	return rows, nil
}

func (c *CatalogDB) TeamsByName(q string, limit, offset int) ([]NameOption, error) {
	return c.optionsByName("teams", q, limit, offset)
}

func (c *CatalogDB) LeaguesByName(q string, limit, offset int) ([]NameOption, error) {
	return c.optionsByName("leagues", q, limit, offset)
}

// LocationsByName 对外叫location，内部查countries表
func (c *CatalogDB) LocationsByName(q string, limit, offset int) ([]NameOption, error) {
	return c.optionsByName("countries", q, limit, offset)
}

func (c *CatalogDB) CategoryByName(name string) (*model.Category, error) {
	var category model.Category
	err := c.m.withRetry(func() error {
		return c.m.db.First(&category, "name = ?", name).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("查询分类失败: %w", err)
	}
	return &category, nil
}
