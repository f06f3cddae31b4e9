// pkg/search/builder.go
package search

import (
	"fmt"
	"strings"
	"time"
)

// TextMode 全文检索模式
type TextMode int

const (
	// ModeNatural 自然语言模式，按相关度排序但短词可能漏召回
	ModeNatural TextMode = iota
	// ModeBoolean 布尔模式 + 后缀通配，作为零结果时的召回兜底
	ModeBoolean
)

// autosuggestMaxLen 短查询阈值，q长度低于该值且无其他过滤时走联想模式
const autosuggestMaxLen = 4

// autosuggestLimit 联想结果上限
const autosuggestLimit = 10

// ValidCategories 分类过滤的固定枚举
var ValidCategories = []string{"All Goals", "Highlights", "Extended Highlights", "Live Stream"}

// liveWindow live状态的时间窗口：比赛开始后2小时内
const liveWindow = 2 * time.Hour

// Filters 搜索过滤条件
type Filters struct {
	Q           string
	Leagues     []string
	Teams       []string
	Categories  []string
	Locations   []string
	MatchStatus string
	Date        string // YYYY-MM-DD
	Page        int
	Limit       int
}

// Normalized 规整分页参数并按枚举白名单过滤分类
func (f Filters) Normalized() Filters {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}

	valid := make([]string, 0, len(f.Categories))
	for _, c := range f.Categories {
		for _, v := range ValidCategories {
			if c == v {
				valid = append(valid, c)
				break
			}
		}
	}
	f.Categories = valid
	return f
}

// HasFilters 除q以外是否还有其他过滤条件
func (f Filters) HasFilters() bool {
	return len(f.Leagues) > 0 || len(f.Teams) > 0 || len(f.Categories) > 0 ||
		len(f.Locations) > 0 || f.MatchStatus != "" || f.Date != ""
}

// IsAutosuggest 是否触发联想模式：q非空且够短，且没有任何其他过滤
func (f Filters) IsAutosuggest() bool {
	return f.Q != "" && len(f.Q) < autosuggestMaxLen && !f.HasFilters()
}

// placeholders 生成与参数列表等长的占位符串
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

// BuildQuery 组装全量搜索SQL，谓词与参数列表同步追加，空过滤不产生子句
func BuildQuery(f Filters, mode TextMode, now time.Time) (string, []interface{}) {
	var (
		conds []string
		args  []interface{}
	)

	if f.Q != "" {
		switch mode {
		case ModeBoolean:
			term := f.Q + "*"
			conds = append(conds, `(MATCH(v.title) AGAINST (? IN BOOLEAN MODE)
				OR MATCH(m.title) AGAINST (? IN BOOLEAN MODE)
				OR ht.name LIKE CONCAT('%', ?, '%')
				OR aw.name LIKE CONCAT('%', ?, '%'))`)
			args = append(args, term, term, f.Q, f.Q)
		default:
			conds = append(conds, `(MATCH(v.title) AGAINST (? IN NATURAL LANGUAGE MODE)
				OR MATCH(m.title) AGAINST (? IN NATURAL LANGUAGE MODE)
				OR ht.name LIKE CONCAT('%', ?, '%')
				OR aw.name LIKE CONCAT('%', ?, '%'))`)
			args = append(args, f.Q, f.Q, f.Q, f.Q)
		}
	}

	if len(f.Leagues) > 0 {
		conds = append(conds, fmt.Sprintf("l.id IN (%s)", placeholders(len(f.Leagues))))
		for _, v := range f.Leagues {
			args = append(args, v)
		}
	}

	if len(f.Teams) > 0 {
		ph := placeholders(len(f.Teams))
		conds = append(conds, fmt.Sprintf("(m.home_team_id IN (%s) OR m.away_team_id IN (%s))", ph, ph))
		for _, v := range f.Teams {
			args = append(args, v)
		}
		for _, v := range f.Teams {
			args = append(args, v)
		}
	}

	if len(f.Categories) > 0 {
		conds = append(conds, fmt.Sprintf("c.name IN (%s)", placeholders(len(f.Categories))))
		for _, v := range f.Categories {
			args = append(args, v)
		}
	}

	// location对外暴露，内部映射到country
	if len(f.Locations) > 0 {
		conds = append(conds, fmt.Sprintf("co.id IN (%s)", placeholders(len(f.Locations))))
		for _, v := range f.Locations {
			args = append(args, v)
		}
	}

	if f.Date != "" {
		conds = append(conds, "DATE(m.date) = ?")
		args = append(args, f.Date)
	}

	switch f.MatchStatus {
	case "upcoming":
		conds = append(conds, "m.date > ?")
		args = append(args, now)
	case "live":
		conds = append(conds, "m.date BETWEEN ? AND ?")
		args = append(args, now.Add(-liveWindow), now)
	case "finished":
		conds = append(conds, "m.date < ?")
		args = append(args, now.Add(-liveWindow))
	}

	query := `
		SELECT
			v.id,
			v.title,
			m.thumbnail,
			c.name AS category,
			m.date AS match_date,
			l.name AS league,
			co.name AS country,
			m.matchview_url AS video_url,
			COUNT(*) OVER() AS total_count
		FROM videos v
		JOIN categories c ON v.category_id = c.id
		JOIN matches m ON v.match_id = m.id
		JOIN leagues l ON m.league_id = l.id
		JOIN countries co ON l.country_id = co.id
		LEFT JOIN teams ht ON m.home_team_id = ht.id
		LEFT JOIN teams aw ON m.away_team_id = aw.id`

	if len(conds) > 0 {
		query += "\n\t\tWHERE " + strings.Join(conds, "\n\t\tAND ")
	}

	query += "\n\t\tORDER BY m.date DESC\n\t\tLIMIT ? OFFSET ?"
	args = append(args, f.Limit, (f.Page-1)*f.Limit)

	return query, args
}

// BuildAutosuggestQuery 组装联想SQL：精确命中tier 0，其余按球队/联赛/国家优先级排序
func BuildAutosuggestQuery(q string) (string, []interface{}) {
	query := `
		(SELECT DISTINCT name, 'team' AS type,
			CASE WHEN BINARY name = ? THEN 0 ELSE 1 END AS tier
		FROM teams WHERE name LIKE CONCAT('%', ?, '%'))
		UNION
		(SELECT DISTINCT name, 'league' AS type,
			CASE WHEN BINARY name = ? THEN 0 ELSE 2 END AS tier
		FROM leagues WHERE name LIKE CONCAT('%', ?, '%'))
		UNION
		(SELECT DISTINCT name, 'country' AS type,
			CASE WHEN BINARY name = ? THEN 0 ELSE 3 END AS tier
		FROM countries WHERE name LIKE CONCAT('%', ?, '%'))
		ORDER BY tier ASC, name ASC
		LIMIT ?`

	args := []interface{}{q, q, q, q, q, q, autosuggestLimit}
	return query, args
}
