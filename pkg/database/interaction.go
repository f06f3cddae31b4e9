// pkg/database/interaction.go
package database

import (
	"fmt"

	"GoalArena/pkg/model"
)

// ledgerTables 账本类型到表名的白名单映射
var ledgerTables = map[model.InteractionType]string{
	model.InteractionSaved:    "saved_matches",
	model.InteractionLoved:    "loved_matches",
	model.InteractionFavorite: "favorite_matches",
}

type InteractionDB struct {
	m *MySQL
}

func (m *MySQL) Interaction() *InteractionDB {
	return &InteractionDB{m: m}
}

func tableFor(typ model.InteractionType) (string, error) {
	table, ok := ledgerTables[typ]
	if !ok {
		return "", fmt.Errorf("未知的互动类型: %s", typ)
	}
	return table, nil
}

// Upsert 插入或复活软删除行，同一(subscriber, match)至多一条活跃记录
func (i *InteractionDB) Upsert(typ model.InteractionType, subscriberID, matchID uint) error {
	table, err := tableFor(typ)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (subscriber_id, match_id, created_at, updated_at, deleted_at)
		VALUES (?, ?, NOW(), NOW(), NULL)
		ON DUPLICATE KEY UPDATE deleted_at = NULL, updated_at = NOW()
	`, table)

	if _, err := i.m.Exec(query, subscriberID, matchID); err != nil {
		return fmt.Errorf("写入互动记录失败: %w", err)
	}
	return nil
}

// SoftDelete 软删除活跃行，没有活跃行返回ErrNotFound
func (i *InteractionDB) SoftDelete(typ model.InteractionType, subscriberID, matchID uint) error {
	table, err := tableFor(typ)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`
		UPDATE %s SET deleted_at = NOW()
		WHERE subscriber_id = ? AND match_id = ? AND deleted_at IS NULL
	`, table)

	affected, err := i.m.Exec(query, subscriberID, matchID)
	if err != nil {
		return fmt.Errorf("移除互动记录失败: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListBySubscriber 列出用户的活跃互动行
func (i *InteractionDB) ListBySubscriber(typ model.InteractionType, subscriberID uint) ([]model.InteractionRow, error) {
	table, err := tableFor(typ)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`
		SELECT id, subscriber_id, match_id, created_at, updated_at
		FROM %s
		WHERE subscriber_id = ? AND deleted_at IS NULL
		ORDER BY updated_at DESC
	`, table)

	var rows []model.InteractionRow
	if err := i.m.Raw(&rows, query, subscriberID); err != nil {
		return nil, fmt.Errorf("查询互动记录失败: %w", err)
	}
	return rows, nil
}

// MatchStats 单场比赛三类账本的活跃计数，一次往返
func (i *InteractionDB) MatchStats(matchID uint) (*model.MatchStats, error) {
	var stats model.MatchStats
	err := i.m.Raw(&stats, `
		SELECT
			(SELECT COUNT(*) FROM saved_matches sm WHERE sm.match_id = ? AND sm.deleted_at IS NULL) AS saved_count,
			(SELECT COUNT(*) FROM loved_matches lm WHERE lm.match_id = ? AND lm.deleted_at IS NULL) AS loved_count,
			(SELECT COUNT(*) FROM favorite_matches fm WHERE fm.match_id = ? AND fm.deleted_at IS NULL) AS favorite_count
	`, matchID, matchID, matchID)
	if err != nil {
		return nil, fmt.Errorf("统计比赛互动失败: %w", err)
	}
	return &stats, nil
}

// SubscriberStats 单个用户三类账本的活跃计数，一次往返
func (i *InteractionDB) SubscriberStats(subscriberID uint) (*model.SubscriberStats, error) {
	var stats model.SubscriberStats
	err := i.m.Raw(&stats, `
		SELECT
			(SELECT COUNT(*) FROM saved_matches sm WHERE sm.subscriber_id = ? AND sm.deleted_at IS NULL) AS saved_count,
			(SELECT COUNT(*) FROM loved_matches lm WHERE lm.subscriber_id = ? AND lm.deleted_at IS NULL) AS loved_count,
			(SELECT COUNT(*) FROM favorite_matches fm WHERE fm.subscriber_id = ? AND fm.deleted_at IS NULL) AS favorite_count
	`, subscriberID, subscriberID, subscriberID)
	if err != nil {
		return nil, fmt.Errorf("统计用户互动失败: %w", err)
	}
	return &stats, nil
}

// Totals 三类账本的活跃总数，一次往返
func (i *InteractionDB) Totals() (map[model.InteractionType]int64, error) {
	var rows []struct {
		Type  string `json:"type"`
		Total int64  `json:"total"`
	}
	err := i.m.Raw(&rows, `
		SELECT 'saved' AS type, COUNT(*) AS total FROM saved_matches WHERE deleted_at IS NULL
		UNION ALL
		SELECT 'loved' AS type, COUNT(*) AS total FROM loved_matches WHERE deleted_at IS NULL
		UNION ALL
		SELECT 'favorite' AS type, COUNT(*) AS total FROM favorite_matches WHERE deleted_at IS NULL
	`)
	if err != nil {
		return nil, fmt.Errorf("统计互动总量失败: %w", err)
	}

	totals := make(map[model.InteractionType]int64, len(rows))
	for _, row := range rows {
		totals[model.InteractionType(row.Type)] = row.Total
	}
	return totals, nil
}

// TopByType 指定账本的热榜，按活跃计数降序，同分按比赛时间新者优先
func (i *InteractionDB) TopByType(typ model.InteractionType, limit int) ([]model.TopMatch, error) {
	table, err := tableFor(typ)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`
		SELECT m.id AS match_id, m.title, m.thumbnail, COUNT(x.id) AS total, m.date AS match_date
		FROM %s x
		JOIN matches m ON x.match_id = m.id
		WHERE x.deleted_at IS NULL
		GROUP BY m.id, m.title, m.thumbnail, m.date
		ORDER BY total DESC, m.date DESC
		LIMIT ?
	`, table)

	var rows []model.TopMatch
	if err := i.m.Raw(&rows, query, limit); err != nil {
		return nil, fmt.Errorf("查询互动热榜失败: %w", err)
	}
	return rows, nil
}
