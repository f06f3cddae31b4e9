// pkg/model/catalog.go
package model

import "time"

// Country 国家，联赛与球队的归属地
type Country struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:100;not null" json:"name"`
}

// League 联赛
type League struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"size:100;not null;index" json:"name"`
	CountryID uint   `gorm:"not null;index" json:"country_id"`

	Country Country `gorm:"foreignKey:CountryID" json:"country,omitempty"`
}

// Team 球队
type Team struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"size:100;not null;index" json:"name"`
	CountryID uint   `gorm:"index" json:"country_id"`
}

// Category 视频分类，固定枚举见 search.ValidCategories
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:50;not null" json:"name"`
}

// Match 比赛，视频的挂载点
type Match struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"size:255" json:"title"`
	LeagueID     uint      `gorm:"not null;index" json:"league_id"`
	HomeTeamID   uint      `gorm:"index" json:"home_team_id"`
	AwayTeamID   uint      `gorm:"index" json:"away_team_id"`
	Date         time.Time `gorm:"index" json:"date"`
	Thumbnail    string    `gorm:"size:512" json:"thumbnail"`
	MatchviewURL string    `gorm:"size:512" json:"matchview_url"`

	League   League `gorm:"foreignKey:LeagueID" json:"league,omitempty"`
	HomeTeam Team   `gorm:"foreignKey:HomeTeamID" json:"home_team,omitempty"`
	AwayTeam Team   `gorm:"foreignKey:AwayTeamID" json:"away_team,omitempty"`
}

// Video 视频，必定归属一个比赛和一个分类
type Video struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Title      string `gorm:"size:255;not null" json:"title"`
	MatchID    uint   `gorm:"not null;index" json:"match_id"`
	CategoryID uint   `gorm:"not null;index" json:"category_id"`

	Match    Match    `gorm:"foreignKey:MatchID" json:"match,omitempty"`
	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// VideoItem 视频列表/搜索结果的联表行
type VideoItem struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Thumbnail string    `json:"thumbnail"`
	Category  string    `json:"category"`
	MatchDate time.Time `json:"match_date"`
	League    string    `json:"league"`
	Country   string    `json:"country"`
	VideoURL  string    `json:"video_url"`
}
