package main

import (
	"fmt"
	"log"
	"time"

	"GoalArena/pkg/model"
	"GoalArena/pkg/msisdn"
)

func main() {
	log.Println("开始简单验证...")

	// 归一化一个本地手机号
	raw := "0803 123 4567"
	normalized := msisdn.Normalize(raw)
	carrier := msisdn.DetectCarrier(normalized)
	fmt.Printf("号码归一化: %s -> %s (%s)\n", raw, normalized, carrier)

	// 创建一个模拟的订阅用户
	start := time.Now()
	end := start.Add(24 * time.Hour)
	subscriber := model.Subscriber{
		Msisdn:    normalized,
		Status:    model.SubscriberStatusActive,
		StartTime: &start,
		EndTime:   &end,
		Amount:    100.0,
	}

	// 打印订阅信息
	fmt.Printf("订阅用户: %+v\n", subscriber)

	// 创建一个模拟的视频条目
	video := model.VideoItem{
		ID:        1,
		Title:     "Arsenal vs Chelsea - All Goals",
		Category:  "All Goals",
		League:    "Premier League",
		Country:   "England",
		MatchDate: start,
	}

	// 打印视频信息
	fmt.Printf("视频条目: %+v\n", video)

	log.Println("验证完成")
}
