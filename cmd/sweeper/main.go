package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"GoalArena/pkg/config"
	"GoalArena/pkg/database"
	"GoalArena/pkg/messaging"
	"GoalArena/pkg/scheduler"
)

func main() {
	log.Println("启动订阅清理服务...")

	// 加载配置
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = config.GetDefaultConfigPath()
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v\n", err)
	}

	// 连接数据库
	db, err := database.NewMySQL(cfg)
	if err != nil {
		log.Fatalf("连接数据库失败: %v\n", err)
	}
	defer db.Close()

	// 连接NATS（可选）
	var events scheduler.EventPublisher
	if cfg.NATS.Enabled {
		client, err := messaging.NewClient(cfg.NATS.URL)
		if err != nil {
			log.Printf("连接NATS失败，事件发布已禁用: %v\n", err)
		} else {
			defer client.Close()
			events = client
		}
	}

	// 启动定时任务
	sched := scheduler.NewScheduler(db.Subscriber(), db.Session(), events)
	sched.Start()
	defer sched.Stop()

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭订阅清理服务...")
}
