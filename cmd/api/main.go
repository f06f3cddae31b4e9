package main

import (
	"log"
	"os"

	"GoalArena/pkg/api"
	"GoalArena/pkg/catalog"
	"GoalArena/pkg/config"
	"GoalArena/pkg/database"
	"GoalArena/pkg/interaction"
	"GoalArena/pkg/messaging"
	"GoalArena/pkg/search"
	"GoalArena/pkg/subscription"
)

func main() {
	log.Println("启动API服务...")

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
	var events subscription.EventPublisher
	if cfg.NATS.Enabled {
		client, err := messaging.NewClient(cfg.NATS.URL)
		if err != nil {
			log.Printf("连接NATS失败，事件发布已禁用: %v\n", err)
		} else {
			defer client.Close()
			events = client
		}
	}

	// 创建业务服务
	catalogService := catalog.NewService(db.Catalog())
	searchService := search.NewService(db)
	interactionService := interaction.NewService(db.Interaction())
	subscriptionService := subscription.NewService(
		db.Subscriber(), db.Session(), db.Webhook(), db.Link(), events,
	)

	// 创建API处理程序
	handlers := api.NewHandlers(catalogService, searchService, interactionService, subscriptionService, db)

	// 创建并启动服务器
	server := api.NewServer(cfg)
	server.SetupRoutes(handlers)
	server.Start()
}
