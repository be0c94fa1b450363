package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"docforge-ai-api/internal/config"
	"docforge-ai-api/internal/domain/entity"
	"docforge-ai-api/internal/wire"
)

func main() {
	_ = godotenv.Load()

	fmt.Println("Starting system bootstrap...")

	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	// 建表由本命令负责，不依赖 auto_migrate 开关
	cfg.Database.Postgres.AutoMigrate = false

	ctx := context.Background()

	// 2. 初始化数据层（仅 PostgreSQL）
	dataLayer, cleanup, err := wire.InitializePostgresOnly(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to initialize data layer: %v", err)
	}
	defer cleanup()

	// 3. 同步表结构
	if err := dataLayer.PgClient.AutoMigrate(ctx); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}
	fmt.Println("Schema migrated.")

	// 4. 可选的演示用户
	email := os.Getenv("BOOTSTRAP_DEMO_EMAIL")
	password := os.Getenv("BOOTSTRAP_DEMO_PASSWORD")
	if email == "" || password == "" {
		fmt.Println("BOOTSTRAP_DEMO_EMAIL/BOOTSTRAP_DEMO_PASSWORD not set, skipping demo user.")
		fmt.Println("Bootstrap completed successfully.")
		return
	}

	exists, err := dataLayer.UserRepo.ExistsByEmail(ctx, email)
	if err != nil {
		log.Fatalf("failed to check demo user existence: %v", err)
	}

	if !exists {
		fmt.Printf("Creating demo user: %s...\n", email)
		user := entity.NewUser(email)
		if err := user.SetPassword(password); err != nil {
			log.Fatalf("failed to hash demo password: %v", err)
		}
		if err := dataLayer.UserRepo.Create(ctx, user); err != nil {
			log.Fatalf("failed to create demo user: %v", err)
		}
		fmt.Println("Demo user created successfully.")
	} else {
		fmt.Printf("Demo user %s already exists.\n", email)
	}

	fmt.Println("Bootstrap completed successfully.")
}
