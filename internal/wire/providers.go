package wire

import (
	"context"

	"docforge-ai-api/internal/application/authoring"
	"docforge-ai-api/internal/config"
	"docforge-ai-api/internal/infrastructure/llm"
	"docforge-ai-api/internal/infrastructure/persistence/postgres"
	"docforge-ai-api/internal/infrastructure/persistence/redis"
	"docforge-ai-api/internal/interfaces/http/middleware"
	"docforge-ai-api/pkg/logger"
	"docforge-ai-api/pkg/utils"
)

// PostgresOnlyDataLayer 仅包含 PostgreSQL 的数据层（用于 bootstrap）
type PostgresOnlyDataLayer struct {
	PgClient  *postgres.Client
	TxManager *postgres.TxManager
	UserRepo  *postgres.UserRepository
}

// ProvidePostgresClient 提供 PostgreSQL 客户端，auto_migrate 开启时同步表结构
func ProvidePostgresClient(ctx context.Context, cfg *config.Config) (*postgres.Client, func(), error) {
	client, err := postgres.NewClient(&cfg.Database.Postgres)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Database.Postgres.AutoMigrate {
		if err := client.AutoMigrate(ctx); err != nil {
			_ = client.Close()
			return nil, nil, err
		}
	}
	cleanup := func() {
		_ = client.Close()
	}
	return client, cleanup, nil
}

// ProvideRedisClientOptional 提供 Redis 客户端
// cache.redis.optional 为 true 时连接失败返回 nil 客户端
func ProvideRedisClientOptional(ctx context.Context, cfg *config.Config) (*redis.Client, func(), error) {
	client, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		if !cfg.Cache.Redis.Optional {
			return nil, nil, err
		}
		logger.Warn(ctx, "redis not available, outline cache and rate limiting disabled", "error", err.Error())
		return nil, func() {}, nil
	}
	cleanup := func() {
		_ = client.Close()
	}
	return client, cleanup, nil
}

// ProvideOutlineCache 无 Redis 时返回 nil 接口
func ProvideOutlineCache(client *redis.Client) authoring.OutlineCache {
	if client == nil {
		return nil
	}
	return redis.NewCache(client)
}

// ProvideRateLimiter 无 Redis 时返回 nil 接口
func ProvideRateLimiter(client *redis.Client) middleware.RateLimiter {
	if client == nil {
		return nil
	}
	return redis.NewRateLimiter(client)
}

// ProvideLLMAdapter 启动时按配置构建 LLM 适配器
func ProvideLLMAdapter(ctx context.Context, cfg *config.Config) (*llm.Adapter, error) {
	return llm.NewAdapter(ctx, &cfg.LLM)
}

// ProvideExportConfig 提供导出配置
func ProvideExportConfig(cfg *config.Config) *config.ExportConfig {
	return &cfg.Export
}

// ProvideJWTConfig 提供 JWT 配置
func ProvideJWTConfig(cfg *config.Config) *config.JWTConfig {
	return &cfg.Security.JWT
}

// ProvideJWTManager 提供 JWT 管理器
func ProvideJWTManager(cfg *config.Config) *utils.JWTManager {
	return utils.NewJWTManager(cfg.Security.JWT.Secret, cfg.Security.JWT.Issuer)
}

// ProvideOutlineCacheFeature 提供大纲缓存开关
func ProvideOutlineCacheFeature(cfg *config.Config) config.OutlineCacheFeature {
	return cfg.Features.OutlineCache
}
