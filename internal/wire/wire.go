//go:build wireinject
// +build wireinject

// Package wire 提供依赖注入配置
package wire

import (
	"context"

	"github.com/google/wire"

	"docforge-ai-api/internal/application/authoring"
	"docforge-ai-api/internal/config"
	"docforge-ai-api/internal/domain/repository"
	"docforge-ai-api/internal/domain/service"
	"docforge-ai-api/internal/infrastructure/export"
	"docforge-ai-api/internal/infrastructure/llm"
	"docforge-ai-api/internal/infrastructure/persistence/postgres"
	"docforge-ai-api/internal/interfaces/http/handler"
	"docforge-ai-api/internal/interfaces/http/router"
)

// InitializePostgresOnly 仅初始化 PostgreSQL 数据层（用于 bootstrap）
func InitializePostgresOnly(ctx context.Context, cfg *config.Config) (*PostgresOnlyDataLayer, func(), error) {
	wire.Build(
		PostgresSet,
		wire.Struct(new(PostgresOnlyDataLayer), "*"),
	)
	return nil, nil, nil
}

// InitializeApp 初始化整个应用（带路由器）
func InitializeApp(ctx context.Context, cfg *config.Config) (*router.Router, func(), error) {
	wire.Build(
		RepoSet,
		RedisSet,
		LLMSet,
		AuthoringSet,
		RouterSet,
	)
	return nil, nil, nil
}

// PostgresSet PostgreSQL 提供者集合
var PostgresSet = wire.NewSet(
	ProvidePostgresClient,
	postgres.NewTxManager,
	postgres.NewUserRepository,
	postgres.NewProjectRepository,
	postgres.NewSectionRepository,
	postgres.NewRevisionRepository,
	postgres.NewFeedbackRepository,
	postgres.NewCommentRepository,
)

// RepoSet 整合了具体实现与接口绑定的集合
var RepoSet = wire.NewSet(
	PostgresSet,
	wire.Bind(new(repository.Transactor), new(*postgres.TxManager)),
	wire.Bind(new(repository.UserRepository), new(*postgres.UserRepository)),
	wire.Bind(new(repository.ProjectRepository), new(*postgres.ProjectRepository)),
	wire.Bind(new(repository.SectionRepository), new(*postgres.SectionRepository)),
	wire.Bind(new(repository.RevisionRepository), new(*postgres.RevisionRepository)),
	wire.Bind(new(repository.FeedbackRepository), new(*postgres.FeedbackRepository)),
	wire.Bind(new(repository.CommentRepository), new(*postgres.CommentRepository)),
)

// RedisSet 可选 Redis（不可达且 optional 时关闭缓存与限流）
var RedisSet = wire.NewSet(
	ProvideRedisClientOptional,
	ProvideOutlineCache,
	ProvideRateLimiter,
)

// LLMSet 文本生成与导出
var LLMSet = wire.NewSet(
	ProvideLLMAdapter,
	wire.Bind(new(service.TextGenerator), new(*llm.Adapter)),
	ProvideExportConfig,
	export.NewRenderer,
	wire.Bind(new(service.DocumentRenderer), new(*export.Renderer)),
)

// AuthoringSet 应用层用例
var AuthoringSet = wire.NewSet(
	ProvideJWTManager,
	ProvideJWTConfig,
	ProvideOutlineCacheFeature,
	authoring.NewService,
	authoring.NewWorkspace,
	authoring.NewExporter,
	authoring.NewAccounts,
)

// RouterSet 路由器提供者集合
var RouterSet = wire.NewSet(
	handler.NewHealthHandler,
	handler.NewAuthHandler,
	handler.NewProjectHandler,
	handler.NewSectionHandler,
	handler.NewGenerationHandler,
	handler.NewFeedbackHandler,
	handler.NewExportHandler,
	wire.Struct(new(router.RouterHandlers), "*"),
	router.NewWithDeps,
)
