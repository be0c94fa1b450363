// Package router 提供 HTTP 路由配置
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"docforge-ai-api/internal/config"
	"docforge-ai-api/internal/interfaces/http/handler"
	"docforge-ai-api/internal/interfaces/http/middleware"
	"docforge-ai-api/pkg/utils"
)

// RouterHandlers 路由依赖的全部处理器
type RouterHandlers struct {
	Health     *handler.HealthHandler
	Auth       *handler.AuthHandler
	Project    *handler.ProjectHandler
	Section    *handler.SectionHandler
	Generation *handler.GenerationHandler
	Feedback   *handler.FeedbackHandler
	Export     *handler.ExportHandler
}

// Router HTTP 路由器
type Router struct {
	engine   *gin.Engine
	cfg      *config.Config
	handlers *RouterHandlers
	jwt      *utils.JWTManager
	limiter  middleware.RateLimiter
}

// NewWithDeps 创建路由器，limiter 为 nil 时不限流
func NewWithDeps(cfg *config.Config, handlers *RouterHandlers, jwtManager *utils.JWTManager, limiter middleware.RateLimiter) *Router {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := &Router{
		engine:   gin.New(),
		cfg:      cfg,
		handlers: handlers,
		jwt:      jwtManager,
		limiter:  limiter,
	}

	r.setupMiddleware()
	r.setupRoutes()

	return r
}

// Engine 返回 Gin Engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// setupMiddleware 配置中间件
func (r *Router) setupMiddleware() {
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.CORS(r.cfg.Security.CORS))

	if r.cfg.Observability.Tracing.Enabled {
		r.engine.Use(middleware.Trace(r.cfg.App.Name))
	}
	r.engine.Use(middleware.TraceContext())

	if r.cfg.Observability.Metrics.Enabled {
		r.engine.Use(middleware.Metrics(r.cfg.Observability.Metrics.Path))
	}
}

// setupRoutes 配置路由
func (r *Router) setupRoutes() {
	h := r.handlers

	// 系统端点
	r.engine.GET("/", h.Health.Root)
	r.engine.GET("/health", h.Health.Health)
	r.engine.GET("/ready", h.Health.Ready)
	r.engine.GET("/live", h.Health.Live)

	if r.cfg.Observability.Metrics.Enabled {
		r.engine.GET(r.cfg.Observability.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	requireAuth := middleware.Auth(r.jwt)
	rateLimit := middleware.RateLimit(middleware.RateLimitConfig{
		Enabled: r.cfg.Security.RateLimit.Enabled,
		Limit:   r.cfg.Security.RateLimit.Limit,
		Window:  r.cfg.Security.RateLimit.Window,
	}, r.limiter)

	v1 := r.engine.Group("/api/v1")

	// 认证
	auth := v1.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.GET("/me", requireAuth, h.Auth.Me)
	}

	protected := v1.Group("", requireAuth)

	// 项目与章节
	projects := protected.Group("/projects")
	{
		projects.GET("", h.Project.ListProjects)
		projects.POST("", h.Project.CreateProject)
		projects.GET("/:pid", h.Project.GetProject)
		projects.PUT("/:pid", h.Project.UpdateProject)
		projects.DELETE("/:pid", h.Project.DeleteProject)

		projects.POST("/:pid/sections", h.Section.CreateSection)
		projects.PUT("/:pid/sections/:sid", h.Section.UpdateSection)
		projects.DELETE("/:pid/sections/:sid", h.Section.DeleteSection)
		projects.GET("/:pid/sections/:sid/revisions", h.Section.ListRevisions)
		projects.GET("/:pid/sections/:sid/comments", h.Section.ListComments)
		projects.GET("/:pid/sections/:sid/feedback", h.Section.FeedbackSummary)
	}

	// AI 接口按用户限流
	ai := protected.Group("", rateLimit)
	{
		ai.POST("/generate/section", h.Generation.GenerateSection)
		ai.POST("/refine/section", h.Generation.RefineSection)
		ai.POST("/ai/suggest-outline", h.Generation.SuggestOutline)
	}

	// 反馈与评论
	protected.POST("/feedback", h.Feedback.AddFeedback)
	protected.POST("/comments", h.Feedback.AddComment)

	// 导出
	protected.GET("/export/project/:pid", h.Export.ExportProject)
}
