// Package authoring 实现章节内容生成、润色与大纲建议等用例
package authoring

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.opentelemetry.io/otel/attribute"

	"docforge-ai-api/internal/config"
	"docforge-ai-api/internal/domain/entity"
	"docforge-ai-api/internal/domain/repository"
	"docforge-ai-api/internal/domain/service"
	apperrors "docforge-ai-api/pkg/errors"
	"docforge-ai-api/pkg/logger"
	"docforge-ai-api/pkg/metrics"
	"docforge-ai-api/pkg/tracer"
)

// 业务流程标签
const (
	WorkflowGenerate = "section_generate"
	WorkflowRefine   = "section_refine"
	WorkflowOutline  = "outline_suggest"
)

const maxOutlineItems = 50

// OutlineCache 大纲建议缓存，由 redis.Cache 实现
type OutlineCache interface {
	GetOrLoadSafe(ctx context.Context, key string, ttl time.Duration, loader func() (interface{}, error)) ([]byte, error)
}

// GenerateResult 生成结果
type GenerateResult struct {
	SectionID string
	Content   string
	LLMRaw    string
	Message   string
}

// RefineResult 润色结果
type RefineResult struct {
	SectionID  string
	OldContent string
	NewContent string
	RevisionID string
	Message    string
}

// OutlineResult 大纲建议结果
type OutlineResult struct {
	Items   []string
	Message string
}

// Service 生成/润色编排器
type Service struct {
	projects  repository.ProjectRepository
	sections  repository.SectionRepository
	revisions repository.RevisionRepository
	tx        repository.Transactor
	generator service.TextGenerator

	cache    OutlineCache
	cacheTTL time.Duration
}

// NewService 创建编排器，cache 为 nil 或功能关闭时不使用缓存
func NewService(
	projects repository.ProjectRepository,
	sections repository.SectionRepository,
	revisions repository.RevisionRepository,
	tx repository.Transactor,
	generator service.TextGenerator,
	cache OutlineCache,
	cacheCfg config.OutlineCacheFeature,
) *Service {
	s := &Service{
		projects:  projects,
		sections:  sections,
		revisions: revisions,
		tx:        tx,
		generator: generator,
	}
	if cache != nil && cacheCfg.Enabled && cacheCfg.TTL > 0 {
		s.cache = cache
		s.cacheTTL = cacheCfg.TTL
	}
	return s
}

// GenerateSection 生成章节内容，覆盖 content 与 llm_raw，不写润色记录
func (s *Service) GenerateSection(ctx context.Context, userID, projectID, sectionID string) (res *GenerateResult, err error) {
	ctx, done := s.begin(ctx, WorkflowGenerate, projectID, sectionID)
	defer func() { done(err) }()

	project, err := resolveProject(ctx, s.projects, projectID, userID)
	if err != nil {
		return nil, err
	}
	section, err := resolveSection(ctx, s.sections, project.ID, sectionID)
	if err != nil {
		return nil, err
	}

	others, err := s.sections.ListOthers(ctx, project.ID, section.ID, maxNeighbors)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load context sections")
	}
	neighbors := make([]Neighbor, 0, len(others))
	for _, o := range others {
		neighbors = append(neighbors, Neighbor{Title: o.Title, Content: o.ContentOrEmpty()})
	}

	prompt := BuildGenerationPrompt(GenerationPromptInput{
		Topic:           project.Topic,
		SectionTitle:    section.Title,
		Kind:            section.Kind,
		PreviousContent: section.ContentOrEmpty(),
		Neighbors:       neighbors,
	})

	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, generationError("Failed to generate content", err)
	}

	expected := section.Version
	section.ApplyGeneration(text)
	if err := s.sections.Update(ctx, section, expected); err != nil {
		return nil, storeError(err, "failed to save generated content")
	}

	logger.Info(ctx, "section content generated", "chars", len(text), "version", section.Version)
	return &GenerateResult{
		SectionID: section.ID,
		Content:   text,
		LLMRaw:    text,
		Message:   "Content generated successfully",
	}, nil
}

// RefineSection 按指令润色已有内容
// 润色记录写入与章节更新在同一事务内完成
func (s *Service) RefineSection(ctx context.Context, userID, projectID, sectionID, instruction string) (res *RefineResult, err error) {
	ctx, done := s.begin(ctx, WorkflowRefine, projectID, sectionID)
	defer func() { done(err) }()

	if err := validation.Validate(instruction, validation.Required, validation.Length(1, 2000)); err != nil {
		return nil, invalidParam(fmt.Errorf("prompt: %w", err))
	}

	project, err := resolveProject(ctx, s.projects, projectID, userID)
	if err != nil {
		return nil, err
	}
	section, err := resolveSection(ctx, s.sections, project.ID, sectionID)
	if err != nil {
		return nil, err
	}
	if !section.HasContent() {
		return nil, apperrors.ErrPreconditionFailed.WithDetail("Section has no content to refine. Generate content first.")
	}

	oldContent := section.ContentOrEmpty()
	prompt := BuildRefinementPrompt(oldContent, instruction, section.Kind)

	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, generationError("Failed to refine content", err)
	}

	revision := entity.NewRevision(section, userID, instruction, section.Content, text)
	expected := section.Version
	section.ApplyRefinement(text)

	err = s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.revisions.Create(txCtx, revision); err != nil {
			return err
		}
		return s.sections.Update(txCtx, section, expected)
	})
	if err != nil {
		return nil, storeError(err, "failed to save refined content")
	}
	metrics.RevisionsTotal.Inc()

	logger.Info(ctx, "section content refined", "revision_id", revision.ID, "version", section.Version)
	return &RefineResult{
		SectionID:  section.ID,
		OldContent: oldContent,
		NewContent: text,
		RevisionID: revision.ID,
		Message:    "Content refined successfully",
	}, nil
}

// SuggestOutline 生成大纲标题列表
// numItems 仅对幻灯片生效，<=0 时取默认值
func (s *Service) SuggestOutline(ctx context.Context, topic, docType string, numItems int) (res *OutlineResult, err error) {
	ctx, done := s.begin(ctx, WorkflowOutline, "", "")
	defer func() { done(err) }()

	if err := validation.Validate(strings.TrimSpace(topic), validation.Required, validation.Length(1, 2000)); err != nil {
		return nil, invalidParam(fmt.Errorf("topic: %w", err))
	}
	kind, err := entity.ParseDocKind(docType)
	if err != nil {
		return nil, apperrors.ErrInvalidParam.WithDetail("doc_type must be 'docx' or 'pptx'")
	}

	n := 0
	if kind == entity.DocKindPPTX {
		if numItems < 0 || numItems > maxOutlineItems {
			return nil, apperrors.ErrInvalidParam.WithDetail(fmt.Sprintf("num_items must be between 1 and %d", maxOutlineItems))
		}
		n = numItems
		if n == 0 {
			n = DefaultOutlineItems
		}
	}

	prompt := BuildOutlinePrompt(topic, kind, n)
	items, err := s.outlineItems(ctx, outlineCacheKey(s.generator.Provider(), kind, n, topic), prompt)
	if err != nil {
		return nil, err
	}
	return &OutlineResult{
		Items:   items,
		Message: fmt.Sprintf("Generated %d suggestions", len(items)),
	}, nil
}

// outlineItems 优先读缓存；缓存不可用时直接调用模型
func (s *Service) outlineItems(ctx context.Context, key, prompt string) ([]string, error) {
	load := func() ([]string, error) {
		raw, err := s.generator.Generate(ctx, prompt)
		if err != nil {
			return nil, generationError("Failed to generate suggestions", err)
		}
		return ParseOutline(raw)
	}
	if s.cache == nil {
		return load()
	}

	loaded := false
	data, err := s.cache.GetOrLoadSafe(ctx, key, s.cacheTTL, func() (interface{}, error) {
		loaded = true
		return load()
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			metrics.OutlineCacheTotal.WithLabelValues("miss").Inc()
			return nil, err
		}
		metrics.OutlineCacheTotal.WithLabelValues("error").Inc()
		logger.Warn(ctx, "outline cache unavailable, calling model directly", "error", err.Error())
		return load()
	}

	var items []string
	if err := json.Unmarshal(data, &items); err != nil || len(items) == 0 {
		metrics.OutlineCacheTotal.WithLabelValues("error").Inc()
		logger.Warn(ctx, "outline cache entry unreadable, calling model directly", "key", key)
		return load()
	}
	if loaded {
		metrics.OutlineCacheTotal.WithLabelValues("miss").Inc()
	} else {
		metrics.OutlineCacheTotal.WithLabelValues("hit").Inc()
	}
	return items, nil
}

// outlineCacheKey 以提供商、文档类型、条数与规范化主题生成缓存键
func outlineCacheKey(provider string, kind entity.DocKind, n int, topic string) string {
	normalized := strings.ToLower(strings.Join(strings.Fields(topic), " "))
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%d|%s", provider, kind, n, normalized)))
	return "outline:" + hex.EncodeToString(sum[:])
}

// begin 打开 span 并注入日志与 LLM 标签，返回的 done 记录指标
func (s *Service) begin(ctx context.Context, op, projectID, sectionID string) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := tracer.Start(ctx, "authoring."+op)
	span.SetAttributes(attribute.String("authoring.operation", op))

	ctx = service.WithWorkflow(ctx, op)
	if projectID != "" {
		ctx = logger.WithContext(ctx, logger.ProjectIDKey, projectID)
		span.SetAttributes(attribute.String("project.id", projectID))
	}
	if sectionID != "" {
		ctx = logger.WithContext(ctx, logger.SectionIDKey, sectionID)
		span.SetAttributes(attribute.String("section.id", sectionID))
	}

	return ctx, func(err error) {
		status := "success"
		if err != nil {
			status = "error"
			tracer.RecordError(span, err)
		}
		metrics.AuthoringOperationTotal.WithLabelValues(op, status).Inc()
		metrics.AuthoringOperationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
		span.End()
	}
}
