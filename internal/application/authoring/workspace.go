package authoring

import (
	"context"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"docforge-ai-api/internal/domain/entity"
	"docforge-ai-api/internal/domain/repository"
	apperrors "docforge-ai-api/pkg/errors"
	"docforge-ai-api/pkg/logger"
)

const (
	maxTitleLength   = 255
	maxSectionTitle  = 500
	maxCommentLength = 5000
)

// CreateProjectInput 创建项目参数
type CreateProjectInput struct {
	Title   string
	DocType string
	Topic   string
}

// UpdateProjectInput 更新项目参数，nil 字段保持不变；文档类型不可修改
type UpdateProjectInput struct {
	Title *string
	Topic *string
}

// CreateSectionInput 创建章节参数
type CreateSectionInput struct {
	Title      string
	OrderIndex int
}

// UpdateSectionInput 更新章节参数，nil 字段保持不变
type UpdateSectionInput struct {
	Title      *string
	Content    *string
	OrderIndex *int
}

// ProjectDetail 项目及其有序章节
type ProjectDetail struct {
	Project  *entity.Project
	Sections []*entity.Section
}

// FeedbackSummary 章节反馈统计
type FeedbackSummary struct {
	Liked    int64
	Disliked int64
	Total    int64
}

// Workspace 项目、章节、反馈与评论的增删改查
type Workspace struct {
	projects  repository.ProjectRepository
	sections  repository.SectionRepository
	revisions repository.RevisionRepository
	feedbacks repository.FeedbackRepository
	comments  repository.CommentRepository
}

// NewWorkspace 创建工作区用例
func NewWorkspace(
	projects repository.ProjectRepository,
	sections repository.SectionRepository,
	revisions repository.RevisionRepository,
	feedbacks repository.FeedbackRepository,
	comments repository.CommentRepository,
) *Workspace {
	return &Workspace{
		projects:  projects,
		sections:  sections,
		revisions: revisions,
		feedbacks: feedbacks,
		comments:  comments,
	}
}

// CreateProject 创建项目
func (w *Workspace) CreateProject(ctx context.Context, userID string, in CreateProjectInput) (*entity.Project, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required, validation.Length(1, maxTitleLength)),
		validation.Field(&in.Topic, validation.Required),
	); err != nil {
		return nil, invalidParam(err)
	}
	kind, err := entity.ParseDocKind(in.DocType)
	if err != nil {
		return nil, apperrors.ErrInvalidParam.WithDetail("doc_type must be 'docx' or 'pptx'")
	}

	project := entity.NewProject(userID, in.Title, kind, in.Topic)
	if err := w.projects.Create(ctx, project); err != nil {
		return nil, storeError(err, "failed to create project")
	}
	logger.Info(ctx, "project created", "project_id", project.ID, "doc_type", string(kind))
	return project, nil
}

// ListProjects 列出用户项目（最新在前）
func (w *Workspace) ListProjects(ctx context.Context, userID string, page repository.Pagination) (*repository.PagedResult[*entity.Project], error) {
	result, err := w.projects.ListByOwner(ctx, userID, page)
	if err != nil {
		return nil, storeError(err, "failed to list projects")
	}
	return result, nil
}

// GetProject 获取项目及其有序章节
func (w *Workspace) GetProject(ctx context.Context, userID, projectID string) (*ProjectDetail, error) {
	project, err := resolveProject(ctx, w.projects, projectID, userID)
	if err != nil {
		return nil, err
	}
	sections, err := w.sections.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, storeError(err, "failed to list sections")
	}
	return &ProjectDetail{Project: project, Sections: sections}, nil
}

// UpdateProject 更新标题与主题
func (w *Workspace) UpdateProject(ctx context.Context, userID, projectID string, in UpdateProjectInput) (*entity.Project, error) {
	if err := validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.NilOrNotEmpty, validation.Length(1, maxTitleLength)),
		validation.Field(&in.Topic, validation.NilOrNotEmpty),
	); err != nil {
		return nil, invalidParam(err)
	}

	project, err := resolveProject(ctx, w.projects, projectID, userID)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		project.Title = strings.TrimSpace(*in.Title)
	}
	if in.Topic != nil {
		project.Topic = *in.Topic
	}
	project.UpdatedAt = time.Now()

	if err := w.projects.Update(ctx, project); err != nil {
		return nil, storeError(err, "failed to update project")
	}
	return project, nil
}

// DeleteProject 删除项目及其全部章节数据
func (w *Workspace) DeleteProject(ctx context.Context, userID, projectID string) error {
	project, err := resolveProject(ctx, w.projects, projectID, userID)
	if err != nil {
		return err
	}
	if err := w.projects.Delete(ctx, project.ID); err != nil {
		return storeError(err, "failed to delete project")
	}
	logger.Info(ctx, "project deleted", "project_id", project.ID)
	return nil
}

// CreateSection 在项目下创建章节，类型由项目文档类型决定
func (w *Workspace) CreateSection(ctx context.Context, userID, projectID string, in CreateSectionInput) (*entity.Section, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required, validation.Length(1, maxSectionTitle)),
		validation.Field(&in.OrderIndex, validation.Min(0)),
	); err != nil {
		return nil, invalidParam(err)
	}

	project, err := resolveProject(ctx, w.projects, projectID, userID)
	if err != nil {
		return nil, err
	}
	section := entity.NewSection(project, in.Title, in.OrderIndex)
	if err := w.sections.Create(ctx, section); err != nil {
		return nil, storeError(err, "failed to create section")
	}
	return section, nil
}

// UpdateSection 手动编辑章节
// 修改内容会递增版本号，但不生成润色记录，也不改写 llm_raw
func (w *Workspace) UpdateSection(ctx context.Context, userID, projectID, sectionID string, in UpdateSectionInput) (*entity.Section, error) {
	if err := validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.NilOrNotEmpty, validation.Length(1, maxSectionTitle)),
		validation.Field(&in.OrderIndex, validation.Min(0)),
	); err != nil {
		return nil, invalidParam(err)
	}

	project, err := resolveProject(ctx, w.projects, projectID, userID)
	if err != nil {
		return nil, err
	}
	section, err := resolveSection(ctx, w.sections, project.ID, sectionID)
	if err != nil {
		return nil, err
	}

	expected := section.Version
	if in.Title != nil {
		section.Title = strings.TrimSpace(*in.Title)
	}
	if in.OrderIndex != nil {
		section.OrderIndex = *in.OrderIndex
	}
	if in.Content != nil {
		section.ApplyManualEdit(*in.Content)
	}
	section.UpdatedAt = time.Now()

	if err := w.sections.Update(ctx, section, expected); err != nil {
		return nil, storeError(err, "failed to update section")
	}
	return section, nil
}

// DeleteSection 删除章节及其润色记录、反馈与评论
func (w *Workspace) DeleteSection(ctx context.Context, userID, projectID, sectionID string) error {
	section, err := w.ownedSection(ctx, userID, projectID, sectionID)
	if err != nil {
		return err
	}
	if err := w.sections.Delete(ctx, section.ID); err != nil {
		return storeError(err, "failed to delete section")
	}
	return nil
}

// ListRevisions 章节润色历史（最新在前）
func (w *Workspace) ListRevisions(ctx context.Context, userID, projectID, sectionID string) ([]*entity.Revision, error) {
	section, err := w.ownedSection(ctx, userID, projectID, sectionID)
	if err != nil {
		return nil, err
	}
	revisions, err := w.revisions.ListBySection(ctx, section.ID)
	if err != nil {
		return nil, storeError(err, "failed to list revisions")
	}
	return revisions, nil
}

// AddFeedback 提交点赞/点踩，不去重
func (w *Workspace) AddFeedback(ctx context.Context, userID, projectID, sectionID string, liked bool) (*entity.Feedback, error) {
	section, err := w.ownedSection(ctx, userID, projectID, sectionID)
	if err != nil {
		return nil, err
	}
	feedback := entity.NewFeedback(section, userID, liked)
	if err := w.feedbacks.Create(ctx, feedback); err != nil {
		return nil, storeError(err, "failed to save feedback")
	}
	return feedback, nil
}

// SectionFeedback 章节反馈统计
func (w *Workspace) SectionFeedback(ctx context.Context, userID, projectID, sectionID string) (*FeedbackSummary, error) {
	section, err := w.ownedSection(ctx, userID, projectID, sectionID)
	if err != nil {
		return nil, err
	}
	liked, disliked, err := w.feedbacks.CountBySection(ctx, section.ID)
	if err != nil {
		return nil, storeError(err, "failed to count feedback")
	}
	return &FeedbackSummary{Liked: liked, Disliked: disliked, Total: liked + disliked}, nil
}

// AddComment 添加评论
func (w *Workspace) AddComment(ctx context.Context, userID, projectID, sectionID, text string) (*entity.Comment, error) {
	if err := validation.Validate(strings.TrimSpace(text), validation.Required, validation.Length(1, maxCommentLength)); err != nil {
		return nil, apperrors.ErrInvalidParam.WithDetail("comment_text: " + err.Error())
	}
	section, err := w.ownedSection(ctx, userID, projectID, sectionID)
	if err != nil {
		return nil, err
	}
	comment := entity.NewComment(section, userID, text)
	if err := w.comments.Create(ctx, comment); err != nil {
		return nil, storeError(err, "failed to save comment")
	}
	return comment, nil
}

// ListComments 章节评论（最新在前）
func (w *Workspace) ListComments(ctx context.Context, userID, projectID, sectionID string) ([]*entity.Comment, error) {
	section, err := w.ownedSection(ctx, userID, projectID, sectionID)
	if err != nil {
		return nil, err
	}
	comments, err := w.comments.ListBySection(ctx, section.ID)
	if err != nil {
		return nil, storeError(err, "failed to list comments")
	}
	return comments, nil
}

func (w *Workspace) ownedSection(ctx context.Context, userID, projectID, sectionID string) (*entity.Section, error) {
	project, err := resolveProject(ctx, w.projects, projectID, userID)
	if err != nil {
		return nil, err
	}
	return resolveSection(ctx, w.sections, project.ID, sectionID)
}
