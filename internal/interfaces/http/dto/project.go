package dto

import (
	"time"

	"docforge-ai-api/internal/application/authoring"
	"docforge-ai-api/internal/domain/entity"
)

// CreateProjectRequest 创建项目请求
type CreateProjectRequest struct {
	Title   string `json:"title" binding:"required"`
	DocType string `json:"doc_type" binding:"required"`
	Topic   string `json:"topic" binding:"required"`
}

// ToInput 转换为用例参数
func (r *CreateProjectRequest) ToInput() authoring.CreateProjectInput {
	return authoring.CreateProjectInput{Title: r.Title, DocType: r.DocType, Topic: r.Topic}
}

// UpdateProjectRequest 更新项目请求，doc_type 不可修改
type UpdateProjectRequest struct {
	Title *string `json:"title"`
	Topic *string `json:"topic"`
}

// ToInput 转换为用例参数
func (r *UpdateProjectRequest) ToInput() authoring.UpdateProjectInput {
	return authoring.UpdateProjectInput{Title: r.Title, Topic: r.Topic}
}

// ProjectResponse 项目响应
type ProjectResponse struct {
	ID        string             `json:"id"`
	UserID    string             `json:"user_id"`
	Title     string             `json:"title"`
	DocType   string             `json:"doc_type"`
	Topic     string             `json:"topic"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
	Sections  []*SectionResponse `json:"sections,omitempty"`
}

// ToProjectResponse 将领域实体转换为 DTO
func ToProjectResponse(p *entity.Project) *ProjectResponse {
	if p == nil {
		return nil
	}
	return &ProjectResponse{
		ID:        p.ID,
		UserID:    p.UserID,
		Title:     p.Title,
		DocType:   string(p.DocKind),
		Topic:     p.Topic,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// ToProjectDetailResponse 带有序章节的项目响应
func ToProjectDetailResponse(d *authoring.ProjectDetail) *ProjectResponse {
	resp := ToProjectResponse(d.Project)
	resp.Sections = ToSectionListResponse(d.Sections)
	return resp
}

// ToProjectListResponse 转换项目列表
func ToProjectListResponse(projects []*entity.Project) []*ProjectResponse {
	out := make([]*ProjectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, ToProjectResponse(p))
	}
	return out
}

// CreateSectionRequest 创建章节请求
type CreateSectionRequest struct {
	Title      string `json:"title" binding:"required"`
	OrderIndex int    `json:"order_index"`
}

// ToInput 转换为用例参数
func (r *CreateSectionRequest) ToInput() authoring.CreateSectionInput {
	return authoring.CreateSectionInput{Title: r.Title, OrderIndex: r.OrderIndex}
}

// UpdateSectionRequest 更新章节请求
type UpdateSectionRequest struct {
	Title      *string `json:"title"`
	Content    *string `json:"content"`
	OrderIndex *int    `json:"order_index"`
}

// ToInput 转换为用例参数
func (r *UpdateSectionRequest) ToInput() authoring.UpdateSectionInput {
	return authoring.UpdateSectionInput{Title: r.Title, Content: r.Content, OrderIndex: r.OrderIndex}
}

// SectionResponse 章节响应
type SectionResponse struct {
	ID         string    `json:"id"`
	ProjectID  string    `json:"project_id"`
	Type       string    `json:"type"`
	OrderIndex int       `json:"order_index"`
	Title      string    `json:"title"`
	Content    *string   `json:"content"`
	LLMRaw     *string   `json:"llm_raw"`
	Version    int       `json:"version"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ToSectionResponse 将领域实体转换为 DTO
func ToSectionResponse(s *entity.Section) *SectionResponse {
	if s == nil {
		return nil
	}
	return &SectionResponse{
		ID:         s.ID,
		ProjectID:  s.ProjectID,
		Type:       string(s.Kind),
		OrderIndex: s.OrderIndex,
		Title:      s.Title,
		Content:    s.Content,
		LLMRaw:     s.LLMRaw,
		Version:    s.Version,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

// ToSectionListResponse 转换章节列表
func ToSectionListResponse(sections []*entity.Section) []*SectionResponse {
	out := make([]*SectionResponse, 0, len(sections))
	for _, s := range sections {
		out = append(out, ToSectionResponse(s))
	}
	return out
}

// RevisionResponse 润色记录响应
type RevisionResponse struct {
	ID         string    `json:"id"`
	SectionID  string    `json:"section_id"`
	ProjectID  string    `json:"project_id"`
	UserID     string    `json:"user_id"`
	Prompt     string    `json:"prompt"`
	OldContent *string   `json:"old_content"`
	NewContent string    `json:"new_content"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToRevisionListResponse 转换润色记录列表
func ToRevisionListResponse(revisions []*entity.Revision) []*RevisionResponse {
	out := make([]*RevisionResponse, 0, len(revisions))
	for _, r := range revisions {
		out = append(out, &RevisionResponse{
			ID:         r.ID,
			SectionID:  r.SectionID,
			ProjectID:  r.ProjectID,
			UserID:     r.UserID,
			Prompt:     r.Prompt,
			OldContent: r.OldContent,
			NewContent: r.NewContent,
			CreatedAt:  r.CreatedAt,
		})
	}
	return out
}
