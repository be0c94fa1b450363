package dto

import "docforge-ai-api/internal/application/authoring"

// GenerateSectionRequest 生成章节内容请求
type GenerateSectionRequest struct {
	ProjectID string `json:"project_id" binding:"required"`
	SectionID string `json:"section_id" binding:"required"`
}

// GenerateSectionResponse 生成章节内容响应
type GenerateSectionResponse struct {
	SectionID string `json:"section_id"`
	Content   string `json:"content"`
	LLMRaw    string `json:"llm_raw"`
	Message   string `json:"message"`
}

// ToGenerateSectionResponse 转换生成结果
func ToGenerateSectionResponse(r *authoring.GenerateResult) *GenerateSectionResponse {
	return &GenerateSectionResponse{
		SectionID: r.SectionID,
		Content:   r.Content,
		LLMRaw:    r.LLMRaw,
		Message:   r.Message,
	}
}

// RefineSectionRequest 润色章节内容请求
type RefineSectionRequest struct {
	ProjectID string `json:"project_id" binding:"required"`
	SectionID string `json:"section_id" binding:"required"`
	Prompt    string `json:"prompt" binding:"required"`
}

// RefineSectionResponse 润色章节内容响应
type RefineSectionResponse struct {
	SectionID  string `json:"section_id"`
	OldContent string `json:"old_content"`
	NewContent string `json:"new_content"`
	RevisionID string `json:"revision_id"`
	Message    string `json:"message"`
}

// ToRefineSectionResponse 转换润色结果
func ToRefineSectionResponse(r *authoring.RefineResult) *RefineSectionResponse {
	return &RefineSectionResponse{
		SectionID:  r.SectionID,
		OldContent: r.OldContent,
		NewContent: r.NewContent,
		RevisionID: r.RevisionID,
		Message:    r.Message,
	}
}

// SuggestOutlineRequest 大纲建议请求
type SuggestOutlineRequest struct {
	Topic    string `json:"topic" binding:"required"`
	DocType  string `json:"doc_type" binding:"required"`
	NumItems *int   `json:"num_items"`
}

// Count 请求条数，未传时为 0
func (r *SuggestOutlineRequest) Count() int {
	if r.NumItems == nil {
		return 0
	}
	return *r.NumItems
}

// SuggestOutlineResponse 大纲建议响应
type SuggestOutlineResponse struct {
	Items   []string `json:"items"`
	Message string   `json:"message"`
}
