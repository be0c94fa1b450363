package dto

import (
	"time"

	"docforge-ai-api/internal/application/authoring"
	"docforge-ai-api/internal/domain/entity"
)

// FeedbackRequest 反馈请求
type FeedbackRequest struct {
	ProjectID string `json:"project_id" binding:"required"`
	SectionID string `json:"section_id" binding:"required"`
	Liked     *bool  `json:"liked" binding:"required"`
}

// FeedbackResponse 反馈响应
type FeedbackResponse struct {
	ID        string    `json:"id"`
	SectionID string    `json:"section_id"`
	ProjectID string    `json:"project_id"`
	UserID    string    `json:"user_id"`
	Liked     bool      `json:"liked"`
	CreatedAt time.Time `json:"created_at"`
}

// ToFeedbackResponse 将领域实体转换为 DTO
func ToFeedbackResponse(f *entity.Feedback) *FeedbackResponse {
	return &FeedbackResponse{
		ID:        f.ID,
		SectionID: f.SectionID,
		ProjectID: f.ProjectID,
		UserID:    f.UserID,
		Liked:     f.Liked,
		CreatedAt: f.CreatedAt,
	}
}

// FeedbackSummaryResponse 章节反馈统计
type FeedbackSummaryResponse struct {
	Liked    int64 `json:"liked"`
	Disliked int64 `json:"disliked"`
	Total    int64 `json:"total"`
}

// ToFeedbackSummaryResponse 转换反馈统计
func ToFeedbackSummaryResponse(s *authoring.FeedbackSummary) *FeedbackSummaryResponse {
	return &FeedbackSummaryResponse{Liked: s.Liked, Disliked: s.Disliked, Total: s.Total}
}

// CommentRequest 评论请求
type CommentRequest struct {
	ProjectID   string `json:"project_id" binding:"required"`
	SectionID   string `json:"section_id" binding:"required"`
	CommentText string `json:"comment_text" binding:"required"`
}

// CommentResponse 评论响应
type CommentResponse struct {
	ID          string    `json:"id"`
	SectionID   string    `json:"section_id"`
	ProjectID   string    `json:"project_id"`
	UserID      string    `json:"user_id"`
	CommentText string    `json:"comment_text"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToCommentResponse 将领域实体转换为 DTO
func ToCommentResponse(c *entity.Comment) *CommentResponse {
	return &CommentResponse{
		ID:          c.ID,
		SectionID:   c.SectionID,
		ProjectID:   c.ProjectID,
		UserID:      c.UserID,
		CommentText: c.CommentText,
		CreatedAt:   c.CreatedAt,
	}
}

// ToCommentListResponse 转换评论列表
func ToCommentListResponse(comments []*entity.Comment) []*CommentResponse {
	out := make([]*CommentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, ToCommentResponse(c))
	}
	return out
}
