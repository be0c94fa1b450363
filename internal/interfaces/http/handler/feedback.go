package handler

import (
	"github.com/gin-gonic/gin"

	"docforge-ai-api/internal/application/authoring"
	"docforge-ai-api/internal/interfaces/http/dto"
	"docforge-ai-api/internal/interfaces/http/middleware"
)

// FeedbackHandler 反馈与评论处理器
type FeedbackHandler struct {
	workspace *authoring.Workspace
}

// NewFeedbackHandler 创建反馈处理器
func NewFeedbackHandler(workspace *authoring.Workspace) *FeedbackHandler {
	return &FeedbackHandler{workspace: workspace}
}

// AddFeedback 点赞/点踩
// @Summary 提交章节反馈
// @Tags Feedback
// @Accept json
// @Produce json
// @Param body body dto.FeedbackRequest true "反馈"
// @Success 201 {object} dto.Response[dto.FeedbackResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/feedback [post]
func (h *FeedbackHandler) AddFeedback(c *gin.Context) {
	var req dto.FeedbackRequest
	if !bindJSON(c, &req) {
		return
	}

	fb, err := h.workspace.AddFeedback(c.Request.Context(), middleware.GetUserIDFromGin(c), req.ProjectID, req.SectionID, *req.Liked)
	if err != nil {
		respondError(c, err)
		return
	}
	dto.Created(c, dto.ToFeedbackResponse(fb))
}

// AddComment 评论
// @Summary 提交章节评论
// @Tags Feedback
// @Accept json
// @Produce json
// @Param body body dto.CommentRequest true "评论"
// @Success 201 {object} dto.Response[dto.CommentResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/comments [post]
func (h *FeedbackHandler) AddComment(c *gin.Context) {
	var req dto.CommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.workspace.AddComment(c.Request.Context(), middleware.GetUserIDFromGin(c), req.ProjectID, req.SectionID, req.CommentText)
	if err != nil {
		respondError(c, err)
		return
	}
	dto.Created(c, dto.ToCommentResponse(comment))
}
