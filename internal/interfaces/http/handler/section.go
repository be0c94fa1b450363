package handler

import (
	"github.com/gin-gonic/gin"

	"docforge-ai-api/internal/application/authoring"
	"docforge-ai-api/internal/interfaces/http/dto"
	"docforge-ai-api/internal/interfaces/http/middleware"
)

// SectionHandler 章节处理器
type SectionHandler struct {
	workspace *authoring.Workspace
}

// NewSectionHandler 创建章节处理器
func NewSectionHandler(workspace *authoring.Workspace) *SectionHandler {
	return &SectionHandler{workspace: workspace}
}

// CreateSection 创建章节
// @Summary 创建章节
// @Description 章节类型由项目类型决定
// @Tags Sections
// @Accept json
// @Produce json
// @Param pid path string true "项目 ID"
// @Param body body dto.CreateSectionRequest true "章节信息"
// @Success 201 {object} dto.Response[dto.SectionResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/projects/{pid}/sections [post]
func (h *SectionHandler) CreateSection(c *gin.Context) {
	var req dto.CreateSectionRequest
	if !bindJSON(c, &req) {
		return
	}

	section, err := h.workspace.CreateSection(c.Request.Context(), middleware.GetUserIDFromGin(c), dto.BindProjectID(c), req.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	dto.Created(c, dto.ToSectionResponse(section))
}

// UpdateSection 更新章节
// @Summary 更新章节
// @Description 手动编辑内容会递增版本号，不生成润色记录
// @Tags Sections
// @Accept json
// @Produce json
// @Param pid path string true "项目 ID"
// @Param sid path string true "章节 ID"
// @Param body body dto.UpdateSectionRequest true "更新内容"
// @Success 200 {object} dto.Response[dto.SectionResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/v1/projects/{pid}/sections/{sid} [put]
func (h *SectionHandler) UpdateSection(c *gin.Context) {
	var req dto.UpdateSectionRequest
	if !bindJSON(c, &req) {
		return
	}

	section, err := h.workspace.UpdateSection(c.Request.Context(), middleware.GetUserIDFromGin(c),
		dto.BindProjectID(c), dto.BindSectionID(c), req.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	dto.Success(c, dto.ToSectionResponse(section))
}

// DeleteSection 删除章节
// @Summary 删除章节
// @Tags Sections
// @Param pid path string true "项目 ID"
// @Param sid path string true "章节 ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/projects/{pid}/sections/{sid} [delete]
func (h *SectionHandler) DeleteSection(c *gin.Context) {
	err := h.workspace.DeleteSection(c.Request.Context(), middleware.GetUserIDFromGin(c), dto.BindProjectID(c), dto.BindSectionID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	dto.NoContent(c)
}

// ListRevisions 润色记录
// @Summary 获取章节润色记录
// @Tags Sections
// @Produce json
// @Param pid path string true "项目 ID"
// @Param sid path string true "章节 ID"
// @Success 200 {object} dto.Response[[]dto.RevisionResponse]
// @Router /api/v1/projects/{pid}/sections/{sid}/revisions [get]
func (h *SectionHandler) ListRevisions(c *gin.Context) {
	revisions, err := h.workspace.ListRevisions(c.Request.Context(), middleware.GetUserIDFromGin(c), dto.BindProjectID(c), dto.BindSectionID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	dto.Success(c, dto.ToRevisionListResponse(revisions))
}

// ListComments 章节评论
// @Summary 获取章节评论
// @Tags Sections
// @Produce json
// @Param pid path string true "项目 ID"
// @Param sid path string true "章节 ID"
// @Success 200 {object} dto.Response[[]dto.CommentResponse]
// @Router /api/v1/projects/{pid}/sections/{sid}/comments [get]
func (h *SectionHandler) ListComments(c *gin.Context) {
	comments, err := h.workspace.ListComments(c.Request.Context(), middleware.GetUserIDFromGin(c), dto.BindProjectID(c), dto.BindSectionID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	dto.Success(c, dto.ToCommentListResponse(comments))
}

// FeedbackSummary 章节反馈统计
// @Summary 获取章节反馈统计
// @Tags Sections
// @Produce json
// @Param pid path string true "项目 ID"
// @Param sid path string true "章节 ID"
// @Success 200 {object} dto.Response[dto.FeedbackSummaryResponse]
// @Router /api/v1/projects/{pid}/sections/{sid}/feedback [get]
func (h *SectionHandler) FeedbackSummary(c *gin.Context) {
	summary, err := h.workspace.SectionFeedback(c.Request.Context(), middleware.GetUserIDFromGin(c), dto.BindProjectID(c), dto.BindSectionID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	dto.Success(c, dto.ToFeedbackSummaryResponse(summary))
}
