package handler

import (
	"github.com/gin-gonic/gin"

	"docforge-ai-api/internal/application/authoring"
	"docforge-ai-api/internal/domain/repository"
	"docforge-ai-api/internal/interfaces/http/dto"
	"docforge-ai-api/internal/interfaces/http/middleware"
)

// ProjectHandler 项目处理器
type ProjectHandler struct {
	workspace *authoring.Workspace
}

// NewProjectHandler 创建项目处理器
func NewProjectHandler(workspace *authoring.Workspace) *ProjectHandler {
	return &ProjectHandler{workspace: workspace}
}

// ListProjects 获取项目列表
// @Summary 获取项目列表
// @Description 获取当前用户的项目，按创建时间倒序
// @Tags Projects
// @Produce json
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页条数" default(20)
// @Success 200 {object} dto.Response[[]dto.ProjectResponse]
// @Router /api/v1/projects [get]
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	pageReq := dto.BindPage(c)

	result, err := h.workspace.ListProjects(c.Request.Context(), middleware.GetUserIDFromGin(c),
		repository.NewPagination(pageReq.Page, pageReq.PageSize))
	if err != nil {
		respondError(c, err)
		return
	}

	meta := dto.NewPageMeta(result.Page, result.PageSize, result.Total, result.TotalPages)
	dto.SuccessWithPage(c, dto.ToProjectListResponse(result.Items), meta)
}

// CreateProject 创建项目
// @Summary 创建项目
// @Tags Projects
// @Accept json
// @Produce json
// @Param body body dto.CreateProjectRequest true "项目信息"
// @Success 201 {object} dto.Response[dto.ProjectResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req dto.CreateProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	project, err := h.workspace.CreateProject(c.Request.Context(), middleware.GetUserIDFromGin(c), req.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	dto.Created(c, dto.ToProjectResponse(project))
}

// GetProject 获取项目详情
// @Summary 获取项目详情
// @Description 返回项目及按 order_index 排序的章节
// @Tags Projects
// @Produce json
// @Param pid path string true "项目 ID"
// @Success 200 {object} dto.Response[dto.ProjectResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/projects/{pid} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	detail, err := h.workspace.GetProject(c.Request.Context(), middleware.GetUserIDFromGin(c), dto.BindProjectID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	dto.Success(c, dto.ToProjectDetailResponse(detail))
}

// UpdateProject 更新项目
// @Summary 更新项目
// @Tags Projects
// @Accept json
// @Produce json
// @Param pid path string true "项目 ID"
// @Param body body dto.UpdateProjectRequest true "更新内容"
// @Success 200 {object} dto.Response[dto.ProjectResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/projects/{pid} [put]
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	var req dto.UpdateProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	project, err := h.workspace.UpdateProject(c.Request.Context(), middleware.GetUserIDFromGin(c), dto.BindProjectID(c), req.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	dto.Success(c, dto.ToProjectResponse(project))
}

// DeleteProject 删除项目
// @Summary 删除项目
// @Description 级联删除章节、润色记录、反馈与评论
// @Tags Projects
// @Param pid path string true "项目 ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/projects/{pid} [delete]
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	if err := h.workspace.DeleteProject(c.Request.Context(), middleware.GetUserIDFromGin(c), dto.BindProjectID(c)); err != nil {
		respondError(c, err)
		return
	}
	dto.NoContent(c)
}
