package handler

import (
	"github.com/gin-gonic/gin"

	"docforge-ai-api/internal/application/authoring"
	"docforge-ai-api/internal/interfaces/http/dto"
	"docforge-ai-api/internal/interfaces/http/middleware"
)

// GenerationHandler 内容生成、润色与大纲建议处理器
type GenerationHandler struct {
	service *authoring.Service
}

// NewGenerationHandler 创建生成处理器
func NewGenerationHandler(service *authoring.Service) *GenerationHandler {
	return &GenerationHandler{service: service}
}

// GenerateSection 生成章节内容
// @Summary 生成章节内容
// @Description 基于项目主题与相邻章节调用 LLM 生成内容，覆盖已有内容
// @Tags AI
// @Accept json
// @Produce json
// @Param body body dto.GenerateSectionRequest true "目标章节"
// @Success 200 {object} dto.Response[dto.GenerateSectionResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/v1/generate/section [post]
func (h *GenerationHandler) GenerateSection(c *gin.Context) {
	var req dto.GenerateSectionRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.service.GenerateSection(c.Request.Context(), middleware.GetUserIDFromGin(c), req.ProjectID, req.SectionID)
	if err != nil {
		respondError(c, err)
		return
	}
	dto.Success(c, dto.ToGenerateSectionResponse(res))
}

// RefineSection 润色章节内容
// @Summary 润色章节内容
// @Description 按指令改写已有内容并记录润色历史
// @Tags AI
// @Accept json
// @Produce json
// @Param body body dto.RefineSectionRequest true "润色指令"
// @Success 200 {object} dto.Response[dto.RefineSectionResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/v1/refine/section [post]
func (h *GenerationHandler) RefineSection(c *gin.Context) {
	var req dto.RefineSectionRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.service.RefineSection(c.Request.Context(), middleware.GetUserIDFromGin(c), req.ProjectID, req.SectionID, req.Prompt)
	if err != nil {
		respondError(c, err)
		return
	}
	dto.Success(c, dto.ToRefineSectionResponse(res))
}

// SuggestOutline 大纲建议
// @Summary 大纲建议
// @Description docx 返回章节标题，pptx 返回指定数量的幻灯片标题
// @Tags AI
// @Accept json
// @Produce json
// @Param body body dto.SuggestOutlineRequest true "主题"
// @Success 200 {object} dto.Response[dto.SuggestOutlineResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/ai/suggest-outline [post]
func (h *GenerationHandler) SuggestOutline(c *gin.Context) {
	var req dto.SuggestOutlineRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.service.SuggestOutline(c.Request.Context(), req.Topic, req.DocType, req.Count())
	if err != nil {
		respondError(c, err)
		return
	}
	dto.Success(c, &dto.SuggestOutlineResponse{Items: res.Items, Message: res.Message})
}
