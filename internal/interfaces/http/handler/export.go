package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"docforge-ai-api/internal/application/authoring"
	"docforge-ai-api/internal/interfaces/http/dto"
	"docforge-ai-api/internal/interfaces/http/middleware"
)

// ExportHandler 导出处理器
type ExportHandler struct {
	exporter *authoring.Exporter
}

// NewExportHandler 创建导出处理器
func NewExportHandler(exporter *authoring.Exporter) *ExportHandler {
	return &ExportHandler{exporter: exporter}
}

// ExportProject 导出项目
// @Summary 导出项目为 docx/pptx
// @Tags Export
// @Produce application/vnd.openxmlformats-officedocument.wordprocessingml.document
// @Produce application/vnd.openxmlformats-officedocument.presentationml.presentation
// @Param pid path string true "项目 ID"
// @Param type query string true "导出类型 docx|pptx"
// @Success 200 {file} binary
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/export/project/{pid} [get]
func (h *ExportHandler) ExportProject(c *gin.Context) {
	file, err := h.exporter.ExportProject(c.Request.Context(), middleware.GetUserIDFromGin(c), dto.BindProjectID(c), c.Query("type"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", strconv.Quote(file.Name)))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
