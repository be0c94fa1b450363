// Package handler 提供 HTTP 请求处理器
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docforge-ai-api/internal/interfaces/http/dto"
	apperrors "docforge-ai-api/pkg/errors"
	"docforge-ai-api/pkg/logger"
)

// respondError 将用例错误映射为统一错误响应
func respondError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	if !apperrors.IsAppError(err) {
		logger.Error(ctx, "unhandled error", err, "path", c.FullPath())
		dto.InternalError(c, "internal server error")
		return
	}

	appErr := apperrors.AsAppError(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		logger.Error(ctx, appErr.Message, err, "error_code", string(appErr.Code), "path", c.FullPath())
	}

	dto.ErrorWithDetail(c, appErr.HTTPStatus, appErr.Message, &dto.ErrorDetail{
		ErrorCode: string(appErr.Code),
		Details:   appErr.Detail,
	})
}

// bindJSON 绑定请求体，失败时直接返回 400
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return false
	}
	return true
}
