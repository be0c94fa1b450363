// Package middleware 提供 HTTP 中间件
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "docforge-ai-api/pkg/errors"
	"docforge-ai-api/pkg/logger"
	"docforge-ai-api/pkg/utils"
)

// ContextKeyUserID Gin Context 中的用户 ID 键
const ContextKeyUserID = "user_id"

// Auth 认证中间件，要求 Bearer 访问令牌
func Auth(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, apperrors.CodeTokenMissing, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			abortUnauthorized(c, apperrors.CodeTokenInvalid, "invalid authorization format")
			return
		}

		claims, err := jwtManager.ParseToken(parts[1])
		if err != nil {
			if errors.Is(err, utils.ErrExpiredToken) {
				abortUnauthorized(c, apperrors.CodeTokenExpired, "token expired")
				return
			}
			abortUnauthorized(c, apperrors.CodeTokenInvalid, "invalid token")
			return
		}

		if claims.Type != utils.TokenTypeAccess || claims.UserID == "" {
			abortUnauthorized(c, apperrors.CodeTokenInvalid, "invalid token type")
			return
		}

		c.Set(ContextKeyUserID, claims.UserID)
		ctx := logger.WithContext(c.Request.Context(), logger.UserIDKey, claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetUserIDFromGin 从 Gin Context 中获取用户 ID
func GetUserIDFromGin(c *gin.Context) string {
	return c.GetString(ContextKeyUserID)
}

// abortUnauthorized 终止请求并返回 401
func abortUnauthorized(c *gin.Context, code apperrors.ErrorCode, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"code":     http.StatusUnauthorized,
		"message":  msg,
		"error":    gin.H{"error_code": code},
		"trace_id": c.GetString("trace_id"),
	})
}
