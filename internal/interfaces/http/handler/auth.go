package handler

import (
	"github.com/gin-gonic/gin"

	"docforge-ai-api/internal/application/authoring"
	"docforge-ai-api/internal/interfaces/http/dto"
	"docforge-ai-api/internal/interfaces/http/middleware"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	accounts *authoring.Accounts
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(accounts *authoring.Accounts) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

// Register 注册
// @Summary 用户注册
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.RegisterRequest true "注册信息"
// @Success 201 {object} dto.Response[dto.UserResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.accounts.Register(c.Request.Context(), req.ToCredentials())
	if err != nil {
		respondError(c, err)
		return
	}
	dto.Created(c, dto.ToUserResponse(user))
}

// Login 登录
// @Summary 用户登录
// @Description 验证邮箱密码并返回访问令牌
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "登录信息"
// @Success 200 {object} dto.Response[dto.TokenResponse]
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	token, err := h.accounts.Login(c.Request.Context(), req.ToCredentials())
	if err != nil {
		respondError(c, err)
		return
	}
	dto.Success(c, dto.ToTokenResponse(token))
}

// Me 当前用户
// @Summary 获取当前用户
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.Response[dto.UserResponse]
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/v1/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.accounts.Me(c.Request.Context(), middleware.GetUserIDFromGin(c))
	if err != nil {
		respondError(c, err)
		return
	}
	dto.Success(c, dto.ToUserResponse(user))
}
