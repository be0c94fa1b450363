package dto

import (
	"time"

	"docforge-ai-api/internal/application/authoring"
	"docforge-ai-api/internal/domain/entity"
)

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ToCredentials 转换为用例参数
func (r *RegisterRequest) ToCredentials() authoring.Credentials {
	return authoring.Credentials{Email: r.Email, Password: r.Password}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ToCredentials 转换为用例参数
func (r *LoginRequest) ToCredentials() authoring.Credentials {
	return authoring.Credentials{Email: r.Email, Password: r.Password}
}

// TokenResponse 登录响应
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"` // 秒
}

// ToTokenResponse 转换登录结果
func ToTokenResponse(t *authoring.Token) *TokenResponse {
	return &TokenResponse{
		AccessToken: t.AccessToken,
		TokenType:   t.TokenType,
		ExpiresIn:   t.ExpiresIn,
	}
}

// UserResponse 用户信息
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// ToUserResponse 将领域实体转换为 DTO
func ToUserResponse(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
