package authoring

import (
	"context"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"docforge-ai-api/internal/config"
	"docforge-ai-api/internal/domain/entity"
	"docforge-ai-api/internal/domain/repository"
	apperrors "docforge-ai-api/pkg/errors"
	"docforge-ai-api/pkg/logger"
	"docforge-ai-api/pkg/utils"
)

const (
	minPasswordLength = 6
	maxPasswordLength = 72 // bcrypt 上限

	// TokenTypeBearer 登录返回的令牌类型
	TokenTypeBearer = "bearer"
)

// Credentials 注册/登录参数
type Credentials struct {
	Email    string
	Password string
}

// Token 登录结果
type Token struct {
	AccessToken string
	TokenType   string
	ExpiresIn   int
}

// Accounts 注册、登录与当前用户查询
type Accounts struct {
	users repository.UserRepository
	jwt   *utils.JWTManager
	ttl   time.Duration
}

// NewAccounts 创建账户用例
func NewAccounts(users repository.UserRepository, jwtManager *utils.JWTManager, cfg *config.JWTConfig) *Accounts {
	ttl := cfg.Expiration
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Accounts{users: users, jwt: jwtManager, ttl: ttl}
}

// Register 注册新用户，邮箱已存在时返回 Conflict
func (a *Accounts) Register(ctx context.Context, in Credentials) (*entity.User, error) {
	in.Email = entity.NormalizeEmail(in.Email)
	if err := validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.Required, is.EmailFormat),
		validation.Field(&in.Password, validation.Required, validation.Length(minPasswordLength, maxPasswordLength)),
	); err != nil {
		return nil, invalidParam(err)
	}

	exists, err := a.users.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, storeError(err, "failed to check email")
	}
	if exists {
		return nil, apperrors.ErrConflict.WithDetail("Email already registered")
	}

	user := entity.NewUser(in.Email)
	if err := user.SetPassword(in.Password); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalError, "failed to hash password")
	}
	if err := a.users.Create(ctx, user); err != nil {
		return nil, storeError(err, "failed to create user")
	}

	logger.Info(ctx, "user registered", "user_id", user.ID)
	return user, nil
}

// Login 校验邮箱密码并签发访问令牌
func (a *Accounts) Login(ctx context.Context, in Credentials) (*Token, error) {
	email := entity.NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, apperrors.ErrInvalidCredentials
	}

	user, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, storeError(err, "failed to load user")
	}
	if user == nil || !user.CheckPassword(in.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := a.jwt.GenerateAccessToken(user.ID, user.Email, a.ttl)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalError, "failed to generate token")
	}
	return &Token{
		AccessToken: token,
		TokenType:   TokenTypeBearer,
		ExpiresIn:   int(a.ttl.Seconds()),
	}, nil
}

// Me 返回当前用户
func (a *Accounts) Me(ctx context.Context, userID string) (*entity.User, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperrors.ErrUnauthorized
	}
	user, err := a.users.GetByID(ctx, userID)
	if err != nil {
		return nil, storeError(err, "failed to load user")
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}
