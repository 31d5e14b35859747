package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"punchclock/backend/config"
	"punchclock/backend/internal/dto"
	"punchclock/backend/internal/model"
	"punchclock/backend/internal/repository"
	"punchclock/backend/pkg/jwt"
)

func setupTestAuthService() (AuthService, *repository.Repository) {
	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret-key-for-unit-tests",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 168 * time.Hour,
		},
	}
	repo := newMockRepository()
	jwtMgr := jwt.NewManager(&cfg.Auth)
	// 登录路径不触达 Redis，黑名单相关流程由集成测试覆盖
	svc := NewAuthService(cfg, repo, jwtMgr, nil, zap.NewNop())
	return svc, repo
}

func createTestUser(t *testing.T, repo *repository.Repository, cpf, password, status string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("生成密码哈希失败: %v", err)
	}
	user := &model.User{
		Name:         "测试用户",
		CPF:          cpf,
		Email:        "user@example.com",
		PasswordHash: string(hash),
		Role:         model.RoleColaborador,
		Status:       status,
	}
	if err := repo.User.Create(context.Background(), user); err != nil {
		t.Fatalf("预置用户失败: %v", err)
	}
	return user
}

func TestLogin_Success(t *testing.T) {
	svc, repo := setupTestAuthService()
	createTestUser(t, repo, "52998224725", "senha12345", model.UserStatusActive)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		CPF:      "52998224725",
		Password: "senha12345",
	})
	if err != nil {
		t.Fatalf("Login 应成功，但返回错误: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("登录成功应返回 Token 对")
	}
	if resp.ExpiresIn != int((15 * time.Minute).Seconds()) {
		t.Errorf("期望有效期 900 秒，实际: %d", resp.ExpiresIn)
	}
	if resp.User.CPF != "52998224725" {
		t.Errorf("响应应携带用户信息，实际 CPF: %s", resp.User.CPF)
	}
}

func TestLogin_FormattedCPF(t *testing.T) {
	svc, repo := setupTestAuthService()
	createTestUser(t, repo, "52998224725", "senha12345", model.UserStatusActive)

	// 带格式符的 CPF 净化后等价
	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		CPF:      "529.982.247-25",
		Password: "senha12345",
	})
	if err != nil {
		t.Errorf("带格式符的 CPF 应登录成功，但返回错误: %v", err)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, repo := setupTestAuthService()
	createTestUser(t, repo, "52998224725", "senha12345", model.UserStatusActive)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		CPF:      "52998224725",
		Password: "errada",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestLogin_UserNotFound(t *testing.T) {
	svc, _ := setupTestAuthService()

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		CPF:      "00000000000",
		Password: "qualquer",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestLogin_PendingUser(t *testing.T) {
	svc, repo := setupTestAuthService()
	createTestUser(t, repo, "52998224725", "senha12345", model.UserStatusPending)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		CPF:      "52998224725",
		Password: "senha12345",
	})
	if !errors.Is(err, ErrUserPending) {
		t.Errorf("期望 ErrUserPending，实际: %v", err)
	}
}

func TestLogin_InactiveUser(t *testing.T) {
	svc, repo := setupTestAuthService()
	createTestUser(t, repo, "52998224725", "senha12345", model.UserStatusInactive)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		CPF:      "52998224725",
		Password: "senha12345",
	})
	if !errors.Is(err, ErrUserInactive) {
		t.Errorf("期望 ErrUserInactive，实际: %v", err)
	}
}

func TestRefreshToken_GarbageToken(t *testing.T) {
	svc, _ := setupTestAuthService()

	_, err := svc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{
		RefreshToken: "not-a-jwt",
	})
	if !errors.Is(err, ErrRefreshInvalid) {
		t.Errorf("期望 ErrRefreshInvalid，实际: %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	svc, repo := setupTestAuthService()
	user := createTestUser(t, repo, "52998224725", "senha12345", model.UserStatusActive)
	ctx := context.Background()

	// 原密码不匹配
	err := svc.ChangePassword(ctx, user.UserID, &dto.ChangePasswordRequest{
		OldPassword: "errada",
		NewPassword: "novasenha123",
	})
	if !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("期望 ErrPasswordMismatch，实际: %v", err)
	}

	// 修改成功后旧密码失效
	if err := svc.ChangePassword(ctx, user.UserID, &dto.ChangePasswordRequest{
		OldPassword: "senha12345",
		NewPassword: "novasenha123",
	}); err != nil {
		t.Fatalf("ChangePassword 应成功，但返回错误: %v", err)
	}
	if _, err := svc.Login(ctx, &dto.LoginRequest{CPF: "52998224725", Password: "senha12345"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("旧密码应失效，实际: %v", err)
	}
	if _, err := svc.Login(ctx, &dto.LoginRequest{CPF: "52998224725", Password: "novasenha123"}); err != nil {
		t.Errorf("新密码应可登录，但返回错误: %v", err)
	}
}

func TestGetCurrentUser(t *testing.T) {
	svc, repo := setupTestAuthService()
	user := createTestUser(t, repo, "52998224725", "senha12345", model.UserStatusActive)

	resp, err := svc.GetCurrentUser(context.Background(), user.UserID)
	if err != nil {
		t.Fatalf("GetCurrentUser 应成功，但返回错误: %v", err)
	}
	if resp.ID != user.UserID {
		t.Errorf("期望用户 %s，实际: %s", user.UserID, resp.ID)
	}

	if _, err := svc.GetCurrentUser(context.Background(), "missing"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}
