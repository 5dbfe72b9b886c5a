package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/James3014/skidiy-learn-sub001/config"
	"github.com/James3014/skidiy-learn-sub001/internal/dto"
	"github.com/James3014/skidiy-learn-sub001/internal/model"
	"github.com/James3014/skidiy-learn-sub001/pkg/jwt"
)

func newAuthServiceForTest(t *testing.T) (AuthService, *mockRepos) {
	t.Helper()
	repo, mocks := newMockRepos()
	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:              "test-secret-0123456789abcdef",
			AccessTokenTTL:         15 * time.Minute,
			RefreshTokenTTLDefault: 168 * time.Hour,
		},
	}
	jwtMgr := jwt.NewManager(&cfg.Auth)
	// Redis 为 nil：黑名单走静默降级路径
	svc := NewAuthService(cfg, repo, jwtMgr, nil, zap.NewNop())
	return svc, mocks
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthServiceForTest(t)

	reg, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "张教练",
		Phone:    "13800138000",
		Email:    "coach@example.com",
		Password: "password123",
		Role:     model.RoleInstructor,
	})
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	if reg.AccessToken == "" || reg.RefreshToken == "" {
		t.Error("注册应返回 Access/Refresh Token")
	}
	if reg.User.Role != model.RoleInstructor {
		t.Errorf("role = %s, 期望 instructor", reg.User.Role)
	}

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Phone:    "13800138000",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}
	if login.User.ID != reg.User.ID {
		t.Error("登录返回的用户应与注册一致")
	}
}

func TestRegisterDuplicatePhone(t *testing.T) {
	svc, _ := newAuthServiceForTest(t)

	req := &dto.RegisterRequest{
		Name: "张教练", Phone: "13800138000", Password: "password123", Role: model.RoleInstructor,
	}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("首次注册失败: %v", err)
	}
	if _, err := svc.Register(context.Background(), req); !errors.Is(err, ErrPhoneExists) {
		t.Errorf("err = %v, 期望 ErrPhoneExists", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthServiceForTest(t)

	if _, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name: "张教练", Phone: "13800138000", Password: "password123", Role: model.RoleInstructor,
	}); err != nil {
		t.Fatalf("注册失败: %v", err)
	}

	if _, err := svc.Login(context.Background(), &dto.LoginRequest{
		Phone: "13800138000", Password: "wrong-password",
	}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("err = %v, 期望 ErrInvalidCredentials", err)
	}

	// 未注册手机号返回同一错误，不泄露账号是否存在
	if _, err := svc.Login(context.Background(), &dto.LoginRequest{
		Phone: "13900000000", Password: "password123",
	}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("err = %v, 期望 ErrInvalidCredentials", err)
	}
}

func TestGetCurrentUser(t *testing.T) {
	svc, _ := newAuthServiceForTest(t)

	reg, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name: "张教练", Phone: "13800138000", Password: "password123", Role: model.RoleInstructor,
	})
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}

	user, err := svc.GetCurrentUser(context.Background(), reg.User.ID)
	if err != nil {
		t.Fatalf("查询当前用户失败: %v", err)
	}
	if user.Phone != "13800138000" {
		t.Errorf("phone = %s, 期望 13800138000", user.Phone)
	}

	if _, err := svc.GetCurrentUser(context.Background(), "no-such-user"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("err = %v, 期望 ErrUserNotFound", err)
	}
}

func TestLogoutWithoutRedis(t *testing.T) {
	svc, _ := newAuthServiceForTest(t)

	// Redis 不可用时登出静默成功，Token 自然过期
	if err := svc.Logout(context.Background(), "some-jti", time.Now().Add(time.Hour)); err != nil {
		t.Errorf("无 Redis 登出应降级成功: %v", err)
	}
}
