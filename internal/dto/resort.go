package dto

// ── 雪场模块 DTO ──

// CreateResortRequest 创建雪场请求
type CreateResortRequest struct {
	Name        string `json:"name"        binding:"required,min=2,max=100"`
	Region      string `json:"region"      binding:"omitempty,max=100"`
	Description string `json:"description" binding:"omitempty,max=500"`
}

// UpdateResortRequest 更新雪场请求
type UpdateResortRequest struct {
	Name        *string `json:"name"        binding:"omitempty,min=2,max=100"`
	Region      *string `json:"region"      binding:"omitempty,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	IsActive    *bool   `json:"is_active"`
}

// ResortListRequest 雪场列表查询参数
type ResortListRequest struct {
	IncludeInactive bool `form:"include_inactive"`
}

// ResortResponse 雪场响应
type ResortResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Region      string `json:"region,omitempty"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"is_active"`
	LessonCount int64  `json:"lesson_count"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}
