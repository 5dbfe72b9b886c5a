package dto

// ── 课程分析模块 DTO ──

// CreateAnalysisRequest 创建课程分析请求
type CreateAnalysisRequest struct {
	SeatID  string `json:"seat_id" binding:"required,uuid"`
	Content string `json:"content" binding:"required,min=1,max=5000"`
	Rating  int    `json:"rating"  binding:"required,min=1,max=5"`
}

// UpdateAnalysisRequest 更新课程分析请求
type UpdateAnalysisRequest struct {
	Content *string `json:"content" binding:"omitempty,min=1,max=5000"`
	Rating  *int    `json:"rating"  binding:"omitempty,min=1,max=5"`
}

// AnalysisResponse 课程分析响应
type AnalysisResponse struct {
	ID        string `json:"id"`
	SeatID    string `json:"seat_id"`
	CoachID   string `json:"coach_id"`
	Content   string `json:"content"`
	Rating    int    `json:"rating"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// ShareAnalysisRequest 分享课程分析请求
type ShareAnalysisRequest struct {
	SharedWith string `json:"shared_with" binding:"required,uuid"`
}

// ShareResponse 分享记录响应
type ShareResponse struct {
	ID         string `json:"id"`
	AnalysisID string `json:"analysis_id"`
	SharedWith string `json:"shared_with"`
	CreatedAt  string `json:"created_at"`
}
