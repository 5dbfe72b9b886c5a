package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/James3014/skidiy-learn-sub001/internal/dto"
	"github.com/James3014/skidiy-learn-sub001/internal/service"
	apperrors "github.com/James3014/skidiy-learn-sub001/pkg/errors"
	"github.com/James3014/skidiy-learn-sub001/pkg/response"
)

// IdentityFormHandler 身份表单 HTTP 处理器
type IdentityFormHandler struct {
	formSvc service.IdentityFormService
}

// NewIdentityFormHandler 创建 IdentityFormHandler
func NewIdentityFormHandler(formSvc service.IdentityFormService) *IdentityFormHandler {
	return &IdentityFormHandler{formSvc: formSvc}
}

// GetForm 查询座位身份表单
// GET /api/v1/seats/:id/identity-form
// 座位存在但尚未领取时返回 data: null（不算错误）
func (h *IdentityFormHandler) GetForm(c *gin.Context) {
	seatID := c.Param("id")
	if seatID == "" {
		response.BadRequest(c, 10001, "座位ID不能为空")
		return
	}

	form, err := h.formSvc.GetForm(c.Request.Context(), seatID)
	if err != nil {
		h.handleFormError(c, err)
		return
	}
	if form == nil {
		response.OKNullable(c, nil)
		return
	}

	response.OK(c, form)
}

// UpdateForm 部分更新并提交身份表单
// PATCH /api/v1/seats/:id/identity-form
func (h *IdentityFormHandler) UpdateForm(c *gin.Context) {
	seatID := c.Param("id")
	if seatID == "" {
		response.BadRequest(c, 10001, "座位ID不能为空")
		return
	}

	var req dto.UpdateIdentityFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	// 表单更新允许匿名（领取后凭座位链接补充资料）
	callerID := c.GetString("user_id")

	form, err := h.formSvc.SubmitForm(c.Request.Context(), seatID, &req, callerID)
	if err != nil {
		h.handleFormError(c, err)
		return
	}

	response.OK(c, form)
}

// handleFormError 统一处理身份表单业务错误
func (h *IdentityFormHandler) handleFormError(c *gin.Context, err error) {
	var verr *service.ValidationError

	switch {
	case errors.As(err, &verr):
		response.ErrorWithDetails(c, 400, 10001, "参数校验失败", verr.Fields)
	case errors.Is(err, service.ErrSeatNotFound):
		response.NotFound(c, 12002, "座位不存在")
	case errors.Is(err, service.ErrSeatNotClaimed):
		response.Conflict(c, 12004, "座位尚未领取")
	case errors.Is(err, service.ErrFormLocked):
		response.Locked(c, 15001, "身份表单已确认，禁止修改")
	case errors.Is(err, apperrors.ErrOptimisticLock):
		response.Conflict(c, 15002, "表单已被其他请求修改，请重新获取后重试")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/identity_form_handler.go
