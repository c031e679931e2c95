package http

import "taleweaver/internal/model"

// ErrorResponse 错误响应（所有API共用）
type ErrorResponse struct {
	Code    int                `json:"code"`             // 错误码（5位，前三位对应 HTTP 状态）
	Message string             `json:"message"`          // 错误消息
	Detail  string             `json:"detail,omitempty"` // 错误详情（可选）
	Fields  []model.FieldError `json:"fields,omitempty"` // 字段级校验错误（可选）
}

// 错误码
const (
	CodeInvalidRequest   = 40001
	CodeNotFound         = 40401
	CodeInternal         = 50000
	CodeStorage          = 50001
	CodeGenerationFailed = 50002
	CodeUnavailable      = 50301
)

// NewErrorResponse 创建错误响应
func NewErrorResponse(code int, message string, detail ...string) *ErrorResponse {
	resp := &ErrorResponse{
		Code:    code,
		Message: message,
	}
	if len(detail) > 0 && detail[0] != "" {
		resp.Detail = detail[0]
	}
	return resp
}

// NewValidationResponse 由字段错误创建 400 响应体
func NewValidationResponse(fields []model.FieldError) *ErrorResponse {
	return &ErrorResponse{
		Code:    CodeInvalidRequest,
		Message: "Invalid request",
		Fields:  fields,
	}
}
