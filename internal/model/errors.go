package model

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound 引用的实体（故事/章节/选项/角色）不存在
	ErrNotFound = errors.New("not found")

	// ErrGenerationFailed 生成后端返回空内容、无法解析的内容或调用失败
	ErrGenerationFailed = errors.New("generation failed")
)

// FieldError 字段级校验错误
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError 输入校验错误（对应 HTTP 400）
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError 创建只包含一个字段错误的 ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// Add 追加字段错误
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// HasErrors 是否存在字段错误
func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	if !e.HasErrors() {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
