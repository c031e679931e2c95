package id

import (
	"github.com/google/uuid"
)

// maxInboundLen 外部传入 ID 的最大长度
const maxInboundLen = 64

// New 生成新的UUID（string格式），用于请求ID和锁令牌
func New() string {
	return uuid.New().String()
}

// IsValid 验证UUID格式是否有效
func IsValid(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// FromHeader 复用调用方传入的请求ID
// 合法 UUID 统一为小写标准格式；空值、超长或非 UUID 时生成新的ID
func FromHeader(raw string) string {
	if raw == "" || len(raw) > maxInboundLen {
		return New()
	}
	u, err := uuid.Parse(raw)
	if err != nil {
		return New()
	}
	return u.String()
}
