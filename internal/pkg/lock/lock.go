package lock

import (
	"context"
	"errors"
)

// ErrNotAcquired 在上下文结束前未能获得锁
var ErrNotAcquired = errors.New("lock not acquired")

// Locker 按 key 互斥
// Acquire 阻塞直到获得锁或 ctx 结束，返回的 release 可重复调用
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}
