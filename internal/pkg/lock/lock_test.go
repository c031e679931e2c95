package lock

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"taleweaver/internal/config"
)

func exerciseLocker(l Locker) {
	ctx := context.Background()

	Convey("serializes holders of the same key", func() {
		var inside, maxInside atomic.Int32
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				release, err := l.Acquire(ctx, "chapter:1")
				if err != nil {
					return
				}
				n := inside.Add(1)
				for {
					m := maxInside.Load()
					if n <= m || maxInside.CompareAndSwap(m, n) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				inside.Add(-1)
				release()
			}()
		}
		wg.Wait()
		So(maxInside.Load(), ShouldEqual, int32(1))
	})

	Convey("does not block different keys", func() {
		r1, err := l.Acquire(ctx, "chapter:1")
		So(err, ShouldBeNil)
		defer r1()

		tctx, cancel := context.WithTimeout(ctx, time.Second)
		defer cancel()
		r2, err := l.Acquire(tctx, "chapter:2")
		So(err, ShouldBeNil)
		r2()
	})

	Convey("gives up when the context ends", func() {
		r1, err := l.Acquire(ctx, "chapter:3")
		So(err, ShouldBeNil)

		tctx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
		defer cancel()
		_, err = l.Acquire(tctx, "chapter:3")
		So(errors.Is(err, ErrNotAcquired), ShouldBeTrue)

		r1()
		r1()
		r3, err := l.Acquire(ctx, "chapter:3")
		So(err, ShouldBeNil)
		r3()
	})
}

func TestMemoryLocker(t *testing.T) {
	Convey("MemoryLocker", t, func() {
		l := NewMemoryLocker()
		exerciseLocker(l)

		Convey("drops idle keys", func() {
			release, err := l.Acquire(context.Background(), "chapter:9")
			So(err, ShouldBeNil)
			So(l.size(), ShouldEqual, 1)
			release()
			So(l.size(), ShouldEqual, 0)
		})
	})
}

func TestRedisLocker(t *testing.T) {
	addr := os.Getenv("TALEWEAVER_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TALEWEAVER_TEST_REDIS_ADDR not set")
	}
	client, err := NewRedisClient(&config.RedisConfig{Addr: addr})
	if err != nil {
		t.Fatalf("connect redis: %v", err)
	}
	defer client.Close()

	Convey("RedisLocker", t, func() {
		l := NewRedisLocker(client, 5*time.Second)
		l.pollInterval = 5 * time.Millisecond
		exerciseLocker(l)
	})
}
