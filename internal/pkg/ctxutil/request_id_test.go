package ctxutil

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestRequestID(t *testing.T) {
	Convey("request id round trip", t, func() {
		ctx := WithRequestID(context.Background(), "abc")
		id, ok := GetRequestID(ctx)
		So(ok, ShouldBeTrue)
		So(id, ShouldEqual, "abc")

		_, ok = GetRequestID(context.Background())
		So(ok, ShouldBeFalse)

		_, ok = GetRequestID(WithRequestID(context.Background(), ""))
		So(ok, ShouldBeFalse)
	})
}
