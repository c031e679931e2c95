package id

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestFromHeader(t *testing.T) {
	Convey("FromHeader", t, func() {
		Convey("keeps a valid uuid in canonical form", func() {
			got := FromHeader("6BA7B810-9DAD-11D1-80B4-00C04FD430C8")
			So(got, ShouldEqual, "6ba7b810-9dad-11d1-80b4-00c04fd430c8")
		})

		Convey("replaces empty or malformed values", func() {
			for _, raw := range []string{"", "not-a-uuid", "<script>"} {
				got := FromHeader(raw)
				So(got, ShouldNotEqual, raw)
				So(IsValid(got), ShouldBeTrue)
			}
		})

		Convey("New returns distinct ids", func() {
			So(New(), ShouldNotEqual, New())
		})
	})
}
