package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	. "github.com/smartystreets/goconvey/convey"

	"taleweaver/internal/pkg/ctxutil"
)

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	Convey("middleware chain", t, func() {
		r := gin.New()
		r.Use(Recovery(), RequestID(), Logger())

		var seen string
		r.GET("/echo", func(c *gin.Context) {
			seen, _ = ctxutil.GetRequestID(c.Request.Context())
			c.Status(http.StatusNoContent)
		})
		r.GET("/boom", func(c *gin.Context) {
			panic("boom")
		})

		Convey("assigns a request id", func() {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/echo", nil))
			So(w.Code, ShouldEqual, http.StatusNoContent)
			So(seen, ShouldNotBeEmpty)
			So(w.Header().Get(HeaderRequestID), ShouldEqual, seen)
		})

		Convey("keeps a valid inbound request id", func() {
			req := httptest.NewRequest(http.MethodGet, "/echo", nil)
			req.Header.Set(HeaderRequestID, "6ba7b810-9dad-11d1-80b4-00c04fd430c8")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			So(seen, ShouldEqual, "6ba7b810-9dad-11d1-80b4-00c04fd430c8")
		})

		Convey("turns panics into 500", func() {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
			So(w.Body.String(), ShouldContainSubstring, "50000")
		})
	})
}
