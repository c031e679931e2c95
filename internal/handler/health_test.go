package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	. "github.com/smartystreets/goconvey/convey"
)

func TestHealthHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	serve := func(h *HealthHandler, path string) *httptest.ResponseRecorder {
		r := gin.New()
		r.GET("/health", h.Health)
		r.GET("/ready", h.Ready)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	Convey("health endpoints", t, func() {
		ok := ReadyCheck{Name: "store", Check: func(context.Context) error { return nil }}
		down := ReadyCheck{Name: "redis", Check: func(context.Context) error { return errors.New("connection refused") }}

		So(serve(NewHealthHandler(), "/health").Code, ShouldEqual, http.StatusOK)
		So(serve(NewHealthHandler(ok), "/ready").Code, ShouldEqual, http.StatusOK)

		w := serve(NewHealthHandler(ok, down), "/ready")
		So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
		So(w.Body.String(), ShouldContainSubstring, "redis")
		So(w.Body.String(), ShouldContainSubstring, "50301")
	})
}
