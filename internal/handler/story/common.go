package story

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"taleweaver/internal/model"
	httputil "taleweaver/internal/pkg/http"
)

// ErrorResponse 错误响应类型别名（使用共用的 http.ErrorResponse）
type ErrorResponse = httputil.ErrorResponse

// IDRequest 路径中的数字ID
type IDRequest struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

// bindID 解析路径ID，失败时写入 400 并返回 false
func bindID(c *gin.Context) (int64, bool) {
	var req IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		writeBindError(c, err)
		return 0, false
	}
	return req.ID, true
}

// writeBindError 将绑定/校验错误写成 400
func writeBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]model.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, model.FieldError{
				Field:   fieldPath(fe),
				Message: describeTag(fe),
			})
		}
		c.JSON(http.StatusBadRequest, httputil.NewValidationResponse(fields))
		return
	}
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    httputil.CodeInvalidRequest,
		Message: "Invalid request",
		Detail:  err.Error(),
	})
}

// writeError 按错误类型映射 HTTP 状态和错误码
func writeError(c *gin.Context, err error) {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, httputil.NewValidationResponse(verr.Fields))
	case errors.Is(err, model.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Code:    httputil.CodeNotFound,
			Message: "Resource not found",
		})
	case errors.Is(err, model.ErrGenerationFailed):
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    httputil.CodeGenerationFailed,
			Message: "Story generation failed",
			Detail:  err.Error(),
		})
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    httputil.CodeStorage,
			Message: "Internal server error",
		})
	}
}

// fieldPath 去掉顶层结构体名，例如 CreateStoryRequest.characters[0].name -> characters[0].name
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return "failed " + fe.Tag() + " validation"
	}
}
