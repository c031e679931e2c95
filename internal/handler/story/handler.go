package story

import (
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"taleweaver/internal/service/story"
)

// Handler 故事处理器
// 所有 story 相关的 Handler 方法都通过这个结构体访问 Service
type Handler struct {
	storyService story.StoryService
}

var registerTagNameOnce sync.Once

// NewHandler 创建故事处理器
func NewHandler(storyService story.StoryService) *Handler {
	registerTagNameOnce.Do(useJSONFieldNames)
	return &Handler{
		storyService: storyService,
	}
}

// useJSONFieldNames 让校验错误里的字段名使用 json tag
func useJSONFieldNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "uri", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
}
