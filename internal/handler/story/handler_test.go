package story

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	. "github.com/smartystreets/goconvey/convey"

	"taleweaver/internal/ai/chain"
	"taleweaver/internal/model"
	storyrepo "taleweaver/internal/repository/story"
	storysvc "taleweaver/internal/service/story"
	"taleweaver/internal/service/narrative"
)

// stubGenerator 返回固定章节，fail 为 true 时模拟生成失败
type stubGenerator struct {
	calls atomic.Int32
	fail  atomic.Bool
}

func (g *stubGenerator) GenerateChapter(_ context.Context, _ narrative.StoryDetails, gctx *narrative.Context, directive string) (*chain.ChapterGeneration, error) {
	n := g.calls.Add(1)
	if g.fail.Load() {
		return nil, fmt.Errorf("%w: backend down", model.ErrGenerationFailed)
	}
	return &chain.ChapterGeneration{
		Title:   fmt.Sprintf("Kapitel %d", n),
		Content: "Text zu " + directive,
		Summary: "Zusammenfassung",
		ContinuationOptions: []chain.OptionDraft{
			{Title: "A", Preview: "a", Prompt: "Option A"},
			{Title: "B", Preview: "b", Prompt: "Option B"},
			{Title: "C", Preview: "c", Prompt: "Option C"},
		},
	}, nil
}

func (g *stubGenerator) GenerateRandomStoryDetails(_ context.Context, partial chain.StoryDetailsWithCharacters) chain.StoryDetailsWithCharacters {
	if len(partial.Characters) == 0 {
		partial.Characters = []narrative.CharacterSheet{{Name: "Mara"}}
	}
	if partial.Title == "" {
		partial.Title = "Zufallstitel"
	}
	return partial
}

func newTestRouter(gen *stubGenerator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := storysvc.NewStoryService(storyrepo.NewMemoryStore(), gen, nil)
	h := NewHandler(svc)

	r := gin.New()
	api := r.Group("/api")
	h.RegisterRoutes(api)
	return r
}

func do(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(w *httptest.ResponseRecorder, v any) {
	So(json.Unmarshal(w.Body.Bytes(), v), ShouldBeNil)
}

type chapterJSON struct {
	ID                  int64  `json:"id"`
	ParentID            *int64 `json:"parentId"`
	Path                string `json:"path"`
	Prompt              string `json:"prompt"`
	IsRoot              bool   `json:"isRoot"`
	ContinuationOptions []struct {
		ID     int64  `json:"id"`
		Prompt string `json:"prompt"`
	} `json:"continuationOptions"`
}

type storyJSON struct {
	ID            int64        `json:"id"`
	Title         string       `json:"title"`
	ChapterLength string       `json:"chapterLength"`
	Temperature   int          `json:"temperature"`
	RootChapter   *chapterJSON `json:"rootChapter"`
}

func TestStoryRoutes(t *testing.T) {
	Convey("story routes", t, func() {
		gen := &stubGenerator{}
		r := newTestRouter(gen)

		w := do(r, http.MethodPost, "/api/stories", map[string]any{"genre": "Krimi"})
		So(w.Code, ShouldEqual, http.StatusCreated)
		var created storyJSON
		decode(w, &created)
		So(created.Title, ShouldEqual, "Zufallstitel")
		So(created.ChapterLength, ShouldEqual, "100-200")
		So(created.Temperature, ShouldEqual, 5)
		So(created.RootChapter, ShouldNotBeNil)
		So(created.RootChapter.IsRoot, ShouldBeTrue)
		So(created.RootChapter.ParentID, ShouldBeNil)
		So(len(created.RootChapter.ContinuationOptions), ShouldEqual, 3)
		root := created.RootChapter

		Convey("lists and reads the story", func() {
			w := do(r, http.MethodGet, "/api/stories", nil)
			So(w.Code, ShouldEqual, http.StatusOK)
			var list []storyJSON
			decode(w, &list)
			So(len(list), ShouldEqual, 1)

			w = do(r, http.MethodGet, fmt.Sprintf("/api/stories/%d", created.ID), nil)
			So(w.Code, ShouldEqual, http.StatusOK)
			var got storyJSON
			decode(w, &got)
			So(got.RootChapter.ID, ShouldEqual, root.ID)

			w = do(r, http.MethodGet, "/api/stories/999", nil)
			So(w.Code, ShouldEqual, http.StatusNotFound)

			w = do(r, http.MethodGet, "/api/stories/abc", nil)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("rejects invalid story input with field errors", func() {
			w := do(r, http.MethodPost, "/api/stories", map[string]any{"chapterLength": "5-10", "temperature": 0})
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			var resp ErrorResponse
			decode(w, &resp)
			So(resp.Code, ShouldEqual, 40001)
			So(len(resp.Fields), ShouldBeGreaterThan, 0)
			So(resp.Fields[0].Field, ShouldEqual, "chapterLength")
		})

		Convey("continues by option: 201 first, 200 on reuse", func() {
			body := map[string]any{"storyId": created.ID, "chapterId": root.ID, "selectedOptionId": root.ContinuationOptions[0].ID}
			w := do(r, http.MethodPost, "/api/stories/continue", body)
			So(w.Code, ShouldEqual, http.StatusCreated)
			var first chapterJSON
			decode(w, &first)
			So(first.Prompt, ShouldEqual, "Option A")
			So(first.Path, ShouldEqual, fmt.Sprintf("%d-%d", root.ID, first.ID))

			w = do(r, http.MethodPost, "/api/stories/continue", body)
			So(w.Code, ShouldEqual, http.StatusOK)
			var second chapterJSON
			decode(w, &second)
			So(second.ID, ShouldEqual, first.ID)
			So(gen.calls.Load(), ShouldEqual, int32(2))

			Convey("serves the path and the chapter list", func() {
				w := do(r, http.MethodGet, fmt.Sprintf("/api/chapters/%d/path", first.ID), nil)
				So(w.Code, ShouldEqual, http.StatusOK)
				var path []chapterJSON
				decode(w, &path)
				So(len(path), ShouldEqual, 2)
				So(path[0].ID, ShouldEqual, root.ID)

				w = do(r, http.MethodGet, "/api/chapters/999/path", nil)
				So(w.Code, ShouldEqual, http.StatusNotFound)

				w = do(r, http.MethodGet, fmt.Sprintf("/api/stories/%d/chapters", created.ID), nil)
				So(w.Code, ShouldEqual, http.StatusOK)
				var all []chapterJSON
				decode(w, &all)
				So(len(all), ShouldEqual, 2)

				w = do(r, http.MethodGet, fmt.Sprintf("/api/chapters/%d", first.ID), nil)
				So(w.Code, ShouldEqual, http.StatusOK)
				var one chapterJSON
				decode(w, &one)
				So(len(one.ContinuationOptions), ShouldEqual, 3)
			})
		})

		Convey("validates continuation requests", func() {
			w := do(r, http.MethodPost, "/api/stories/continue", map[string]any{"storyId": created.ID, "chapterId": root.ID})
			So(w.Code, ShouldEqual, http.StatusBadRequest)

			w = do(r, http.MethodPost, "/api/stories/continue", map[string]any{"storyId": created.ID, "chapterId": 999, "customPrompt": "x"})
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("maps generation failures to 500", func() {
			gen.fail.Store(true)
			w := do(r, http.MethodPost, "/api/stories/continue", map[string]any{"storyId": created.ID, "chapterId": root.ID, "customPrompt": "x"})
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
			var resp ErrorResponse
			decode(w, &resp)
			So(resp.Code, ShouldEqual, 50002)
		})

		Convey("manages characters", func() {
			w := do(r, http.MethodGet, fmt.Sprintf("/api/stories/%d/characters", created.ID), nil)
			So(w.Code, ShouldEqual, http.StatusOK)
			var list []map[string]any
			decode(w, &list)
			So(len(list), ShouldEqual, 1)

			w = do(r, http.MethodPost, "/api/characters", map[string]any{"storyId": created.ID, "name": "Jonas", "age": "12"})
			So(w.Code, ShouldEqual, http.StatusCreated)
			var c struct {
				ID   int64  `json:"id"`
				Name string `json:"name"`
			}
			decode(w, &c)
			So(c.Name, ShouldEqual, "Jonas")

			w = do(r, http.MethodGet, fmt.Sprintf("/api/characters/%d", c.ID), nil)
			So(w.Code, ShouldEqual, http.StatusOK)

			w = do(r, http.MethodPost, "/api/characters", map[string]any{"storyId": created.ID})
			So(w.Code, ShouldEqual, http.StatusBadRequest)

			w = do(r, http.MethodPost, "/api/characters", map[string]any{"storyId": 999, "name": "X"})
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}
