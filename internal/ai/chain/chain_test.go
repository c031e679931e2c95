package chain

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/mock"

	"taleweaver/internal/model/story"
	"taleweaver/internal/service/narrative"
)

const chapterJSON = `{
  "title": "Der Fremde",
  "content": "Ein Fremder betrat das Dorf.",
  "summary": "Ein Fremder kommt an.",
  "isEnding": false,
  "continuationOptions": [
    {"title": "Folgen", "preview": "Mara folgt ihm.", "prompt": "Mara folgt dem Fremden"},
    {"title": "Warten", "preview": "Mara wartet.", "prompt": "Mara wartet am Brunnen"},
    {"title": "Fliehen", "preview": "Mara flieht.", "prompt": "Mara flieht in den Wald"}
  ]
}`

func intPtr(v int) *int { return &v }

func TestNormalizeTemperature(t *testing.T) {
	tests := []struct {
		name string
		in   *int
		want float64
	}{
		{"nil", nil, 1.0},
		{"min", intPtr(1), 0.8},
		{"mid", intPtr(5), 1.0},
		{"max", intPtr(9), 1.2},
		{"below", intPtr(0), 0.8},
		{"above", intPtr(12), 1.2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeTemperature(tt.in, DefaultTemperatureMin, DefaultTemperatureMax)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("NormalizeTemperature = %v, want %v", got, tt.want)
			}
		})
	}

	prev := 0.0
	for i := 1; i <= 9; i++ {
		got := NormalizeTemperature(intPtr(i), 0, 0)
		if got <= prev {
			t.Errorf("temperature not increasing at %d: %v <= %v", i, got, prev)
		}
		prev = got
	}
}

func TestParseChapter(t *testing.T) {
	Convey("ParseChapter", t, func() {
		Convey("accepts a fenced response", func() {
			gen, err := ParseChapter("```json\n" + chapterJSON + "\n```")
			So(err, ShouldBeNil)
			So(gen.Title, ShouldEqual, "Der Fremde")
			So(len(gen.ContinuationOptions), ShouldEqual, 3)
		})

		Convey("clears options of an ending chapter", func() {
			gen, err := ParseChapter(`{"title":"Ende","content":"Aus.","summary":"s","isEnding":true,
				"continuationOptions":[{"title":"a","preview":"b","prompt":"c"}]}`)
			So(err, ShouldBeNil)
			So(gen.IsEnding, ShouldBeTrue)
			So(gen.ContinuationOptions, ShouldBeEmpty)
		})

		Convey("truncates extra options", func() {
			gen, err := ParseChapter(`{"title":"t","content":"c","continuationOptions":[
				{"title":"1","prompt":"p1"},{"title":"2","prompt":"p2"},
				{"title":"3","prompt":"p3"},{"title":"4","prompt":"p4"}]}`)
			So(err, ShouldBeNil)
			So(len(gen.ContinuationOptions), ShouldEqual, 3)
			So(gen.ContinuationOptions[2].Prompt, ShouldEqual, "p3")
		})

		Convey("accepts numeric ending flags", func() {
			gen, err := ParseChapter(`{"title":"t","content":"c","isEnding":1}`)
			So(err, ShouldBeNil)
			So(gen.IsEnding, ShouldBeTrue)
		})

		Convey("rejects broken responses", func() {
			for _, raw := range []string{
				"",
				"not json",
				`{"content":"c","continuationOptions":[{"title":"1","prompt":"p"}]}`,
				`{"title":"t","continuationOptions":[{"title":"1","prompt":"p"}]}`,
				`{"title":"t","content":"c","isEnding":false,"continuationOptions":[]}`,
				`{"title":"t","content":"c","continuationOptions":[{"title":"","prompt":""}]}`,
			} {
				_, err := ParseChapter(raw)
				So(err, ShouldNotBeNil)
			}
		})
	})
}

func TestChapterChain(t *testing.T) {
	Convey("ChapterChain.Run", t, func() {
		m := &mockChatModel{}
		c := NewChapterChain(m, Options{})
		details := narrative.StoryDetails{Genre: "Märchen", ChapterLength: story.ChapterLengthMedium, Temperature: intPtr(9)}

		Convey("sends the first-chapter prompt with mapped temperature", func() {
			var sent []*schema.Message
			m.On("Generate", mock.Anything, mock.Anything, mock.MatchedBy(func(opts []model.Option) bool {
				return math.Abs(float64(temperatureOf(opts))-1.2) < 1e-6
			})).Run(func(args mock.Arguments) {
				sent = args.Get(1).([]*schema.Message)
			}).Return(&schema.Message{
				Content: chapterJSON,
				ResponseMeta: &schema.ResponseMeta{Usage: &schema.TokenUsage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15}},
			}, nil).Once()

			gen, usage, err := c.Run(context.Background(), details, nil, "")
			So(err, ShouldBeNil)
			So(gen.Title, ShouldEqual, "Der Fremde")
			So(usage.TotalTokens, ShouldEqual, 15)
			So(len(sent), ShouldEqual, 2)
			So(sent[0].Role, ShouldEqual, schema.System)
			prompt := sent[1].Content
			So(prompt, ShouldContainSubstring, "Genre: Märchen")
			So(prompt, ShouldContainSubstring, "This is the first chapter")
			So(prompt, ShouldContainSubstring, "200-300 words")
			So(prompt, ShouldContainSubstring, "German")
			So(prompt, ShouldNotContainSubstring, "Story title:")
			So(prompt, ShouldNotContainSubstring, "PREVIOUS CHAPTER")
			m.AssertExpectations(t)
		})

		Convey("includes previous chapter, roster and directive", func() {
			s := &story.Story{Genre: "Märchen"}
			ch := &story.Chapter{Title: "Sturm", Content: "Es regnete.", Summary: "Bisher geschah viel.", Path: "1-2-3-4-5-6-7-8-9"}
			gctx := narrative.BuildContext(s, ch, []*story.Character{{Name: "Mara", Age: "30"}})

			var prompt string
			m.On("Generate", mock.Anything, mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
				prompt = args.Get(1).([]*schema.Message)[1].Content
			}).Return(&schema.Message{Content: chapterJSON}, nil).Once()

			_, _, err := c.Run(context.Background(), details, gctx, "Ein Fremder taucht auf")
			So(err, ShouldBeNil)
			So(prompt, ShouldContainSubstring, "Current chapter: 9")
			So(prompt, ShouldContainSubstring, "resolution")
			So(prompt, ShouldContainSubstring, "60%")
			So(prompt, ShouldContainSubstring, "1. Mara (age: 30)")
			So(prompt, ShouldContainSubstring, `Title: "Sturm"`)
			So(prompt, ShouldContainSubstring, "Bisher geschah viel.")
			So(prompt, ShouldContainSubstring, "SPECIAL INSTRUCTION: Ein Fremder taucht auf")
			So(prompt, ShouldContainSubstring, "ready to end")
		})

		Convey("fails on backend errors", func() {
			m.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("boom")).Once()
			_, _, err := c.Run(context.Background(), details, nil, "")
			So(err, ShouldNotBeNil)
		})

		Convey("fails on empty content", func() {
			m.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return(&schema.Message{}, nil).Once()
			_, _, err := c.Run(context.Background(), details, nil, "")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestMergeDetails(t *testing.T) {
	Convey("MergeDetails", t, func() {
		partial := StoryDetailsWithCharacters{Characters: []narrative.CharacterSheet{{Name: "Mara"}}}
		partial.Genre = "Krimi"
		generated := StoryDetailsWithCharacters{Characters: []narrative.CharacterSheet{{Name: "mara", Age: "40"}, {Name: "Jonas"}, {Name: ""}}}
		generated.Genre = "Fantasy"
		generated.Title = "Nebel"

		out := MergeDetails(partial, generated)
		So(out.Genre, ShouldEqual, "Krimi")
		So(out.Title, ShouldEqual, "Nebel")
		So(len(out.Characters), ShouldEqual, 2)
		So(out.Characters[0].Age, ShouldBeEmpty)
		So(out.Characters[1].Name, ShouldEqual, "Jonas")
	})
}

func TestDetailsChain(t *testing.T) {
	Convey("DetailsChain.Run", t, func() {
		m := &mockChatModel{}
		c := NewDetailsChain(m, Options{Language: "English"})
		partial := StoryDetailsWithCharacters{}
		partial.Setting = "Hamburg"

		Convey("marks missing fields and merges the answer", func() {
			var prompt string
			m.On("Generate", mock.Anything, mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
				prompt = args.Get(1).([]*schema.Message)[1].Content
			}).Return(&schema.Message{Content: `{"title":"Hafen","genre":"Krimi","narrativeStyle":"nüchtern",
				"setting":"Berlin","targetAudience":"Erwachsene","mainCharacter":"Kommissarin Lenz",
				"characters":[{"name":"Lenz","age":52,"personality":"stur","background":"Polizistin"}]}`}, nil).Once()

			out, _, err := c.Run(context.Background(), partial)
			So(err, ShouldBeNil)
			So(strings.Contains(prompt, "setting: Hamburg (already provided)"), ShouldBeTrue)
			So(strings.Contains(prompt, "title: [MISSING]"), ShouldBeTrue)
			So(out.Setting, ShouldEqual, "Hamburg")
			So(out.Title, ShouldEqual, "Hafen")
			So(len(out.Characters), ShouldEqual, 1)
			So(out.Characters[0].Age, ShouldEqual, "52")
		})

		Convey("returns an error on unparseable output", func() {
			m.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return(&schema.Message{Content: "nope"}, nil).Once()
			_, _, err := c.Run(context.Background(), partial)
			So(err, ShouldNotBeNil)
		})
	})
}
