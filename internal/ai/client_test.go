package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/mock"

	"taleweaver/internal/ai/chain"
	appmodel "taleweaver/internal/model"
	"taleweaver/internal/service/narrative"
)

type mockChatModel struct {
	mock.Mock
}

func (m *mockChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	args := m.Called(ctx, input, opts)
	msg, _ := args.Get(0).(*schema.Message)
	return msg, args.Error(1)
}

func (m *mockChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	args := m.Called(ctx, input, opts)
	sr, _ := args.Get(0).(*schema.StreamReader[*schema.Message])
	return sr, args.Error(1)
}

func TestClient(t *testing.T) {
	Convey("Client", t, func() {
		m := &mockChatModel{}
		c := NewClientWithModel(m, chain.Options{})
		ctx := context.Background()

		Convey("wraps chapter failures as ErrGenerationFailed", func() {
			m.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("timeout")).Once()
			_, err := c.GenerateChapter(ctx, narrative.StoryDetails{}, nil, "")
			So(errors.Is(err, appmodel.ErrGenerationFailed), ShouldBeTrue)
		})

		Convey("wraps invalid output as ErrGenerationFailed", func() {
			m.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return(&schema.Message{Content: `{"title":"x"}`}, nil).Once()
			_, err := c.GenerateChapter(ctx, narrative.StoryDetails{}, nil, "")
			So(errors.Is(err, appmodel.ErrGenerationFailed), ShouldBeTrue)
		})

		Convey("short-circuits complete details", func() {
			partial := chain.StoryDetailsWithCharacters{Characters: []narrative.CharacterSheet{{Name: "Mara"}}}
			partial.Title, partial.Genre, partial.NarrativeStyle = "T", "G", "N"
			partial.Setting, partial.TargetAudience, partial.MainCharacter = "S", "A", "M"

			out := c.GenerateRandomStoryDetails(ctx, partial)
			So(out, ShouldResemble, partial)
			m.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
		})

		Convey("fails open on detail errors", func() {
			partial := chain.StoryDetailsWithCharacters{}
			partial.Genre = "Krimi"
			m.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("down")).Once()

			out := c.GenerateRandomStoryDetails(ctx, partial)
			So(out, ShouldResemble, partial)
		})
	})
}
