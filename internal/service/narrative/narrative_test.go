package narrative

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"taleweaver/internal/model/story"
)

func TestChapterDepth(t *testing.T) {
	tests := []struct {
		path string
		want int
	}{
		{"", 1},
		{"5", 1},
		{"5-12", 2},
		{"5-12-13", 3},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := ChapterDepth(tt.path); got != tt.want {
				t.Errorf("ChapterDepth(%q) = %d, want %d", tt.path, got, tt.want)
			}
		})
	}
}

func TestStoryArcPhase(t *testing.T) {
	tests := []struct {
		depth   int
		phase   Phase
		endProb float64
	}{
		{1, PhaseBeginning, 0.05},
		{2, PhaseBeginning, 0.05},
		{3, PhaseDevelopment, 0.15},
		{5, PhaseDevelopment, 0.15},
		{6, PhaseClimax, 0.35},
		{8, PhaseClimax, 0.35},
		{9, PhaseResolution, 0.60},
		{42, PhaseResolution, 0.60},
	}
	for _, tt := range tests {
		arc := StoryArcPhase(tt.depth)
		if arc.Phase != tt.phase || arc.EndingProbability != tt.endProb {
			t.Errorf("StoryArcPhase(%d) = %s/%v, want %s/%v", tt.depth, arc.Phase, arc.EndingProbability, tt.phase, tt.endProb)
		}
		if arc.Description == "" {
			t.Errorf("StoryArcPhase(%d) has no description", tt.depth)
		}
	}
}

func TestBuildContext(t *testing.T) {
	Convey("BuildContext", t, func() {
		s := &story.Story{ID: 1, Genre: "Fantasy", Temperature: 7, ChapterLength: story.ChapterLengthLong}
		characters := []*story.Character{
			{Name: "Mara"},
			{Name: "Jonas", Age: "12", Background: "Waise"},
			{Name: ""},
		}

		Convey("enters first-chapter mode without a chapter", func() {
			ctx := BuildContext(s, nil, characters)
			So(ctx.FirstChapter, ShouldBeTrue)
			So(ctx.Depth, ShouldEqual, 1)
			So(ctx.Arc.Phase, ShouldEqual, PhaseBeginning)
			So(ctx.PreviousTitle, ShouldBeEmpty)
			So(ctx.Story.Genre, ShouldEqual, "Fantasy")
			So(*ctx.Story.Temperature, ShouldEqual, 7)
			So(ctx.Story.ChapterLength, ShouldEqual, story.ChapterLengthLong)
		})

		Convey("tolerates sparse character fields", func() {
			ctx := BuildContext(s, nil, characters)
			So(len(ctx.Characters), ShouldEqual, 2)
			So(ctx.Characters[0], ShouldResemble, CharacterSheet{Name: "Mara"})
			So(ctx.Characters[1].Personality, ShouldBeEmpty)
			So(ctx.Characters[1].Background, ShouldEqual, "Waise")
		})

		Convey("carries the previous chapter", func() {
			ch := &story.Chapter{Title: "Sturm", Content: "Es regnete.", Summary: "Bisher...", Path: "1-2-3-4-5-6"}
			ctx := BuildContext(s, ch, nil)
			So(ctx.FirstChapter, ShouldBeFalse)
			So(ctx.Depth, ShouldEqual, 6)
			So(ctx.Arc.Phase, ShouldEqual, PhaseClimax)
			So(ctx.PreviousTitle, ShouldEqual, "Sturm")
			So(ctx.PreviousContent, ShouldEqual, "Es regnete.")
			So(ctx.PreviousSummary, ShouldEqual, "Bisher...")
			So(ctx.Characters, ShouldBeEmpty)
		})

		Convey("fills defaults for incomplete stories", func() {
			ctx := BuildContext(&story.Story{}, nil, nil)
			So(ctx.Story.ChapterLength, ShouldEqual, story.DefaultChapterLength)
			So(*ctx.Story.Temperature, ShouldEqual, story.DefaultTemperature)
		})
	})
}
