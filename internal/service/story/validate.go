package story

import (
	"fmt"
	"strings"

	"taleweaver/internal/model"
	"taleweaver/internal/model/story"
)

func validateCreateStory(in *CreateStoryInput) error {
	verr := &model.ValidationError{}

	if in.ChapterLength != "" && !story.ChapterLength(in.ChapterLength).Valid() {
		verr.Add("chapterLength", fmt.Sprintf("must be one of %s, %s, %s",
			story.ChapterLengthShort, story.ChapterLengthMedium, story.ChapterLengthLong))
	}
	if in.Temperature != nil && !story.ValidTemperature(*in.Temperature) {
		verr.Add("temperature", fmt.Sprintf("must be between %d and %d", story.MinTemperature, story.MaxTemperature))
	}
	for i, c := range in.Characters {
		if strings.TrimSpace(c.Name) == "" {
			verr.Add(fmt.Sprintf("characters[%d].name", i), "must not be empty")
		}
	}

	if verr.HasErrors() {
		return verr
	}
	return nil
}

func validateCharacter(in *CreateCharacterInput) error {
	verr := &model.ValidationError{}
	if in.StoryID <= 0 {
		verr.Add("storyId", "must be a positive id")
	}
	if strings.TrimSpace(in.Name) == "" {
		verr.Add("name", "must not be empty")
	}
	if verr.HasErrors() {
		return verr
	}
	return nil
}

func validateContinue(in *ContinueInput) error {
	verr := &model.ValidationError{}
	if in.StoryID <= 0 {
		verr.Add("storyId", "must be a positive id")
	}
	if in.ChapterID <= 0 {
		verr.Add("chapterId", "must be a positive id")
	}
	if in.SelectedOptionID == nil && strings.TrimSpace(in.CustomPrompt) == "" {
		verr.Add("selectedOptionId", "either selectedOptionId or customPrompt is required")
	}
	if verr.HasErrors() {
		return verr
	}
	return nil
}
