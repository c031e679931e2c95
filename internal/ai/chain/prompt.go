package chain

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"taleweaver/internal/service/narrative"
)

// DefaultLanguage 章节默认写作语言
const DefaultLanguage = "German"

func chapterSystemPrompt(language string) string {
	return fmt.Sprintf("You are a creative storyteller who writes captivating interactive stories in %s. "+
		"Always answer with a single JSON object and nothing else.", language)
}

func detailsSystemPrompt(language string) string {
	return fmt.Sprintf("You help invent creative and varied story details and characters for stories written in %s. "+
		"Always answer with a single JSON object and nothing else.", language)
}

// buildChapterPrompt 组装章节生成的用户消息
func buildChapterPrompt(language string, details narrative.StoryDetails, gctx *narrative.Context, directive string) string {
	var b strings.Builder
	length := details.ChapterLength.String()

	fmt.Fprintf(&b, "Write one chapter of an interactive story in %s with the following details:\n", language)
	writeAttr(&b, "Story title", details.Title)
	writeAttr(&b, "Genre", details.Genre)
	writeAttr(&b, "Narrative style", details.NarrativeStyle)
	writeAttr(&b, "Setting", details.Setting)
	writeAttr(&b, "Target audience", details.TargetAudience)
	writeAttr(&b, "Main character", details.MainCharacter)

	b.WriteString("\nSTORY PROGRESSION:\n")
	fmt.Fprintf(&b, "Current chapter: %d\n", gctx.Depth)
	fmt.Fprintf(&b, "Current phase: %s (%s)\n", gctx.Arc.Phase, gctx.Arc.Description)
	fmt.Fprintf(&b, "Probability of the story ending here: %d%%\n", int(math.Round(gctx.Arc.EndingProbability*100)))

	if len(gctx.Characters) > 0 {
		b.WriteString("\nCHARACTERS (use them consistently):\n")
		for i, c := range gctx.Characters {
			fmt.Fprintf(&b, "%d. %s", i+1, c.Name)
			if c.Age != "" {
				fmt.Fprintf(&b, " (age: %s)", c.Age)
			}
			if c.Personality != "" {
				fmt.Fprintf(&b, "\n   Personality: %s", c.Personality)
			}
			if c.Background != "" {
				fmt.Fprintf(&b, "\n   Background: %s", c.Background)
			}
			b.WriteString("\n")
		}
		b.WriteString("\nIMPORTANT: Portray every established character consistently. Do not contradict their established traits.\n")
	}

	if !gctx.FirstChapter {
		b.WriteString("\nPREVIOUS CHAPTER:\n")
		fmt.Fprintf(&b, "Title: %q\n", gctx.PreviousTitle)
		fmt.Fprintf(&b, "Content: %s\n", gctx.PreviousContent)

		if gctx.PreviousSummary != "" {
			fmt.Fprintf(&b, "\nSTORY SO FAR:\n%s\n", gctx.PreviousSummary)
			b.WriteString("\nCONTINUITY: Build seamlessly on the plot so far. Respect every established storyline and relationship.\n")
		}
	}

	switch {
	case directive != "":
		fmt.Fprintf(&b, "\nSPECIAL INSTRUCTION: %s\n", directive)
	case gctx.FirstChapter:
		b.WriteString("\nThis is the first chapter. Introduce the characters and establish the setting and the initial situation.\n")
	default:
		b.WriteString("\nContinue the story organically and develop the plot according to the current phase.\n")
	}

	fmt.Fprintf(&b, "\nThe chapter should be %s words long.\n", length)

	b.WriteString("\nENDING DECISION:\n")
	switch gctx.Arc.Phase {
	case narrative.PhaseBeginning:
		b.WriteString("The story has only just begun, so this chapter must NOT end it. Keep developing the plot.\n")
	case narrative.PhaseDevelopment:
		b.WriteString("The story is in its development phase. An ending is possible, but the plot should usually keep developing.\n")
	case narrative.PhaseClimax:
		b.WriteString("The story is approaching its climax. Consider whether the key conflicts can be resolved and a satisfying ending is possible.\n")
	default:
		b.WriteString("The story is ready to end. Bring the storylines to a satisfying conclusion if it makes narrative sense.\n")
	}
	b.WriteString("If you decide to end the story, set \"isEnding\" to true and return no continuation options.\n")
	fmt.Fprintf(&b, "Otherwise return exactly %d possible continuation options for the next chapter.\n", MaxContinuationOptions)

	b.WriteString("\nWRITING GUIDELINES:\n")
	b.WriteString("- Tell the story in an engaging, atmospheric way\n")
	b.WriteString("- Keep every established character and their traits in mind\n")
	b.WriteString("- Build on the plot so far without contradictions\n")
	b.WriteString("- Introduce new characters in detail when they first appear\n")
	b.WriteString("- Keep the atmosphere coherent with the genre and setting\n")

	fmt.Fprintf(&b, `
FORMAT: Respond with a JSON object of this shape:
{
  "title": "Chapter title only, no number",
  "content": "The chapter text (%[1]s words)",
  "summary": "A concise summary of the WHOLE story up to and including this chapter, naming all relevant characters and their current state",
  "isEnding": false,
  "continuationOptions": [
    {"title": "Title of option one", "preview": "Short teaser of 10-15 words", "prompt": "Detailed instruction that develops the plot organically"},
    {"title": "Title of option two", "preview": "Short teaser of 10-15 words", "prompt": "Detailed instruction for an alternative development"},
    {"title": "Title of option three", "preview": "Short teaser of 10-15 words", "prompt": "Detailed instruction that explores another aspect of the story"}
  ]
}

If this chapter ends the story:
{
  "title": "Chapter title",
  "content": "The chapter text bringing the story to a satisfying close (%[1]s words)",
  "summary": "A closing summary of the whole story (80-100 words)",
  "isEnding": true,
  "continuationOptions": []
}
All text values must be written in %[2]s.`, length, language)

	return b.String()
}

// buildDetailsPrompt 组装故事属性补全的用户消息
func buildDetailsPrompt(language string, partial StoryDetailsWithCharacters) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Invent random details for a story written in %s. Fill in only the missing fields:\n\n", language)
	writeField(&b, "title", partial.Title)
	writeField(&b, "genre", partial.Genre)
	writeField(&b, "narrativeStyle", partial.NarrativeStyle)
	writeField(&b, "setting", partial.Setting)
	writeField(&b, "targetAudience", partial.TargetAudience)
	writeField(&b, "mainCharacter", partial.MainCharacter)

	b.WriteString(`
Also create at least one main character using this format:
"characters": [
  {
    "name": "Character name",
    "age": "Character age",
    "personality": "Personality description (about 20-30 words)",
    "background": "Background story (about 20-30 words)"
  }
]

`)
	if len(partial.Characters) > 0 {
		supplied, _ := json.MarshalIndent(partial.Characters, "", "  ")
		fmt.Fprintf(&b, "characters: %s (already provided)\n", supplied)
	} else {
		b.WriteString("characters: [MISSING]\n")
	}

	fmt.Fprintf(&b, "\nRespond with one JSON object containing ALL fields, both the provided and the generated ones. Write every value in %s.", language)
	return b.String()
}

func writeAttr(b *strings.Builder, label, value string) {
	if value != "" {
		fmt.Fprintf(b, "%s: %s\n", label, value)
	}
}

func writeField(b *strings.Builder, key, value string) {
	if value != "" {
		fmt.Fprintf(b, "%s: %s (already provided)\n", key, value)
		return
	}
	fmt.Fprintf(b, "%s: [MISSING]\n", key)
}
