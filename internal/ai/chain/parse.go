package chain

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

var markdownFence = regexp.MustCompile("(?s)^\\s*```(?:json)?\\s*\\n(.*?)\\n\\s*```\\s*$")

// cleanJSONContent 去掉模型输出中的 markdown 代码块和多余空白
func cleanJSONContent(content string) string {
	content = strings.TrimSpace(content)
	if matches := markdownFence.FindStringSubmatch(content); len(matches) > 1 {
		content = matches[1]
	}
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}

// flexString 接受 JSON 字符串或数字（模型常把年龄写成数字）
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", string(b))
	}
	*f = flexString(n.String())
	return nil
}

// flexBool 接受 JSON 布尔、0/1 或 "true"/"false"
type flexBool bool

func (f *flexBool) UnmarshalJSON(b []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if raw == "null" || raw == "" {
		*f = false
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fmt.Errorf("expected boolean, got %s", string(b))
	}
	*f = flexBool(v)
	return nil
}

type rawChapter struct {
	Title               string        `json:"title"`
	Content             string        `json:"content"`
	Summary             string        `json:"summary"`
	IsEnding            flexBool      `json:"isEnding"`
	ContinuationOptions []OptionDraft `json:"continuationOptions"`
}

// ParseChapter 解析并校验章节生成结果
// 结局章节的选项被清空；非结局章节必须至少有一个可用选项，超过 3 个时只保留前 3 个
func ParseChapter(content string) (*ChapterGeneration, error) {
	cleaned := cleanJSONContent(content)
	if cleaned == "" {
		return nil, errors.New("empty model response")
	}

	var raw rawChapter
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, fmt.Errorf("decode chapter json: %w", err)
	}

	out := &ChapterGeneration{
		Title:    strings.TrimSpace(raw.Title),
		Content:  strings.TrimSpace(raw.Content),
		Summary:  strings.TrimSpace(raw.Summary),
		IsEnding: bool(raw.IsEnding),
	}
	if out.Title == "" {
		return nil, errors.New("chapter title missing")
	}
	if out.Content == "" {
		return nil, errors.New("chapter content missing")
	}

	if out.IsEnding {
		out.ContinuationOptions = []OptionDraft{}
		return out, nil
	}

	options := make([]OptionDraft, 0, MaxContinuationOptions)
	for _, o := range raw.ContinuationOptions {
		o.Title = strings.TrimSpace(o.Title)
		o.Preview = strings.TrimSpace(o.Preview)
		o.Prompt = strings.TrimSpace(o.Prompt)
		if o.Title == "" || o.Prompt == "" {
			continue
		}
		options = append(options, o)
	}
	if len(options) == 0 {
		return nil, errors.New("non-ending chapter has no continuation options")
	}
	if len(options) > MaxContinuationOptions {
		log.Warn().Int("count", len(options)).Msg("model returned too many continuation options, truncating")
		options = options[:MaxContinuationOptions]
	} else if len(options) < MaxContinuationOptions {
		log.Warn().Int("count", len(options)).Msg("model returned fewer continuation options than requested")
	}
	out.ContinuationOptions = options
	return out, nil
}

type rawCharacter struct {
	Name        string     `json:"name"`
	Age         flexString `json:"age"`
	Personality string     `json:"personality"`
	Background  string     `json:"background"`
}

type rawDetails struct {
	Title          string         `json:"title"`
	Genre          string         `json:"genre"`
	NarrativeStyle string         `json:"narrativeStyle"`
	Setting        string         `json:"setting"`
	TargetAudience string         `json:"targetAudience"`
	MainCharacter  string         `json:"mainCharacter"`
	Characters     []rawCharacter `json:"characters"`
}

// ParseDetails 解析故事属性补全结果
func ParseDetails(content string) (*StoryDetailsWithCharacters, error) {
	cleaned := cleanJSONContent(content)
	if cleaned == "" {
		return nil, errors.New("empty model response")
	}

	var raw rawDetails
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, fmt.Errorf("decode details json: %w", err)
	}

	out := &StoryDetailsWithCharacters{}
	out.Title = strings.TrimSpace(raw.Title)
	out.Genre = strings.TrimSpace(raw.Genre)
	out.NarrativeStyle = strings.TrimSpace(raw.NarrativeStyle)
	out.Setting = strings.TrimSpace(raw.Setting)
	out.TargetAudience = strings.TrimSpace(raw.TargetAudience)
	out.MainCharacter = strings.TrimSpace(raw.MainCharacter)
	for _, c := range raw.Characters {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			continue
		}
		out.Characters = append(out.Characters, sheet(name, string(c.Age), c.Personality, c.Background))
	}
	return out, nil
}
