package narrative

import "strings"

// Phase 故事弧阶段
type Phase string

const (
	PhaseBeginning   Phase = "beginning"
	PhaseDevelopment Phase = "development"
	PhaseClimax      Phase = "climax"
	PhaseResolution  Phase = "resolution"
)

// ArcPhase 章节深度对应的故事弧信息
type ArcPhase struct {
	Phase             Phase   `json:"phase"`
	Description       string  `json:"description"`
	EndingProbability float64 `json:"endingProbability"`
}

// ChapterDepth 路径的段数，根章节为 1，空路径也视为 1
func ChapterDepth(path string) int {
	if path == "" {
		return 1
	}
	return len(strings.Split(path, "-"))
}

// StoryArcPhase 按深度划分故事弧阶段
func StoryArcPhase(depth int) ArcPhase {
	switch {
	case depth <= 2:
		return ArcPhase{
			Phase:             PhaseBeginning,
			Description:       "introduce the characters and the initial situation",
			EndingProbability: 0.05,
		}
	case depth <= 5:
		return ArcPhase{
			Phase:             PhaseDevelopment,
			Description:       "develop the plot and the characters",
			EndingProbability: 0.15,
		}
	case depth <= 8:
		return ArcPhase{
			Phase:             PhaseClimax,
			Description:       "climax of the story with key decisions and turns",
			EndingProbability: 0.35,
		}
	default:
		return ArcPhase{
			Phase:             PhaseResolution,
			Description:       "resolve the story and work towards a satisfying ending",
			EndingProbability: 0.60,
		}
	}
}
