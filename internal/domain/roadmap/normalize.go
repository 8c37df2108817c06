package roadmap

import (
	"fmt"
	"strconv"
)

const (
	MinMilestones = 4
	MaxMilestones = 6

	DefaultStageName         = "Unnamed Stage"
	DefaultStageDescription  = "No description provided"
	DefaultStageTimeframe    = "3-6 months"
	DefaultSkill             = "Core skills"
	DefaultEstimatedTimeline = "1-2 years"
)

// RawStage is a stage as decoded from model output. Fields stay untyped
// until NormalizeStage has looked at them.
type RawStage struct {
	Name        any `json:"name"`
	Description any `json:"description"`
	Timeframe   any `json:"timeframe"`
	Skills      any `json:"skills"`
	Milestones  any `json:"milestones"`
}

// Raw converts a stage back to its untyped form.
func (s Stage) Raw() RawStage {
	skills := make([]any, 0, len(s.Skills))
	for _, v := range s.Skills {
		skills = append(skills, v)
	}
	milestones := make([]any, 0, len(s.Milestones))
	for _, v := range s.Milestones {
		milestones = append(milestones, v)
	}
	return RawStage{
		Name:        s.Name,
		Description: s.Description,
		Timeframe:   s.Timeframe,
		Skills:      skills,
		Milestones:  milestones,
	}
}

// NormalizeStage fills missing fields with fixed defaults and forces the
// milestone count into [MinMilestones, MaxMilestones].
//
//   - name, description, timeframe: a non-empty string is kept, anything else
//     becomes the default
//   - skills: an array is kept (scalars stringified), anything else becomes
//     ["Core skills"]
//   - milestones: a non-array becomes empty; then "Complete N key objectives"
//     is appended until there are four, and the list is cut at six
func NormalizeStage(raw RawStage) Stage {
	skills, ok := stringList(raw.Skills)
	if !ok {
		skills = []string{DefaultSkill}
	}

	milestones, _ := stringList(raw.Milestones)
	for len(milestones) < MinMilestones {
		milestones = append(milestones, fmt.Sprintf("Complete %d key objectives", len(milestones)+1))
	}
	if len(milestones) > MaxMilestones {
		milestones = milestones[:MaxMilestones]
	}

	return Stage{
		Name:        stringOr(raw.Name, DefaultStageName),
		Description: stringOr(raw.Description, DefaultStageDescription),
		Timeframe:   stringOr(raw.Timeframe, DefaultStageTimeframe),
		Skills:      skills,
		Milestones:  milestones,
	}
}

func NormalizeStages(raw []RawStage) []Stage {
	out := make([]Stage, 0, len(raw))
	for _, r := range raw {
		out = append(out, NormalizeStage(r))
	}
	return out
}

func stringOr(v any, def string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return def
}

func stringList(v any) ([]string, bool) {
	var items []any
	switch t := v.(type) {
	case []any:
		items = t
	case []string:
		out := make([]string, len(t))
		copy(out, t)
		return out, true
	default:
		return []string{}, false
	}

	out := make([]string, 0, len(items))
	for _, it := range items {
		switch x := it.(type) {
		case string:
			out = append(out, x)
		case float64:
			out = append(out, strconv.FormatFloat(x, 'f', -1, 64))
		case bool:
			out = append(out, strconv.FormatBool(x))
		}
	}
	return out, true
}
