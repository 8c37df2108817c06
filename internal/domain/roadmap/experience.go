package roadmap

import "strings"

type Level string

const (
	LevelNone         Level = "No experience"
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
	LevelExpert       Level = "Expert"
)

// NextLevelNone is written into summaries when a level has no successor.
const NextLevelNone = "N/A"

type LevelInfo struct {
	Level    Level  `json:"level"`
	MinYears int    `json:"minYears"`
	MaxYears *int   `json:"maxYears"`
	Label    string `json:"label"`
	Next     *Level `json:"nextLevel"`
}

var levelOrder = []Level{LevelNone, LevelBeginner, LevelIntermediate, LevelAdvanced, LevelExpert}

func ptr[T any](v T) *T { return &v }

var levels = map[Level]LevelInfo{
	LevelNone:         {Level: LevelNone, MinYears: 0, MaxYears: ptr(0), Label: "0 years (starting point)", Next: ptr(LevelBeginner)},
	LevelBeginner:     {Level: LevelBeginner, MinYears: 0, MaxYears: ptr(2), Label: "0-2 years", Next: ptr(LevelIntermediate)},
	LevelIntermediate: {Level: LevelIntermediate, MinYears: 2, MaxYears: ptr(5), Label: "2-5 years", Next: ptr(LevelAdvanced)},
	LevelAdvanced:     {Level: LevelAdvanced, MinYears: 5, MaxYears: ptr(10), Label: "5-10 years", Next: ptr(LevelExpert)},
	LevelExpert:       {Level: LevelExpert, MinYears: 10, MaxYears: nil, Label: "10+ years", Next: nil},
}

// ResolveLevel maps free-form input onto a known level. Blank or unknown
// input resolves to LevelNone.
func ResolveLevel(raw string) Level {
	raw = strings.TrimSpace(raw)
	for _, l := range levelOrder {
		if strings.EqualFold(raw, string(l)) {
			return l
		}
	}
	return LevelNone
}

func (l Level) Info() LevelInfo {
	if info, ok := levels[l]; ok {
		return info
	}
	return levels[LevelNone]
}

func (l Level) IsExpert() bool {
	return l == LevelExpert
}

func (l Level) NextLabel() string {
	info := l.Info()
	if info.Next == nil {
		return NextLevelNone
	}
	return string(*info.Next)
}

// Levels returns the level table in progression order.
func Levels() []LevelInfo {
	out := make([]LevelInfo, 0, len(levelOrder))
	for _, l := range levelOrder {
		out = append(out, levels[l])
	}
	return out
}
