package service

import (
	"fmt"

	"careerpath/internal/domain/roadmap"
)

func alternativeTitlesPrompts(role string) (string, string) {
	system := fmt.Sprintf(
		`Generate %d alternative job titles similar to %q as a JSON array of strings. Return the JSON array only.`,
		maxAlternativeTitles, role,
	)
	user := fmt.Sprintf("Provide %d alternative titles for: %s", maxAlternativeTitles, role)
	return system, user
}

func roadmapPrompts(req roadmap.Request) (string, string) {
	level := req.ExperienceLevel
	info := level.Info()

	kind, shape, timeframe := "progression", "4-stage", "X-Y months"
	if level.IsExpert() {
		kind, shape, timeframe = "expert maintenance", "3-stage expert", "Ongoing"
	}

	system := fmt.Sprintf(
		"You're a career coach creating a %s roadmap for %s. Return valid JSON only. Strictly include minimum %d milestones per stage.",
		kind, req.TargetRole, roadmap.MinMilestones,
	)

	user := fmt.Sprintf(`Create a %s roadmap for a %s at %s level with:
- name: Stage focus
- description: Key objectives
- timeframe: %s
- skills: Technologies to master
- milestones: Minimum %d concrete achievements per stage (required)

Current level: %s
Aspirations: %s
Objectives: %s

Return JSON with this exact structure:
{
  "roadmap": [{
    "name": "Stage name",
    "description": "Stage description",
    "timeframe": "X-Y months",
    "skills": ["skill1", "skill2"],
    "milestones": ["milestone1", "milestone2", "milestone3", "milestone4"]
  }],
  "summary": {
    "currentLevel": %q,
    "targetRole": %q,
    "startingPoint": %q,
    "nextLevel": %q,
    "estimatedTimeline": "X-Y years"
  }
}`,
		shape, req.TargetRole, level, timeframe, roadmap.MinMilestones,
		info.Label, req.Aspirations, req.Objectives,
		string(level), req.TargetRole, info.Label, level.NextLabel(),
	)

	return system, user
}
