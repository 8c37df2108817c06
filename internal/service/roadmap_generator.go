package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"careerpath/internal/domain/roadmap"
	"careerpath/internal/infrastructure/llm"
)

type RoadmapResult struct {
	Stages   []roadmap.Stage
	Summary  roadmap.Summary
	Fallback bool
}

type RoadmapGenerator struct {
	llm     llm.Client
	timeout time.Duration
	logger  *log.Logger
}

func NewRoadmapGenerator(client llm.Client, timeout time.Duration, logger *log.Logger) *RoadmapGenerator {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &RoadmapGenerator{llm: client, timeout: timeout, logger: logger}
}

type rawRoadmap struct {
	Roadmap []roadmap.RawStage `json:"roadmap"`
	Summary struct {
		EstimatedTimeline any `json:"estimatedTimeline"`
	} `json:"summary"`
}

// Generate never fails. When the model call or parsing fails the fixed
// fallback roadmap is returned with Fallback set.
func (g *RoadmapGenerator) Generate(ctx context.Context, req roadmap.Request) RoadmapResult {
	stages, timeline, err := g.generate(ctx, req)
	if err != nil {
		if g != nil && g.logger != nil {
			g.logger.Printf("[Roadmap] generation failed, using fallback role=%q level=%q err=%v", req.TargetRole, req.ExperienceLevel, err)
		}
		return RoadmapResult{
			Stages:   roadmap.FallbackRoadmap(),
			Summary:  roadmap.NewSummary(req.ExperienceLevel, req.TargetRole, roadmap.DefaultEstimatedTimeline),
			Fallback: true,
		}
	}

	return RoadmapResult{
		Stages:  stages,
		Summary: roadmap.NewSummary(req.ExperienceLevel, req.TargetRole, timeline),
	}
}

func (g *RoadmapGenerator) generate(ctx context.Context, req roadmap.Request) ([]roadmap.Stage, string, error) {
	if g == nil || g.llm == nil {
		return nil, "", fmt.Errorf("no llm client")
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	system, user := roadmapPrompts(req)
	text, err := g.llm.Generate(ctx, system, user)
	if err != nil {
		return nil, "", err
	}

	return ParseRoadmap(text)
}

// ParseRoadmap decodes model output into normalized stages and the
// estimated timeline, if the model gave one.
func ParseRoadmap(text string) ([]roadmap.Stage, string, error) {
	body := []byte(llm.StripCodeFence(text))
	if err := validateRoadmapShape(body); err != nil {
		return nil, "", err
	}

	var raw rawRoadmap
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, "", err
	}

	timeline, _ := raw.Summary.EstimatedTimeline.(string)
	return roadmap.NormalizeStages(raw.Roadmap), timeline, nil
}
