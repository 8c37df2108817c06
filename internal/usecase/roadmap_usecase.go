package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"careerpath/internal/domain/roadmap"
	"careerpath/internal/service"

	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrRoadmapNotFound  = errors.New("roadmap not found")
	ErrUnknownMilestone = errors.New("unknown milestone")
	ErrPersistence      = errors.New("failed to persist roadmap")
)

const (
	EventRoadmapGenerated = "roadmap_generated"
	EventMilestoneToggled = "milestone_toggled"
)

type TitleSource interface {
	Generate(ctx context.Context, role string) []string
}

type RoadmapSource interface {
	Generate(ctx context.Context, req roadmap.Request) service.RoadmapResult
}

type JobFinder interface {
	SearchWithFallback(ctx context.Context, candidates []string) []roadmap.JobListing
}

// Notifier pushes an event to the user's live connections. Delivery is best
// effort.
type Notifier interface {
	Notify(userID, eventType string, payload any)
}

type GenerateRoadmapInput struct {
	UserID          string
	TargetRole      string
	ExperienceLevel string
	Aspirations     string
	Objectives      string
}

type RoadmapUsecase interface {
	Generate(ctx context.Context, in GenerateRoadmapInput) (roadmap.Document, error)
}

type Roadmap struct {
	titles   TitleSource
	roadmaps RoadmapSource
	jobs     JobFinder
	repo     roadmap.Repository
	notifier Notifier
	logger   *log.Logger
	now      func() time.Time
}

func NewRoadmapUsecase(titles TitleSource, roadmaps RoadmapSource, jobs JobFinder, repo roadmap.Repository, notifier Notifier, logger *log.Logger) *Roadmap {
	return &Roadmap{
		titles:   titles,
		roadmaps: roadmaps,
		jobs:     jobs,
		repo:     repo,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Generate builds a new roadmap for the user and replaces any stored one.
// Model and job-search failures are absorbed; only invalid input and
// persistence failures are returned.
func (u *Roadmap) Generate(ctx context.Context, in GenerateRoadmapInput) (roadmap.Document, error) {
	req := roadmap.Request{
		UserID:          strings.TrimSpace(in.UserID),
		TargetRole:      strings.TrimSpace(in.TargetRole),
		ExperienceLevel: roadmap.ResolveLevel(in.ExperienceLevel),
		Aspirations:     in.Aspirations,
		Objectives:      in.Objectives,
	}
	if req.UserID == "" || req.TargetRole == "" {
		return roadmap.Document{}, ErrInvalidInput
	}

	u.logf("[Roadmap] generating user=%s role=%q level=%q", req.UserID, req.TargetRole, req.ExperienceLevel)

	var (
		altTitles []string
		result    service.RoadmapResult
	)
	// Both generators absorb their own failures, so the group only joins.
	var g errgroup.Group
	g.Go(func() error {
		altTitles = u.titles.Generate(ctx, req.TargetRole)
		return nil
	})
	g.Go(func() error {
		result = u.roadmaps.Generate(ctx, req)
		return nil
	})
	_ = g.Wait()

	jobs := u.jobs.SearchWithFallback(ctx, service.Candidates(req.TargetRole, altTitles))

	doc := roadmap.NewDocument(req.UserID, result.Stages, result.Summary, jobs, altTitles, u.now())
	if err := u.repo.Save(ctx, doc); err != nil {
		u.logf("[Roadmap] save failed user=%s err=%v", req.UserID, err)
		return roadmap.Document{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	u.logf("[Roadmap] saved user=%s stages=%d jobs=%d fallback=%t", req.UserID, len(doc.Roadmap), len(doc.RelevantJobs), result.Fallback)

	if u.notifier != nil {
		u.notifier.Notify(req.UserID, EventRoadmapGenerated, doc)
	}
	return doc, nil
}

func (u *Roadmap) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}
