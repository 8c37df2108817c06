package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"careerpath/internal/domain/roadmap"
)

type MilestoneToggled struct {
	Milestone           string   `json:"milestone"`
	Completed           bool     `json:"completed"`
	CompletedMilestones []string `json:"completedMilestones"`
	Completion          int      `json:"completion"`
}

type ProgressUsecase interface {
	Get(ctx context.Context, userID string) (roadmap.Document, error)
	SetMilestone(ctx context.Context, userID, milestone string, completed bool) (roadmap.Document, error)
}

type Progress struct {
	repo     roadmap.Repository
	notifier Notifier
	logger   *log.Logger
	now      func() time.Time
}

func NewProgressUsecase(repo roadmap.Repository, notifier Notifier, logger *log.Logger) *Progress {
	return &Progress{repo: repo, notifier: notifier, logger: logger, now: time.Now}
}

func (u *Progress) Get(ctx context.Context, userID string) (roadmap.Document, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return roadmap.Document{}, ErrInvalidInput
	}

	doc, err := u.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, roadmap.ErrNotFound) {
			return roadmap.Document{}, ErrRoadmapNotFound
		}
		return roadmap.Document{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	doc.Summary.Completion = doc.Completion()
	return doc, nil
}

func (u *Progress) SetMilestone(ctx context.Context, userID, milestone string, completed bool) (roadmap.Document, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" || strings.TrimSpace(milestone) == "" {
		return roadmap.Document{}, ErrInvalidInput
	}

	doc, err := u.repo.Update(ctx, userID, func(d *roadmap.Document) error {
		return d.SetMilestone(milestone, completed, u.now())
	})
	switch {
	case err == nil:
	case errors.Is(err, roadmap.ErrNotFound):
		return roadmap.Document{}, ErrRoadmapNotFound
	case errors.Is(err, roadmap.ErrUnknownMilestone):
		return roadmap.Document{}, ErrUnknownMilestone
	default:
		if u.logger != nil {
			u.logger.Printf("[Progress] update failed user=%s err=%v", userID, err)
		}
		return roadmap.Document{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if u.notifier != nil {
		u.notifier.Notify(userID, EventMilestoneToggled, MilestoneToggled{
			Milestone:           milestone,
			Completed:           completed,
			CompletedMilestones: doc.CompletedMilestones,
			Completion:          doc.Summary.Completion,
		})
	}
	return doc, nil
}
