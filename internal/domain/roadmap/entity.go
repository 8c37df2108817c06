package roadmap

import (
	"errors"
	"math"
	"slices"
	"time"
)

var ErrUnknownMilestone = errors.New("milestone not in roadmap")

type Stage struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Timeframe   string   `json:"timeframe"`
	Skills      []string `json:"skills"`
	Milestones  []string `json:"milestones"`
}

type Summary struct {
	CurrentLevel      Level  `json:"currentLevel"`
	TargetRole        string `json:"targetRole"`
	StartingPoint     string `json:"startingPoint"`
	NextLevel         string `json:"nextLevel"`
	EstimatedTimeline string `json:"estimatedTimeline"`
	Completion        int    `json:"completion"`
	LastUpdated       string `json:"lastUpdated,omitempty"`
}

func NewSummary(level Level, role, estimatedTimeline string) Summary {
	if estimatedTimeline == "" {
		estimatedTimeline = DefaultEstimatedTimeline
	}
	return Summary{
		CurrentLevel:      level,
		TargetRole:        role,
		StartingPoint:     level.Info().Label,
		NextLevel:         level.NextLabel(),
		EstimatedTimeline: estimatedTimeline,
	}
}

type JobListing struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Salary      string `json:"salary"`
	URL         string `json:"url"`
	SourceQuery string `json:"sourceQuery"`
}

type Request struct {
	UserID          string
	TargetRole      string
	ExperienceLevel Level
	Aspirations     string
	Objectives      string
}

// Document is the persisted roadmap, one per user.
type Document struct {
	UserID              string       `json:"userId"`
	Roadmap             []Stage      `json:"roadmap"`
	Summary             Summary      `json:"summary"`
	RelevantJobs        []JobListing `json:"relevantJobs"`
	AlternativeTitles   []string     `json:"alternativeTitles"`
	CompletedMilestones []string     `json:"completedMilestones"`
}

// NewDocument builds a freshly generated document. Progress always starts
// from zero.
func NewDocument(userID string, stages []Stage, summary Summary, jobs []JobListing, altTitles []string, now time.Time) Document {
	summary.Completion = 0
	summary.LastUpdated = now.UTC().Format(time.RFC3339)
	if jobs == nil {
		jobs = []JobListing{}
	}
	if altTitles == nil {
		altTitles = []string{}
	}
	return Document{
		UserID:              userID,
		Roadmap:             stages,
		Summary:             summary,
		RelevantJobs:        jobs,
		AlternativeTitles:   altTitles,
		CompletedMilestones: []string{},
	}
}

func (d Document) TotalMilestones() int {
	n := 0
	for _, s := range d.Roadmap {
		n += len(s.Milestones)
	}
	return n
}

func (d Document) hasMilestone(m string) bool {
	for _, s := range d.Roadmap {
		if slices.Contains(s.Milestones, m) {
			return true
		}
	}
	return false
}

// Completion is the rounded share of roadmap milestones marked complete.
func (d Document) Completion() int {
	total := d.TotalMilestones()
	if total == 0 {
		return 0
	}
	done := 0
	for _, m := range d.CompletedMilestones {
		if d.hasMilestone(m) {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(total) * 100))
}

// SetMilestone adds or removes m from the completed set and refreshes the
// summary completion.
func (d *Document) SetMilestone(m string, completed bool, now time.Time) error {
	if !d.hasMilestone(m) {
		return ErrUnknownMilestone
	}

	idx := slices.Index(d.CompletedMilestones, m)
	switch {
	case completed && idx < 0:
		d.CompletedMilestones = append(d.CompletedMilestones, m)
	case !completed && idx >= 0:
		d.CompletedMilestones = slices.DeleteFunc(d.CompletedMilestones, func(s string) bool { return s == m })
	}
	if d.CompletedMilestones == nil {
		d.CompletedMilestones = []string{}
	}

	d.Summary.Completion = d.Completion()
	d.Summary.LastUpdated = now.UTC().Format(time.RFC3339)
	return nil
}
