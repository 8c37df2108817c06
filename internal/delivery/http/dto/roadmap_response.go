package dto

import "careerpath/internal/domain/roadmap"

type RoadmapResponse struct {
	Success      bool                 `json:"success"`
	Roadmap      []roadmap.Stage      `json:"roadmap"`
	Summary      roadmap.Summary      `json:"summary"`
	RelevantJobs []roadmap.JobListing `json:"relevantJobs"`
	Completion   int                  `json:"completion"`
}

func NewRoadmapResponse(doc roadmap.Document) RoadmapResponse {
	return RoadmapResponse{
		Success:      true,
		Roadmap:      doc.Roadmap,
		Summary:      doc.Summary,
		RelevantJobs: doc.RelevantJobs,
		Completion:   doc.Summary.Completion,
	}
}

type MilestoneResponse struct {
	Success             bool     `json:"success"`
	CompletedMilestones []string `json:"completedMilestones"`
	Completion          int      `json:"completion"`
}

type ExperienceLevelsResponse struct {
	Levels []roadmap.LevelInfo `json:"levels"`
}

type HealthChecks struct {
	Database string `json:"database"`
	Cache    string `json:"cache"`
}

type HealthResponse struct {
	Status      string       `json:"status"`
	Timestamp   string       `json:"timestamp"`
	Environment string       `json:"environment"`
	Region      string       `json:"region"`
	Checks      HealthChecks `json:"checks"`
}

type IndexResponse struct {
	Service   string   `json:"service"`
	Status    string   `json:"status"`
	Endpoints []string `json:"endpoints"`
}
