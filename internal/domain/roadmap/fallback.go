package roadmap

// FallbackRoadmap is served whenever roadmap generation fails. Every stage
// already carries four milestones.
func FallbackRoadmap() []Stage {
	return []Stage{
		{
			Name:        "Initial Learning Path",
			Description: "Start your career development journey",
			Timeframe:   "0-6 months",
			Skills:      []string{"Core fundamentals"},
			Milestones: []string{
				"Complete introductory courses",
				"Build first project",
				"Master basic concepts",
				"Complete skill assessment",
			},
		},
		{
			Name:        "Intermediate Development",
			Description: "Build deeper expertise",
			Timeframe:   "6-12 months",
			Skills:      []string{"Advanced techniques"},
			Milestones: []string{
				"Complete intermediate courses",
				"Build portfolio project",
				"Contribute to open source",
				"Attend industry events",
			},
		},
	}
}
