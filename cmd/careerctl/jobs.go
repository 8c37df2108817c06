package main

import (
	"context"
	"encoding/json"

	"careerpath/internal/infrastructure/jobsearch"
	"careerpath/internal/service"

	"github.com/spf13/cobra"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Query the job board",
}

var jobsSearchCmd = &cobra.Command{
	Use:   "search <title>",
	Short: "Search jobs for a title, falling back to alternative titles",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobsSearch,
}

var jobsAltTitles []string

func init() {
	jobsSearchCmd.Flags().StringSliceVar(&jobsAltTitles, "alt", nil, "Alternative titles tried in order when the title has no results")

	jobsCmd.AddCommand(jobsSearchCmd)
	rootCmd.AddCommand(jobsCmd)
}

func runJobsSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	searcher := service.NewJobSearcher(jobsearch.NewAdzunaClient(cfg.JobSearch, nil, logger), nil, logger)
	jobs := searcher.SearchWithFallback(ctx, service.Candidates(args[0], jobsAltTitles))

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(jobs)
}
