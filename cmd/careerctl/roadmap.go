package main

import (
	"context"
	"encoding/json"

	dbpostgres "careerpath/internal/database/postgres"
	"careerpath/internal/repository"

	"github.com/spf13/cobra"
)

var roadmapCmd = &cobra.Command{
	Use:   "roadmap",
	Short: "Inspect stored roadmaps",
}

var roadmapShowCmd = &cobra.Command{
	Use:   "show <user-id>",
	Short: "Print the stored roadmap document for a user",
	Args:  cobra.ExactArgs(1),
	RunE:  runRoadmapShow,
}

func init() {
	roadmapCmd.AddCommand(roadmapShowCmd)
	rootCmd.AddCommand(roadmapCmd)
}

func runRoadmapShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	doc, err := repository.NewPostgresRoadmapRepository(db).Get(ctx, args[0])
	if err != nil {
		return err
	}
	doc.Summary.Completion = doc.Completion()

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
