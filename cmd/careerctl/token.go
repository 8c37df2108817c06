package main

import (
	"fmt"

	"careerpath/internal/pkg/jwt"

	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage access tokens",
}

var tokenIssueCmd = &cobra.Command{
	Use:   "issue <user-id>",
	Short: "Issue an access token for the progress and websocket routes",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenIssue,
}

func init() {
	tokenCmd.AddCommand(tokenIssueCmd)
	rootCmd.AddCommand(tokenCmd)
}

func runTokenIssue(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	tok, err := jwt.NewHMACService(cfg.JWT.Secret, cfg.JWT.ExpiresIn).GenerateAccessToken(args[0])
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), tok)
	return nil
}
