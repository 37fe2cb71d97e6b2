package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/surveyops/formpull/internal/config"
	"github.com/surveyops/formpull/internal/pull"
	"github.com/surveyops/formpull/internal/typeform"
)

var (
	flagPullForms     bool
	flagPullResponses bool
)

var rootCmd = &cobra.Command{
	Use:   "formpull",
	Short: "Pull Typeform forms and sanitized responses to local JSON files",
	Long: `formpull pulls survey form definitions and their responses from the
Typeform API and stores them as local JSON files. Response pulls replace
every email answer with the owning response's id before anything touches
disk, so no respondent PII is ever persisted.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().BoolVar(&flagPullForms, "pull-forms", false, "pull form definitions")
	rootCmd.Flags().BoolVar(&flagPullResponses, "pull-responses", false, "pull and sanitize form responses")
	rootCmd.MarkFlagsMutuallyExclusive("pull-forms", "pull-responses")
}

func run(cmd *cobra.Command, args []string) error {
	if !flagPullForms && !flagPullResponses {
		fmt.Println("No action specified. Use --help for more information.")
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	client := typeform.NewClient(cfg.BaseURL, cfg.APIKey)
	puller := pull.New(client, cfg.Titles, cfg.FormsDir, cfg.DataDir)

	if flagPullForms {
		return puller.PullForms(cmd.Context())
	}
	return puller.PullResponses(cmd.Context())
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))

	if err := rootCmd.Execute(); err != nil {
		slog.Error("run failed", "err", err)
		os.Exit(1)
	}
}
