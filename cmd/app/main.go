package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Deymos01/pr-auto-reviewer/internal/assistant"
	"github.com/Deymos01/pr-auto-reviewer/internal/bitbucket"
	"github.com/Deymos01/pr-auto-reviewer/internal/config"
	"github.com/Deymos01/pr-auto-reviewer/internal/usecase/review"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.Load()

	log := setupLogger(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	code := run(ctx, cfg, log, os.Args[1:])
	stop()
	os.Exit(code)
}

// run executes one review pass and returns the process exit code.
func run(ctx context.Context, cfg *config.Config, log *slog.Logger, args []string) int {
	cmd := newRootCmd(cfg, log)
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(ctx); err != nil {
		log.Error("review run failed", slog.String("err", err.Error()))
		return 1
	}

	return 0
}

func newRootCmd(cfg *config.Config, log *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:           "pr-auto-reviewer",
		Short:         "Review open Bitbucket pull requests with an LLM and post the findings as comments",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			log.Info("starting review run",
				slog.String("env", cfg.Env),
				slog.String("workspace", cfg.BitbucketConfig.Workspace),
				slog.String("repo_slug", cfg.BitbucketConfig.RepoSlug),
				slog.String("model", cfg.AssistantConfig.Model),
			)

			host := bitbucket.New(cfg.BitbucketConfig)

			llm := assistant.New(cfg.AssistantConfig)

			svc := review.New(log, host, llm)

			return svc.RunReview(ctx, cfg.BitbucketConfig.Workspace, cfg.BitbucketConfig.RepoSlug)
		},
	}
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelDebug, TimeFormat: time.Kitchen}))
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		log = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}
