package review

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Deymos01/pr-auto-reviewer/internal/domains"
	"github.com/rs/xid"
	"github.com/samber/lo"
)

const Instruction = "Review the following diff and identify issues:\n"

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=HostClient
type HostClient interface {
	ListOpenPullRequests(ctx context.Context, workspace, repoSlug string) ([]domains.PullRequest, error)
	GetDiff(ctx context.Context, workspace, repoSlug string, prID int64) (string, error)
	CreateComment(ctx context.Context, workspace, repoSlug string, prID int64, text string) error
	UpdatePullRequest(ctx context.Context, workspace, repoSlug string, prID int64, upd domains.PullRequestUpdate) error
}

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=Assistant
type Assistant interface {
	Review(ctx context.Context, prompt string) (string, error)
}

type Service struct {
	log       *slog.Logger
	host      HostClient
	assistant Assistant
}

func New(log *slog.Logger, host HostClient, assistant Assistant) *Service {
	return &Service{log: log, host: host, assistant: assistant}
}

// RunReview reviews every open pull request of the repository one after another.
// The first failure aborts the run and is returned as is.
func (s *Service) RunReview(ctx context.Context, workspace, repoSlug string) error {
	const op = "usecase.review.RunReview"

	log := s.log.With(
		slog.String("op", op),
		slog.String("run_id", xid.New().String()),
		slog.String("workspace", workspace),
		slog.String("repo_slug", repoSlug),
	)

	prs, err := s.host.ListOpenPullRequests(ctx, workspace, repoSlug)
	if err != nil {
		log.Error("failed to list open pull requests", slog.String("err", err.Error()))
		return err
	}

	if len(prs) == 0 {
		log.Info("no open pull requests")
		return nil
	}

	log.Info("reviewing open pull requests", slog.Int("count", len(prs)))

	for _, pr := range prs {
		if err := s.reviewPullRequest(ctx, log, workspace, repoSlug, pr); err != nil {
			return err
		}
	}

	log.Info("review run finished")
	return nil
}

func (s *Service) reviewPullRequest(
	ctx context.Context,
	log *slog.Logger,
	workspace, repoSlug string,
	pr domains.PullRequest,
) error {
	log = log.With(slog.Int64("pr_id", pr.ID))

	diff, err := s.host.GetDiff(ctx, workspace, repoSlug, pr.ID)
	if err != nil {
		log.Error("failed to get diff", slog.String("err", err.Error()))
		return err
	}
	log.Debug("diff fetched", slog.Int("size_bytes", len(diff)))

	answer, err := s.assistant.Review(ctx, BuildPrompt(diff))
	if err != nil {
		log.Error("failed to review diff", slog.String("err", err.Error()))
		return err
	}

	issues := SplitIssues(answer)
	for _, issue := range issues {
		if err := s.host.CreateComment(ctx, workspace, repoSlug, pr.ID, string(issue)); err != nil {
			log.Error("failed to create comment", slog.String("err", err.Error()))
			return err
		}
	}

	// Written back unchanged. The state is not re-checked since listing.
	upd := domains.PullRequestUpdate{
		State:       pr.State,
		Title:       pr.Title,
		Description: pr.Description,
	}
	if err := s.host.UpdatePullRequest(ctx, workspace, repoSlug, pr.ID, upd); err != nil {
		log.Error("failed to update pull request", slog.String("err", err.Error()))
		return err
	}

	log.Info("pull request reviewed", slog.Int("comments", len(issues)))
	return nil
}

// BuildPrompt appends the raw diff to the fixed instruction. Oversized diffs are not truncated.
func BuildPrompt(diff string) string {
	return Instruction + diff
}

// SplitIssues turns the assistant's answer into one issue per non-blank line.
// Order and duplicates are kept.
func SplitIssues(answer string) []domains.ReviewIssue {
	lines := lo.Filter(strings.Split(answer, "\n"), func(line string, _ int) bool {
		return strings.TrimSpace(line) != ""
	})

	return lo.Map(lines, func(line string, _ int) domains.ReviewIssue {
		return domains.ReviewIssue(line)
	})
}
