package release

import (
	"context"

	"github.com/google/go-github/v57/github"
	"go.uber.org/zap"

	"github.com/ShopLab-Team/jira-github-webhook/pkg/types"
)

// PullRequestAPI is the subset of the GitHub API the release flow needs
type PullRequestAPI interface {
	ListOpenPullRequests(ctx context.Context, owner, repo string) ([]types.PullRequestSummary, error)
	CreateIssueComment(ctx context.Context, owner, repo string, number int, body string) (*github.IssueComment, error)
	ApprovePullRequest(ctx context.Context, owner, repo string, number int) (*github.PullRequestReview, error)
	ListReviews(ctx context.Context, owner, repo string, number int) ([]*github.PullRequestReview, error)
	GetPullRequest(ctx context.Context, owner, repo string, number int) (*github.PullRequest, error)
	SquashMerge(ctx context.Context, owner, repo string, number int) (*github.PullRequestMergeResult, error)
}

// Options tunes the release flow
type Options struct {
	// LegacyApprovalCheck makes CanMergePullRequest skip the result of the
	// approval lookup, so a failed lookup still counts as approved.
	LegacyApprovalCheck bool
}

// Service finds, approves and merges the pull request of a ticket
type Service struct {
	api    PullRequestAPI
	logger *zap.Logger
	opts   Options
}

// NewService creates a new release service
func NewService(api PullRequestAPI, opts Options, logger *zap.Logger) *Service {
	return &Service{
		api:    api,
		logger: logger,
		opts:   opts,
	}
}
