package github

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/go-github/v57/github"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/ShopLab-Team/jira-github-webhook/pkg/types"
)

const (
	reviewEventApprove = "APPROVE"
	mergeMethodSquash  = "squash"
)

// Options configures a Client
type Options struct {
	Token      string
	APIURL     string
	BaseBranch string
	PageSize   int
	MaxPages   int
}

// Client wraps the GitHub REST API calls used by the webhook
type Client struct {
	apiClient  *github.Client
	logger     *zap.Logger
	baseBranch string
	pageSize   int
	maxPages   int
}

// NewClient creates a new GitHub client authenticated with a static token
func NewClient(opts Options, logger *zap.Logger) (*Client, error) {
	ctx := context.Background()
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: opts.Token},
	)
	tc := oauth2.NewClient(ctx, ts)

	apiClient := github.NewClient(tc)
	if opts.APIURL != "" {
		baseURL, err := url.Parse(strings.TrimSuffix(opts.APIURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL: %w", err)
		}
		apiClient.BaseURL = baseURL
	}

	if opts.BaseBranch == "" {
		opts.BaseBranch = "master"
	}
	if opts.PageSize <= 0 {
		opts.PageSize = 100
	}
	if opts.MaxPages <= 0 {
		opts.MaxPages = 1
	}

	return &Client{
		apiClient:  apiClient,
		logger:     logger,
		baseBranch: opts.BaseBranch,
		pageSize:   opts.PageSize,
		maxPages:   opts.MaxPages,
	}, nil
}

// ListOpenPullRequests lists open pull requests targeting the configured base
// branch, in the order GitHub returns them. At most maxPages pages are read.
func (c *Client) ListOpenPullRequests(ctx context.Context, owner, repo string) ([]types.PullRequestSummary, error) {
	opts := &github.PullRequestListOptions{
		State:       "open",
		Base:        c.baseBranch,
		ListOptions: github.ListOptions{PerPage: c.pageSize},
	}

	var summaries []types.PullRequestSummary
	for page := 0; page < c.maxPages; page++ {
		prs, resp, err := c.apiClient.PullRequests.List(ctx, owner, repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list pull requests: %w", err)
		}

		for _, pr := range prs {
			summaries = append(summaries, types.PullRequestSummary{
				Number: pr.GetNumber(),
				Title:  pr.GetTitle(),
			})
		}

		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	c.logger.Debug("listed open pull requests",
		zap.String("owner", owner),
		zap.String("repo", repo),
		zap.String("base", c.baseBranch),
		zap.Int("count", len(summaries)),
	)

	return summaries, nil
}

// CreateIssueComment posts a comment on the conversation of a pull request
func (c *Client) CreateIssueComment(ctx context.Context, owner, repo string, number int, body string) (*github.IssueComment, error) {
	comment, _, err := c.apiClient.Issues.CreateComment(ctx, owner, repo, number, &github.IssueComment{
		Body: github.String(body),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	c.logger.Info("commented on pull request",
		zap.String("owner", owner),
		zap.String("repo", repo),
		zap.Int("pr_number", number),
	)

	return comment, nil
}

// ApprovePullRequest submits an APPROVE review
func (c *Client) ApprovePullRequest(ctx context.Context, owner, repo string, number int) (*github.PullRequestReview, error) {
	review, _, err := c.apiClient.PullRequests.CreateReview(ctx, owner, repo, number, &github.PullRequestReviewRequest{
		Event: github.String(reviewEventApprove),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	c.logger.Info("approved pull request",
		zap.String("owner", owner),
		zap.String("repo", repo),
		zap.Int("pr_number", number),
	)

	return review, nil
}

// ListReviews lists the reviews submitted on a pull request
func (c *Client) ListReviews(ctx context.Context, owner, repo string, number int) ([]*github.PullRequestReview, error) {
	reviews, _, err := c.apiClient.PullRequests.ListReviews(ctx, owner, repo, number, &github.ListOptions{
		PerPage: c.pageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// GetPullRequest fetches a single pull request, including its mergeable state
func (c *Client) GetPullRequest(ctx context.Context, owner, repo string, number int) (*github.PullRequest, error) {
	pr, _, err := c.apiClient.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		return nil, fmt.Errorf("failed to get pull request: %w", err)
	}
	return pr, nil
}

// SquashMerge merges a pull request with the squash method. A response with
// merged=false is returned as is; only transport and API errors fail.
func (c *Client) SquashMerge(ctx context.Context, owner, repo string, number int) (*github.PullRequestMergeResult, error) {
	result, _, err := c.apiClient.PullRequests.Merge(ctx, owner, repo, number, "", &github.PullRequestOptions{
		MergeMethod: mergeMethodSquash,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to merge: %w", err)
	}

	c.logger.Info("merge requested",
		zap.String("owner", owner),
		zap.String("repo", repo),
		zap.Int("pr_number", number),
		zap.Bool("merged", result.GetMerged()),
		zap.String("sha", result.GetSHA()),
	)

	return result, nil
}
