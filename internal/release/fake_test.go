package release

import (
	"context"
	"errors"

	"github.com/google/go-github/v57/github"

	"github.com/ShopLab-Team/jira-github-webhook/pkg/types"
)

var errUpstream = errors.New("upstream unavailable")

type fakeAPI struct {
	prs     []types.PullRequestSummary
	listErr error

	commentErr error
	comments   []string

	approveErr error
	approvals  []int

	reviews    []*github.PullRequestReview
	reviewsErr error

	pr     *github.PullRequest
	getErr error

	merge    *github.PullRequestMergeResult
	mergeErr error
	merged   []int
}

func (f *fakeAPI) ListOpenPullRequests(_ context.Context, _, _ string) ([]types.PullRequestSummary, error) {
	return f.prs, f.listErr
}

func (f *fakeAPI) CreateIssueComment(_ context.Context, _, _ string, _ int, body string) (*github.IssueComment, error) {
	if f.commentErr != nil {
		return nil, f.commentErr
	}
	f.comments = append(f.comments, body)
	return &github.IssueComment{Body: github.String(body)}, nil
}

func (f *fakeAPI) ApprovePullRequest(_ context.Context, _, _ string, number int) (*github.PullRequestReview, error) {
	if f.approveErr != nil {
		return nil, f.approveErr
	}
	f.approvals = append(f.approvals, number)
	return &github.PullRequestReview{State: github.String("APPROVED")}, nil
}

func (f *fakeAPI) ListReviews(_ context.Context, _, _ string, _ int) ([]*github.PullRequestReview, error) {
	return f.reviews, f.reviewsErr
}

func (f *fakeAPI) GetPullRequest(_ context.Context, _, _ string, _ int) (*github.PullRequest, error) {
	return f.pr, f.getErr
}

func (f *fakeAPI) SquashMerge(_ context.Context, _, _ string, number int) (*github.PullRequestMergeResult, error) {
	if f.mergeErr != nil {
		return nil, f.mergeErr
	}
	f.merged = append(f.merged, number)
	return f.merge, nil
}

func openCleanPR() *github.PullRequest {
	return &github.PullRequest{
		Number:         github.Int(42),
		State:          github.String("open"),
		MergeableState: github.String("clean"),
	}
}

func review(state string) *github.PullRequestReview {
	return &github.PullRequestReview{State: github.String(state)}
}
