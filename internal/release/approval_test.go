package release

import (
	"context"
	"testing"

	"github.com/google/go-github/v57/github"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

func TestPostComment(t *testing.T) {
	api := &fakeAPI{}
	svc := NewService(api, Options{}, zaptest.NewLogger(t))

	res := svc.PostComment(context.Background(), 42, "shop", "acme", "hi")
	assert.True(t, res.OK)
	assert.Equal(t, "Comment posted successfully", res.Message)
	assert.Equal(t, []string{"hi"}, api.comments)
}

func TestPostCommentFailureIsAbsorbed(t *testing.T) {
	api := &fakeAPI{commentErr: errUpstream}
	svc := NewService(api, Options{}, zaptest.NewLogger(t))

	res := svc.PostComment(context.Background(), 42, "shop", "acme", "hi")
	assert.False(t, res.OK)
	assert.Equal(t, "Failed to post comment on pull request: upstream unavailable", res.Message)
}

func TestApprovePullRequest(t *testing.T) {
	api := &fakeAPI{}
	svc := NewService(api, Options{}, zaptest.NewLogger(t))

	res := svc.ApprovePullRequest(context.Background(), 42, "shop", "acme", "PROJ-1", "Done")
	assert.True(t, res.OK)
	assert.Equal(t, "Pull request successfully approved", res.Message)
	assert.Equal(t, []string{"Ticket PROJ-1 has been moved to Done."}, api.comments)
	assert.Equal(t, []int{42}, api.approvals)
}

func TestApprovePullRequestCommentFailureDoesNotBlock(t *testing.T) {
	api := &fakeAPI{commentErr: errUpstream}
	svc := NewService(api, Options{}, zaptest.NewLogger(t))

	res := svc.ApprovePullRequest(context.Background(), 42, "shop", "acme", "PROJ-1", "Done")
	assert.True(t, res.OK)
	assert.Equal(t, []int{42}, api.approvals)
}

func TestApprovePullRequestReviewFailure(t *testing.T) {
	api := &fakeAPI{approveErr: errUpstream}
	svc := NewService(api, Options{}, zaptest.NewLogger(t))

	res := svc.ApprovePullRequest(context.Background(), 42, "shop", "acme", "PROJ-1", "Done")
	assert.False(t, res.OK)
	assert.Equal(t, "Failed to approve pull request: upstream unavailable", res.Message)
}

func TestHasPullRequestBeenApproved(t *testing.T) {
	tests := []struct {
		name    string
		reviews []*github.PullRequestReview
		err     error
		ok      bool
		message string
	}{
		{
			name:    "approved review present",
			reviews: []*github.PullRequestReview{review("COMMENTED"), review("APPROVED")},
			ok:      true,
			message: "pull request has been approved",
		},
		{
			name:    "only change requests",
			reviews: []*github.PullRequestReview{review("CHANGES_REQUESTED")},
			message: "pull request has not been approved",
		},
		{
			name:    "no reviews",
			message: "pull request has not been approved",
		},
		{
			name:    "lookup error",
			err:     errUpstream,
			message: "Failed to check pull request approval: upstream unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{reviews: tt.reviews, reviewsErr: tt.err}
			svc := NewService(api, Options{}, zaptest.NewLogger(t))

			res := svc.HasPullRequestBeenApproved(context.Background(), 42, "shop", "acme")
			assert.Equal(t, tt.ok, res.OK)
			assert.Equal(t, tt.message, res.Message)
		})
	}
}
