package release

import (
	"context"
	"fmt"

	"github.com/google/go-github/v57/github"
	"go.uber.org/zap"
)

const reviewStateApproved = "APPROVED"

// PostComment posts text on the pull request conversation. Failures are
// reported in the result, never as an error.
func (s *Service) PostComment(ctx context.Context, prNumber int, repoName, repoOwner, text string) Result[*github.IssueComment] {
	comment, err := s.api.CreateIssueComment(ctx, repoOwner, repoName, prNumber, text)
	if err != nil {
		s.logger.Warn("failed to post comment",
			zap.Int("pr_number", prNumber),
			zap.Error(err),
		)
		return Fail[*github.IssueComment](fmt.Sprintf("Failed to post comment on pull request: %v", err))
	}
	return Succeed("Comment posted successfully", comment)
}

// ApprovePullRequest comments with the new ticket status and then submits an
// approving review. A failed comment does not prevent the approval.
func (s *Service) ApprovePullRequest(ctx context.Context, prNumber int, repoName, repoOwner, ticketKey, ticketStatus string) Result[*github.PullRequestReview] {
	comment := fmt.Sprintf("Ticket %s has been moved to %s.", ticketKey, ticketStatus)
	if res := s.PostComment(ctx, prNumber, repoName, repoOwner, comment); !res.OK {
		s.logger.Warn("approving without status comment",
			zap.String("ticket_key", ticketKey),
			zap.Int("pr_number", prNumber),
			zap.String("reason", res.Message),
		)
	}

	review, err := s.api.ApprovePullRequest(ctx, repoOwner, repoName, prNumber)
	if err != nil {
		s.logger.Error("failed to approve pull request",
			zap.String("ticket_key", ticketKey),
			zap.Int("pr_number", prNumber),
			zap.Error(err),
		)
		return Fail[*github.PullRequestReview](fmt.Sprintf("Failed to approve pull request: %v", err))
	}

	return Succeed("Pull request successfully approved", review)
}

// HasPullRequestBeenApproved reports whether at least one review on the pull
// request is in the APPROVED state. Lookup failures are returned as a failed
// result.
func (s *Service) HasPullRequestBeenApproved(ctx context.Context, prNumber int, repoName, repoOwner string) Result[struct{}] {
	reviews, err := s.api.ListReviews(ctx, repoOwner, repoName, prNumber)
	if err != nil {
		s.logger.Warn("failed to list reviews",
			zap.Int("pr_number", prNumber),
			zap.Error(err),
		)
		return Fail[struct{}](fmt.Sprintf("Failed to check pull request approval: %v", err))
	}

	for _, review := range reviews {
		if review.GetState() == reviewStateApproved {
			return Succeed("pull request has been approved", struct{}{})
		}
	}

	return Fail[struct{}]("pull request has not been approved")
}
