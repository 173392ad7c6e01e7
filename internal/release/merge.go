package release

import (
	"context"
	"fmt"

	"github.com/google/go-github/v57/github"
	"go.uber.org/zap"
)

const (
	mergeableStateClean = "clean"
	stateOpen           = "open"

	notMergeableMessage = "This pull request cannot be merged because it does not meet the requirements."
)

// CanMergePullRequest checks, in order, that GitHub reports the pull request
// as cleanly mergeable, that it is open, and that it has an approving review.
// The first failing check decides the message.
func (s *Service) CanMergePullRequest(ctx context.Context, prNumber int, repoName, repoOwner string) (MergeDecision, error) {
	pr, err := s.api.GetPullRequest(ctx, repoOwner, repoName, prNumber)
	if err != nil {
		return MergeDecision{}, fmt.Errorf("failed to check pull request: %w", err)
	}

	if pr.GetMergeableState() != mergeableStateClean {
		return MergeDecision{Message: notMergeableMessage}, nil
	}

	if pr.GetState() != stateOpen {
		return MergeDecision{Message: "Pull Request is not OPEN and cannot be merged."}, nil
	}

	approval := s.HasPullRequestBeenApproved(ctx, prNumber, repoName, repoOwner)
	if !approval.OK && !s.opts.LegacyApprovalCheck {
		return MergeDecision{Message: "Pull request has not been approved yet."}, nil
	}

	return MergeDecision{Mergeable: true, Message: "pull request is ready to merge"}, nil
}

// MergePullRequest squash-merges the pull request when CanMergePullRequest
// allows it. Otherwise it explains the refusal in a comment and returns a
// failed result.
func (s *Service) MergePullRequest(ctx context.Context, prNumber int, repoName, repoOwner string) (Result[*github.PullRequestMergeResult], error) {
	decision, err := s.CanMergePullRequest(ctx, prNumber, repoName, repoOwner)
	if err != nil {
		return Result[*github.PullRequestMergeResult]{}, err
	}

	if !decision.Mergeable {
		s.logger.Info("pull request not mergeable",
			zap.Int("pr_number", prNumber),
			zap.String("reason", decision.Message),
		)
		s.PostComment(ctx, prNumber, repoName, repoOwner, notMergeableMessage)
		return Fail[*github.PullRequestMergeResult](decision.Message), nil
	}

	merge, err := s.api.SquashMerge(ctx, repoOwner, repoName, prNumber)
	if err != nil {
		return Result[*github.PullRequestMergeResult]{}, fmt.Errorf("squash merge #%d: %w", prNumber, err)
	}

	if !merge.GetMerged() {
		s.logger.Warn("merge was not performed",
			zap.Int("pr_number", prNumber),
			zap.String("upstream_message", merge.GetMessage()),
		)
		return FailWith("Pull Request could not merge for unknown reason.", merge), nil
	}

	s.logger.Info("pull request merged",
		zap.Int("pr_number", prNumber),
		zap.String("sha", merge.GetSHA()),
	)
	return Succeed("Pull request successfully merged", merge), nil
}
