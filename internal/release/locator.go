package release

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ShopLab-Team/jira-github-webhook/internal/github"
)

// FindPullRequest returns the number of the first open pull request whose
// title matches ticketKey. The matched key must also equal ticketKey exactly,
// so a title written in a different case than the ticket is not selected.
func (s *Service) FindPullRequest(ctx context.Context, ticketKey, repoName, repoOwner string) (Result[int], error) {
	prs, err := s.api.ListOpenPullRequests(ctx, repoOwner, repoName)
	if err != nil {
		return Result[int]{}, fmt.Errorf("lookup %s: %w", ticketKey, err)
	}

	for _, pr := range prs {
		match := github.IsTicketInPRTitle(pr.Title, ticketKey)
		if !match.Success || match.Data != ticketKey {
			s.logger.Debug("pull request skipped",
				zap.Int("pr_number", pr.Number),
				zap.String("reason", match.Message),
			)
			continue
		}

		s.logger.Info("found pull request",
			zap.String("ticket_key", ticketKey),
			zap.Int("pr_number", pr.Number),
		)
		return Succeed(fmt.Sprintf("Pull request found for ticket key %s", ticketKey), pr.Number), nil
	}

	s.logger.Info("no pull request found",
		zap.String("ticket_key", ticketKey),
		zap.String("repo_owner", repoOwner),
		zap.String("repo_name", repoName),
		zap.Int("open_pull_requests", len(prs)),
	)
	return Fail[int](fmt.Sprintf("No pull request found for ticket key %s", ticketKey)), nil
}
