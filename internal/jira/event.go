package jira

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	jira "github.com/andygrunwald/go-jira"
	"go.uber.org/zap"

	"github.com/ShopLab-Team/jira-github-webhook/pkg/types"
)

const (
	githubURLPrefix = "https://github.com/"

	// EventIssueUpdated is the only event that reports a status change
	EventIssueUpdated = "jira:issue_updated"
)

var (
	// ErrNoIssue is returned for events that carry no issue
	ErrNoIssue = errors.New("event has no issue")

	// ErrUnsupportedEvent is returned for events other than EventIssueUpdated
	ErrUnsupportedEvent = errors.New("unsupported jira event")
)

// IssueEvent is the body of a native Jira issue webhook
type IssueEvent struct {
	WebhookEvent string      `json:"webhookEvent"`
	Issue        *jira.Issue `json:"issue"`
}

// Decoder turns native Jira issue events into webhook payloads
type Decoder struct {
	logger          *zap.Logger
	repositoryField string
}

// NewDecoder creates a decoder reading the repository from an issue custom
// field. Jira keys custom fields by ID, so repositoryField must be the field
// ID (for example "customfield_10050"), not its display name. An empty
// repositoryField disables the lookup.
func NewDecoder(repositoryField string, logger *zap.Logger) *Decoder {
	return &Decoder{
		logger:          logger,
		repositoryField: repositoryField,
	}
}

// Decode reads an issue event from r. The repository comes from the issue's
// repository field when present and from fallback otherwise. Missing values
// are left empty for the caller to validate.
func (d *Decoder) Decode(r io.Reader, fallback types.RepositoryInfo) (types.WebhookPayload, error) {
	var event IssueEvent
	if err := json.NewDecoder(r).Decode(&event); err != nil {
		return types.WebhookPayload{}, fmt.Errorf("failed to decode jira event: %w", err)
	}
	if event.WebhookEvent != EventIssueUpdated {
		return types.WebhookPayload{}, fmt.Errorf("%w: %q", ErrUnsupportedEvent, event.WebhookEvent)
	}
	if event.Issue == nil {
		return types.WebhookPayload{}, ErrNoIssue
	}

	issue := event.Issue
	payload := types.WebhookPayload{
		TicketKey:       issue.Key,
		RepositoryOwner: fallback.Owner,
		RepositoryName:  fallback.Name,
	}

	if issue.Fields == nil {
		return payload, nil
	}

	payload.Project = issue.Fields.Project.Key
	if issue.Fields.Status != nil {
		payload.TicketStatus = issue.Fields.Status.Name
	}

	if repo, ok := d.extractRepositoryInfo(issue); ok {
		payload.RepositoryOwner = repo.Owner
		payload.RepositoryName = repo.Name
	}

	d.logger.Debug("decoded jira event",
		zap.String("webhook_event", event.WebhookEvent),
		zap.String("ticket_key", payload.TicketKey),
		zap.String("ticket_status", payload.TicketStatus),
	)

	return payload, nil
}

// extractRepositoryInfo reads "owner/repo" or "https://github.com/owner/repo"
// from the custom field whose ID contains repositoryField
func (d *Decoder) extractRepositoryInfo(issue *jira.Issue) (types.RepositoryInfo, bool) {
	if d.repositoryField == "" {
		return types.RepositoryInfo{}, false
	}

	for key, value := range issue.Fields.Unknowns {
		if !strings.Contains(strings.ToLower(key), strings.ToLower(d.repositoryField)) {
			continue
		}

		repoStr, ok := value.(string)
		if !ok {
			continue
		}

		if repo, ok := ParseRepository(repoStr); ok {
			return repo, true
		}
	}

	return types.RepositoryInfo{}, false
}

// ParseRepository parses "owner/repo" or a GitHub repository URL
func ParseRepository(s string) (types.RepositoryInfo, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, githubURLPrefix)
	s = strings.TrimSuffix(strings.TrimSuffix(s, "/"), ".git")

	parts := strings.Split(s, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return types.RepositoryInfo{}, false
	}

	return types.RepositoryInfo{Owner: parts[0], Name: parts[1]}, true
}
