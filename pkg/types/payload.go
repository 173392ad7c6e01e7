package types

// WebhookPayload is the body sent by the Jira automation rule when a ticket
// changes status
type WebhookPayload struct {
	Project         string `json:"project"`
	TicketKey       string `json:"key"`
	TicketStatus    string `json:"status"`
	RepositoryName  string `json:"github_repo_name"`
	RepositoryOwner string `json:"github_repo_owner"`
}

// Complete reports whether every field required to process the payload is set
func (p WebhookPayload) Complete() bool {
	return p.Project != "" &&
		p.TicketKey != "" &&
		p.TicketStatus != "" &&
		p.RepositoryName != "" &&
		p.RepositoryOwner != ""
}
