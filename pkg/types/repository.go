package types

// RepositoryInfo identifies a GitHub repository
type RepositoryInfo struct {
	Owner string
	Name  string
}

// PullRequestSummary holds the fields of a listed pull request used for matching
type PullRequestSummary struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
}

// MatchResult is the outcome of testing one pull request title against a ticket key.
// Data holds the key as written in the title and is empty on failure.
type MatchResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    string `json:"data,omitempty"`
}
