package github

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ShopLab-Team/jira-github-webhook/pkg/types"
)

var releasePrefix = regexp.MustCompile(`(?i)^\(release\)`)

// IsTicketInPRTitle checks whether a pull request title belongs to the given
// ticket. The title must start with "(release)" and mention a key of the
// ticket's project that equals ticketKey, ignoring case. On success the
// result carries the key as it is written in the title.
func IsTicketInPRTitle(title, ticketKey string) types.MatchResult {
	if !releasePrefix.MatchString(title) {
		return types.MatchResult{
			Message: fmt.Sprintf("Ticket does not match required prefix (release) in pull request title %s", title),
		}
	}

	match := findTicketKey(title, ticketKey)
	if match == "" {
		return types.MatchResult{
			Message: fmt.Sprintf("No match found for ticket key %s in pull request title %s", ticketKey, title),
		}
	}

	if !strings.EqualFold(match, ticketKey) {
		return types.MatchResult{
			Message: fmt.Sprintf("Ticket key in pull request title does not match %s", ticketKey),
		}
	}

	return types.MatchResult{
		Success: true,
		Message: "Ticket key found in pull request title",
		Data:    match,
	}
}

// findTicketKey returns the first "PREFIX-<digits>" in title, where PREFIX is
// the part of ticketKey before its first dash. A key starting with a dash has
// an empty prefix and matches any "-<digits>".
func findTicketKey(title, ticketKey string) string {
	prefix, _, _ := strings.Cut(ticketKey, "-")
	re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(prefix) + `-\d+`)
	if err != nil {
		return ""
	}
	return re.FindString(title)
}
