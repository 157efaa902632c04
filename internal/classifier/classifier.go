// Package classifier decides what, if anything, to do with a Slack message.
// Classification is a pure function over fixed keyword tables: it never
// fails and never calls out.
package classifier

import (
	"strings"

	"github.com/clintrovert/actionagent/pkg/types"
)

// triggerKeywords gate the whole run. A message matching none of these is
// not an action item and the run is aborted before any external call.
var triggerKeywords = []string{
	"bug", "issue", "problem", "error", "broken", "fix", "feature",
	"request", "enhancement", "task", "todo", "action", "ticket", "jira", "urgent",
	"critical", "blocker", "help", "support", "review", "pull request",
	"create", "new", "build", "develop", "implement", "add", "update",
}

// bugKeywords and featureKeywords pick the issue type; anything else that
// triggered becomes a plain task.
var bugKeywords = []string{"bug", "error", "broken", "fix", "crash", "defect"}

var featureKeywords = []string{"feature", "request", "enhancement"}

// repositoryKeywords signal that the message also wants a repository
// created alongside the ticket.
var repositoryKeywords = []string{"repository", "repo", "github", "codebase"}

// Classify derives the issue type and repository intent from message text.
// Matching is case-insensitive substring matching.
func Classify(text string) types.Classification {
	c := types.Classification{IssueType: types.IssueTypeNone}
	if text == "" {
		return c
	}

	lower := strings.ToLower(text)
	if !containsAny(lower, triggerKeywords) {
		return c
	}

	switch {
	case containsAny(lower, bugKeywords):
		c.IssueType = types.IssueTypeBug
	case containsAny(lower, featureKeywords):
		c.IssueType = types.IssueTypeFeature
	default:
		c.IssueType = types.IssueTypeTask
	}

	c.WantsRepository = containsAny(lower, repositoryKeywords)
	return c
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
