package slack

import (
	"fmt"
	"strings"

	"github.com/clintrovert/actionagent/pkg/types"
)

const ackMessage = "🤖 Processing your message and creating a Jira ticket..."

// FormatResult renders an automation result as a Slack reply. It always
// lists what was created, then what failed, so a partially failed run tells
// the reader exactly which step to finish by hand.
func FormatResult(result *types.AutomationResult) string {
	var sb strings.Builder

	if result.Ticket != nil {
		sb.WriteString("✅ *Jira ticket created*\n")
		fmt.Fprintf(&sb, "📋 *%s* — %s\n", result.Ticket.Key, result.Ticket.URL)
	} else {
		sb.WriteString("❌ I couldn't create a Jira ticket for this message.\n")
	}

	if result.Repository != nil {
		sb.WriteString("\n📦 *GitHub repository created*\n")
		fmt.Fprintf(&sb, "🔗 *%s* — %s\n", result.Repository.Name, result.Repository.URL)
		if len(result.Repository.Branches) > 0 {
			fmt.Fprintf(&sb, "🌿 Branches: %s\n", strings.Join(result.Repository.Branches, ", "))
		}
	}

	for _, e := range result.Errors {
		sb.WriteString("\n⚠️ " + describeError(e) + "\n")
	}

	if result.Succeeded() {
		sb.WriteString("\nYour action item is ready.")
	}

	return sb.String()
}

func describeError(e types.StageError) string {
	switch e.Stage {
	case types.StageJiraCreate:
		return fmt.Sprintf("Creating the Jira ticket failed (%s). Please create it manually or try again.", e.Message)
	case types.StageGitHubCreate:
		return fmt.Sprintf("The ticket was created, but the GitHub repository could not be (%s). You may want to create the repository by hand.", e.Message)
	case types.StageJiraUpdate:
		return fmt.Sprintf("The repository link could not be added to the ticket (%s). Please add it manually.", e.Message)
	case types.StageGitHubBootstrap:
		return fmt.Sprintf("The develop branch could not be set up (%s).", e.Message)
	}
	return fmt.Sprintf("Step %s failed (%s).", e.Stage, e.Message)
}
