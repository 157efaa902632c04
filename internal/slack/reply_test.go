package slack

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clintrovert/actionagent/pkg/types"
)

func fullResult() *types.AutomationResult {
	return &types.AutomationResult{
		Ticket: &types.TicketRef{
			Key:     "PROJ-123",
			URL:     "https://acme.atlassian.net/browse/PROJ-123",
			Summary: "Action Item: new dashboard",
		},
		Repository: &types.RepositoryRef{
			Owner:         "octocat",
			Name:          "action-item-new-dashboard",
			URL:           "https://github.com/octocat/action-item-new-dashboard",
			DefaultBranch: "main",
			Branches:      []string{"main", "develop"},
		},
	}
}

func TestFormatResultFullSuccess(t *testing.T) {
	reply := FormatResult(fullResult())

	assert.Contains(t, reply, "PROJ-123")
	assert.Contains(t, reply, "https://acme.atlassian.net/browse/PROJ-123")
	assert.Contains(t, reply, "action-item-new-dashboard")
	assert.Contains(t, reply, "main, develop")
	assert.NotContains(t, reply, "⚠️")
}

func TestFormatResultTicketOnly(t *testing.T) {
	result := fullResult()
	result.Repository = nil

	reply := FormatResult(result)

	assert.Contains(t, reply, "PROJ-123")
	assert.NotContains(t, reply, "repository")
	assert.NotContains(t, reply, "github.com")
}

func TestFormatResultJiraFailure(t *testing.T) {
	result := &types.AutomationResult{}
	result.RecordError(types.StageJiraCreate, errors.New("503 from jira"))

	reply := FormatResult(result)

	assert.Contains(t, reply, "couldn't create a Jira ticket")
	assert.Contains(t, reply, "503 from jira")
	assert.NotContains(t, reply, "ready")
}

func TestFormatResultGitHubFailureKeepsTicketVisible(t *testing.T) {
	result := fullResult()
	result.Repository = nil
	result.RecordError(types.StageGitHubCreate, errors.New("name already exists"))

	reply := FormatResult(result)

	assert.Contains(t, reply, "PROJ-123")
	assert.Contains(t, reply, "repository could not be")
	assert.Contains(t, reply, "by hand")
}

func TestFormatResultBootstrapFailureStillListsRepository(t *testing.T) {
	result := fullResult()
	result.Repository.Branches = []string{"main"}
	result.RecordError(types.StageGitHubBootstrap, errors.New("push rejected"))

	reply := FormatResult(result)

	assert.Contains(t, reply, "PROJ-123")
	assert.Contains(t, reply, "github.com/octocat")
	assert.Contains(t, reply, "develop branch could not be set up")
	assert.Contains(t, reply, "push rejected")
	assert.NotContains(t, reply, "ready")
}

func TestFormatResultLinkFailureListsBothArtifacts(t *testing.T) {
	result := fullResult()
	result.RecordError(types.StageJiraUpdate, errors.New("comment rejected"))

	reply := FormatResult(result)

	assert.Contains(t, reply, "PROJ-123")
	assert.Contains(t, reply, "github.com/octocat")
	assert.Contains(t, reply, "add it manually")
}
