package orchestrator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/clintrovert/actionagent/internal/github"
	"github.com/clintrovert/actionagent/pkg/types"
)

type createCall struct {
	issueType   types.IssueType
	summary     string
	description string
}

type linkCall struct {
	ticketKey string
	url       string
	label     string
}

type fakeJira struct {
	createErr error
	linkErr   error
	created   []createCall
	links     []linkCall
}

func (f *fakeJira) CreateTicket(ctx context.Context, issueType types.IssueType, summary, description string) (*types.TicketRef, error) {
	f.created = append(f.created, createCall{issueType, summary, description})
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &types.TicketRef{
		Key:     "PROJ-123",
		URL:     "https://acme.atlassian.net/browse/PROJ-123",
		Summary: summary,
	}, nil
}

func (f *fakeJira) AppendLink(ctx context.Context, ticketKey, url, label string) error {
	f.links = append(f.links, linkCall{ticketKey, url, label})
	return f.linkErr
}

type fakeGitHub struct {
	createErr    error
	bootstrapErr error
	created      []string
	bootstraps   int
}

func (f *fakeGitHub) CreateRepository(ctx context.Context, name, description string, scaffold []github.ScaffoldFile) (*types.RepositoryRef, error) {
	f.created = append(f.created, name)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &types.RepositoryRef{
		Owner:         "octocat",
		Name:          name,
		URL:           "https://github.com/octocat/" + name,
		DefaultBranch: "main",
		Branches:      []string{"main"},
	}, nil
}

func (f *fakeGitHub) BootstrapBranches(ctx context.Context, ref *types.RepositoryRef) ([]string, error) {
	f.bootstraps++
	if f.bootstrapErr != nil {
		return nil, f.bootstrapErr
	}
	return []string{"main", "develop"}, nil
}

func message(text string) *types.IncomingMessage {
	return &types.IncomingMessage{
		Text:      text,
		ChannelID: "C123",
		UserID:    "U456",
		Timestamp: "1700000000.000100",
	}
}

func TestRunAbortsWithoutTrigger(t *testing.T) {
	jiraFake := &fakeJira{}
	ghFake := &fakeGitHub{}
	o := NewOrchestrator(jiraFake, ghFake, zap.NewNop())

	result := o.Run(context.Background(), message("good morning everyone"))

	assert.True(t, result.Aborted)
	assert.Nil(t, result.Ticket)
	assert.Nil(t, result.Repository)
	assert.Empty(t, result.Errors)
	assert.Empty(t, jiraFake.created)
	assert.Empty(t, ghFake.created)
}

func TestRunTicketOnly(t *testing.T) {
	jiraFake := &fakeJira{}
	ghFake := &fakeGitHub{}
	o := NewOrchestrator(jiraFake, ghFake, zap.NewNop())

	result := o.Run(context.Background(), message("there's a bug in login"))

	require.NotNil(t, result.Ticket)
	assert.Equal(t, "PROJ-123", result.Ticket.Key)
	assert.Nil(t, result.Repository)
	assert.Empty(t, result.Errors)
	assert.True(t, result.Succeeded())

	require.Len(t, jiraFake.created, 1)
	assert.Equal(t, types.IssueTypeBug, jiraFake.created[0].issueType)
	assert.Contains(t, jiraFake.created[0].summary, "there's a bug in login")
	assert.Contains(t, jiraFake.created[0].description, "U456")
	assert.Empty(t, ghFake.created)
	assert.Empty(t, jiraFake.links)
}

func TestRunFullSequence(t *testing.T) {
	jiraFake := &fakeJira{}
	ghFake := &fakeGitHub{}
	o := NewOrchestrator(jiraFake, ghFake, zap.NewNop())

	result := o.Run(context.Background(), message("Need to create a ticket for the new user dashboard feature, also set up a repo"))

	require.NotNil(t, result.Ticket)
	require.NotNil(t, result.Repository)
	assert.Empty(t, result.Errors)
	assert.True(t, result.Succeeded())

	require.Len(t, jiraFake.created, 1)
	assert.Equal(t, types.IssueTypeFeature, jiraFake.created[0].issueType)

	require.Len(t, ghFake.created, 1)
	assert.Equal(t, github.DeriveRepoName(result.Ticket.Summary), ghFake.created[0])
	assert.Equal(t, []string{"main", "develop"}, result.Repository.Branches)

	require.Len(t, jiraFake.links, 1)
	assert.Equal(t, "PROJ-123", jiraFake.links[0].ticketKey)
	assert.Equal(t, result.Repository.URL, jiraFake.links[0].url)
}

func TestRunJiraFailureStopsEverything(t *testing.T) {
	jiraFake := &fakeJira{createErr: errors.New("503 from jira")}
	ghFake := &fakeGitHub{}
	o := NewOrchestrator(jiraFake, ghFake, zap.NewNop())

	result := o.Run(context.Background(), message("set up a repo for the new billing feature"))

	assert.Nil(t, result.Ticket)
	assert.Nil(t, result.Repository)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, types.StageJiraCreate, result.Errors[0].Stage)
	assert.Contains(t, result.Errors[0].Message, "503 from jira")

	assert.Empty(t, ghFake.created)
	assert.Empty(t, jiraFake.links)
}

func TestRunGitHubFailureKeepsTicket(t *testing.T) {
	jiraFake := &fakeJira{}
	ghFake := &fakeGitHub{createErr: errors.New("name already exists")}
	o := NewOrchestrator(jiraFake, ghFake, zap.NewNop())

	result := o.Run(context.Background(), message("set up a repo for the new billing feature"))

	require.NotNil(t, result.Ticket)
	assert.Nil(t, result.Repository)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, types.StageGitHubCreate, result.Errors[0].Stage)

	// The link-back step must be skipped when no repository exists.
	assert.Empty(t, jiraFake.links)
}

func TestRunLinkFailureKeepsArtifacts(t *testing.T) {
	jiraFake := &fakeJira{linkErr: errors.New("comment rejected")}
	ghFake := &fakeGitHub{}
	o := NewOrchestrator(jiraFake, ghFake, zap.NewNop())

	result := o.Run(context.Background(), message("set up a repo for the new billing feature"))

	require.NotNil(t, result.Ticket)
	require.NotNil(t, result.Repository)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, types.StageJiraUpdate, result.Errors[0].Stage)
	assert.False(t, result.Succeeded())
}

func TestRunBootstrapFailureIsNotFatal(t *testing.T) {
	jiraFake := &fakeJira{}
	ghFake := &fakeGitHub{bootstrapErr: errors.New("push rejected")}
	o := NewOrchestrator(jiraFake, ghFake, zap.NewNop())

	result := o.Run(context.Background(), message("set up a repo for the new billing feature"))

	require.NotNil(t, result.Ticket)
	require.NotNil(t, result.Repository)
	assert.Equal(t, []string{"main"}, result.Repository.Branches)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, types.StageGitHubBootstrap, result.Errors[0].Stage)
	assert.Contains(t, result.Errors[0].Message, "push rejected")
	// The repository still gets linked back to the ticket.
	require.Len(t, jiraFake.links, 1)
}

func TestBuildSummaryTruncates(t *testing.T) {
	short := buildSummary("fix login")
	assert.Equal(t, "Action Item: fix login", short)

	long := buildSummary("this message is well over fifty characters long so it has to be cut somewhere sensible")
	assert.Contains(t, long, "Action Item: ")
	assert.True(t, len([]rune(long)) <= len("Action Item: ")+50+3)
	assert.Contains(t, long, "...")
}
