// Package orchestrator runs the create-then-best-effort-link sequence for
// one Slack message: classify, create the Jira ticket, optionally create
// and bootstrap a GitHub repository, link the repository back to the
// ticket. Created artifacts are never rolled back; later failures are
// recorded on the result instead.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/clintrovert/actionagent/internal/classifier"
	"github.com/clintrovert/actionagent/internal/github"
	"github.com/clintrovert/actionagent/pkg/types"
)

const defaultCallTimeout = 10 * time.Second

const summaryMaxLen = 50

// State is the progress of a single automation run, used for logging.
type State string

const (
	StateReceived      State = "RECEIVED"
	StateClassified    State = "CLASSIFIED"
	StateTicketCreated State = "TICKET_CREATED"
	StateRepoCreated   State = "REPO_CREATED"
	StateLinked        State = "LINKED"
	StateReplied       State = "REPLIED"
	StateAborted       State = "ABORTED"
)

// JiraService is the slice of the Jira adapter the orchestrator needs.
type JiraService interface {
	CreateTicket(ctx context.Context, issueType types.IssueType, summary, description string) (*types.TicketRef, error)
	AppendLink(ctx context.Context, ticketKey, url, label string) error
}

// GitHubService is the slice of the GitHub adapter the orchestrator needs.
type GitHubService interface {
	CreateRepository(ctx context.Context, name, description string, scaffold []github.ScaffoldFile) (*types.RepositoryRef, error)
	BootstrapBranches(ctx context.Context, ref *types.RepositoryRef) ([]string, error)
}

// Orchestrator sequences one automation run per incoming message.
type Orchestrator struct {
	jira        JiraService
	github      GitHubService
	logger      *zap.Logger
	callTimeout time.Duration
}

// NewOrchestrator creates a new orchestrator
func NewOrchestrator(jiraService JiraService, githubService GitHubService, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		jira:        jiraService,
		github:      githubService,
		logger:      logger,
		callTimeout: defaultCallTimeout,
	}
}

// Run executes the automation sequence for one message. It always returns a
// result; external failures end up in result.Errors, never as a panic or a
// crashed listener.
func (o *Orchestrator) Run(ctx context.Context, msg *types.IncomingMessage) *types.AutomationResult {
	result := &types.AutomationResult{}
	state := StateReceived

	c := classifier.Classify(msg.Text)
	if c.IssueType == types.IssueTypeNone {
		state = StateAborted
		result.Aborted = true
		runsTotal.WithLabelValues(outcomeAborted).Inc()
		o.logger.Debug("no action item in message",
			zap.String("state", string(state)),
			zap.String("channel", msg.ChannelID),
		)
		return result
	}
	state = StateClassified

	summary := buildSummary(msg.Text)
	description := buildDescription(msg)

	ticket, err := o.createTicket(ctx, c.IssueType, summary, description)
	if err != nil {
		result.RecordError(types.StageJiraCreate, err)
		o.finish(msg, result, StateClassified)
		return result
	}
	result.Ticket = ticket
	state = StateTicketCreated

	if c.WantsRepository {
		repo, err := o.createRepository(ctx, ticket, result)
		if err != nil {
			result.RecordError(types.StageGitHubCreate, err)
			o.finish(msg, result, state)
			return result
		}
		result.Repository = repo
		state = StateRepoCreated

		if err := o.appendLink(ctx, ticket.Key, repo.URL); err != nil {
			result.RecordError(types.StageJiraUpdate, err)
		} else {
			state = StateLinked
		}
	}

	o.finish(msg, result, state)
	return result
}

func (o *Orchestrator) createTicket(ctx context.Context, issueType types.IssueType, summary, description string) (*types.TicketRef, error) {
	callCtx, cancel := context.WithTimeout(ctx, o.callTimeout)
	defer cancel()

	ticket, err := o.jira.CreateTicket(callCtx, issueType, summary, description)
	if err != nil {
		return nil, &types.ServiceError{Stage: types.StageJiraCreate, Err: err}
	}
	return ticket, nil
}

func (o *Orchestrator) createRepository(ctx context.Context, ticket *types.TicketRef, result *types.AutomationResult) (*types.RepositoryRef, error) {
	name := github.DeriveRepoName(ticket.Summary)
	description := fmt.Sprintf("Repository created automatically from Slack via Jira ticket %s", ticket.Key)
	scaffold := github.DefaultScaffold(ticket.Summary, description, ticket.Key, ticket.URL)

	callCtx, cancel := context.WithTimeout(ctx, o.callTimeout)
	defer cancel()

	repo, err := o.github.CreateRepository(callCtx, name, description, scaffold)
	if err != nil {
		return nil, &types.ServiceError{Stage: types.StageGitHubCreate, Err: err}
	}

	bootCtx, bootCancel := context.WithTimeout(ctx, o.callTimeout)
	defer bootCancel()

	branches, err := o.github.BootstrapBranches(bootCtx, repo)
	if err != nil {
		// The repository exists; a missing develop branch is reported on
		// the result, not treated as a failed creation.
		result.RecordError(types.StageGitHubBootstrap, err)
		o.logger.Warn("failed to bootstrap branches",
			zap.String("repo", repo.Name),
			zap.Error(err),
		)
	} else {
		repo.Branches = branches
	}

	return repo, nil
}

func (o *Orchestrator) appendLink(ctx context.Context, ticketKey, repoURL string) error {
	callCtx, cancel := context.WithTimeout(ctx, o.callTimeout)
	defer cancel()

	if err := o.jira.AppendLink(callCtx, ticketKey, repoURL, "GitHub repository"); err != nil {
		return &types.ServiceError{Stage: types.StageJiraUpdate, Err: err}
	}
	return nil
}

// finish logs the terminal transition and counts the outcome. The caller is
// responsible for actually sending the reply; REPLIED here means the result
// is complete and ready to be formatted.
func (o *Orchestrator) finish(msg *types.IncomingMessage, result *types.AutomationResult, lastState State) {
	outcome := outcomeSuccess
	if len(result.Errors) > 0 {
		outcome = outcomePartial
		if result.Ticket == nil {
			outcome = outcomeFailed
		}
	}
	runsTotal.WithLabelValues(outcome).Inc()

	fields := []zap.Field{
		zap.String("state", string(StateReplied)),
		zap.String("last_stage", string(lastState)),
		zap.String("channel", msg.ChannelID),
		zap.String("outcome", outcome),
	}
	if result.Ticket != nil {
		fields = append(fields, zap.String("ticket", result.Ticket.Key))
	}
	if result.Repository != nil {
		fields = append(fields, zap.String("repository", result.Repository.Name))
	}
	o.logger.Info("automation run finished", fields...)
}

// buildSummary derives the Jira summary from the message text, truncated to
// keep summaries scannable in board views.
func buildSummary(text string) string {
	runes := []rune(text)
	if len(runes) <= summaryMaxLen {
		return "Action Item: " + text
	}
	return "Action Item: " + string(runes[:summaryMaxLen]) + "..."
}

func buildDescription(msg *types.IncomingMessage) string {
	return fmt.Sprintf("*Slack Message:* %s\n*Reported by:* %s\n*Source:* Slack Integration", msg.Text, msg.UserID)
}
