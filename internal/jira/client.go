package jira

import (
	"context"
	"fmt"
	"strings"

	jira "github.com/andygrunwald/go-jira"
	"go.uber.org/zap"

	"github.com/clintrovert/actionagent/pkg/types"
)

// Client wraps Jira API client functionality
type Client struct {
	client     *jira.Client
	logger     *zap.Logger
	baseURL    string
	projectKey string
}

// NewClient creates a new Jira client
func NewClient(baseURL, username, apiToken, projectKey string, logger *zap.Logger) (*Client, error) {
	tp := jira.BasicAuthTransport{
		Username: username,
		Password: apiToken,
	}

	client, err := jira.NewClient(tp.Client(), baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create jira client: %w", err)
	}

	return &Client{
		client:     client,
		logger:     logger,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		projectKey: projectKey,
	}, nil
}

// CreateTicket creates an issue in the configured project and returns a
// reference to it. A single attempt is made; the caller decides what a
// failure means for the rest of the run.
func (c *Client) CreateTicket(ctx context.Context, issueType types.IssueType, summary, description string) (*types.TicketRef, error) {
	issue := &jira.Issue{
		Fields: &jira.IssueFields{
			Project:     jira.Project{Key: c.projectKey},
			Type:        jira.IssueType{Name: issueType.JiraName()},
			Summary:     summary,
			Description: description,
		},
	}

	created, _, err := c.client.Issue.CreateWithContext(ctx, issue)
	if err != nil {
		return nil, fmt.Errorf("failed to create issue: %w", err)
	}

	ref := &types.TicketRef{
		Key:     created.Key,
		URL:     c.browseURL(created.Key),
		Summary: summary,
	}

	c.logger.Info("created jira ticket",
		zap.String("key", ref.Key),
		zap.String("issue_type", issueType.JiraName()),
	)

	return ref, nil
}

// AppendLink records a URL on an existing ticket as a comment.
func (c *Client) AppendLink(ctx context.Context, ticketKey, url, label string) error {
	comment := &jira.Comment{
		Body: fmt.Sprintf("%s: %s", label, url),
	}

	_, _, err := c.client.Issue.AddCommentWithContext(ctx, ticketKey, comment)
	if err != nil {
		return fmt.Errorf("failed to add comment: %w", err)
	}

	c.logger.Info("appended link to jira ticket",
		zap.String("key", ticketKey),
		zap.String("url", url),
	)

	return nil
}

// GetTicket retrieves a single ticket by key.
func (c *Client) GetTicket(ctx context.Context, ticketKey string) (*types.TicketInfo, error) {
	issue, _, err := c.client.Issue.GetWithContext(ctx, ticketKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get issue: %w", err)
	}

	return c.issueToInfo(issue), nil
}

// SearchTickets runs a JQL search and returns matching tickets.
func (c *Client) SearchTickets(ctx context.Context, jql string) ([]types.TicketInfo, error) {
	issues, _, err := c.client.Issue.SearchWithContext(ctx, jql, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to search issues: %w", err)
	}

	infos := make([]types.TicketInfo, 0, len(issues))
	for i := range issues {
		infos = append(infos, *c.issueToInfo(&issues[i]))
	}

	return infos, nil
}

func (c *Client) issueToInfo(issue *jira.Issue) *types.TicketInfo {
	info := &types.TicketInfo{
		Key:     issue.Key,
		Summary: issue.Fields.Summary,
		URL:     c.browseURL(issue.Key),
	}
	if issue.Fields.Status != nil {
		info.Status = issue.Fields.Status.Name
	}
	if issue.Fields.Assignee != nil {
		info.Assignee = issue.Fields.Assignee.DisplayName
	}
	return info
}

func (c *Client) browseURL(key string) string {
	return c.baseURL + "/browse/" + key
}
