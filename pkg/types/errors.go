package types

import "fmt"

// Stage names the step of an automation run an error belongs to.
type Stage string

const (
	StageJiraCreate      Stage = "jira_create"
	StageJiraUpdate      Stage = "jira_update"
	StageGitHubCreate    Stage = "github_create"
	StageGitHubBootstrap Stage = "github_bootstrap"
)

// ServiceError wraps a failed call to an external service with the stage it
// happened in.
type ServiceError struct {
	Stage Stage
	Err   error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}
