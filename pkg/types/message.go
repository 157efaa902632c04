package types

// IncomingMessage is a single Slack message as seen by the automation run.
// It is built once per event and discarded after the run finishes.
type IncomingMessage struct {
	Text      string
	ChannelID string
	UserID    string
	Timestamp string
}

// IssueType is the Jira issue type derived from a message.
type IssueType string

const (
	IssueTypeBug     IssueType = "bug"
	IssueTypeFeature IssueType = "feature"
	IssueTypeTask    IssueType = "task"
	IssueTypeNone    IssueType = "none"
)

// JiraName maps an issue type to the name Jira expects on issue creation.
func (t IssueType) JiraName() string {
	switch t {
	case IssueTypeBug:
		return "Bug"
	case IssueTypeFeature:
		return "Story"
	case IssueTypeTask:
		return "Task"
	}
	return ""
}

// Classification is the decision derived from a message's text.
type Classification struct {
	IssueType       IssueType
	WantsRepository bool
}
