package types

// TicketRef identifies a Jira ticket created by an automation run.
type TicketRef struct {
	Key     string `json:"key"`
	URL     string `json:"url"`
	Summary string `json:"summary"`
}

// TicketInfo is a ticket as returned by lookups and searches.
type TicketInfo struct {
	Key      string `json:"key"`
	Summary  string `json:"summary"`
	Status   string `json:"status"`
	Assignee string `json:"assignee,omitempty"`
	URL      string `json:"url"`
}
