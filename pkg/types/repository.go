package types

// RepositoryRef identifies a GitHub repository created by an automation run.
type RepositoryRef struct {
	Owner         string   `json:"owner"`
	Name          string   `json:"name"`
	URL           string   `json:"url"`
	DefaultBranch string   `json:"default_branch"`
	Branches      []string `json:"branches,omitempty"`
}
