package config

import (
	"net/url"
	"os"
	"strings"
)

// Config holds process-wide configuration. It is built once at startup,
// validated, and passed by reference into each component; nothing mutates
// it afterwards.
type Config struct {
	SlackBotToken  string
	SlackAppToken  string
	SlackBotUserID string

	JiraBaseURL    string
	JiraUsername   string
	JiraAPIToken   string
	JiraProjectKey string

	GitHubToken    string
	GitHubUsername string

	WorkspaceDir string
	HTTPPort     string
	LogLevel     string
	Environment  string
}

// ConfigurationError lists every required environment variable that was
// missing at startup.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return "missing required configuration: " + strings.Join(e.Missing, ", ")
}

// Load reads configuration from the environment. Required credentials are
// checked for presence only; their format is left to the services that
// consume them.
func Load() (*Config, error) {
	cfg := &Config{
		SlackBotToken:  os.Getenv("SLACK_BOT_TOKEN"),
		SlackAppToken:  os.Getenv("SLACK_APP_TOKEN"),
		SlackBotUserID: os.Getenv("SLACK_BOT_USER_ID"),
		JiraBaseURL:    os.Getenv("JIRA_URL"),
		JiraUsername:   os.Getenv("JIRA_USERNAME"),
		JiraAPIToken:   os.Getenv("JIRA_API_TOKEN"),
		JiraProjectKey: os.Getenv("JIRA_PROJECT_KEY"),
		GitHubToken:    os.Getenv("GITHUB_TOKEN"),
		GitHubUsername: os.Getenv("GITHUB_USERNAME"),
		WorkspaceDir:   getEnv("WORKSPACE_DIR", "/tmp/actionagent-workspace"),
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Environment:    getEnv("ENVIRONMENT", "development"),
	}

	required := []struct {
		name  string
		value string
	}{
		{"SLACK_BOT_TOKEN", cfg.SlackBotToken},
		{"SLACK_APP_TOKEN", cfg.SlackAppToken},
		{"JIRA_URL", cfg.JiraBaseURL},
		{"JIRA_USERNAME", cfg.JiraUsername},
		{"JIRA_API_TOKEN", cfg.JiraAPIToken},
		{"GITHUB_TOKEN", cfg.GitHubToken},
	}

	var missing []string
	for _, r := range required {
		if r.value == "" {
			missing = append(missing, r.name)
		}
	}
	if len(missing) > 0 {
		return nil, &ConfigurationError{Missing: missing}
	}

	if cfg.JiraProjectKey == "" {
		cfg.JiraProjectKey = deriveProjectKey(cfg.JiraBaseURL)
	}

	return cfg, nil
}

// deriveProjectKey guesses a project key from a *.atlassian.net base URL,
// falling back to PROJ for anything it cannot parse.
func deriveProjectKey(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "PROJ"
	}
	host := u.Hostname()
	if sub, ok := strings.CutSuffix(host, ".atlassian.net"); ok && sub != "" {
		return strings.ToUpper(sub)
	}
	return "PROJ"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
