package github

import (
	"fmt"
	"strings"
)

// ScaffoldFile is one document written into a newly created repository.
type ScaffoldFile struct {
	Path    string
	Content string
}

// DefaultScaffold returns the fixed set of files pushed into every new
// repository: a README pointing back at the originating ticket, a CI
// workflow, a Dockerfile, and an environment template.
func DefaultScaffold(title, description, ticketKey, ticketURL string) []ScaffoldFile {
	return []ScaffoldFile{
		{Path: "README.md", Content: renderReadme(title, description, ticketKey, ticketURL)},
		{Path: ".github/workflows/ci.yml", Content: ciWorkflow},
		{Path: "Dockerfile", Content: dockerfile},
		{Path: ".env.example", Content: envExample},
	}
}

func renderReadme(title, description, ticketKey, ticketURL string) string {
	var sb strings.Builder

	sb.WriteString("# " + title + "\n\n")
	sb.WriteString(description + "\n\n")
	sb.WriteString("## Tracking\n\n")
	fmt.Fprintf(&sb, "This repository was created automatically for Jira ticket [%s](%s).\n\n", ticketKey, ticketURL)
	sb.WriteString("## Getting started\n\n")
	sb.WriteString("1. Copy `.env.example` to `.env` and fill in your credentials.\n")
	sb.WriteString("2. Build the container: `docker build -t " + DeriveRepoName(title) + " .`\n")
	sb.WriteString("3. Develop on the `develop` branch and open pull requests against it.\n")

	return sb.String()
}

const ciWorkflow = `name: ci

on:
  push:
    branches: [main, develop]
  pull_request:

jobs:
  build:
    runs-on: ubuntu-latest
    steps:
      - uses: actions/checkout@v4
      - name: Build
        run: docker build .
`

const dockerfile = `FROM alpine:3.20

WORKDIR /app
COPY . .

CMD ["sh", "-c", "echo 'replace this with the service entrypoint'"]
`

const envExample = `# Application configuration
ENVIRONMENT=development
LOG_LEVEL=info
`
