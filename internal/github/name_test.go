package github

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveRepoName(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"New User Dashboard Feature", "new-user-dashboard-feature"},
		{"Action Item: Fix login!", "action-item-fix-login"},
		{"  spaced   out  ", "spaced-out"},
		{"snake_case_title", "snake-case-title"},
		{"", "new-project"},
		{"!!!", "new-project"},
		{"123 numbers first", "repo-123-numbers-first"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DeriveRepoName(tt.title), tt.title)
	}
}

func TestDeriveRepoNameTruncates(t *testing.T) {
	long := strings.Repeat("very long title ", 10)
	name := DeriveRepoName(long)

	assert.LessOrEqual(t, len(name), 50)
	assert.False(t, strings.HasSuffix(name, "-"))
	assert.True(t, strings.HasPrefix(name, "very-long-title"))
}
