package github

import "strings"

const maxRepoNameLen = 50

// DeriveRepoName turns a free-form ticket summary into a valid repository
// name: lowercase, hyphen-separated, letters and digits only, at most 50
// characters, starting with a letter.
func DeriveRepoName(title string) string {
	var result strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(title) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			result.WriteRune(r)
			lastHyphen = false
		case r == ' ' || r == '-' || r == '_':
			if !lastHyphen {
				result.WriteRune('-')
				lastHyphen = true
			}
		}
	}

	name := strings.Trim(result.String(), "-")
	if len(name) > maxRepoNameLen {
		name = strings.TrimRight(name[:maxRepoNameLen], "-")
	}
	if name == "" {
		return "new-project"
	}
	if name[0] < 'a' || name[0] > 'z' {
		name = "repo-" + name
	}
	return name
}
