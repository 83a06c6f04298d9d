package ingestion

import (
	"regexp"
	"strings"
)

var (
	spaceRun  = regexp.MustCompile(`[ \t]+`)
	blankRuns = regexp.MustCompile(`\n\n\n+`)
)

// CleanText normalizes extracted résumé text: unified line endings,
// collapsed space runs, at most one blank line between blocks. Bullet
// markers are preserved so section structure survives into the prompt.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, cleanLine(line))
	}

	result := strings.Join(cleaned, "\n")
	result = blankRuns.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

func cleanLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ""
	}

	// Keep bullet markers, normalize the rest of the line
	for _, marker := range []string{"- ", "* ", "• ", "· "} {
		if strings.HasPrefix(trimmed, marker) {
			rest := spaceRun.ReplaceAllString(strings.TrimPrefix(trimmed, marker), " ")
			return "- " + rest
		}
	}

	return spaceRun.ReplaceAllString(trimmed, " ")
}
