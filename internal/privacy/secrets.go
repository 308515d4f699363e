// Package privacy protects accidentally pasted credentials in
// user-submitted idea text. Problem and solution descriptions are free
// text and get forwarded verbatim into provider prompts; anything that
// looks like a secret is redacted before it leaves the process.
package privacy

import (
	"regexp"
	"strings"

	"github.com/NoobSupreme1one/nucleus/pkg/models"
)

// secretPatterns are compiled expressions for common secret formats,
// tuned for few false positives on ordinary startup-pitch prose.
var secretPatterns = []*regexp.Regexp{
	// Key/value assignments
	regexp.MustCompile(`(?i)(api[_-]?key|apikey)\s*[:=]\s*['"]?[a-zA-Z0-9_-]{20,}['"]?`),
	regexp.MustCompile(`(?i)(password|passwd|pwd)\s*[:=]\s*['"][^'"]{8,}['"]`),
	regexp.MustCompile(`(?i)(secret[_-]?key|secret[_-]?token|auth[_-]?token)\s*[:=]\s*['"]?[a-zA-Z0-9_-]{20,}['"]?`),

	// Vendor token shapes
	regexp.MustCompile(`sk-[a-zA-Z0-9-]{20,}`),
	regexp.MustCompile(`gh[pous]_[a-zA-Z0-9]{36,}`),
	regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
	regexp.MustCompile(`AIza[a-zA-Z0-9_-]{35}`),
	regexp.MustCompile(`pplx-[a-zA-Z0-9]{20,}`),

	// PEM blocks and JWTs
	regexp.MustCompile(`-----BEGIN (RSA |EC |DSA |OPENSSH )?PRIVATE KEY-----`),
	regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`),
	regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9_-]{20,}`),
}

// ContainsSecrets reports whether text matches any secret pattern.
func ContainsSecrets(text string) bool {
	if text == "" {
		return false
	}
	for _, pattern := range secretPatterns {
		if pattern.MatchString(text) {
			return true
		}
	}
	return false
}

// RedactSecrets replaces detected secrets with a redaction marker,
// keeping the key name when the match is an assignment.
func RedactSecrets(text string) string {
	if text == "" {
		return text
	}

	result := text
	for _, pattern := range secretPatterns {
		result = pattern.ReplaceAllStringFunc(result, func(match string) string {
			if idx := strings.Index(match, "="); idx != -1 {
				return match[:idx+1] + "[REDACTED]"
			}
			if idx := strings.Index(match, ":"); idx != -1 {
				return match[:idx+1] + "[REDACTED]"
			}
			if len(match) > 8 {
				return match[:4] + "...[REDACTED]"
			}
			return "[REDACTED]"
		})
	}
	return result
}

// RedactInput returns a copy of the idea input with every free-text
// field scrubbed. Called once at the prompt boundary.
func RedactInput(input models.IdeaInput) models.IdeaInput {
	input.Title = RedactSecrets(input.Title)
	input.ProblemDescription = RedactSecrets(input.ProblemDescription)
	input.SolutionDescription = RedactSecrets(input.SolutionDescription)
	input.TargetAudience = RedactSecrets(input.TargetAudience)
	return input
}
