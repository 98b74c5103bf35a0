package checker

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/docsentry/docsentry/internal/docs"
	"github.com/docsentry/docsentry/internal/findings"
	"github.com/docsentry/docsentry/internal/markdown"
)

// SecretScanner flags string literals that look like real credentials. It
// only fires on high-confidence shapes bound to suggestive identifiers, so
// ordinary sample values pass untouched.
type SecretScanner struct {
	allowList map[string]struct{}
}

// defaultSecretAllowList holds well-known public constants that match the
// secret shapes but are safe to publish.
var defaultSecretAllowList = []string{
	// canonical system program address
	"11111111111111111111111111111112",
	// wrapped SOL mint, public by definition
	"So11111111111111111111111111111111111111112",
	"YOUR_PRIVATE_KEY",
	"YOUR_PRIVATE_KEY_HERE",
	"YOUR_SECRET_KEY",
	"REPLACE_WITH_YOUR_KEY",
}

var (
	// assignment of a string literal to an identifier that suggests key
	// material, e.g. const privateKey = "..."
	secretAssignPattern = regexp.MustCompile(`(?i)([A-Za-z0-9_$]*(?:private[_-]?key|secret[_-]?key|secret|mnemonic|seed[_-]?phrase|api[_-]?key|passphrase)[A-Za-z0-9_$]*)\s*[:=]\s*["'` + "`" + `]([^"'` + "`" + `]+)["'` + "`" + `]`)

	base58Run = regexp.MustCompile(`^[1-9A-HJ-NP-Za-km-z]{32,}$`)
	hexRun    = regexp.MustCompile(`^(?:0x)?[0-9a-fA-F]{40,}$`)
)

// NewSecretScanner builds a scanner with the built-in allow-list plus any
// extra entries from the config file.
func NewSecretScanner(extraAllowList []string) *SecretScanner {
	allow := make(map[string]struct{}, len(defaultSecretAllowList)+len(extraAllowList))
	for _, v := range defaultSecretAllowList {
		allow[v] = struct{}{}
	}
	for _, v := range extraAllowList {
		allow[v] = struct{}{}
	}
	return &SecretScanner{allowList: allow}
}

// Scan inspects one code block for hardcoded secrets. Runs on every block
// regardless of language tag: a leaked key in a json or bash block is just
// as public.
func (s *SecretScanner) Scan(doc docs.Document, block markdown.CodeBlock) []findings.Finding {
	var found []findings.Finding

	for offset, line := range strings.Split(block.Source, "\n") {
		for _, match := range secretAssignPattern.FindAllStringSubmatch(line, -1) {
			identifier, value := match[1], match[2]
			if !looksLikeSecret(value) {
				continue
			}
			if _, ok := s.allowList[value]; ok {
				continue
			}
			found = append(found, findings.Finding{
				RuleID:        findings.RuleHardcodedSecret,
				Severity:      findings.SeverityError,
				Message:       fmt.Sprintf("literal assigned to %q looks like a hardcoded secret (%s block #%d)", identifier, blockLabel(block), block.Ordinal),
				FilePath:      doc.Path,
				Line:          block.Line + offset + 1,
				BlockLanguage: block.Language,
				BlockOrdinal:  block.Ordinal,
			})
		}
	}

	return found
}

func looksLikeSecret(value string) bool {
	return base58Run.MatchString(value) || hexRun.MatchString(value)
}
