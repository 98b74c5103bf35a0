package checker

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/docsentry/docsentry/internal/docs"
	"github.com/docsentry/docsentry/internal/findings"
	"github.com/docsentry/docsentry/internal/markdown"
)

// The error-handling rule is textual, not semantic. It stays at Warning
// severity: a pattern match must never fail the run on its own.
var (
	asyncCallPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\bawait\b`),
		regexp.MustCompile(`\.then\s*\(`),
		regexp.MustCompile(`\bfetch\s*\(`),
		regexp.MustCompile(`\bsendTransaction\b`),
		regexp.MustCompile(`\bsendAndConfirmTransaction\b`),
	}

	errorHandlingPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\btry\s*{`),
		regexp.MustCompile(`\.catch\s*\(`),
		regexp.MustCompile(`\bif\s*\(\s*(?:err|error)\b`),
		regexp.MustCompile(`instanceof\s+Error\b`),
	}
)

// CheckErrorHandling flags snippets that show asynchronous or network-style
// calls without any visible error handling.
func CheckErrorHandling(doc docs.Document, block markdown.CodeBlock) []findings.Finding {
	asyncLine := firstMatchLine(block.Source, asyncCallPatterns)
	if asyncLine == 0 {
		return nil
	}
	if firstMatchLine(block.Source, errorHandlingPatterns) != 0 {
		return nil
	}

	return []findings.Finding{{
		RuleID:        findings.RuleMissingErrorHandling,
		Severity:      findings.SeverityWarning,
		Message:       fmt.Sprintf("async call without error handling (%s block #%d)", blockLabel(block), block.Ordinal),
		FilePath:      doc.Path,
		Line:          block.Line + asyncLine,
		BlockLanguage: block.Language,
		BlockOrdinal:  block.Ordinal,
	}}
}

// firstMatchLine returns the 1-based snippet line of the first pattern hit,
// 0 when nothing matches.
func firstMatchLine(source string, patterns []*regexp.Regexp) int {
	for offset, line := range strings.Split(source, "\n") {
		for _, pattern := range patterns {
			if pattern.MatchString(line) {
				return offset + 1
			}
		}
	}
	return 0
}
