package markdown

import (
	"strings"

	"github.com/docsentry/docsentry/internal/docs"
	"github.com/docsentry/docsentry/internal/findings"
)

// CodeBlock is one fenced code region extracted from a document. Blocks are
// owned by their document and do not outlive the run.
type CodeBlock struct {
	// Language is the lowercased info-string tag, "" when untagged.
	Language string
	Source   string
	// Line is the 1-based line number of the opening fence; the first
	// snippet line is Line+1.
	Line int
	// Ordinal is 1-based per document per language tag, used for
	// human-readable messages ("typescript block #2").
	Ordinal int
}

const fenceMarker = "```"

// ExtractBlocks scans the document text for triple-backtick fenced code
// regions and returns them in document order. A fence left open at
// end-of-document yields a single warning finding and its trailing content
// is discarded.
func ExtractBlocks(doc docs.Document) ([]CodeBlock, []findings.Finding) {
	var blocks []CodeBlock
	var found []findings.Finding
	ordinals := make(map[string]int)

	lines := strings.Split(doc.Content, "\n")

	inFence := false
	fenceLine := 0
	language := ""
	var body []string

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		if !inFence {
			if strings.HasPrefix(trimmed, fenceMarker) {
				inFence = true
				fenceLine = i + 1
				language = fenceLanguage(trimmed)
				body = body[:0]
			}
			continue
		}

		if trimmed == fenceMarker {
			inFence = false
			ordinals[language]++
			blocks = append(blocks, CodeBlock{
				Language: language,
				Source:   strings.Join(body, "\n"),
				Line:     fenceLine,
				Ordinal:  ordinals[language],
			})
			continue
		}

		body = append(body, line)
	}

	if inFence {
		found = append(found, findings.Finding{
			RuleID:   findings.RuleCompileError,
			Severity: findings.SeverityWarning,
			Message:  "unterminated code fence",
			FilePath: doc.Path,
			Line:     fenceLine,
		})
	}

	return blocks, found
}

// fenceLanguage extracts the language tag from an opening fence line. Extra
// info-string attributes after the tag are ignored.
func fenceLanguage(fence string) string {
	info := strings.TrimPrefix(fence, fenceMarker)
	info = strings.TrimSpace(info)
	if info == "" {
		return ""
	}
	fields := strings.Fields(info)
	return strings.ToLower(fields[0])
}
