package markdown

import (
	"regexp"
	"strings"

	"github.com/docsentry/docsentry/internal/docs"
)

// Link is one markdown link occurrence within a document.
type Link struct {
	// Target is the raw link destination without title, fragment, or query.
	Target string
	// Line is the 1-based line the link appears on.
	Line int
	// Image marks image links, whose targets are assets rather than
	// documents.
	Image bool
}

// inlineLinkPattern matches [text](target) and ![alt](target). Optional
// titles after the target are dropped by the capture.
var inlineLinkPattern = regexp.MustCompile(`(!?)\[[^\]]*\]\(\s*<?([^)\s>]+)>?(?:\s+"[^"]*")?\s*\)`)

// ExtractLinks returns every inline link in the document with its source
// line. Fenced code regions are skipped so that sample code containing
// link-shaped text does not leak into link checking.
func ExtractLinks(doc docs.Document) []Link {
	var links []Link

	lines := strings.Split(doc.Content, "\n")
	inFence := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, fenceMarker) {
			if inFence && trimmed == fenceMarker {
				inFence = false
			} else if !inFence {
				inFence = true
			}
			continue
		}
		if inFence {
			continue
		}

		for _, match := range inlineLinkPattern.FindAllStringSubmatch(line, -1) {
			target := stripTargetDecorations(match[2])
			if target == "" {
				continue
			}
			links = append(links, Link{
				Target: target,
				Line:   i + 1,
				Image:  match[1] == "!",
			})
		}
	}

	return links
}

// IsExternal reports whether the link target carries a URL scheme.
func (l Link) IsExternal() bool {
	return strings.HasPrefix(l.Target, "http://") ||
		strings.HasPrefix(l.Target, "https://") ||
		strings.HasPrefix(l.Target, "mailto:") ||
		strings.HasPrefix(l.Target, "tel:")
}

// IsAnchor reports whether the target points inside the current document.
func (l Link) IsAnchor() bool {
	return strings.HasPrefix(l.Target, "#")
}

// stripTargetDecorations removes fragments and queries from document
// targets. External URLs and pure anchors are kept intact.
func stripTargetDecorations(target string) string {
	if strings.Contains(target, "://") || strings.HasPrefix(target, "#") {
		return target
	}
	if idx := strings.IndexAny(target, "#?"); idx >= 0 {
		return target[:idx]
	}
	return target
}
