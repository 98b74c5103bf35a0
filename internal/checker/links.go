package checker

import (
	"fmt"
	"path"
	"strings"

	"github.com/docsentry/docsentry/internal/docs"
	"github.com/docsentry/docsentry/internal/findings"
	"github.com/docsentry/docsentry/internal/markdown"
)

// docExtensions are the extensions tried when resolving extensionless link
// targets, mirroring how static site generators route doc pages.
var docExtensions = []string{".md", ".mdx"}

// CheckInternalLinks resolves every relative link in the document against
// the set of paths loaded this run. Targets pointing at non-document assets
// (images, downloads) are skipped: only the documentation set is known.
func CheckInternalLinks(doc docs.Document, knownPaths map[string]struct{}) []findings.Finding {
	var found []findings.Finding

	for _, link := range markdown.ExtractLinks(doc) {
		if link.IsExternal() || link.IsAnchor() || link.Image {
			continue
		}
		if !isDocTarget(link.Target) {
			continue
		}
		if resolvesTo(doc.Path, link.Target, knownPaths) {
			continue
		}
		found = append(found, findings.Finding{
			RuleID:   findings.RuleBrokenInternalLink,
			Severity: findings.SeverityError,
			Message:  fmt.Sprintf("broken internal link %q", link.Target),
			FilePath: doc.Path,
			Line:     link.Line,
		})
	}

	return found
}

// isDocTarget reports whether the target can be resolved against the
// loaded document set: either it has a document extension or none at all.
func isDocTarget(target string) bool {
	ext := strings.ToLower(path.Ext(strings.TrimSuffix(target, "/")))
	if ext == "" {
		return true
	}
	for _, docExt := range docExtensions {
		if ext == docExt {
			return true
		}
	}
	return false
}

// resolvesTo checks the target against the known path set, trying the
// routing variants a site generator accepts: the literal path, document
// extensions, and directory indexes.
func resolvesTo(fromPath, target string, knownPaths map[string]struct{}) bool {
	var resolved string
	if strings.HasPrefix(target, "/") {
		resolved = path.Clean(strings.TrimPrefix(target, "/"))
	} else {
		resolved = path.Join(path.Dir(fromPath), target)
	}
	resolved = strings.TrimSuffix(resolved, "/")
	if resolved == "." || strings.HasPrefix(resolved, "../") {
		return false
	}

	candidates := []string{resolved}
	if path.Ext(resolved) == "" {
		for _, ext := range docExtensions {
			candidates = append(candidates, resolved+ext)
		}
		for _, ext := range docExtensions {
			candidates = append(candidates, path.Join(resolved, "index"+ext))
		}
	}

	for _, candidate := range candidates {
		if _, ok := knownPaths[candidate]; ok {
			return true
		}
	}
	return false
}
