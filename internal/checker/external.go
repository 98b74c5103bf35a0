package checker

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-hclog"

	"github.com/docsentry/docsentry/internal/docs"
	"github.com/docsentry/docsentry/internal/findings"
	"github.com/docsentry/docsentry/internal/markdown"
)

// ExternalLinkChecker probes absolute http(s) links. Off by default; the
// findings it produces stay at Warning severity because a flaky endpoint
// must not fail CI.
type ExternalLinkChecker struct {
	client *resty.Client
	logger hclog.Logger

	mu      sync.Mutex
	visited map[string]bool
}

// NewExternalLinkChecker wraps a configured resty client. The visited
// cache lives for one run only, so repeated links across documents are
// probed once.
func NewExternalLinkChecker(client *resty.Client, logger hclog.Logger) *ExternalLinkChecker {
	return &ExternalLinkChecker{
		client:  client,
		logger:  logger,
		visited: make(map[string]bool),
	}
}

// Check probes every http(s) link of the document.
func (e *ExternalLinkChecker) Check(ctx context.Context, doc docs.Document) []findings.Finding {
	var found []findings.Finding

	for _, link := range markdown.ExtractLinks(doc) {
		if !strings.HasPrefix(link.Target, "http://") && !strings.HasPrefix(link.Target, "https://") {
			continue
		}
		if e.reachable(ctx, link.Target) {
			continue
		}
		found = append(found, findings.Finding{
			RuleID:   findings.RuleBrokenExternalLink,
			Severity: findings.SeverityWarning,
			Message:  fmt.Sprintf("external link %q is unreachable", link.Target),
			FilePath: doc.Path,
			Line:     link.Line,
		})
	}

	return found
}

// reachable performs a HEAD request, falling back to GET for servers that
// reject HEAD. Results are cached per URL for the duration of the run.
func (e *ExternalLinkChecker) reachable(ctx context.Context, url string) bool {
	e.mu.Lock()
	if ok, seen := e.visited[url]; seen {
		e.mu.Unlock()
		return ok
	}
	e.mu.Unlock()

	ok := e.probe(ctx, url)

	e.mu.Lock()
	e.visited[url] = ok
	e.mu.Unlock()
	return ok
}

func (e *ExternalLinkChecker) probe(ctx context.Context, url string) bool {
	resp, err := e.client.R().SetContext(ctx).Head(url)
	if err == nil && resp.StatusCode() < http.StatusBadRequest {
		return true
	}
	if err == nil && resp.StatusCode() == http.StatusMethodNotAllowed {
		resp, err = e.client.R().SetContext(ctx).Get(url)
		if err == nil && resp.StatusCode() < http.StatusBadRequest {
			return true
		}
	}
	e.logger.Debug("external link probe failed", "url", url, "error", err)
	return false
}
