package checker

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/docsentry/docsentry/internal/docs"
	"github.com/docsentry/docsentry/internal/findings"
	"github.com/docsentry/docsentry/internal/markdown"
	"github.com/docsentry/docsentry/internal/toolchain"
	"github.com/docsentry/docsentry/pkg/shared/config"
	sharederrors "github.com/docsentry/docsentry/pkg/shared/errors"
)

// Checker runs the static rules against one document at a time. It holds
// no per-document state, so a single instance is shared by all workers.
type Checker struct {
	languages map[string]struct{}
	tc        toolchain.Toolchain
	secrets   *SecretScanner
	external  *ExternalLinkChecker
	logger    hclog.Logger
}

// New builds a Checker. The toolchain handle is passed in explicitly so
// that parallel workers never reach for process-wide singletons. external
// may be nil when external link checking is disabled.
func New(cfg *config.Config, languages []string, tc toolchain.Toolchain, external *ExternalLinkChecker, logger hclog.Logger) *Checker {
	langs := make(map[string]struct{}, len(languages))
	for _, lang := range languages {
		langs[strings.ToLower(strings.TrimSpace(lang))] = struct{}{}
	}
	return &Checker{
		languages: langs,
		tc:        tc,
		secrets:   NewSecretScanner(cfg.Checker.SecretAllowList),
		external:  external,
		logger:    logger,
	}
}

// CheckDocument extracts the document's code blocks and runs every rule.
// knownPaths is the full set of document paths loaded in this run, used by
// the internal link rule. Rules are independent: a failing rule records a
// finding and the rest still run. Only a toolchain invocation failure
// aborts, since skipping type checks silently would fake a passing run.
func (c *Checker) CheckDocument(ctx context.Context, doc docs.Document, knownPaths map[string]struct{}) ([]findings.Finding, error) {
	blocks, found := markdown.ExtractBlocks(doc)

	for _, block := range blocks {
		if _, ok := c.languages[block.Language]; ok {
			compileFindings, err := c.compileRule(ctx, doc, block)
			if err != nil {
				return nil, err
			}
			found = append(found, compileFindings...)
			found = append(found, CheckErrorHandling(doc, block)...)
		}
		found = append(found, c.secrets.Scan(doc, block)...)
	}

	found = append(found, CheckInternalLinks(doc, knownPaths)...)

	if c.external != nil {
		found = append(found, c.external.Check(ctx, doc)...)
	}

	return found, nil
}

// compileRule type-checks one block via the external toolchain and maps
// diagnostics back to document lines.
func (c *Checker) compileRule(ctx context.Context, doc docs.Document, block markdown.CodeBlock) ([]findings.Finding, error) {
	diags, err := c.tc.Check(ctx, block.Source)
	if err != nil {
		if errors.Is(err, toolchain.ErrTimeout) {
			c.logger.Warn("type check timed out", "path", doc.Path, "line", block.Line)
			return []findings.Finding{{
				RuleID:        findings.RuleCompileError,
				Severity:      findings.SeverityError,
				Message:       fmt.Sprintf("type check of %s block #%d timed out", blockLabel(block), block.Ordinal),
				FilePath:      doc.Path,
				Line:          block.Line,
				BlockLanguage: block.Language,
				BlockOrdinal:  block.Ordinal,
			}}, nil
		}
		var tErr *sharederrors.ToolchainError
		if errors.As(err, &tErr) {
			return nil, err
		}
		return nil, fmt.Errorf("type check failed for %q: %w", doc.Path, err)
	}

	var found []findings.Finding
	for _, diag := range diags {
		found = append(found, findings.Finding{
			RuleID:   findings.RuleCompileError,
			Severity: findings.SeverityError,
			Message:  fmt.Sprintf("%s (%s block #%d, %s)", diag.Message, blockLabel(block), block.Ordinal, diag.Code),
			FilePath: doc.Path,
			// snippet line 1 is the line after the opening fence
			Line:          block.Line + diag.Line,
			BlockLanguage: block.Language,
			BlockOrdinal:  block.Ordinal,
		})
	}
	return found, nil
}

func blockLabel(block markdown.CodeBlock) string {
	if block.Language == "" {
		return "untagged"
	}
	return block.Language
}
