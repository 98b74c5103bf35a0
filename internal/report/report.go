package report

import (
	"fmt"
	"sort"

	"github.com/docsentry/docsentry/internal/findings"
)

// Report aggregates all findings of one run. Derived per run, never
// persisted.
type Report struct {
	RunID     string             `json:"run_id"`
	Root      string             `json:"root"`
	Documents int                `json:"documents"`
	Findings  []findings.Finding `json:"findings"`
	Errors    int                `json:"errors"`
	Warnings  int                `json:"warnings"`
	// Passed is true iff no Error-severity finding exists. Warning
	// escalation is an exit-code concern, not a report concern.
	Passed bool `json:"passed"`
}

// Aggregate consumes the complete finding stream and produces the report.
// The input is always processed in full; authors get every problem in one
// run instead of one error at a time. Ordering is deterministic so CI
// diffs stay stable.
func Aggregate(runID, root string, documents int, all []findings.Finding) *Report {
	sorted := make([]findings.Finding, len(all))
	copy(sorted, all)
	sort.SliceStable(sorted, func(i, j int) bool {
		return findings.Less(sorted[i], sorted[j])
	})

	r := &Report{
		RunID:     runID,
		Root:      root,
		Documents: documents,
		Findings:  sorted,
	}
	for _, f := range sorted {
		switch f.Severity {
		case findings.SeverityError:
			r.Errors++
		case findings.SeverityWarning:
			r.Warnings++
		}
	}
	r.Passed = r.Errors == 0

	return r
}

// Summary renders the closing report line.
func (r *Report) Summary() string {
	return fmt.Sprintf("%d errors, %d warnings across %d documents", r.Errors, r.Warnings, r.Documents)
}

// Failed reports whether the run should exit non-zero, honoring the
// warning escalation flag.
func (r *Report) Failed(failOnWarning bool) bool {
	if !r.Passed {
		return true
	}
	return failOnWarning && r.Warnings > 0
}

// ByDocument groups the (already sorted) findings by document path,
// preserving order.
func (r *Report) ByDocument() []DocumentFindings {
	var groups []DocumentFindings
	for _, f := range r.Findings {
		if len(groups) == 0 || groups[len(groups)-1].Path != f.FilePath {
			groups = append(groups, DocumentFindings{Path: f.FilePath})
		}
		last := &groups[len(groups)-1]
		last.Findings = append(last.Findings, f)
	}
	return groups
}

// DocumentFindings is the per-document slice of the report.
type DocumentFindings struct {
	Path     string
	Findings []findings.Finding
}
