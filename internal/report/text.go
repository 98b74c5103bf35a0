package report

import (
	"fmt"
	"io"
)

// WriteText renders the human-readable report. Output is deterministic:
// identical inputs produce byte-identical text.
func WriteText(w io.Writer, r *Report) error {
	for _, group := range r.ByDocument() {
		if _, err := fmt.Fprintf(w, "%s\n", group.Path); err != nil {
			return err
		}
		for _, f := range group.Findings {
			location := fmt.Sprintf("%d", f.Line)
			if _, err := fmt.Fprintf(w, "  %-5s %-8s %-24s %s\n", location, f.Severity, f.RuleID, f.Message); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "%s\n", r.Summary())
	return err
}
