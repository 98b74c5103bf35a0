package report

import (
	"fmt"
	"os"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/docsentry/docsentry/internal/findings"
)

const (
	toolName = "docsentry"
	toolURI  = "https://github.com/docsentry/docsentry"
)

var ruleDescriptions = map[findings.RuleID]string{
	findings.RuleCompileError:         "Code example fails to parse or type-check",
	findings.RuleMissingErrorHandling: "Async call without visible error handling",
	findings.RuleHardcodedSecret:      "String literal looks like a hardcoded secret",
	findings.RuleBrokenInternalLink:   "Relative link target does not resolve to a loaded document",
	findings.RuleBrokenExternalLink:   "External link target is unreachable",
}

// ToSarif converts the report into a SARIF document for code-scanning
// upload.
func ToSarif(r *Report) (*sarif.Report, error) {
	reportSarif, err := sarif.New(sarif.Version210)
	if err != nil {
		return nil, fmt.Errorf("failed to create SARIF report: %w", err)
	}

	run := sarif.NewRunWithInformationURI(toolName, toolURI)
	for _, f := range r.Findings {
		rule := run.AddRule(string(f.RuleID)).
			WithDescription(ruleDescriptions[f.RuleID]).
			WithDefaultConfiguration(&sarif.ReportingConfiguration{
				Level: toSarifErrorLevel(f.Severity),
			})

		location := sarif.NewLocation().WithPhysicalLocation(
			sarif.NewPhysicalLocation().
				WithArtifactLocation(sarif.NewArtifactLocation().WithUri(f.FilePath)).
				WithRegion(sarif.NewRegion().WithStartLine(f.Line)),
		)

		result := sarif.NewRuleResult(rule.ID).
			WithMessage(sarif.NewTextMessage(f.Message)).
			WithLevel(toSarifErrorLevel(f.Severity)).
			WithLocations([]*sarif.Location{location})
		run.AddResult(result)
	}
	reportSarif.AddRun(run)

	return reportSarif, nil
}

// WriteSarifFile saves the report in SARIF format.
func WriteSarifFile(r *Report, outputFile string) error {
	reportSarif, err := ToSarif(r)
	if err != nil {
		return err
	}

	file, err := os.OpenFile(outputFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("error writing SARIF report: %w", err)
	}
	defer func() { _ = file.Close() }()

	if err := reportSarif.PrettyWrite(file); err != nil {
		return fmt.Errorf("failed to serialize SARIF report: %w", err)
	}
	return nil
}

func toSarifErrorLevel(severity findings.Severity) string {
	switch severity {
	case findings.SeverityError:
		return "error"
	case findings.SeverityWarning:
		return "warning"
	default:
		return "note"
	}
}
