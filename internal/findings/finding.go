package findings

// RuleID identifies the check that produced a finding.
type RuleID string

const (
	RuleCompileError         RuleID = "compile-error"
	RuleMissingErrorHandling RuleID = "missing-error-handling"
	RuleHardcodedSecret      RuleID = "hardcoded-secret"
	RuleBrokenInternalLink   RuleID = "broken-internal-link"
	RuleBrokenExternalLink   RuleID = "broken-external-link"
)

// Severity classifies a finding. Error severity fails the run; Warning is
// surfaced but non-failing by default.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding is a single reported issue against a document or one of its code
// blocks. The back-reference to the source is used for reporting only.
type Finding struct {
	RuleID   RuleID   `json:"rule_id"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`

	FilePath string `json:"file_path"`
	Line     int    `json:"line"`

	// Block metadata is set for per-block findings, zero for per-document
	// findings such as broken links.
	BlockLanguage string `json:"block_language,omitempty"`
	BlockOrdinal  int    `json:"block_ordinal,omitempty"`
}

// Less defines the deterministic report ordering: document path, then line,
// then block ordinal, then rule.
func Less(a, b Finding) bool {
	if a.FilePath != b.FilePath {
		return a.FilePath < b.FilePath
	}
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	if a.BlockOrdinal != b.BlockOrdinal {
		return a.BlockOrdinal < b.BlockOrdinal
	}
	return a.RuleID < b.RuleID
}
