package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsentry/docsentry/internal/findings"
)

func TestToSarif(t *testing.T) {
	all := []findings.Finding{
		{RuleID: findings.RuleCompileError, Severity: findings.SeverityError, Message: "type mismatch", FilePath: "guides/a.md", Line: 12},
		{RuleID: findings.RuleMissingErrorHandling, Severity: findings.SeverityWarning, Message: "no handling", FilePath: "guides/a.md", Line: 30},
	}
	r := Aggregate("run-1", "./docs", 3, all)

	doc, err := ToSarif(r)
	require.NoError(t, err)
	require.Len(t, doc.Runs, 1)

	run := doc.Runs[0]
	assert.Equal(t, toolName, run.Tool.Driver.Name)
	require.Len(t, run.Results, 2)

	first := run.Results[0]
	require.NotNil(t, first.RuleID)
	assert.Equal(t, string(findings.RuleCompileError), *first.RuleID)
	require.NotNil(t, first.Level)
	assert.Equal(t, "error", *first.Level)
	require.Len(t, first.Locations, 1)
	physical := first.Locations[0].PhysicalLocation
	require.NotNil(t, physical)
	assert.Equal(t, "guides/a.md", *physical.ArtifactLocation.URI)
	assert.Equal(t, 12, *physical.Region.StartLine)

	second := run.Results[1]
	require.NotNil(t, second.Level)
	assert.Equal(t, "warning", *second.Level)
}

func TestToSarifEmptyReport(t *testing.T) {
	doc, err := ToSarif(Aggregate("run-1", ".", 0, nil))
	require.NoError(t, err)
	require.Len(t, doc.Runs, 1)
	assert.Empty(t, doc.Runs[0].Results)
}
