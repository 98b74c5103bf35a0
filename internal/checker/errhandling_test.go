package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsentry/docsentry/internal/docs"
	"github.com/docsentry/docsentry/internal/findings"
	"github.com/docsentry/docsentry/internal/markdown"
)

func TestCheckErrorHandling(t *testing.T) {
	doc := docs.NewDocument("guide.md", "")

	tests := []struct {
		name   string
		source string
		want   int
	}{
		{
			name:   "Await without handling",
			source: "const balance = await connection.getBalance(key);",
			want:   1,
		},
		{
			name:   "Await inside try/catch",
			source: "try {\n  const balance = await connection.getBalance(key);\n} catch (err) {\n  console.error(err);\n}",
			want:   0,
		},
		{
			name:   "Promise chain with catch",
			source: "fetch(url).then((r) => r.json()).catch(console.error);",
			want:   0,
		},
		{
			name:   "Promise chain without catch",
			source: "fetch(url).then((r) => r.json());",
			want:   1,
		},
		{
			name:   "Explicit error result check",
			source: "const result = await rpc.call();\nif (error) {\n  return;\n}",
			want:   0,
		},
		{
			name:   "No async pattern at all",
			source: "const x: number = 1;",
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block := markdown.CodeBlock{Language: "ts", Source: tt.source, Line: 1, Ordinal: 1}
			found := CheckErrorHandling(doc, block)
			assert.Len(t, found, tt.want)
			for _, f := range found {
				assert.Equal(t, findings.RuleMissingErrorHandling, f.RuleID)
				// heuristic rule never escalates to Error severity
				assert.Equal(t, findings.SeverityWarning, f.Severity)
			}
		})
	}
}

func TestCheckErrorHandlingPointsAtAsyncCall(t *testing.T) {
	doc := docs.NewDocument("guide.md", "")
	block := markdown.CodeBlock{
		Language: "ts",
		Source:   "const conn = connect();\nconst balance = await conn.getBalance(key);",
		Line:     7,
		Ordinal:  1,
	}

	found := CheckErrorHandling(doc, block)
	require.Len(t, found, 1)
	assert.Equal(t, 9, found[0].Line)
}
