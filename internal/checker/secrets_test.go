package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsentry/docsentry/internal/docs"
	"github.com/docsentry/docsentry/internal/findings"
	"github.com/docsentry/docsentry/internal/markdown"
)

func TestSecretScanner(t *testing.T) {
	doc := docs.NewDocument("wallet.md", "")

	tests := []struct {
		name      string
		source    string
		extra     []string
		wantCount int
	}{
		{
			name:      "Long base58 private key",
			source:    `const privateKey = "5Kb8kLf9zgWQnogidDA76MzPL6TsZZY36hWXMssSzNydYXYB9KF";`,
			wantCount: 1,
		},
		{
			name:      "Canonical system program placeholder",
			source:    `const privateKey = "11111111111111111111111111111112";`,
			wantCount: 0,
		},
		{
			name:      "Hex secret",
			source:    `secretKey: "0xdeadbeefdeadbeefdeadbeefdeadbeefdeadbeef"`,
			wantCount: 1,
		},
		{
			name:      "Short value ignored",
			source:    `const apiKey = "abc123";`,
			wantCount: 0,
		},
		{
			name:      "Innocent identifier ignored",
			source:    `const address = "5Kb8kLf9zgWQnogidDA76MzPL6TsZZY36hWXMssSzNydYXYB9KF";`,
			wantCount: 0,
		},
		{
			name:      "Config allow-list entry",
			source:    `const secretKey = "5Kb8kLf9zgWQnogidDA76MzPL6TsZZY36hWXMssSzNydYXYB9KF";`,
			extra:     []string{"5Kb8kLf9zgWQnogidDA76MzPL6TsZZY36hWXMssSzNydYXYB9KF"},
			wantCount: 0,
		},
		{
			name:      "Template marker placeholder",
			source:    `const privateKey = "YOUR_PRIVATE_KEY";`,
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scanner := NewSecretScanner(tt.extra)
			block := markdown.CodeBlock{Language: "ts", Source: tt.source, Line: 10, Ordinal: 1}

			found := scanner.Scan(doc, block)
			assert.Len(t, found, tt.wantCount)
			for _, f := range found {
				assert.Equal(t, findings.RuleHardcodedSecret, f.RuleID)
				assert.Equal(t, findings.SeverityError, f.Severity)
			}
		})
	}
}

func TestSecretScannerLineMapping(t *testing.T) {
	doc := docs.NewDocument("wallet.md", "")
	block := markdown.CodeBlock{
		Language: "ts",
		Source:   "const ok = 1;\nconst privateKey = \"5Kb8kLf9zgWQnogidDA76MzPL6TsZZY36hWXMssSzNydYXYB9KF\";",
		Line:     4,
		Ordinal:  2,
	}

	found := NewSecretScanner(nil).Scan(doc, block)
	require.Len(t, found, 1)
	// opening fence on line 4, secret on the second snippet line
	assert.Equal(t, 6, found[0].Line)
	assert.Equal(t, 2, found[0].BlockOrdinal)
}
