package files

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateDirPath(t *testing.T) {
	tmpDir := t.TempDir()

	tmpFile := filepath.Join(tmpDir, "file.md")
	if err := os.WriteFile(tmpFile, []byte("content"), 0644); err != nil {
		t.Fatalf("failed to create fixture: %v", err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{name: "Existing directory", path: tmpDir, wantErr: false},
		{name: "Regular file", path: tmpFile, wantErr: true},
		{name: "Missing path", path: filepath.Join(tmpDir, "missing"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDirPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDirPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestNormalizeExtensions(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{name: "Missing dots added", input: []string{"md", "mdx"}, want: []string{".md", ".mdx"}},
		{name: "Mixed case lowered", input: []string{".MD", "MdX"}, want: []string{".md", ".mdx"}},
		{name: "Blank entries dropped", input: []string{" ", ".md", ""}, want: []string{".md"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeExtensions(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("NormalizeExtensions(%v) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("NormalizeExtensions(%v)[%d] = %q, want %q", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}
