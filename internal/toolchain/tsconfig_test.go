package toolchain

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompilerArgsFromTSConfig(t *testing.T) {
	tmpDir := t.TempDir()

	writeTSConfig := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(tmpDir, "tsconfig.json")
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		return path
	}

	t.Run("Full options", func(t *testing.T) {
		path := writeTSConfig(t, `{
			"compilerOptions": {
				"strict": true,
				"target": "ES2020",
				"module": "commonjs",
				"lib": ["ES2020", "DOM"]
			}
		}`)

		args, err := CompilerArgsFromTSConfig(path)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"--strict", "true",
			"--target", "ES2020",
			"--module", "commonjs",
			"--lib", "ES2020,DOM",
		}, args)
	})

	t.Run("Empty compiler options", func(t *testing.T) {
		path := writeTSConfig(t, `{"compilerOptions": {}}`)

		args, err := CompilerArgsFromTSConfig(path)
		require.NoError(t, err)
		assert.Empty(t, args)
	})

	t.Run("Invalid JSON", func(t *testing.T) {
		path := writeTSConfig(t, `{"compilerOptions":`)

		_, err := CompilerArgsFromTSConfig(path)
		assert.Error(t, err)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := CompilerArgsFromTSConfig(filepath.Join(tmpDir, "absent.json"))
		assert.Error(t, err)
	})
}
