package toolchain

import (
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/gjson"
)

// CompilerArgsFromTSConfig reads a tsconfig.json and converts the subset of
// compilerOptions that matters for snippet checking into tsc CLI arguments.
// Only plain JSON is supported; options outside the subset are ignored.
func CompilerArgsFromTSConfig(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tsconfig %q: %w", path, err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("tsconfig %q is not valid JSON", path)
	}

	var args []string
	options := gjson.GetBytes(data, "compilerOptions")

	if v := options.Get("strict"); v.Exists() {
		args = append(args, "--strict", boolArg(v.Bool()))
	}
	if v := options.Get("target"); v.Exists() {
		args = append(args, "--target", v.String())
	}
	if v := options.Get("module"); v.Exists() {
		args = append(args, "--module", v.String())
	}
	if v := options.Get("lib"); v.IsArray() {
		var libs []string
		v.ForEach(func(_, lib gjson.Result) bool {
			libs = append(libs, lib.String())
			return true
		})
		if len(libs) > 0 {
			args = append(args, "--lib", strings.Join(libs, ","))
		}
	}

	return args, nil
}

func boolArg(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
