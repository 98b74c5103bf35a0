package toolchain

import (
	"regexp"
	"strconv"
	"strings"
)

// diagnosticPattern matches tsc --pretty false output lines:
//
//	snippet.ts(3,7): error TS2322: Type 'string' is not assignable ...
var diagnosticPattern = regexp.MustCompile(`^(.+?)\((\d+),(\d+)\): (?:error|warning) (TS\d+): (.+)$`)

// ParseDiagnostics extracts compiler diagnostics for the given file from
// raw tsc output. Diagnostics against other files (the ambient shim, lib
// files) are dropped: a broken shim must not be blamed on the snippet.
func ParseDiagnostics(output, fileName string) []Diagnostic {
	var diags []Diagnostic

	for _, line := range strings.Split(output, "\n") {
		match := diagnosticPattern.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if match == nil {
			continue
		}
		if match[1] != fileName {
			continue
		}
		lineNo, _ := strconv.Atoi(match[2])
		colNo, _ := strconv.Atoi(match[3])
		diags = append(diags, Diagnostic{
			Line:    lineNo,
			Column:  colNo,
			Code:    match[4],
			Message: match[5],
		})
	}

	return diags
}

// HasFileDiagnostics reports whether any output line is a file-scoped
// diagnostic. A non-zero compiler exit without a single one means the
// invocation itself was rejected (bad option, unusable configuration) and
// no file was checked at all.
func HasFileDiagnostics(output string) bool {
	for _, line := range strings.Split(output, "\n") {
		if diagnosticPattern.MatchString(strings.TrimRight(line, "\r")) {
			return true
		}
	}
	return false
}
