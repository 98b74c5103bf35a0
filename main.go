package main

import (
	"os"

	"github.com/docsentry/docsentry/cmd"
)

func main() {
	code := cmd.Execute()
	os.Exit(code)
}
