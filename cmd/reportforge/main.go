// Package main is the entry point for the reportforge CLI.
package main

import (
	"github.com/reportforge/sdk/internal/cmd"
)

func main() {
	cmd.Execute()
}
