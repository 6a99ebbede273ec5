// Package main is the entry point for the onenotestats CLI tool.
package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/aidanlsb/onenotestats/internal/cli"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr)
			fmt.Fprintln(os.Stderr, "**** PANIC ****")
			fmt.Fprintln(os.Stderr, r)
			fmt.Fprintln(os.Stderr, "**** STACK TRACE ****")
			os.Stderr.Write(debug.Stack())
			os.Exit(-1)
		}
	}()

	if err := cli.Execute(); err != nil {
		os.Exit(-1)
	}
}
