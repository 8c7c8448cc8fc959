package main

import (
	"fmt"

	"github.com/alnah/go-wkhtmlapp"
)

// runOptions lists the option names a tool accepts, one per line.
func runOptions(args []string, env *Environment) error {
	if len(args) != 1 {
		printOptionsUsage(env.Stderr)
		return fmt.Errorf("%w: options takes exactly one tool name", ErrUsage)
	}

	var tool wkhtmlapp.Tool
	switch args[0] {
	case "pdf":
		tool = wkhtmlapp.ToolPDF
	case "image":
		tool = wkhtmlapp.ToolImage
	default:
		return fmt.Errorf("%w: unknown tool %q (want pdf or image)", ErrUsage, args[0])
	}

	for _, name := range wkhtmlapp.AllowedNames(tool) {
		fmt.Fprintln(env.Stdout, name)
	}
	return nil
}
