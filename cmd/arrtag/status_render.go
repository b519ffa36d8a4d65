package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"arrtag/internal/preflight"
)

const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
)

const (
	checkLabelWidth = 16
	checkIndent     = "  "
)

func renderCheckLine(result preflight.Result, colorize bool) string {
	label, color := "OK", ansiGreen
	if !result.Passed {
		label, color = "FAIL", ansiRed
	}
	status := fmt.Sprintf("[%s]", label)
	if result.Detail != "" {
		status = fmt.Sprintf("[%s] %s", label, result.Detail)
	}
	line := fmt.Sprintf("%s%-*s %s", checkIndent, checkLabelWidth, result.Name+":", status)
	if colorize {
		return color + line + ansiReset
	}
	return line
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
