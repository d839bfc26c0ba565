// Package ui prints the installer's user-facing messages.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
)

// ANSI color codes.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
)

const bannerWidth = 79

// Writer provides styled output methods that respect color settings.
type Writer struct {
	out     io.Writer
	errOut  io.Writer
	noColor bool
}

// NewWriter creates a Writer that writes to stdout/stderr.
// Color is disabled when noColor is true or the NO_COLOR env var is set.
func NewWriter(noColor bool) *Writer {
	return &Writer{
		out:     os.Stdout,
		errOut:  os.Stderr,
		noColor: noColor || os.Getenv("NO_COLOR") != "",
	}
}

// NewWriterWithOutputs creates a Writer with custom output destinations.
// Intended for testing.
func NewWriterWithOutputs(out, errOut io.Writer, noColor bool) *Writer {
	return &Writer{
		out:     out,
		errOut:  errOut,
		noColor: noColor,
	}
}

// Out returns the standard output destination.
func (w *Writer) Out() io.Writer {
	return w.out
}

// Success prints a success message with a green checkmark prefix.
func (w *Writer) Success(msg string) {
	writeLine(w.out, w.styled(colorGreen, "✓"), msg)
}

// Warning prints a warning message to stderr with a yellow prefix.
func (w *Writer) Warning(msg string) {
	writeLine(w.errOut, w.styled(colorYellow, "WARNING:"), msg)
}

// Error prints an error message to stderr with a red prefix, preceded by a
// blank line so it stands out from tool output.
func (w *Writer) Error(msg string) {
	w.blank(w.errOut)
	writeLine(w.errOut, w.styled(colorRed, "ERROR:"), msg)
}

// Hint prints an indented remediation line to stderr after an error.
func (w *Writer) Hint(msg string) {
	w.blank(w.errOut)

	for _, line := range strings.Split(msg, "\n") {
		writeRaw(w.errOut, line+"\n")
	}
}

// Info prints an informational message.
func (w *Writer) Info(msg string) {
	writeRaw(w.out, msg+"\n")
}

// Bold prints text in bold.
func (w *Writer) Bold(msg string) string {
	return w.styled(colorBold, msg)
}

// Section prints body framed by a titled banner.
func (w *Writer) Section(title, body string) {
	head := "--- " + title + " "
	if n := bannerWidth - len(head); n > 0 {
		head += strings.Repeat("-", n)
	}

	w.blank(w.out)
	writeRaw(w.out, w.styled(colorCyan, head)+"\n")
	writeRaw(w.out, body+"\n")
	writeRaw(w.out, w.styled(colorCyan, strings.Repeat("-", bannerWidth))+"\n")
}

// Progress redraws the download progress line in place.
func (w *Writer) Progress(percent int, remaining int64) {
	if remaining < 0 {
		remaining = 0
	}

	writeRaw(w.out, fmt.Sprintf("\r%d %% - %s remaining   ", percent, humanize.Bytes(uint64(remaining))))
}

// EndProgress terminates the progress line.
func (w *Writer) EndProgress() {
	w.blank(w.out)
}

// Successf prints a formatted success message.
func (w *Writer) Successf(format string, args ...any) {
	w.Success(fmt.Sprintf(format, args...))
}

// Warningf prints a formatted warning message.
func (w *Writer) Warningf(format string, args ...any) {
	w.Warning(fmt.Sprintf(format, args...))
}

// Errorf prints a formatted error message.
func (w *Writer) Errorf(format string, args ...any) {
	w.Error(fmt.Sprintf(format, args...))
}

// Infof prints a formatted informational message.
func (w *Writer) Infof(format string, args ...any) {
	w.Info(fmt.Sprintf(format, args...))
}

func (w *Writer) styled(color, text string) string {
	if w.noColor {
		return text
	}

	return color + text + colorReset
}

func (w *Writer) blank(out io.Writer) {
	writeRaw(out, "\n")
}

func writeLine(out io.Writer, prefix, msg string) {
	writeRaw(out, prefix+" "+msg+"\n")
}

func writeRaw(out io.Writer, s string) {
	if _, err := io.WriteString(out, s); err != nil {
		// Best-effort output; if stderr fails there's nothing useful to do.
		return
	}
}
