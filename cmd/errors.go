package cmd

import (
	"errors"
	"strings"

	"github.com/fuse-open/android-build-tools/internal/provision"
	"github.com/fuse-open/android-build-tools/internal/sdkmanager"
	"github.com/fuse-open/android-build-tools/internal/ui"
)

// ReportError prints err followed by the remediation it carries, or by a
// pointer to the issue tracker when it carries none.
func ReportError(w *ui.Writer, err error) {
	w.Error(errorMessage(err))

	var hinter provision.Hinter
	if errors.As(err, &hinter) {
		w.Hint(hinter.Hint())

		return
	}

	w.Hint("Please read output for clues or report the issue at " + provision.IssuesURL)
}

func errorMessage(err error) string {
	msg := err.Error()

	// The wrapped context adds nothing the user can act on.
	if errors.Is(err, sdkmanager.ErrIncompatibleJDK) {
		msg = sdkmanager.ErrIncompatibleJDK.Error()
	}

	if msg != "" {
		msg = strings.ToUpper(msg[:1]) + msg[1:]
	}

	var exitErr *sdkmanager.ExitError
	if errors.As(err, &exitErr) && exitErr.Output != "" {
		msg += "\n\n" + exitErr.Output
	}

	return msg
}
