package provision

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/fuse-open/android-build-tools/internal/jdk"
)

// IssuesURL is where users are asked to report install failures.
const IssuesURL = "https://github.com/fuse-open/android-build-tools/issues"

// Hinter is implemented by errors that carry a remediation message.
type Hinter interface {
	Hint() string
}

// EnvironmentError reports a required environment variable that is unset.
type EnvironmentError struct {
	Var string
}

func (e *EnvironmentError) Error() string {
	return "your " + e.Var + " variable is undefined"
}

// Hint explains the usual cause.
func (e *EnvironmentError) Hint() string {
	return "If you're running with 'sudo', try running again from your user account without 'sudo'."
}

// NoJDKError is returned when no installed JDK satisfies the policy.
type NoJDKError struct {
	Minimum int
	// Candidates are the JDKs that were found but rejected.
	Candidates []jdk.Candidate
}

func (e *NoJDKError) Error() string {
	return "JDK " + strconv.Itoa(e.Minimum) + " or higher was not found"
}

// Hint points at a JDK distribution.
func (e *NoJDKError) Hint() string {
	return "Please get OpenJDK from https://adoptium.net/ and try again."
}

// PermissionError is returned when a file or directory below the SDK could
// not be created or replaced.
type PermissionError struct {
	Path    string
	Windows bool
	Err     error
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("failed to create file or directory %s: %v", e.Path, e.Err)
}

func (e *PermissionError) Unwrap() error {
	return e.Err
}

// Hint asks the user to fix ownership of the parent directory.
func (e *PermissionError) Hint() string {
	dir := filepath.Dir(e.Path)
	msg := `Please make sure you have necessary permissions to write in "` + dir + `".`

	if !e.Windows {
		msg += "\n\n    sudo chown -R \"$(whoami)\" \"" + dir + `"`
	}

	return msg
}

// DownloadError wraps a failed download or extraction of the tools archive.
type DownloadError struct {
	URL string
	Err error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download of %s failed: %v", e.URL, e.Err)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

// Hint suggests retrying.
func (e *DownloadError) Hint() string {
	return "Please try again later or report the issue at " + IssuesURL
}
