// Package sdkmanager drives the sdkmanager tool shipped with the Android
// command-line tools.
package sdkmanager

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
)

// incompatibleMarker shows up in sdkmanager output when it runs on a JDK it
// cannot load its classes with.
const incompatibleMarker = "java.lang.NoClassDefFoundErrors"

// licenseAnswers accepts up to four license prompts.
const licenseAnswers = "y\ny\ny\ny\n"

// ErrIncompatibleJDK is returned when sdkmanager fails to start on the JDK
// it was given.
var ErrIncompatibleJDK = errors.New("incompatible JDK version detected")

// ExitError is returned when sdkmanager exits with a non-zero code.
type ExitError struct {
	Args   []string
	Code   int
	Output string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("sdkmanager %s: exited with code %d", strings.Join(e.Args, " "), e.Code)
}

// Package identifies an SDK package at a version, e.g. "ndk;21.4.7075529".
type Package struct {
	ID      string
	Version string
}

func (p Package) String() string {
	if p.Version == "" {
		return p.ID
	}

	return p.ID + ";" + p.Version
}

// Runner runs sdkmanager.
type Runner struct {
	// Path is the sdkmanager launcher.
	Path string
	// Env is the environment of the child process. JAVA_HOME must be set here.
	Env []string
	// Stderr receives the child's standard error. Nil discards it.
	Stderr io.Writer
	// Logger for debug output.
	Logger *slog.Logger
}

// Run invokes sdkmanager with args, answering "y" to license prompts.
// Standard output is captured and inspected; the error is ErrIncompatibleJDK
// when the JDK could not run sdkmanager and *ExitError for any other
// failure.
func (r *Runner) Run(ctx context.Context, args ...string) error {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger.Debug("running sdkmanager", "path", r.Path, "args", args)

	var stdout bytes.Buffer

	cmd := exec.CommandContext(ctx, r.Path, args...) //nolint:gosec // path is the sdkmanager we installed
	cmd.Env = r.Env
	cmd.Stdin = strings.NewReader(licenseAnswers)
	cmd.Stdout = &stdout
	cmd.Stderr = r.Stderr

	err := cmd.Run()
	output := strings.TrimSpace(stdout.String())

	if strings.Contains(output, incompatibleMarker) {
		return ErrIncompatibleJDK
	}

	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Args: args, Code: exitErr.ExitCode(), Output: output}
	}

	return fmt.Errorf("starting sdkmanager: %w", err)
}

// AcceptLicenses accepts all pending SDK licenses.
func (r *Runner) AcceptLicenses(ctx context.Context) error {
	return r.Run(ctx, "--licenses")
}

// Install installs one package.
func (r *Runner) Install(ctx context.Context, pkg Package) error {
	return r.Run(ctx, pkg.String())
}
