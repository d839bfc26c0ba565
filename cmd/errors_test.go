package cmd_test

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fuse-open/android-build-tools/cmd"
	"github.com/fuse-open/android-build-tools/internal/provision"
	"github.com/fuse-open/android-build-tools/internal/sdkmanager"
	"github.com/fuse-open/android-build-tools/internal/ui"
)

func TestReportError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		contains []string
		excludes []string
	}{
		{
			name:     "hint from typed error",
			err:      &provision.NoJDKError{Minimum: 11},
			contains: []string{"ERROR: JDK 11 or higher was not found", "https://adoptium.net/"},
			excludes: []string{provision.IssuesURL},
		},
		{
			name:     "permission hint through wrapping",
			err: fmt.Errorf("installing tools: %w", &provision.PermissionError{
				Path: filepath.Join("sdk", "cmdline-tools", "temp"),
				Err:  errors.New("denied"),
			}),
			contains: []string{"ERROR: Installing tools", `sudo chown -R "$(whoami)" "` + filepath.Join("sdk", "cmdline-tools") + `"`},
		},
		{
			name:     "incompatible jdk",
			err:      fmt.Errorf("accepting licenses: %w", sdkmanager.ErrIncompatibleJDK),
			contains: []string{"ERROR: Incompatible JDK version detected", provision.IssuesURL},
			excludes: []string{"accepting licenses"},
		},
		{
			name: "sdkmanager output",
			err: fmt.Errorf("installing ndk;21.4.7075529: %w", &sdkmanager.ExitError{
				Args:   []string{"ndk;21.4.7075529"},
				Code:   1,
				Output: "Warning: Failed to find package",
			}),
			contains: []string{"exited with code 1", "Warning: Failed to find package", provision.IssuesURL},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var out, errOut bytes.Buffer
			cmd.ReportError(ui.NewWriterWithOutputs(&out, &errOut, true), tt.err)

			assert.Empty(t, out.String())

			for _, s := range tt.contains {
				assert.Contains(t, errOut.String(), s)
			}

			for _, s := range tt.excludes {
				assert.NotContains(t, errOut.String(), s)
			}
		})
	}
}
