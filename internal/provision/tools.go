package provision

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fuse-open/android-build-tools/internal/getter"
)

// installTools downloads the command-line tools into cmdline-tools/latest.
// It reports true when a usable install was already present.
//
// The archive is created before the download starts and removed only after
// the tools are in place, so a leftover archive marks an interrupted install
// and triggers a clean reinstall.
func (r *runner) installTools(ctx context.Context) (bool, error) {
	dir := r.pf.ToolsDir()
	zip := filepath.Join(r.pf.SDKDir, "cmdline-tools.zip")
	temp := filepath.Join(dir, "temp")
	latest := filepath.Join(dir, "latest")

	switch {
	case exists(zip):
		r.logger.Debug("removing interrupted tools install", "dir", dir)

		if err := os.RemoveAll(dir); err != nil {
			return false, r.permissionError(dir, err)
		}

		if err := os.Remove(zip); err != nil {
			return false, r.permissionError(zip, err)
		}
	case exists(filepath.Join(latest, "bin", "sdkmanager")) || exists(filepath.Join(latest, "bin", "sdkmanager.bat")):
		r.logger.Debug("command-line tools already installed", "dir", latest)

		return true, nil
	}

	if err := os.MkdirAll(temp, 0o750); err != nil {
		return false, r.permissionError(temp, err)
	}

	if err := touch(zip); err != nil {
		return false, r.permissionError(zip, err)
	}

	r.reporter.Info("Downloading " + r.pf.ToolsURL)

	err := r.fetcher.FetchFile(ctx, r.pf.ToolsURL, zip, getter.FetchOpts{Progress: r.reporter.Progress})
	r.reporter.EndProgress()

	if err != nil {
		return false, &DownloadError{URL: r.pf.ToolsURL, Err: err}
	}

	if err := r.extractor.Extract(zip, temp); err != nil {
		return false, &DownloadError{URL: r.pf.ToolsURL, Err: err}
	}

	if err := os.RemoveAll(latest); err != nil {
		return false, r.permissionError(latest, err)
	}

	if err := os.Rename(filepath.Join(temp, "cmdline-tools"), latest); err != nil {
		return false, r.permissionError(latest, err)
	}

	if err := os.Remove(zip); err != nil {
		r.logger.Warn("removing tools archive", "path", zip, "error", err)
	}

	if err := os.RemoveAll(temp); err != nil {
		r.logger.Warn("removing temp directory", "path", temp, "error", err)
	}

	return false, nil
}

func (r *runner) permissionError(path string, err error) error {
	return &PermissionError{Path: path, Windows: r.pf.Windows, Err: err}
}

func exists(path string) bool {
	_, err := os.Stat(path)

	return err == nil
}
