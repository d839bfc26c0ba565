// Package check reports whether the Android SDK install is complete and
// whether .unoconfig points at it.
package check

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/fuse-open/android-build-tools/internal/config"
	"github.com/fuse-open/android-build-tools/internal/jdk"
	"github.com/fuse-open/android-build-tools/internal/platform"
	"github.com/fuse-open/android-build-tools/internal/provision"
	"github.com/fuse-open/android-build-tools/internal/unoconfig"
)

// Opts configures the check operation.
type Opts struct {
	// Platform is the detected host config.
	Platform *platform.Config
	// Settings select the expected package versions.
	Settings *config.Settings
	// ConfigPath is the .unoconfig to inspect.
	ConfigPath string
	// SDKDirFromConfig makes the SDK directory recorded in .unoconfig, when
	// present, replace Platform.SDKDir. Used when the user gave no explicit
	// directory, since install may have been run with one.
	SDKDirFromConfig bool
	// Candidates are the discovered JDKs.
	Candidates []jdk.Candidate
	// OutputFormat is "text" or "json".
	OutputFormat string
	// Writer is the output destination.
	Writer io.Writer
}

// Status is the state of one checked item.
type Status string

// Item statuses.
const (
	StatusOK      Status = "ok"
	StatusWarning Status = "warning"
	StatusMissing Status = "missing"
	StatusStale   Status = "stale"
)

// Item is one line of the report.
type Item struct {
	Name   string `json:"name"`
	Status Status `json:"status"`
	Path   string `json:"path,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// Result holds the check report.
type Result struct {
	Items   []Item `json:"items"`
	Healthy bool   `json:"healthy"`
}

// Run inspects the install and renders the report.
func Run(opts *Opts) (*Result, error) {
	pf := opts.Platform
	if pf == nil {
		return nil, errors.New("platform config is required")
	}

	settings := opts.Settings
	if settings == nil {
		settings = config.Defaults()
	}

	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = unoconfig.DefaultPath(pf.HomeDir)
	}

	doc, err := unoconfig.Load(configPath)
	if err != nil {
		return nil, err
	}

	if opts.SDKDirFromConfig {
		if recorded, ok := doc.Lookup(unoconfig.KeySDKDir); ok && recorded != "" {
			relocated := *pf
			relocated.SDKDir = recorded
			pf = &relocated
		}
	}

	result := &Result{}
	result.Items = append(result.Items, checkJDK(opts.Candidates))
	result.Items = append(result.Items,
		checkPath("sdk", pf.SDKDir),
		checkPath("sdkmanager", pf.SDKManager()),
	)

	for _, pkg := range provision.Packages(settings) {
		dir := pf.SDKDir
		switch pkg.ID {
		case "build-tools":
			dir = pf.BuildToolsDir(pkg.Version)
		case "cmake":
			dir = pf.CMakeDir(pkg.Version)
		case "ndk":
			dir = pf.NDKDir(pkg.Version)
		}

		result.Items = append(result.Items, checkPath(pkg.String(), dir))
	}

	ndkDir := pf.NDKDir(settings.NDKVersion)
	result.Items = append(result.Items,
		checkEntry(doc, unoconfig.KeySDKDir, pf.SDKDir),
		checkEntry(doc, unoconfig.KeyNDKDir, ndkDir),
		checkEntry(doc, unoconfig.KeyJDKDir, ""),
	)

	result.Healthy = true

	for _, item := range result.Items {
		if item.Status == StatusMissing || item.Status == StatusStale {
			result.Healthy = false
		}
	}

	return result, renderResult(opts.Writer, opts.OutputFormat, result)
}

func checkJDK(candidates []jdk.Candidate) Item {
	selected, attempt, ok := jdk.InstallPolicy.Resolve(candidates)
	if !ok {
		return Item{
			Name:   "jdk",
			Status: StatusMissing,
			Detail: fmt.Sprintf("no JDK %d or higher among %d found", jdk.InstallPolicy.Minimum(), len(candidates)),
		}
	}

	item := Item{Name: "jdk", Status: StatusOK, Path: selected.Home, Detail: fmt.Sprintf("JDK %d", selected.Major)}
	if attempt.Warning != "" {
		item.Status = StatusWarning
		item.Detail = attempt.Warning
	}

	return item
}

func checkPath(name, path string) Item {
	if _, err := os.Stat(path); err != nil {
		return Item{Name: name, Status: StatusMissing, Path: path}
	}

	return Item{Name: name, Status: StatusOK, Path: path}
}

// checkEntry verifies a .unoconfig key. An empty want accepts any value
// that names an existing path.
func checkEntry(doc *unoconfig.Document, key, want string) Item {
	name := unoconfig.FileName + ":" + key

	got, ok := doc.Lookup(key)
	if !ok || got == "" {
		return Item{Name: name, Status: StatusMissing}
	}

	if want != "" && got != want {
		return Item{Name: name, Status: StatusStale, Path: got, Detail: "expected " + want}
	}

	if _, err := os.Stat(got); err != nil {
		return Item{Name: name, Status: StatusStale, Path: got, Detail: "path does not exist"}
	}

	return Item{Name: name, Status: StatusOK, Path: got}
}

func renderResult(w io.Writer, format string, result *Result) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(result)
	default:
		return renderText(w, result)
	}
}

func renderText(w io.Writer, result *Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if _, err := fmt.Fprintln(tw, "ITEM\tSTATUS\tPATH\tDETAIL"); err != nil {
		return err
	}

	for i := range result.Items {
		it := &result.Items[i]
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", it.Name, statusLabel(it.Status), it.Path, it.Detail); err != nil {
			return err
		}
	}

	return tw.Flush()
}

func statusLabel(s Status) string {
	switch s {
	case StatusMissing:
		return "MISSING"
	case StatusStale:
		return "STALE"
	default:
		return string(s)
	}
}
