// Package platform resolves the per-OS download URL and install locations
// of the Android command-line tools.
package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// DefaultToolsVersion is the build number of the command-line tools archive.
const DefaultToolsVersion = "10406996"

const toolsURLPattern = "https://dl.google.com/android/repository/commandlinetools-{{os}}-{{version}}_latest.zip"

// ErrNoSDKLocation is returned on Windows when no ASCII-only SDK directory
// can be derived from the environment.
var ErrNoSDKLocation = errors.New("not able to detect Android SDK location")

// UnsupportedError reports an operating system without a tools archive.
type UnsupportedError struct {
	OS string
}

func (e *UnsupportedError) Error() string {
	return "unsupported platform " + e.OS
}

// Env looks up an environment variable.
type Env func(key string) (string, bool)

// MapEnv returns an Env backed by m.
func MapEnv(m map[string]string) Env {
	return func(key string) (string, bool) {
		v, ok := m[key]

		return v, ok
	}
}

// Config holds everything that differs between host platforms.
type Config struct {
	// OS is the GOOS value the config was derived for.
	OS string
	// Windows is true when OS is "windows".
	Windows bool
	// ToolsURL is the command-line tools archive for this OS.
	ToolsURL string
	// SDKDir is the Android SDK root.
	SDKDir string
	// Relocated holds the original SDK directory when it was rejected for
	// containing non-ASCII characters.
	Relocated string
	// HomeDir is the user's home directory.
	HomeDir string
	// LineEnding is the host line separator.
	LineEnding string
}

// Options tweak Detect.
type Options struct {
	// ToolsVersion overrides DefaultToolsVersion.
	ToolsVersion string
	// SDKDir overrides the detected SDK directory.
	SDKDir string
}

// Current detects the config of the running host.
func Current(opts Options) (*Config, error) {
	return Detect(runtime.GOOS, os.LookupEnv, opts)
}

// Detect derives the platform config for goos from env. It does not touch
// the filesystem.
func Detect(goos string, env Env, opts Options) (*Config, error) {
	version := opts.ToolsVersion
	if version == "" {
		version = DefaultToolsVersion
	}

	cfg := &Config{OS: goos, LineEnding: LineEnding(goos), HomeDir: UserHome(goos, env)}

	switch goos {
	case "darwin":
		cfg.ToolsURL = ToolsURL("mac", version)
		cfg.SDKDir = joinPath(goos, cfg.HomeDir, "Library", "Android", "sdk")
	case "linux":
		cfg.ToolsURL = ToolsURL("linux", version)
		cfg.SDKDir = joinPath(goos, cfg.HomeDir, "Android", "Sdk")
	case "windows":
		cfg.Windows = true
		cfg.ToolsURL = ToolsURL("win", version)

		// An explicit directory makes the ASCII fallback moot.
		if opts.SDKDir == "" {
			dir, relocated, err := windowsSDKDir(env)
			if err != nil {
				return nil, err
			}

			cfg.SDKDir = dir
			cfg.Relocated = relocated
		}
	default:
		return nil, &UnsupportedError{OS: goos}
	}

	if opts.SDKDir != "" {
		cfg.SDKDir = opts.SDKDir
		cfg.Relocated = ""
	}

	return cfg, nil
}

// UserHome returns the user's home directory as seen by goos.
func UserHome(goos string, env Env) string {
	if goos == "windows" {
		return lookup(env, "USERPROFILE")
	}

	return lookup(env, "HOME")
}

// LineEnding returns the text line separator of goos.
func LineEnding(goos string) string {
	if goos == "windows" {
		return "\r\n"
	}

	return "\n"
}

// windowsSDKDir picks %LOCALAPPDATA%\Android\sdk, falling back to
// ProgramData when the user profile path is not plain ASCII, which
// sdkmanager cannot handle.
func windowsSDKDir(env Env) (dir, relocated string, err error) {
	dir = joinPath("windows", lookup(env, "LOCALAPPDATA"), "Android", "sdk")
	if IsASCII(dir) {
		return dir, "", nil
	}

	relocated = dir

	switch {
	case lookup(env, "PROGRAMDATA") != "":
		dir = joinPath("windows", lookup(env, "PROGRAMDATA"), "Android", "sdk")
	case lookup(env, "SYSTEMDRIVE") != "":
		// PROGRAMDATA has been seen empty on some systems.
		dir = joinPath("windows", lookup(env, "SYSTEMDRIVE"), "ProgramData", "Android", "sdk")
	default:
		return "", relocated, ErrNoSDKLocation
	}

	return dir, relocated, nil
}

// ToolsURL renders the archive URL for an OS name as used by the download
// server ("mac", "linux", "win").
func ToolsURL(osName, version string) string {
	r := strings.NewReplacer(
		"{{os}}", osName,
		"{{version}}", version,
	)

	return r.Replace(toolsURLPattern)
}

// IsASCII reports whether s only holds printable ASCII characters.
func IsASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 32 || s[i] >= 127 {
			return false
		}
	}

	return true
}

// ToolsDir is the cmdline-tools directory inside the SDK.
func (c *Config) ToolsDir() string {
	return c.join(c.SDKDir, "cmdline-tools")
}

// SDKManager is the path of the sdkmanager launcher.
func (c *Config) SDKManager() string {
	return c.join(c.ToolsDir(), "latest", "bin", c.ScriptName("sdkmanager"))
}

// NDKDir is where sdkmanager installs the given NDK version.
func (c *Config) NDKDir(version string) string {
	return c.join(c.SDKDir, "ndk", version)
}

// CMakeDir is where sdkmanager installs the given CMake version.
func (c *Config) CMakeDir(version string) string {
	return c.join(c.SDKDir, "cmake", version)
}

// BuildToolsDir is where sdkmanager installs the given build-tools version.
func (c *Config) BuildToolsDir(version string) string {
	return c.join(c.SDKDir, "build-tools", version)
}

// AndroidUserDir is ~/.android.
func (c *Config) AndroidUserDir() string {
	return c.join(c.HomeDir, ".android")
}

// ScriptName appends .bat to launcher scripts on Windows.
func (c *Config) ScriptName(name string) string {
	if c.Windows {
		return name + ".bat"
	}

	return name
}

func (c *Config) join(elem ...string) string {
	return joinPath(c.OS, elem...)
}

// joinPath joins with the separator of goos so a config derived for another
// OS renders paths the way that OS would.
func joinPath(goos string, elem ...string) string {
	if goos == runtime.GOOS {
		return filepath.Join(elem...)
	}

	sep := "/"
	if goos == "windows" {
		sep = `\`
	}

	return strings.Join(elem, sep)
}

func lookup(env Env, key string) string {
	v, _ := env(key)

	return v
}

// String summarizes the config for debug logging.
func (c *Config) String() string {
	return fmt.Sprintf("%s sdk=%s tools=%s", c.OS, c.SDKDir, c.ToolsURL)
}
