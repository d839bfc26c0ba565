package jdk

import (
	"bufio"
	"bytes"
	"context"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Discovery sources recorded in Candidate.Sources.
const (
	SourceEnv      = "JAVA_HOME"
	SourcePath     = "PATH"
	SourceScan     = "scan"
	SourceIDE      = "android-studio"
	SourceRegistry = "registry"
	SourceCustom   = "custom"
)

// ideMarkers identify JDKs shipped inside an Android Studio install.
var ideMarkers = []string{"Android Studio", "android-studio"}

// DiscoverOpts configures Discover.
type DiscoverOpts struct {
	// Env looks up environment variables. Defaults to os.LookupEnv.
	Env func(string) (string, bool)
	// LookPath resolves the java executable on PATH. Defaults to exec.LookPath.
	LookPath func(string) (string, error)
	// Roots are extra directories whose children are scanned for JDKs.
	Roots []string
	// Homes are extra directories that are JDK homes themselves.
	Homes []string
	// SkipSystem disables the platform default locations and the Windows
	// registry. JAVA_HOME and PATH are still consulted.
	SkipSystem bool
	// Logger for debug output.
	Logger *slog.Logger
}

type discovery struct {
	ctx    context.Context
	logger *slog.Logger
	order  []string
	seen   map[string]*Candidate
}

// Discover enumerates the JDKs installed on this host.
func Discover(ctx context.Context, opts *DiscoverOpts) ([]Candidate, error) {
	if opts == nil {
		opts = &DiscoverOpts{}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	env := opts.Env
	if env == nil {
		env = os.LookupEnv
	}

	lookPath := opts.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	d := &discovery{
		ctx:    ctx,
		logger: logger,
		seen:   make(map[string]*Candidate),
	}

	if javaHome, ok := env("JAVA_HOME"); ok && strings.TrimSpace(javaHome) != "" {
		d.add(javaHome, SourceEnv)
	}

	if java, err := lookPath(exeName("java")); err == nil {
		if home := d.homeOfExecutable(java); home != "" {
			d.add(home, SourcePath)
		}
	}

	home, _ := env("HOME")
	if runtime.GOOS == "windows" {
		home, _ = env("USERPROFILE")
	}

	if !opts.SkipSystem {
		for _, h := range ideHomes(runtime.GOOS, home, env) {
			d.add(h, SourceIDE)
		}

		for _, h := range registryHomes(logger) {
			d.add(h, SourceRegistry)
		}
	}

	roots := opts.Roots
	if !opts.SkipSystem {
		roots = append(scanRoots(runtime.GOOS, home, env), roots...)
	}

	for _, root := range roots {
		d.scan(root)
	}

	for _, h := range opts.Homes {
		d.add(h, SourceCustom)
	}

	result := make([]Candidate, 0, len(d.order))
	for _, key := range d.order {
		result = append(result, *d.seen[key])
	}

	return result, nil
}

// scan adds every JDK home directly below root.
func (d *discovery) scan(root string) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		dir := filepath.Join(root, entry.Name())

		// macOS bundles keep the home two levels down.
		if bundle := filepath.Join(dir, "Contents", "Home"); isJavaHome(bundle) {
			dir = bundle
		}

		d.add(dir, SourceScan)
	}
}

// add records home as a candidate, merging flags with an earlier sighting.
func (d *discovery) add(home, source string) {
	home = filepath.Clean(strings.TrimSpace(home))
	if !isJavaHome(home) {
		return
	}

	if resolved, err := filepath.EvalSymlinks(home); err == nil {
		home = resolved
	}

	key := home
	if runtime.GOOS == "windows" {
		key = strings.ToLower(key)
	}

	rt, ok := d.seen[key]
	if !ok {
		rt = d.inspect(home)
		d.seen[key] = rt
		d.order = append(d.order, key)
	}

	switch source {
	case SourceEnv:
		rt.FromEnv = true
	case SourcePath:
		rt.OnPath = true
	}

	for _, s := range rt.Sources {
		if s == source {
			return
		}
	}

	rt.Sources = append(rt.Sources, source)
}

// inspect reads version and compiler information from a JDK home.
func (d *discovery) inspect(home string) *Candidate {
	rt := &Candidate{
		Home:           home,
		HasCompiler:    fileExists(filepath.Join(home, "bin", exeName("javac"))),
		BundledWithIDE: hasIDEMarker(home),
	}

	rt.Version = readReleaseVersion(home)
	if rt.Version == "" {
		rt.Version = d.runVersion(home)
	}

	if rt.Version != "" {
		major, err := ParseMajor(rt.Version)
		if err != nil {
			d.logger.Debug("unrecognized java version", "home", home, "version", rt.Version, "err", err)
		}

		rt.Major = major
	}

	d.logger.Debug("found jdk", "home", home, "version", rt.Version, "javac", rt.HasCompiler)

	return rt
}

func (d *discovery) runVersion(home string) string {
	java := filepath.Join(home, "bin", exeName("java"))

	out, err := exec.CommandContext(d.ctx, java, "-version").CombinedOutput() //nolint:gosec // java comes from a discovered JDK home
	if err != nil {
		d.logger.Debug("java -version failed", "java", java, "err", err)

		return ""
	}

	return parseVersionOutput(string(out))
}

// homeOfExecutable maps the java on PATH to its home directory. Launcher
// stubs such as /usr/bin/java on macOS are resolved by asking the JVM.
func (d *discovery) homeOfExecutable(java string) string {
	if resolved, err := filepath.EvalSymlinks(java); err == nil {
		java = resolved
	}

	home := filepath.Dir(filepath.Dir(java))
	if readReleaseVersion(home) != "" || fileExists(filepath.Join(home, "bin", exeName("javac"))) {
		return home
	}

	out, err := exec.CommandContext(d.ctx, java, "-XshowSettings:properties", "-version").CombinedOutput() //nolint:gosec // java comes from PATH
	if err != nil {
		return home
	}

	s := bufio.NewScanner(bytes.NewReader(out))
	for s.Scan() {
		text := strings.TrimSpace(s.Text())
		if strings.HasPrefix(text, "java.home = ") {
			return strings.TrimPrefix(text, "java.home = ")
		}
	}

	return home
}

// scanRoots lists the platform directories that usually hold JDKs.
func scanRoots(goos, home string, env func(string) (string, bool)) []string {
	var roots []string

	switch goos {
	case "darwin":
		roots = append(roots,
			"/Library/Java/JavaVirtualMachines",
			"/opt/homebrew/opt",
			"/usr/local/opt",
		)
		if home != "" {
			roots = append(roots, filepath.Join(home, "Library", "Java", "JavaVirtualMachines"))
		}
	case "linux":
		roots = append(roots, "/usr/lib/jvm", "/usr/java", "/opt")
	case "windows":
		for _, v := range []string{"ProgramFiles", "ProgramFiles(x86)"} {
			pf, ok := env(v)
			if !ok || pf == "" {
				continue
			}

			for _, vendor := range []string{"Java", "Eclipse Adoptium", "Eclipse Foundation", "Zulu", "Amazon Corretto", "Microsoft", "BellSoft"} {
				roots = append(roots, filepath.Join(pf, vendor))
			}
		}
	}

	if home != "" {
		roots = append(roots,
			filepath.Join(home, ".sdkman", "candidates", "java"),
			filepath.Join(home, ".jdks"),
		)
	}

	return roots
}

// ideHomes lists the locations of the JDK bundled with Android Studio.
func ideHomes(goos, home string, env func(string) (string, bool)) []string {
	var homes []string

	switch goos {
	case "darwin":
		for _, app := range []string{"/Applications/Android Studio.app", filepath.Join(home, "Applications", "Android Studio.app")} {
			homes = append(homes,
				filepath.Join(app, "Contents", "jbr", "Contents", "Home"),
				filepath.Join(app, "Contents", "jre", "Contents", "Home"),
				filepath.Join(app, "Contents", "jre", "jdk", "Contents", "Home"),
			)
		}
	case "linux":
		for _, dir := range []string{"/opt/android-studio", filepath.Join(home, "android-studio")} {
			homes = append(homes, filepath.Join(dir, "jbr"), filepath.Join(dir, "jre"))
		}
	case "windows":
		if pf, ok := env("ProgramFiles"); ok && pf != "" {
			dir := filepath.Join(pf, "Android", "Android Studio")
			homes = append(homes, filepath.Join(dir, "jbr"), filepath.Join(dir, "jre"))
		}
	}

	return homes
}

func hasIDEMarker(home string) bool {
	for _, m := range ideMarkers {
		if strings.Contains(home, m) {
			return true
		}
	}

	return false
}

func isJavaHome(dir string) bool {
	return fileExists(filepath.Join(dir, "bin", exeName("java")))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)

	return err == nil && !info.IsDir()
}

func exeName(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".exe"
	}

	return name
}
