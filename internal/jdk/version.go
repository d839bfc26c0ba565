package jdk

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	version "github.com/hashicorp/go-version"
)

var (
	releaseVersionRe = regexp.MustCompile(`^JAVA_VERSION="([^"]+)"`)
	outputVersionRe  = regexp.MustCompile(`version\s+"([^"]+)"`)
)

// ParseMajor extracts the feature release number from a Java version
// string. Legacy "1.x" versions map to x, so "1.8.0_322" yields 8.
func ParseMajor(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, errors.New("empty version")
	}

	// Update numbers use an underscore, which is build metadata in semver terms.
	v, err := version.NewVersion(strings.ReplaceAll(s, "_", "+"))
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", raw, err)
	}

	segments := v.Segments()
	if segments[0] == 1 && len(segments) > 1 && segments[1] > 1 {
		return segments[1], nil
	}

	return segments[0], nil
}

// parseVersionOutput parses the output of `java -version`.
func parseVersionOutput(output string) string {
	matches := outputVersionRe.FindStringSubmatch(output)
	if len(matches) > 1 {
		return matches[1]
	}

	return ""
}

// readReleaseVersion reads JAVA_VERSION from the release file every JDK
// since 9 (and most 8 builds) ship in their home directory.
func readReleaseVersion(home string) string {
	f, err := os.Open(filepath.Join(home, "release"))
	if err != nil {
		return ""
	}
	defer f.Close()

	s := bufio.NewScanner(f)
	for s.Scan() {
		if m := releaseVersionRe.FindStringSubmatch(strings.TrimSpace(s.Text())); m != nil {
			return m[1]
		}
	}

	return ""
}
