package config

import (
	"fmt"
	"regexp"
	"strings"
)

// versionRe matches sdkmanager package versions such as 3.18.1 or
// 21.4.7075529. Build numbers like the tools version are plain digits.
var versionRe = regexp.MustCompile(`^[0-9]+(\.[0-9]+)*(-[A-Za-z0-9.]+)?$`)

// Validate checks Settings for required fields and valid values.
func Validate(s *Settings) error {
	versions := []struct {
		field string
		value string
	}{
		{"tools_version", s.ToolsVersion},
		{"cmake_version", s.CMakeVersion},
		{"ndk_version", s.NDKVersion},
	}

	if s.InstallBuildTools() {
		versions = append(versions, struct {
			field string
			value string
		}{"build_tools_version", s.BuildToolsVersion})
	}

	for _, v := range versions {
		if strings.TrimSpace(v.value) == "" {
			return fmt.Errorf("%s is required", v.field)
		}

		if !versionRe.MatchString(v.value) {
			return fmt.Errorf("%s: invalid version %q", v.field, v.value)
		}
	}

	if s.DownloadAttempts < 1 {
		return fmt.Errorf("download_attempts must be at least 1, got %d", s.DownloadAttempts)
	}

	for i, p := range s.JDKSearchPaths {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("jdk_search_paths[%d]: path is empty", i)
		}
	}

	return nil
}
