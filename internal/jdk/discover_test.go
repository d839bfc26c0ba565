package jdk_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuse-open/android-build-tools/internal/jdk"
)

// fakeJDK creates a minimal JDK home with a release file.
func fakeJDK(t *testing.T, dir, javaVersion string, javac bool) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("fake JDK layout uses unix executable names")
	}

	bin := filepath.Join(dir, "bin")
	require.NoError(t, os.MkdirAll(bin, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(bin, "java"), []byte("#!/bin/sh\n"), 0o755))

	if javac {
		require.NoError(t, os.WriteFile(filepath.Join(bin, "javac"), []byte("#!/bin/sh\n"), 0o755))
	}

	release := "IMPLEMENTOR=\"Eclipse Adoptium\"\nJAVA_VERSION=\"" + javaVersion + "\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "release"), []byte(release), 0o644))

	resolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)

	return resolved
}

func noEnv(string) (string, bool) { return "", false }

func noPath(string) (string, error) { return "", errors.New("not found") }

func TestDiscover_ScanRoots(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	jdk17 := fakeJDK(t, filepath.Join(root, "temurin-17"), "17.0.9", true)
	jre8 := fakeJDK(t, filepath.Join(root, "jre-8"), "1.8.0_392", false)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "not-a-jdk"), 0o750))

	got, err := jdk.Discover(context.Background(), &jdk.DiscoverOpts{
		Env:        noEnv,
		LookPath:   noPath,
		Roots:      []string{root},
		SkipSystem: true,
	})
	require.NoError(t, err)
	require.Len(t, got, 2)

	byHome := map[string]jdk.Candidate{}
	for _, rt := range got {
		byHome[rt.Home] = rt
	}

	assert.Equal(t, 17, byHome[jdk17].Major)
	assert.True(t, byHome[jdk17].HasCompiler)
	assert.Equal(t, []string{jdk.SourceScan}, byHome[jdk17].Sources)

	assert.Equal(t, 8, byHome[jre8].Major)
	assert.False(t, byHome[jre8].HasCompiler)
}

func TestDiscover_JavaHomeAndPathMerge(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	home := fakeJDK(t, filepath.Join(root, "jdk-21"), "21.0.1", true)

	env := func(key string) (string, bool) {
		if key == "JAVA_HOME" {
			return home, true
		}

		return "", false
	}

	lookPath := func(string) (string, error) {
		return filepath.Join(home, "bin", "java"), nil
	}

	got, err := jdk.Discover(context.Background(), &jdk.DiscoverOpts{
		Env:        env,
		LookPath:   lookPath,
		Roots:      []string{root},
		SkipSystem: true,
	})
	require.NoError(t, err)
	require.Len(t, got, 1)

	rt := got[0]
	assert.Equal(t, home, rt.Home)
	assert.True(t, rt.FromEnv)
	assert.True(t, rt.OnPath)
	assert.Equal(t, []string{jdk.SourceEnv, jdk.SourcePath, jdk.SourceScan}, rt.Sources)
}

func TestDiscover_InvalidJavaHomeIgnored(t *testing.T) {
	t.Parallel()

	env := func(key string) (string, bool) {
		if key == "JAVA_HOME" {
			return t.TempDir(), true
		}

		return "", false
	}

	got, err := jdk.Discover(context.Background(), &jdk.DiscoverOpts{
		Env:        env,
		LookPath:   noPath,
		SkipSystem: true,
	})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDiscover_IDEMarker(t *testing.T) {
	t.Parallel()

	home := fakeJDK(t, filepath.Join(t.TempDir(), "Android Studio", "jbr"), "17.0.6", true)

	got, err := jdk.Discover(context.Background(), &jdk.DiscoverOpts{
		Env:        noEnv,
		LookPath:   noPath,
		Homes:      []string{home},
		SkipSystem: true,
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].BundledWithIDE)
	assert.Equal(t, []string{jdk.SourceCustom}, got[0].Sources)
}

func TestParseMajor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{raw: "17.0.9", want: 17},
		{raw: "21", want: 21},
		{raw: "1.8.0_392", want: 8},
		{raw: "11.0.20.1", want: 11},
		{raw: "22-ea", want: 22},
		{raw: "17.0.1+12", want: 17},
		{raw: "", wantErr: true},
		{raw: "not-a-version", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()

			got, err := jdk.ParseMajor(tt.raw)
			if tt.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
