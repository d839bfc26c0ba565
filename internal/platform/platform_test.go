package platform_test

import (
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuse-open/android-build-tools/internal/platform"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		goos       string
		env        map[string]string
		wantURL    string
		wantSDK    string
		wantEOL    string
		wantWindow bool
	}{
		{
			name:    "darwin",
			goos:    "darwin",
			env:     map[string]string{"HOME": "/Users/me"},
			wantURL: "https://dl.google.com/android/repository/commandlinetools-mac-10406996_latest.zip",
			wantSDK: "/Users/me/Library/Android/sdk",
			wantEOL: "\n",
		},
		{
			name:    "linux",
			goos:    "linux",
			env:     map[string]string{"HOME": "/home/me"},
			wantURL: "https://dl.google.com/android/repository/commandlinetools-linux-10406996_latest.zip",
			wantSDK: "/home/me/Android/Sdk",
			wantEOL: "\n",
		},
		{
			name:       "windows",
			goos:       "windows",
			env:        map[string]string{"LOCALAPPDATA": `C:\Users\me\AppData\Local`, "USERPROFILE": `C:\Users\me`},
			wantURL:    "https://dl.google.com/android/repository/commandlinetools-win-10406996_latest.zip",
			wantSDK:    `C:\Users\me\AppData\Local\Android\sdk`,
			wantEOL:    "\r\n",
			wantWindow: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if tt.goos == runtime.GOOS && runtime.GOOS == "windows" {
				t.Skip("host path separators differ")
			}

			cfg, err := platform.Detect(tt.goos, platform.MapEnv(tt.env), platform.Options{})
			require.NoError(t, err)

			assert.Equal(t, tt.goos, cfg.OS)
			assert.Equal(t, tt.wantURL, cfg.ToolsURL)
			assert.Equal(t, tt.wantSDK, cfg.SDKDir)
			assert.Equal(t, tt.wantEOL, cfg.LineEnding)
			assert.Equal(t, tt.wantWindow, cfg.Windows)
			assert.Empty(t, cfg.Relocated)
		})
	}
}

func TestDetect_WindowsNonASCIIFallback(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		env     map[string]string
		wantSDK string
		wantErr error
	}{
		{
			name: "program data",
			env: map[string]string{
				"LOCALAPPDATA": `C:\Users\Jöhn\AppData\Local`,
				"PROGRAMDATA":  `C:\ProgramData`,
				"SYSTEMDRIVE":  `D:`,
			},
			wantSDK: `C:\ProgramData\Android\sdk`,
		},
		{
			name: "system drive",
			env: map[string]string{
				"LOCALAPPDATA": `C:\Users\Jöhn\AppData\Local`,
				"PROGRAMDATA":  "",
				"SYSTEMDRIVE":  `D:`,
			},
			wantSDK: `D:\ProgramData\Android\sdk`,
		},
		{
			name: "no fallback",
			env: map[string]string{
				"LOCALAPPDATA": `C:\Users\Jöhn\AppData\Local`,
			},
			wantErr: platform.ErrNoSDKLocation,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if runtime.GOOS == "windows" {
				t.Skip("host path separators differ")
			}

			cfg, err := platform.Detect("windows", platform.MapEnv(tt.env), platform.Options{})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantSDK, cfg.SDKDir)
			assert.Equal(t, `C:\Users\Jöhn\AppData\Local\Android\sdk`, cfg.Relocated)
		})
	}
}

func TestDetect_Unsupported(t *testing.T) {
	t.Parallel()

	_, err := platform.Detect("plan9", platform.MapEnv(nil), platform.Options{})
	require.Error(t, err)

	var unsupported *platform.UnsupportedError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "plan9", unsupported.OS)
	assert.Equal(t, "unsupported platform plan9", err.Error())
}

func TestDetect_Overrides(t *testing.T) {
	t.Parallel()

	cfg, err := platform.Detect("linux", platform.MapEnv(map[string]string{"HOME": "/home/me"}), platform.Options{
		ToolsVersion: "11076708",
		SDKDir:       "/opt/android-sdk",
	})
	require.NoError(t, err)

	assert.Equal(t, "https://dl.google.com/android/repository/commandlinetools-linux-11076708_latest.zip", cfg.ToolsURL)
	assert.Equal(t, "/opt/android-sdk", cfg.SDKDir)
}

func TestDetect_WindowsOverrideSkipsFallback(t *testing.T) {
	t.Parallel()

	cfg, err := platform.Detect("windows", platform.MapEnv(map[string]string{
		"LOCALAPPDATA": `C:\Users\Jöhn\AppData\Local`,
	}), platform.Options{SDKDir: `D:\Android\sdk`})
	require.NoError(t, err)

	assert.Equal(t, `D:\Android\sdk`, cfg.SDKDir)
	assert.Empty(t, cfg.Relocated)
}

func TestUserHomeAndLineEnding(t *testing.T) {
	t.Parallel()

	env := platform.MapEnv(map[string]string{"HOME": "/home/me", "USERPROFILE": `C:\Users\me`})

	assert.Equal(t, "/home/me", platform.UserHome("linux", env))
	assert.Equal(t, "/home/me", platform.UserHome("darwin", env))
	assert.Equal(t, `C:\Users\me`, platform.UserHome("windows", env))
	assert.Equal(t, "\n", platform.LineEnding("darwin"))
	assert.Equal(t, "\r\n", platform.LineEnding("windows"))
}

func TestConfig_Paths(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("host path separators differ")
	}

	linux, err := platform.Detect("linux", platform.MapEnv(map[string]string{"HOME": "/home/me"}), platform.Options{})
	require.NoError(t, err)

	assert.Equal(t, "/home/me/Android/Sdk/cmdline-tools", linux.ToolsDir())
	assert.Equal(t, "/home/me/Android/Sdk/cmdline-tools/latest/bin/sdkmanager", linux.SDKManager())
	assert.Equal(t, "/home/me/Android/Sdk/ndk/21.4.7075529", linux.NDKDir("21.4.7075529"))
	assert.Equal(t, "/home/me/Android/Sdk/cmake/3.18.1", linux.CMakeDir("3.18.1"))
	assert.Equal(t, "/home/me/Android/Sdk/build-tools/33.0.2", linux.BuildToolsDir("33.0.2"))
	assert.Equal(t, "/home/me/.android", linux.AndroidUserDir())

	win, err := platform.Detect("windows", platform.MapEnv(map[string]string{
		"LOCALAPPDATA": `C:\Users\me\AppData\Local`,
		"USERPROFILE":  `C:\Users\me`,
	}), platform.Options{})
	require.NoError(t, err)

	assert.Equal(t, `C:\Users\me\AppData\Local\Android\sdk\cmdline-tools\latest\bin\sdkmanager.bat`, win.SDKManager())
	assert.Equal(t, `C:\Users\me\.android`, win.AndroidUserDir())
}

func TestIsASCII(t *testing.T) {
	t.Parallel()

	assert.True(t, platform.IsASCII(`C:\Users\me`))
	assert.False(t, platform.IsASCII(`C:\Users\Jöhn`))
	assert.False(t, platform.IsASCII("tab\there"))
}
