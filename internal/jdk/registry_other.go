//go:build !windows

package jdk

import "log/slog"

func registryHomes(_ *slog.Logger) []string {
	return nil
}
