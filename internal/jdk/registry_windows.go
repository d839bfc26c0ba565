//go:build windows

package jdk

import (
	"log/slog"

	"golang.org/x/sys/windows/registry"
)

// registryKeys are the keys under which JDK installers register their homes.
var registryKeys = []string{
	`SOFTWARE\JavaSoft\JDK`,
	`SOFTWARE\JavaSoft\Java Development Kit`,
}

// registryHomes reads JavaHome values below the well-known JDK keys.
func registryHomes(logger *slog.Logger) []string {
	var homes []string

	for _, path := range registryKeys {
		k, err := registry.OpenKey(registry.LOCAL_MACHINE, path, registry.ENUMERATE_SUB_KEYS|registry.QUERY_VALUE)
		if err != nil {
			continue
		}

		names, err := k.ReadSubKeyNames(-1)
		if err != nil {
			logger.Debug("reading registry subkeys", "key", path, "err", err)
			k.Close()

			continue
		}

		for _, name := range names {
			if home := readJavaHome(k, name); home != "" {
				homes = append(homes, home)
			}
		}

		k.Close()
	}

	return homes
}

func readJavaHome(parent registry.Key, name string) string {
	sk, err := registry.OpenKey(parent, name, registry.QUERY_VALUE)
	if err != nil {
		return ""
	}
	defer sk.Close()

	home, _, err := sk.GetStringValue("JavaHome")
	if err != nil {
		return ""
	}

	return home
}
