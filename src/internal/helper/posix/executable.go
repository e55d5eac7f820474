// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package posix

import (
	"os"
	"path/filepath"
	"strings"
)

// fallbackName is used when os.Args carries no program name.
const fallbackName = "jssl-server"

// executable is swapped in tests.
var executable = os.Executable

// GetExecutableName returns the executable name without extension, cross-platform compatible.
// It extracts the base name from os.Args[0] and removes the .exe extension
// to provide a clean name for CLI usage strings.
func GetExecutableName() string {
	if len(os.Args) == 0 || os.Args[0] == "" {
		return fallbackName
	}

	name := filepath.Base(os.Args[0])

	// Windows paths seen on Unix (or the reverse) are not split by filepath.Base.
	if strings.Contains(name, "\\") || (strings.Contains(name, "/") && !strings.Contains(name, string(filepath.Separator))) {
		parts := strings.FieldsFunc(name, func(r rune) bool {
			return r == '/' || r == '\\'
		})
		if len(parts) > 0 {
			name = parts[len(parts)-1]
		}
	}

	return strings.TrimSuffix(name, ".exe")
}

// ExecutableDir returns the absolute directory containing the running executable.
// Symlinks are resolved so a binary linked into /usr/local/bin still finds the
// files installed next to its real location.
func ExecutableDir() (string, error) {
	exe, err := executable()
	if err != nil {
		return "", err
	}

	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	return filepath.Dir(exe), nil
}
