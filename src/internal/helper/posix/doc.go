// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package posix provides [POSIX]-compliant helper functions for cross-platform compatibility.
//
// Key functions:
//   - GetExecutableName: Returns the executable name without extension for CLI usage
//   - ExecutableDir: Returns the directory holding the running binary, used as the
//     fallback location when resolving key store files
//
// # Usage Examples
//
//	rootCmd := &cobra.Command{
//	    Use:   posix.GetExecutableName(),
//	    Short: "TLS protocol negotiation test server",
//	}
//
//	dir, err := posix.ExecutableDir()
//	if err != nil {
//	    return err
//	}
//	candidate := filepath.Join(dir, "jssl.jks")
//
// Cross-Platform Behavior:
//
//   - Linux/macOS: "/usr/bin/jssl-server" → "jssl-server"
//   - Windows: "C:\bin\jssl-server.exe" → "jssl-server"
//   - Fallback: Empty args → "jssl-server"
//
// [POSIX]: https://grokipedia.com/page/POSIX
package posix
