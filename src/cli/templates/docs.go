// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package templates provides embedded text/template sources for the command
// line: the long help with its examples ([CLIHelp]) and the startup banner
// ([Banner]). Both are rendered by the cli package.
package templates
