// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package version provides centralized version information for the JSSL test server.
package version

// AppName is the application name reported in the banner and in every response payload.
const AppName = "JSSL Test Server"

// Version holds the current version of the JSSL test server.
// This value can be overridden at build time using ldflags.
var Version = "0.3.0"
