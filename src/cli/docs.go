// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cli provides the command-line interface of the JSSL test server.
// It implements a Cobra-based CLI whose root command starts the server and
// whose subcommands inspect the runtime (protocols), the key store (identity)
// and a running server (probe).
//
// Protocol flags keep the order in which the operator wrote them, flag names
// are case-insensitive, and single-dash long options such as -TLSv1.2 are
// accepted for compatibility with older launch scripts.
package cli
