// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/H0llyW00dzZ/jssl-server/src/cli"
	"github.com/H0llyW00dzZ/jssl-server/src/logger"
	verpkg "github.com/H0llyW00dzZ/jssl-server/src/version"
)

var version string // set by ldflags or defaults to imported version

func init() {
	if version == "" {
		version = verpkg.Version
	}
}

func main() {
	log := logger.NewCLILogger()

	// The server stops gracefully on the first signal.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx, version); err != nil {
		log.Printf("%s failed: %v", verpkg.AppName, err)
		stop()
		os.Exit(1)
	}
}
