// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"fmt"
	"strings"

	"github.com/H0llyW00dzZ/jssl-server/src/internal/tlsctx"
	"github.com/H0llyW00dzZ/jssl-server/src/logger"
	"github.com/H0llyW00dzZ/jssl-server/src/server"
	"github.com/H0llyW00dzZ/jssl-server/src/version"
	"github.com/spf13/cobra"
)

// runServe loads the identity, builds the TLS context and runs the server
// until the command context is cancelled.
//
// Every fatal condition (missing or unreadable key store, unusable
// protocols, bind failure) is reported before any connection is accepted.
func (a *App) runServe(cmd *cobra.Command, args []string) error {
	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := a.logger(cfg.Log.Format)
	if err != nil {
		return err
	}

	if !isJSON(cfg.Log.Format) {
		banner, err := renderBanner(a.Embed, a.Version)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), banner)
	}

	for _, arg := range args {
		log.Printf("Ignoring unexpected argument %s", arg)
	}

	allowed, err := cfg.EnabledProtocols()
	if err != nil {
		return err
	}

	material, path, err := a.resolver(log).LoadFile(cfg.Identity.Path, cfg.Identity.Password.Reveal())
	if err != nil {
		return fmt.Errorf("failed to load key store: %w", err)
	}
	log.Printf("Loaded %s key store %s", material.Format, path)

	tctx, err := tlsctx.Build(material, allowed)
	if err != nil {
		return fmt.Errorf("failed to set up TLS: %w", err)
	}
	for _, v := range tctx.Dropped() {
		log.Printf("Warning: %s is not available in this runtime and was left out of the default protocols", v)
	}

	srv, err := server.NewBuilder().
		WithAddr(cfg.Addr()).
		WithContext(tctx).
		WithHandler(server.NewResponseHandler(version.AppName, a.Version, log)).
		WithLogger(log).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build server: %w", err)
	}

	if a.Ready != nil {
		a.Ready(srv)
	}
	return srv.Run(cmd.Context(), cfg.Grace())
}

func isJSON(format string) bool {
	return strings.EqualFold(format, logger.FormatJSON)
}
