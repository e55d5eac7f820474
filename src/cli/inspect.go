// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"crypto/x509"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/H0llyW00dzZ/jssl-server/src/internal/identity"
	"github.com/H0llyW00dzZ/jssl-server/src/internal/probe"
	"github.com/H0llyW00dzZ/jssl-server/src/internal/protocol"
	"github.com/H0llyW00dzZ/jssl-server/src/internal/tlsctx"
	x509certs "github.com/H0llyW00dzZ/jssl-server/src/internal/x509/certs"
	"github.com/spf13/cobra"
)

// protocolsCommand lists every known version and what this runtime makes of it.
func (a *App) protocolsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "protocols",
		Short: "List protocol versions and their default cipher suites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			headers := []string{"Protocol", "Wire", "Supported", "Default Cipher Suites"}
			var rows [][]string
			for _, v := range protocol.Known {
				supported := "no"
				if tlsctx.Supported(v) {
					supported = "yes"
				}
				rows = append(rows, []string{
					v.String(),
					fmt.Sprintf("0x%04x", v.Wire()),
					supported,
					strings.Join(tlsctx.CipherSuitesFor(v, nil), " "),
				})
			}
			return renderTable(cmd.OutOrStdout(), headers, rows)
		},
	}
}

// identityCommand loads the key store and summarizes or exports it.
func (a *App) identityCommand() *cobra.Command {
	var exportPEM bool

	cmd := &cobra.Command{
		Use:   "identity",
		Short: "Load the key store and show its certificates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}

			log, err := a.logger(cfg.Log.Format)
			if err != nil {
				return err
			}

			m, path, err := a.resolver(log).LoadFile(cfg.Identity.Path, cfg.Identity.Password.Reveal())
			if err != nil {
				return fmt.Errorf("failed to load key store: %w", err)
			}

			out := cmd.OutOrStdout()
			if exportPEM {
				certs := m.Certificates()
				if len(certs) == 0 {
					certs = m.Trusted
				}
				_, err := out.Write(x509certs.New().EncodeMultiplePEM(certs))
				return err
			}

			fmt.Fprintf(out, "Key store: %s (%s, private key: %t)\n\n", path, m.Format, m.HasKey())
			var rows [][]string
			for _, r := range m.Summary() {
				rows = append(rows, r.Cells())
			}
			return renderTable(out, identity.SummaryHeaders, rows)
		},
	}

	cmd.Flags().BoolVar(&exportPEM, "pem", false, "print the certificates as PEM instead of a table")
	return cmd
}

// probeCommand connects to a running server with one pinned version.
func (a *App) probeCommand() *cobra.Command {
	var (
		version    string
		timeout    time.Duration
		caFile     string
		serverName string
	)

	cmd := &cobra.Command{
		Use:   "probe HOST:PORT",
		Short: "Connect to a server with a pinned protocol version and report the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := probe.Options{Timeout: timeout, ServerName: serverName}

			if version != "" {
				v, err := protocol.Parse(version)
				if err != nil {
					return err
				}
				opts.Version = v
			}

			if caFile != "" {
				data, err := os.ReadFile(caFile)
				if err != nil {
					return fmt.Errorf("failed to read CA file: %w", err)
				}
				certs, err := x509certs.New().DecodeMultiple(data)
				if err != nil {
					return fmt.Errorf("failed to decode CA file: %w", err)
				}
				opts.RootCAs = poolOf(certs)
			}

			res, err := probe.Probe(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if err := renderTable(out, []string{"Field", "Value"}, res.Rows()); err != nil {
				return err
			}
			fmt.Fprintf(out, "\n%s", res.Body)
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&version, flagProtocol, "", "protocol version to pin, e.g. TLSv1.2 (default: newest mutually supported)")
	fs.DurationVar(&timeout, "timeout", probe.DefaultTimeout, "overall timeout")
	fs.StringVar(&caFile, "ca", "", "PEM or DER file with certificates to trust (default: skip verification)")
	fs.StringVar(&serverName, "server-name", "", "SNI and verification name")
	return cmd
}

func poolOf(certs []*x509.Certificate) *x509.CertPool {
	pool := x509.NewCertPool()
	for _, c := range certs {
		pool.AddCert(c)
	}
	return pool
}
