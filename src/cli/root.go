// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/H0llyW00dzZ/jssl-server/src/cli/templates"
	"github.com/H0llyW00dzZ/jssl-server/src/config"
	"github.com/H0llyW00dzZ/jssl-server/src/internal/helper/posix"
	"github.com/H0llyW00dzZ/jssl-server/src/internal/identity"
	"github.com/H0llyW00dzZ/jssl-server/src/logger"
	"github.com/H0llyW00dzZ/jssl-server/src/server"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// App carries the process-level dependencies of the command tree.
type App struct {
	// Version is reported by --version, the banner and the HTTP payload.
	Version string
	// Out receives help, tables, exports and log lines in either format.
	Out io.Writer
	// Embed holds the help and banner templates.
	Embed templates.EmbedFS
	// Resolver locates key stores. Nil uses the process defaults.
	Resolver *identity.Resolver
	// Ready, if set, is called with the server before it starts.
	Ready func(*server.Server)

	configFile string
	sel        protocolSelection
}

// Execute runs the command line of the current process.
//
// Parameters:
//   - ctx: Cancelled on SIGINT/SIGTERM; a running server then stops gracefully
//   - version: Application version, normally set through ldflags
//
// Returns:
//   - nil after help, version output, a finished subcommand, or a clean shutdown
//   - The first fatal error otherwise
func Execute(ctx context.Context, version string) error {
	app := &App{Version: version, Out: os.Stdout}
	return app.Run(ctx, os.Args[1:])
}

// Run parses args and executes the selected command.
func (a *App) Run(ctx context.Context, args []string) error {
	cmd := a.Command()

	known := pflag.NewFlagSet(cmd.Name(), pflag.ContinueOnError)
	known.AddFlagSet(cmd.Flags())
	known.AddFlagSet(cmd.PersistentFlags())

	cmd.SetArgs(normalizeArgs(args, known))
	return cmd.ExecuteContext(ctx)
}

// Command builds the root command and its subcommands.
func (a *App) Command() *cobra.Command {
	if a.Out == nil {
		a.Out = os.Stdout
	}
	if a.Embed == nil {
		a.Embed = templates.MagicEmbed
	}
	a.sel = protocolSelection{}

	exeName := posix.GetExecutableName()

	root := &cobra.Command{
		Use:           exeName + " [flags]",
		Short:         "TLS protocol negotiation test server",
		Version:       a.Version,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          a.runServe,
	}
	root.SetOut(a.Out)
	root.SetGlobalNormalizationFunc(normalizeFlagName)

	longDesc, examples, err := loadHelp(a.Embed, exeName)
	if err != nil {
		// Help text failures are programming errors in the embedded templates.
		panic(fmt.Sprintf("failed to process CLI help template: %v", err))
	}
	root.Long = longDesc
	root.Example = examples

	persistent := root.PersistentFlags()
	persistent.StringP(flagKeystore, "k", config.DefaultIdentityPath, "key store file (PKCS#12, JKS or PEM)")
	persistent.String(flagPassword, config.DefaultPassword, "key store password (env "+config.EnvKeystorePassword+")")
	persistent.StringVar(&a.configFile, flagConfig, "", "configuration file, JSON or YAML (env "+config.EnvConfigFile+")")
	persistent.String(flagLogFormat, logger.FormatText, "log format: text or json")

	local := root.Flags()
	local.Uint16P(flagPort, "p", config.DefaultPort, "port to listen on")
	local.String(flagHost, "", "interface to bind (default all)")
	local.Duration(flagGrace, config.DefaultGraceMillis*time.Millisecond, "time granted to in-flight requests on shutdown")
	addProtocolFlags(local, &a.sel)

	root.AddCommand(a.protocolsCommand(), a.identityCommand(), a.probeCommand())

	root.InitDefaultHelpFlag()
	root.InitDefaultVersionFlag()
	return root
}

// loadConfig resolves the configuration and applies explicitly set flags.
func (a *App) loadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	c, err := config.Load(a.configFile)
	if err != nil {
		return nil, err
	}

	fs := cmd.Flags()
	if fs.Changed(flagKeystore) {
		c.Identity.Path, _ = fs.GetString(flagKeystore)
	}
	if fs.Changed(flagPassword) {
		pw, _ := fs.GetString(flagPassword)
		c.Identity.Password = config.Secret(pw)
	}
	if fs.Changed(flagLogFormat) {
		c.Log.Format, _ = fs.GetString(flagLogFormat)
	}

	// Server-only flags exist on the root command.
	if f := fs.Lookup(flagPort); f != nil && f.Changed {
		c.Port, _ = fs.GetUint16(flagPort)
	}
	if f := fs.Lookup(flagHost); f != nil && f.Changed {
		c.Host, _ = fs.GetString(flagHost)
	}
	if f := fs.Lookup(flagGrace); f != nil && f.Changed {
		grace, _ := fs.GetDuration(flagGrace)
		c.Shutdown.GraceMillis = int(grace.Milliseconds())
	}
	if len(a.sel.tokens) > 0 {
		c.Protocols = append([]string(nil), a.sel.tokens...)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// logger returns the Logger for the configured format, writing to Out.
func (a *App) logger(format string) (logger.Logger, error) {
	return logger.New(format, a.Out)
}

// resolver returns the configured Resolver, logging to log.
func (a *App) resolver(log logger.Logger) *identity.Resolver {
	if a.Resolver == nil {
		return identity.NewResolver(log)
	}
	r := *a.Resolver
	r.Log = log
	return &r
}
