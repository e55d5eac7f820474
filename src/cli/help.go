// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"fmt"
	"runtime"
	"strings"
	"text/template"

	"github.com/H0llyW00dzZ/jssl-server/src/cli/templates"
	"github.com/H0llyW00dzZ/jssl-server/src/config"
	"github.com/H0llyW00dzZ/jssl-server/src/internal/protocol"
	"github.com/H0llyW00dzZ/jssl-server/src/internal/tlsctx"
	"github.com/H0llyW00dzZ/jssl-server/src/version"
)

// cliHelpData holds the values substituted into the CLI help template.
type cliHelpData struct {
	AppName          string
	ExeName          string
	KeystoreFlag     string
	PasswordFlag     string
	ConfigFlag       string
	DefaultKeystore  string
	ProtocolFlags    []string
	DefaultProtocols string
	Unsupported      string
	EnvPassword      string
	EnvConfig        string
}

// bannerData holds the values substituted into the startup banner.
type bannerData struct {
	AppName   string
	Version   string
	GoVersion string
	Platform  string
}

func newHelpData(exeName string) cliHelpData {
	var flags, unsupported []string
	for _, v := range protocol.Known {
		flags = append(flags, "--"+strings.ToLower(v.String()))
		if !tlsctx.Supported(v) {
			unsupported = append(unsupported, v.String())
		}
	}

	return cliHelpData{
		AppName:          version.AppName,
		ExeName:          exeName,
		KeystoreFlag:     "--" + flagKeystore,
		PasswordFlag:     "--" + flagPassword,
		ConfigFlag:       "--" + flagConfig,
		DefaultKeystore:  config.DefaultIdentityPath,
		ProtocolFlags:    flags,
		DefaultProtocols: protocol.Default().String(),
		Unsupported:      strings.Join(unsupported, ", "),
		EnvPassword:      config.EnvKeystorePassword,
		EnvConfig:        config.EnvConfigFile,
	}
}

// renderTemplate loads name from fsys and executes it with data.
func renderTemplate(fsys templates.EmbedFS, name string, data any) (string, error) {
	raw, err := fsys.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("failed to load template %s: %w", name, err)
	}

	tmpl, err := template.New(name).Parse(string(raw))
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var out strings.Builder
	if err := tmpl.Execute(&out, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return out.String(), nil
}

// loadHelp renders the CLI help template and splits it into the Long
// description and the Examples section.
func loadHelp(fsys templates.EmbedFS, exeName string) (longDesc, examples string, err error) {
	rendered, err := renderTemplate(fsys, templates.CLIHelp, newHelpData(exeName))
	if err != nil {
		return "", "", err
	}
	return splitExamples(rendered)
}

// splitExamples separates everything before the "## Examples" line from
// everything after it.
func splitExamples(rendered string) (longDesc, examples string, err error) {
	const marker = "## Examples"

	idx := strings.Index(rendered, marker)
	if idx == -1 {
		return "", "", fmt.Errorf("CLI help template has invalid format - missing %q section", marker)
	}

	lineStart := strings.LastIndex(rendered[:idx], "\n") + 1
	lineEnd := strings.Index(rendered[idx:], "\n")
	if lineEnd == -1 {
		lineEnd = len(rendered)
	} else {
		lineEnd += idx
	}

	// Examples keep their indentation.
	examples = strings.TrimRight(strings.TrimLeft(rendered[lineEnd:], "\r\n"), " \r\n")
	return strings.TrimSpace(rendered[:lineStart]), examples, nil
}

// renderBanner renders the startup banner for appVersion.
func renderBanner(fsys templates.EmbedFS, appVersion string) (string, error) {
	return renderTemplate(fsys, templates.Banner, bannerData{
		AppName:   version.AppName,
		Version:   appVersion,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	})
}
