// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"slices"
	"strconv"
	"strings"

	"github.com/H0llyW00dzZ/jssl-server/src/internal/protocol"
	"github.com/spf13/pflag"
)

// Flag names.
const (
	flagPort      = "port"
	flagHost      = "host"
	flagKeystore  = "keystore"
	flagPassword  = "password"
	flagProtocol  = "protocol"
	flagGrace     = "grace"
	flagLogFormat = "log-format"
	flagConfig    = "config"
)

// protocolSelection collects enabled versions in command-line order.
type protocolSelection struct{ tokens []string }

func (s *protocolSelection) add(v protocol.Version) {
	tok := v.String()
	if !slices.Contains(s.tokens, tok) {
		s.tokens = append(s.tokens, tok)
	}
}

func (s *protocolSelection) remove(v protocol.Version) {
	s.tokens = slices.DeleteFunc(s.tokens, func(t string) bool { return t == v.String() })
}

// versionFlag is a boolean flag such as --tlsv1.2 feeding a shared selection.
type versionFlag struct {
	version protocol.Version
	sel     *protocolSelection
	on      bool
}

func (f *versionFlag) String() string { return strconv.FormatBool(f.on) }
func (f *versionFlag) Type() string   { return "bool" }

func (f *versionFlag) Set(value string) error {
	on, err := strconv.ParseBool(value)
	if err != nil {
		return err
	}
	f.on = on
	if on {
		f.sel.add(f.version)
	} else {
		f.sel.remove(f.version)
	}
	return nil
}

// listFlag is --protocol, accepting repeated and comma-separated versions.
type listFlag struct{ sel *protocolSelection }

func (f *listFlag) String() string { return "[" + strings.Join(f.sel.tokens, ",") + "]" }
func (f *listFlag) Type() string   { return "strings" }

func (f *listFlag) Set(value string) error {
	for _, tok := range strings.Split(value, ",") {
		if strings.TrimSpace(tok) == "" {
			continue
		}
		v, err := protocol.Parse(tok)
		if err != nil {
			return err
		}
		f.sel.add(v)
	}
	return nil
}

// addProtocolFlags registers one boolean flag per known version plus
// --protocol, all writing to sel.
func addProtocolFlags(fs *pflag.FlagSet, sel *protocolSelection) {
	for _, v := range protocol.Known {
		name := strings.ToLower(v.String())
		f := fs.VarPF(&versionFlag{version: v, sel: sel}, name, "", "enable "+v.String())
		f.NoOptDefVal = "true"
	}
	fs.Var(&listFlag{sel: sel}, flagProtocol, "enable protocol versions, repeatable or comma-separated (e.g. TLSv1.2,TLSv1.3)")
}

// normalizeFlagName makes flag names case-insensitive.
func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ToLower(name))
}

// normalizeArgs rewrites single-dash long options into their double-dash
// form so that -TLSv1.2 and -keystore x work like --tlsv1.2 and --keystore x.
// Only names of registered long flags are rewritten; shorthand clusters such
// as -p9999 are left to pflag. Parsing stops at "--".
func normalizeArgs(args []string, fs *pflag.FlagSet) []string {
	out := make([]string, 0, len(args))
	for i, arg := range args {
		if arg == "--" {
			return append(out, args[i:]...)
		}
		if len(arg) > 2 && arg[0] == '-' && arg[1] != '-' {
			name, _, _ := strings.Cut(arg[1:], "=")
			if len(name) > 1 && fs.Lookup(strings.ToLower(name)) != nil {
				arg = "-" + arg
			}
		}
		out = append(out, arg)
	}
	return out
}
