// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package config holds the startup settings of the server.
//
// Values are resolved in this order, later sources winning:
//  1. Built-in defaults
//  2. A JSON or YAML file (--config or JSSL_CONFIG_FILE)
//  3. Environment variables (JSSL_KEYSTORE_PASSWORD)
//  4. Command-line flags the operator set explicitly (applied by the cli package)
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/H0llyW00dzZ/jssl-server/src/internal/protocol"
	"github.com/H0llyW00dzZ/jssl-server/src/logger"
	"gopkg.in/yaml.v3"
)

// Environment variables consulted by Load.
const (
	EnvConfigFile       = "JSSL_CONFIG_FILE"
	EnvKeystorePassword = "JSSL_KEYSTORE_PASSWORD"
)

// Defaults.
const (
	DefaultPort         uint16 = 9999
	DefaultIdentityPath        = "jssl.jks"
	DefaultPassword            = "password"
	DefaultGraceMillis         = 3000
)

// ErrInvalid indicates a configuration that failed validation.
var ErrInvalid = errors.New("config: invalid configuration")

// Secret is a string that never prints its value.
type Secret string

// String implements fmt.Stringer.
func (s Secret) String() string {
	if s == "" {
		return ""
	}
	return "[REDACTED]"
}

// GoString keeps %#v from leaking the value.
func (s Secret) GoString() string { return strconv.Quote(s.String()) }

// MarshalJSON implements json.Marshaler.
func (s Secret) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }

// Reveal returns the actual value.
func (s Secret) Reveal() string { return string(s) }

// configFormat represents supported configuration file formats.
type configFormat int

const (
	configFormatJSON configFormat = iota
	configFormatYAML
)

// Configuration is the complete set of startup settings.
// It is not modified after Load returns.
type Configuration struct {
	// Host: Interface to bind; empty means all interfaces
	Host string `json:"host,omitempty" yaml:"host,omitempty"`
	// Port: TCP port to listen on
	Port uint16 `json:"port" yaml:"port"`

	Identity struct {
		// Path: Key store file, resolved against the working directory
		// and then the executable's directory
		Path string `json:"path" yaml:"path"`
		// Password: Key store password
		Password Secret `json:"password,omitempty" yaml:"password,omitempty"`
	} `json:"identity" yaml:"identity"`

	// Protocols: Allowed versions in operator order; empty selects all
	Protocols []string `json:"protocols,omitempty" yaml:"protocols,omitempty"`

	Shutdown struct {
		// GraceMillis: Time granted to in-flight exchanges on stop
		GraceMillis int `json:"graceMillis" yaml:"graceMillis"`
	} `json:"shutdown" yaml:"shutdown"`

	Log struct {
		// Format: "text" or "json"
		Format string `json:"format" yaml:"format"`
	} `json:"log" yaml:"log"`
}

// Default returns a Configuration holding only built-in defaults.
func Default() *Configuration {
	c := &Configuration{Port: DefaultPort}
	c.Identity.Path = DefaultIdentityPath
	c.Identity.Password = DefaultPassword
	c.Shutdown.GraceMillis = DefaultGraceMillis
	c.Log.Format = logger.FormatText
	return c
}

// Load applies an optional file and the environment on top of the defaults,
// then validates the result.
//
// Parameters:
//   - path: Configuration file; when empty JSSL_CONFIG_FILE is consulted,
//     and when that is empty too only defaults and environment apply
//
// Returns:
//   - The loaded Configuration
//   - An error if the file cannot be read or parsed, or validation fails
func Load(path string) (*Configuration, error) {
	c := Default()

	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := unmarshal(data, c, detectFormat(path)); err != nil {
			return nil, err
		}
	}

	if pw, ok := os.LookupEnv(EnvKeystorePassword); ok {
		c.Identity.Password = Secret(pw)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func detectFormat(path string) configFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return configFormatYAML
	default:
		return configFormatJSON
	}
}

func unmarshal(data []byte, c *Configuration, format configFormat) error {
	switch format {
	case configFormatYAML:
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("failed to parse YAML config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, c); err != nil {
			return fmt.Errorf("failed to parse JSON config file: %w", err)
		}
	}
	return nil
}

// Validate checks every field. Errors wrap ErrInvalid.
func (c *Configuration) Validate() error {
	var errs []error

	if c.Identity.Path == "" {
		errs = append(errs, errors.New("identity path is empty"))
	}
	for _, p := range c.Protocols {
		if _, err := protocol.Parse(p); err != nil {
			errs = append(errs, err)
		}
	}
	if c.Shutdown.GraceMillis < 0 {
		errs = append(errs, fmt.Errorf("negative grace period %dms", c.Shutdown.GraceMillis))
	}
	switch strings.ToLower(c.Log.Format) {
	case "", logger.FormatText, logger.FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Log.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// EnabledProtocols returns the normalized allow-list. An empty Protocols
// field yields the full default set.
func (c *Configuration) EnabledProtocols() (protocol.AllowList, error) {
	return protocol.Normalize(c.Protocols)
}

// Addr returns the listen address in host:port form.
func (c *Configuration) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(int(c.Port)))
}

// Grace returns the shutdown grace period.
func (c *Configuration) Grace() time.Duration {
	return time.Duration(c.Shutdown.GraceMillis) * time.Millisecond
}
