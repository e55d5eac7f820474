// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package tlsctx

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/H0llyW00dzZ/jssl-server/src/internal/identity"
	"github.com/H0llyW00dzZ/jssl-server/src/internal/protocol"
)

var (
	// ErrInvalidIdentity indicates key material that cannot authenticate a server.
	ErrInvalidIdentity = errors.New("tlsctx: invalid identity")

	// ErrUnsupportedProtocol indicates a requested version this runtime cannot serve.
	ErrUnsupportedProtocol = errors.New("tlsctx: protocol not supported by this runtime")

	// ErrNoProtocols indicates that no servable version is left.
	ErrNoProtocols = errors.New("tlsctx: no protocols enabled")

	// ErrNotEnabled indicates a version outside the context's allow-list.
	ErrNotEnabled = errors.New("tlsctx: protocol not enabled")
)

// ApplicationProtocols is advertised through ALPN.
var ApplicationProtocols = []string{"http/1.1"}

// Context is the shared, read-only TLS server state.
type Context struct {
	base      *tls.Config
	protocols protocol.AllowList
	dropped   []protocol.Version
	leaf      *x509.Certificate
}

// Supported reports whether crypto/tls can negotiate v.
func Supported(v protocol.Version) bool {
	return v.Valid() && v != protocol.SSLv3
}

// Build validates m and restricts it to allowed.
func Build(m *identity.Material, allowed protocol.AllowList) (*Context, error) {
	if !m.HasKey() {
		return nil, fmt.Errorf("%w: key store holds no private key entry", ErrInvalidIdentity)
	}

	pub, ok := m.PrivateKey.Public().(interface{ Equal(crypto.PublicKey) bool })
	if !ok || !pub.Equal(m.Leaf.PublicKey) {
		return nil, fmt.Errorf("%w: private key does not match certificate %q", ErrInvalidIdentity, m.Leaf.Subject)
	}

	effective := allowed
	var dropped []protocol.Version
	for _, v := range allowed.Versions() {
		if Supported(v) {
			continue
		}
		if !allowed.Defaulted() {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedProtocol, v)
		}
		effective = effective.Without(v)
		dropped = append(dropped, v)
	}

	lo, ok := effective.Lowest()
	if !ok {
		return nil, ErrNoProtocols
	}
	hi, _ := effective.Highest()

	chain := make([][]byte, 0, 1+len(m.Chain))
	chain = append(chain, m.Leaf.Raw)
	for _, c := range m.Chain {
		chain = append(chain, c.Raw)
	}

	pool := x509.NewCertPool()
	for _, c := range m.Trusted {
		pool.AddCert(c)
	}

	base := &tls.Config{
		Certificates: []tls.Certificate{{
			Certificate: chain,
			PrivateKey:  m.PrivateKey,
			Leaf:        m.Leaf,
		}},
		ClientAuth: tls.NoClientCert,
		ClientCAs:  pool,
		NextProtos: slices.Clone(ApplicationProtocols),
		MinVersion: lo.Wire(),
		MaxVersion: hi.Wire(),
	}

	return &Context{
		base:      base,
		protocols: effective,
		dropped:   dropped,
		leaf:      m.Leaf,
	}, nil
}

// Protocols returns the effective allow-list.
func (c *Context) Protocols() protocol.AllowList { return c.protocols }

// Dropped lists defaulted versions removed because they cannot be served.
func (c *Context) Dropped() []protocol.Version { return slices.Clone(c.dropped) }

// Leaf returns the server certificate.
func (c *Context) Leaf() *x509.Certificate { return c.leaf }

// Base returns a copy of the listener configuration. Its version range spans
// the whole allow-list; connections are narrowed by [Context.ConfigFor].
func (c *Context) Base() *tls.Config { return c.base.Clone() }

// ConfigFor returns a fresh configuration pinned to exactly v.
func (c *Context) ConfigFor(v protocol.Version) (*tls.Config, error) {
	if !c.protocols.Contains(v) {
		return nil, fmt.Errorf("%w: %s", ErrNotEnabled, v)
	}

	cfg := c.base.Clone()
	cfg.MinVersion = v.Wire()
	cfg.MaxVersion = v.Wire()
	return cfg, nil
}

// CipherSuitesFor names the platform-default suites this server can use
// with v. Nothing is reordered or restricted; the list is informational.
func (c *Context) CipherSuitesFor(v protocol.Version) []string {
	return CipherSuitesFor(v, c.leaf.PublicKey)
}

// CipherSuitesFor names the platform-default suites usable with v and a
// certificate holding pub. A nil pub skips the key type filter.
func CipherSuitesFor(v protocol.Version, pub crypto.PublicKey) []string {
	if !Supported(v) {
		return nil
	}

	wire := v.Wire()
	auth := authMarker(pub)

	var names []string
	for _, s := range tls.CipherSuites() {
		if !slices.Contains(s.SupportedVersions, wire) {
			continue
		}
		if v != protocol.TLSv1_3 {
			// Static RSA key exchange and CBC-SHA256 are off by default.
			if !strings.HasPrefix(s.Name, "TLS_ECDHE_") || strings.HasSuffix(s.Name, "_CBC_SHA256") {
				continue
			}
			if auth != "" && !strings.Contains(s.Name, auth) {
				continue
			}
		}
		names = append(names, s.Name)
	}
	return names
}

func authMarker(pub crypto.PublicKey) string {
	switch pub.(type) {
	case nil:
		return ""
	case *ecdsa.PublicKey, ed25519.PublicKey:
		return "_ECDSA_"
	default:
		return "_RSA_"
	}
}
