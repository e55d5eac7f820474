// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package negotiate

import (
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/H0llyW00dzZ/jssl-server/src/internal/protocol"
	"github.com/H0llyW00dzZ/jssl-server/src/internal/tlsctx"
	"github.com/H0llyW00dzZ/jssl-server/src/logger"
)

var (
	// ErrNoCommonProtocol indicates a client offering no permitted version.
	ErrNoCommonProtocol = errors.New("negotiate: no common protocol version")

	// ErrNoContext indicates a policy without TLS server state.
	ErrNoContext = errors.New("negotiate: no TLS context")
)

// SessionParameters are the values applied to one handshake.
type SessionParameters struct {
	// Permitted is the allow-list in force for the connection.
	Permitted protocol.AllowList
	// Selected is the single version the handshake is pinned to.
	Selected protocol.Version
	// CipherSuites names the default suites usable with Selected.
	CipherSuites []string
}

// Policy chooses session parameters for a connecting client.
//
// remote may be nil when the transport has no peer address. offered holds the
// client's versions as crypto/tls wire numbers, possibly including GREASE.
type Policy interface {
	ParametersFor(remote net.Addr, offered []uint16) (SessionParameters, error)
}

// BuildSessionParameters permits exactly the versions of ctx and selects the
// highest one the client offered.
func BuildSessionParameters(ctx *tlsctx.Context, remote net.Addr, offered []uint16) (SessionParameters, error) {
	if ctx == nil {
		return SessionParameters{}, ErrNoContext
	}

	permitted := ctx.Protocols()
	var (
		selected protocol.Version
		found    bool
	)
	for _, wire := range offered {
		v, ok := protocol.FromWire(wire)
		if !ok || !permitted.Contains(v) {
			continue
		}
		if !found || v > selected {
			selected, found = v, true
		}
	}

	if !found {
		return SessionParameters{Permitted: permitted}, fmt.Errorf("%w: %s offered [%s], permitted [%s]",
			ErrNoCommonProtocol, addrString(remote), describeOffered(offered), permitted)
	}

	return SessionParameters{
		Permitted:    permitted,
		Selected:     selected,
		CipherSuites: ctx.CipherSuitesFor(selected),
	}, nil
}

// AllowListPolicy is the default Policy: the context's allow-list, nothing more.
type AllowListPolicy struct {
	Context *tlsctx.Context
}

// ParametersFor implements Policy.
func (p AllowListPolicy) ParametersFor(remote net.Addr, offered []uint16) (SessionParameters, error) {
	return BuildSessionParameters(p.Context, remote, offered)
}

// ConnectionEvent describes one negotiation for logging.
type ConnectionEvent struct {
	RemoteHost   string
	RemotePort   uint16
	Protocols    []protocol.Version
	Selected     protocol.Version
	CipherSuites []string
}

// NewConnectionEvent combines the peer address with the chosen parameters.
func NewConnectionEvent(remote net.Addr, params SessionParameters) ConnectionEvent {
	host, port := splitAddr(remote)
	return ConnectionEvent{
		RemoteHost:   host,
		RemotePort:   port,
		Protocols:    params.Permitted.Versions(),
		Selected:     params.Selected,
		CipherSuites: params.CipherSuites,
	}
}

// Hook returns a tls.Config.GetConfigForClient callback applying policy.
// The returned configurations come from ctx and are pinned to the version the
// policy selected. A nil log discards the connection trace.
func Hook(ctx *tlsctx.Context, policy Policy, log logger.Logger) func(*tls.ClientHelloInfo) (*tls.Config, error) {
	if log == nil {
		log = logger.Discard()
	}

	return func(hello *tls.ClientHelloInfo) (*tls.Config, error) {
		var remote net.Addr
		if hello.Conn != nil {
			remote = hello.Conn.RemoteAddr()
		}

		params, err := policy.ParametersFor(remote, hello.SupportedVersions)
		ev := NewConnectionEvent(remote, params)

		log.Printf("Connection from %s:%d", ev.RemoteHost, ev.RemotePort)
		log.Printf("SSL Protocols: %s", params.Permitted)

		if err != nil {
			log.Printf("Handshake rejected: %v", err)
			return nil, err
		}
		if ctx == nil {
			return nil, ErrNoContext
		}

		return ctx.ConfigFor(ev.Selected)
	}
}

func splitAddr(addr net.Addr) (string, uint16) {
	switch a := addr.(type) {
	case nil:
		return "unknown", 0
	case *net.TCPAddr:
		return a.IP.String(), uint16(a.Port)
	}

	host, portStr, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String(), 0
	}
	port, _ := strconv.ParseUint(portStr, 10, 16)
	return host, uint16(port)
}

func addrString(addr net.Addr) string {
	if addr == nil {
		return "client"
	}
	return addr.String()
}

func describeOffered(offered []uint16) string {
	names := make([]string, 0, len(offered))
	for _, wire := range offered {
		if v, ok := protocol.FromWire(wire); ok {
			names = append(names, v.String())
		}
	}
	return strings.Join(names, ", ")
}
