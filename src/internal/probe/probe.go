// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package probe is a minimal TLS client that connects with one pinned
// protocol version, performs a single HTTP/1.1 GET and reports what was
// negotiated. It is the counterpart used to exercise a running server.
package probe

import (
	"bufio"
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/H0llyW00dzZ/jssl-server/src/internal/helper/gc"
	"github.com/H0llyW00dzZ/jssl-server/src/internal/protocol"
)

// DefaultTimeout bounds the whole exchange when Options.Timeout is zero.
const DefaultTimeout = 10 * time.Second

var (
	// ErrHandshake indicates that the TLS connection could not be established.
	ErrHandshake = errors.New("probe: handshake failed")

	// ErrExchange indicates a failure after the handshake succeeded.
	ErrExchange = errors.New("probe: HTTP exchange failed")
)

// Options controls a probe.
type Options struct {
	// Version pins the handshake. The zero value offers TLSv1 through TLSv1.3.
	Version protocol.Version
	// Timeout bounds dialing, handshake and the HTTP exchange.
	Timeout time.Duration
	// RootCAs verifies the server. Nil skips verification, which is what a
	// diagnostic against a self-signed test identity needs.
	RootCAs *x509.CertPool
	// ServerName overrides SNI and the verified name.
	ServerName string
	// Path is requested with GET. Defaults to "/".
	Path string
}

// Result is what one probe observed.
type Result struct {
	Version          protocol.Version
	CipherSuite      string
	ALPN             string
	PeerCertificates []*x509.Certificate
	Status           int
	Header           http.Header
	Body             []byte
}

// Probe connects to addr and performs one request.
func Probe(ctx context.Context, addr string, opts Options) (*Result, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cfg := &tls.Config{
		RootCAs:            opts.RootCAs,
		InsecureSkipVerify: opts.RootCAs == nil,
		ServerName:         opts.ServerName,
		NextProtos:         []string{"http/1.1"},
		MinVersion:         tls.VersionTLS10,
		MaxVersion:         tls.VersionTLS13,
	}
	if opts.Version != 0 {
		cfg.MinVersion = opts.Version.Wire()
		cfg.MaxVersion = opts.Version.Wire()
	}

	dialer := &tls.Dialer{NetDialer: &net.Dialer{}, Config: cfg}
	raw, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrHandshake, addr, err)
	}
	conn := raw.(*tls.Conn)
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}

	state := conn.ConnectionState()
	res := &Result{
		CipherSuite:      tls.CipherSuiteName(state.CipherSuite),
		ALPN:             state.NegotiatedProtocol,
		PeerCertificates: state.PeerCertificates,
	}
	res.Version, _ = protocol.FromWire(state.Version)

	path := opts.Path
	if path == "" {
		path = "/"
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://"+addr+path, nil)
	if err != nil {
		return res, fmt.Errorf("%w: %w", ErrExchange, err)
	}
	req.Close = true

	if err := req.Write(conn); err != nil {
		return res, fmt.Errorf("%w: writing request: %w", ErrExchange, err)
	}

	resp, err := http.ReadResponse(bufio.NewReader(conn), req)
	if err != nil {
		return res, fmt.Errorf("%w: reading response: %w", ErrExchange, err)
	}
	defer resp.Body.Close()

	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()
	if _, err := buf.ReadFrom(io.LimitReader(resp.Body, 1<<20)); err != nil {
		return res, fmt.Errorf("%w: reading body: %w", ErrExchange, err)
	}

	res.Status = resp.StatusCode
	res.Header = resp.Header
	res.Body = append([]byte(nil), buf.Bytes()...)
	return res, nil
}

// Rows renders the result as label/value pairs.
func (r *Result) Rows() [][]string {
	rows := [][]string{
		{"Protocol", r.Version.String()},
		{"Cipher Suite", r.CipherSuite},
		{"ALPN", r.ALPN},
		{"Status", fmt.Sprintf("%d %s", r.Status, http.StatusText(r.Status))},
	}
	if len(r.PeerCertificates) > 0 {
		rows = append(rows, []string{"Server Certificate", r.PeerCertificates[0].Subject.String()})
	}
	return rows
}
