// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package protocol

import (
	"crypto/tls"
	"errors"
	"fmt"
	"strings"
)

// ErrUnknown indicates a protocol token that does not name a known version.
var ErrUnknown = errors.New("protocol: unknown protocol version")

// Version is a canonical SSL/TLS protocol version.
type Version uint8

// Known protocol versions, oldest first.
const (
	SSLv3 Version = iota + 1
	TLSv1
	TLSv1_1
	TLSv1_2
	TLSv1_3
)

// Known lists every version in canonical order. It is also the default
// allow-list when the operator selects nothing.
var Known = []Version{SSLv3, TLSv1, TLSv1_1, TLSv1_2, TLSv1_3}

var names = map[Version]string{
	SSLv3:   "SSLv3",
	TLSv1:   "TLSv1",
	TLSv1_1: "TLSv1.1",
	TLSv1_2: "TLSv1.2",
	TLSv1_3: "TLSv1.3",
}

// String returns the canonical token, e.g. "TLSv1.2".
func (v Version) String() string {
	if n, ok := names[v]; ok {
		return n
	}
	return fmt.Sprintf("Version(%d)", uint8(v))
}

// Wire returns the record-layer version number used by crypto/tls.
func (v Version) Wire() uint16 {
	switch v {
	case SSLv3:
		//lint:ignore SA1019 kept to name the version; crypto/tls never negotiates it.
		return tls.VersionSSL30
	case TLSv1:
		return tls.VersionTLS10
	case TLSv1_1:
		return tls.VersionTLS11
	case TLSv1_2:
		return tls.VersionTLS12
	case TLSv1_3:
		return tls.VersionTLS13
	}
	return 0
}

// Valid reports whether v is one of the Known versions.
func (v Version) Valid() bool {
	_, ok := names[v]
	return ok
}

// FromWire maps a crypto/tls version number back to a Version.
func FromWire(wire uint16) (Version, bool) {
	for _, v := range Known {
		if v.Wire() == wire {
			return v, true
		}
	}
	return 0, false
}

// Parse maps a token to its Version. Matching is case-insensitive, so
// "tlsv1.2" and "TLSv1.2" are equivalent.
func Parse(token string) (Version, error) {
	t := strings.TrimSpace(token)
	for _, v := range Known {
		if strings.EqualFold(t, names[v]) {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknown, token)
}
