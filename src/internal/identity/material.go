// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package identity

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/x509"
	"fmt"
	"time"
)

// Format identifies the container a key store was read from.
type Format int

const (
	FormatUnknown Format = iota
	FormatPKCS12
	FormatPEM
	FormatJKS
	FormatJCEKS
)

// String returns a short name for the format.
func (f Format) String() string {
	switch f {
	case FormatPKCS12:
		return "PKCS12"
	case FormatPEM:
		return "PEM"
	case FormatJKS:
		return "JKS"
	case FormatJCEKS:
		return "JCEKS"
	default:
		return "unknown"
	}
}

// Material is the decrypted content of a key store.
//
// PrivateKey and Leaf are nil for a store holding only trusted certificates.
// Chain carries the certificates that accompanied the leaf; they double as
// trust anchors.
type Material struct {
	PrivateKey crypto.Signer
	Leaf       *x509.Certificate
	Chain      []*x509.Certificate
	Trusted    []*x509.Certificate
	Format     Format
}

// HasKey reports whether the material can authenticate a server.
func (m *Material) HasKey() bool {
	return m != nil && m.PrivateKey != nil && m.Leaf != nil
}

// Certificates returns the leaf followed by the chain.
func (m *Material) Certificates() []*x509.Certificate {
	if m == nil {
		return nil
	}
	out := make([]*x509.Certificate, 0, 1+len(m.Chain))
	if m.Leaf != nil {
		out = append(out, m.Leaf)
	}
	return append(out, m.Chain...)
}

// SummaryRow describes one certificate of the store.
type SummaryRow struct {
	Role     string
	Subject  string
	Issuer   string
	NotAfter string
	Key      string
}

// SummaryHeaders are the column names matching [SummaryRow.Cells].
var SummaryHeaders = []string{"Role", "Subject", "Issuer", "Not After", "Key"}

// Cells returns the row in column order.
func (r SummaryRow) Cells() []string {
	return []string{r.Role, r.Subject, r.Issuer, r.NotAfter, r.Key}
}

// Summary lists the leaf, chain and trust-only certificates.
func (m *Material) Summary() []SummaryRow {
	if m == nil {
		return nil
	}

	var rows []SummaryRow
	if m.Leaf != nil {
		rows = append(rows, summarize("leaf", m.Leaf))
	}
	for _, c := range m.Chain {
		rows = append(rows, summarize("chain", c))
	}
	// A trust store has no chain; list its anchors instead of repeating.
	if len(m.Chain) == 0 {
		for _, c := range m.Trusted {
			rows = append(rows, summarize("trusted", c))
		}
	}
	return rows
}

func summarize(role string, c *x509.Certificate) SummaryRow {
	return SummaryRow{
		Role:     role,
		Subject:  c.Subject.String(),
		Issuer:   c.Issuer.String(),
		NotAfter: c.NotAfter.UTC().Format(time.RFC3339),
		Key:      describeKey(c.PublicKey),
	}
}

func describeKey(pub any) string {
	switch k := pub.(type) {
	case *rsa.PublicKey:
		return fmt.Sprintf("RSA %d", k.N.BitLen())
	case *ecdsa.PublicKey:
		return fmt.Sprintf("ECDSA %s", k.Curve.Params().Name)
	case ed25519.PublicKey:
		return "Ed25519"
	default:
		return fmt.Sprintf("%T", pub)
	}
}
