// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package identitytest generates throwaway server identities for tests.
package identitytest

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/H0llyW00dzZ/jssl-server/src/internal/identity"
	"github.com/pavlo-v-chernykh/keystore-go/v4"
	"software.sslmate.com/src/go-pkcs12"
)

// Bundle is a leaf certificate for localhost signed by its own CA.
type Bundle struct {
	Key   *ecdsa.PrivateKey
	Leaf  *x509.Certificate
	CA    *x509.Certificate
	CAKey *ecdsa.PrivateKey
}

// New creates a fresh bundle valid for localhost, 127.0.0.1 and ::1.
func New(tb testing.TB) *Bundle {
	tb.Helper()

	caKey := newKey(tb)
	caTmpl := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "JSSL Test CA", Organization: []string{"jssl"}},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(24 * time.Hour),
		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageDigitalSignature,
		BasicConstraintsValid: true,
		IsCA:                  true,
	}
	ca := sign(tb, caTmpl, caTmpl, &caKey.PublicKey, caKey)

	key := newKey(tb)
	leafTmpl := &x509.Certificate{
		SerialNumber: big.NewInt(2),
		Subject:      pkix.Name{CommonName: "localhost", Organization: []string{"jssl"}},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(24 * time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		DNSNames:     []string{"localhost"},
		IPAddresses:  []net.IP{net.IPv4(127, 0, 0, 1), net.IPv6loopback},
	}
	leaf := sign(tb, leafTmpl, ca, &key.PublicKey, caKey)

	return &Bundle{Key: key, Leaf: leaf, CA: ca, CAKey: caKey}
}

// Material returns the bundle as decoded key store content.
func (b *Bundle) Material() *identity.Material {
	return &identity.Material{
		PrivateKey: b.Key,
		Leaf:       b.Leaf,
		Chain:      []*x509.Certificate{b.CA},
		Trusted:    []*x509.Certificate{b.CA},
		Format:     identity.FormatPKCS12,
	}
}

// Pool returns a pool trusting the bundle's CA.
func (b *Bundle) Pool() *x509.CertPool {
	pool := x509.NewCertPool()
	pool.AddCert(b.CA)
	return pool
}

// PKCS12 encodes the bundle the way keytool writes a modern .jks file.
func (b *Bundle) PKCS12(tb testing.TB, password string) []byte {
	tb.Helper()

	data, err := pkcs12.Modern.Encode(b.Key, b.Leaf, []*x509.Certificate{b.CA}, password)
	if err != nil {
		tb.Fatalf("encoding PKCS#12: %v", err)
	}
	return data
}

// TrustStore encodes only the CA certificate as a PKCS#12 trust store.
func (b *Bundle) TrustStore(tb testing.TB, password string) []byte {
	tb.Helper()

	data, err := pkcs12.Modern.EncodeTrustStore([]*x509.Certificate{b.CA}, password)
	if err != nil {
		tb.Fatalf("encoding trust store: %v", err)
	}
	return data
}

// JKS encodes the bundle as a legacy Sun key store, as written by keytool
// before JDK 9: one private key entry "jssl" holding leaf and CA, plus a
// trusted certificate entry "ca".
func (b *Bundle) JKS(tb testing.TB, password string) []byte {
	tb.Helper()

	der, err := x509.MarshalPKCS8PrivateKey(b.Key)
	if err != nil {
		tb.Fatalf("marshaling key: %v", err)
	}

	ks := keystore.New()
	err = ks.SetPrivateKeyEntry("jssl", keystore.PrivateKeyEntry{
		CreationTime: time.Now(),
		PrivateKey:   der,
		CertificateChain: []keystore.Certificate{
			{Type: "X509", Content: b.Leaf.Raw},
			{Type: "X509", Content: b.CA.Raw},
		},
	}, []byte(password))
	if err != nil {
		tb.Fatalf("adding JKS key entry: %v", err)
	}

	err = ks.SetTrustedCertificateEntry("ca", keystore.TrustedCertificateEntry{
		CreationTime: time.Now(),
		Certificate:  keystore.Certificate{Type: "X509", Content: b.CA.Raw},
	})
	if err != nil {
		tb.Fatalf("adding JKS trusted entry: %v", err)
	}

	var buf bytes.Buffer
	if err := ks.Store(&buf, []byte(password)); err != nil {
		tb.Fatalf("encoding JKS: %v", err)
	}
	return buf.Bytes()
}

// PEM encodes the CA, the leaf and the key, in that order. A non-empty
// password encrypts the key with AES-256.
func (b *Bundle) PEM(tb testing.TB, password string) []byte {
	tb.Helper()

	der, err := x509.MarshalECPrivateKey(b.Key)
	if err != nil {
		tb.Fatalf("marshaling key: %v", err)
	}

	keyBlock := &pem.Block{Type: "EC PRIVATE KEY", Bytes: der}
	if password != "" {
		//lint:ignore SA1019 legacy PEM encryption is still what operators hand us
		keyBlock, err = x509.EncryptPEMBlock(rand.Reader, "EC PRIVATE KEY", der, []byte(password), x509.PEMCipherAES256)
		if err != nil {
			tb.Fatalf("encrypting key: %v", err)
		}
	}

	var out []byte
	out = append(out, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: b.CA.Raw})...)
	out = append(out, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: b.Leaf.Raw})...)
	out = append(out, pem.EncodeToMemory(keyBlock)...)
	return out
}

// WriteFile writes data to dir/name and returns the full path.
func WriteFile(tb testing.TB, dir, name string, data []byte) string {
	tb.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		tb.Fatalf("writing %s: %v", path, err)
	}
	return path
}

func newKey(tb testing.TB) *ecdsa.PrivateKey {
	tb.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		tb.Fatalf("generating key: %v", err)
	}
	return key
}

func sign(tb testing.TB, tmpl, parent *x509.Certificate, pub *ecdsa.PublicKey, priv *ecdsa.PrivateKey) *x509.Certificate {
	tb.Helper()

	der, err := x509.CreateCertificate(rand.Reader, tmpl, parent, pub, priv)
	if err != nil {
		tb.Fatalf("creating certificate: %v", err)
	}
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		tb.Fatalf("parsing certificate: %v", err)
	}
	return cert
}
