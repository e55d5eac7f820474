// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package identity

import (
	"bytes"
	"crypto"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/H0llyW00dzZ/jssl-server/src/internal/helper/gc"
	x509certs "github.com/H0llyW00dzZ/jssl-server/src/internal/x509/certs"
	"github.com/cloudflare/cfssl/helpers"
	"github.com/pavlo-v-chernykh/keystore-go/v4"
	"golang.org/x/crypto/cryptobyte"
	cbasn1 "golang.org/x/crypto/cryptobyte/asn1"
	"software.sslmate.com/src/go-pkcs12"
)

const (
	magicJKS   = 0xFEEDFEED
	magicJCEKS = 0xCECECECE
)

const convertHint = "convert it with: keytool -importkeystore -srckeystore <file> -destkeystore <file>.p12 -deststoretype pkcs12"

// Detect reports the container format of data without decoding it.
func Detect(data []byte) Format {
	s := cryptobyte.String(data)

	var magic uint32
	if s.ReadUint32(&magic) {
		switch magic {
		case magicJKS:
			return FormatJKS
		case magicJCEKS:
			return FormatJCEKS
		}
	}

	if bytes.Contains(data, []byte("-----BEGIN ")) {
		return FormatPEM
	}

	if cryptobyte.String(data).PeekASN1Tag(cbasn1.SEQUENCE) {
		return FormatPKCS12
	}

	return FormatUnknown
}

// Load reads a whole key store from r and decrypts it with password.
//
// Errors wrap ErrBadPassword when the password was rejected and ErrCorrupt
// for everything else.
func Load(r io.Reader, password string) (*Material, error) {
	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	if _, err := buf.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("identity: reading key store: %w", err)
	}

	// Parsed certificates alias their input, so they must not point into a
	// buffer that goes back to the pool.
	data := bytes.Clone(buf.Bytes())

	switch f := Detect(data); f {
	case FormatPKCS12:
		return loadPKCS12(data, password)
	case FormatPEM:
		return loadPEM(data, password)
	case FormatJKS:
		return loadJKS(data, password)
	case FormatJCEKS:
		return nil, fmt.Errorf("%w: legacy %s key store, %s", ErrCorrupt, f, convertHint)
	default:
		return nil, fmt.Errorf("%w: unrecognized key store format", ErrCorrupt)
	}
}

func loadPKCS12(data []byte, password string) (*Material, error) {
	key, leaf, caCerts, err := pkcs12.DecodeChain(data, password)
	if err != nil {
		if errors.Is(err, pkcs12.ErrIncorrectPassword) {
			return nil, ErrBadPassword
		}

		// Stores built with keytool -importcert hold certificates only.
		trusted, terr := pkcs12.DecodeTrustStore(data, password)
		switch {
		case terr == nil:
			return &Material{Trusted: trusted, Format: FormatPKCS12}, nil
		case errors.Is(terr, pkcs12.ErrIncorrectPassword):
			return nil, ErrBadPassword
		}
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	signer, ok := key.(crypto.Signer)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported private key type %T", ErrCorrupt, key)
	}

	return &Material{
		PrivateKey: signer,
		Leaf:       leaf,
		Chain:      caCerts,
		Trusted:    caCerts,
		Format:     FormatPKCS12,
	}, nil
}

// loadJKS decodes a Sun JKS store. The first private key entry by alias
// provides the identity; trusted certificate entries are added as anchors.
// Key entries must be protected with the store password, as keytool does
// by default.
func loadJKS(data []byte, password string) (*Material, error) {
	ks := keystore.New()
	if err := ks.Load(bytes.NewReader(data), []byte(password)); err != nil {
		return nil, jksError(err)
	}

	aliases := ks.Aliases()
	slices.Sort(aliases)

	var (
		signer  crypto.Signer
		certs   []*x509.Certificate
		trusted []*x509.Certificate
	)
	for _, alias := range aliases {
		switch {
		case ks.IsPrivateKeyEntry(alias) && signer == nil:
			entry, err := ks.GetPrivateKeyEntry(alias, []byte(password))
			if err != nil {
				return nil, jksError(err)
			}

			key, err := x509.ParsePKCS8PrivateKey(entry.PrivateKey)
			if err != nil {
				return nil, fmt.Errorf("%w: JKS entry %q: %v", ErrCorrupt, alias, err)
			}
			s, ok := key.(crypto.Signer)
			if !ok {
				return nil, fmt.Errorf("%w: unsupported private key type %T", ErrCorrupt, key)
			}
			signer = s

			for _, c := range entry.CertificateChain {
				cert, err := x509.ParseCertificate(c.Content)
				if err != nil {
					return nil, fmt.Errorf("%w: JKS entry %q: %v", ErrCorrupt, alias, err)
				}
				certs = append(certs, cert)
			}
		case ks.IsTrustedCertificateEntry(alias):
			entry, err := ks.GetTrustedCertificateEntry(alias)
			if err != nil {
				return nil, jksError(err)
			}
			cert, err := x509.ParseCertificate(entry.Certificate.Content)
			if err != nil {
				return nil, fmt.Errorf("%w: JKS entry %q: %v", ErrCorrupt, alias, err)
			}
			trusted = append(trusted, cert)
		}
	}

	if signer == nil {
		if len(trusted) == 0 {
			return nil, fmt.Errorf("%w: JKS key store has no entries", ErrCorrupt)
		}
		return &Material{Trusted: trusted, Format: FormatJKS}, nil
	}
	if len(certs) == 0 {
		return nil, fmt.Errorf("%w: JKS private key entry without certificates", ErrCorrupt)
	}

	leaf, chain := pickLeaf(certs, signer)
	anchors := slices.Clone(chain)
	for _, c := range trusted {
		if !slices.ContainsFunc(anchors, c.Equal) {
			anchors = append(anchors, c)
		}
	}

	return &Material{
		PrivateKey: signer,
		Leaf:       leaf,
		Chain:      chain,
		Trusted:    anchors,
		Format:     FormatJKS,
	}, nil
}

// jksError maps keystore-go failures. The library reports a wrong store or
// key password as a digest mismatch, or refuses a short password outright.
func jksError(err error) error {
	if msg := err.Error(); strings.Contains(msg, "digest") || strings.Contains(msg, "password") {
		return fmt.Errorf("%w: %v", ErrBadPassword, err)
	}
	return fmt.Errorf("%w: JKS: %v", ErrCorrupt, err)
}

func loadPEM(data []byte, password string) (*Material, error) {
	codec := x509certs.New()

	var (
		certPEM  []byte
		keyBlock *pem.Block
	)
	for rest := data; ; {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			break
		}

		switch {
		case codec.IsCertificateBlock(block):
			certPEM = append(certPEM, pem.EncodeToMemory(block)...)
		case strings.HasSuffix(block.Type, "PRIVATE KEY"):
			if keyBlock != nil {
				return nil, fmt.Errorf("%w: more than one private key in bundle", ErrCorrupt)
			}
			keyBlock = block
		}
		// Anything else, e.g. EC PARAMETERS from openssl, is ignored.
	}

	if len(certPEM) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, x509certs.ErrNoCertificates)
	}

	certs, err := codec.DecodeMultiple(certPEM)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	if keyBlock == nil {
		return &Material{Trusted: certs, Format: FormatPEM}, nil
	}

	signer, err := parseKey(keyBlock, password)
	if err != nil {
		return nil, err
	}

	leaf, chain := pickLeaf(certs, signer)
	return &Material{
		PrivateKey: signer,
		Leaf:       leaf,
		Chain:      chain,
		Trusted:    chain,
		Format:     FormatPEM,
	}, nil
}

func parseKey(block *pem.Block, password string) (crypto.Signer, error) {
	encrypted := strings.Contains(block.Headers["Proc-Type"], "ENCRYPTED")

	signer, err := helpers.ParsePrivateKeyPEMWithPassword(pem.EncodeToMemory(block), []byte(password))
	switch {
	case err == nil:
		return signer, nil
	case errors.Is(err, x509.IncorrectPasswordError):
		return nil, ErrBadPassword
	case encrypted:
		// A wrong password occasionally yields valid padding and garbage DER.
		return nil, fmt.Errorf("%w: %v", ErrBadPassword, err)
	case block.Type == "ENCRYPTED PRIVATE KEY":
		return nil, fmt.Errorf("%w: encrypted PKCS#8 keys are not supported, use a PKCS#12 store", ErrCorrupt)
	default:
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
}

// pickLeaf returns the certificate matching signer and the remaining ones in
// their original order. Without a match the first certificate is the leaf.
func pickLeaf(certs []*x509.Certificate, signer crypto.Signer) (*x509.Certificate, []*x509.Certificate) {
	type equaler interface{ Equal(crypto.PublicKey) bool }

	idx := 0
	if pub, ok := signer.Public().(equaler); ok {
		for i, c := range certs {
			if pub.Equal(c.PublicKey) {
				idx = i
				break
			}
		}
	}

	chain := make([]*x509.Certificate, 0, len(certs)-1)
	chain = append(chain, certs[:idx]...)
	chain = append(chain, certs[idx+1:]...)
	return certs[idx], chain
}
