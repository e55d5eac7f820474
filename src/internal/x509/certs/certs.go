// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs

import (
	"crypto/x509"
	"encoding/pem"
	"errors"

	"github.com/cloudflare/cfssl/crypto/pkcs7"
)

var (
	// ErrInvalidPEMBlock indicates that the provided data does not contain a valid PEM block.
	ErrInvalidPEMBlock = errors.New("x509certs: invalid PEM block")

	// ErrInvalidBlockType indicates that the PEM block type is not a certificate type.
	ErrInvalidBlockType = errors.New("x509certs: invalid block type")

	// ErrParseCertificate indicates a failure to parse the certificate from the provided data.
	ErrParseCertificate = errors.New("x509certs: failed to parse certificate")

	// ErrParsePKCS7 indicates a failure to parse PKCS7 formatted data.
	ErrParsePKCS7 = errors.New("x509certs: failed to parse PKCS7 data")

	// ErrNoCertificates indicates that the data held no certificates at all.
	ErrNoCertificates = errors.New("x509certs: no certificates found")
)

// PEM block types accepted as certificate containers.
const (
	blockCertificate = "CERTIFICATE"
	blockPKCS7       = "PKCS7"
)

// Certificate provides methods to decode and encode [X.509] certificates
// found in identity bundles.
//
// [X.509]: https://en.wikipedia.org/wiki/X.509
type Certificate struct {
	certBlockType string
}

// New creates a new Certificate with default settings.
func New() *Certificate {
	return &Certificate{
		certBlockType: blockCertificate,
	}
}

// IsPEM checks if the data is in PEM format.
func (c *Certificate) IsPEM(data []byte) bool {
	block, _ := pem.Decode(data)
	return block != nil
}

// IsCertificateBlock reports whether a PEM block carries certificates.
func (c *Certificate) IsCertificateBlock(block *pem.Block) bool {
	return block.Type == c.certBlockType || block.Type == blockPKCS7
}

// DecodeMultiple decodes every certificate in data.
//
// PEM input may mix CERTIFICATE and PKCS7 blocks; any other block type is
// rejected, so callers holding a bundle with private keys must split it first.
// Non-PEM input is tried as concatenated DER certificates, then as a DER PKCS7
// bundle.
func (c *Certificate) DecodeMultiple(data []byte) ([]*x509.Certificate, error) {
	if c.IsPEM(data) {
		var certs []*x509.Certificate

		for len(data) > 0 {
			block, rest := pem.Decode(data)
			if block == nil {
				break
			}
			if !c.IsCertificateBlock(block) {
				return nil, ErrInvalidBlockType
			}

			decoded, err := c.decodeBlock(block)
			if err != nil {
				return nil, err
			}

			certs = append(certs, decoded...)
			data = rest
		}

		if len(certs) == 0 {
			return nil, ErrNoCertificates
		}
		return certs, nil
	}

	if certs, err := x509.ParseCertificates(data); err == nil && len(certs) > 0 {
		return certs, nil
	}

	return c.decodePKCS7(data)
}

// Decode decodes a single certificate from data, taking the first one when
// data holds a bundle.
func (c *Certificate) Decode(data []byte) (*x509.Certificate, error) {
	certs, err := c.DecodeMultiple(data)
	if err != nil {
		return nil, err
	}
	return certs[0], nil
}

// decodeBlock parses one certificate-carrying PEM block.
func (c *Certificate) decodeBlock(block *pem.Block) ([]*x509.Certificate, error) {
	if block.Type == blockPKCS7 {
		return c.decodePKCS7(block.Bytes)
	}

	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return nil, ErrParseCertificate
	}
	return []*x509.Certificate{cert}, nil
}

// decodePKCS7 extracts certificates from DER PKCS7 data using Cloudflare's library.
func (c *Certificate) decodePKCS7(data []byte) ([]*x509.Certificate, error) {
	p, err := pkcs7.ParsePKCS7(data)
	if err != nil {
		return nil, ErrParsePKCS7
	}
	if len(p.Content.SignedData.Certificates) == 0 {
		return nil, ErrNoCertificates
	}
	return p.Content.SignedData.Certificates, nil
}

// EncodePEM encodes a certificate to PEM format.
func (c *Certificate) EncodePEM(cert *x509.Certificate) []byte {
	block := pem.Block{
		Type:  c.certBlockType,
		Bytes: cert.Raw,
	}
	return pem.EncodeToMemory(&block)
}

// EncodeMultiplePEM encodes multiple certificates to PEM format.
func (c *Certificate) EncodeMultiplePEM(certs []*x509.Certificate) []byte {
	var data []byte

	for _, cert := range certs {
		data = append(data, c.EncodePEM(cert)...)
	}

	return data
}
