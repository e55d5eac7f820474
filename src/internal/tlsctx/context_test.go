// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package tlsctx_test

import (
	"crypto/rsa"
	"crypto/tls"
	"testing"

	"github.com/H0llyW00dzZ/jssl-server/src/internal/identity"
	"github.com/H0llyW00dzZ/jssl-server/src/internal/identity/identitytest"
	"github.com/H0llyW00dzZ/jssl-server/src/internal/protocol"
	"github.com/H0llyW00dzZ/jssl-server/src/internal/tlsctx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	bundle := identitytest.New(t)

	tests := []struct {
		name        string
		allowed     protocol.AllowList
		want        []protocol.Version
		wantDropped []protocol.Version
		wantErr     error
	}{
		{
			name:        "default set drops SSLv3",
			allowed:     protocol.Default(),
			want:        []protocol.Version{protocol.TLSv1, protocol.TLSv1_1, protocol.TLSv1_2, protocol.TLSv1_3},
			wantDropped: []protocol.Version{protocol.SSLv3},
		},
		{
			name:    "explicit subset kept in order",
			allowed: protocol.Of(protocol.TLSv1_3, protocol.TLSv1),
			want:    []protocol.Version{protocol.TLSv1_3, protocol.TLSv1},
		},
		{
			name:    "single version",
			allowed: protocol.Of(protocol.TLSv1_2),
			want:    []protocol.Version{protocol.TLSv1_2},
		},
		{
			name:    "explicit SSLv3",
			allowed: protocol.Of(protocol.SSLv3, protocol.TLSv1_2),
			wantErr: tlsctx.ErrUnsupportedProtocol,
		},
		{
			name:    "empty",
			allowed: protocol.Of(),
			wantErr: tlsctx.ErrNoProtocols,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, err := tlsctx.Build(bundle.Material(), tt.allowed)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, ctx)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, ctx.Protocols().Versions())
			assert.Equal(t, tt.wantDropped, ctx.Dropped())
			assert.Same(t, bundle.Leaf, ctx.Leaf())
		})
	}
}

func TestBuildInvalidIdentity(t *testing.T) {
	bundle := identitytest.New(t)
	other := identitytest.New(t)

	mismatched := bundle.Material()
	mismatched.PrivateKey = other.Key

	tests := []struct {
		name string
		m    *identity.Material
	}{
		{name: "nil", m: nil},
		{name: "trust store only", m: &identity.Material{Trusted: bundle.Material().Trusted}},
		{name: "missing leaf", m: &identity.Material{PrivateKey: bundle.Key}},
		{name: "key does not match leaf", m: mismatched},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tlsctx.Build(tt.m, protocol.Of(protocol.TLSv1_2))
			assert.ErrorIs(t, err, tlsctx.ErrInvalidIdentity)
		})
	}
}

func TestBaseConfig(t *testing.T) {
	bundle := identitytest.New(t)
	ctx, err := tlsctx.Build(bundle.Material(), protocol.Of(protocol.TLSv1_3, protocol.TLSv1_1))
	require.NoError(t, err)

	base := ctx.Base()
	assert.Equal(t, uint16(tls.VersionTLS11), base.MinVersion)
	assert.Equal(t, uint16(tls.VersionTLS13), base.MaxVersion)
	assert.Equal(t, tls.NoClientCert, base.ClientAuth)
	assert.Equal(t, []string{"http/1.1"}, base.NextProtos)
	require.Len(t, base.Certificates, 1)
	assert.Len(t, base.Certificates[0].Certificate, 2)
	assert.NotNil(t, base.ClientCAs)
	assert.Nil(t, base.CipherSuites)

	// Callers get a copy.
	base.NextProtos[0] = "h2"
	assert.Equal(t, []string{"http/1.1"}, ctx.Base().NextProtos)
}

func TestConfigFor(t *testing.T) {
	bundle := identitytest.New(t)
	ctx, err := tlsctx.Build(bundle.Material(), protocol.Of(protocol.TLSv1_2, protocol.TLSv1_3))
	require.NoError(t, err)

	cfg, err := ctx.ConfigFor(protocol.TLSv1_2)
	require.NoError(t, err)
	assert.Equal(t, uint16(tls.VersionTLS12), cfg.MinVersion)
	assert.Equal(t, uint16(tls.VersionTLS12), cfg.MaxVersion)

	again, err := ctx.ConfigFor(protocol.TLSv1_3)
	require.NoError(t, err)
	assert.NotSame(t, cfg, again)
	assert.Equal(t, uint16(tls.VersionTLS12), cfg.MaxVersion, "earlier configuration must stay untouched")
	assert.Equal(t, uint16(tls.VersionTLS13), again.MinVersion)

	_, err = ctx.ConfigFor(protocol.TLSv1)
	assert.ErrorIs(t, err, tlsctx.ErrNotEnabled)
}

func TestCipherSuitesFor(t *testing.T) {
	bundle := identitytest.New(t)
	ctx, err := tlsctx.Build(bundle.Material(), protocol.Default())
	require.NoError(t, err)

	tls12 := ctx.CipherSuitesFor(protocol.TLSv1_2)
	require.NotEmpty(t, tls12)
	assert.Contains(t, tls12, "TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256")
	for _, name := range tls12 {
		assert.Contains(t, name, "_ECDSA_")
		assert.NotContains(t, name, "_CBC_SHA256")
	}

	tls13 := ctx.CipherSuitesFor(protocol.TLSv1_3)
	assert.Contains(t, tls13, "TLS_AES_128_GCM_SHA256")

	tls10 := ctx.CipherSuitesFor(protocol.TLSv1)
	assert.Contains(t, tls10, "TLS_ECDHE_ECDSA_WITH_AES_128_CBC_SHA")
	assert.NotContains(t, tls10, "TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256")

	assert.Empty(t, ctx.CipherSuitesFor(protocol.SSLv3))

	rsaSuites := tlsctx.CipherSuitesFor(protocol.TLSv1_2, &rsa.PublicKey{})
	assert.Contains(t, rsaSuites, "TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256")
	assert.NotContains(t, rsaSuites, "TLS_RSA_WITH_AES_128_GCM_SHA256")

	all := tlsctx.CipherSuitesFor(protocol.TLSv1_2, nil)
	assert.Greater(t, len(all), len(tls12))
}
