// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package tlsctx turns decoded key material and a protocol allow-list into
// the immutable TLS server state shared by every connection.
//
// crypto/tls only understands a contiguous [MinVersion, MaxVersion] range, so
// a [Context] does not configure one range for the whole listener. Instead it
// hands out per-connection configurations pinned to a single version through
// [Context.ConfigFor]; the negotiation hook picks which one.
//
// SSLv3 cannot be served by crypto/tls. Requesting it explicitly fails with
// [ErrUnsupportedProtocol]; when it only came from the implicit default set it
// is dropped and listed by [Context.Dropped].
package tlsctx
