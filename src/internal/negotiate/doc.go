// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package negotiate decides, per connection, which protocol version a
// handshake may use.
//
// [Hook] plugs into tls.Config.GetConfigForClient. For every ClientHello it
// asks a [Policy] for the session parameters, logs the connection, and returns
// a configuration pinned to the selected version. A client that offers no
// permitted version fails its own handshake; other connections are not
// affected and nothing falls back to a wider set.
package negotiate
