// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package server runs the diagnostic HTTPS endpoint.
//
// A [Server] owns one listening socket. Every accepted connection is served
// on its own goroutine: the TLS handshake runs through the negotiation hook
// from the negotiate package, and a successful handshake is followed by a
// single canned HTTP/1.1 response from [ResponseHandler].
//
// Lifecycle:
//
//	Created -> Starting -> Running -> Stopping -> Stopped
//	              |                                  ^
//	              +----------- bind failure ---------+
//
// Example:
//
//	srv, err := server.NewBuilder().
//	    WithAddr(":9999").
//	    WithContext(tlsCtx).
//	    WithLogger(log).
//	    Build()
//	if err != nil {
//	    return err
//	}
//	return srv.Run(ctx, 3*time.Second)
package server
