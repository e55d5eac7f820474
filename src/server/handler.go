// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package server

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"strconv"

	"github.com/H0llyW00dzZ/jssl-server/src/internal/protocol"
	"github.com/H0llyW00dzZ/jssl-server/src/logger"
)

// ResponseHandler answers every request with the same plain-text payload
// naming the application and its version.
//
// The request method, path and body are ignored; the body is never read.
// ResponseHandler is safe for concurrent use.
type ResponseHandler struct {
	payload []byte
	length  string
	log     logger.Logger
}

// NewResponseHandler creates the handler for appName and appVersion.
//
// Parameters:
//   - appName: Application name placed first in the payload
//   - appVersion: Version string following the word "version"
//   - log: Receives the negotiated parameters of each request (nil discards)
//
// Returns:
//   - A handler whose payload is "{appName} version {appVersion}\n"
func NewResponseHandler(appName, appVersion string, log logger.Logger) *ResponseHandler {
	if log == nil {
		log = logger.Discard()
	}

	payload := fmt.Appendf(nil, "%s version %s\n", appName, appVersion)
	return &ResponseHandler{
		payload: payload,
		length:  strconv.Itoa(len(payload)),
		log:     log,
	}
}

// Payload returns a copy of the response body.
func (h *ResponseHandler) Payload() []byte {
	return append([]byte(nil), h.payload...)
}

// ServeHTTP implements http.Handler.
func (h *ResponseHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.TLS != nil {
		h.log.Printf("Negotiated %s with %s for %s", describeVersion(r.TLS.Version),
			tls.CipherSuiteName(r.TLS.CipherSuite), r.RemoteAddr)
	}

	header := w.Header()
	header.Set("Access-Control-Allow-Origin", "*")
	header.Set("Content-Type", "text/plain; charset=utf-8")
	header.Set("Content-Length", h.length)
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(h.payload); err != nil {
		h.log.Printf("Writing response to %s failed: %v", r.RemoteAddr, err)
	}
}

func describeVersion(wire uint16) string {
	if v, ok := protocol.FromWire(wire); ok {
		return v.String()
	}
	return tls.VersionName(wire)
}
