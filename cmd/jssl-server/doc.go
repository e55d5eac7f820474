// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// jssl-server is a TLS test endpoint that accepts connections only for an
// explicit set of protocol versions and answers every HTTPS request with a
// one-line version string.
//
// # Installation
//
// Install with Go 1.25.5 or later:
//
//	go install github.com/H0llyW00dzZ/jssl-server/cmd/jssl-server@latest
//
// # Usage
//
//	jssl-server [-p PORT] [-keystore FILE] [-SSLv3] [-TLSv1] [-TLSv1.1] [-TLSv1.2] [-TLSv1.3]
//
// # Flags
//
//	-p, --port        Port to listen on (default 9999)
//	    --host        Interface to bind (default all)
//	-k, --keystore    Key store file, PKCS#12, JKS or PEM (default jssl.jks)
//	    --password    Key store password (env JSSL_KEYSTORE_PASSWORD)
//	    --config      JSON or YAML configuration file (env JSSL_CONFIG_FILE)
//	    --grace       Shutdown grace period (default 3s)
//	    --log-format  text or json
//	    --tlsv1.2     Enable one protocol version; repeatable, order kept
//	    --protocol    Enable versions as a comma-separated list
//
// Flag names are case-insensitive and single-dash long forms are accepted,
// so the legacy spelling -TLSv1.2 works.
//
// # Subcommands
//
//	jssl-server protocols                 List versions and default cipher suites
//	jssl-server identity [--pem]          Show or export the key store certificates
//	jssl-server probe HOST:PORT           Connect with a pinned version
//
// # Examples
//
// Serve TLS 1.2 and 1.3 from a PKCS#12 store:
//
//	jssl-server -keystore server.p12 -TLSv1.2 -TLSv1.3
//
// Check what a pinned client negotiates:
//
//	jssl-server probe localhost:9999 --protocol TLSv1.1
//
// Cross-check with OpenSSL:
//
//	openssl s_client -connect localhost:9999 -tls1_2
package main
