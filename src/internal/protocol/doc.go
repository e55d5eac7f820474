// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package protocol models the SSL/TLS protocol versions the server can be asked
// to negotiate and the ordered allow-list built from operator input.
//
// Tokens follow the names used by Java's JSSE (SSLv3, TLSv1, TLSv1.1, TLSv1.2,
// TLSv1.3) so the same flags work when comparing against a JSSE server.
package protocol
