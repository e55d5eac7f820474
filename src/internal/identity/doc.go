// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package identity locates and decrypts the server's key store.
//
// A key store name is resolved against the working directory first and the
// directory of the running executable second, so a binary shipped next to its
// jssl.jks works from any directory. Supported containers:
//   - [PKCS12], including stores written by keytool (its default format since
//     JDK 9, regardless of the .jks extension)
//   - Sun JKS stores from older keytool releases, whose key entries share
//     the store password
//   - PEM bundles holding certificates and one private key, optionally
//     encrypted with a legacy RFC 1423 password
//
// JCEKS stores are detected and rejected with a conversion hint.
//
// [PKCS12]: https://grokipedia.com/page/PKCS_12
package identity
