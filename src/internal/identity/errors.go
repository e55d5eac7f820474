// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package identity

import "errors"

var (
	// ErrNotFound indicates that no key store exists under the requested name.
	ErrNotFound = errors.New("identity: key store not found")

	// ErrCorrupt indicates that the key store could not be decoded.
	ErrCorrupt = errors.New("identity: key store is corrupt or unsupported")

	// ErrBadPassword indicates that the key store password was rejected.
	ErrBadPassword = errors.New("identity: incorrect key store password")
)
