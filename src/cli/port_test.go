// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli_test

import (
	"net"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

// newOccupiedPort returns a loopback port held open until the test ends.
func newOccupiedPort(t *testing.T) string {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	return strconv.Itoa(ln.Addr().(*net.TCPAddr).Port)
}
