// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package gc

import "bytes"

// mockBuffer is a Buffer that no Pool handed out.
type mockBuffer struct{ *bytes.Buffer }

func (m mockBuffer) Set(p []byte) {
	m.Reset()
	m.Write(p)
}

func (m mockBuffer) SetString(s string) {
	m.Reset()
	m.WriteString(s)
}

// errorReader fails every Read with err.
type errorReader struct{ err error }

func (e errorReader) Read([]byte) (int, error) { return 0, e.err }
