// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package templates

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMagicEmbedReadFile(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		wantErr  bool
	}{
		{name: "CLI help", filename: CLIHelp},
		{name: "banner", filename: Banner},
		{name: "missing", filename: "non-existent.md", wantErr: true},
		{name: "escaping root", filename: "../invalid.md", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := MagicEmbed.ReadFile(tt.filename)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, data)
		})
	}
}

func TestCLIHelpHasExamplesSection(t *testing.T) {
	data, err := MagicEmbed.ReadFile(CLIHelp)
	require.NoError(t, err)
	assert.Contains(t, string(data), "## Examples")
}

func TestMagicEmbedReadDir(t *testing.T) {
	entries, err := MagicEmbed.ReadDir(".")
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Contains(t, names, CLIHelp)
	assert.Contains(t, names, Banner)
}

func TestMagicEmbedOpen(t *testing.T) {
	f, err := MagicEmbed.Open(Banner)
	require.NoError(t, err)
	defer f.Close()

	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Contains(t, string(data), "{{.Version}}")
}
