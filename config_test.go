// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package lspclient

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
address = "unix:/tmp/gopls.sock"
dialTimeout = "3s"
maxHeaderBytes = 1024
maxBodyBytes = 4096
discardPolicy = "surface-errors"
rootUri = "file:///src/project"

[client]
name = "editor"
version = "0.4.0"

[[workspaceFolders]]
uri = "file:///src/project"
name = "project"
`

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "unix:/tmp/gopls.sock", cfg.Address)
	assert.Equal(t, "file:///src/project", cfg.RootURI)
	assert.Equal(t, ClientInfo{Name: "editor", Version: "0.4.0"}, cfg.Client)
	assert.Equal(t, []WorkspaceFolder{{URI: "file:///src/project", Name: "project"}}, cfg.WorkspaceFolders)

	o := newDialOptions(cfg.Options())
	assert.Equal(t, 3*time.Second, o.dialTimeout)
	assert.Equal(t, 1024, o.maxHeader)
	assert.Equal(t, 4096, o.maxBody)
	assert.Equal(t, SurfaceIDlessErrors, o.policy)
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(`address = "tcp:127.0.0.1:9257"`))
	require.NoError(t, err)
	assert.Equal(t, "lspclient", cfg.Client.Name)

	o := newDialOptions(cfg.Options())
	assert.Zero(t, o.dialTimeout)
	assert.Equal(t, DefaultMaxHeaderBytes, o.maxHeader)
	assert.Equal(t, DefaultMaxBodyBytes, o.maxBody)
	assert.Equal(t, DiscardIDless, o.policy)

	params := cfg.InitializeParams(99)
	assert.Equal(t, 99, params.ProcessID)
	assert.Equal(t, "lspclient", params.ClientInfo.Name)
	assert.NotNil(t, params.WorkspaceFolders)
}

func TestParseConfigErrors(t *testing.T) {
	tests := map[string]string{
		"missing address":  `rootUri = "file:///"`,
		"bad address":      `address = "ssh:host"`,
		"bad timeout":      "address = \"tcp:localhost:1\"\ndialTimeout = \"soon\"",
		"negative timeout": "address = \"tcp:localhost:1\"\ndialTimeout = \"-1s\"",
		"negative header":  "address = \"tcp:localhost:1\"\nmaxHeaderBytes = -1",
		"negative body":    "address = \"tcp:localhost:1\"\nmaxBodyBytes = -1",
		"bad policy":       "address = \"tcp:localhost:1\"\ndiscardPolicy = \"keep\"",
		"bad toml":         `address = `,
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseConfig([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lsp.toml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "unix:/tmp/gopls.sock", cfg.Address)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDialConfigInvalidAddressNeverDials(t *testing.T) {
	cfg := &Config{Address: "ftp:example.com:21"}
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	_, err := DialConfig(ctx, cfg)
	require.ErrorIs(t, err, ErrInvalidAddress)
}
