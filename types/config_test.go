// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg, err := InitCfgString(DefaultConfig)
	require.NoError(t, err)
	assert.Equal(t, "local", cfg.Title)
	assert.Equal(t, "goleveldb", cfg.Store.Driver)
	assert.Equal(t, "localhost:8801", cfg.RPC.JrpcBindAddr)
	require.Len(t, cfg.Exec.Genesis, 1)
	assert.Equal(t, int64(100000000000000), cfg.Exec.Genesis[0].Amount)
	assert.True(t, cfg.HasSub("mines"))

	var sub struct {
		BoardSize     int    `toml:"boardSize"`
		ExpirySeconds int64  `toml:"expirySeconds"`
		HashType      string `toml:"hashType"`
	}
	require.NoError(t, cfg.DecodeSub("mines", &sub))
	assert.Equal(t, 25, sub.BoardSize)
	assert.Equal(t, int64(600), sub.ExpirySeconds)
	assert.Equal(t, "sha256", sub.HashType)
}

func TestConfigFillDefault(t *testing.T) {
	cfg, err := InitCfgString(`title="test"`)
	require.NoError(t, err)
	assert.Equal(t, "memdb", cfg.Store.Driver)
	assert.NotNil(t, cfg.Log)
	assert.NotNil(t, cfg.RPC)
	assert.False(t, cfg.HasSub("mines"))
	assert.Equal(t, ErrNotFound, cfg.DecodeSub("mines", &struct{}{}))
}

func TestConfigBadToml(t *testing.T) {
	_, err := InitCfgString(`title=`)
	assert.Error(t, err)
	assert.Panics(t, func() { MustInitCfgString("[[[") })
}
