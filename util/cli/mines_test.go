// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/33cn/mines/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "node.toml")
	require.NoError(t, os.WriteFile(file, []byte(`
title="test"
[store]
driver="memdb"
dbPath="datadir"
`), 0600))

	*configPath = file
	defer func() { *configPath = "" }()
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "test", cfg.Title)
	assert.Equal(t, "memdb", cfg.Store.Driver)

	*configPath = filepath.Join(dir, "missing.toml")
	_, err = loadConfig("")
	assert.Error(t, err)
}

func TestLoadDefaultConfig(t *testing.T) {
	*configPath = ""
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "none"))
	require.NoError(t, err)
	assert.Equal(t, "goleveldb", cfg.Store.Driver)
	assert.Equal(t, "localhost:8801", cfg.RPC.JrpcBindAddr)
	assert.True(t, cfg.HasSub("mines"))
	*configPath = ""
}

func TestResetDatadir(t *testing.T) {
	cfg := types.MustInitCfgString(types.DefaultConfig)
	resetDatadir(cfg, "/data")
	assert.Equal(t, filepath.Join("/data", "datadir"), cfg.Store.DbPath)
	assert.Equal(t, filepath.Join("/data", "logs/mines.log"), cfg.Log.LogFile)
}

func TestCommandTree(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["account"])
	assert.True(t, names["tx"])
	assert.True(t, names["version"])
}
