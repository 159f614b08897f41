// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package log

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/33cn/mines/types"
	log15 "github.com/inconshreveable/log15"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLevel(t *testing.T) {
	assert.Equal(t, log15.LvlDebug, getLevel("debug"))
	assert.Equal(t, log15.LvlInfo, getLevel("info"))
	assert.Equal(t, log15.LvlError, getLevel(""))
	assert.Equal(t, log15.LvlError, getLevel("verbose"))
}

func TestFillDefault(t *testing.T) {
	cfg := &types.Log{}
	fillDefaultValue(cfg)
	assert.Equal(t, "eror", cfg.Loglevel)
	assert.Equal(t, "eror", cfg.LogConsoleLevel)
}

func TestSetFileLog(t *testing.T) {
	dir, err := ioutil.TempDir("", "mineslog")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	file := filepath.Join(dir, "mines.log")
	SetFileLog(&types.Log{Loglevel: "info", LogConsoleLevel: "crit", LogFile: file, MaxFileSize: 1})
	New("module", "test").Info("hello", "k", 1)
	New("module", "test").Debug("filtered")
	require.NoError(t, Close())

	data, err := ioutil.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=hello")
	assert.Contains(t, string(data), "module=test")
	assert.NotContains(t, string(data), "filtered")

	SetLogLevel("crit")
	assert.NoError(t, Close())
}
