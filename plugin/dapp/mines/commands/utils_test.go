// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"path/filepath"
	"testing"

	"github.com/33cn/mines/common"
	"github.com/33cn/mines/common/merkle"
	mt "github.com/33cn/mines/plugin/dapp/mines/types"
	"github.com/33cn/mines/types"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCoins(t *testing.T) {
	v, err := parseCoins("1.5")
	require.NoError(t, err)
	assert.Equal(t, int64(150000000), v)

	v, err = parseCoins("0.00000001")
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	v, err = parseCoins("20")
	require.NoError(t, err)
	assert.Equal(t, 20*types.Coin, v)

	for _, s := range []string{"", "abc", "0", "-1", "0.000000001", "1000000000"} {
		_, err = parseCoins(s)
		assert.Equal(t, types.ErrAmount, errors.Cause(err), s)
	}
}

func TestFormatCoins(t *testing.T) {
	assert.Equal(t, "1.5000", formatCoins(150000000))
	assert.Equal(t, "0.0000", formatCoins(1))
	assert.Equal(t, "20.0000", formatCoins(20*types.Coin))
}

func TestMinesCmdTree(t *testing.T) {
	cmd := MinesCmd()
	names := make(map[string]bool)
	for _, c := range cmd.Commands() {
		names[c.Name()] = true
	}
	for _, name := range []string{"start", "reveal", "cashout", "collect", "abort", "game", "vault", "list", "count", "family", "house"} {
		assert.True(t, names[name], name)
	}
}

func TestRevealFromBoard(t *testing.T) {
	board, err := mt.NewBoardWithMines(merkle.SHA256, 25, []uint32{2, 9})
	require.NoError(t, err)
	file := filepath.Join(t.TempDir(), "board.json")
	require.NoError(t, board.Save(file))

	req, err := revealFromBoard(file, "0x01", 9)
	require.NoError(t, err)
	assert.Equal(t, uint8(1), req.IsMine)
	assert.Equal(t, uint32(9), req.PathBits)
	assert.Len(t, req.Proof, 5)

	proof := &merkle.Proof{Index: req.TileIndex, IsMine: true, PathBits: req.PathBits}
	proof.Nonce, err = common.FromHex(req.Nonce)
	require.NoError(t, err)
	for _, p := range req.Proof {
		b, err := common.FromHex(p)
		require.NoError(t, err)
		proof.Branch = append(proof.Branch, b)
	}
	hasher := merkle.MustNewHasher(merkle.SHA256)
	assert.True(t, hasher.Verify(board.CommitmentBytes(), 25, proof))

	_, err = revealFromBoard(file, "0x01", 25)
	assert.Equal(t, mt.ErrInvalidTileIndex, errors.Cause(err))
	_, err = revealFromBoard(filepath.Join(t.TempDir(), "missing.json"), "0x01", 0)
	assert.Error(t, err)
}
