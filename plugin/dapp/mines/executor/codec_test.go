// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"testing"

	"github.com/33cn/mines/common"
	mt "github.com/33cn/mines/plugin/dapp/mines/types"
	"github.com/33cn/mines/types"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

func testGame() *Game {
	g := &Game{
		ID:         "ab",
		Seq:        7,
		Player:     playerAddr,
		House:      houseAddr,
		Stake:      1000,
		BoardSize:  25,
		MineCount:  3,
		Commitment: common.Sha256([]byte("commitment")),
		Revealed:   make([]bool, 25),
		Active:     true,
		State:      mt.StateCommitted,
		StartedAt:  1000,
		ExpiryAt:   1600,
		Index:      300000,
		Vault:      Vault{Bump: 255, Balance: 1000},
	}
	g.Revealed[0] = true
	g.Revealed[24] = true
	g.RevealedCount = 2
	return g
}

func TestGameCodec(t *testing.T) {
	g := testGame()
	data := EncodeGame(g)
	g2, err := DecodeGame("ab", data)
	require.NoError(t, err)
	assert.Equal(t, g, g2)

	g.Active = false
	g.Lost = true
	g.State = mt.StateFinished
	g2, err = DecodeGame("ab", EncodeGame(g))
	require.NoError(t, err)
	assert.Equal(t, g, g2)
}

func TestGameCodecCorrupt(t *testing.T) {
	data := EncodeGame(testGame())
	corrupt := func(data []byte, msg string) {
		_, err := DecodeGame("ab", data)
		assert.Equal(t, mt.ErrGameRecordCorrupt, errors.Cause(err), msg)
	}

	corrupt(data[:len(data)-1], "truncated")
	corrupt(append(append([]byte(nil), data...), 0), "field 0")
	corrupt(nil, "empty")

	bad := append([]byte(nil), data...)
	require.Equal(t, byte(recordVersion), bad[1])
	bad[1] = 2
	corrupt(bad, "version")

	corrupt(types.AppendInt64(append([]byte(nil), data...), 30, 1), "unknown field")
	corrupt(types.AppendInt64(append([]byte(nil), data...), fieldStake, 5), "duplicate field")
	// index 为 0 时不写出, 再以 bytes 写入
	g := testGame()
	g.Index = 0
	corrupt(types.AppendString(EncodeGame(g), fieldIndex, "x"), "wire type")

	// bool 只能是 0 或 1
	g = testGame()
	corrupt(types.AppendVarint(EncodeGame(g), fieldLost, 2), "bool")

	// revealedCount 与位图不一致
	g = testGame()
	g.RevealedCount = 3
	_, err := DecodeGame("ab", EncodeGame(g))
	assert.Equal(t, mt.ErrGameRecordCorrupt, err)

	// lost 但仍然 active
	g = testGame()
	g.Lost = true
	_, err = DecodeGame("ab", EncodeGame(g))
	assert.Equal(t, mt.ErrGameRecordCorrupt, err)

	// 位图多余的位, 以及长度不对
	g = testGame()
	bitmap := packBits(g.Revealed)
	bitmap[3] |= 0x80
	_, err = DecodeGame("ab", appendRecord(nil, g, bitmap))
	assert.Equal(t, mt.ErrGameRecordCorrupt, err)
	_, err = DecodeGame("ab", appendRecord(nil, g, packBits(g.Revealed)[:3]))
	assert.Equal(t, mt.ErrGameRecordCorrupt, err)

	// 托管账户字段
	rec := appendRecordNoVault(testGame())
	corrupt(append(rec, wrapVault(types.AppendInt64(nil, 3, 1))...), "vault field")
	corrupt(append(rec, wrapVault(types.AppendUint32(nil, 1, 256))...), "vault bump")
	g2, err := DecodeGame("ab", append(rec, wrapVault(types.AppendInt64(nil, 2, 1000))...))
	require.NoError(t, err)
	assert.Equal(t, uint8(0), g2.Vault.Bump)
	assert.Equal(t, int64(1000), g2.Vault.Balance)
}

func appendRecordNoVault(g *Game) []byte {
	data := appendRecord(nil, g, packBits(g.Revealed))
	vault := types.AppendMessage(nil, fieldVault, &g.Vault)
	return data[:len(data)-len(vault)]
}

func wrapVault(body []byte) []byte {
	b := protowire.AppendTag(nil, fieldVault, protowire.BytesType)
	return protowire.AppendBytes(b, body)
}
