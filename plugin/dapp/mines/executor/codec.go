// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"math"

	mt "github.com/33cn/mines/plugin/dapp/mines/types"
	"github.com/33cn/mines/types"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

// 记录以 protobuf 线格式保存, id 不写入, 由 key 给出.
// 解码是严格的: 未知字段, 重复字段, 线类型不符都视为损坏.
const recordVersion = 1

const (
	fieldVersion protowire.Number = iota + 1
	fieldBoardSize
	fieldMineCount
	fieldSeq
	fieldPlayer
	fieldHouse
	fieldStake
	fieldCommitment
	fieldRevealed // 打包位图, 长度 (N+7)/8
	fieldRevealedCount
	fieldActive
	fieldLost
	fieldState
	fieldStartedAt
	fieldExpiryAt
	fieldIndex
	fieldVault
)

// MarshalAppend bump=1 balance=2
func (v *Vault) MarshalAppend(b []byte) []byte {
	b = types.AppendUint32(b, 1, uint32(v.Bump))
	return types.AppendInt64(b, 2, v.Balance)
}

// Unmarshal decode
func (v *Vault) Unmarshal(data []byte) error {
	*v = Vault{}
	var seen [3]bool
	return types.UnmarshalFields(data, func(f *types.Field) error {
		if f.Num < 1 || f.Num > 2 || seen[f.Num] {
			return errors.Errorf("vault field %d", f.Num)
		}
		seen[f.Num] = true
		switch f.Num {
		case 1:
			bump := f.Uint32()
			if bump > math.MaxUint8 {
				return errors.Errorf("vault bump %d", bump)
			}
			v.Bump = uint8(bump)
		case 2:
			v.Balance = f.Int64()
		}
		return nil
	})
}

// MarshalAppend 编码
func (g *Game) MarshalAppend(b []byte) []byte {
	return appendRecord(b, g, packBits(g.Revealed))
}

func appendRecord(b []byte, g *Game, bitmap []byte) []byte {
	b = types.AppendUint32(b, fieldVersion, recordVersion)
	b = types.AppendUint32(b, fieldBoardSize, uint32(g.BoardSize))
	b = types.AppendUint32(b, fieldMineCount, uint32(g.MineCount))
	b = types.AppendInt64(b, fieldSeq, g.Seq)
	b = types.AppendString(b, fieldPlayer, g.Player)
	b = types.AppendString(b, fieldHouse, g.House)
	b = types.AppendInt64(b, fieldStake, g.Stake)
	b = types.AppendBytes(b, fieldCommitment, g.Commitment)
	b = types.AppendBytes(b, fieldRevealed, bitmap)
	b = types.AppendUint32(b, fieldRevealedCount, uint32(g.RevealedCount))
	b = types.AppendBool(b, fieldActive, g.Active)
	b = types.AppendBool(b, fieldLost, g.Lost)
	b = types.AppendUint32(b, fieldState, uint32(g.State))
	b = types.AppendInt64(b, fieldStartedAt, g.StartedAt)
	b = types.AppendInt64(b, fieldExpiryAt, g.ExpiryAt)
	b = types.AppendInt64(b, fieldIndex, g.Index)
	return types.AppendMessage(b, fieldVault, &g.Vault)
}

// EncodeGame 编码游戏记录
func EncodeGame(g *Game) []byte {
	return g.MarshalAppend(make([]byte, 0, 64))
}

// DecodeGame 解码并校验记录
func DecodeGame(id string, data []byte) (*Game, error) {
	g := &Game{ID: id}
	var version uint32
	var packed []byte
	var seen uint32
	err := types.UnmarshalFields(data, func(f *types.Field) error {
		if f.Num < fieldVersion || f.Num > fieldVault {
			return errors.Errorf("unknown field %d", f.Num)
		}
		bit := uint32(1) << uint(f.Num)
		if seen&bit != 0 {
			return errors.Errorf("duplicate field %d", f.Num)
		}
		seen |= bit
		switch f.Num {
		case fieldVersion:
			version = f.Uint32()
		case fieldBoardSize:
			g.BoardSize = int(f.Uint32())
		case fieldMineCount:
			g.MineCount = int(f.Uint32())
		case fieldSeq:
			g.Seq = f.Int64()
		case fieldPlayer:
			g.Player = f.String()
		case fieldHouse:
			g.House = f.String()
		case fieldStake:
			g.Stake = f.Int64()
		case fieldCommitment:
			g.Commitment = f.Bytes()
		case fieldRevealed:
			packed = f.Bytes()
		case fieldRevealedCount:
			g.RevealedCount = int(f.Uint32())
		case fieldActive:
			g.Active = f.Bool()
		case fieldLost:
			g.Lost = f.Bool()
		case fieldState:
			state := f.Uint32()
			if state > math.MaxUint8 {
				return errors.Errorf("state %d", state)
			}
			g.State = mt.GameState(state)
		case fieldStartedAt:
			g.StartedAt = f.Int64()
		case fieldExpiryAt:
			g.ExpiryAt = f.Int64()
		case fieldIndex:
			g.Index = f.Int64()
		case fieldVault:
			f.Message(&g.Vault)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(mt.ErrGameRecordCorrupt, err.Error())
	}
	if version != recordVersion {
		return nil, errors.Wrapf(mt.ErrGameRecordCorrupt, "version %d", version)
	}
	if g.BoardSize < 2 || g.BoardSize > mt.MaxBoardSize {
		return nil, mt.ErrGameRecordCorrupt
	}
	if len(packed) != (g.BoardSize+7)/8 || !paddingClean(packed, g.BoardSize) {
		return nil, mt.ErrGameRecordCorrupt
	}
	g.Revealed = unpackBits(packed, g.BoardSize)
	if err := g.check(); err != nil {
		return nil, err
	}
	return g, nil
}
