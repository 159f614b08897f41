// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"github.com/33cn/mines/common"
	"github.com/33cn/mines/common/address"
	mt "github.com/33cn/mines/plugin/dapp/mines/types"
)

// Vault 与游戏一一对应的托管账户. 资金存放在账本中 address.VaultAddress 处,
// Balance 是记录的应有余额, 游戏未结束时恒等于押注金额.
type Vault struct {
	Bump    uint8
	Balance int64
}

// Game 游戏记录与托管账户组成的聚合, 在状态数据库中作为一个值保存
type Game struct {
	ID            string
	Seq           int64
	Player        string
	House         string
	Stake         int64
	BoardSize     int
	MineCount     int
	Commitment    []byte
	Revealed      []bool
	RevealedCount int
	Active        bool
	Lost          bool
	State         mt.GameState
	StartedAt     int64
	ExpiryAt      int64
	// Index 最近一次状态变化的 height*MaxTxsPerHeight+index, 本地索引用
	Index int64
	Vault Vault
}

// VaultAddr 托管地址
func (g *Game) VaultAddr() string {
	id, err := common.FromHex(g.ID)
	if err != nil {
		panic(err)
	}
	return address.VaultAddress(mt.MinesX, id, g.Vault.Bump)
}

// Status 本地索引使用的状态
func (g *Game) Status() int32 {
	if g.Lost {
		return mt.StatusLost
	}
	return mt.StatusActive
}

func (g *Game) revealedList() []uint32 {
	list := make([]uint32, 0, g.RevealedCount)
	for i, r := range g.Revealed {
		if r {
			list = append(list, uint32(i))
		}
	}
	return list
}

// View 查询视图
func (g *Game) View() *mt.GameView {
	return &mt.GameView{
		GameID:        g.ID,
		Player:        g.Player,
		House:         g.House,
		Stake:         g.Stake,
		BoardSize:     uint32(g.BoardSize),
		MineCount:     uint32(g.MineCount),
		Commitment:    common.ToHex(g.Commitment),
		Revealed:      g.revealedList(),
		RevealedCount: uint32(g.RevealedCount),
		Active:        g.Active,
		Lost:          g.Lost,
		State:         g.State.String(),
		StartedAt:     g.StartedAt,
		ExpiryAt:      g.ExpiryAt,
		Vault:         g.VaultAddr(),
	}
}

// check 记录自身的一致性, 解码后调用
func (g *Game) check() error {
	if g.BoardSize < 2 || g.BoardSize > mt.MaxBoardSize || len(g.Revealed) != g.BoardSize {
		return mt.ErrGameRecordCorrupt
	}
	if g.MineCount <= 0 || g.MineCount >= g.BoardSize {
		return mt.ErrGameRecordCorrupt
	}
	if len(g.Commitment) != 32 || g.Stake <= 0 || g.Seq <= 0 {
		return mt.ErrGameRecordCorrupt
	}
	if g.Player == "" || g.House == "" {
		return mt.ErrGameRecordCorrupt
	}
	if popcount(g.Revealed) != g.RevealedCount {
		return mt.ErrGameRecordCorrupt
	}
	// lost 与 active 互斥, FINISHED 只在踩雷后出现
	switch {
	case g.Active && !g.Lost && g.State == mt.StateCommitted:
	case !g.Active && g.Lost && g.State == mt.StateFinished:
	default:
		return mt.ErrGameRecordCorrupt
	}
	if g.ExpiryAt < g.StartedAt {
		return mt.ErrGameRecordCorrupt
	}
	return nil
}

func popcount(bitmap []bool) int {
	n := 0
	for _, b := range bitmap {
		if b {
			n++
		}
	}
	return n
}

func packBits(bitmap []bool) []byte {
	out := make([]byte, (len(bitmap)+7)/8)
	for i, b := range bitmap {
		if b {
			out[i/8] |= 1 << uint(i%8)
		}
	}
	return out
}

func unpackBits(data []byte, n int) []bool {
	bitmap := make([]bool, n)
	for i := range bitmap {
		bitmap[i] = data[i/8]&(1<<uint(i%8)) != 0
	}
	return bitmap
}

// 打包位图中多余的位必须为 0
func paddingClean(data []byte, n int) bool {
	if n%8 == 0 {
		return true
	}
	return data[len(data)-1]>>uint(n%8) == 0
}
