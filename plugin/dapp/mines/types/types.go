// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"github.com/33cn/mines/types"
)

// MinesAction 交易负载, Ty 决定哪个字段有效
type MinesAction struct {
	Ty               int32                  `json:"ty"`
	Start            *MinesStart            `json:"start,omitempty"`
	Reveal           *MinesReveal           `json:"reveal,omitempty"`
	CashOut          *MinesCashOut          `json:"cashOut,omitempty"`
	Collect          *MinesCollectHouse     `json:"collect,omitempty"`
	Abort            *MinesAbortRefund      `json:"abort,omitempty"`
	SetMinePositions *MinesSetMinePositions `json:"setMinePositions,omitempty"`
}

// GetStart nil safe
func (m *MinesAction) GetStart() *MinesStart {
	if m != nil {
		return m.Start
	}
	return nil
}

// GetReveal nil safe
func (m *MinesAction) GetReveal() *MinesReveal {
	if m != nil {
		return m.Reveal
	}
	return nil
}

// GetCashOut nil safe
func (m *MinesAction) GetCashOut() *MinesCashOut {
	if m != nil {
		return m.CashOut
	}
	return nil
}

// GetCollect nil safe
func (m *MinesAction) GetCollect() *MinesCollectHouse {
	if m != nil {
		return m.Collect
	}
	return nil
}

// GetAbort nil safe
func (m *MinesAction) GetAbort() *MinesAbortRefund {
	if m != nil {
		return m.Abort
	}
	return nil
}

// GetSetMinePositions nil safe
func (m *MinesAction) GetSetMinePositions() *MinesSetMinePositions {
	if m != nil {
		return m.SetMinePositions
	}
	return nil
}

// ActionName action 名称, 用于交易索引
func ActionName(ty int32) string {
	switch ty {
	case MinesActionStart:
		return "start"
	case MinesActionReveal:
		return "reveal"
	case MinesActionCashOut:
		return "cashOut"
	case MinesActionCollectHouse:
		return "collectHouse"
	case MinesActionAbortRefund:
		return "abortRefund"
	case MinesActionSetMinePositions:
		return "setMinePositions"
	}
	return "unknown"
}

// MinesStart 开局, 玩家押注并提交庄家的承诺
type MinesStart struct {
	Amount     int64  `json:"amount"`
	NumMines   uint32 `json:"numMines"`
	Commitment []byte `json:"commitment"`
	House      string `json:"house"`
}

// MinesReveal 揭示一个格子
type MinesReveal struct {
	GameID    string   `json:"gameId"`
	TileIndex uint32   `json:"tileIndex"`
	IsMine    uint8    `json:"isMine"`
	Nonce     []byte   `json:"nonce"`
	Proof     [][]byte `json:"proof"`
	PathBits  uint32   `json:"pathBits"`
}

// MinesCashOut 玩家提现
type MinesCashOut struct {
	GameID string `json:"gameId"`
}

// MinesCollectHouse 玩家踩雷后庄家收取
type MinesCollectHouse struct {
	GameID string `json:"gameId"`
}

// MinesAbortRefund 超时退款
type MinesAbortRefund struct {
	GameID string `json:"gameId"`
}

// MinesSetMinePositions 已废弃
type MinesSetMinePositions struct {
	GameID    string   `json:"gameId"`
	Positions []uint32 `json:"positions"`
}

// GetGameID nil safe
func (m *MinesSetMinePositions) GetGameID() string {
	if m != nil {
		return m.GameID
	}
	return ""
}

// NewAction 构造交易负载
func NewAction(ty int32, payload interface{}) *MinesAction {
	action := &MinesAction{Ty: ty}
	switch v := payload.(type) {
	case *MinesStart:
		action.Start = v
	case *MinesReveal:
		action.Reveal = v
	case *MinesCashOut:
		action.CashOut = v
	case *MinesCollectHouse:
		action.Collect = v
	case *MinesAbortRefund:
		action.Abort = v
	case *MinesSetMinePositions:
		action.SetMinePositions = v
	}
	return action
}

// CreateTx 构造 mines 交易
func CreateTx(from string, ty int32, payload interface{}) *types.Transaction {
	return types.CreateFormatTx(MinesX, from, types.Encode(NewAction(ty, payload)))
}

// ReceiptMines 每个 action 的回执日志, ExecLocal 据此维护索引
type ReceiptMines struct {
	GameID        string `json:"gameId"`
	Player        string `json:"player"`
	House         string `json:"house"`
	Stake         int64  `json:"stake"`
	Status        int32  `json:"status"`
	PrevStatus    int32  `json:"prevStatus"`
	Index         int64  `json:"index"`
	PrevIndex     int64  `json:"prevIndex"`
	TileIndex     uint32 `json:"tileIndex,omitempty"`
	IsMine        bool   `json:"isMine,omitempty"`
	RevealedCount uint32 `json:"revealedCount"`
	// Addr 资金去向
	Addr string `json:"addr,omitempty"`
}

// GameSummary 本地索引中保存的游戏摘要
type GameSummary struct {
	GameID    string `json:"gameId"`
	Player    string `json:"player"`
	House     string `json:"house"`
	Stake     int64  `json:"stake"`
	Status    int32  `json:"status"`
	Index     int64  `json:"index"`
	Revealed  uint32 `json:"revealed"`
	UpdatedAt int64  `json:"updatedAt"`
}

// ReqGameID 按游戏id查询
type ReqGameID struct {
	GameID string `json:"gameId"`
}

// GameView 游戏的查询视图
type GameView struct {
	GameID        string   `json:"gameId"`
	Player        string   `json:"player"`
	House         string   `json:"house"`
	Stake         int64    `json:"stake"`
	BoardSize     uint32   `json:"boardSize"`
	MineCount     uint32   `json:"mineCount"`
	Commitment    string   `json:"commitment"`
	Revealed      []uint32 `json:"revealed"`
	RevealedCount uint32   `json:"revealedCount"`
	Active        bool     `json:"active"`
	Lost          bool     `json:"lost"`
	State         string   `json:"state"`
	StartedAt     int64    `json:"startedAt"`
	ExpiryAt      int64    `json:"expiryAt"`
	Vault         string   `json:"vault"`
}

// VaultView 托管账户
type VaultView struct {
	GameID  string `json:"gameId"`
	Addr    string `json:"addr"`
	Bump    uint8  `json:"bump"`
	Balance int64  `json:"balance"`
	// Ledger 账本中托管地址的实际余额
	Ledger int64 `json:"ledger"`
}

// ReqListGames 翻页查询, Index 为上一页最后一条的索引, 0 表示从头开始
type ReqListGames struct {
	Addr      string `json:"addr,omitempty"`
	Status    int32  `json:"status"`
	Count     int32  `json:"count"`
	Direction int32  `json:"direction"`
	Index     int64  `json:"index"`
}

// ReplyGameList 游戏摘要列表
type ReplyGameList struct {
	Games []*GameSummary `json:"games"`
}

// ReqGameCount 统计某个状态的游戏数, Addr 为空时统计全部
type ReqGameCount struct {
	Addr   string `json:"addr,omitempty"`
	Status int32  `json:"status"`
}
