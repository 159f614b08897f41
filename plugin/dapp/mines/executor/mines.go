// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package executor mines 执行器: 游戏记录与托管账户, 状态机, 本地索引与查询
package executor

import (
	"github.com/33cn/mines/common/merkle"
	"github.com/33cn/mines/executor/drivers"
	mt "github.com/33cn/mines/plugin/dapp/mines/types"
	"github.com/33cn/mines/types"
	log "github.com/inconshreveable/log15"
)

var mlog = log.New("module", "execs.mines")

// Init 注册驱动
func Init() {
	drivers.Register(GetName(), newMines)
}

// GetName 驱动名
func GetName() string {
	return mt.MinesX
}

// Mines 执行器
type Mines struct {
	drivers.DriverBase
	family *mt.Family
	hasher *merkle.Hasher
}

func newMines(cfg *types.Config) (drivers.Driver, error) {
	family, err := mt.LoadFamily(cfg)
	if err != nil {
		mlog.Error("newMines", "err", err)
		return nil, err
	}
	m := &Mines{family: family, hasher: family.Hasher()}
	m.SetChild(m)
	mlog.Info("newMines", "boardSize", family.BoardSize, "depth", family.Depth(),
		"maxMines", family.MaxMines, "expiry", family.ExpirySeconds, "hash", family.HashType)
	return m, nil
}

// GetName 驱动名
func (m *Mines) GetName() string {
	return mt.MinesX
}

// Family 当前部署的游戏参数
func (m *Mines) Family() *mt.Family {
	return m.family
}

// GetActionName action 名
func (m *Mines) GetActionName(tx *types.Transaction) string {
	var action mt.MinesAction
	if err := types.Decode(tx.Payload, &action); err != nil {
		return "unknown"
	}
	return mt.ActionName(action.Ty)
}

// Exec 执行一笔交易
func (m *Mines) Exec(tx *types.Transaction, index int) (*types.Receipt, error) {
	var action mt.MinesAction
	err := types.Decode(tx.Payload, &action)
	if err != nil {
		return nil, err
	}
	mlog.Debug("exec mines tx", "ty", action.Ty, "from", tx.From)
	actiondb := NewAction(m, tx, index)
	switch {
	case action.Ty == mt.MinesActionStart && action.GetStart() != nil:
		return actiondb.MinesStart(action.GetStart())
	case action.Ty == mt.MinesActionReveal && action.GetReveal() != nil:
		return actiondb.MinesReveal(action.GetReveal())
	case action.Ty == mt.MinesActionCashOut && action.GetCashOut() != nil:
		return actiondb.MinesCashOut(action.GetCashOut())
	case action.Ty == mt.MinesActionCollectHouse && action.GetCollect() != nil:
		return actiondb.MinesCollectHouse(action.GetCollect())
	case action.Ty == mt.MinesActionAbortRefund && action.GetAbort() != nil:
		return actiondb.MinesAbortRefund(action.GetAbort())
	case action.Ty == mt.MinesActionSetMinePositions:
		// 无论负载如何都拒绝
		return actiondb.MinesSetMinePositions(action.GetSetMinePositions())
	}
	return nil, types.ErrActionNotSupport
}

// ExecLocal 维护状态索引与地址索引
func (m *Mines) ExecLocal(tx *types.Transaction, receipt *types.ReceiptData, index int) (*types.LocalDBSet, error) {
	set, err := m.DriverBase.ExecLocal(tx, receipt, index)
	if err != nil {
		return nil, err
	}
	if receipt.GetTy() != types.ExecOk {
		return set, nil
	}
	for _, item := range receipt.Logs {
		if item.Ty < mt.TyLogMinesStart || item.Ty > mt.TyLogMinesRefund {
			continue
		}
		var r mt.ReceiptMines
		if err := types.Decode(item.Log, &r); err != nil {
			panic(err) //数据错误了，已经被修改了
		}
		set.KV = append(set.KV, m.updateIndex(&r)...)
	}
	return set, nil
}

//更新索引, 先删除旧状态的索引, 再写入新状态
func (m *Mines) updateIndex(r *mt.ReceiptMines) (kvs []*types.KeyValue) {
	if r.PrevStatus != 0 {
		kvs = append(kvs, &types.KeyValue{Key: calcMinesStatusKey(r.PrevStatus, r.PrevIndex)})
		kvs = append(kvs, &types.KeyValue{Key: calcMinesAddrKey(r.PrevStatus, r.Player, r.PrevIndex)})
		kvs = append(kvs, &types.KeyValue{Key: calcMinesAddrKey(r.PrevStatus, r.House, r.PrevIndex)})
	}
	summary := types.Encode(&mt.GameSummary{
		GameID:    r.GameID,
		Player:    r.Player,
		House:     r.House,
		Stake:     r.Stake,
		Status:    r.Status,
		Index:     r.Index,
		Revealed:  r.RevealedCount,
		UpdatedAt: m.GetBlockTime(),
	})
	kvs = append(kvs, &types.KeyValue{Key: calcMinesStatusKey(r.Status, r.Index), Value: summary})
	kvs = append(kvs, &types.KeyValue{Key: calcMinesAddrKey(r.Status, r.Player, r.Index), Value: summary})
	kvs = append(kvs, &types.KeyValue{Key: calcMinesAddrKey(r.Status, r.House, r.Index), Value: summary})
	return kvs
}

// Query 查询已提交的数据
func (m *Mines) Query(funcName string, params []byte) (interface{}, error) {
	switch funcName {
	case mt.FuncNameGetGame:
		var req mt.ReqGameID
		if err := types.Decode(params, &req); err != nil {
			return nil, err
		}
		return m.queryGame(&req)
	case mt.FuncNameGetVault:
		var req mt.ReqGameID
		if err := types.Decode(params, &req); err != nil {
			return nil, err
		}
		return m.queryVault(&req)
	case mt.FuncNameListGamesByAddr:
		var req mt.ReqListGames
		if err := types.Decode(params, &req); err != nil {
			return nil, err
		}
		if req.Addr == "" {
			return nil, types.ErrInvalidAddress
		}
		return m.listGames(&req)
	case mt.FuncNameListGamesByStatus:
		var req mt.ReqListGames
		if err := types.Decode(params, &req); err != nil {
			return nil, err
		}
		req.Addr = ""
		return m.listGames(&req)
	case mt.FuncNameGameCount:
		var req mt.ReqGameCount
		if err := types.Decode(params, &req); err != nil {
			return nil, err
		}
		return m.gameCount(&req)
	case mt.FuncNameGetFamily:
		return m.family, nil
	}
	return m.DriverBase.Query(funcName, params)
}
