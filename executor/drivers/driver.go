// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package drivers 执行器驱动的公共部分: Driver接口, DriverBase, 注册表
package drivers

import (
	"sync"

	"github.com/33cn/mines/account"
	"github.com/33cn/mines/common"
	dbm "github.com/33cn/mines/common/db"
	"github.com/33cn/mines/types"
	log "github.com/inconshreveable/log15"
)

var blog = log.New("module", "execs.base")

// Driver 执行器驱动
type Driver interface {
	SetStateDB(dbm.KV)
	SetLocalDB(dbm.KV)
	SetQueryDB(dbm.DB)
	GetName() string
	GetActionName(tx *types.Transaction) string
	SetEnv(height, blocktime int64)
	CheckTx(tx *types.Transaction, index int) error
	Exec(tx *types.Transaction, index int) (*types.Receipt, error)
	ExecLocal(tx *types.Transaction, receipt *types.ReceiptData, index int) (*types.LocalDBSet, error)
	Query(funcName string, params []byte) (interface{}, error)
}

// DriverBase 驱动的公共实现, 具体驱动嵌入它并通过SetChild注册自己
type DriverBase struct {
	statedb   dbm.KV
	localdb   dbm.KV
	querydb   dbm.DB
	height    int64
	blocktime int64
	mu        sync.Mutex
	child     Driver
}

// SetEnv 当前交易的高度与时间, 每笔交易只读一次时钟
func (n *DriverBase) SetEnv(height, blocktime int64) {
	n.height = height
	n.blocktime = blocktime
}

// SetChild 设置具体驱动
func (n *DriverBase) SetChild(e Driver) {
	n.child = e
}

// GetAddr 执行器地址
func (n *DriverBase) GetAddr() string {
	return ExecAddress(n.child.GetName())
}

// ExecLocal 保存交易结果以及发起地址的交易索引
func (n *DriverBase) ExecLocal(tx *types.Transaction, receipt *types.ReceiptData, index int) (*types.LocalDBSet, error) {
	var set types.LocalDBSet
	hash, result := n.GetTx(tx, receipt, index)
	set.KV = append(set.KV, &types.KeyValue{Key: CalcTxKey(hash), Value: types.Encode(result)})

	txinfo := &types.ReplyTxInfo{
		Hash:       common.ToHex(hash),
		Height:     n.GetHeight(),
		Index:      int64(index),
		ActionName: result.ActionName,
	}
	heightstr := HeightIndexStr(n.GetHeight(), int64(index))
	set.KV = append(set.KV, &types.KeyValue{Key: CalcTxAddrHashKey(tx.From, heightstr), Value: types.Encode(txinfo)})
	return &set, nil
}

// GetTx 构造txresult信息
func (n *DriverBase) GetTx(tx *types.Transaction, receipt *types.ReceiptData, index int) ([]byte, *types.TxResult) {
	txhash := tx.Hash()
	var txresult types.TxResult
	txresult.Height = n.GetHeight()
	txresult.Index = int32(index)
	txresult.Tx = tx
	txresult.Receipt = receipt
	txresult.Blocktime = n.GetBlockTime()
	txresult.ActionName = n.child.GetActionName(tx)
	return txhash, &txresult
}

// CheckTx 默认不检查
func (n *DriverBase) CheckTx(tx *types.Transaction, index int) error {
	return nil
}

// Query 默认不支持
func (n *DriverBase) Query(funcname string, params []byte) (interface{}, error) {
	return nil, types.ErrQueryNotSupport
}

// SetStateDB 当前交易的状态数据库
func (n *DriverBase) SetStateDB(db dbm.KV) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.statedb = db
}

// GetStateDB get
func (n *DriverBase) GetStateDB() dbm.KV {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.statedb
}

// SetLocalDB 当前交易的本地数据库
func (n *DriverBase) SetLocalDB(db dbm.KV) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.localdb = db
}

// GetLocalDB get
func (n *DriverBase) GetLocalDB() dbm.KV {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.localdb
}

// SetQueryDB 查询使用已经提交的数据
func (n *DriverBase) SetQueryDB(db dbm.DB) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.querydb = db
}

// GetQueryDB get
func (n *DriverBase) GetQueryDB() dbm.DB {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.querydb
}

// GetCoinsAccount 绑定在当前状态数据库上的账户
func (n *DriverBase) GetCoinsAccount() *account.DB {
	return account.NewCoinsAccount(n.GetStateDB())
}

// GetHeight 高度
func (n *DriverBase) GetHeight() int64 {
	return n.height
}

// GetBlockTime 交易时间(秒)
func (n *DriverBase) GetBlockTime() int64 {
	return n.blocktime
}

// GetTxsByAddr 通过addr前缀查找本地址发起的交易
func (n *DriverBase) GetTxsByAddr(req *types.ReqTxsByAddr) (*types.ReplyTxInfos, error) {
	db := n.GetQueryDB()
	if db == nil {
		return nil, types.ErrNotFound
	}
	count := req.Count
	if count <= 0 || count > MaxQueryCount {
		count = MaxQueryCount
	}
	prefix := CalcTxAddrHashKey(req.Addr, "")
	var key []byte
	if req.Height != -1 {
		key = CalcTxAddrHashKey(req.Addr, HeightIndexStr(req.Height, req.Index))
	}
	txinfos := dbm.NewListHelper(db).List(prefix, key, count, req.Direction)
	if len(txinfos) == 0 {
		return nil, types.ErrNotFound
	}
	var reply types.ReplyTxInfos
	reply.TxInfos = make([]*types.ReplyTxInfo, len(txinfos))
	for i, txinfobyte := range txinfos {
		var info types.ReplyTxInfo
		if err := types.Decode(txinfobyte, &info); err != nil {
			blog.Error("GetTxsByAddr Decode", "err", err)
			return nil, err
		}
		reply.TxInfos[i] = &info
	}
	return &reply, nil
}
