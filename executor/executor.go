// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package executor 按顺序执行交易, 每笔交易的状态变化, 本地索引以及高度在一个batch中原子写入
package executor

import (
	"sync"
	"time"

	"github.com/33cn/mines/account"
	"github.com/33cn/mines/common"
	dbm "github.com/33cn/mines/common/db"
	"github.com/33cn/mines/executor/drivers"
	"github.com/33cn/mines/types"
	"github.com/golang/protobuf/proto"
	log "github.com/inconshreveable/log15"
	"github.com/pkg/errors"
	gometrics "github.com/rcrowley/go-metrics"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

var elog = log.New("module", "execs")

var heightKey = []byte(types.LocalPrefix + "exec-height")

// DisableLog 关闭执行器日志
func DisableLog() {
	elog.SetHandler(log.DiscardHandler())
}

// Executor 单写多读, 同一时刻只有一笔交易在执行
type Executor struct {
	mu       sync.RWMutex
	cfg      *types.Config
	db       dbm.DB
	clock    types.Clock
	drivers  map[string]drivers.Driver
	height   int64
	registry gometrics.Registry
}

// New 加载全部已注册的驱动, 第一次启动时写入创世分配
func New(cfg *types.Config, db dbm.DB, clock types.Clock, registry gometrics.Registry) (*Executor, error) {
	if clock == nil {
		clock = types.SystemClock()
	}
	if registry == nil {
		registry = gometrics.NewRegistry()
	}
	exec := &Executor{
		cfg:      cfg,
		db:       db,
		clock:    clock,
		drivers:  make(map[string]drivers.Driver),
		registry: registry,
	}
	for _, name := range drivers.RegisteredDrivers() {
		driver, err := drivers.LoadDriver(name, cfg)
		if err != nil {
			elog.Error("New LoadDriver", "driver", name, "err", err)
			return nil, errors.Wrapf(err, "load driver %s", name)
		}
		driver.SetQueryDB(db)
		exec.drivers[name] = driver
	}
	height, err := exec.loadHeight()
	if errors.Cause(err) == types.ErrNotFound {
		if err = exec.genesis(); err != nil {
			return nil, err
		}
		return exec, nil
	}
	if err != nil {
		return nil, err
	}
	exec.height = height
	elog.Info("New executor", "height", height, "drivers", len(exec.drivers))
	return exec, nil
}

func (exec *Executor) loadHeight() (int64, error) {
	value, err := getFromDB(exec.db, heightKey)
	if err != nil {
		return 0, err
	}
	var height wrapperspb.Int64Value
	if err = proto.Unmarshal(value, &height); err != nil {
		return 0, errors.Wrap(types.ErrDecode, err.Error())
	}
	if height.GetValue() < 0 {
		return 0, errors.Wrap(types.ErrDecode, "height")
	}
	return height.GetValue(), nil
}

// 高度为 0 时编码结果为空, 但不是 nil, 不会被当成删除
func encodeHeight(height int64) []byte {
	b, err := proto.Marshal(wrapperspb.Int64(height))
	if err != nil {
		panic(err)
	}
	if b == nil {
		b = []byte{}
	}
	return b
}

// genesis 高度0, 只执行一次
func (exec *Executor) genesis() error {
	exec.mu.Lock()
	defer exec.mu.Unlock()
	state := NewStateDB(exec.db)
	acc := account.NewCoinsAccount(state)
	if _, err := acc.GenesisInitAll(exec.cfg.Exec.Genesis); err != nil {
		return err
	}
	batch := exec.db.NewBatch(true)
	for _, kv := range state.KVList() {
		batch.Set(kv.Key, kv.Value)
	}
	batch.Set(heightKey, encodeHeight(0))
	if err := batch.Write(); err != nil {
		return err
	}
	exec.height = 0
	elog.Info("genesis", "accounts", len(exec.cfg.Exec.Genesis))
	return nil
}

// Height 已经执行的交易数
func (exec *Executor) Height() int64 {
	exec.mu.RLock()
	defer exec.mu.RUnlock()
	return exec.height
}

// Exec 执行一笔交易. 返回错误时没有任何数据写入.
func (exec *Executor) Exec(tx *types.Transaction) (*types.ExecResult, error) {
	if err := tx.Check(); err != nil {
		return nil, err
	}
	exec.mu.Lock()
	defer exec.mu.Unlock()

	driver, ok := exec.drivers[tx.Execer]
	if !ok {
		return nil, types.ErrExecNotFound
	}
	start := time.Now()
	height := exec.height + 1
	// 时钟每笔交易只读一次
	blocktime := exec.clock.Now().Unix()

	state := NewStateDB(exec.db)
	local := NewLocalDB(exec.db)
	driver.SetStateDB(state)
	driver.SetLocalDB(local)
	driver.SetEnv(height, blocktime)
	defer func() {
		driver.SetStateDB(nil)
		driver.SetLocalDB(nil)
	}()

	receipt, err := exec.execTx(driver, state, tx)
	if err != nil {
		exec.markFailed(tx.Execer, err)
		return nil, err
	}
	set, err := driver.ExecLocal(tx, receipt.Data(), 0)
	if err != nil {
		elog.Error("ExecLocal", "execer", tx.Execer, "err", err)
		exec.markFailed(tx.Execer, err)
		return nil, err
	}

	batch := exec.db.NewBatch(true)
	for _, kv := range state.KVList() {
		batch.Set(kv.Key, kv.Value)
	}
	for _, kv := range local.KVList() {
		batch.Set(kv.Key, kv.Value)
	}
	for _, kv := range set.KV {
		batch.Set(kv.Key, kv.Value)
	}
	batch.Set(heightKey, encodeHeight(height))
	if err = batch.Write(); err != nil {
		elog.Error("Exec batch.Write", "height", height, "err", err)
		exec.markFailed(tx.Execer, err)
		return nil, err
	}
	exec.height = height

	gometrics.GetOrRegisterCounter("exec."+tx.Execer+".ok", exec.registry).Inc(1)
	gometrics.GetOrRegisterTimer("exec."+tx.Execer+".time", exec.registry).UpdateSince(start)
	elog.Debug("Exec", "execer", tx.Execer, "height", height, "cost", time.Since(start))
	return &types.ExecResult{
		Hash:      common.ToHex(tx.Hash()),
		Height:    height,
		Blocktime: blocktime,
		Receipt:   receipt.Data(),
	}, nil
}

func (exec *Executor) execTx(driver drivers.Driver, state *StateDB, tx *types.Transaction) (*types.Receipt, error) {
	if err := driver.CheckTx(tx, 0); err != nil {
		return nil, err
	}
	state.Begin()
	receipt, err := driver.Exec(tx, 0)
	if err != nil {
		state.Rollback()
		return nil, err
	}
	if receipt == nil {
		state.Rollback()
		return nil, types.ErrActionNotSupport
	}
	state.Commit()
	return receipt, nil
}

func (exec *Executor) markFailed(execer string, err error) {
	gometrics.GetOrRegisterCounter("exec."+execer+".fail", exec.registry).Inc(1)
	gometrics.GetOrRegisterCounter("exec.fail."+types.KindOf(err).String(), exec.registry).Inc(1)
}

// Query 查询已经提交的数据, 可以与其它查询并发
func (exec *Executor) Query(driverName string, funcName string, params []byte) (interface{}, error) {
	exec.mu.RLock()
	defer exec.mu.RUnlock()
	driver, ok := exec.drivers[driverName]
	if !ok {
		return nil, types.ErrExecNotFound
	}
	return driver.Query(funcName, params)
}

// GetBalance 原生币余额
func (exec *Executor) GetBalance(addr string) (*types.Account, error) {
	exec.mu.RLock()
	defer exec.mu.RUnlock()
	return account.NewCoinsAccount(exec.db).LoadAccount(addr)
}

// GetTxResult 按hash查询交易结果
func (exec *Executor) GetTxResult(hash string) (*types.TxResult, error) {
	h, err := common.FromHex(hash)
	if err != nil || len(h) != 32 {
		return nil, types.ErrInvalidParam
	}
	exec.mu.RLock()
	defer exec.mu.RUnlock()
	value, err := getFromDB(exec.db, drivers.CalcTxKey(h))
	if err != nil {
		return nil, err
	}
	var result types.TxResult
	if err = types.Decode(value, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetTxsByAddr 地址发起的交易
func (exec *Executor) GetTxsByAddr(req *types.ReqTxsByAddr) (*types.ReplyTxInfos, error) {
	exec.mu.RLock()
	defer exec.mu.RUnlock()
	base := &drivers.DriverBase{}
	base.SetQueryDB(exec.db)
	return base.GetTxsByAddr(req)
}

// Registry 统计数据
func (exec *Executor) Registry() gometrics.Registry {
	return exec.registry
}
