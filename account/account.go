// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package account 原生资产的账户操作

	1. load from db
	2. save to db
	3. KVSet
	4. Transfer, 唯一的资金移动原语
	5. Deposit / Genesis
	6. Remove, 清理已经清空的托管账户
*/
package account

import (
	"fmt"
	"strings"

	dbm "github.com/33cn/mines/common/db"
	"github.com/33cn/mines/types"
	log "github.com/inconshreveable/log15"
	"github.com/pkg/errors"
)

var alog = log.New("module", "account")

// DB for account
type DB struct {
	db               dbm.KV
	accountKeyPerfix []byte
	execer           string
	symbol           string
}

// NewCoinsAccount 原生币账户
func NewCoinsAccount(db dbm.KV) *DB {
	acc, err := NewAccountDB(types.CoinsX, types.CoinsSymbol, db)
	if err != nil {
		panic(err)
	}
	return acc
}

// NewAccountDB execer 和 symbol 中不能包含 "-"
func NewAccountDB(execer string, symbol string, db dbm.KV) (*DB, error) {
	if execer == "" || strings.ContainsRune(execer, '-') {
		return nil, types.ErrExecNameNotAllow
	}
	if symbol == "" || strings.ContainsRune(symbol, '-') {
		return nil, types.ErrInvalidParam
	}
	return &DB{
		db:               db,
		accountKeyPerfix: []byte(SymbolPrefix(execer, symbol)),
		execer:           execer,
		symbol:           symbol,
	}, nil
}

// SetDB 切换底层kv, 执行器每笔交易传入自己的StateDB
func (acc *DB) SetDB(db dbm.KV) *DB {
	acc.db = db
	return acc
}

// LoadAccount 不存在的账户返回空账户
func (acc *DB) LoadAccount(addr string) (*types.Account, error) {
	value, err := acc.db.Get(acc.AccountKey(addr))
	if isNotFound(err) {
		return &types.Account{Addr: addr}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "LoadAccount %s", addr)
	}
	var acc1 types.Account
	if err = types.Decode(value, &acc1); err != nil {
		return nil, err
	}
	return &acc1, nil
}

// LoadAccounts 批量读取
func (acc *DB) LoadAccounts(addrs []string) (accs []*types.Account, err error) {
	for _, addr := range addrs {
		acc1, err := acc.LoadAccount(addr)
		if err != nil {
			return nil, err
		}
		accs = append(accs, acc1)
	}
	return accs, nil
}

// CheckTransfer 只做检查不修改
func (acc *DB) CheckTransfer(from, to string, amount int64) error {
	if !types.CheckAmount(amount) {
		return types.ErrAmount
	}
	accFrom, err := acc.LoadAccount(from)
	if err != nil {
		return err
	}
	if accFrom.GetBalance() < amount {
		return types.ErrNoBalance
	}
	return nil
}

// Transfer 把amount从from移到to, 失败时两边余额都不变
func (acc *DB) Transfer(from, to string, amount int64) (*types.Receipt, error) {
	if !types.CheckAmount(amount) {
		return nil, types.ErrAmount
	}
	if from == to {
		return nil, types.ErrSendSameToRecv
	}
	accFrom, err := acc.LoadAccount(from)
	if err != nil {
		return nil, err
	}
	accTo, err := acc.LoadAccount(to)
	if err != nil {
		return nil, err
	}
	if accFrom.GetBalance() < amount {
		alog.Debug("Transfer", "from", from, "balance", accFrom.GetBalance(), "amount", amount)
		return nil, types.ErrNoBalance
	}
	toBalance, err := types.SafeAdd(accTo.GetBalance(), amount)
	if err != nil {
		return nil, err
	}
	copyfrom := *accFrom
	copyto := *accTo

	accFrom.Balance -= amount
	accTo.Balance = toBalance

	receiptBalanceFrom := &types.ReceiptAccountTransfer{
		Prev:    &copyfrom,
		Current: accFrom,
	}
	receiptBalanceTo := &types.ReceiptAccountTransfer{
		Prev:    &copyto,
		Current: accTo,
	}
	if err = acc.SaveAccount(accFrom); err != nil {
		return nil, err
	}
	if err = acc.SaveAccount(accTo); err != nil {
		return nil, err
	}
	return acc.transferReceipt(accFrom, accTo, receiptBalanceFrom, receiptBalanceTo), nil
}

// Deposit 直接增加余额, 只用于创世和测试
func (acc *DB) Deposit(addr string, amount int64) (*types.Receipt, error) {
	return acc.depositBalance(addr, amount, types.TyLogDeposit)
}

func (acc *DB) depositBalance(addr string, amount int64, ty int32) (*types.Receipt, error) {
	if !types.CheckAmount(amount) {
		return nil, types.ErrAmount
	}
	acc1, err := acc.LoadAccount(addr)
	if err != nil {
		return nil, err
	}
	copyacc := *acc1
	acc1.Balance, err = types.SafeAdd(acc1.GetBalance(), amount)
	if err != nil {
		return nil, err
	}
	receiptBalance := &types.ReceiptAccountTransfer{
		Prev:    &copyacc,
		Current: acc1,
	}
	if err = acc.SaveAccount(acc1); err != nil {
		return nil, err
	}
	log1 := &types.ReceiptLog{
		Ty:  ty,
		Log: types.Encode(receiptBalance),
	}
	return &types.Receipt{
		Ty:   types.ExecOk,
		KV:   acc.GetKVSet(acc1),
		Logs: []*types.ReceiptLog{log1},
	}, nil
}

// Remove 删除余额为0的账户
func (acc *DB) Remove(addr string) (*types.Receipt, error) {
	acc1, err := acc.LoadAccount(addr)
	if err != nil {
		return nil, err
	}
	if acc1.GetBalance() != 0 || acc1.GetFrozen() != 0 {
		alog.Error("Remove", "addr", addr, "balance", acc1.GetBalance(), "frozen", acc1.GetFrozen())
		return nil, types.ErrInvalidParam
	}
	kv := &types.KeyValue{Key: acc.AccountKey(addr), Value: nil}
	if err = acc.db.Set(kv.Key, kv.Value); err != nil {
		return nil, err
	}
	log1 := &types.ReceiptLog{
		Ty:  types.TyLogRemove,
		Log: types.Encode(&types.ReqAddr{Addr: addr}),
	}
	return &types.Receipt{
		Ty:   types.ExecOk,
		KV:   []*types.KeyValue{kv},
		Logs: []*types.ReceiptLog{log1},
	}, nil
}

func (acc *DB) transferReceipt(accFrom, accTo *types.Account, receiptFrom, receiptTo *types.ReceiptAccountTransfer) *types.Receipt {
	log1 := &types.ReceiptLog{
		Ty:  types.TyLogTransfer,
		Log: types.Encode(receiptFrom),
	}
	log2 := &types.ReceiptLog{
		Ty:  types.TyLogTransfer,
		Log: types.Encode(receiptTo),
	}
	kv := acc.GetKVSet(accFrom)
	kv = append(kv, acc.GetKVSet(accTo)...)
	return &types.Receipt{
		Ty:   types.ExecOk,
		KV:   kv,
		Logs: []*types.ReceiptLog{log1, log2},
	}
}

// SaveAccount 保存账户
func (acc *DB) SaveAccount(acc1 *types.Account) error {
	set := acc.GetKVSet(acc1)
	for i := 0; i < len(set); i++ {
		if err := acc.db.Set(set[i].GetKey(), set[i].Value); err != nil {
			return err
		}
	}
	return nil
}

// GetKVSet 账户的状态变化
func (acc *DB) GetKVSet(acc1 *types.Account) (kvset []*types.KeyValue) {
	value := types.Encode(acc1)
	kvset = append(kvset, &types.KeyValue{
		Key:   acc.AccountKey(acc1.Addr),
		Value: value,
	})
	return kvset
}

// AccountKey return the key of address in DB
func (acc *DB) AccountKey(address string) (key []byte) {
	key = append(key, acc.accountKeyPerfix...)
	key = append(key, []byte(address)...)
	return key
}

// SymbolPrefix mavl-<execer>-<symbol>-
func SymbolPrefix(execer string, symbol string) string {
	return fmt.Sprintf("%s%s-%s-", types.StatePrefix, execer, symbol)
}

func isNotFound(err error) bool {
	cause := errors.Cause(err)
	return cause == dbm.ErrNotFoundInDb || cause == types.ErrNotFound
}
