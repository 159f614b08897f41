// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"errors"
	"fmt"
	"testing"

	dbm "github.com/33cn/mines/common/db"
	"github.com/33cn/mines/executor/drivers"
	"github.com/33cn/mines/types"
	pkgerr "github.com/pkg/errors"
	gometrics "github.com/rcrowley/go-metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	genesisAddr = "14KEKbYtKKQm4wMthSK9J4La4nAiidGozt"
	errBoom     = errors.New("ErrBoom")
)

const testCfg = `
title="local"
[store]
driver="memdb"
[[exec.genesis]]
addr="14KEKbYtKKQm4wMthSK9J4La4nAiidGozt"
amount=1000
`

type transferAction struct {
	To     string
	Amount int64
	Fail   bool
}

func (a *transferAction) MarshalAppend(b []byte) []byte {
	b = types.AppendString(b, 1, a.To)
	b = types.AppendInt64(b, 2, a.Amount)
	return types.AppendBool(b, 3, a.Fail)
}

func (a *transferAction) Unmarshal(data []byte) error {
	*a = transferAction{}
	return types.UnmarshalFields(data, func(f *types.Field) error {
		switch f.Num {
		case 1:
			a.To = f.String()
		case 2:
			a.Amount = f.Int64()
		case 3:
			a.Fail = f.Bool()
		}
		return nil
	})
}

type echo struct {
	drivers.DriverBase
}

func newEcho(cfg *types.Config) (drivers.Driver, error) {
	e := &echo{}
	e.SetChild(e)
	return e, nil
}

func (e *echo) GetName() string { return "echo" }

func (e *echo) GetActionName(tx *types.Transaction) string { return "transfer" }

func (e *echo) Exec(tx *types.Transaction, index int) (*types.Receipt, error) {
	var action transferAction
	if err := types.Decode(tx.Payload, &action); err != nil {
		return nil, err
	}
	receipt, err := e.GetCoinsAccount().Transfer(tx.From, action.To, action.Amount)
	if err != nil {
		return nil, err
	}
	if action.Fail {
		return nil, errBoom
	}
	return receipt, nil
}

func (e *echo) ExecLocal(tx *types.Transaction, receipt *types.ReceiptData, index int) (*types.LocalDBSet, error) {
	set, err := e.DriverBase.ExecLocal(tx, receipt, index)
	if err != nil {
		return nil, err
	}
	key := []byte(fmt.Sprintf("LODB-echo-%d", e.GetHeight()))
	set.KV = append(set.KV, &types.KeyValue{Key: key, Value: []byte(tx.From)})
	return set, nil
}

func (e *echo) Query(funcName string, params []byte) (interface{}, error) {
	if funcName == "Time" {
		return e.GetBlockTime(), nil
	}
	return e.DriverBase.Query(funcName, params)
}

func init() {
	drivers.Register("echo", newEcho)
}

func newTestExecutor(t *testing.T) (*Executor, dbm.DB, *types.FixedClock) {
	cfg, err := types.InitCfgString(testCfg)
	require.NoError(t, err)
	db, err := dbm.NewGoMemDB("test", "", 0)
	require.NoError(t, err)
	clock := types.NewFixedClock(1000)
	exec, err := New(cfg, db, clock, gometrics.NewRegistry())
	require.NoError(t, err)
	return exec, db, clock
}

func transferTx(to string, amount int64, fail bool) *types.Transaction {
	return types.CreateFormatTx("echo", genesisAddr, types.Encode(&transferAction{To: to, Amount: amount, Fail: fail}))
}

func TestGenesis(t *testing.T) {
	exec, db, _ := newTestExecutor(t)
	assert.Equal(t, int64(0), exec.Height())
	acc, err := exec.GetBalance(genesisAddr)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), acc.Balance)

	// 重新打开不会再次分配
	cfg, err := types.InitCfgString(testCfg)
	require.NoError(t, err)
	exec2, err := New(cfg, db, nil, nil)
	require.NoError(t, err)
	acc, err = exec2.GetBalance(genesisAddr)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), acc.Balance)
	assert.Equal(t, int64(0), exec2.Height())
}

func TestHeightSurvivesRestart(t *testing.T) {
	exec, db, _ := newTestExecutor(t)
	to := drivers.ExecAddress("someone")
	for i := 0; i < 3; i++ {
		_, err := exec.Exec(transferTx(to, 10, false))
		require.NoError(t, err)
	}
	cfg, err := types.InitCfgString(testCfg)
	require.NoError(t, err)
	exec2, err := New(cfg, db, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), exec2.Height())
	acc, err := exec2.GetBalance(to)
	require.NoError(t, err)
	assert.Equal(t, int64(30), acc.Balance)

	// 高度记录损坏
	require.NoError(t, db.Set(heightKey, []byte{0x08}))
	_, err = New(cfg, db, nil, nil)
	assert.Equal(t, types.ErrDecode, pkgerr.Cause(err))
}

func TestExecCommits(t *testing.T) {
	exec, db, _ := newTestExecutor(t)
	to := drivers.ExecAddress("someone")
	tx := transferTx(to, 100, false)
	result, err := exec.Exec(tx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Height)
	assert.Equal(t, int64(1000), result.Blocktime)
	assert.Equal(t, int32(types.ExecOk), result.Receipt.Ty)
	assert.Equal(t, int64(1), exec.Height())

	acc, err := exec.GetBalance(to)
	require.NoError(t, err)
	assert.Equal(t, int64(100), acc.Balance)

	v, err := db.Get([]byte("LODB-echo-1"))
	require.NoError(t, err)
	assert.Equal(t, genesisAddr, string(v))

	txr, err := exec.GetTxResult(result.Hash)
	require.NoError(t, err)
	assert.Equal(t, "transfer", txr.ActionName)
	assert.Equal(t, int64(1), txr.Height)

	infos, err := exec.GetTxsByAddr(&types.ReqTxsByAddr{Addr: genesisAddr, Count: 10, Height: -1})
	require.NoError(t, err)
	require.Len(t, infos.TxInfos, 1)
	assert.Equal(t, result.Hash, infos.TxInfos[0].Hash)

	assert.Equal(t, int64(1), gometrics.GetOrRegisterCounter("exec.echo.ok", exec.Registry()).Count())
}

func TestExecFailureWritesNothing(t *testing.T) {
	exec, db, _ := newTestExecutor(t)
	to := drivers.ExecAddress("someone")

	// 转账成功之后驱动返回错误, 转账也不能生效
	_, err := exec.Exec(transferTx(to, 100, true))
	assert.Equal(t, errBoom, err)
	_, err = exec.Exec(transferTx(to, 10000, false))
	assert.Equal(t, types.ErrNoBalance, err)
	assert.Equal(t, int64(0), exec.Height())

	acc, err := exec.GetBalance(genesisAddr)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), acc.Balance)
	_, err = db.Get([]byte("LODB-echo-1"))
	assert.Equal(t, dbm.ErrNotFoundInDb, err)

	assert.Equal(t, int64(2), gometrics.GetOrRegisterCounter("exec.echo.fail", exec.Registry()).Count())
	assert.Equal(t, int64(1), gometrics.GetOrRegisterCounter("exec.fail.PreconditionError", exec.Registry()).Count())
}

func TestExecRejectsMalformed(t *testing.T) {
	exec, _, _ := newTestExecutor(t)
	_, err := exec.Exec(&types.Transaction{Execer: "echo", From: "bad"})
	assert.Equal(t, types.ErrInvalidAddress, err)
	_, err = exec.Exec(&types.Transaction{})
	assert.Equal(t, types.ErrEmptyTx, err)
	_, err = exec.Exec(types.CreateFormatTx("nope", genesisAddr, nil))
	assert.Equal(t, types.ErrExecNotFound, err)
	_, err = exec.GetTxResult("0x01")
	assert.Equal(t, types.ErrInvalidParam, err)
}

func TestQueryUsesClockOfTx(t *testing.T) {
	exec, _, clock := newTestExecutor(t)
	clock.Set(5000)
	result, err := exec.Exec(transferTx(drivers.ExecAddress("someone"), 1, false))
	require.NoError(t, err)
	assert.Equal(t, int64(5000), result.Blocktime)

	_, err = exec.Query("echo", "Nope", nil)
	assert.Equal(t, types.ErrQueryNotSupport, err)
	_, err = exec.Query("nope", "Time", nil)
	assert.Equal(t, types.ErrExecNotFound, err)
}

func TestStateDB(t *testing.T) {
	db, err := dbm.NewGoMemDB("test", "", 0)
	require.NoError(t, err)
	require.NoError(t, db.Set([]byte("a"), []byte("1")))

	s := NewStateDB(db)
	v, err := s.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), v)

	s.Begin()
	require.NoError(t, s.Set([]byte("a"), nil))
	require.NoError(t, s.Set([]byte("b"), []byte("2")))
	assert.Equal(t, []string{"a", "b"}, s.GetSetKeys())
	_, err = s.Get([]byte("a"))
	assert.Equal(t, types.ErrNotFound, err)
	s.Rollback()

	v, err = s.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), v)
	_, err = s.Get([]byte("b"))
	assert.Equal(t, types.ErrNotFound, err)
	assert.Len(t, s.KVList(), 0)

	s.Begin()
	require.NoError(t, s.Set([]byte("a"), nil))
	require.NoError(t, s.Set([]byte("b"), []byte("2")))
	s.Commit()
	kvs := s.KVList()
	require.Len(t, kvs, 2)
	assert.Equal(t, []byte("a"), kvs[0].Key)
	assert.Nil(t, kvs[0].Value)
	assert.Equal(t, []byte("2"), kvs[1].Value)

	// 底层数据库不变
	v, err = db.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), v)
}
