// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package account

import (
	"math"
	"testing"

	"github.com/33cn/mines/common/db"
	"github.com/33cn/mines/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	addr1 = "14KEKbYtKKQm4wMthSK9J4La4nAiidGozt"
	addr2 = "1EbDHAXpoiewjPLX9uqoz38HsKqMXayZrF"
	addr3 = "1KcCVZLSQYRUwE5EXTsAoQs9LuJW6xwfQa"
)

func genAccDB(t *testing.T) *DB {
	mdb, err := db.NewGoMemDB("gomemdb", "test", 128)
	require.NoError(t, err)
	acc := NewCoinsAccount(mdb)
	for addr, balance := range map[string]int64{addr1: 1000 * types.Coin, addr2: 900 * types.Coin} {
		require.NoError(t, acc.SaveAccount(&types.Account{Addr: addr, Balance: balance}))
	}
	return acc
}

func balanceOf(t *testing.T, acc *DB, addr string) int64 {
	a, err := acc.LoadAccount(addr)
	require.NoError(t, err)
	return a.Balance
}

func TestNewAccountDB(t *testing.T) {
	_, err := NewAccountDB("co-ins", "bty", nil)
	assert.Equal(t, types.ErrExecNameNotAllow, err)
	_, err = NewAccountDB("coins", "b-ty", nil)
	assert.Equal(t, types.ErrInvalidParam, err)
	acc, err := NewAccountDB("coins", "bty", nil)
	require.NoError(t, err)
	assert.Equal(t, "mavl-coins-bty-"+addr1, string(acc.AccountKey(addr1)))
}

func TestLoadMissingAccount(t *testing.T) {
	acc := genAccDB(t)
	a, err := acc.LoadAccount(addr3)
	require.NoError(t, err)
	assert.Equal(t, addr3, a.Addr)
	assert.Equal(t, int64(0), a.Balance)
}

func TestCheckTransfer(t *testing.T) {
	acc := genAccDB(t)
	require.NoError(t, acc.CheckTransfer(addr1, addr2, 10*types.Coin))
	assert.Equal(t, types.ErrNoBalance, acc.CheckTransfer(addr3, addr2, 1))
	assert.Equal(t, types.ErrAmount, acc.CheckTransfer(addr1, addr2, 0))
}

func TestTransfer(t *testing.T) {
	acc := genAccDB(t)
	receipt, err := acc.Transfer(addr1, addr2, 10*types.Coin)
	require.NoError(t, err)
	assert.Equal(t, int32(types.ExecOk), receipt.Ty)
	assert.Len(t, receipt.KV, 2)
	assert.Len(t, receipt.Logs, 2)

	var r types.ReceiptAccountTransfer
	require.NoError(t, types.Decode(receipt.Logs[0].Log, &r))
	assert.Equal(t, 1000*types.Coin, r.Prev.Balance)
	assert.Equal(t, 990*types.Coin, r.Current.Balance)

	assert.Equal(t, 990*types.Coin, balanceOf(t, acc, addr1))
	assert.Equal(t, 910*types.Coin, balanceOf(t, acc, addr2))
}

func TestTransferFailuresLeaveBalances(t *testing.T) {
	acc := genAccDB(t)
	_, err := acc.Transfer(addr1, addr2, 1001*types.Coin)
	assert.Equal(t, types.ErrNoBalance, err)
	_, err = acc.Transfer(addr1, addr1, 1)
	assert.Equal(t, types.ErrSendSameToRecv, err)
	_, err = acc.Transfer(addr1, addr2, -1)
	assert.Equal(t, types.ErrAmount, err)

	// 接收方溢出
	require.NoError(t, acc.SaveAccount(&types.Account{Addr: addr3, Balance: math.MaxInt64 - 1}))
	_, err = acc.Transfer(addr1, addr3, 10)
	assert.Equal(t, types.ErrOverflow, err)

	assert.Equal(t, 1000*types.Coin, balanceOf(t, acc, addr1))
	assert.Equal(t, 900*types.Coin, balanceOf(t, acc, addr2))
	assert.Equal(t, int64(math.MaxInt64-1), balanceOf(t, acc, addr3))
}

func TestDepositAndRemove(t *testing.T) {
	acc := genAccDB(t)
	receipt, err := acc.Deposit(addr3, 5)
	require.NoError(t, err)
	assert.Equal(t, int32(types.TyLogDeposit), receipt.Logs[0].Ty)

	_, err = acc.Remove(addr3)
	assert.Equal(t, types.ErrInvalidParam, err)

	_, err = acc.Transfer(addr3, addr1, 5)
	require.NoError(t, err)
	receipt, err = acc.Remove(addr3)
	require.NoError(t, err)
	assert.Nil(t, receipt.KV[0].Value)
	assert.Equal(t, int32(types.TyLogRemove), receipt.Logs[0].Ty)

	_, err = acc.db.Get(acc.AccountKey(addr3))
	assert.Equal(t, db.ErrNotFoundInDb, err)
}

func TestGenesisInitAll(t *testing.T) {
	acc := genAccDB(t)
	receipt, err := acc.GenesisInitAll([]*types.GenesisAccount{{Addr: addr3, Amount: 7}, {Addr: addr3, Amount: 3}})
	require.NoError(t, err)
	assert.Len(t, receipt.Logs, 2)
	assert.Equal(t, int32(types.TyLogGenesis), receipt.Logs[0].Ty)
	assert.Equal(t, int64(10), balanceOf(t, acc, addr3))

	_, err = acc.GenesisInitAll([]*types.GenesisAccount{{Addr: addr3, Amount: 0}})
	assert.Equal(t, types.ErrAmount, err)
}
