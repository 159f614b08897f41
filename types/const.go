// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

// coin conversation
const (
	Coin    int64 = 1e8
	MaxCoin int64 = 1e17
	// MaxTxSize 单笔交易的最大字节数
	MaxTxSize = 100000
	// MaxTxsPerHeight 本地索引中 height*MaxTxsPerHeight+index 保证有序
	MaxTxsPerHeight int64 = 100000
)

// key prefixes
const (
	// StatePrefix 状态数据库前缀，状态数据由交易执行产生
	StatePrefix = "mavl-"
	// LocalPrefix 本地索引前缀，由 ExecLocal 产生，可以重建
	LocalPrefix = "LODB-"
	// ConfigPrefix 执行器运行参数
	ConfigPrefix = "mavl-config-"
)

// receipt ty
const (
	ExecErr  = 0
	ExecPack = 1
	ExecOk   = 2
)

// log ty of the account ledger, dapp log ids start from 100
const (
	TyLogErr      = 1
	TyLogFee      = 2
	TyLogTransfer = 3
	TyLogGenesis  = 4
	TyLogDeposit  = 5
	TyLogRemove   = 6
)

// native asset
const (
	CoinsX      = "coins"
	CoinsSymbol = "bty"
)

// list direction
const (
	ListDESC = int32(0)
	ListASC  = int32(1)
)

// CheckAmount amount must be positive and below MaxCoin
func CheckAmount(amount int64) bool {
	if amount <= 0 || amount >= MaxCoin {
		return false
	}
	return true
}
