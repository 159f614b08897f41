// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

// MinesX 执行器名
const MinesX = "mines"

// JRPCName json rpc 服务名
const JRPCName = "Mines"

// mines action ty
const (
	MinesActionStart = iota + 1
	MinesActionReveal
	MinesActionCashOut
	MinesActionCollectHouse
	MinesActionAbortRefund
	// MinesActionSetMinePositions 旧版本一次性公开棋盘的接口, 永远失败
	MinesActionSetMinePositions
)

// log ty, 从 100 开始
const (
	TyLogMinesStart   = 101
	TyLogMinesReveal  = 102
	TyLogMinesLost    = 103
	TyLogMinesCashOut = 104
	TyLogMinesCollect = 105
	TyLogMinesRefund  = 106
)

// GameState 持久化的游戏状态, 只能从 COMMITTED 变为 FINISHED
type GameState uint8

// game state
const (
	StateCommitted GameState = 1
	StateFinished  GameState = 2
)

func (s GameState) String() string {
	switch s {
	case StateCommitted:
		return "COMMITTED"
	case StateFinished:
		return "FINISHED"
	}
	return "UNKNOWN"
}

// 本地索引使用的状态, 比 GameState 更细
const (
	StatusActive    = int32(1)
	StatusLost      = int32(2)
	StatusCashedOut = int32(3)
	StatusCollected = int32(4)
	StatusRefunded  = int32(5)
)

// StatusName 状态名
func StatusName(status int32) string {
	switch status {
	case StatusActive:
		return "active"
	case StatusLost:
		return "lost"
	case StatusCashedOut:
		return "cashedOut"
	case StatusCollected:
		return "collected"
	case StatusRefunded:
		return "refunded"
	}
	return "unknown"
}

// query func name
const (
	FuncNameGetGame           = "GetGame"
	FuncNameGetVault          = "GetVault"
	FuncNameListGamesByAddr   = "ListGamesByAddr"
	FuncNameListGamesByStatus = "ListGamesByStatus"
	FuncNameGameCount         = "GameCount"
	FuncNameGetFamily         = "GetFamily"
)

// list paging
const (
	DefaultCount = int32(20)
	MaxCount     = int32(100)
)
