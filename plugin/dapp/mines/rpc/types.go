// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rpc mines 的 json rpc 服务. From 是网关认证过的调用者地址.
package rpc

import (
	mt "github.com/33cn/mines/plugin/dapp/mines/types"
	rpcserver "github.com/33cn/mines/rpc"
	log "github.com/inconshreveable/log15"
)

var rlog = log.New("module", "mines.rpc")

// Jrpc json rpc 服务
type Jrpc struct {
	cli *channelClient
}

type channelClient struct {
	api rpcserver.API
}

// InitRPC 注册 Mines 服务
func InitRPC(s *rpcserver.JSONRPCServer, api rpcserver.API) error {
	return s.RegisterName(mt.JRPCName, &Jrpc{cli: &channelClient{api: api}})
}

// StartReq 开局
type StartReq struct {
	From     string `json:"from"`
	Amount   int64  `json:"amount"`
	NumMines uint32 `json:"numMines"`
	// Commitment hex
	Commitment string `json:"commitment"`
	House      string `json:"house"`
}

// RevealReq 揭示, 字节字段均为 hex
type RevealReq struct {
	From      string   `json:"from"`
	GameID    string   `json:"gameId"`
	TileIndex uint32   `json:"tileIndex"`
	IsMine    uint8    `json:"isMine"`
	Nonce     string   `json:"nonce"`
	Proof     []string `json:"proof"`
	PathBits  uint32   `json:"pathBits"`
}

// GameReq 针对一局游戏的操作
type GameReq struct {
	From   string `json:"from"`
	GameID string `json:"gameId"`
}

// SetMinePositionsReq 已废弃
type SetMinePositionsReq struct {
	From      string   `json:"from"`
	GameID    string   `json:"gameId"`
	Positions []uint32 `json:"positions"`
}
