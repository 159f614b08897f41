// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpc

import (
	"context"

	mt "github.com/33cn/mines/plugin/dapp/mines/types"
	rpcserver "github.com/33cn/mines/rpc"
	"github.com/33cn/mines/types"
)

// Start 开局
func (c *Jrpc) Start(parm *StartReq, result *interface{}) error {
	if parm == nil {
		return rpcserver.FormatError(types.ErrInvalidParam)
	}
	reply, err := c.cli.Start(context.Background(), parm)
	if err != nil {
		rlog.Debug("Start", "from", parm.From, "err", err)
		return rpcserver.FormatError(err)
	}
	*result = reply
	return nil
}

// Reveal 揭示一个格子
func (c *Jrpc) Reveal(parm *RevealReq, result *interface{}) error {
	if parm == nil {
		return rpcserver.FormatError(types.ErrInvalidParam)
	}
	reply, err := c.cli.Reveal(context.Background(), parm)
	if err != nil {
		rlog.Debug("Reveal", "from", parm.From, "id", parm.GameID, "err", err)
		return rpcserver.FormatError(err)
	}
	*result = reply
	return nil
}

// CashOut 提现
func (c *Jrpc) CashOut(parm *GameReq, result *interface{}) error {
	if parm == nil {
		return rpcserver.FormatError(types.ErrInvalidParam)
	}
	reply, err := c.cli.CashOut(context.Background(), parm)
	if err != nil {
		return rpcserver.FormatError(err)
	}
	*result = reply
	return nil
}

// CollectHouse 庄家收取
func (c *Jrpc) CollectHouse(parm *GameReq, result *interface{}) error {
	if parm == nil {
		return rpcserver.FormatError(types.ErrInvalidParam)
	}
	reply, err := c.cli.CollectHouse(context.Background(), parm)
	if err != nil {
		return rpcserver.FormatError(err)
	}
	*result = reply
	return nil
}

// AbortRefund 超时退款
func (c *Jrpc) AbortRefund(parm *GameReq, result *interface{}) error {
	if parm == nil {
		return rpcserver.FormatError(types.ErrInvalidParam)
	}
	reply, err := c.cli.AbortRefund(context.Background(), parm)
	if err != nil {
		return rpcserver.FormatError(err)
	}
	*result = reply
	return nil
}

// SetMinePositions 已废弃, 总是返回错误
func (c *Jrpc) SetMinePositions(parm *SetMinePositionsReq, result *interface{}) error {
	if parm == nil {
		return rpcserver.FormatError(types.ErrInvalidParam)
	}
	_, err := c.cli.SetMinePositions(context.Background(), parm)
	return rpcserver.FormatError(err)
}

// GetGame 查询进行中或等待收取的游戏
func (c *Jrpc) GetGame(parm *mt.ReqGameID, result *interface{}) error {
	if parm == nil {
		return rpcserver.FormatError(types.ErrInvalidParam)
	}
	reply, err := c.cli.query(context.Background(), mt.FuncNameGetGame, parm)
	if err != nil {
		return rpcserver.FormatError(err)
	}
	*result = reply
	return nil
}

// GetVault 托管账户
func (c *Jrpc) GetVault(parm *mt.ReqGameID, result *interface{}) error {
	if parm == nil {
		return rpcserver.FormatError(types.ErrInvalidParam)
	}
	reply, err := c.cli.query(context.Background(), mt.FuncNameGetVault, parm)
	if err != nil {
		return rpcserver.FormatError(err)
	}
	*result = reply
	return nil
}

// ListGames Addr 为空时按状态列出, 否则列出该地址参与的游戏
func (c *Jrpc) ListGames(parm *mt.ReqListGames, result *interface{}) error {
	if parm == nil {
		return rpcserver.FormatError(types.ErrInvalidParam)
	}
	funcName := mt.FuncNameListGamesByStatus
	if parm.Addr != "" {
		funcName = mt.FuncNameListGamesByAddr
	}
	reply, err := c.cli.query(context.Background(), funcName, parm)
	if err != nil {
		return rpcserver.FormatError(err)
	}
	*result = reply
	return nil
}

// GameCount 按状态统计
func (c *Jrpc) GameCount(parm *mt.ReqGameCount, result *interface{}) error {
	if parm == nil {
		return rpcserver.FormatError(types.ErrInvalidParam)
	}
	reply, err := c.cli.query(context.Background(), mt.FuncNameGameCount, parm)
	if err != nil {
		return rpcserver.FormatError(err)
	}
	*result = reply
	return nil
}

// GetFamily 当前部署的棋盘参数
func (c *Jrpc) GetFamily(parm *types.ReqAddr, result *interface{}) error {
	reply, err := c.cli.query(context.Background(), mt.FuncNameGetFamily, &types.ReqAddr{})
	if err != nil {
		return rpcserver.FormatError(err)
	}
	*result = reply
	return nil
}
