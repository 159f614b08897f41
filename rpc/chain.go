// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpc

import (
	"github.com/33cn/mines/common"
	"github.com/33cn/mines/common/address"
	"github.com/33cn/mines/types"
)

// Chain 节点通用接口, 注册名 "Chain"
type Chain struct {
	api API
}

// NewChain new
func NewChain(api API) *Chain {
	return &Chain{api: api}
}

// InitChain 注册到 server
func InitChain(s *JSONRPCServer, api API) error {
	return s.RegisterName("Chain", NewChain(api))
}

// GetBalance 原生币余额
func (c *Chain) GetBalance(in *types.ReqAddr, result *interface{}) error {
	if in == nil || address.CheckAddress(in.Addr) != nil {
		return FormatError(types.ErrInvalidAddress)
	}
	acc, err := c.api.GetBalance(in.Addr)
	if err != nil {
		return FormatError(err)
	}
	*result = acc
	return nil
}

// GetHeight 已执行的交易数
func (c *Chain) GetHeight(in *types.ReqAddr, result *interface{}) error {
	*result = &types.Int64{Data: c.api.Height()}
	return nil
}

// QueryTransaction 按 hash 查询交易结果
func (c *Chain) QueryTransaction(in *types.ReqHash, result *interface{}) error {
	if in == nil {
		return FormatError(types.ErrInvalidParam)
	}
	res, err := c.api.GetTxResult(in.Hash)
	if err != nil {
		return FormatError(err)
	}
	*result = res
	return nil
}

// GetTxByAddr 地址发起的交易
func (c *Chain) GetTxByAddr(in *types.ReqTxsByAddr, result *interface{}) error {
	if in == nil {
		return FormatError(types.ErrInvalidParam)
	}
	reply, err := c.api.GetTxsByAddr(in)
	if err != nil {
		return FormatError(err)
	}
	*result = reply
	return nil
}

// Query 通用查询, payload 原样交给执行器
func (c *Chain) Query(in *Query4Jrpc, result *interface{}) error {
	if in == nil || in.Execer == "" {
		return FormatError(types.ErrInvalidParam)
	}
	payload, err := common.FromHex(in.Payload)
	if err != nil {
		return FormatError(types.ErrInvalidParam)
	}
	reply, err := c.api.Query(in.Execer, in.FuncName, payload)
	if err != nil {
		return FormatError(err)
	}
	*result = reply
	return nil
}
