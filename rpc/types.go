// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpc

import (
	"github.com/33cn/mines/types"
	"github.com/pkg/errors"
)

// API 节点对 rpc 暴露的能力, executor.Executor 实现了它
type API interface {
	Exec(tx *types.Transaction) (*types.ExecResult, error)
	Query(driver string, funcName string, params []byte) (interface{}, error)
	GetBalance(addr string) (*types.Account, error)
	GetTxResult(hash string) (*types.TxResult, error)
	GetTxsByAddr(req *types.ReqTxsByAddr) (*types.ReplyTxInfos, error)
	Height() int64
}

// Query4Jrpc 通用查询, Payload 是 protobuf 编码后的请求, hex 格式
type Query4Jrpc struct {
	Execer   string `json:"execer"`
	FuncName string `json:"funcName"`
	Payload  string `json:"payload"`
}

// FormatError 返回给客户端的错误带上分类, 例如 "PreconditionError: ErrNotExpired"
func FormatError(err error) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, types.KindOf(err).String())
}
