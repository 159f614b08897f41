// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mines provably fair mines 游戏插件
package mines

import (
	"github.com/33cn/mines/plugin/dapp/mines/commands"
	"github.com/33cn/mines/plugin/dapp/mines/executor"
	"github.com/33cn/mines/plugin/dapp/mines/rpc"
	mt "github.com/33cn/mines/plugin/dapp/mines/types"
	"github.com/33cn/mines/pluginmgr"
)

func init() {
	pluginmgr.Register(&pluginmgr.PluginBase{
		Name:     mt.MinesX,
		ExecName: executor.GetName(),
		Exec:     executor.Init,
		Cmd:      commands.Cmd,
		RPC:      rpc.InitRPC,
	})
}
