// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pluginmgr dapp 插件注册, 节点与命令行按注册表装配执行器, rpc 与子命令
package pluginmgr

import (
	"github.com/33cn/mines/rpc"
	"github.com/spf13/cobra"
)

// Plugin dapp 插件
type Plugin interface {
	// 获取整个插件的包名，用以计算唯一值、做前缀等
	GetName() string
	// 获取插件中执行器名
	GetExecutorName() string
	// 初始化执行器时会调用该接口
	InitExec()
	AddCmd(rootCmd *cobra.Command)
	AddRPC(s *rpc.JSONRPCServer, api rpc.API) error
}
