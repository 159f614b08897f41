// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pluginmgr

import (
	"github.com/33cn/mines/rpc"
	"github.com/spf13/cobra"
)

// PluginBase 插件的默认实现, 字段为 nil 时对应步骤跳过
type PluginBase struct {
	Name     string
	ExecName string
	RPC      func(s *rpc.JSONRPCServer, api rpc.API) error
	Exec     func()
	Cmd      func() *cobra.Command
}

// GetName 插件名
func (p *PluginBase) GetName() string {
	return p.Name
}

// GetExecutorName 执行器名
func (p *PluginBase) GetExecutorName() string {
	return p.ExecName
}

// InitExec 注册执行器
func (p *PluginBase) InitExec() {
	if p.Exec != nil {
		p.Exec()
	}
}

// AddCmd 挂载子命令
func (p *PluginBase) AddCmd(rootCmd *cobra.Command) {
	if p.Cmd != nil {
		cmd := p.Cmd()
		if cmd == nil {
			return
		}
		rootCmd.AddCommand(cmd)
	}
}

// AddRPC 注册 rpc 服务
func (p *PluginBase) AddRPC(s *rpc.JSONRPCServer, api rpc.API) error {
	if p.RPC != nil {
		return p.RPC(s, api)
	}
	return nil
}
