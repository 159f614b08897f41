// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pluginmgr

import (
	"sort"
	"sync"

	"github.com/33cn/mines/rpc"
	"github.com/inconshreveable/log15"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	mgrlog      = log15.New("module", "plugin.manager")
	pluginItems = make(map[string]Plugin)
	once        = &sync.Once{}
)

// Register 重复注册直接 panic
func Register(p Plugin) {
	if p == nil {
		panic("plugin param is nil")
	}
	packageName := p.GetName()
	if len(packageName) == 0 {
		panic("plugin package name is empty")
	}
	if _, ok := pluginItems[packageName]; ok {
		panic("execute plugin item is existed. name = " + packageName)
	}
	pluginItems[packageName] = p
}

// 按名字排序, 保证装配顺序固定
func items() []Plugin {
	names := make([]string, 0, len(pluginItems))
	for name := range pluginItems {
		names = append(names, name)
	}
	sort.Strings(names)
	list := make([]Plugin, 0, len(names))
	for _, name := range names {
		list = append(list, pluginItems[name])
	}
	return list
}

// InitExec 注册所有插件的执行器, 只执行一次
func InitExec() {
	once.Do(func() {
		for _, item := range items() {
			mgrlog.Debug("InitExec", "plugin", item.GetName(), "exec", item.GetExecutorName())
			item.InitExec()
		}
	})
}

// HasExec 是否存在该执行器
func HasExec(name string) bool {
	for _, item := range pluginItems {
		if item.GetExecutorName() == name {
			return true
		}
	}
	return false
}

// AddCmd 所有插件的子命令
func AddCmd(rootCmd *cobra.Command) {
	for _, item := range items() {
		item.AddCmd(rootCmd)
	}
}

// AddRPC 注册所有插件的 rpc 服务
func AddRPC(s *rpc.JSONRPCServer, api rpc.API) error {
	for _, item := range items() {
		if err := item.AddRPC(s, api); err != nil {
			return errors.Wrapf(err, "add rpc %s", item.GetName())
		}
	}
	return nil
}
