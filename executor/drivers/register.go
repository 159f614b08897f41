// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package drivers

import (
	"sort"
	"sync"

	"github.com/33cn/mines/common/address"
	"github.com/33cn/mines/types"
)

// DriverCreate 由节点配置创建驱动
type DriverCreate func(cfg *types.Config) (Driver, error)

var (
	regMu              sync.RWMutex
	registedExecDriver = make(map[string]DriverCreate)
	execAddressNameMap = make(map[string]string)
)

// Register 注册驱动, 重复注册会panic
func Register(name string, create DriverCreate) {
	if create == nil {
		panic("Execute: Register driver is nil")
	}
	if len(name) == 0 {
		panic("empty name string")
	}
	regMu.Lock()
	defer regMu.Unlock()
	if _, dup := registedExecDriver[name]; dup {
		panic("Execute: Register called twice for driver " + name)
	}
	registedExecDriver[name] = create
	execAddressNameMap[address.ExecAddress(name)] = name
}

// LoadDriver 创建驱动
func LoadDriver(name string, cfg *types.Config) (Driver, error) {
	regMu.RLock()
	create, ok := registedExecDriver[name]
	regMu.RUnlock()
	if !ok {
		return nil, types.ErrExecNotFound
	}
	return create(cfg)
}

// RegisteredDrivers 已注册的驱动名, 排序
func RegisteredDrivers() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	names := make([]string, 0, len(registedExecDriver))
	for name := range registedExecDriver {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsDriverAddress 是否为执行器地址
func IsDriverAddress(addr string) bool {
	regMu.RLock()
	defer regMu.RUnlock()
	_, ok := execAddressNameMap[addr]
	return ok
}

// ExecAddress 执行器地址
func ExecAddress(name string) string {
	return address.ExecAddress(name)
}
