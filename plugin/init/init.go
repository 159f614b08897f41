// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package init 引入所有 dapp 插件
package init

import (
	_ "github.com/33cn/mines/plugin/dapp/mines" //auto gen
)
